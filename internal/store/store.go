package store

import (
	"context"
	"errors"
	"time"

	"github.com/eventlane/eventlane/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement
// this. It exposes sub-repositories to keep concerns tidy and testable.
type Store interface {
	Accounts() Accounts
	Events() Events
	Categories() Categories

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	// This is the recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail is used during login and duplicate checks.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetAccountByUsername is used during duplicate checks.
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdateProfile mutates the profile fields and bumps updated_at. It
	// leaves credentials and lock state alone.
	UpdateProfile(ctx context.Context, a domain.Account) error

	// UpdateLockState persists the failed-attempt counter and lock window
	// after a login attempt.
	UpdateLockState(ctx context.Context, accountID string, failedAttempts int, locked bool, lockUntil *time.Time) error

	// ListAccounts returns all accounts ordered by creation time.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

type Events interface {
	// GetEventByID returns an event joined with its creator.
	GetEventByID(ctx context.Context, id string) (domain.EventWithCreator, error)

	// ListEvents returns events joined with creators, newest event date
	// first. A non-empty category narrows the result to that category.
	ListEvents(ctx context.Context, category string) ([]domain.EventWithCreator, error)

	// CreateEvent inserts a new event.
	CreateEvent(ctx context.Context, e domain.Event) error

	// UpdateEvent overwrites the mutable fields and bumps updated_at.
	UpdateEvent(ctx context.Context, e domain.Event) error

	// DeleteEvent removes an event.
	DeleteEvent(ctx context.Context, id string) error
}

type Categories interface {
	// GetCategoryByName returns a category by its unique name.
	GetCategoryByName(ctx context.Context, name string) (domain.Category, error)

	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
