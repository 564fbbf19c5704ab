package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/eventlane/eventlane/internal/domain"
	"github.com/eventlane/eventlane/internal/store"
	"github.com/eventlane/eventlane/pkg/slogx"
)

type UserService struct {
	Store store.Store
}

// GetAccountByID fetches an account by id.
func (s *UserService) GetAccountByID(ctx context.Context, accountID string) (domain.Account, error) {
	a, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrNotFound
		}
		return domain.Account{}, err
	}
	return a, nil
}

// ListAccounts returns every registered account.
func (s *UserService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccounts(ctx)
}

// UpdateProfileParams carries the mutable profile fields. Nil pointers
// mean "leave unchanged".
type UpdateProfileParams struct {
	Name       *string
	LastName   *string
	MiddleName *string
	Gender     *string
	BirthDate  *time.Time
	Email      *string
	Username   *string
}

// UpdateProfile applies a partial update to the caller's own account.
// Accounts may only update themselves; the ownership check happens here
// rather than the handler so every entry point enforces it.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, targetID string, p UpdateProfileParams) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	if callerID != targetID {
		return domain.Account{}, ErrForbidden
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrNotFound
		}
		return domain.Account{}, err
	}

	if p.Name != nil {
		account.Name = strings.TrimSpace(*p.Name)
	}
	if p.LastName != nil {
		account.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.MiddleName != nil {
		account.MiddleName = p.MiddleName
	}
	if p.Gender != nil {
		account.Gender = *p.Gender
	}
	if p.BirthDate != nil {
		account.BirthDate = p.BirthDate
	}
	if p.Email != nil {
		account.Email = strings.TrimSpace(strings.ToLower(*p.Email))
	}
	if p.Username != nil {
		account.Username = strings.TrimSpace(*p.Username)
	}

	if err := validateProfile(account); err != nil {
		return domain.Account{}, err
	}

	// Email and username stay unique across accounts. Check before the
	// write so the caller gets a specific error instead of a bare
	// constraint violation.
	if p.Email != nil {
		if other, err := s.Store.Accounts().GetAccountByEmail(ctx, account.Email); err == nil && other.ID != account.ID {
			return domain.Account{}, ErrEmailTaken
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, err
		}
	}
	if p.Username != nil {
		if other, err := s.Store.Accounts().GetAccountByUsername(ctx, account.Username); err == nil && other.ID != account.ID {
			return domain.Account{}, ErrUsernameTaken
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, err
		}
	}

	if err := s.Store.Accounts().UpdateProfile(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrEmailTaken
		}
		return domain.Account{}, err
	}
	account.UpdatedAt = time.Now().UTC()

	l.Info("profile updated", slog.String("account_id", account.ID))
	return account, nil
}

func validateProfile(a domain.Account) error {
	var problems []string

	if a.Name == "" {
		problems = append(problems, "name is required")
	}
	if a.LastName == "" {
		problems = append(problems, "lastName is required")
	}
	if !domain.ValidGender(a.Gender) {
		problems = append(problems, "gender must be male, female or other")
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		problems = append(problems, "email is not a valid address")
	}
	if n := len(a.Username); n < MinUsernameLen || n > MaxUsernameLen {
		problems = append(problems, "username must be between 3 and 50 characters")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
