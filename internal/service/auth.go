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
	"github.com/eventlane/eventlane/pkg/cryptox"
	"github.com/eventlane/eventlane/pkg/idx"
	"github.com/eventlane/eventlane/pkg/jwtx"
	"github.com/eventlane/eventlane/pkg/slogx"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 50
	MinPasswordLen = 6
)

type AuthService struct {
	Store  store.Store
	Signer jwtx.Signer

	// Now is the clock used for lockout evaluation. Tests override it;
	// nil means time.Now.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RegisterParams is the cleaned-up registration payload.
type RegisterParams struct {
	Name       string
	LastName   string
	MiddleName *string
	Gender     string
	BirthDate  *time.Time
	Email      string
	Username   string
	Password   string
}

// Register creates a new account and signs an access token for it, so a
// fresh registration is immediately logged in.
//
// Email uniqueness is checked before username uniqueness, and only the
// first conflict found is reported.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.Account, string, error) {
	l := slogx.FromContext(ctx)

	p.Name = strings.TrimSpace(p.Name)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.Username = strings.TrimSpace(p.Username)

	if err := validateRegister(p); err != nil {
		return domain.Account{}, "", err
	}

	if _, err := s.Store.Accounts().GetAccountByEmail(ctx, p.Email); err == nil {
		return domain.Account{}, "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, "", err
	}

	if _, err := s.Store.Accounts().GetAccountByUsername(ctx, p.Username); err == nil {
		return domain.Account{}, "", ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, "", err
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.Account{}, "", err
	}

	now := s.now().UTC()
	account := domain.Account{
		ID:           idx.New().String(),
		Name:         p.Name,
		LastName:     p.LastName,
		MiddleName:   p.MiddleName,
		Gender:       p.Gender,
		BirthDate:    p.BirthDate,
		Email:        p.Email,
		Username:     p.Username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		// Racing registration can still trip the unique constraints.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, "", ErrEmailTaken
		}
		return domain.Account{}, "", err
	}

	token, err := s.signToken(account, now)
	if err != nil {
		return domain.Account{}, "", err
	}

	l.Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("username", account.Username),
	)
	return account, token, nil
}

// Login verifies the email/password pair and enforces the lockout
// policy. The whole attempt, including counter updates, runs in one
// store transaction so a single request never observes a torn state.
//
// A missing account and a wrong password produce the same error, so the
// response does not reveal which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Account, string, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	var problems []string
	if email == "" {
		problems = append(problems, "email is required")
	}
	if password == "" {
		problems = append(problems, "password is required")
	}
	if len(problems) > 0 {
		return domain.Account{}, "", &ValidationError{Problems: problems}
	}

	now := s.now()

	var account domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		account, err = tx.Accounts().GetAccountByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}

		state := domain.LockStateOf(&account)

		// An expired lock is released before the attempt is judged, so
		// the account gets a fresh run of attempts.
		state, cleared := state.ClearIfExpired(now)

		if state.Blocked(now) {
			l.Info("login rejected, account locked",
				slog.String("account_id", account.ID),
				slog.Time("lock_until", *state.LockUntil),
			)
			return ErrAccountLocked
		}

		if verr := cryptox.VerifyPassword(password, account.PasswordHash); verr != nil {
			if !errors.Is(verr, cryptox.ErrMismatch) {
				return verr
			}
			state = state.RecordFailure(now)
			if uerr := tx.Accounts().UpdateLockState(ctx, account.ID,
				state.FailedAttempts, state.IsLocked, state.LockUntil); uerr != nil {
				return uerr
			}
			if state.IsLocked {
				l.Info("account locked after repeated failures",
					slog.String("account_id", account.ID),
					slog.Int("failed_attempts", state.FailedAttempts),
				)
				return ErrAccountLocked
			}
			return ErrInvalidCredentials
		}

		if cleared || state != (domain.LockState{}) {
			state = state.RecordSuccess()
			if uerr := tx.Accounts().UpdateLockState(ctx, account.ID,
				state.FailedAttempts, state.IsLocked, state.LockUntil); uerr != nil {
				return uerr
			}
		}
		account.FailedAttempts = 0
		account.IsLocked = false
		account.LockUntil = nil
		return nil
	})
	if err != nil {
		return domain.Account{}, "", err
	}

	token, err := s.signToken(account, now)
	if err != nil {
		return domain.Account{}, "", err
	}

	l.Info("login succeeded", slog.String("account_id", account.ID))
	return account, token, nil
}

func (s *AuthService) signToken(a domain.Account, now time.Time) (string, error) {
	claims := jwtx.NewAccessClaims(a.ID, a.Username, s.Signer.Issuer(), jwtx.DefaultAccessTokenTTL, now)
	return s.Signer.Sign(claims)
}

func validateRegister(p RegisterParams) error {
	var problems []string

	if p.Name == "" {
		problems = append(problems, "name is required")
	}
	if p.LastName == "" {
		problems = append(problems, "lastName is required")
	}
	if !domain.ValidGender(p.Gender) {
		problems = append(problems, "gender must be male, female or other")
	}
	if p.Email == "" {
		problems = append(problems, "email is required")
	} else if _, err := mail.ParseAddress(p.Email); err != nil {
		problems = append(problems, "email is not a valid address")
	}
	if n := len(p.Username); n < MinUsernameLen || n > MaxUsernameLen {
		problems = append(problems, "username must be between 3 and 50 characters")
	}
	if len(p.Password) < MinPasswordLen {
		problems = append(problems, "password must be at least 6 characters")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
