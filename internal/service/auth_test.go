package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eventlane/eventlane/internal/domain"
	"github.com/eventlane/eventlane/internal/store"
	"github.com/eventlane/eventlane/internal/store/drivers/sqlite"
	"github.com/eventlane/eventlane/pkg/cryptox"
	"github.com/eventlane/eventlane/pkg/jwtx"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "eventlane-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newAuthService(t *testing.T, s store.Store) (*AuthService, *jwtx.HS256) {
	t.Helper()

	signer, err := jwtx.NewHS256("test-secret", "eventlane-test")
	require.NoError(t, err)
	return &AuthService{Store: s, Signer: signer}, signer
}

func registerParams() RegisterParams {
	return RegisterParams{
		Name:     "Grace",
		LastName: "Hopper",
		Gender:   domain.GenderFemale,
		Email:    "grace@example.com",
		Username: "grace",
		Password: "compiler-password",
	}
}

func TestRegister(t *testing.T) {
	svc, signer := newAuthService(t, newTestStore(t))
	ctx := context.Background()

	account, token, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)
	require.NotEmpty(t, account.ID)
	require.Equal(t, "grace@example.com", account.Email)
	require.Equal(t, 0, account.FailedAttempts)
	require.False(t, account.IsLocked)

	// A fresh registration is already logged in.
	claims, err := signer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, account.ID, claims.Subject)
	require.Equal(t, "grace", claims.Username)
}

func TestRegister_DuplicateEmailWinsOverUsername(t *testing.T) {
	svc, _ := newAuthService(t, newTestStore(t))
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	// Same email AND same username: the email conflict is reported.
	_, _, err = svc.Register(ctx, registerParams())
	require.ErrorIs(t, err, ErrEmailTaken)

	p := registerParams()
	p.Email = "other@example.com"
	_, _, err = svc.Register(ctx, p)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService(t, newTestStore(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*RegisterParams)
	}{
		{"missing name", func(p *RegisterParams) { p.Name = "" }},
		{"missing last name", func(p *RegisterParams) { p.LastName = "" }},
		{"bad gender", func(p *RegisterParams) { p.Gender = "yes" }},
		{"bad email", func(p *RegisterParams) { p.Email = "not-an-email" }},
		{"short username", func(p *RegisterParams) { p.Username = "ab" }},
		{"short password", func(p *RegisterParams) { p.Password = "12345" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := registerParams()
			tt.mutate(&p)
			_, _, err := svc.Register(ctx, p)
			ve, ok := AsValidation(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			require.NotEmpty(t, ve.Problems)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	svc, signer := newAuthService(t, newTestStore(t))
	ctx := context.Background()

	created, _, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	account, token, err := svc.Login(ctx, "grace@example.com", "compiler-password")
	require.NoError(t, err)
	require.Equal(t, created.ID, account.ID)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, created.ID, claims.Subject)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLogin_TrimsInput(t *testing.T) {
	svc, _ := newAuthService(t, newTestStore(t))
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "  grace@example.com  ", "  compiler-password  ")
	require.NoError(t, err)
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	svc, _ := newAuthService(t, s)
	ctx := context.Background()

	created, _, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	// The stored email is the lowercased form regardless of input casing.
	got, err := s.Accounts().GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "grace@example.com", got.Email)

	_, _, err = svc.Login(ctx, "Grace@Example.COM", "compiler-password")
	require.NoError(t, err)
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newAuthService(t, newTestStore(t))
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "", "whatever")
	_, ok := AsValidation(err)
	require.True(t, ok)

	_, _, err = svc.Login(ctx, "grace@example.com", "   ")
	_, ok = AsValidation(err)
	require.True(t, ok)
}

func TestLogin_UnknownAndWrongLookTheSame(t *testing.T) {
	svc, _ := newAuthService(t, newTestStore(t))
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, "nobody@example.com", "compiler-password")
	_, _, errWrong := svc.Login(ctx, "grace@example.com", "wrong-password")

	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
}

func failLogin(t *testing.T, svc *AuthService, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, _, err := svc.Login(context.Background(), "grace@example.com", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

// lockAccount drives the account to the lockout threshold. The failure
// that reaches it already reports the lock, not invalid credentials.
func lockAccount(t *testing.T, svc *AuthService) {
	t.Helper()
	failLogin(t, svc, domain.MaxFailedLogins-1)
	_, _, err := svc.Login(context.Background(), "grace@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrAccountLocked)
}

func TestLogin_LockoutAfterThreshold(t *testing.T) {
	s := newTestStore(t)
	svc, _ := newAuthService(t, s)
	ctx := context.Background()

	created, _, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	lockAccount(t, svc)

	got, err := s.Accounts().GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, got.IsLocked)
	require.Equal(t, domain.MaxFailedLogins, got.FailedAttempts)
	require.NotNil(t, got.LockUntil)

	// Once locked, even the correct password is rejected without being
	// checked.
	_, _, err = svc.Login(ctx, "grace@example.com", "compiler-password")
	require.ErrorIs(t, err, ErrAccountLocked)

	// The rejected attempt does not grow the counter further.
	got, err = s.Accounts().GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.MaxFailedLogins, got.FailedAttempts)
}

func TestLogin_FailuresBelowThresholdDoNotLock(t *testing.T) {
	s := newTestStore(t)
	svc, _ := newAuthService(t, s)
	ctx := context.Background()

	created, _, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	failLogin(t, svc, domain.MaxFailedLogins-1)

	got, err := s.Accounts().GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, got.IsLocked)
	require.Equal(t, domain.MaxFailedLogins-1, got.FailedAttempts)

	// A success below the threshold resets the counter.
	_, _, err = svc.Login(ctx, "grace@example.com", "compiler-password")
	require.NoError(t, err)

	got, err = s.Accounts().GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.FailedAttempts)
}

func TestLogin_ExpiredLockClearsLazily(t *testing.T) {
	s := newTestStore(t)
	svc, _ := newAuthService(t, s)
	ctx := context.Background()

	created, _, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	lockAccount(t, svc)

	// Move the service clock past the lock window. Nothing in the store
	// changes until the next attempt arrives.
	svc.Now = func() time.Time { return time.Now().Add(domain.LockDuration + time.Minute) }

	got, err := s.Accounts().GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, got.IsLocked, "expiry must be lazy, not swept in the background")

	_, _, err = svc.Login(ctx, "grace@example.com", "compiler-password")
	require.NoError(t, err)

	got, err = s.Accounts().GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, got.IsLocked)
	require.Equal(t, 0, got.FailedAttempts)
	require.Nil(t, got.LockUntil)
}

func TestLogin_ExpiredLockThenWrongPasswordCountsFromOne(t *testing.T) {
	s := newTestStore(t)
	svc, _ := newAuthService(t, s)
	ctx := context.Background()

	created, _, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	lockAccount(t, svc)

	svc.Now = func() time.Time { return time.Now().Add(domain.LockDuration + time.Minute) }

	// The unlock and the fresh failure land in one request, atomically.
	_, _, err = svc.Login(ctx, "grace@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := s.Accounts().GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, got.IsLocked)
	require.Equal(t, 1, got.FailedAttempts)
}

func TestLogin_ResponseNeverCarriesHash(t *testing.T) {
	svc, _ := newAuthService(t, newTestStore(t))
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	account, _, err := svc.Login(ctx, "grace@example.com", "compiler-password")
	require.NoError(t, err)
	// The service returns the full record; handlers must project it. But
	// the lockout bookkeeping it reports is already reset.
	require.Equal(t, 0, account.FailedAttempts)
	require.False(t, account.IsLocked)
	require.Nil(t, account.LockUntil)
}
