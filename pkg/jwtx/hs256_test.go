package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "eventlane-test"

func newTestHS256(t *testing.T) *HS256 {
	t.Helper()
	h, err := NewHS256("0123456789abcdef0123456789abcdef", testIssuer)
	require.NoError(t, err)
	return h
}

func TestNewHS256_EmptySecret(t *testing.T) {
	_, err := NewHS256("", testIssuer)
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	h := newTestHS256(t)
	now := time.Now()

	claims := NewAccessClaims("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "alice", testIssuer, time.Hour, now)
	token, err := h.Sign(claims)
	require.NoError(t, err)

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.WithinDuration(t, now.Add(time.Hour), got.ExpiresAt.Time, time.Second)
}

func TestVerify_Expired(t *testing.T) {
	h := newTestHS256(t)

	// Issue a token whose hour-long lifetime ran out a minute ago.
	issued := time.Now().Add(-61 * time.Minute)
	claims := NewAccessClaims("acct", "bob", testIssuer, time.Hour, issued)
	token, err := h.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestClaims_ValidateExpiry(t *testing.T) {
	now := time.Now()
	claims := NewAccessClaims("acct", "bob", testIssuer, time.Hour, now)

	require.NoError(t, claims.ValidateExpiry(now))
	require.NoError(t, claims.ValidateExpiry(now.Add(59*time.Minute)))
	require.ErrorIs(t, claims.ValidateExpiry(now.Add(61*time.Minute)), ErrExpired)
	require.ErrorIs(t, claims.ValidateExpiry(now.Add(-time.Minute)), ErrNotYetValid)
}

func TestVerify_WrongSecret(t *testing.T) {
	h := newTestHS256(t)
	other, err := NewHS256("another-secret-another-secret!!!", testIssuer)
	require.NoError(t, err)

	token, err := other.Sign(NewAccessClaims("acct", "eve", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerify_Malformed(t *testing.T) {
	h := newTestHS256(t)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := h.Verify(tok)
		require.ErrorIs(t, err, ErrMalformed, "token %q", tok)
	}
}

func TestVerify_IssuerMismatch(t *testing.T) {
	h := newTestHS256(t)
	foreign, err := NewHS256("0123456789abcdef0123456789abcdef", "someone-else")
	require.NoError(t, err)

	token, err := foreign.Sign(NewAccessClaims("acct", "mallory", "someone-else", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}
