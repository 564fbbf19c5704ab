package domain

import "time"

// Lockout policy for repeated failed logins. An account locks after
// MaxFailedLogins consecutive failures and stays locked for LockDuration.
// Expiry is lazy: nothing resets a lock until the account next attempts
// a login, at which point an expired lock is cleared before the attempt
// is evaluated.
const (
	MaxFailedLogins = 5
	LockDuration    = 30 * time.Minute
)

// LockState is the lockout-relevant slice of an account. The service
// layer copies it out of an Account, applies transitions, and persists
// the result in the same transaction as the login attempt.
type LockState struct {
	FailedAttempts int
	IsLocked       bool
	LockUntil      *time.Time
}

// LockStateOf extracts the lock state from an account.
func LockStateOf(a *Account) LockState {
	return LockState{
		FailedAttempts: a.FailedAttempts,
		IsLocked:       a.IsLocked,
		LockUntil:      a.LockUntil,
	}
}

// Expired reports whether the lock window has passed as of now. A state
// that is not locked is never expired.
func (s LockState) Expired(now time.Time) bool {
	return s.IsLocked && s.LockUntil != nil && !now.Before(*s.LockUntil)
}

// ClearIfExpired releases an expired lock, zeroing the failure counter
// so the account gets a fresh run of attempts. It returns the resulting
// state and whether anything changed.
func (s LockState) ClearIfExpired(now time.Time) (LockState, bool) {
	if !s.Expired(now) {
		return s, false
	}
	return LockState{}, true
}

// Blocked reports whether a login attempt must be rejected without
// evaluating the password. Call ClearIfExpired first so a stale lock
// does not block a legitimate attempt.
func (s LockState) Blocked(now time.Time) bool {
	return s.IsLocked && s.LockUntil != nil && now.Before(*s.LockUntil)
}

// RecordFailure increments the failure counter and, on reaching the
// threshold, engages the lock for LockDuration from now.
func (s LockState) RecordFailure(now time.Time) LockState {
	s.FailedAttempts++
	if s.FailedAttempts >= MaxFailedLogins {
		until := now.Add(LockDuration)
		s.IsLocked = true
		s.LockUntil = &until
	}
	return s
}

// RecordSuccess resets the state after a correct password. A successful
// login always leaves the account unlocked with a zero counter.
func (s LockState) RecordSuccess() LockState {
	return LockState{}
}
