package domain

import "time"

// Account is a registered user's credential and lockout record.
type Account struct {
	ID         string
	Name       string
	LastName   string
	MiddleName *string // optional
	Gender     string  // "male", "female" or "other"
	BirthDate  *time.Time
	Email      string
	Username   string

	// PasswordHash is the Argon2id PHC string. It must never be serialized
	// into an API response or written to a log.
	PasswordHash string

	FailedAttempts int
	IsLocked       bool
	LockUntil      *time.Time // non-nil only while IsLocked

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Genders accepted for the account profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
