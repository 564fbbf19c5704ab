package api

import "time"

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name       string     `json:"name"`
	LastName   string     `json:"lastName"`
	MiddleName *string    `json:"middleName,omitempty"`
	Gender     string     `json:"gender"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	Password   string     `json:"password"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public projection of an account. It never carries
// the password hash or the lockout bookkeeping.
type UserResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	LastName   string     `json:"lastName"`
	MiddleName *string    `json:"middleName,omitempty"`
	Gender     string     `json:"gender"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// UpdateUserRequest is the payload for PUT /users/{id}. Absent fields
// are left unchanged.
type UpdateUserRequest struct {
	Name       *string    `json:"name,omitempty"`
	LastName   *string    `json:"lastName,omitempty"`
	MiddleName *string    `json:"middleName,omitempty"`
	Gender     *string    `json:"gender,omitempty"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
	Email      *string    `json:"email,omitempty"`
	Username   *string    `json:"username,omitempty"`
}

// EventRequest is the payload for creating or replacing an event.
type EventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
}

// CreatorResponse identifies the account that owns an event.
type CreatorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventResponse is the public projection of an event.
type EventResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Creator     CreatorResponse `json:"creator"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CategoryResponse is a single catalogue entry.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MessageResponse is a bare acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthChecks reports per-dependency health in a readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthResponse is the body of the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// ErrorResponse is the error envelope every endpoint uses.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
