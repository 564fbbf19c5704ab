package domain

import "time"

// Event is a scheduled happening created by an account.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	CreatedBy   string // account ID
	Category    string // category name
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Creator is the projection of the owning account attached to event
// reads. It deliberately carries no credential fields.
type Creator struct {
	ID    string
	Name  string
	Email string
}

// EventWithCreator joins an event with its creator for list and get
// responses.
type EventWithCreator struct {
	Event
	Creator Creator
}
