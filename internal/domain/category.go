package domain

// Category classifies events. The store seeds a default set on first
// migration; additional categories arrive only via migrations.
type Category struct {
	ID   string
	Name string
}
