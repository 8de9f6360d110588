package models

// Group represents a trip whose members share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Tokyo Trip 2024").
	Name string

	// ShareCode is the short code other people use to join the group.
	ShareCode string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
