package models

// Participant represents one person in a group.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// GroupID is the group this participant belongs to.
	GroupID string

	// Nickname is the display name, unique within the group.
	Nickname string

	// IsCreator marks the person who created the group. There is exactly one per group.
	IsCreator bool

	// IsAdmin participants may add and remove other participants.
	IsAdmin bool

	// AvatarURL is an optional opaque image reference (URL or data URI).
	AvatarURL string

	// CreatedAt is the Unix timestamp when the participant joined.
	CreatedAt int64
}
