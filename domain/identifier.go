package domain

import "github.com/google/uuid"

// IDLength is the canonical textual length of a store identifier.
const IDLength = 36

// NewID generates a fresh store identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidateID checks that id is structurally a store identifier before any
// lookup is attempted. A malformed id is a client input error, distinct from
// a well-formed id that matches no record.
func ValidateID(id string) error {
	if len(id) != IDLength {
		return ErrInvalidTaskID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidTaskID
	}
	return nil
}
