package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Tag represents a user-defined label applied to holdings by symbol,
// used to group holdings into asset classes (e.g. "growth", "dividend").
// Membership lives in a separate tag-to-symbol association.
type Tag struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Color  string // hex display color, e.g. "#4caf50"
}

// Validate ensures the tag adheres to domain rules
func (t *Tag) Validate() error {
	if t.Name == "" {
		return errors.New("tag name cannot be empty")
	}
	return nil
}
