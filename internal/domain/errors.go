package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for missing resources. Repositories return these (wrapped)
// when a lookup matches no row owned by the requesting user.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrHoldingNotFound = errors.New("holding not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrGroupNotFound   = errors.New("rebalancing group not found")
)

// ValidationError represents a rejected write with a user-correctable cause.
// TagIDs is populated for membership violations so the caller sees every
// offending tag id at once.
type ValidationError struct {
	Message string
	TagIDs  []uuid.UUID
}

func (e *ValidationError) Error() string {
	if len(e.TagIDs) == 0 {
		return e.Message
	}
	ids := make([]string, len(e.TagIDs))
	for i, id := range e.TagIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(ids, ", "))
}

// NewValidationError creates a ValidationError with a plain message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsNotFound reports whether err is one of the domain not-found sentinels
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrHoldingNotFound) ||
		errors.Is(err, ErrTagNotFound) ||
		errors.Is(err, ErrGroupNotFound)
}
