package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated owner of accounts, holdings, tags and
// rebalancing groups. How the API token is minted is outside this backend;
// the token is only ever looked up, never issued here.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	APIToken  string
	CreatedAt time.Time
}

// Validate ensures the user adheres to domain rules
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("user email cannot be empty")
	}
	if u.APIToken == "" {
		return errors.New("user API token cannot be empty")
	}
	return nil
}
