package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Account represents a brokerage account holdings belong to
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Broker    string
	Currency  string // ISO 4217 code, e.g. "USD", "KRW"
	CreatedAt time.Time
}

// Validate ensures the account adheres to domain rules
func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.New("account name cannot be empty")
	}
	if a.Currency == "" {
		return errors.New("account currency cannot be empty")
	}
	return nil
}
