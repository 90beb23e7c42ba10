package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HoldingSource indicates where a holding's market value comes from
type HoldingSource string

const (
	// HoldingSourceSynced holdings are refreshed from quote providers
	HoldingSourceSynced HoldingSource = "SYNCED"
	// HoldingSourceManual holdings carry a user-entered market value
	HoldingSourceManual HoldingSource = "MANUAL"
)

// Holding represents a position in a financial instrument.
// MarketValue is the position's current worth in the account currency;
// for synced holdings it is Quantity * LastPrice after FX conversion.
type Holding struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Symbol      string
	Market      string // market code used to pick a quote provider, e.g. "US", "KRX"
	Name        string
	Quantity    decimal.Decimal
	LastPrice   decimal.Decimal
	MarketValue decimal.Decimal
	Currency    string
	Source      HoldingSource
	UpdatedAt   time.Time
}

// Validate ensures the holding adheres to domain rules
func (h *Holding) Validate() error {
	if h.Symbol == "" {
		return errors.New("holding symbol cannot be empty")
	}
	if h.Quantity.IsNegative() {
		return errors.New("holding quantity cannot be negative")
	}
	if h.MarketValue.IsNegative() {
		return errors.New("holding market value cannot be negative")
	}
	if h.Source != HoldingSourceSynced && h.Source != HoldingSourceManual {
		return errors.New("holding source must be SYNCED or MANUAL")
	}
	if h.Source == HoldingSourceSynced && h.Market == "" {
		return errors.New("synced holding must have a market code")
	}
	return nil
}
