package holding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

// QuoteFetcher supplies the current price for a symbol on a given market.
// The returned currency is the currency the price is quoted in.
type QuoteFetcher interface {
	Quote(ctx context.Context, market, symbol string) (price decimal.Decimal, currency string, err error)
}

// RateFetcher supplies currency conversion rates
type RateFetcher interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// CreateHoldingInput represents the input for creating a holding
type CreateHoldingInput struct {
	AccountID   uuid.UUID
	Symbol      string
	Market      string
	Name        string
	Quantity    decimal.Decimal
	MarketValue decimal.Decimal // used for MANUAL holdings; SYNCED start at 0 until refreshed
	Source      domain.HoldingSource
}

// UpdateHoldingInput represents a partial update of a holding. Nil fields
// are left untouched.
type UpdateHoldingInput struct {
	Name        *string
	Quantity    *decimal.Decimal
	MarketValue *decimal.Decimal
}

// Service handles holding CRUD and market value refresh operations
type Service struct {
	HoldingRepo domain.HoldingRepository
	AccountRepo domain.AccountRepository
	Quotes      QuoteFetcher
	Rates       RateFetcher
	Log         zerolog.Logger
}

// NewService creates a new holding Service instance
func NewService(
	holdingRepo domain.HoldingRepository,
	accountRepo domain.AccountRepository,
	quotes QuoteFetcher,
	rates RateFetcher,
	log zerolog.Logger,
) *Service {
	return &Service{
		HoldingRepo: holdingRepo,
		AccountRepo: accountRepo,
		Quotes:      quotes,
		Rates:       rates,
		Log:         log.With().Str("component", "holding").Logger(),
	}
}

// CreateHolding creates a new holding inside one of the user's accounts.
// The holding's currency is inherited from the account.
func (s *Service) CreateHolding(ctx context.Context, userID uuid.UUID, input CreateHoldingInput) (*domain.Holding, error) {
	account, err := s.AccountRepo.GetByID(ctx, userID, input.AccountID)
	if err != nil {
		return nil, err
	}

	holding := &domain.Holding{
		ID:          uuid.New(),
		UserID:      userID,
		AccountID:   account.ID,
		Symbol:      input.Symbol,
		Market:      input.Market,
		Name:        input.Name,
		Quantity:    input.Quantity,
		MarketValue: input.MarketValue,
		Currency:    account.Currency,
		Source:      input.Source,
		UpdatedAt:   time.Now(),
	}

	if err := holding.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.HoldingRepo.Create(ctx, holding); err != nil {
		return nil, err
	}

	return holding, nil
}

// UpdateHolding applies a partial update to a holding
func (s *Service) UpdateHolding(ctx context.Context, userID, holdingID uuid.UUID, input UpdateHoldingInput) (*domain.Holding, error) {
	holding, err := s.HoldingRepo.GetByID(ctx, userID, holdingID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		holding.Name = *input.Name
	}
	if input.Quantity != nil {
		holding.Quantity = *input.Quantity
	}
	if input.MarketValue != nil {
		holding.MarketValue = *input.MarketValue
	}
	holding.UpdatedAt = time.Now()

	if err := holding.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.HoldingRepo.Update(ctx, holding); err != nil {
		return nil, err
	}

	return holding, nil
}

// DeleteHolding removes a holding.
// Deleting a nonexistent holding returns false rather than an error.
func (s *Service) DeleteHolding(ctx context.Context, userID, holdingID uuid.UUID) (bool, error) {
	return s.HoldingRepo.Delete(ctx, userID, holdingID)
}

// ListHoldings retrieves all holdings owned by the user
func (s *Service) ListHoldings(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	return s.HoldingRepo.ListByUser(ctx, userID)
}

// RefreshPrices re-quotes every synced holding of the user and persists the
// new price and market value, converting into the account currency when the
// quote currency differs. A failed quote is logged and skipped so one dead
// provider cannot block the rest of the refresh. Returns the number of
// holdings actually refreshed.
func (s *Service) RefreshPrices(ctx context.Context, userID uuid.UUID) (int, error) {
	holdings, err := s.HoldingRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	accountCurrency := make(map[uuid.UUID]string)
	refreshed := 0

	for _, h := range holdings {
		if h.Source != domain.HoldingSourceSynced {
			continue
		}

		price, quoteCurrency, err := s.Quotes.Quote(ctx, h.Market, h.Symbol)
		if err != nil {
			s.Log.Warn().
				Err(err).
				Str("symbol", h.Symbol).
				Str("market", h.Market).
				Msg("Quote failed, keeping previous market value")
			continue
		}

		currency, ok := accountCurrency[h.AccountID]
		if !ok {
			account, err := s.AccountRepo.GetByID(ctx, userID, h.AccountID)
			if err != nil {
				return refreshed, err
			}
			currency = account.Currency
			accountCurrency[h.AccountID] = currency
		}

		value := h.Quantity.Mul(price)
		if quoteCurrency != currency {
			rate, err := s.Rates.Rate(ctx, quoteCurrency, currency)
			if err != nil {
				s.Log.Warn().
					Err(err).
					Str("symbol", h.Symbol).
					Str("from", quoteCurrency).
					Str("to", currency).
					Msg("FX rate failed, keeping previous market value")
				continue
			}
			value = value.Mul(rate)
		}

		if err := s.HoldingRepo.UpdateMarketValue(ctx, userID, h.ID, price, value); err != nil {
			return refreshed, err
		}
		refreshed++

		s.Log.Debug().
			Str("symbol", h.Symbol).
			Str("value", value.String()).
			Msg("Market value refreshed")
	}

	return refreshed, nil
}
