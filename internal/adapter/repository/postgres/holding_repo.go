package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	db *DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *DB) domain.HoldingRepository {
	return &holdingRepository{db: db}
}

const holdingColumns = `id, user_id, account_id, symbol, market, name, quantity, last_price, market_value, currency, source, updated_at`

// scanHolding scans one holding row, parsing DECIMAL columns from strings
func scanHolding(scan func(dest ...interface{}) error) (*domain.Holding, error) {
	var holding domain.Holding
	var quantityStr, lastPriceStr, marketValueStr string

	if err := scan(
		&holding.ID,
		&holding.UserID,
		&holding.AccountID,
		&holding.Symbol,
		&holding.Market,
		&holding.Name,
		&quantityStr,
		&lastPriceStr,
		&marketValueStr,
		&holding.Currency,
		&holding.Source,
		&holding.UpdatedAt,
	); err != nil {
		return nil, err
	}

	quantity, err := decimal.NewFromString(quantityStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quantity: %w", err)
	}
	lastPrice, err := decimal.NewFromString(lastPriceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last_price: %w", err)
	}
	marketValue, err := decimal.NewFromString(marketValueStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse market_value: %w", err)
	}
	holding.Quantity = quantity
	holding.LastPrice = lastPrice
	holding.MarketValue = marketValue

	return &holding, nil
}

// GetByID retrieves a holding owned by userID
func (r *holdingRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Holding, error) {
	query := `
		SELECT ` + holdingColumns + `
		FROM holdings
		WHERE id = $1 AND user_id = $2
	`

	holding, err := scanHolding(r.db.QueryRowContext(ctx, query, id, userID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHoldingNotFound
		}
		return nil, fmt.Errorf("failed to get holding by ID: %w", err)
	}

	return holding, nil
}

// ListByUser retrieves all holdings owned by userID
func (r *holdingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	query := `
		SELECT ` + holdingColumns + `
		FROM holdings
		WHERE user_id = $1
		ORDER BY symbol
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	holdings := make([]*domain.Holding, 0)
	for rows.Next() {
		holding, err := scanHolding(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, holding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return holdings, nil
}

// Create creates a new holding
func (r *holdingRepository) Create(ctx context.Context, holding *domain.Holding) error {
	query := `
		INSERT INTO holdings (` + holdingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		holding.ID,
		holding.UserID,
		holding.AccountID,
		holding.Symbol,
		holding.Market,
		holding.Name,
		holding.Quantity.String(),
		holding.LastPrice.String(),
		holding.MarketValue.String(),
		holding.Currency,
		string(holding.Source),
		holding.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}

	return nil
}

// Update persists changed fields of an existing holding
func (r *holdingRepository) Update(ctx context.Context, holding *domain.Holding) error {
	query := `
		UPDATE holdings
		SET name = $1, quantity = $2, last_price = $3, market_value = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		holding.Name,
		holding.Quantity.String(),
		holding.LastPrice.String(),
		holding.MarketValue.String(),
		holding.UpdatedAt,
		holding.ID,
		holding.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrHoldingNotFound
	}

	return nil
}

// UpdateMarketValue sets a holding's last price and market value after a quote refresh
func (r *holdingRepository) UpdateMarketValue(ctx context.Context, userID, id uuid.UUID, lastPrice, marketValue decimal.Decimal) error {
	query := `
		UPDATE holdings
		SET last_price = $1, market_value = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`

	result, err := r.db.ExecContext(ctx, query, lastPrice.String(), marketValue.String(), id, userID)
	if err != nil {
		return fmt.Errorf("failed to update holding market value: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrHoldingNotFound
	}

	return nil
}

// Delete removes a holding
func (r *holdingRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM holdings WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected > 0, nil
}
