package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

// tagRepository implements domain.TagRepository
type tagRepository struct {
	db *DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *DB) domain.TagRepository {
	return &tagRepository{db: db}
}

// GetByID retrieves a tag owned by userID
func (r *tagRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Tag, error) {
	query := `
		SELECT id, user_id, name, color
		FROM tags
		WHERE id = $1 AND user_id = $2
	`

	var tag domain.Tag
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&tag.ID,
		&tag.UserID,
		&tag.Name,
		&tag.Color,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag by ID: %w", err)
	}

	return &tag, nil
}

// ListByUser retrieves all tags owned by userID
func (r *tagRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	query := `
		SELECT id, user_id, name, color
		FROM tags
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tags, nil
}

// Create creates a new tag
func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query := `
		INSERT INTO tags (id, user_id, name, color)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, tag.ID, tag.UserID, tag.Name, tag.Color)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// Update persists changed fields of an existing tag
func (r *tagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	query := `
		UPDATE tags
		SET name = $1, color = $2
		WHERE id = $3 AND user_id = $4
	`

	result, err := r.db.ExecContext(ctx, query, tag.Name, tag.Color, tag.ID, tag.UserID)
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrTagNotFound
	}

	return nil
}

// Delete removes a tag; symbol associations cascade via foreign key
func (r *tagRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM tags WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete tag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected > 0, nil
}

// ListSymbols retrieves the symbols currently associated with a tag
func (r *tagRepository) ListSymbols(ctx context.Context, userID, tagID uuid.UUID) ([]string, error) {
	query := `
		SELECT ts.symbol
		FROM tag_symbols ts
		JOIN tags t ON t.id = ts.tag_id
		WHERE ts.tag_id = $1 AND t.user_id = $2
		ORDER BY ts.symbol
	`

	rows, err := r.db.QueryContext(ctx, query, tagID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag symbols: %w", err)
	}
	defer rows.Close()

	symbols := make([]string, 0)
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan tag symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tag symbols: %w", err)
	}

	return symbols, nil
}

// ReplaceSymbols replaces a tag's complete symbol set inside one transaction
func (r *tagRepository) ReplaceSymbols(ctx context.Context, userID, tagID uuid.UUID, symbols []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var owned bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tags WHERE id = $1 AND user_id = $2)`,
		tagID, userID,
	).Scan(&owned)
	if err != nil {
		return fmt.Errorf("failed to check tag ownership: %w", err)
	}
	if !owned {
		return domain.ErrTagNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tag_symbols WHERE tag_id = $1`, tagID); err != nil {
		return fmt.Errorf("failed to clear tag symbols: %w", err)
	}

	for _, symbol := range symbols {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tag_symbols (tag_id, symbol) VALUES ($1, $2)`,
			tagID, symbol,
		); err != nil {
			return fmt.Errorf("failed to insert tag symbol: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tag symbols: %w", err)
	}

	return nil
}
