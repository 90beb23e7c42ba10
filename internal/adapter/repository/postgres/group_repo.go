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

// groupRepository implements domain.GroupRepository
type groupRepository struct {
	db *DB
}

// NewGroupRepository creates a new rebalancing group repository
func NewGroupRepository(db *DB) domain.GroupRepository {
	return &groupRepository{db: db}
}

// GetByID retrieves a group and its ordered tag ids owned by userID
func (r *groupRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.RebalancingGroup, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM rebalancing_groups
		WHERE id = $1 AND user_id = $2
	`

	var group domain.RebalancingGroup
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&group.ID,
		&group.UserID,
		&group.Name,
		&group.Description,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group by ID: %w", err)
	}

	tagIDs, err := r.listGroupTagIDs(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	group.TagIDs = tagIDs

	return &group, nil
}

// ListByUser retrieves all groups owned by userID
func (r *groupRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.RebalancingGroup, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM rebalancing_groups
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := make([]*domain.RebalancingGroup, 0)
	for rows.Next() {
		var group domain.RebalancingGroup
		if err := rows.Scan(
			&group.ID,
			&group.UserID,
			&group.Name,
			&group.Description,
			&group.CreatedAt,
			&group.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, &group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		tagIDs, err := r.listGroupTagIDs(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		group.TagIDs = tagIDs
	}

	return groups, nil
}

// listGroupTagIDs returns a group's tag ids in stored position order
func (r *groupRepository) listGroupTagIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT tag_id
		FROM rebalancing_group_tags
		WHERE group_id = $1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group tags: %w", err)
	}
	defer rows.Close()

	tagIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var tagID uuid.UUID
		if err := rows.Scan(&tagID); err != nil {
			return nil, fmt.Errorf("failed to scan group tag: %w", err)
		}
		tagIDs = append(tagIDs, tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group tags: %w", err)
	}

	return tagIDs, nil
}

// Create creates a group and its tag associations in one transaction
func (r *groupRepository) Create(ctx context.Context, group *domain.RebalancingGroup) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO rebalancing_groups (id, user_id, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		group.ID, group.UserID, group.Name, group.Description, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	if err := insertGroupTags(ctx, tx, group.ID, group.TagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group: %w", err)
	}

	return nil
}

// Update persists the group's fields and replaces its tag associations wholesale
func (r *groupRepository) Update(ctx context.Context, group *domain.RebalancingGroup) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.ExecContext(ctx,
		`UPDATE rebalancing_groups
		 SET name = $1, description = $2, updated_at = $3
		 WHERE id = $4 AND user_id = $5`,
		group.Name, group.Description, group.UpdatedAt, group.ID, group.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrGroupNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM rebalancing_group_tags WHERE group_id = $1`, group.ID,
	); err != nil {
		return fmt.Errorf("failed to clear group tags: %w", err)
	}

	if err := insertGroupTags(ctx, tx, group.ID, group.TagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group update: %w", err)
	}

	return nil
}

// insertGroupTags inserts tag associations preserving input order via position
func insertGroupTags(ctx context.Context, tx *sql.Tx, groupID uuid.UUID, tagIDs []uuid.UUID) error {
	for position, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rebalancing_group_tags (group_id, tag_id, position) VALUES ($1, $2, $3)`,
			groupID, tagID, position,
		); err != nil {
			return fmt.Errorf("failed to insert group tag: %w", err)
		}
	}
	return nil
}

// Delete removes a group; tag associations and target allocations cascade
// via foreign keys
func (r *groupRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM rebalancing_groups WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete group: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected > 0, nil
}

// GetTargets retrieves the group's target allocations
func (r *groupRepository) GetTargets(ctx context.Context, groupID uuid.UUID) ([]*domain.TargetAllocation, error) {
	query := `
		SELECT group_id, tag_id, target_percentage
		FROM target_allocations
		WHERE group_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list target allocations: %w", err)
	}
	defer rows.Close()

	targets := make([]*domain.TargetAllocation, 0)
	for rows.Next() {
		var target domain.TargetAllocation
		var percentageStr string
		if err := rows.Scan(&target.GroupID, &target.TagID, &percentageStr); err != nil {
			return nil, fmt.Errorf("failed to scan target allocation: %w", err)
		}
		percentage, err := decimal.NewFromString(percentageStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse target_percentage: %w", err)
		}
		target.TargetPercentage = percentage
		targets = append(targets, &target)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate target allocations: %w", err)
	}

	return targets, nil
}

// ReplaceTargets deletes the group's complete target set and inserts the
// given one inside a single transaction, so a concurrent reader never
// observes a half-written configuration
func (r *groupRepository) ReplaceTargets(ctx context.Context, groupID uuid.UUID, targets []*domain.TargetAllocation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM target_allocations WHERE group_id = $1`, groupID,
	); err != nil {
		return fmt.Errorf("failed to clear target allocations: %w", err)
	}

	for _, target := range targets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO target_allocations (group_id, tag_id, target_percentage) VALUES ($1, $2, $3)`,
			groupID, target.TagID, target.TargetPercentage.String(),
		); err != nil {
			return fmt.Errorf("failed to insert target allocation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit target allocations: %w", err)
	}

	return nil
}
