package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByAPIToken retrieves the user owning the given API token
	// Returns ErrUserNotFound if no user carries the token
	GetByAPIToken(ctx context.Context, token string) (*User, error)

	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// ListIDsWithSyncedHoldings retrieves the ids of users owning at least
	// one SYNCED holding, for the periodic price refresh
	ListIDsWithSyncedHoldings(ctx context.Context) ([]uuid.UUID, error)
}

// AccountRepository defines the interface for brokerage account persistence operations
type AccountRepository interface {
	// GetByID retrieves an account owned by userID
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Account, error)

	// ListByUser retrieves all accounts owned by userID
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Account, error)

	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// Delete removes an account and its holdings
	// Returns false (not an error) if no such account exists
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// HoldingRepository defines the interface for holding persistence operations
type HoldingRepository interface {
	// GetByID retrieves a holding owned by userID
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Holding, error)

	// ListByUser retrieves all holdings owned by userID
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Holding, error)

	// Create creates a new holding
	Create(ctx context.Context, holding *Holding) error

	// Update persists changed fields of an existing holding
	Update(ctx context.Context, holding *Holding) error

	// UpdateMarketValue sets a holding's last price and market value after a
	// quote refresh
	UpdateMarketValue(ctx context.Context, userID, id uuid.UUID, lastPrice, marketValue decimal.Decimal) error

	// Delete removes a holding
	// Returns false (not an error) if no such holding exists
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// TagRepository defines the interface for tag persistence operations.
// Tag-to-holding membership is by symbol: a tag labels symbols, and holdings
// pick the label up through their own symbol.
type TagRepository interface {
	// GetByID retrieves a tag owned by userID
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Tag, error)

	// ListByUser retrieves all tags owned by userID
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Tag, error)

	// Create creates a new tag
	Create(ctx context.Context, tag *Tag) error

	// Update persists changed fields of an existing tag
	Update(ctx context.Context, tag *Tag) error

	// Delete removes a tag and its symbol associations
	// Returns false (not an error) if no such tag exists
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)

	// ListSymbols retrieves the symbols currently associated with a tag
	ListSymbols(ctx context.Context, userID, tagID uuid.UUID) ([]string, error)

	// ReplaceSymbols replaces a tag's complete symbol set
	ReplaceSymbols(ctx context.Context, userID, tagID uuid.UUID, symbols []string) error
}

// GroupRepository defines the interface for rebalancing group and target
// allocation persistence operations
type GroupRepository interface {
	// GetByID retrieves a group (including its ordered tag ids) owned by userID
	GetByID(ctx context.Context, userID, id uuid.UUID) (*RebalancingGroup, error)

	// ListByUser retrieves all groups owned by userID
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*RebalancingGroup, error)

	// Create creates a new group with its tag associations
	Create(ctx context.Context, group *RebalancingGroup) error

	// Update persists the group's fields and replaces its tag associations
	// wholesale with group.TagIDs
	Update(ctx context.Context, group *RebalancingGroup) error

	// Delete removes a group, cascading to its tag associations and target
	// allocations. Returns false (not an error) if no such group exists
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)

	// GetTargets retrieves the group's target allocations
	GetTargets(ctx context.Context, groupID uuid.UUID) ([]*TargetAllocation, error)

	// ReplaceTargets deletes the group's complete target set and inserts the
	// given one as a single atomic transaction
	ReplaceTargets(ctx context.Context, groupID uuid.UUID, targets []*TargetAllocation) error
}
