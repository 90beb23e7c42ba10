package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TargetSumTolerance is the absolute tolerance allowed when checking that a
// group's target percentages sum to 100.
var TargetSumTolerance = decimal.NewFromFloat(0.01)

// RebalancingGroup represents a named bucket of tags with target percentage
// weights. Tag ids are unique within a group; input order is preserved after
// de-duplication and analysis results follow it.
type RebalancingGroup struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	TagIDs      []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate ensures the group adheres to domain rules
func (g *RebalancingGroup) Validate() error {
	if g.Name == "" {
		return errors.New("rebalancing group name cannot be empty")
	}
	seen := make(map[uuid.UUID]bool, len(g.TagIDs))
	for _, id := range g.TagIDs {
		if seen[id] {
			return errors.New("rebalancing group tag ids must be unique")
		}
		seen[id] = true
	}
	return nil
}

// ContainsTag reports whether tagID is a member of the group
func (g *RebalancingGroup) ContainsTag(tagID uuid.UUID) bool {
	for _, id := range g.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// DedupTagIDs removes duplicate tag ids, keeping the first occurrence of each
// id in its original position
func DedupTagIDs(tagIDs []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(tagIDs))
	deduped := make([]uuid.UUID, 0, len(tagIDs))
	for _, id := range tagIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}
	return deduped
}

// TargetAllocation represents the desired percentage of total group value
// attributable to a given tag. For a configured group the percentages across
// all its tags sum to 100 within TargetSumTolerance.
type TargetAllocation struct {
	GroupID          uuid.UUID
	TagID            uuid.UUID
	TargetPercentage decimal.Decimal // in [0, 100]
}

// Validate ensures the target allocation adheres to domain rules
func (t *TargetAllocation) Validate() error {
	hundred := decimal.NewFromInt(100)
	if t.TargetPercentage.IsNegative() || t.TargetPercentage.GreaterThan(hundred) {
		return errors.New("target percentage must be between 0 and 100")
	}
	return nil
}

// TagAllocation is one row of a rebalancing analysis: a tag's aggregated
// current value and how its weight compares to the configured target.
type TagAllocation struct {
	TagID             uuid.UUID
	TagName           string
	TagColor          string
	CurrentValue      decimal.Decimal
	CurrentPercentage decimal.Decimal
	TargetPercentage  decimal.Decimal
	Difference        decimal.Decimal // target - current
}

// RebalancingAnalysis is the computed current-vs-target composition of a
// group. It is never persisted; LastUpdated is the wall-clock time of the
// computation, not of the underlying holding data.
type RebalancingAnalysis struct {
	GroupID     uuid.UUID
	GroupName   string
	TotalValue  decimal.Decimal
	Allocations []TagAllocation
	LastUpdated time.Time
}

// InvestmentRecommendation suggests how much of a new contribution to put
// into one tag. RecommendedPercentage is relative to the contribution, not
// the new total, and recommendations are independent per-tag shortfall
// figures: they are not normalized and may sum to more than the contribution.
type InvestmentRecommendation struct {
	TagID                 uuid.UUID
	TagName               string
	RecommendedAmount     decimal.Decimal
	RecommendedPercentage decimal.Decimal
	SuggestedSymbols      []string
}
