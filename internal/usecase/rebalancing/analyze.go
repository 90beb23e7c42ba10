package rebalancing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

// tagSnapshot bundles one tag's metadata, its symbol membership and the
// aggregated market value of those symbols at analysis time.
type tagSnapshot struct {
	tag     *domain.Tag
	symbols []string
	value   decimal.Decimal
}

// Analyze computes a group's current-vs-target composition.
// Each group tag's value is the sum of the market values of the holdings
// whose symbol is tagged with it; tags whose metadata cannot be resolved are
// skipped and contribute nothing. Tag values are summed independently into
// TotalValue, so a symbol tagged under two group tags is counted twice.
func (s *Service) Analyze(ctx context.Context, userID, groupID uuid.UUID) (*domain.RebalancingAnalysis, error) {
	analysis, _, err := s.analyzeGroup(ctx, userID, groupID)
	return analysis, err
}

// analyzeGroup performs the analysis and additionally returns the per-tag
// snapshots so the recommendation engine can reuse the symbol membership
// without a second round of lookups.
func (s *Service) analyzeGroup(ctx context.Context, userID, groupID uuid.UUID) (*domain.RebalancingAnalysis, []tagSnapshot, error) {
	group, err := s.GroupRepo.GetByID(ctx, userID, groupID)
	if err != nil {
		return nil, nil, err
	}

	snapshots, err := s.collectTagSnapshots(ctx, userID, group)
	if err != nil {
		return nil, nil, err
	}

	targets, err := s.GroupRepo.GetTargets(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}
	targetByTag := make(map[uuid.UUID]decimal.Decimal, len(targets))
	for _, t := range targets {
		targetByTag[t.TagID] = t.TargetPercentage
	}

	totalValue := decimal.Zero
	for _, snap := range snapshots {
		totalValue = totalValue.Add(snap.value)
	}

	hundred := decimal.NewFromInt(100)
	allocations := make([]domain.TagAllocation, 0, len(snapshots))
	for _, snap := range snapshots {
		currentPct := decimal.Zero
		if totalValue.IsPositive() {
			currentPct = snap.value.Div(totalValue).Mul(hundred)
		}
		targetPct := targetByTag[snap.tag.ID] // zero value when unset

		allocations = append(allocations, domain.TagAllocation{
			TagID:             snap.tag.ID,
			TagName:           snap.tag.Name,
			TagColor:          snap.tag.Color,
			CurrentValue:      snap.value,
			CurrentPercentage: currentPct,
			TargetPercentage:  targetPct,
			Difference:        targetPct.Sub(currentPct),
		})
	}

	analysis := &domain.RebalancingAnalysis{
		GroupID:     group.ID,
		GroupName:   group.Name,
		TotalValue:  totalValue,
		Allocations: allocations,
		LastUpdated: time.Now(),
	}
	return analysis, snapshots, nil
}

// collectTagSnapshots resolves metadata, symbol membership and aggregated
// value for each of the group's tags. Lookups are independent per tag, so
// they fan out concurrently; the returned slice still follows the group's
// tag order, with unresolvable tags dropped.
func (s *Service) collectTagSnapshots(ctx context.Context, userID uuid.UUID, group *domain.RebalancingGroup) ([]tagSnapshot, error) {
	holdings, err := s.HoldingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// A symbol may appear in several accounts; its value is the sum.
	valueBySymbol := make(map[string]decimal.Decimal, len(holdings))
	for _, h := range holdings {
		valueBySymbol[h.Symbol] = valueBySymbol[h.Symbol].Add(h.MarketValue)
	}

	results := make([]*tagSnapshot, len(group.TagIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, tagID := range group.TagIDs {
		i, tagID := i, tagID
		g.Go(func() error {
			tag, err := s.TagRepo.GetByID(gctx, userID, tagID)
			if err != nil {
				if errors.Is(err, domain.ErrTagNotFound) {
					// Stale group membership; the tag contributes nothing.
					return nil
				}
				return err
			}

			symbols, err := s.TagRepo.ListSymbols(gctx, userID, tagID)
			if err != nil {
				return err
			}

			value := decimal.Zero
			for _, symbol := range symbols {
				value = value.Add(valueBySymbol[symbol]) // zero for untracked symbols
			}

			results[i] = &tagSnapshot{tag: tag, symbols: symbols, value: value}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshots := make([]tagSnapshot, 0, len(results))
	for _, r := range results {
		if r != nil {
			snapshots = append(snapshots, *r)
		}
	}
	return snapshots, nil
}
