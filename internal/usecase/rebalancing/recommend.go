package rebalancing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

// Recommend computes how to split a new contribution across a group's tags
// to move the portfolio toward its target weights. For each tag:
//
//	targetValue = targetPct/100 * (totalValue + contribution)
//	recommendedAmount = max(0, targetValue - currentValue)
//
// RecommendedPercentage is the amount relative to the contribution (0 when
// the contribution is zero). Tags already above target receive 0. The
// figures are independent per tag: a single tag's shortfall may exceed the
// whole contribution, so percentages can top 100 and amounts are not
// guaranteed to sum to the contribution.
//
// This is a pure read; nothing is reserved or written.
func (s *Service) Recommend(ctx context.Context, userID, groupID uuid.UUID, contribution decimal.Decimal) ([]domain.InvestmentRecommendation, error) {
	if contribution.IsNegative() {
		return nil, domain.NewValidationError("investment amount cannot be negative")
	}

	analysis, snapshots, err := s.analyzeGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	symbolsByTag := make(map[uuid.UUID][]string, len(snapshots))
	for _, snap := range snapshots {
		symbolsByTag[snap.tag.ID] = snap.symbols
	}

	hundred := decimal.NewFromInt(100)
	newTotal := analysis.TotalValue.Add(contribution)

	recommendations := make([]domain.InvestmentRecommendation, 0, len(analysis.Allocations))
	for _, allocation := range analysis.Allocations {
		targetValue := allocation.TargetPercentage.Div(hundred).Mul(newTotal)
		neededValue := targetValue.Sub(allocation.CurrentValue)

		recommendedAmount := neededValue
		if recommendedAmount.IsNegative() {
			recommendedAmount = decimal.Zero
		}

		recommendedPct := decimal.Zero
		if contribution.IsPositive() {
			recommendedPct = recommendedAmount.Div(contribution).Mul(hundred)
		}

		recommendations = append(recommendations, domain.InvestmentRecommendation{
			TagID:                 allocation.TagID,
			TagName:               allocation.TagName,
			RecommendedAmount:     recommendedAmount,
			RecommendedPercentage: recommendedPct,
			SuggestedSymbols:      symbolsByTag[allocation.TagID],
		})
	}

	return recommendations, nil
}
