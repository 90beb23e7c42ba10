package rebalancing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

// CreateGroupInput represents the input for creating a rebalancing group
type CreateGroupInput struct {
	Name        string
	Description string
	TagIDs      []uuid.UUID
}

// UpdateGroupInput represents a partial update of a rebalancing group.
// Nil fields are left untouched; a non-nil TagIDs replaces the group's tag
// associations wholesale.
type UpdateGroupInput struct {
	Name        *string
	Description *string
	TagIDs      []uuid.UUID
}

// TargetInput is one proposed (tag, percentage) pair for SetTargetAllocations
type TargetInput struct {
	TagID            uuid.UUID
	TargetPercentage decimal.Decimal
}

// Service handles rebalancing group lifecycle, target allocation
// configuration, allocation analysis and investment recommendations
type Service struct {
	GroupRepo   domain.GroupRepository
	TagRepo     domain.TagRepository
	HoldingRepo domain.HoldingRepository
}

// NewService creates a new rebalancing Service instance
func NewService(
	groupRepo domain.GroupRepository,
	tagRepo domain.TagRepository,
	holdingRepo domain.HoldingRepository,
) *Service {
	return &Service{
		GroupRepo:   groupRepo,
		TagRepo:     tagRepo,
		HoldingRepo: holdingRepo,
	}
}

// CreateGroup creates a rebalancing group. Duplicate tag ids are removed
// before persisting, keeping the first occurrence of each id in input order.
func (s *Service) CreateGroup(ctx context.Context, userID uuid.UUID, input CreateGroupInput) (*domain.RebalancingGroup, error) {
	now := time.Now()
	group := &domain.RebalancingGroup{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		TagIDs:      domain.DedupTagIDs(input.TagIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := group.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.GroupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// UpdateGroup applies a partial update to a group. When TagIDs is present
// the existing tag associations are fully replaced in de-duplicated input
// order; when omitted they are left untouched.
func (s *Service) UpdateGroup(ctx context.Context, userID, groupID uuid.UUID, input UpdateGroupInput) (*domain.RebalancingGroup, error) {
	group, err := s.GroupRepo.GetByID(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		group.Name = *input.Name
	}
	if input.Description != nil {
		group.Description = *input.Description
	}
	if input.TagIDs != nil {
		group.TagIDs = domain.DedupTagIDs(input.TagIDs)
	}
	group.UpdatedAt = time.Now()

	if err := group.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.GroupRepo.Update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// DeleteGroup removes a group and, via the store's cascade, its target
// allocations. Deleting a nonexistent group returns false rather than an
// error so deletes stay idempotent.
func (s *Service) DeleteGroup(ctx context.Context, userID, groupID uuid.UUID) (bool, error) {
	return s.GroupRepo.Delete(ctx, userID, groupID)
}

// GetGroup retrieves a single group owned by the user
func (s *Service) GetGroup(ctx context.Context, userID, groupID uuid.UUID) (*domain.RebalancingGroup, error) {
	return s.GroupRepo.GetByID(ctx, userID, groupID)
}

// ListGroups retrieves all groups owned by the user
func (s *Service) ListGroups(ctx context.Context, userID uuid.UUID) ([]*domain.RebalancingGroup, error) {
	return s.GroupRepo.ListByUser(ctx, userID)
}

// SetTargetAllocations validates and stores a group's complete target set.
// Checks run in order, first failure wins:
//  1. The group must exist.
//  2. Percentages must sum to 100 within domain.TargetSumTolerance.
//  3. Every proposed tag id must be a member of the group; violations are
//     reported jointly, listing all offending ids.
//
// On acceptance the existing target set is deleted and replaced by exactly
// the proposed set in one atomic transaction.
//
// An empty target list bypasses the sum check and clears all targets for the
// group. This is the documented way to reset a group's configuration.
func (s *Service) SetTargetAllocations(ctx context.Context, userID, groupID uuid.UUID, targets []TargetInput) error {
	group, err := s.GroupRepo.GetByID(ctx, userID, groupID)
	if err != nil {
		return err
	}

	if len(targets) == 0 {
		return s.GroupRepo.ReplaceTargets(ctx, group.ID, nil)
	}

	sum := decimal.Zero
	for _, t := range targets {
		sum = sum.Add(t.TargetPercentage)
	}
	if sum.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(domain.TargetSumTolerance) {
		return domain.NewValidationError("target percentages must sum to 100")
	}

	var invalid []uuid.UUID
	for _, t := range targets {
		if !group.ContainsTag(t.TagID) {
			invalid = append(invalid, t.TagID)
		}
	}
	if len(invalid) > 0 {
		return &domain.ValidationError{
			Message: "target tag ids are not members of the group",
			TagIDs:  invalid,
		}
	}

	allocations := make([]*domain.TargetAllocation, 0, len(targets))
	for _, t := range targets {
		allocation := &domain.TargetAllocation{
			GroupID:          group.ID,
			TagID:            t.TagID,
			TargetPercentage: t.TargetPercentage,
		}
		if err := allocation.Validate(); err != nil {
			return domain.NewValidationError(err.Error())
		}
		allocations = append(allocations, allocation)
	}

	return s.GroupRepo.ReplaceTargets(ctx, group.ID, allocations)
}
