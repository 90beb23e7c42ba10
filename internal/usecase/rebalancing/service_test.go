package rebalancing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

func newTestService() (*Service, *MockGroupRepository, *MockTagRepository, *MockHoldingRepository) {
	groupRepo := new(MockGroupRepository)
	tagRepo := new(MockTagRepository)
	holdingRepo := new(MockHoldingRepository)
	return NewService(groupRepo, tagRepo, holdingRepo), groupRepo, tagRepo, holdingRepo
}

func TestCreateGroup_DeduplicatesTagIDs(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	tagA := uuid.New()
	tagB := uuid.New()

	// Duplicate tagA must be dropped, first-occurrence order preserved
	groupRepo.On("Create", ctx, mock.MatchedBy(func(g *domain.RebalancingGroup) bool {
		return len(g.TagIDs) == 2 && g.TagIDs[0] == tagA && g.TagIDs[1] == tagB
	})).Return(nil)

	group, err := service.CreateGroup(ctx, userID, CreateGroupInput{
		Name:   "Growth",
		TagIDs: []uuid.UUID{tagA, tagB, tagA},
	})

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{tagA, tagB}, group.TagIDs)
	assert.Equal(t, group.CreatedAt, group.UpdatedAt)
	groupRepo.AssertExpectations(t)
}

func TestCreateGroup_EmptyNameRejected(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	_, err := service.CreateGroup(ctx, uuid.New(), CreateGroupInput{Name: ""})

	assert.Error(t, err)
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	groupRepo.AssertNotCalled(t, "Create")
}

func TestUpdateGroup_ReplacesTagsWholesale(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	groupID := uuid.New()
	oldTag := uuid.New()
	newTagA := uuid.New()
	newTagB := uuid.New()

	existing := &domain.RebalancingGroup{
		ID:     groupID,
		UserID: userID,
		Name:   "Growth",
		TagIDs: []uuid.UUID{oldTag},
	}

	groupRepo.On("GetByID", ctx, userID, groupID).Return(existing, nil)
	groupRepo.On("Update", ctx, mock.MatchedBy(func(g *domain.RebalancingGroup) bool {
		return len(g.TagIDs) == 2 && g.TagIDs[0] == newTagA && g.TagIDs[1] == newTagB
	})).Return(nil)

	// [a, b, a] collapses to [a, b]; the old association is gone entirely
	group, err := service.UpdateGroup(ctx, userID, groupID, UpdateGroupInput{
		TagIDs: []uuid.UUID{newTagA, newTagB, newTagA},
	})

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{newTagA, newTagB}, group.TagIDs)
	groupRepo.AssertExpectations(t)
}

func TestUpdateGroup_OmittedFieldsUntouched(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	groupID := uuid.New()
	tagID := uuid.New()

	existing := &domain.RebalancingGroup{
		ID:          groupID,
		UserID:      userID,
		Name:        "Growth",
		Description: "long-horizon bucket",
		TagIDs:      []uuid.UUID{tagID},
	}

	groupRepo.On("GetByID", ctx, userID, groupID).Return(existing, nil)
	groupRepo.On("Update", ctx, mock.Anything).Return(nil)

	newName := "Aggressive growth"
	group, err := service.UpdateGroup(ctx, userID, groupID, UpdateGroupInput{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "Aggressive growth", group.Name)
	assert.Equal(t, "long-horizon bucket", group.Description)
	assert.Equal(t, []uuid.UUID{tagID}, group.TagIDs)
	groupRepo.AssertExpectations(t)
}

func TestUpdateGroup_NotFound(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	groupID := uuid.New()
	groupRepo.On("GetByID", ctx, userID, groupID).Return(nil, domain.ErrGroupNotFound)

	_, err := service.UpdateGroup(ctx, userID, groupID, UpdateGroupInput{})

	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
	groupRepo.AssertNotCalled(t, "Update")
}

func TestDeleteGroup_NonexistentReturnsFalse(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	groupID := uuid.New()
	groupRepo.On("Delete", ctx, userID, groupID).Return(false, nil)

	deleted, err := service.DeleteGroup(ctx, userID, groupID)

	// Idempotent delete: false, not an error
	assert.NoError(t, err)
	assert.False(t, deleted)
	groupRepo.AssertExpectations(t)
}

func TestSetTargetAllocations_Accepted(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	groupID := uuid.New()
	tagA := uuid.New()
	tagB := uuid.New()

	group := &domain.RebalancingGroup{
		ID:     groupID,
		UserID: userID,
		Name:   "Core",
		TagIDs: []uuid.UUID{tagA, tagB},
	}

	groupRepo.On("GetByID", ctx, userID, groupID).Return(group, nil)
	groupRepo.On("ReplaceTargets", ctx, groupID, mock.MatchedBy(func(targets []*domain.TargetAllocation) bool {
		return len(targets) == 2 &&
			targets[0].TagID == tagA && targets[0].TargetPercentage.Equal(decimal.NewFromInt(60)) &&
			targets[1].TagID == tagB && targets[1].TargetPercentage.Equal(decimal.NewFromInt(40))
	})).Return(nil)

	err := service.SetTargetAllocations(ctx, userID, groupID, []TargetInput{
		{TagID: tagA, TargetPercentage: decimal.NewFromInt(60)},
		{TagID: tagB, TargetPercentage: decimal.NewFromInt(40)},
	})

	assert.NoError(t, err)
	groupRepo.AssertExpectations(t)
}

func TestSetTargetAllocations_SumNot100Rejected(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	groupID := uuid.New()
	tagA := uuid.New()
	tagB := uuid.New()

	group := &domain.RebalancingGroup{
		ID:     groupID,
		UserID: userID,
		Name:   "Core",
		TagIDs: []uuid.UUID{tagA, tagB},
	}

	groupRepo.On("GetByID", ctx, userID, groupID).Return(group, nil)

	// 50 + 40 = 90: rejected, store untouched
	err := service.SetTargetAllocations(ctx, userID, groupID, []TargetInput{
		{TagID: tagA, TargetPercentage: decimal.NewFromInt(50)},
		{TagID: tagB, TargetPercentage: decimal.NewFromInt(40)},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 100")
	groupRepo.AssertNotCalled(t, "ReplaceTargets")
}

func TestSetTargetAllocations_SumWithinTolerance(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	groupID := uuid.New()
	tagA := uuid.New()
	tagB := uuid.New()

	group := &domain.RebalancingGroup{
		ID:     groupID,
		UserID: userID,
		Name:   "Core",
		TagIDs: []uuid.UUID{tagA, tagB},
	}

	groupRepo.On("GetByID", ctx, userID, groupID).Return(group, nil)
	groupRepo.On("ReplaceTargets", ctx, groupID, mock.Anything).Return(nil)

	// 33.33 + 66.66 = 99.99, inside the 0.01 tolerance
	err := service.SetTargetAllocations(ctx, userID, groupID, []TargetInput{
		{TagID: tagA, TargetPercentage: decimal.NewFromFloat(33.33)},
		{TagID: tagB, TargetPercentage: decimal.NewFromFloat(66.66)},
	})

	assert.NoError(t, err)
	groupRepo.AssertExpectations(t)
}

func TestSetTargetAllocations_InvalidTagIDsListedJointly(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	groupID := uuid.New()
	member := uuid.New()
	strangerA := uuid.New()
	strangerB := uuid.New()

	group := &domain.RebalancingGroup{
		ID:     groupID,
		UserID: userID,
		Name:   "Core",
		TagIDs: []uuid.UUID{member},
	}

	groupRepo.On("GetByID", ctx, userID, groupID).Return(group, nil)

	err := service.SetTargetAllocations(ctx, userID, groupID, []TargetInput{
		{TagID: member, TargetPercentage: decimal.NewFromInt(50)},
		{TagID: strangerA, TargetPercentage: decimal.NewFromInt(30)},
		{TagID: strangerB, TargetPercentage: decimal.NewFromInt(20)},
	})

	assert.Error(t, err)
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	// Every offending id is reported at once
	assert.ElementsMatch(t, []uuid.UUID{strangerA, strangerB}, validationErr.TagIDs)
	assert.Contains(t, err.Error(), strangerA.String())
	assert.Contains(t, err.Error(), strangerB.String())
	groupRepo.AssertNotCalled(t, "ReplaceTargets")
}

func TestSetTargetAllocations_EmptyListClearsTargets(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	groupID := uuid.New()

	group := &domain.RebalancingGroup{
		ID:     groupID,
		UserID: userID,
		Name:   "Core",
		TagIDs: []uuid.UUID{uuid.New()},
	}

	groupRepo.On("GetByID", ctx, userID, groupID).Return(group, nil)
	groupRepo.On("ReplaceTargets", ctx, groupID, []*domain.TargetAllocation(nil)).Return(nil)

	// An empty list skips the sum check and clears the group's targets
	err := service.SetTargetAllocations(ctx, userID, groupID, nil)

	assert.NoError(t, err)
	groupRepo.AssertExpectations(t)
}

func TestSetTargetAllocations_GroupNotFound(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	groupID := uuid.New()
	groupRepo.On("GetByID", ctx, userID, groupID).Return(nil, domain.ErrGroupNotFound)

	err := service.SetTargetAllocations(ctx, userID, groupID, []TargetInput{
		{TagID: uuid.New(), TargetPercentage: decimal.NewFromInt(100)},
	})

	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
	groupRepo.AssertNotCalled(t, "ReplaceTargets")
}

func TestSetTargetAllocations_PercentageOutOfRange(t *testing.T) {
	ctx := context.Background()
	service, groupRepo, _, _ := newTestService()

	userID := uuid.New()
	groupID := uuid.New()
	tagA := uuid.New()
	tagB := uuid.New()

	group := &domain.RebalancingGroup{
		ID:     groupID,
		UserID: userID,
		Name:   "Core",
		TagIDs: []uuid.UUID{tagA, tagB},
	}

	groupRepo.On("GetByID", ctx, userID, groupID).Return(group, nil)

	// Sums to 100 but a negative entry is still invalid
	err := service.SetTargetAllocations(ctx, userID, groupID, []TargetInput{
		{TagID: tagA, TargetPercentage: decimal.NewFromInt(110)},
		{TagID: tagB, TargetPercentage: decimal.NewFromInt(-10)},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "between 0 and 100")
	groupRepo.AssertNotCalled(t, "ReplaceTargets")
}
