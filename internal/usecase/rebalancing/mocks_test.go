package rebalancing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

// MockGroupRepository is a mock implementation of GroupRepository for testing
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.RebalancingGroup, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RebalancingGroup), args.Error(1)
}

func (m *MockGroupRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.RebalancingGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RebalancingGroup), args.Error(1)
}

func (m *MockGroupRepository) Create(ctx context.Context, group *domain.RebalancingGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) Update(ctx context.Context, group *domain.RebalancingGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) GetTargets(ctx context.Context, groupID uuid.UUID) ([]*domain.TargetAllocation, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TargetAllocation), args.Error(1)
}

func (m *MockGroupRepository) ReplaceTargets(ctx context.Context, groupID uuid.UUID, targets []*domain.TargetAllocation) error {
	args := m.Called(ctx, groupID, targets)
	return args.Error(0)
}

// MockTagRepository is a mock implementation of TagRepository for testing
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Tag, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) ListSymbols(ctx context.Context, userID, tagID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTagRepository) ReplaceSymbols(ctx context.Context, userID, tagID uuid.UUID, symbols []string) error {
	args := m.Called(ctx, userID, tagID, symbols)
	return args.Error(0)
}

// MockHoldingRepository is a mock implementation of HoldingRepository for testing
type MockHoldingRepository struct {
	mock.Mock
}

func (m *MockHoldingRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Holding, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) Create(ctx context.Context, holding *domain.Holding) error {
	args := m.Called(ctx, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) Update(ctx context.Context, holding *domain.Holding) error {
	args := m.Called(ctx, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) UpdateMarketValue(ctx context.Context, userID, id uuid.UUID, lastPrice, marketValue decimal.Decimal) error {
	args := m.Called(ctx, userID, id, lastPrice, marketValue)
	return args.Error(0)
}

func (m *MockHoldingRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}
