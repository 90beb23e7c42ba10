package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/portfolio-rebalancer/backend/internal/domain"
	"github.com/portfolio-rebalancer/backend/internal/usecase/holding"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByAPIToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListIDsWithSyncedHoldings(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

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

func (m *MockHoldingRepository) Create(ctx context.Context, h *domain.Holding) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHoldingRepository) Update(ctx context.Context, h *domain.Holding) error {
	args := m.Called(ctx, h)
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

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

type MockQuoteFetcher struct {
	mock.Mock
}

func (m *MockQuoteFetcher) Quote(ctx context.Context, market, symbol string) (decimal.Decimal, string, error) {
	args := m.Called(ctx, market, symbol)
	return args.Get(0).(decimal.Decimal), args.String(1), args.Error(2)
}

func newTestScheduler(t *testing.T, userRepo *MockUserRepository, holdingRepo *MockHoldingRepository, accountRepo *MockAccountRepository, quotes *MockQuoteFetcher) *Scheduler {
	t.Helper()

	service := &holding.Service{
		HoldingRepo: holdingRepo,
		AccountRepo: accountRepo,
		Quotes:      quotes,
		Log:         zerolog.Nop(),
	}

	s, err := New("0 */15 * * * *", userRepo, service, zerolog.Nop())
	assert.NoError(t, err)
	return s
}

func TestRefreshAll_RefreshesEachUser(t *testing.T) {
	// Setup
	userRepo := new(MockUserRepository)
	holdingRepo := new(MockHoldingRepository)
	accountRepo := new(MockAccountRepository)
	quotes := new(MockQuoteFetcher)
	s := newTestScheduler(t, userRepo, holdingRepo, accountRepo, quotes)

	user1 := uuid.New()
	user2 := uuid.New()
	accountID := uuid.New()
	h := &domain.Holding{
		ID:        uuid.New(),
		UserID:    user1,
		AccountID: accountID,
		Symbol:    "VTI",
		Market:    "US",
		Quantity:  decimal.NewFromInt(10),
		Currency:  "USD",
		Source:    domain.HoldingSourceSynced,
	}

	userRepo.On("ListIDsWithSyncedHoldings", mock.Anything).Return([]uuid.UUID{user1, user2}, nil)
	holdingRepo.On("ListByUser", mock.Anything, user1).Return([]*domain.Holding{h}, nil)
	holdingRepo.On("ListByUser", mock.Anything, user2).Return([]*domain.Holding{}, nil)
	accountRepo.On("GetByID", mock.Anything, user1, accountID).Return(&domain.Account{ID: accountID, UserID: user1, Currency: "USD"}, nil)
	quotes.On("Quote", mock.Anything, "US", "VTI").Return(decimal.NewFromInt(250), "USD", nil)
	holdingRepo.On("UpdateMarketValue", mock.Anything, user1, h.ID, decimal.NewFromInt(250), decimal.NewFromInt(2500)).Return(nil)

	// Execute
	s.refreshAll()

	// Assert
	holdingRepo.AssertExpectations(t)
	quotes.AssertExpectations(t)
}

func TestRefreshAll_UserFailureDoesNotStopSweep(t *testing.T) {
	// Setup
	userRepo := new(MockUserRepository)
	holdingRepo := new(MockHoldingRepository)
	accountRepo := new(MockAccountRepository)
	quotes := new(MockQuoteFetcher)
	s := newTestScheduler(t, userRepo, holdingRepo, accountRepo, quotes)

	user1 := uuid.New()
	user2 := uuid.New()

	userRepo.On("ListIDsWithSyncedHoldings", mock.Anything).Return([]uuid.UUID{user1, user2}, nil)
	holdingRepo.On("ListByUser", mock.Anything, user1).Return(nil, errors.New("db down"))
	holdingRepo.On("ListByUser", mock.Anything, user2).Return([]*domain.Holding{}, nil)

	// Execute
	s.refreshAll()

	// Assert
	holdingRepo.AssertExpectations(t)
}

func TestRefreshAll_ListUsersFailure(t *testing.T) {
	// Setup
	userRepo := new(MockUserRepository)
	holdingRepo := new(MockHoldingRepository)
	accountRepo := new(MockAccountRepository)
	quotes := new(MockQuoteFetcher)
	s := newTestScheduler(t, userRepo, holdingRepo, accountRepo, quotes)

	userRepo.On("ListIDsWithSyncedHoldings", mock.Anything).Return(nil, errors.New("db down"))

	// Execute
	s.refreshAll()

	// Assert
	holdingRepo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}
