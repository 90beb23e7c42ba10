package account

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

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

func TestCreateAccount(t *testing.T) {
	// Setup
	repo := new(MockAccountRepository)
	service := NewService(repo)
	userID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
		return a.UserID == userID && a.Name == "Brokerage" && a.Currency == "USD"
	})).Return(nil)

	// Execute
	created, err := service.CreateAccount(context.Background(), userID, "Brokerage", "vanguard", "USD")

	// Assert
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "vanguard", created.Broker)
	repo.AssertExpectations(t)
}

func TestCreateAccount_EmptyNameRejected(t *testing.T) {
	// Setup
	repo := new(MockAccountRepository)
	service := NewService(repo)

	// Execute
	_, err := service.CreateAccount(context.Background(), uuid.New(), "", "vanguard", "USD")

	// Assert
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteAccount_NonexistentReturnsFalse(t *testing.T) {
	// Setup
	repo := new(MockAccountRepository)
	service := NewService(repo)
	userID := uuid.New()
	accountID := uuid.New()

	repo.On("Delete", mock.Anything, userID, accountID).Return(false, nil)

	// Execute
	deleted, err := service.DeleteAccount(context.Background(), userID, accountID)

	// Assert
	assert.NoError(t, err)
	assert.False(t, deleted)
}
