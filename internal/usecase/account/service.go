package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

// Service handles brokerage account operations
type Service struct {
	AccountRepo domain.AccountRepository
}

// NewService creates a new account Service instance
func NewService(accountRepo domain.AccountRepository) *Service {
	return &Service{AccountRepo: accountRepo}
}

// CreateAccount creates a new brokerage account for the user
func (s *Service) CreateAccount(ctx context.Context, userID uuid.UUID, name, broker, currency string) (*domain.Account, error) {
	account := &domain.Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Broker:    broker,
		Currency:  currency,
		CreatedAt: time.Now(),
	}

	if err := account.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.AccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves a single account owned by the user
func (s *Service) GetAccount(ctx context.Context, userID, accountID uuid.UUID) (*domain.Account, error) {
	return s.AccountRepo.GetByID(ctx, userID, accountID)
}

// ListAccounts retrieves all accounts owned by the user
func (s *Service) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	return s.AccountRepo.ListByUser(ctx, userID)
}

// DeleteAccount removes an account and, via the store's cascade, its
// holdings. Deleting a nonexistent account returns false rather than an
// error.
func (s *Service) DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) (bool, error) {
	return s.AccountRepo.Delete(ctx, userID, accountID)
}
