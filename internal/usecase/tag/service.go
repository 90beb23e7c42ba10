package tag

import (
	"context"

	"github.com/google/uuid"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

// UpdateTagInput represents a partial update of a tag. Nil fields are left
// untouched.
type UpdateTagInput struct {
	Name  *string
	Color *string
}

// Service handles tag CRUD and tag-to-symbol membership operations
type Service struct {
	TagRepo domain.TagRepository
}

// NewService creates a new tag Service instance
func NewService(tagRepo domain.TagRepository) *Service {
	return &Service{TagRepo: tagRepo}
}

// CreateTag creates a new tag for the user
func (s *Service) CreateTag(ctx context.Context, userID uuid.UUID, name, color string) (*domain.Tag, error) {
	tag := &domain.Tag{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Color:  color,
	}

	if err := tag.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.TagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// UpdateTag applies a partial update to a tag
func (s *Service) UpdateTag(ctx context.Context, userID, tagID uuid.UUID, input UpdateTagInput) (*domain.Tag, error) {
	tag, err := s.TagRepo.GetByID(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tag.Name = *input.Name
	}
	if input.Color != nil {
		tag.Color = *input.Color
	}

	if err := tag.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.TagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// DeleteTag removes a tag and its symbol associations.
// Deleting a nonexistent tag returns false rather than an error.
func (s *Service) DeleteTag(ctx context.Context, userID, tagID uuid.UUID) (bool, error) {
	return s.TagRepo.Delete(ctx, userID, tagID)
}

// GetTag retrieves a single tag owned by the user
func (s *Service) GetTag(ctx context.Context, userID, tagID uuid.UUID) (*domain.Tag, error) {
	return s.TagRepo.GetByID(ctx, userID, tagID)
}

// ListTags retrieves all tags owned by the user
func (s *Service) ListTags(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	return s.TagRepo.ListByUser(ctx, userID)
}

// ListSymbols retrieves the symbols currently labeled with the tag
func (s *Service) ListSymbols(ctx context.Context, userID, tagID uuid.UUID) ([]string, error) {
	return s.TagRepo.ListSymbols(ctx, userID, tagID)
}

// SetSymbols replaces the tag's symbol membership wholesale. Duplicate
// symbols are dropped, keeping first-occurrence order.
func (s *Service) SetSymbols(ctx context.Context, userID, tagID uuid.UUID, symbols []string) error {
	if _, err := s.TagRepo.GetByID(ctx, userID, tagID); err != nil {
		return err
	}

	seen := make(map[string]bool, len(symbols))
	deduped := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		deduped = append(deduped, symbol)
	}

	return s.TagRepo.ReplaceSymbols(ctx, userID, tagID, deduped)
}
