package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitmyphone-backend-go/internal/db"
	"fitmyphone-backend-go/internal/models"
)

// Custom errors for the CategoryService.
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

// categoryService implements the CategoryService interface.
type categoryService struct {
	categoryRepo db.CategoryRepository
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(categoryRepo db.CategoryRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

// List retrieves all categories.
func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Create adds a new category, rejecting duplicate names.
func (s *categoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name cannot be empty")
	}

	if _, err := s.categoryRepo.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrCategoryAlreadyExists, name)
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to check category '%s': %w", name, err)
	}

	category := &models.Category{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category '%s': %w", name, err)
	}
	return category, nil
}

// Delete removes a category. Accessories and contributions reference
// categories by name, so existing references become orphaned; that is the
// documented behavior of the data model.
func (s *categoryService) Delete(ctx context.Context, categoryID string) error {
	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category '%s': %w", categoryID, err)
	}
	return nil
}
