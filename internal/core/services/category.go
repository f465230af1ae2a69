package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driving"
)

// Ensure CategoryService implements the interface.
var _ driving.CategoryManager = (*CategoryService)(nil)

// CategoryService manages user-defined categories.
type CategoryService struct {
	store driven.CategoryStore
}

// NewCategoryService creates a category service.
func NewCategoryService(store driven.CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// Add creates or updates a category. Saving an existing name replaces
// its keywords rather than failing.
func (s *CategoryService) Add(ctx context.Context, name string, keywords []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: category name is empty", domain.ErrInvalidInput)
	}
	// The name becomes a directory, so path separators are rejected.
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: category name %q contains a path separator", domain.ErrInvalidInput, name)
	}
	return s.store.Save(ctx, name, keywords)
}

// SetKeywords replaces the keywords of an existing category. Unlike
// Add this is strict: an unknown name is domain.ErrNotFound.
func (s *CategoryService) SetKeywords(ctx context.Context, name string, keywords []string) error {
	return s.store.UpdateKeywords(ctx, name, keywords)
}

// Remove deletes a category.
func (s *CategoryService) Remove(ctx context.Context, name string) error {
	return s.store.Delete(ctx, name)
}

// Get returns a category by name.
func (s *CategoryService) Get(ctx context.Context, name string) (*domain.Category, error) {
	return s.store.Get(ctx, name)
}

// List returns all categories, oldest first.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.store.List(ctx)
}

// Search returns categories whose keywords match keyword.
func (s *CategoryService) Search(ctx context.Context, keyword string) ([]domain.Category, error) {
	return s.store.Search(ctx, keyword)
}
