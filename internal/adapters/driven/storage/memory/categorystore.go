package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
)

// Ensure CategoryStore implements the interface.
var _ driven.CategoryStore = (*CategoryStore)(nil)

// CategoryStore is an in-memory driven.CategoryStore.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[string]domain.Category
}

// NewCategoryStore creates an empty in-memory category store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: make(map[string]domain.Category)}
}

// Save upserts a category by name, preserving the original creation
// time on update.
func (s *CategoryStore) Save(_ context.Context, name string, keywords []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	createdAt := time.Now()
	if existing, ok := s.categories[name]; ok {
		createdAt = existing.CreatedAt
	}
	s.categories[name] = domain.Category{
		Name:      name,
		Keywords:  append([]string(nil), keywords...),
		CreatedAt: createdAt,
	}
	return nil
}

// UpdateKeywords replaces the keywords of an existing category.
func (s *CategoryStore) UpdateKeywords(_ context.Context, name string, keywords []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[name]
	if !ok {
		return domain.ErrNotFound
	}
	category.Keywords = append([]string(nil), keywords...)
	s.categories[name] = category
	return nil
}

// Delete removes a category.
func (s *CategoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[name]; !ok {
		return domain.ErrNotFound
	}
	delete(s.categories, name)
	return nil
}

// Get retrieves a category by name.
func (s *CategoryStore) Get(_ context.Context, name string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &category, nil
}

// List returns all categories ordered by creation time, oldest first.
func (s *CategoryStore) List(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, category := range s.categories {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Search returns categories with a keyword containing keyword,
// case-insensitively.
func (s *CategoryStore) Search(_ context.Context, keyword string) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(keyword)
	var out []domain.Category
	for _, category := range s.categories {
		for _, kw := range category.Keywords {
			if strings.Contains(strings.ToLower(kw), needle) {
				out = append(out, category)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
