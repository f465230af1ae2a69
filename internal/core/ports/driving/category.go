package driving

import (
	"context"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

// CategoryManager exposes category administration to the CLI.
type CategoryManager interface {
	// Add creates or updates a category.
	Add(ctx context.Context, name string, keywords []string) error

	// SetKeywords replaces the keywords of an existing category.
	SetKeywords(ctx context.Context, name string, keywords []string) error

	// Remove deletes a category.
	Remove(ctx context.Context, name string) error

	// Get returns a category by name.
	Get(ctx context.Context, name string) (*domain.Category, error)

	// List returns all categories, oldest first.
	List(ctx context.Context) ([]domain.Category, error)

	// Search returns categories whose keywords match keyword.
	Search(ctx context.Context, keyword string) ([]domain.Category, error)
}
