package driven

import (
	"context"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

// ScreenshotStore persists screenshot metadata, keyed by absolute path.
// Backed by SQLite for durable storage.
type ScreenshotStore interface {
	// Save upserts a record by path.
	Save(ctx context.Context, path, text, category string) error

	// UpdateCategory changes the category for path. This is
	// update-or-create: when no record exists a minimal one is
	// written rather than returning an error.
	UpdateCategory(ctx context.Context, path, category string) error

	// Get retrieves the record for path.
	// Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, path string) (*domain.Screenshot, error)

	// Exists reports whether a record exists for path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes the record for path.
	Delete(ctx context.Context, path string) error

	// Search returns records whose text contains keyword. Matching is
	// case-insensitive.
	Search(ctx context.Context, keyword string) ([]domain.Screenshot, error)

	// ListByCategory returns records filed under category, newest
	// first.
	ListByCategory(ctx context.Context, category string) ([]domain.Screenshot, error)

	// CleanupInvalid deletes every record whose path no longer exists
	// on disk and returns the number removed. Maintenance sweep, not
	// part of the pipeline hot path.
	CleanupInvalid(ctx context.Context) (int, error)
}

// CategoryStore persists user-defined categories, keyed by name.
type CategoryStore interface {
	// Save upserts a category by name.
	Save(ctx context.Context, name string, keywords []string) error

	// UpdateKeywords replaces the keywords for name.
	// Unlike screenshot updates this is strict: returns
	// domain.ErrNotFound when the category does not exist.
	UpdateKeywords(ctx context.Context, name string, keywords []string) error

	// Delete removes the category.
	// Returns domain.ErrNotFound when absent.
	Delete(ctx context.Context, name string) error

	// Get retrieves a category by name.
	// Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, name string) (*domain.Category, error)

	// List returns all categories ordered by creation time, oldest
	// first.
	List(ctx context.Context) ([]domain.Category, error)

	// Search returns categories with at least one keyword containing
	// keyword, case-insensitively.
	Search(ctx context.Context, keyword string) ([]domain.Category, error)
}

// StoreMaintenance covers housekeeping operations on the backing
// database. Best-effort; failures are surfaced but non-fatal.
type StoreMaintenance interface {
	// Backup writes a consistent copy of the database to destination.
	Backup(ctx context.Context, destination string) error

	// PerformMaintenance vacuums and re-analyses the database.
	PerformMaintenance(ctx context.Context) error
}
