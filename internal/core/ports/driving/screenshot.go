package driving

import (
	"context"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

// ScreenshotInventory exposes read and maintenance operations over
// processed screenshots to the CLI.
type ScreenshotInventory interface {
	// Search returns screenshots whose text contains keyword.
	Search(ctx context.Context, keyword string) ([]domain.Screenshot, error)

	// ListByCategory returns screenshots filed under category, newest
	// first.
	ListByCategory(ctx context.Context, category string) ([]domain.Screenshot, error)

	// Reclassify assigns a screenshot to a different category,
	// moving the file and updating its record.
	Reclassify(ctx context.Context, path, category string) (string, error)

	// Cleanup removes records whose files no longer exist and
	// returns the number removed.
	Cleanup(ctx context.Context) (int, error)
}
