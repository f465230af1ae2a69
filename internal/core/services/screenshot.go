package services

import (
	"context"
	"fmt"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driving"
	"github.com/clipsort/clipsort-cli/internal/logger"
)

// Ensure ScreenshotService implements the interface.
var _ driving.ScreenshotInventory = (*ScreenshotService)(nil)

// ScreenshotService exposes queries and maintenance over processed
// screenshots.
type ScreenshotService struct {
	store     driven.ScreenshotStore
	organizer driven.FileOrganizer
}

// NewScreenshotService creates a screenshot service. organizer is only
// needed for Reclassify and may be nil otherwise.
func NewScreenshotService(store driven.ScreenshotStore, organizer driven.FileOrganizer) *ScreenshotService {
	return &ScreenshotService{store: store, organizer: organizer}
}

// Search returns screenshots whose recognised text contains keyword.
func (s *ScreenshotService) Search(ctx context.Context, keyword string) ([]domain.Screenshot, error) {
	return s.store.Search(ctx, keyword)
}

// ListByCategory returns screenshots filed under category, newest first.
func (s *ScreenshotService) ListByCategory(ctx context.Context, category string) ([]domain.Screenshot, error) {
	return s.store.ListByCategory(ctx, category)
}

// Reclassify moves an already-filed screenshot to a different category
// and updates its record to the new path. Returns the new path.
func (s *ScreenshotService) Reclassify(ctx context.Context, path, category string) (string, error) {
	if s.organizer == nil {
		return "", fmt.Errorf("%w: no organizer configured", domain.ErrInvalidInput)
	}

	record, err := s.store.Get(ctx, path)
	if err != nil {
		return "", err
	}

	newPath, err := s.organizer.MoveScreenshot(path, category)
	if err != nil {
		return "", err
	}

	// The file has moved; the old record is now stale either way, so
	// replace it and surface any store error without rolling back.
	if err := s.store.Delete(ctx, path); err != nil {
		logger.Warn("delete stale record for %s: %v", path, err)
	}
	if err := s.store.Save(ctx, newPath, record.Text, category); err != nil {
		return newPath, fmt.Errorf("save reclassified record: %w", err)
	}
	return newPath, nil
}

// Cleanup removes records whose files no longer exist on disk.
func (s *ScreenshotService) Cleanup(ctx context.Context) (int, error) {
	return s.store.CleanupInvalid(ctx)
}
