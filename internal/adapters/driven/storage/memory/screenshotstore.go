// Package memory provides in-memory store implementations used in
// tests and as lightweight fallbacks.
package memory

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
)

// Ensure ScreenshotStore implements the interface.
var _ driven.ScreenshotStore = (*ScreenshotStore)(nil)

// ScreenshotStore is an in-memory driven.ScreenshotStore.
type ScreenshotStore struct {
	mu      sync.RWMutex
	records map[string]domain.Screenshot

	// statFunc reports file existence; overridable in tests.
	statFunc func(string) bool
}

// NewScreenshotStore creates an empty in-memory screenshot store.
func NewScreenshotStore() *ScreenshotStore {
	return &ScreenshotStore{
		records: make(map[string]domain.Screenshot),
		statFunc: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// SetStatFunc overrides file-existence checking for tests.
func (s *ScreenshotStore) SetStatFunc(f func(string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statFunc = f
}

// Save upserts a record by path.
func (s *ScreenshotStore) Save(_ context.Context, path, text, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[path] = domain.Screenshot{
		Path:      path,
		Text:      text,
		Category:  category,
		CreatedAt: time.Now(),
	}
	return nil
}

// UpdateCategory changes the category for path, creating a minimal
// record when none exists.
func (s *ScreenshotStore) UpdateCategory(ctx context.Context, path, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[path]
	if !ok {
		record = domain.Screenshot{Path: path, CreatedAt: time.Now()}
	}
	record.Category = category
	s.records[path] = record
	return nil
}

// Get retrieves the record for path.
func (s *ScreenshotStore) Get(_ context.Context, path string) (*domain.Screenshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Exists reports whether a record exists for path.
func (s *ScreenshotStore) Exists(_ context.Context, path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[path]
	return ok, nil
}

// Delete removes the record for path.
func (s *ScreenshotStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, path)
	return nil
}

// Search returns records whose text contains keyword, case-insensitively.
func (s *ScreenshotStore) Search(_ context.Context, keyword string) ([]domain.Screenshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(keyword)
	var out []domain.Screenshot
	for _, record := range s.records {
		if strings.Contains(strings.ToLower(record.Text), needle) {
			out = append(out, record)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// ListByCategory returns records filed under category, newest first.
func (s *ScreenshotStore) ListByCategory(_ context.Context, category string) ([]domain.Screenshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Screenshot
	for _, record := range s.records {
		if record.Category == category {
			out = append(out, record)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// CleanupInvalid removes records whose files no longer exist.
func (s *ScreenshotStore) CleanupInvalid(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for path := range s.records {
		if !s.statFunc(path) {
			delete(s.records, path)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored records.
func (s *ScreenshotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func sortNewestFirst(records []domain.Screenshot) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
