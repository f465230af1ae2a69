// Package cache bounds recognition results in memory so reprocessing a
// recently seen screenshot skips the OCR engine.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
)

// DefaultCapacity matches the bound used for recognition results; OCR
// output for a single screenshot is small, so a few hundred entries is
// still cheap.
const DefaultCapacity = 100

// Ensure LRU implements the interface.
var _ driven.RecognitionCache = (*LRU)(nil)

// LRU is a bounded recognition cache. Safe for concurrent use.
type LRU struct {
	entries *lru.Cache[string, domain.RecognitionResult]
}

// NewLRU creates a cache holding up to capacity results. capacity <= 0
// selects DefaultCapacity.
func NewLRU(capacity int) *LRU {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	// lru.New only fails on a non-positive size, which is handled above.
	entries, _ := lru.New[string, domain.RecognitionResult](capacity)
	return &LRU{entries: entries}
}

// Store records result under key, evicting the least recently used
// entry when full.
func (c *LRU) Store(key string, result domain.RecognitionResult) {
	c.entries.Add(key, result)
}

// Retrieve returns the cached result for key, if present.
func (c *LRU) Retrieve(key string) (domain.RecognitionResult, bool) {
	return c.entries.Get(key)
}

// Remove drops the entry for key.
func (c *LRU) Remove(key string) {
	c.entries.Remove(key)
}

// Clear drops every entry.
func (c *LRU) Clear() {
	c.entries.Purge()
}

// Len reports the current number of entries.
func (c *LRU) Len() int {
	return c.entries.Len()
}
