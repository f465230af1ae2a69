package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

func result(text string) domain.RecognitionResult {
	return domain.RecognitionResult{FormattedText: text}
}

func TestLRU_StoreRetrieve(t *testing.T) {
	c := NewLRU(10)

	c.Store("/tmp/a.png", result("alpha"))

	got, ok := c.Retrieve("/tmp/a.png")
	require.True(t, ok)
	assert.Equal(t, "alpha", got.FormattedText)

	_, ok = c.Retrieve("/tmp/missing.png")
	assert.False(t, ok)
}

func TestLRU_EvictsOldest(t *testing.T) {
	c := NewLRU(3)

	for i := 0; i < 4; i++ {
		c.Store(fmt.Sprintf("/tmp/%d.png", i), result("x"))
	}

	assert.Equal(t, 3, c.Len())
	_, ok := c.Retrieve("/tmp/0.png")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Retrieve("/tmp/3.png")
	assert.True(t, ok)
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c := NewLRU(0)
	c.Store("a", result("x"))
	c.Store("b", result("y"))

	c.Remove("a")
	_, ok := c.Retrieve("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
}
