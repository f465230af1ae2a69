package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

func frag(text string, minX, minY float64) domain.Fragment {
	return domain.Fragment{
		Text:       text,
		Confidence: 0.9,
		Language:   domain.LanguageEnglish,
		Box:        &domain.Rect{MinX: minX, MinY: minY, Width: 0.1, Height: 0.02},
	}
}

func TestAssembler_ReadingOrder(t *testing.T) {
	a := NewAssembler(0.3)

	t.Run("higher fragment comes first", func(t *testing.T) {
		result := a.Assemble([]domain.Fragment{
			frag("Total: $42", 0.1, 0.8),
			frag("Invoice", 0.1, 0.9),
		})

		assert.Equal(t, "Invoice\nTotal: $42", result.FormattedText)
	})

	t.Run("same line orders left to right", func(t *testing.T) {
		result := a.Assemble([]domain.Fragment{
			frag("world", 0.5, 0.801),
			frag("hello", 0.1, 0.8),
		})

		assert.Equal(t, "hello world", result.FormattedText)
	})

	t.Run("mixed lines and columns", func(t *testing.T) {
		result := a.Assemble([]domain.Fragment{
			frag("amount", 0.6, 0.5),
			frag("Header", 0.1, 0.9),
			frag("item", 0.1, 0.5),
			frag("Subtitle", 0.1, 0.85),
		})

		assert.Equal(t, "Header\nSubtitle\nitem amount", result.FormattedText)
	})

	t.Run("fragments within threshold stay on one line", func(t *testing.T) {
		// 0.02 apart: same line despite the vertical wobble.
		result := a.Assemble([]domain.Fragment{
			frag("b", 0.5, 0.72),
			frag("a", 0.1, 0.7),
		})

		assert.Equal(t, "a b", result.FormattedText)
	})
}

func TestAssembler_ConfidenceFilter(t *testing.T) {
	a := NewAssembler(0.3)

	t.Run("drops fragments below the floor", func(t *testing.T) {
		low := frag("noise", 0.1, 0.5)
		low.Confidence = 0.1
		result := a.Assemble([]domain.Fragment{frag("keep", 0.1, 0.9), low})

		assert.Equal(t, "keep", result.FormattedText)
		assert.Len(t, result.Fragments, 1)
	})

	t.Run("all dropped yields empty result", func(t *testing.T) {
		low := frag("noise", 0.1, 0.5)
		low.Confidence = 0.05
		result := a.Assemble([]domain.Fragment{low})

		assert.True(t, result.IsEmpty())
		assert.Empty(t, result.FormattedText)
	})

	t.Run("no fragments yields empty result", func(t *testing.T) {
		assert.True(t, a.Assemble(nil).IsEmpty())
	})
}

func TestAssembler_BoxlessFragments(t *testing.T) {
	a := NewAssembler(0.3)

	boxless := domain.Fragment{Text: "floating", Confidence: 0.9, Language: domain.LanguageEnglish}
	result := a.Assemble([]domain.Fragment{
		frag("first", 0.1, 0.9),
		boxless,
		frag("second", 0.1, 0.5),
	})

	// The boxless fragment joins with a space and does not reset line
	// tracking, so the vertical gap still produces a newline.
	assert.Equal(t, "first floating\nsecond", result.FormattedText)
}

func TestAssembler_LanguageGrouping(t *testing.T) {
	a := NewAssembler(0.3)

	zh := frag("你好", 0.1, 0.9)
	zh.Language = domain.LanguageChinese
	en := frag("hello", 0.1, 0.5)

	result := a.Assemble([]domain.Fragment{zh, en})

	require.Len(t, result.ByLanguage, 2)
	assert.Len(t, result.ByLanguage[domain.LanguageChinese], 1)
	assert.Len(t, result.ByLanguage[domain.LanguageEnglish], 1)
}
