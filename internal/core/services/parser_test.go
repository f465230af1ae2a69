package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

func TestResponseParser_StrictJSON(t *testing.T) {
	p := NewResponseParser()

	t.Run("clean object", func(t *testing.T) {
		outcome, err := p.Parse(`{"category": "Work", "confidence": 0.87}`, nil)

		require.NoError(t, err)
		assert.Equal(t, "Work", outcome.Category)
		require.NotNil(t, outcome.Confidence)
		assert.InDelta(t, 0.87, *outcome.Confidence, 1e-9)
	})

	t.Run("object wrapped in chatter", func(t *testing.T) {
		raw := "Here you go:\n{\"category\": \"Work\", \"confidence\": 0.87}\nThanks!"
		outcome, err := p.Parse(raw, nil)

		require.NoError(t, err)
		assert.Equal(t, "Work", outcome.Category)
		require.NotNil(t, outcome.Confidence)
		assert.InDelta(t, 0.87, *outcome.Confidence, 1e-9)
	})

	t.Run("confidence is optional", func(t *testing.T) {
		outcome, err := p.Parse(`{"category": "Receipts"}`, nil)

		require.NoError(t, err)
		assert.Equal(t, "Receipts", outcome.Category)
		assert.Nil(t, outcome.Confidence)
	})

	t.Run("hallucinated category is trusted", func(t *testing.T) {
		// Structured tiers do not validate against known names.
		outcome, err := p.Parse(`{"category": "Llamas"}`, []string{"Work", "Life"})

		require.NoError(t, err)
		assert.Equal(t, "Llamas", outcome.Category)
	})
}

func TestResponseParser_GenericObject(t *testing.T) {
	p := NewResponseParser()

	// Extra fields defeat the strict tier but not the generic one.
	outcome, err := p.Parse(`{"category": "Work", "confidence": 0.5, "reasoning": "invoices"}`, nil)

	require.NoError(t, err)
	assert.Equal(t, "Work", outcome.Category)
	require.NotNil(t, outcome.Confidence)
	assert.InDelta(t, 0.5, *outcome.Confidence, 1e-9)
}

func TestResponseParser_RegexObjectExtraction(t *testing.T) {
	p := NewResponseParser()

	// Outer braces make the brace slice unparseable; the embedded
	// object is still recoverable by the substring tier.
	raw := `{thinking: the answer is {"category": "Work"} as requested}`
	outcome, err := p.Parse(raw, nil)

	require.NoError(t, err)
	assert.Equal(t, "Work", outcome.Category)
}

func TestResponseParser_FieldExtraction(t *testing.T) {
	p := NewResponseParser()

	t.Run("category embedded in prose without braces", func(t *testing.T) {
		raw := `The best match is "category": "Work" based on the content.`
		outcome, err := p.Parse(raw, nil)

		require.NoError(t, err)
		assert.Equal(t, "Work", outcome.Category)
		assert.Nil(t, outcome.Confidence)
	})

	t.Run("confidence recovered when present", func(t *testing.T) {
		raw := `"category": "Work" and "confidence": 0.75 roughly`
		outcome, err := p.Parse(raw, nil)

		require.NoError(t, err)
		assert.Equal(t, "Work", outcome.Category)
		require.NotNil(t, outcome.Confidence)
		assert.InDelta(t, 0.75, *outcome.Confidence, 1e-9)
	})

	t.Run("unparseable confidence is dropped", func(t *testing.T) {
		raw := `"category": "Work" with "confidence": ... unclear`
		outcome, err := p.Parse(raw, nil)

		require.NoError(t, err)
		assert.Equal(t, "Work", outcome.Category)
		assert.Nil(t, outcome.Confidence)
	})
}

func TestResponseParser_HeuristicInference(t *testing.T) {
	p := NewResponseParser()

	t.Run("known name co-occurring with the word category", func(t *testing.T) {
		raw := "I think the category here would be Work, probably."
		outcome, err := p.Parse(raw, []string{"Life", "Work"})

		require.NoError(t, err)
		assert.Equal(t, "Work", outcome.Category)
		assert.Nil(t, outcome.Confidence)
	})

	t.Run("first known name wins", func(t *testing.T) {
		raw := "category: could be work or life honestly"
		outcome, err := p.Parse(raw, []string{"Life", "Work"})

		require.NoError(t, err)
		assert.Equal(t, "Life", outcome.Category)
	})

	t.Run("without the word category it fails", func(t *testing.T) {
		_, err := p.Parse("probably Work", []string{"Work"})

		assert.ErrorIs(t, err, domain.ErrParseFailed)
	})

	t.Run("unknown names never inferred", func(t *testing.T) {
		_, err := p.Parse("the category is Gardening", []string{"Work"})

		assert.ErrorIs(t, err, domain.ErrParseFailed)
	})
}

func TestResponseParser_Exhaustion(t *testing.T) {
	p := NewResponseParser()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "plain prose", raw: "I cannot classify this text."},
		{name: "object without category", raw: `{"label": "Work"}`},
		{name: "empty category value", raw: `{"category": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.raw, []string{"Work"})
			assert.ErrorIs(t, err, domain.ErrParseFailed)
		})
	}
}

// TestResponseParser_TierOrdering crafts inputs that only one tier can
// satisfy and checks the earlier tiers were genuinely exhausted, i.e.
// the parser never jumps ahead of a tier that would have succeeded.
func TestResponseParser_TierOrdering(t *testing.T) {
	p := NewResponseParser()

	t.Run("field extraction only fires without any object", func(t *testing.T) {
		// No braces at all: tiers 1-3 cannot apply.
		raw := `answer "category": "Work" end`
		outcome, err := p.Parse(raw, []string{"Life"})

		require.NoError(t, err)
		// Tier 4 trusts the literal value; tier 5 would have returned
		// "Life" instead, proving tier 5 was never reached.
		assert.Equal(t, "Work", outcome.Category)
	})

	t.Run("strict tier beats heuristic on well-formed input", func(t *testing.T) {
		raw := `{"category": "Work", "confidence": 0.9}`
		outcome, err := p.Parse(raw, []string{"Life"})

		require.NoError(t, err)
		assert.Equal(t, "Work", outcome.Category)
		require.NotNil(t, outcome.Confidence)
	})
}
