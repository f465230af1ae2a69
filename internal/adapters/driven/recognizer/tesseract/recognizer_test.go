package tesseract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

// sampleTSV is engine output for a 1000x500 image with two lines:
// "Invoice Total" near the top and "$42" below it.
const sampleTSV = `level	page_num	block_num	par_num	line_num	word_num	left	top	width	height	conf	text
1	1	0	0	0	0	0	0	1000	500	-1
2	1	1	0	0	0	100	50	400	160	-1
3	1	1	1	0	0	100	50	400	160	-1
4	1	1	1	1	0	100	50	300	40	-1
5	1	1	1	1	1	100	50	140	40	96	Invoice
5	1	1	1	1	2	260	50	140	40	92	Total
4	1	1	1	2	0	100	150	80	40	-1
5	1	1	1	2	1	100	150	80	40	88	$42
`

func TestParseTSV(t *testing.T) {
	now := time.Now()

	t.Run("groups words into line fragments", func(t *testing.T) {
		fragments, err := parseTSV([]byte(sampleTSV), domain.LanguageEnglish, now)

		require.NoError(t, err)
		require.Len(t, fragments, 2)

		first := fragments[0]
		assert.Equal(t, "Invoice Total", first.Text)
		assert.InDelta(t, 0.94, first.Confidence, 1e-9)
		assert.Equal(t, domain.LanguageEnglish, first.Language)

		require.NotNil(t, first.Box)
		assert.InDelta(t, 0.1, first.Box.MinX, 1e-9)
		assert.InDelta(t, 0.3, first.Box.Width, 1e-9)
		// top=50 height=40 on a 500px page puts the bottom edge at
		// 90px from the top, so 410px from the bottom.
		assert.InDelta(t, 0.82, first.Box.MinY, 1e-9)
		assert.InDelta(t, 0.08, first.Box.Height, 1e-9)

		second := fragments[1]
		assert.Equal(t, "$42", second.Text)
		assert.InDelta(t, 0.88, second.Confidence, 1e-9)
		assert.InDelta(t, 0.62, second.Box.MinY, 1e-9)
	})

	t.Run("drops placeholder rows", func(t *testing.T) {
		tsv := strings.ReplaceAll(sampleTSV, "88\t$42", "-1\t$42")

		fragments, err := parseTSV([]byte(tsv), domain.LanguageEnglish, now)

		require.NoError(t, err)
		require.Len(t, fragments, 1)
		assert.Equal(t, "Invoice Total", fragments[0].Text)
	})

	t.Run("missing page dimensions", func(t *testing.T) {
		header := "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n"

		_, err := parseTSV([]byte(header), domain.LanguageEnglish, now)

		assert.ErrorIs(t, err, domain.ErrRecognitionFailed)
	})
}

func TestRecognizer_Recognize(t *testing.T) {
	ctx := context.Background()

	writeImage := func(t *testing.T) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "shot.png")
		require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))
		return path
	}

	t.Run("missing image fails fast", func(t *testing.T) {
		r := New("", 3)
		called := false
		r.runner = func(context.Context, string, ...string) ([]byte, error) {
			called = true
			return nil, nil
		}

		_, err := r.Recognize(ctx, "/nope/shot.png", nil)

		assert.ErrorIs(t, err, domain.ErrImageLoadFailed)
		assert.False(t, called)
	})

	t.Run("retries transient engine failures", func(t *testing.T) {
		r := New("", 2)
		attempts := 0
		r.runner = func(context.Context, string, ...string) ([]byte, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.New("engine crashed")
			}
			return []byte(sampleTSV), nil
		}

		fragments, err := r.Recognize(ctx, writeImage(t), []domain.Language{domain.LanguageEnglish})

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.Len(t, fragments, 2)
	})

	t.Run("exhausted retries surface the engine error", func(t *testing.T) {
		r := New("", 1)
		r.runner = func(context.Context, string, ...string) ([]byte, error) {
			return nil, errors.New("engine crashed")
		}

		_, err := r.Recognize(ctx, writeImage(t), nil)

		assert.ErrorIs(t, err, domain.ErrRecognitionFailed)
	})

	t.Run("passes the language spec to the engine", func(t *testing.T) {
		r := New("", 0)
		var gotArgs []string
		r.runner = func(_ context.Context, _ string, args ...string) ([]byte, error) {
			gotArgs = args
			return []byte(sampleTSV), nil
		}

		_, err := r.Recognize(ctx, writeImage(t), []domain.Language{domain.LanguageChinese, domain.LanguageEnglish})

		require.NoError(t, err)
		assert.Contains(t, gotArgs, "chi_sim+eng")
	})
}

func TestLanguageSpec(t *testing.T) {
	assert.Equal(t, "eng", languageSpec(nil))
	assert.Equal(t, "jpn", languageSpec([]domain.Language{domain.LanguageJapanese}))
	assert.Equal(t, "eng", languageSpec([]domain.Language{domain.Language("klingon")}))
}
