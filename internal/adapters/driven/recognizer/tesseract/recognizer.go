// Package tesseract runs the local Tesseract CLI and converts its TSV
// output into text fragments with normalised bounding boxes.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
	"github.com/clipsort/clipsort-cli/internal/logger"
)

// DefaultBinary is the tesseract executable looked up on PATH.
const DefaultBinary = "tesseract"

// retryBackoff is the pause between engine retries.
const retryBackoff = 200 * time.Millisecond

// Ensure Recognizer implements the interface.
var _ driven.Recognizer = (*Recognizer)(nil)

// Recognizer shells out to the Tesseract OCR engine. Each image is a
// separate process invocation; runs are independent and safe to issue
// concurrently.
type Recognizer struct {
	binary     string
	maxRetries int
	runner     func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// New creates a recognizer using the tesseract binary on PATH.
// maxRetries <= 0 disables retries.
func New(binary string, maxRetries int) *Recognizer {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Recognizer{
		binary:     binary,
		maxRetries: maxRetries,
		runner:     runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%v: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Recognize extracts fragments from the image at path. The engine is
// retried on failure up to the configured budget; a missing or
// unreadable file fails immediately.
func (r *Recognizer) Recognize(ctx context.Context, path string, languages []domain.Language) ([]domain.Fragment, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrImageLoadFailed, path)
	}

	args := []string{path, "stdout", "-l", languageSpec(languages), "tsv"}

	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("tesseract retry %d for %s", attempt, path)
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		output, err := r.runner(ctx, r.binary, args...)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		return parseTSV(output, primaryLanguage(languages), time.Now())
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrRecognitionFailed, lastErr)
}

// primaryLanguage is the language fragments are tagged with. The TSV
// output does not say which traineddata produced a word, so the first
// preferred language stands in for all of them.
func primaryLanguage(languages []domain.Language) domain.Language {
	for _, lang := range languages {
		if lang.IsValid() {
			return lang
		}
	}
	return domain.LanguageEnglish
}

// languageSpec maps languages to tesseract traineddata names, joined
// with '+' in priority order.
func languageSpec(languages []domain.Language) string {
	if len(languages) == 0 {
		return "eng"
	}
	names := make([]string, 0, len(languages))
	for _, lang := range languages {
		switch lang {
		case domain.LanguageEnglish:
			names = append(names, "eng")
		case domain.LanguageChinese:
			names = append(names, "chi_sim")
		case domain.LanguageJapanese:
			names = append(names, "jpn")
		}
	}
	if len(names) == 0 {
		return "eng"
	}
	return strings.Join(names, "+")
}

// tsv column indices. Level 1 rows carry the page dimensions, level 5
// rows carry recognised words.
const (
	colLevel   = 0
	colBlock   = 2
	colPar     = 3
	colLine    = 4
	colLeft    = 6
	colTop     = 7
	colWidth   = 8
	colHeight  = 9
	colConf    = 10
	colText    = 11
	fieldCount = 12
)

// lineKey identifies one text line in the TSV output.
type lineKey struct {
	block, par, line int
}

// wordRow is a parsed level-5 TSV row.
type wordRow struct {
	key        lineKey
	text       string
	confidence float64
	left       float64
	top        float64
	width      float64
	height     float64
}

// parseTSV converts tesseract TSV output into per-line fragments with
// boxes normalised to a bottom-left origin. Words on the same line are
// merged into one fragment whose box is their union and whose
// confidence is their mean.
func parseTSV(output []byte, language domain.Language, now time.Time) ([]domain.Fragment, error) {
	lines := strings.Split(string(output), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: empty engine output", domain.ErrRecognitionFailed)
	}

	var pageWidth, pageHeight float64
	grouped := make(map[lineKey][]wordRow)
	var order []lineKey

	for _, raw := range lines[1:] {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		fields := strings.Split(raw, "\t")
		if len(fields) < fieldCount {
			continue
		}

		level, err := strconv.Atoi(fields[colLevel])
		if err != nil {
			continue
		}

		switch level {
		case 1:
			pageWidth, _ = strconv.ParseFloat(fields[colWidth], 64)
			pageHeight, _ = strconv.ParseFloat(fields[colHeight], 64)
		case 5:
			word, ok := parseWord(fields)
			if !ok {
				continue
			}
			if _, seen := grouped[word.key]; !seen {
				order = append(order, word.key)
			}
			grouped[word.key] = append(grouped[word.key], word)
		}
	}

	if pageWidth <= 0 || pageHeight <= 0 {
		return nil, fmt.Errorf("%w: missing page dimensions", domain.ErrRecognitionFailed)
	}

	fragments := make([]domain.Fragment, 0, len(order))
	for _, key := range order {
		if frag, ok := mergeLine(grouped[key], pageWidth, pageHeight, language, now); ok {
			fragments = append(fragments, frag)
		}
	}
	return fragments, nil
}

// parseWord converts a level-5 TSV row. Rows with empty text or the
// engine's -1 placeholder confidence are dropped.
func parseWord(fields []string) (wordRow, bool) {
	text := strings.TrimSpace(fields[colText])
	if text == "" {
		return wordRow{}, false
	}

	conf, err := strconv.ParseFloat(fields[colConf], 64)
	if err != nil || conf < 0 {
		return wordRow{}, false
	}

	block, err1 := strconv.Atoi(fields[colBlock])
	par, err2 := strconv.Atoi(fields[colPar])
	line, err3 := strconv.Atoi(fields[colLine])
	left, err4 := strconv.ParseFloat(fields[colLeft], 64)
	top, err5 := strconv.ParseFloat(fields[colTop], 64)
	width, err6 := strconv.ParseFloat(fields[colWidth], 64)
	height, err7 := strconv.ParseFloat(fields[colHeight], 64)
	for _, err := range []error{err1, err2, err3, err4, err5, err6, err7} {
		if err != nil {
			return wordRow{}, false
		}
	}

	return wordRow{
		key:        lineKey{block: block, par: par, line: line},
		text:       text,
		confidence: conf / 100,
		left:       left,
		top:        top,
		width:      width,
		height:     height,
	}, true
}

// mergeLine folds one line's words into a fragment. The pixel box uses
// a top-left origin; the normalised box flips it to bottom-left.
func mergeLine(words []wordRow, pageWidth, pageHeight float64, language domain.Language, now time.Time) (domain.Fragment, bool) {
	if len(words) == 0 {
		return domain.Fragment{}, false
	}

	texts := make([]string, len(words))
	minLeft, minTop := words[0].left, words[0].top
	maxRight, maxBottom := words[0].left+words[0].width, words[0].top+words[0].height
	var confSum float64

	for i, w := range words {
		texts[i] = w.text
		confSum += w.confidence
		if w.left < minLeft {
			minLeft = w.left
		}
		if w.top < minTop {
			minTop = w.top
		}
		if right := w.left + w.width; right > maxRight {
			maxRight = right
		}
		if bottom := w.top + w.height; bottom > maxBottom {
			maxBottom = bottom
		}
	}

	box := &domain.Rect{
		MinX:   minLeft / pageWidth,
		MinY:   1 - maxBottom/pageHeight,
		Width:  (maxRight - minLeft) / pageWidth,
		Height: (maxBottom - minTop) / pageHeight,
	}

	return domain.Fragment{
		Text:       strings.Join(texts, " "),
		Confidence: confSum / float64(len(words)),
		Language:   language,
		Box:        box,
		Timestamp:  now,
	}, true
}
