package services

import (
	"sort"
	"strings"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

// lineThreshold is the normalised vertical distance within which two
// fragments are considered to sit on the same text line.
const lineThreshold = 0.03

// Assembler reconstructs human reading order from the unordered
// fragments a recogniser emits. It is a pure transformation: no I/O,
// no shared state beyond the configured confidence floor.
type Assembler struct {
	minimumConfidence float64
}

// NewAssembler creates an assembler with the given confidence floor.
// Fragments below the floor are dropped before any ordering happens.
func NewAssembler(minimumConfidence float64) *Assembler {
	return &Assembler{minimumConfidence: minimumConfidence}
}

// Assemble filters, orders and joins fragments into a
// RecognitionResult. The result is empty when every fragment fell
// below the confidence floor; callers decide whether that is an error.
func (a *Assembler) Assemble(fragments []domain.Fragment) domain.RecognitionResult {
	kept := make([]domain.Fragment, 0, len(fragments))
	for _, f := range fragments {
		if f.Confidence >= a.minimumConfidence {
			kept = append(kept, f)
		}
	}

	if len(kept) == 0 {
		return domain.RecognitionResult{}
	}

	// Stable so fragments without a box keep their relative position.
	sort.SliceStable(kept, func(i, j int) bool {
		return readingOrderLess(kept[i], kept[j])
	})

	byLanguage := make(map[domain.Language][]domain.Fragment)
	for _, f := range kept {
		byLanguage[f.Language] = append(byLanguage[f.Language], f)
	}

	return domain.RecognitionResult{
		Fragments:     kept,
		ByLanguage:    byLanguage,
		FormattedText: joinReadingOrder(kept),
	}
}

// readingOrderLess orders two fragments top-to-bottom, left-to-right.
// The coordinate origin is bottom-left, so a larger MinY is higher on
// the page. Fragments on the same line (MinY within lineThreshold)
// order left-to-right by MinX. Fragments without a box compare equal
// to everything.
func readingOrderLess(a, b domain.Fragment) bool {
	if a.Box == nil || b.Box == nil {
		return false
	}
	if abs(a.Box.MinY-b.Box.MinY) < lineThreshold {
		return a.Box.MinX < b.Box.MinX
	}
	return a.Box.MinY > b.Box.MinY
}

// joinReadingOrder concatenates sorted fragments, starting a new line
// whenever the vertical gap from the previous positioned fragment
// exceeds lineThreshold. Fragments without a box are appended with a
// single space and do not advance the line tracking.
func joinReadingOrder(fragments []domain.Fragment) string {
	var sb strings.Builder
	lastY := 0.0
	haveLine := false

	for _, f := range fragments {
		switch {
		case f.Box == nil:
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case !haveLine:
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			haveLine = true
			lastY = f.Box.MinY
		case lastY-f.Box.MinY > lineThreshold:
			sb.WriteByte('\n')
			lastY = f.Box.MinY
		default:
			sb.WriteByte(' ')
			lastY = f.Box.MinY
		}
		sb.WriteString(f.Text)
	}

	return sb.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
