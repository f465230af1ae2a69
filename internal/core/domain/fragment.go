package domain

import "time"

// Language identifies the script a recognised fragment was written in.
type Language string

// Recognised languages.
const (
	// LanguageEnglish covers Latin-script text.
	LanguageEnglish Language = "english"

	// LanguageChinese covers simplified and traditional Chinese.
	LanguageChinese Language = "chinese"

	// LanguageJapanese covers Japanese text.
	LanguageJapanese Language = "japanese"
)

// IsValid returns true if the language is recognised.
func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageChinese, LanguageJapanese:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l Language) String() string {
	return string(l)
}

// Rect is a bounding box in normalised [0,1] image coordinates.
// The origin is the bottom-left corner and Y grows upward, so a larger
// MinY means the box sits higher on the page.
type Rect struct {
	// MinX is the left edge.
	MinX float64

	// MinY is the bottom edge.
	MinY float64

	// Width is the horizontal extent.
	Width float64

	// Height is the vertical extent.
	Height float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 {
	return r.MinX + r.Width
}

// MaxY returns the top edge.
func (r Rect) MaxY() float64 {
	return r.MinY + r.Height
}

// Fragment is a single recognised text span, before any ordering has
// been applied. Fragments are produced by a Recognizer and consumed by
// the result assembler; they are never mutated after creation.
type Fragment struct {
	// Text is the recognised string.
	Text string

	// Confidence is the recogniser's confidence in [0,1].
	Confidence float64

	// Language is the detected script of the fragment.
	Language Language

	// Box is the fragment's position. Nil when the recogniser could
	// not attribute a position.
	Box *Rect

	// Timestamp is when the fragment was produced.
	Timestamp time.Time
}

// IsReliable returns true when the fragment's confidence is high
// enough to trust without corroboration.
func (f Fragment) IsReliable() bool {
	return f.Confidence > 0.7
}

// RecognitionResult is the assembled output for one image: the
// surviving fragments grouped by language, plus a single text block in
// human reading order.
type RecognitionResult struct {
	// Fragments holds the surviving fragments in reading order.
	Fragments []Fragment

	// ByLanguage groups the surviving fragments by language.
	ByLanguage map[Language][]Fragment

	// FormattedText is the reading-order text block. It is empty
	// exactly when Fragments is empty.
	FormattedText string
}

// IsEmpty returns true when no fragments survived assembly.
func (r RecognitionResult) IsEmpty() bool {
	return len(r.Fragments) == 0
}
