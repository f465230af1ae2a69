package driven

import (
	"context"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

// Recognizer extracts text fragments from a screenshot image. The
// fragments carry normalised bottom-left-origin bounding boxes and are
// returned in no particular order; reading-order reconstruction is the
// assembler's job, not the recogniser's.
//
// Implementations may include:
//   - Tesseract (local CLI)
//   - A cloud vision API
type Recognizer interface {
	// Recognize extracts fragments from the image at path. languages
	// biases recognition when non-empty.
	//
	// Errors: domain.ErrImageLoadFailed when the file cannot be read,
	// domain.ErrRecognitionFailed when the engine fails, and
	// domain.ErrNoTextDetected when nothing was found.
	Recognize(ctx context.Context, path string, languages []domain.Language) ([]domain.Fragment, error)
}

// RecognitionCache stores recent recognition results keyed by an image
// identity chosen by the caller (typically the absolute path, but a
// content hash works too). Implementations are bounded and safe for
// concurrent use from multiple pipeline runs.
type RecognitionCache interface {
	// Store records the result under key, evicting older entries when
	// the cache is full.
	Store(key string, result domain.RecognitionResult)

	// Retrieve returns the cached result for key, if present.
	Retrieve(key string) (domain.RecognitionResult, bool)

	// Remove drops the entry for key.
	Remove(key string)

	// Clear drops every entry.
	Clear()

	// Len reports the current number of entries.
	Len() int
}
