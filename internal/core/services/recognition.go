package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
	"github.com/clipsort/clipsort-cli/internal/logger"
)

// RecognitionMetrics describes the most recent recognition run.
type RecognitionMetrics struct {
	// ProcessingTime is how long the run took, including assembly.
	ProcessingTime time.Duration

	// FragmentCount is the number of fragments that survived the
	// confidence filter.
	FragmentCount int

	// MeanConfidence averages the surviving fragments' confidence.
	MeanConfidence float64

	// Languages lists the scripts seen, in first-seen order.
	Languages []domain.Language
}

// Recognition turns a screenshot file into assembled reading-order
// text, consulting the cache first when one is configured.
type Recognition struct {
	recognizer driven.Recognizer
	cache      driven.RecognitionCache
	assembler  *Assembler
	settings   domain.RecognitionSettings

	mu          sync.Mutex
	lastMetrics *RecognitionMetrics
}

// NewRecognition creates the recognition service. cache may be nil to
// disable caching regardless of settings.
func NewRecognition(recognizer driven.Recognizer, cache driven.RecognitionCache, settings domain.RecognitionSettings) *Recognition {
	if !settings.EnableCache {
		cache = nil
	}
	return &Recognition{
		recognizer: recognizer,
		cache:      cache,
		assembler:  NewAssembler(settings.MinimumConfidence),
		settings:   settings,
	}
}

// RecognizeText extracts and assembles the text of the image at path.
// Returns domain.ErrNoTextDetected when nothing above the confidence
// floor was found.
func (r *Recognition) RecognizeText(ctx context.Context, path string) (domain.RecognitionResult, error) {
	if r.cache != nil {
		if cached, ok := r.cache.Retrieve(path); ok {
			logger.Debug("recognition cache hit for %s", path)
			return cached, nil
		}
	}

	start := time.Now()

	fragments, err := r.recognizer.Recognize(ctx, path, r.settings.PreferredLanguages)
	if err != nil {
		return domain.RecognitionResult{}, fmt.Errorf("recognize %s: %w", path, err)
	}

	result := r.assembler.Assemble(fragments)
	if result.IsEmpty() {
		return domain.RecognitionResult{}, domain.ErrNoTextDetected
	}

	r.recordMetrics(result, time.Since(start))

	if r.cache != nil {
		r.cache.Store(path, result)
	}
	return result, nil
}

// Forget drops any cached result for path. Called after a screenshot
// moves, when the key no longer names a file.
func (r *Recognition) Forget(path string) {
	if r.cache != nil {
		r.cache.Remove(path)
	}
}

// LastMetrics returns metrics for the most recent uncached run, or nil
// when none has completed yet.
func (r *Recognition) LastMetrics() *RecognitionMetrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastMetrics
}

func (r *Recognition) recordMetrics(result domain.RecognitionResult, elapsed time.Duration) {
	var sum float64
	seen := make(map[domain.Language]bool)
	var langs []domain.Language
	for _, f := range result.Fragments {
		sum += f.Confidence
		if !seen[f.Language] {
			seen[f.Language] = true
			langs = append(langs, f.Language)
		}
	}

	m := &RecognitionMetrics{
		ProcessingTime: elapsed,
		FragmentCount:  len(result.Fragments),
		MeanConfidence: sum / float64(len(result.Fragments)),
		Languages:      langs,
	}

	r.mu.Lock()
	r.lastMetrics = m
	r.mu.Unlock()

	logger.Debug("recognition took %s: %d fragments, mean confidence %.2f",
		elapsed.Round(time.Millisecond), m.FragmentCount, m.MeanConfidence)
}
