package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driving"
	"github.com/clipsort/clipsort-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.Pipeline = (*Pipeline)(nil)

// Pipeline sequences one screenshot through recognition,
// classification, organisation, persistence and notification. Each
// detected screenshot gets its own run; runs are independent and a
// failure in one can never abort another or the watch loop.
type Pipeline struct {
	recognition *Recognition
	classifier  *Classifier
	organizer   driven.FileOrganizer
	screenshots driven.ScreenshotStore
	categories  driven.CategoryStore
	notifier    driven.Notifier
	watcher     driven.ScreenshotWatcher
}

// NewPipeline wires the pipeline. watcher may be nil when only
// Process is used (e.g. the one-shot CLI command).
func NewPipeline(
	recognition *Recognition,
	classifier *Classifier,
	organizer driven.FileOrganizer,
	screenshots driven.ScreenshotStore,
	categories driven.CategoryStore,
	notifier driven.Notifier,
	watcher driven.ScreenshotWatcher,
) *Pipeline {
	return &Pipeline{
		recognition: recognition,
		classifier:  classifier,
		organizer:   organizer,
		screenshots: screenshots,
		categories:  categories,
		notifier:    notifier,
		watcher:     watcher,
	}
}

// Run subscribes to the watcher and processes each detected screenshot
// in its own goroutine. It returns once the event stream closes or ctx
// is cancelled, after in-flight runs have finished.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.watcher == nil {
		return fmt.Errorf("%w: no watcher configured", domain.ErrInvalidInput)
	}

	events, err := p.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	logger.Info("Watching %s for new screenshots", p.watcher.Directory())

	var wg sync.WaitGroup
	for event := range events {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			p.Process(ctx, path)
		}(event.Path)
	}
	wg.Wait()
	return nil
}

// Process runs the full pipeline for one screenshot. The returned
// RunResult carries the final path and category on success, or a
// *domain.StageError describing the first stage that failed. A failed
// run is reported through the notifier and dropped; it is never
// retried here.
func (p *Pipeline) Process(ctx context.Context, path string) domain.RunResult {
	result := domain.RunResult{
		RunID:      uuid.NewString(),
		SourcePath: path,
	}
	logger.Info("Processing screenshot %s (run %s)", path, result.RunID)

	// Recognition.
	recognition, err := p.recognition.RecognizeText(ctx, path)
	if err == nil && strings.TrimSpace(recognition.FormattedText) == "" {
		err = domain.ErrNoTextDetected
	}
	if err != nil {
		return p.fail(&result, domain.StageRecognition, err)
	}
	result.Text = recognition.FormattedText

	// Classification. With no user categories configured the call is
	// skipped entirely and the sentinel label is used instead.
	category, err := p.resolveCategory(ctx, recognition.FormattedText)
	if err != nil {
		return p.fail(&result, domain.StageClassification, err)
	}
	result.Category = category

	// Organisation. On failure the file is still at its original
	// location; the user can recover it manually.
	finalPath, err := p.organizer.MoveScreenshot(path, category)
	if err != nil {
		return p.fail(&result, domain.StageOrganization, err)
	}
	result.FinalPath = finalPath

	// The cache entry is keyed by the source path, which no longer
	// names a file.
	p.recognition.Forget(path)

	// Persistence. The file has already moved, so a store failure is
	// a recorded inconsistency, not a rollback; the cleanup sweep can
	// reconcile later.
	if err := p.screenshots.Save(ctx, finalPath, recognition.FormattedText, category); err != nil {
		return p.fail(&result, domain.StagePersistence, err)
	}

	// Notification failures are logged and swallowed; the run still
	// counts as successful.
	if err := p.notifier.NotifySuccess(category, filepath.Base(finalPath)); err != nil {
		logger.Warn("success notification failed: %v", err)
	}

	logger.Info("Filed %s under %q (run %s)", filepath.Base(finalPath), category, result.RunID)
	return result
}

// resolveCategory classifies text against the user's categories, or
// returns the sentinel label when none are configured.
func (p *Pipeline) resolveCategory(ctx context.Context, text string) (string, error) {
	categories, err := p.categories.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		logger.Debug("no categories configured, skipping classification")
		return domain.UnclassifiedCategory, nil
	}

	outcome, err := p.classifier.Classify(ctx, text, categories)
	if err != nil {
		return "", err
	}
	if outcome.Confidence != nil {
		logger.Debug("classified as %q with confidence %.2f", outcome.Category, *outcome.Confidence)
	}
	return outcome.Category, nil
}

// fail records a stage failure, notifies the user and terminates the
// run. Notification errors are swallowed here too.
func (p *Pipeline) fail(result *domain.RunResult, stage domain.Stage, cause error) domain.RunResult {
	stageErr := &domain.StageError{Stage: stage, Path: result.SourcePath, Err: cause}
	result.Err = stageErr

	if errors.Is(cause, domain.ErrNoTextDetected) {
		logger.Info("No text detected in %s, skipping", result.SourcePath)
	} else {
		logger.Error("run %s: %v", result.RunID, stageErr)
	}

	if err := p.notifier.NotifyError(stageErr); err != nil {
		logger.Warn("error notification failed: %v", err)
	}
	return *result
}
