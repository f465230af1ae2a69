package driving

import (
	"context"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

// Pipeline drives screenshots through recognition, classification,
// organisation, persistence and notification.
type Pipeline interface {
	// Process runs the full pipeline for one screenshot file and
	// returns the run outcome. RunResult.Err is the run's
	// *domain.StageError when a stage failed; failures never
	// propagate as panics and never affect other runs.
	Process(ctx context.Context, path string) domain.RunResult

	// Run subscribes to the configured watcher and starts one
	// concurrent Process per detected screenshot, until ctx is
	// cancelled or the event stream closes.
	Run(ctx context.Context) error
}
