package notify

import (
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
	"github.com/clipsort/clipsort-cli/internal/logger"
)

// Ensure LogNotifier implements the interface.
var _ driven.Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to the log. Used on headless
// systems or when desktop notifications are disabled.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// NotifySuccess logs a successful run.
func (n *LogNotifier) NotifySuccess(category, filename string) error {
	logger.Info("Sorted %s into %s", filename, category)
	return nil
}

// NotifyError logs a failed run.
func (n *LogNotifier) NotifyError(err error) error {
	logger.Warn("Sorting failed: %v", err)
	return nil
}
