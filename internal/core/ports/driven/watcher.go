package driven

import (
	"context"
	"time"
)

// ScreenshotEvent announces one newly created screenshot file.
type ScreenshotEvent struct {
	// Path is the absolute path of the new file.
	Path string

	// DetectedAt is when the event was observed.
	DetectedAt time.Time
}

// ScreenshotWatcher is the external event source that detects new
// screenshot files. The core consumes it purely as a channel of
// events; how files are detected is the adapter's concern.
type ScreenshotWatcher interface {
	// Watch starts watching and returns a channel of events. The
	// channel is closed when ctx is cancelled or the watcher is
	// closed.
	Watch(ctx context.Context) (<-chan ScreenshotEvent, error)

	// Directory returns the directory being watched.
	Directory() string

	// Close releases watcher resources.
	Close() error
}
