// Package watcher detects new screenshots landing in a directory using
// filesystem notifications.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
	"github.com/clipsort/clipsort-cli/internal/logger"
)

// settleDelay gives the capture tool time to finish writing the file
// before the pipeline opens it.
const settleDelay = 500 * time.Millisecond

// imageExtensions are the file types treated as screenshots.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
	".heic": true,
}

// Ensure Watcher implements the interface.
var _ driven.ScreenshotWatcher = (*Watcher)(nil)

// Watcher emits an event for every image file created in a directory.
// Non-image files and hidden files are ignored.
type Watcher struct {
	dir     string
	fs      *fsnotify.Watcher
	settled time.Duration
}

// New creates a watcher for dir. The directory must exist.
func New(dir string) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: watch directory %s: %v", domain.ErrInvalidInput, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create filesystem watcher: %w", err)
	}

	return &Watcher{dir: dir, fs: fs, settled: settleDelay}, nil
}

// Watch starts watching and returns the event channel. The channel is
// closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan driven.ScreenshotEvent, error) {
	if err := w.fs.Add(w.dir); err != nil {
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	events := make(chan driven.ScreenshotEvent)
	go w.loop(ctx, events)
	return events, nil
}

func (w *Watcher) loop(ctx context.Context, out chan<- driven.ScreenshotEvent) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) || !isScreenshot(event.Name) {
				continue
			}

			// New screenshots arrive one at a time, so a blocking
			// settle pause is fine here.
			select {
			case <-time.After(w.settled):
			case <-ctx.Done():
				return
			}

			logger.Debug("detected screenshot %s", event.Name)
			select {
			case out <- driven.ScreenshotEvent{Path: event.Name, DetectedAt: time.Now()}:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// Directory returns the directory being watched.
func (w *Watcher) Directory() string {
	return w.dir
}

// Close releases watcher resources.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// isScreenshot reports whether path looks like an image the pipeline
// should process.
func isScreenshot(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return imageExtensions[strings.ToLower(filepath.Ext(base))]
}
