package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsScreenshot(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/inbox/shot.png", true},
		{"/inbox/Photo.JPG", true},
		{"/inbox/scan.webp", true},
		{"/inbox/notes.txt", false},
		{"/inbox/archive.zip", false},
		{"/inbox/.hidden.png", false},
		{"/inbox/noextension", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isScreenshot(tt.path), tt.path)
	}
}

func TestNew(t *testing.T) {
	t.Run("rejects missing directories", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("rejects files", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := New(path)
		assert.Error(t, err)
	})
}

func TestWatcher_Watch(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir)
	require.NoError(t, err)
	w.settled = 10 * time.Millisecond
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := w.Watch(ctx)
	require.NoError(t, err)
	assert.Equal(t, dir, w.Directory())

	// A text file should be ignored, the image should come through.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shot.png"), []byte("png"), 0o644))

	select {
	case event := <-events:
		assert.Equal(t, filepath.Join(dir, "shot.png"), event.Path)
		assert.False(t, event.DetectedAt.IsZero())
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for screenshot event")
	}

	// Cancellation closes the event channel.
	cancel()
	select {
	case _, open := <-events:
		assert.False(t, open)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
