// Package organizer files screenshots into per-category directories
// under a configurable root, resolving name collisions instead of
// overwriting.
package organizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
	"github.com/clipsort/clipsort-cli/internal/logger"
)

// maxCollisionAttempts bounds the suffix search for a free filename.
const maxCollisionAttempts = 1000

// Ensure Organizer implements the interface.
var _ driven.FileOrganizer = (*Organizer)(nil)

// Organizer moves screenshots into <base>/<category>/ directories.
// Safe for concurrent use.
type Organizer struct {
	mu   sync.RWMutex
	base string
}

// New creates an organizer rooted at base.
func New(base string) *Organizer {
	return &Organizer{base: base}
}

// BaseDirectory returns the current organisation root.
func (o *Organizer) BaseDirectory() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.base
}

// SetBaseDirectory repoints the organiser at a new root, creating it if
// needed. Already-filed screenshots stay where they are.
func (o *Organizer) SetBaseDirectory(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty base directory", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDirectoryCreation, err)
	}
	o.mu.Lock()
	o.base = path
	o.mu.Unlock()
	return nil
}

// MoveScreenshot moves the file at sourcePath into the category's
// directory and returns the destination path. When the plain name is
// taken, numeric suffixes are tried (shot.png, shot_1.png, ...). The
// source file is left untouched on any failure.
func (o *Organizer) MoveScreenshot(sourcePath, category string) (string, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrSourceFileNotFound, sourcePath)
	}

	dir := filepath.Join(o.BaseDirectory(), category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDirectoryCreation, err)
	}

	dest, err := freePath(dir, filepath.Base(sourcePath))
	if err != nil {
		return "", err
	}

	if err := moveFile(sourcePath, dest); err != nil {
		return "", &domain.MoveError{Source: sourcePath, Destination: dest, Err: err}
	}
	logger.Debug("moved %s -> %s", sourcePath, dest)
	return dest, nil
}

// freePath finds an unused destination name in dir. The first candidate
// is the original name, then stem_1.ext, stem_2.ext and so on.
func freePath(dir, filename string) (string, error) {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	for i := 0; i <= maxCollisionAttempts; i++ {
		name := filename
		if i > 0 {
			name = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no free name for %s in %s", domain.ErrFileExists, filename, dir)
}

// renameFile is swapped in tests to force the copy fallback.
var renameFile = os.Rename

// moveFile renames source to dest, falling back to copy-then-delete
// when they are on different filesystems. The source is only removed
// after the copy has been synced.
func moveFile(source, dest string) error {
	if err := renameFile(source, dest); err == nil {
		return nil
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return os.Remove(source)
}
