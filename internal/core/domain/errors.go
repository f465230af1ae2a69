package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Recognition errors.

	// ErrImageLoadFailed indicates the screenshot file could not be
	// read or decoded.
	ErrImageLoadFailed = errors.New("image load failed")

	// ErrRecognitionFailed indicates the recogniser ran but produced
	// no usable observations.
	ErrRecognitionFailed = errors.New("recognition failed")

	// ErrNoTextDetected indicates recognition succeeded but every
	// fragment fell below the confidence floor.
	ErrNoTextDetected = errors.New("no text detected")

	// Classification errors.

	// ErrParseFailed indicates every recovery tier of the
	// classification response parser was exhausted.
	ErrParseFailed = errors.New("classification response unparseable")

	// ErrLLMUnavailable indicates the LLM service is not configured
	// or unreachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Organisation errors.

	// ErrSourceFileNotFound indicates the screenshot vanished before
	// it could be moved.
	ErrSourceFileNotFound = errors.New("source file not found")

	// ErrDirectoryCreation indicates the category directory could not
	// be created.
	ErrDirectoryCreation = errors.New("directory creation failed")

	// ErrFileExists indicates collision resolution exhausted every
	// candidate name without finding a free slot.
	ErrFileExists = errors.New("file already exists")

	// Store errors.

	// ErrOperationFailed indicates the underlying storage failed.
	ErrOperationFailed = errors.New("store operation failed")
)

// MoveError reports a failed file move with both endpoints attached.
// The source file is guaranteed untouched when a MoveError is returned.
type MoveError struct {
	// Source is the path the file was read from.
	Source string

	// Destination is the path the move targeted.
	Destination string

	// Err is the underlying I/O error.
	Err error
}

// Error implements the error interface.
func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s to %s: %v", e.Source, e.Destination, e.Err)
}

// Unwrap returns the underlying cause.
func (e *MoveError) Unwrap() error {
	return e.Err
}
