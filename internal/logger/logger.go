// Package logger prints diagnostics for the clipsort CLI. Debug, Info
// and Warn are gated behind the --verbose flag; Error always prints.
// Output goes to stderr so pipeline results on stdout stay clean.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log output, mainly for tests. Defaults to
// os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

func logf(level, format string, gated bool, args []any) {
	mu.RLock()
	defer mu.RUnlock()
	if gated && !verbose {
		return
	}
	fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
}

// Debug prints a message when verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("DEBUG", format, true, args)
}

// Info prints an informational message when verbose mode is enabled.
func Info(format string, args ...any) {
	logf("INFO", format, true, args)
}

// Warn prints a warning when verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("WARN", format, true, args)
}

// Error prints an error message regardless of verbosity.
func Error(format string, args ...any) {
	logf("ERROR", format, false, args)
}
