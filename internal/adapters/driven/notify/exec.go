// Package notify delivers desktop notifications about pipeline runs.
// Delivery is best-effort; the pipeline never depends on it.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
)

// Ensure ExecNotifier implements the interface.
var _ driven.Notifier = (*ExecNotifier)(nil)

// ExecNotifier shells out to the platform notification tool: osascript
// on macOS, notify-send elsewhere.
type ExecNotifier struct {
	goos   string
	runner func(name string, args ...string) error
}

// NewExecNotifier creates a notifier for the current platform.
func NewExecNotifier() *ExecNotifier {
	return &ExecNotifier{
		goos: runtime.GOOS,
		runner: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// NotifySuccess reports that a screenshot was filed.
func (n *ExecNotifier) NotifySuccess(category, filename string) error {
	return n.send("Screenshot sorted", fmt.Sprintf("%s filed under %s", filename, category))
}

// NotifyError reports a failed run.
func (n *ExecNotifier) NotifyError(err error) error {
	return n.send("Screenshot sorting failed", err.Error())
}

func (n *ExecNotifier) send(title, message string) error {
	switch n.goos {
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s",
			appleScriptString(message), appleScriptString(title))
		return n.runner("osascript", "-e", script)
	default:
		return n.runner("notify-send", title, message)
	}
}

// appleScriptString quotes a string for embedding in AppleScript.
func appleScriptString(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
