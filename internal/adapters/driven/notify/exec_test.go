package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecNotifier(t *testing.T) {
	t.Run("darwin uses osascript", func(t *testing.T) {
		var gotName string
		var gotArgs []string
		n := &ExecNotifier{
			goos: "darwin",
			runner: func(name string, args ...string) error {
				gotName = name
				gotArgs = args
				return nil
			},
		}

		require.NoError(t, n.NotifySuccess("Work", "shot.png"))

		assert.Equal(t, "osascript", gotName)
		require.Len(t, gotArgs, 2)
		assert.Contains(t, gotArgs[1], `"shot.png filed under Work"`)
	})

	t.Run("linux uses notify-send", func(t *testing.T) {
		var gotName string
		n := &ExecNotifier{
			goos: "linux",
			runner: func(name string, args ...string) error {
				gotName = name
				return nil
			},
		}

		require.NoError(t, n.NotifyError(errors.New("boom")))
		assert.Equal(t, "notify-send", gotName)
	})

	t.Run("runner failures are surfaced to the caller", func(t *testing.T) {
		n := &ExecNotifier{
			goos: "linux",
			runner: func(string, ...string) error {
				return errors.New("no notification daemon")
			},
		}

		assert.Error(t, n.NotifySuccess("Work", "shot.png"))
	})
}

func TestAppleScriptString(t *testing.T) {
	assert.Equal(t, `"plain"`, appleScriptString("plain"))
	assert.Equal(t, `"say \"hi\""`, appleScriptString(`say "hi"`))
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier()
	assert.NoError(t, n.NotifySuccess("Work", "shot.png"))
	assert.NoError(t, n.NotifyError(errors.New("boom")))
}
