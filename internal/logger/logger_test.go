package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestVerboseToggle(t *testing.T) {
	capture(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestGatedLevels(t *testing.T) {
	t.Run("silent unless verbose", func(t *testing.T) {
		buf := capture(t)
		SetVerbose(false)

		Debug("hidden")
		Info("hidden")
		Warn("hidden")

		assert.Zero(t, buf.Len())
	})

	t.Run("print when verbose", func(t *testing.T) {
		buf := capture(t)
		SetVerbose(true)

		Debug("processing %s", "shot.png")

		assert.Equal(t, "[DEBUG] processing shot.png\n", buf.String())
	})
}

func TestErrorAlwaysPrints(t *testing.T) {
	buf := capture(t)
	SetVerbose(false)

	Error("boom: %d", 42)

	assert.Equal(t, "[ERROR] boom: 42\n", buf.String())
}
