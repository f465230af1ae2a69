package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/clipsort/clipsort-cli/internal/adapters/driven/config/file"
)

func withConfigStore(t *testing.T) {
	t.Helper()
	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	original := configStore
	configStore = store
	t.Cleanup(func() { configStore = original })
}

func withLLMValidator(t *testing.T, result error) *int {
	t.Helper()
	calls := new(int)
	original := validateLLM
	validateLLM = func() error {
		*calls++
		return result
	}
	t.Cleanup(func() { validateLLM = original })
	return calls
}

func TestConfigCmd(t *testing.T) {
	t.Run("set and get round trip", func(t *testing.T) {
		withConfigStore(t)

		_, err := execute(t, "config", "set", "watch.directory", "/tmp/shots")
		require.NoError(t, err)

		out, err := execute(t, "config", "get", "watch.directory")
		require.NoError(t, err)
		assert.Contains(t, out, "/tmp/shots")
	})

	t.Run("unset key is an error", func(t *testing.T) {
		withConfigStore(t)

		_, err := execute(t, "config", "get", "watch.directory")
		assert.Error(t, err)
	})

	t.Run("setting llm keys checks the backend", func(t *testing.T) {
		withConfigStore(t)
		calls := withLLMValidator(t, nil)

		_, err := execute(t, "config", "set", "llm.provider", "ollama")
		require.NoError(t, err)
		assert.Equal(t, 1, *calls)
	})

	t.Run("unusable llm settings warn but still persist", func(t *testing.T) {
		withConfigStore(t)
		calls := withLLMValidator(t, errors.New("connection refused"))

		out, err := execute(t, "config", "set", "llm.api_key", "sk-typo")
		require.NoError(t, err)
		assert.Equal(t, 1, *calls)
		assert.Contains(t, out, "connection refused")
		assert.Equal(t, "sk-typo", configStore.GetString("llm.api_key"))
	})

	t.Run("non-llm keys skip the check", func(t *testing.T) {
		withConfigStore(t)
		calls := withLLMValidator(t, nil)

		_, err := execute(t, "config", "set", "sort.directory", "/tmp/sorted")
		require.NoError(t, err)
		assert.Zero(t, *calls)
	})
}
