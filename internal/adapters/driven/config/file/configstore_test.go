package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestConfigStore_SetGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(KeyLLMModel, "deepseek-chat"))
	require.NoError(t, store.Set(KeyLLMTimeoutSecs, 45))
	require.NoError(t, store.Set(KeyNotifyDesktop, false))
	require.NoError(t, store.Set(KeyOCRLanguages, []string{"english", "japanese"}))

	assert.Equal(t, "deepseek-chat", store.GetString(KeyLLMModel))
	assert.Equal(t, 45, store.GetInt(KeyLLMTimeoutSecs))
	assert.False(t, store.GetBool(KeyNotifyDesktop))
	assert.Equal(t, []string{"english", "japanese"}, store.GetStringSlice(KeyOCRLanguages))

	_, ok := store.Get("missing.key")
	assert.False(t, ok)
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeySortDirectory, "/srv/sorted"))
	require.NoError(t, store.Set(KeyOCRMinConfidence, 0.5))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/sorted", reloaded.GetString(KeySortDirectory))
	assert.InDelta(t, 0.5, reloaded.GetFloat(KeyOCRMinConfidence), 1e-9)
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	raw := `[llm]
provider = "ollama"
model = "llama3.2"

[ocr]
cache = true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store.GetString(KeyLLMProvider))
	assert.Equal(t, "llama3.2", store.GetString(KeyLLMModel))
	assert.True(t, store.GetBool(KeyOCRCache))
}

func TestConfigStore_LLMSettings(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(KeyLLMProvider, "openai"))
	require.NoError(t, store.Set(KeyLLMAPIKey, "sk-test"))
	require.NoError(t, store.Set(KeyLLMTimeoutSecs, 60))

	settings := store.LLMSettings()

	assert.Equal(t, domain.AIProviderOpenAI, settings.Provider)
	assert.Equal(t, "sk-test", settings.APIKey)
	assert.Equal(t, 60*time.Second, settings.Timeout)
	assert.True(t, settings.IsConfigured())
}

func TestConfigStore_RecognitionSettings(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		store := newTestStore(t)

		settings := store.RecognitionSettings()

		assert.InDelta(t, domain.DefaultMinimumConfidence, settings.MinimumConfidence, 1e-9)
		assert.True(t, settings.EnableCache)
	})

	t.Run("overrides apply", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Set(KeyOCRMinConfidence, 0.6))
		require.NoError(t, store.Set(KeyOCRCache, false))
		require.NoError(t, store.Set(KeyOCRLanguages, []string{"japanese", "bogus"}))

		settings := store.RecognitionSettings()

		assert.InDelta(t, 0.6, settings.MinimumConfidence, 1e-9)
		assert.False(t, settings.EnableCache)
		assert.Equal(t, []domain.Language{domain.LanguageJapanese}, settings.PreferredLanguages)
	})
}
