package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(LLMConfig{
		APIKey:  "sk-test",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
	})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		_, err := NewLLMService(LLMConfig{})
		assert.Error(t, err)
	})

	t.Run("applies defaults", func(t *testing.T) {
		svc, err := NewLLMService(LLMConfig{APIKey: "sk-test"})
		require.NoError(t, err)
		assert.Equal(t, DefaultLLMModel, svc.ModelName())
	})
}

func TestLLMService_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("sends both roles and returns the content", func(t *testing.T) {
		var got chatCompletionRequest
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"content": `{"category": "Work"}`}},
				},
			})
		})

		reply, err := svc.Chat(ctx, "system prompt", "user prompt")

		require.NoError(t, err)
		assert.Equal(t, `{"category": "Work"}`, reply)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, "system prompt", got.Messages[0].Content)
		assert.Equal(t, "user", got.Messages[1].Role)
	})

	t.Run("surfaces API errors", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "invalid api key", "type": "auth"},
			})
		})

		_, err := svc.Chat(ctx, "s", "u")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid api key")
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		})

		_, err := svc.Chat(ctx, "s", "u")

		assert.Error(t, err)
	})
}

func TestLLMService_Ping(t *testing.T) {
	t.Run("ok on 200", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})

		assert.NoError(t, svc.Ping(context.Background()))
	})

	t.Run("fails on non-200", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		assert.Error(t, svc.Ping(context.Background()))
	})
}
