// Package ai builds the configured LLM service adapter.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamallm "github.com/clipsort/clipsort-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/clipsort/clipsort-cli/internal/adapters/driven/llm/openai"
	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
)

// pingTimeout bounds the connectivity check at startup.
const pingTimeout = 5 * time.Second

// CreateAndValidateLLMService builds the configured service and checks
// it answers. A nil service with nil error means no usable provider is
// configured; screenshots are then filed under the fallback label
// instead of classified, which is not an error.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'clipsort config set' to fix",
			domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'clipsort config set' to fix",
			domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// ValidateLLMConfig builds and pings a service for the given settings,
// then discards it. Used when settings change to reject bad
// credentials early. Unconfigured settings validate trivially.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateLLMService builds the adapter named by the settings without
// validating connectivity. Returns (nil, nil) when no provider is
// configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
