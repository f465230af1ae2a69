package domain

import "time"

// AIProvider identifies the text-generation backend used for
// classification.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is any OpenAI-compatible chat completions API
	// (OpenAI, DeepSeek, LM Studio).
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid reports whether p names a known provider.
func (p AIProvider) IsValid() bool {
	return p == AIProviderOpenAI || p == AIProviderOllama
}

// RequiresAPIKey reports whether p needs a credential. Ollama is
// local and unauthenticated.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

func (p AIProvider) String() string {
	return string(p)
}

// LLMSettings holds classifier backend configuration.
type LLMSettings struct {
	// Provider selects the backend.
	Provider AIProvider

	// APIKey authenticates against cloud providers.
	APIKey string

	// BaseURL overrides the provider's default endpoint.
	BaseURL string

	// Model is the model identifier to request.
	Model string

	// Timeout bounds a single classification call.
	Timeout time.Duration
}

// IsConfigured reports whether these settings name a usable backend:
// a known provider with whatever credential it needs.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// Default recognition settings.
const (
	// DefaultMinimumConfidence is the fragment confidence floor.
	DefaultMinimumConfidence = 0.3

	// DefaultMaxRetries bounds the recogniser's internal retries.
	DefaultMaxRetries = 3
)

// RecognitionSettings holds recogniser configuration.
type RecognitionSettings struct {
	// MinimumConfidence drops fragments below this value before
	// assembly.
	MinimumConfidence float64

	// PreferredLanguages biases recognition, in priority order.
	PreferredLanguages []Language

	// EnableCache skips recognition for images seen recently.
	EnableCache bool

	// MaxRetries is the recogniser's own retry budget. The pipeline
	// never retries a failed stage.
	MaxRetries int
}

// DefaultRecognitionSettings returns the standard recogniser setup.
func DefaultRecognitionSettings() RecognitionSettings {
	return RecognitionSettings{
		MinimumConfidence:  DefaultMinimumConfidence,
		PreferredLanguages: []Language{LanguageEnglish, LanguageChinese, LanguageJapanese},
		EnableCache:        true,
		MaxRetries:         DefaultMaxRetries,
	}
}
