package driven

import "context"

// LLMService is the text-generation backend used for classification.
//
// Implementations may include:
//   - OpenAI-compatible chat APIs (OpenAI, DeepSeek, LM Studio)
//   - Ollama (local models)
type LLMService interface {
	// Chat sends a system and user prompt and returns the raw model
	// output. Callers must not assume the output is valid JSON even
	// when the prompt demanded it.
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// Prompt template names understood by PromptStore.
const (
	// PromptClassifySystem is the system prompt for classification.
	PromptClassifySystem = "classify_system"

	// PromptClassifyUser is the user prompt for classification.
	PromptClassifyUser = "classify_user"
)

// PromptStore loads prompt templates. Optional; when nil the built-in
// templates are used.
type PromptStore interface {
	// Load returns the template with the given name.
	Load(name string) (string, error)
}
