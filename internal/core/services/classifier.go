package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
	"github.com/clipsort/clipsort-cli/internal/logger"
)

// DefaultClassifyTimeout bounds a single classification call.
const DefaultClassifyTimeout = 30 * time.Second

// defaultClassifySystemPrompt instructs the model to answer with the
// JSON shape the response parser consumes.
const defaultClassifySystemPrompt = `You are a text classification expert. Classify the provided text into exactly one of these predefined categories: {categories}.

Analyse the keywords, subject matter and context of the text and pick the best match.

You must output valid JSON with these fields:
- category: the best matching category name (string)
- confidence: optional, your confidence in the classification (number between 0 and 1)

Example output:
{"category": "Work", "confidence": 0.92}

You must choose one of the provided categories. Do not invent new ones.`

// defaultClassifyUserPrompt carries the text to classify.
const defaultClassifyUserPrompt = `Classify the following text into one of these categories: {categories}

Text:
{text}

Output valid JSON only.`

// Classifier asks the LLM backend to label recognised text and runs
// the response through the recovery parser. Calls are rate limited and
// bounded by a timeout; a timeout is a classification failure, not a
// crash.
type Classifier struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	parser  *ResponseParser
	limiter *rate.Limiter
	timeout time.Duration
}

// NewClassifier creates a classifier. prompts may be nil, in which
// case the built-in templates are used. timeout <= 0 selects
// DefaultClassifyTimeout.
func NewClassifier(llm driven.LLMService, prompts driven.PromptStore, timeout time.Duration) *Classifier {
	if timeout <= 0 {
		timeout = DefaultClassifyTimeout
	}
	return &Classifier{
		llm:     llm,
		prompts: prompts,
		parser:  NewResponseParser(),
		// One call per second with a small burst keeps rapid
		// screenshot series from hammering the backend.
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		timeout: timeout,
	}
}

// Classify labels text against the given categories. The category
// names in the outcome are the model's literal output except when the
// parser's last-resort tier fired, which restricts itself to the
// provided names.
func (c *Classifier) Classify(ctx context.Context, text string, categories []domain.Category) (domain.ClassificationOutcome, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ClassificationOutcome{}, fmt.Errorf("%w: empty text", domain.ErrInvalidInput)
	}
	if len(categories) == 0 {
		return domain.ClassificationOutcome{}, fmt.Errorf("%w: empty category list", domain.ErrInvalidInput)
	}
	if c.llm == nil {
		return domain.ClassificationOutcome{}, domain.ErrLLMUnavailable
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.ClassificationOutcome{}, fmt.Errorf("rate limit wait: %w", err)
	}

	listing := formatCategoryListing(categories)
	systemPrompt := strings.ReplaceAll(c.loadPrompt(driven.PromptClassifySystem, defaultClassifySystemPrompt),
		"{categories}", listing)
	userPrompt := strings.NewReplacer(
		"{categories}", listing,
		"{text}", text,
	).Replace(c.loadPrompt(driven.PromptClassifyUser, defaultClassifyUserPrompt))

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.llm.Chat(callCtx, systemPrompt, userPrompt)
	if err != nil {
		return domain.ClassificationOutcome{}, fmt.Errorf("classifier call: %w", err)
	}
	logger.Debug("classifier raw response (%d bytes): %.120s", len(raw), raw)

	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.Name
	}

	outcome, err := c.parser.Parse(raw, names)
	if err != nil {
		return domain.ClassificationOutcome{}, err
	}
	return outcome, nil
}

// loadPrompt loads a template from the store, falling back to the
// built-in default when no store is configured or loading fails.
func (c *Classifier) loadPrompt(name, fallback string) string {
	if c.prompts == nil {
		return fallback
	}
	prompt, err := c.prompts.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// formatCategoryListing renders categories as prompt input, attaching
// each category's keywords as hints.
func formatCategoryListing(categories []domain.Category) string {
	parts := make([]string, len(categories))
	for i, cat := range categories {
		if len(cat.Keywords) == 0 {
			parts[i] = cat.Name
			continue
		}
		parts[i] = fmt.Sprintf("%s (keywords: %s)", cat.Name, strings.Join(cat.Keywords, ", "))
	}
	return strings.Join(parts, "; ")
}
