package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
)

var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore serves classification prompt templates from user-editable
// files under the clipsort config directory. The directory and default
// files are materialised on first Load, not in the constructor, so
// commands that never classify do no prompt I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts seeds the prompt files and backs Load when the file
// copy is unreadable.
var defaultPrompts = map[string]string{
	driven.PromptClassifySystem: `You are a text classification expert. Classify the provided text into exactly one of these predefined categories: {categories}.

Analyse the keywords, subject matter and context of the text and pick the best match.

You must output valid JSON with these fields:
- category: the best matching category name (string)
- confidence: optional, your confidence in the classification (number between 0 and 1)

Example output:
{"category": "Work", "confidence": 0.92}

You must choose one of the provided categories. Do not invent new ones.`,

	driven.PromptClassifyUser: `Classify the following text into one of these categories: {categories}

Text:
{text}

Output valid JSON only.`,
}

// NewPromptStore creates a prompt store rooted at promptDir. Empty
// promptDir means ~/.clipsort/prompts.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".clipsort", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the template with the given name, preferring the user's
// file copy over the built-in default. Results are cached until
// Reload.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.materialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	prompt, cached := s.cache[name]
	s.mu.RUnlock()
	if cached {
		return prompt, nil
	}

	data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
	if err != nil {
		if fallback, ok := defaultPrompts[name]; ok {
			return fallback, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}
	prompt = strings.TrimSpace(string(data))

	// A concurrent Load may have filled the slot; keep the first value
	// so both callers see the same template.
	s.mu.Lock()
	if existing, ok := s.cache[name]; ok {
		prompt = existing
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload drops the cache so the next Load rereads the files.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// materialise writes the prompt directory, the default template files
// and a README. Existing files are left alone so user edits survive.
func (s *PromptStore) materialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
			return
		}
	}

	readme := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(readme); !os.IsNotExist(err) {
		return
	}
	s.initErr = os.WriteFile(readme, []byte(promptReadme), 0600)
}

const promptReadme = `# Clipsort Prompts

This directory contains the customisable prompts used to classify
screenshot text.

## Files

- ` + "`classify_system.txt`" + ` - System prompt describing the classification task
- ` + "`classify_user.txt`" + ` - Per-screenshot prompt carrying the recognised text

## Customisation

Edit any file to customise classification. Changes take effect on the
next run.

## Placeholders

- ` + "`{categories}`" + ` - The user's category list with keywords
- ` + "`{text}`" + ` - The recognised screenshot text

Ensure customised prompts keep the placeholders.
`
