package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

// Extraction patterns for the regex recovery tiers.
var (
	// jsonObjectPattern finds a brace-delimited substring that
	// mentions a category field.
	jsonObjectPattern = regexp.MustCompile(`\{[^{}]*"category"[^{}]*\}`)

	// categoryFieldPattern pulls the category value out of loose text.
	categoryFieldPattern = regexp.MustCompile(`"category"\s*:\s*"([^"]+)"`)

	// confidenceFieldPattern pulls the confidence value out of loose text.
	confidenceFieldPattern = regexp.MustCompile(`"confidence"\s*:\s*([0-9.]+)`)
)

// classificationResponse is the JSON shape the model is asked to emit.
type classificationResponse struct {
	Category   string   `json:"category"`
	Confidence *float64 `json:"confidence"`
}

// ResponseParser recovers a classification outcome from the raw text a
// model returned. Model output is not trustworthy JSON, so parsing is
// a cascade of recovery tiers tried in order; the first success wins.
//
// Tiers 1-4 trust the model's literal category string even when it
// names a category the caller has never heard of. Only the last-resort
// tier 5 restricts itself to known category names. That asymmetry is
// deliberate and callers depend on it.
type ResponseParser struct{}

// NewResponseParser creates a parser.
func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

// Parse extracts a ClassificationOutcome from raw. knownCategories is
// consulted only by the final heuristic tier. When every tier fails
// the returned error wraps domain.ErrParseFailed; callers must treat
// that as a definitive classification failure, not guess a category.
func (p *ResponseParser) Parse(raw string, knownCategories []string) (domain.ClassificationOutcome, error) {
	trimmed := strings.TrimSpace(raw)

	// Tier 1: slice from first '{' to last '}' and decode strictly.
	if outcome, ok := p.parseBraceSlice(trimmed); ok {
		return outcome, nil
	}

	// Tier 2: decode the whole text as a generic JSON value.
	if outcome, ok := p.parseGeneric(trimmed); ok {
		return outcome, nil
	}

	// Tier 3: regex out a brace-delimited object mentioning
	// "category" and decode just that substring.
	if match := jsonObjectPattern.FindString(trimmed); match != "" {
		if outcome, ok := p.parseGeneric(match); ok {
			return outcome, nil
		}
	}

	// Tier 4: extract the fields independently. Confidence is
	// best-effort; only the category is required.
	if outcome, ok := p.parseFields(trimmed); ok {
		return outcome, nil
	}

	// Tier 5: the word "category" co-occurring with a known category
	// name is taken at face value, with no confidence attached.
	if outcome, ok := p.inferKnownCategory(trimmed, knownCategories); ok {
		return outcome, nil
	}

	return domain.ClassificationOutcome{}, fmt.Errorf(
		"%w: no recovery tier matched response of %d bytes", domain.ErrParseFailed, len(raw))
}

// parseBraceSlice implements tier 1: strict decoding of the substring
// between the first '{' and the last '}'.
func (p *ResponseParser) parseBraceSlice(s string) (domain.ClassificationOutcome, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return domain.ClassificationOutcome{}, false
	}

	var resp classificationResponse
	dec := json.NewDecoder(strings.NewReader(s[start : end+1]))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&resp); err != nil || resp.Category == "" {
		return domain.ClassificationOutcome{}, false
	}

	return domain.ClassificationOutcome{Category: resp.Category, Confidence: resp.Confidence}, true
}

// parseGeneric implements tiers 2 and 3: any JSON object with a string
// "category" field is accepted, confidence optional.
func (p *ResponseParser) parseGeneric(s string) (domain.ClassificationOutcome, bool) {
	var generic map[string]any
	if err := json.Unmarshal([]byte(s), &generic); err != nil {
		return domain.ClassificationOutcome{}, false
	}

	category, ok := generic["category"].(string)
	if !ok || category == "" {
		return domain.ClassificationOutcome{}, false
	}

	outcome := domain.ClassificationOutcome{Category: category}
	if conf, ok := generic["confidence"].(float64); ok {
		outcome.Confidence = &conf
	}
	return outcome, true
}

// parseFields implements tier 4: independent field-level extraction.
func (p *ResponseParser) parseFields(s string) (domain.ClassificationOutcome, bool) {
	m := categoryFieldPattern.FindStringSubmatch(s)
	if m == nil {
		return domain.ClassificationOutcome{}, false
	}

	outcome := domain.ClassificationOutcome{Category: m[1]}
	if cm := confidenceFieldPattern.FindStringSubmatch(s); cm != nil {
		if conf, err := strconv.ParseFloat(cm[1], 64); err == nil {
			outcome.Confidence = &conf
		}
	}
	return outcome, true
}

// inferKnownCategory implements tier 5: scan for the literal word
// "category" co-occurring with any known category name, case
// insensitively. The first known name that appears wins.
func (p *ResponseParser) inferKnownCategory(s string, known []string) (domain.ClassificationOutcome, bool) {
	lower := strings.ToLower(s)
	if !strings.Contains(lower, "category") {
		return domain.ClassificationOutcome{}, false
	}

	for _, name := range known {
		if name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) {
			return domain.ClassificationOutcome{Category: name}, true
		}
	}
	return domain.ClassificationOutcome{}, false
}
