// Package semantic turns recovered report text into a field mapping
// using a generative model. The model is asked for bare JSON; whatever
// comes back is salvaged with decreasing strictness before the parse is
// declared failed.
package semantic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/denizerkan/soilscan/llm"
)

// parseTemperature keeps extraction near-deterministic.
const parseTemperature = 0.1

// previewLimit caps how much raw model output a ParseError carries.
const previewLimit = 500

// ParseError reports that no JSON object could be recovered from the
// model output. Preview holds the head of the raw response for the
// caller's error surface.
type ParseError struct {
	Preview string
}

func (e *ParseError) Error() string {
	return "semantic: no JSON object in model output"
}

// Parser extracts structured soil data from free text.
type Parser struct {
	client        llm.Client
	model         string
	fallbackModel string
}

func New(client llm.Client, model, fallbackModel string) *Parser {
	return &Parser{client: client, model: model, fallbackModel: fallbackModel}
}

// Parse asks the model to map the text onto the canonical field set and
// decodes the response. Quota exhaustion and model-unavailable errors
// trigger one retry against the fallback model; all other failures are
// terminal immediately.
func (p *Parser) Parse(ctx context.Context, text string) (map[string]any, error) {
	req := llm.Request{
		Model:       p.model,
		Prompt:      buildPrompt(text),
		Temperature: parseTemperature,
	}

	raw, err := p.client.Generate(ctx, req)
	if err != nil {
		if p.fallbackModel == "" || !llm.FallbackEligible(err) {
			return nil, fmt.Errorf("semantic parse: %w", err)
		}
		slog.Warn("parse model failed, retrying with fallback",
			"model", p.model, "fallback", p.fallbackModel, "error", err)

		req.Model = p.fallbackModel
		raw, err = p.client.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("semantic parse: %w", err)
		}
	}

	return decodeRecord(raw)
}

var reJSONObject = regexp.MustCompile(`(?s)\{.*\}`)

// decodeRecord recovers a JSON object from model output. Models wrap
// JSON in markdown fences or prose despite instructions, so decoding
// tries three shapes in order: fence-stripped text, the span between
// the first '{' and last '}', and a regex match over the whole output.
func decodeRecord(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start != -1 && end > start {
		text = text[start : end+1]
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err == nil {
		return data, nil
	}

	if m := reJSONObject.FindString(text); m != "" {
		if err := json.Unmarshal([]byte(m), &data); err == nil {
			return data, nil
		}
	}

	return nil, &ParseError{Preview: truncate(raw, previewLimit)}
}

// truncate cuts s to at most n bytes, backing up to a rune boundary so
// the preview stays valid UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
