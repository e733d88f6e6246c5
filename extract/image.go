package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// OCRProvider is one strategy for recovering text from a photographed
// report. Providers are tried in order by the ImageChain; a result is
// accepted only when it meets the provider's MinLength gate.
type OCRProvider interface {
	// Name labels the provider in diagnostics ("docling", "vision").
	Name() string

	// Available reports whether the provider can run in this
	// deployment. Absence is a normal condition, not an error.
	Available() bool

	// Extract attempts text recovery from the image bytes.
	Extract(ctx context.Context, doc Document) (string, error)

	// MinLength is the acceptance gate: shorter output is treated as
	// an inconclusive attempt and the chain falls through.
	MinLength() int
}

// ImageChain runs the recovery ladder for image inputs: structured
// document model first, generative vision inference second. A provider
// that is unavailable, errors, or produces output below its gate hands
// over to the next one; only the final provider's error is terminal.
type ImageChain struct {
	providers []OCRProvider
}

func NewImageChain(providers ...OCRProvider) *ImageChain {
	return &ImageChain{providers: providers}
}

func (c *ImageChain) Extract(ctx context.Context, doc Document) (*ExtractedText, error) {
	var lastErr error

	for i, p := range c.providers {
		last := i == len(c.providers)-1

		if !p.Available() {
			continue
		}

		text, err := p.Extract(ctx, doc)
		if err != nil {
			if last {
				return nil, err
			}
			slog.Debug("image recovery attempt failed, falling through",
				"provider", p.Name(), "error", err)
			lastErr = err
			continue
		}

		text = strings.TrimSpace(text)
		if len(text) < p.MinLength() {
			if last {
				break
			}
			slog.Debug("image recovery result below acceptance gate",
				"provider", p.Name(), "length", len(text), "min", p.MinLength())
			continue
		}

		return &ExtractedText{Body: text, Format: FormatImage, Engine: p.Name()}, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("image text recovery failed: %w", lastErr)
	}
	return nil, fmt.Errorf("image text recovery failed: no provider produced usable text")
}
