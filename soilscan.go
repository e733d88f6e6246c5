// Package soilscan extracts structured data from soil analysis
// reports. A report arrives as raw bytes in any of the supported
// formats (PDF, Word, CSV/Excel, photo), gets linearized into text,
// parsed into the canonical field set by a generative model, and
// normalized into a Record. The pipeline is stateless: nothing about a
// document survives the call that processed it.
package soilscan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/denizerkan/soilscan/extract"
	"github.com/denizerkan/soilscan/llm"
	"github.com/denizerkan/soilscan/record"
	"github.com/denizerkan/soilscan/semantic"
)

// Preview lengths for the result payload. Error surfaces get more
// context than success surfaces.
const (
	successPreviewLen = 200
	errorPreviewLen   = 500
)

// RawDocument is an uploaded report before any processing.
type RawDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Result is the outcome of processing one document. On success Data
// carries the full canonical record; on failure Error names the stage
// that failed and Message carries the human-readable detail.
type Result struct {
	Success              bool          `json:"success"`
	Data                 record.Record `json:"data,omitempty"`
	Error                string        `json:"error,omitempty"`
	Message              string        `json:"message,omitempty"`
	ExtractedTextPreview string        `json:"extracted_text_preview,omitempty"`
	ExtractionMethod     string        `json:"extraction_method,omitempty"`
	MatchedFieldsCount   int           `json:"matched_fields_count"`
	MatchedFields        []string      `json:"matched_fields,omitempty"`
}

// Pipeline wires the format extractors, the semantic parser, and the
// normalizer behind a single Process call.
type Pipeline struct {
	cfg Config

	client  llm.Client
	pdf     *extract.PDFExtractor
	word    *extract.WordExtractor
	tabular *extract.TabularExtractor
	docling *extract.DoclingProvider
	image   *extract.ImageChain
	parser  *semantic.Parser
}

// Option customizes pipeline construction.
type Option func(*Pipeline)

// WithClient substitutes the generative-model client, primarily for
// tests that fake model behavior.
func WithClient(c llm.Client) Option {
	return func(p *Pipeline) { p.client = c }
}

// New builds a Pipeline from the config. The image recovery ladder is
// assembled here: the Docling provider joins only when a base URL is
// configured, vision inference is always the final rung.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.client == nil {
		p.client = llm.NewGemini(llm.Config{APIKey: cfg.APIKey, BaseURL: cfg.LLMBaseURL})
	}

	p.pdf = &extract.PDFExtractor{}
	p.word = &extract.WordExtractor{}
	p.tabular = &extract.TabularExtractor{}
	p.docling = extract.NewDoclingProvider(cfg.Docling.BaseURL)
	p.image = extract.NewImageChain(
		p.docling,
		extract.NewVisionProvider(p.client, cfg.VisionModel, cfg.VisionFallbackModel),
	)
	p.parser = semantic.New(p.client, cfg.ParserModel, cfg.ParserFallbackModel)

	return p, nil
}

// Process runs the full pipeline on one document. It always returns a
// Result; the error return is reserved for context cancellation and
// internal failures that are not document-shaped outcomes.
func (p *Pipeline) Process(ctx context.Context, doc RawDocument) *Result {
	format := extract.DetectFormat(doc.Filename)
	if format == extract.FormatUnknown {
		slog.Info("rejected unsupported document", "filename", doc.Filename)
		return &Result{
			Success: false,
			Error:   "Desteklenmeyen dosya formatı",
			Message: "PDF, Word, CSV, Excel veya resim dosyası yükleyin.",
		}
	}

	extracted, err := p.extract(ctx, format, doc)
	if err != nil {
		slog.Warn("text extraction failed",
			"filename", doc.Filename, "format", format, "error", err)
		return &Result{
			Success: false,
			Error:   "Dosya okunamadı",
			Message: fmt.Sprintf("Dosya okunurken hata oluştu: %v", err),
		}
	}

	method := methodLabel(format, extracted.Engine)
	slog.Info("text extracted",
		"filename", doc.Filename, "method", method, "chars", len(extracted.Body))

	fields, err := p.parser.Parse(ctx, extracted.Body)
	if err != nil {
		slog.Warn("semantic parse failed", "filename", doc.Filename, "error", err)

		var perr *semantic.ParseError
		if errors.As(err, &perr) {
			return &Result{
				Success:              false,
				Error:                "Veri parse edilemedi",
				Message:              perr.Preview,
				ExtractedTextPreview: truncate(extracted.Body, errorPreviewLen),
				ExtractionMethod:     method,
			}
		}
		return &Result{
			Success:              false,
			Error:                "Veri parse hatası",
			Message:              fmt.Sprintf("Çıkarılan metin parse edilemedi: %v", err),
			ExtractedTextPreview: truncate(extracted.Body, errorPreviewLen),
			ExtractionMethod:     method,
		}
	}

	rec := record.Normalize(fields)
	if err := rec.Validate(); err != nil {
		slog.Error("normalized record failed schema validation",
			"filename", doc.Filename, "error", err)
		return &Result{
			Success:              false,
			Error:                "Veri parse hatası",
			Message:              err.Error(),
			ExtractedTextPreview: truncate(extracted.Body, errorPreviewLen),
			ExtractionMethod:     method,
		}
	}

	matched := rec.MatchedFields()
	return &Result{
		Success:              true,
		Data:                 rec,
		ExtractedTextPreview: truncate(extracted.Body, successPreviewLen),
		ExtractionMethod:     method,
		MatchedFieldsCount:   len(matched),
		MatchedFields:        matched,
	}
}

func (p *Pipeline) extract(ctx context.Context, format extract.Format, doc RawDocument) (*extract.ExtractedText, error) {
	d := extract.Document{Filename: doc.Filename, ContentType: doc.ContentType, Data: doc.Data}

	var (
		text *extract.ExtractedText
		err  error
	)
	switch format {
	case extract.FormatPDF:
		text, err = p.pdf.Extract(ctx, d)
	case extract.FormatWord:
		text, err = p.word.Extract(ctx, d)
		if err != nil && p.docling.Available() {
			// Legacy .doc is not a ZIP archive and fails the native
			// extractor; the conversion engine handles it.
			if body, derr := p.docling.Extract(ctx, d); derr == nil && strings.TrimSpace(body) != "" {
				return &extract.ExtractedText{
					Body:   strings.TrimSpace(body),
					Format: extract.FormatWord,
					Engine: "docling",
				}, nil
			}
		}
	case extract.FormatTabular:
		text, err = p.tabular.Extract(ctx, d)
	case extract.FormatImage:
		text, err = p.image.Extract(ctx, d)
	default:
		return nil, ErrUnsupportedFormat
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return text, nil
}

func methodLabel(format extract.Format, engine string) string {
	switch format {
	case extract.FormatPDF:
		return "PDF (native)"
	case extract.FormatWord:
		if engine == "docling" {
			return "Word (Docling)"
		}
		return "Word (native)"
	case extract.FormatTabular:
		return "CSV/Excel (native)"
	case extract.FormatImage:
		if engine == "docling" {
			return "Image (Docling)"
		}
		return "Image (vision fallback)"
	default:
		return string(format)
	}
}

// truncate cuts s to at most n bytes without splitting a rune; Turkish
// previews carry multi-byte characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
