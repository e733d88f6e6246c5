// Package extract turns uploaded document bytes into linearized text.
// Each supported format has its own extractor; all of them preserve
// tabular structure as pipe-delimited rows interleaved with narrative
// text, because the downstream semantic parser is prompt-driven and lab
// values live in tables.
package extract

import (
	"context"
	"strings"
)

// Format is the detected document format.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatWord    Format = "word"
	FormatTabular Format = "tabular"
	FormatImage   Format = "image"
	FormatUnknown Format = "unknown"
)

// Document is an uploaded file: raw bytes plus the declared filename
// and media type. It is consumed once and never persisted.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExtractedText is the linearized representation of a document.
// Body is never empty: an extractor that cannot produce text reports
// an error instead.
type ExtractedText struct {
	Body   string
	Format Format
	Engine string // "native", "docling", "vision"
}

// Extractor converts one document format into linearized text.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (*ExtractedText, error)
}

// DetectFormat classifies a filename by suffix. Anything outside the
// supported set is FormatUnknown, which is terminal for the pipeline.
func DetectFormat(filename string) Format {
	name := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(name, ".pdf"):
		return FormatPDF
	case strings.HasSuffix(name, ".doc"), strings.HasSuffix(name, ".docx"):
		return FormatWord
	case strings.HasSuffix(name, ".csv"), strings.HasSuffix(name, ".xlsx"), strings.HasSuffix(name, ".xls"):
		return FormatTabular
	case strings.HasSuffix(name, ".jpg"), strings.HasSuffix(name, ".jpeg"),
		strings.HasSuffix(name, ".png"), strings.HasSuffix(name, ".gif"),
		strings.HasSuffix(name, ".bmp"), strings.HasSuffix(name, ".webp"):
		return FormatImage
	default:
		return FormatUnknown
	}
}
