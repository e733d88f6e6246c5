package soilscan

import "errors"

var (
	// ErrUnsupportedFormat is returned for file types outside the
	// supported set (PDF, Word, CSV/Excel, image).
	ErrUnsupportedFormat = errors.New("soilscan: unsupported document format")

	// ErrExtractionFailed is returned when no extractor could produce
	// usable text from the uploaded bytes.
	ErrExtractionFailed = errors.New("soilscan: text extraction failed")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("soilscan: invalid configuration")
)
