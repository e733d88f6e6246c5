package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DoclingProvider runs structured-document extraction against a Docling
// conversion service. The engine wants a file path, so the image bytes
// are written to a temporary file with a format-appropriate suffix and
// removed again once the conversion call returns, success or not.
type DoclingProvider struct {
	baseURL string
	client  *http.Client
}

func NewDoclingProvider(baseURL string) *DoclingProvider {
	return &DoclingProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *DoclingProvider) Name() string { return "docling" }

func (p *DoclingProvider) Available() bool { return p != nil && p.baseURL != "" }

// MinLength gates out near-empty conversions: a structured model that
// recovered under 50 characters from a lab report photo has almost
// certainly missed the content, so the chain falls through to vision.
func (p *DoclingProvider) MinLength() int { return 50 }

func (p *DoclingProvider) Extract(ctx context.Context, doc Document) (string, error) {
	// The conversion engine keys its input format on the file suffix.
	suffix := strings.ToLower(filepath.Ext(doc.Filename))
	if suffix == "" {
		suffix = suffixForMIME(doc.ContentType)
	}

	tmp, err := os.CreateTemp("", "soilscan-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(doc.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	return p.convert(ctx, tmpPath)
}

func (p *DoclingProvider) convert(ctx context.Context, path string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		f.Close()
		return "", err
	}
	f.Close()
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/v1alpha/convert/file", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("docling request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("docling error %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Document struct {
			TextContent string `json:"text_content"`
			MDContent   string `json:"md_content"`
		} `json:"document"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding docling response: %w", err)
	}

	// Markdown keeps tables as pipe rows, which is exactly the shape
	// the semantic parser wants; prefer it when both are present.
	if result.Document.MDContent != "" {
		return result.Document.MDContent, nil
	}
	return result.Document.TextContent, nil
}

func suffixForMIME(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "png"):
		return ".png"
	case strings.Contains(mimeType, "gif"):
		return ".gif"
	case strings.Contains(mimeType, "bmp"):
		return ".bmp"
	case strings.Contains(mimeType, "webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}
