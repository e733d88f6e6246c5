package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/denizerkan/soilscan"
	"github.com/denizerkan/soilscan/llm"
)

// testMetrics is shared across tests: promauto registers collectors in
// the default registry, and a second registration panics.
var testMetrics = newMetrics()

type fakeLLM struct {
	generateResponse string
	streamChunks     []string
	streamErr        error
}

func (f *fakeLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	return f.generateResponse, nil
}

func (f *fakeLLM) GenerateStream(ctx context.Context, req llm.Request, emit func(string) error) error {
	if f.streamErr != nil {
		return f.streamErr
	}
	for _, c := range f.streamChunks {
		if err := emit(c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeLLM) GenerateWithImage(ctx context.Context, req llm.Request, image []byte, mimeType string) (string, error) {
	return "", nil
}

// newTestServer assembles the same middleware chain main installs, so
// handler behavior is exercised as deployed.
func newTestServer(t *testing.T, client llm.Client, authKey, corsOrigins string) http.Handler {
	t.Helper()

	p, err := soilscan.New(soilscan.DefaultConfig(), soilscan.WithClient(client))
	if err != nil {
		t.Fatal(err)
	}
	h := newHandler(p, 1<<20, testMetrics)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload-file", h.handleUpload)
	mux.HandleFunc("POST /api/recommend", h.handleRecommend)
	mux.HandleFunc("GET /health", h.handleHealth)

	var handler http.Handler = mux
	handler = logMiddleware(testMetrics, handler)
	handler = requestIDMiddleware(handler)
	handler = authMiddleware(authKey, handler)
	handler = corsMiddleware(corsOrigins, handler)
	handler = recoveryMiddleware(handler)
	return handler
}

func multipartBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadEndToEnd(t *testing.T) {
	srv := newTestServer(t, &fakeLLM{
		generateResponse: `{"pH": 6.7, "phosphorus_P": 45}`,
	}, "", "")

	body, contentType := multipartBody(t, "analiz.csv", []byte("pH,P\n6.7,45\n"))
	req := httptest.NewRequest("POST", "/api/upload-file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Success            bool           `json:"success"`
		Data               map[string]any `json:"data"`
		ExtractionMethod   string         `json:"extraction_method"`
		MatchedFieldsCount int            `json:"matched_fields_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !result.Success {
		t.Error("success = false")
	}
	if result.ExtractionMethod != "CSV/Excel (native)" {
		t.Errorf("extraction_method = %q", result.ExtractionMethod)
	}
	if result.MatchedFieldsCount != 2 {
		t.Errorf("matched_fields_count = %d, want 2", result.MatchedFieldsCount)
	}
	if result.Data["pH"] != 6.7 {
		t.Errorf("pH = %v, want 6.7", result.Data["pH"])
	}
}

func TestUploadUnsupportedFormat(t *testing.T) {
	srv := newTestServer(t, &fakeLLM{}, "", "")

	body, contentType := multipartBody(t, "rapor.txt", []byte("plain text"))
	req := httptest.NewRequest("POST", "/api/upload-file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Desteklenmeyen dosya formatı") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestUploadMissingFile(t *testing.T) {
	srv := newTestServer(t, &fakeLLM{}, "", "")

	req := httptest.NewRequest("POST", "/api/upload-file", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUploadTooLarge(t *testing.T) {
	p, err := soilscan.New(soilscan.DefaultConfig(), soilscan.WithClient(&fakeLLM{}))
	if err != nil {
		t.Fatal(err)
	}
	h := newHandler(p, 128, testMetrics)

	body, contentType := multipartBody(t, "analiz.csv", bytes.Repeat([]byte("a"), 1024))
	req := httptest.NewRequest("POST", "/api/upload-file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.handleUpload(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

// Streaming must survive the full middleware chain: the logging
// middleware wraps the response writer, and the recommend handler needs
// a flushable writer underneath.
func TestRecommendStreamsThroughMiddleware(t *testing.T) {
	srv := newTestServer(t, &fakeLLM{
		streamChunks: []string{`{"primary_crop":`, `"Buğday"}`},
	}, "", "")

	req := httptest.NewRequest("POST", "/api/recommend", strings.NewReader(`{"pH": 6.7}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if got := rec.Body.String(); got != `{"primary_crop":"Buğday"}` {
		t.Errorf("streamed body = %q", got)
	}
	if !rec.Flushed {
		t.Error("response was never flushed")
	}
}

func TestRecommendEmitsErrorChunk(t *testing.T) {
	srv := newTestServer(t, &fakeLLM{
		streamErr: &quotaError{},
	}, "", "")

	req := httptest.NewRequest("POST", "/api/recommend", strings.NewReader(`{"pH": 6.7}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("error chunk is not JSON: %v\n%s", err, rec.Body.String())
	}
	if payload["error"] != "API quota aşıldı" {
		t.Errorf("error = %q", payload["error"])
	}
}

type quotaError struct{}

func (*quotaError) Error() string { return "429 RESOURCE_EXHAUSTED: quota exceeded" }

func TestRecommendRejectsEmptyInput(t *testing.T) {
	srv := newTestServer(t, &fakeLLM{}, "", "")

	req := httptest.NewRequest("POST", "/api/recommend", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer(t, &fakeLLM{streamChunks: []string{"ok"}}, "secret", "")

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/recommend", strings.NewReader(`{"pH": 6.7}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/recommend", strings.NewReader(`{"pH": 6.7}`))
		req.Header.Set("Authorization", "Bearer secret")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("health bypasses auth", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestCORSEchoesMatchingOrigin(t *testing.T) {
	srv := newTestServer(t, &fakeLLM{}, "", "https://a.example, https://b.example")

	t.Run("allowed origin echoed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "https://b.example")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://b.example" {
			t.Errorf("Allow-Origin = %q, want the request origin", got)
		}
	})

	t.Run("unknown origin gets no header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/recommend", nil)
		req.Header.Set("Origin", "https://a.example")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})
}

func TestCORSWildcard(t *testing.T) {
	srv := newTestServer(t, &fakeLLM{}, "", "*")

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, &fakeLLM{}, "", "")

	t.Run("issued when absent", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("no X-Request-ID on response")
		}
	})

	t.Run("echoed when present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		req.Header.Set("X-Request-ID", "client-id-1")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if got := rec.Header().Get("X-Request-ID"); got != "client-id-1" {
			t.Errorf("X-Request-ID = %q, want client-id-1", got)
		}
	})
}
