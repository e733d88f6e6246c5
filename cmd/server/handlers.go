package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/denizerkan/soilscan"
)

type handler struct {
	pipeline  *soilscan.Pipeline
	maxUpload int64
	metrics   *metrics
}

func newHandler(p *soilscan.Pipeline, maxUpload int64, m *metrics) *handler {
	return &handler{pipeline: p, maxUpload: maxUpload, metrics: m}
}

// POST /api/upload-file
// Accepts a multipart upload in the "file" field and returns the
// extraction result as JSON.
func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	if r.ContentLength > h.maxUpload {
		writeError(w, http.StatusRequestEntityTooLarge, "Dosya çok büyük")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Dosya çok büyük")
			return
		}
		writeError(w, http.StatusBadRequest, "Dosya bulunamadı")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Dosya bulunamadı")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "Dosya seçilmedi")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		slog.Error("reading upload", "error", err)
		return
	}

	result := h.pipeline.Process(ctx, soilscan.RawDocument{
		Filename:    filepath.Base(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})

	outcome := "success"
	status := http.StatusOK
	if !result.Success {
		outcome = "failure"
		status = http.StatusBadRequest
	}
	h.metrics.uploadsTotal.WithLabelValues(methodOrUnknown(result), outcome).Inc()

	writeJSON(w, status, result)
}

func methodOrUnknown(r *soilscan.Result) string {
	if r.ExtractionMethod == "" {
		return "unknown"
	}
	return r.ExtractionMethod
}

// POST /api/recommend
// Streams the recommendation as plain text chunks.
func (h *handler) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var inputs map[string]any
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil || len(inputs) == 0 {
		writeError(w, http.StatusBadRequest, "Input verisi bulunamadı")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	err := h.pipeline.Recommend(r.Context(), inputs, func(chunk string) error {
		if _, werr := io.WriteString(w, chunk); werr != nil {
			return werr
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		// Headers already sent; the error chunk went to the client.
		slog.Warn("recommendation stream ended with error", "error", err)
	}
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
