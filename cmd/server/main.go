package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/denizerkan/soilscan"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	addr := flag.String("addr", ":5001", "Listen address")
	flag.Parse()

	// Structured JSON logging.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := soilscan.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = soilscan.LoadConfig(*configPath)
		if err != nil {
			slog.Error("loading config", "error", err)
			os.Exit(1)
		}
	}

	// Override from environment variables.
	if v := os.Getenv("SOILSCAN_LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = v
	}
	if v := os.Getenv("SOILSCAN_PARSER_MODEL"); v != "" {
		cfg.ParserModel = v
	}
	if v := os.Getenv("SOILSCAN_VISION_MODEL"); v != "" {
		cfg.VisionModel = v
	}
	if v := os.Getenv("SOILSCAN_RECOMMEND_MODEL"); v != "" {
		cfg.RecommendModel = v
	}
	if v := os.Getenv("SOILSCAN_DOCLING_URL"); v != "" {
		cfg.Docling.BaseURL = v
	}
	if v := os.Getenv("SOILSCAN_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	authKey := os.Getenv("SOILSCAN_AUTH_KEY")
	corsOrigins := os.Getenv("SOILSCAN_CORS_ORIGINS")

	pipeline, err := soilscan.New(cfg)
	if err != nil {
		slog.Error("creating pipeline", "error", err)
		os.Exit(1)
	}

	m := newMetrics()
	h := newHandler(pipeline, cfg.MaxUploadBytes, m)
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/upload-file", h.handleUpload)
	mux.HandleFunc("POST /api/recommend", h.handleRecommend)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Middleware chain: recovery -> cors -> auth -> request-id -> logging -> mux
	var handler http.Handler = mux
	handler = logMiddleware(m, handler)
	handler = requestIDMiddleware(handler)
	handler = authMiddleware(authKey, handler)
	handler = corsMiddleware(corsOrigins, handler)
	handler = recoveryMiddleware(handler)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // recommendation responses stream
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
