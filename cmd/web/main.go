package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ideogram-ai-bot/internal/httpclient"
	"ideogram-ai-bot/internal/params"
	"ideogram-ai-bot/internal/pipeline"
	"ideogram-ai-bot/internal/replicate"
)

//go:embed static/*
var staticFS embed.FS

type server struct {
	pipe    *pipeline.Pipeline
	timeout time.Duration
}

type apiError struct {
	Error string `json:"error"`
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Markdown string `json:"markdown"`
	ImageURL string `json:"image_url"`
	Style    string `json:"style"`
	Aspect   string `json:"aspect_ratio"`
	Size     string `json:"resolution"`
}

func main() {
	_ = godotenv.Load()

	apiToken := strings.TrimSpace(os.Getenv("REPLICATE_API_TOKEN"))
	if apiToken == "" {
		panic("REPLICATE_API_TOKEN is required")
	}

	addr := strings.TrimSpace(getEnv("WEB_ADDR", ":8080"))

	httpTimeout := time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 120)) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 120 * time.Second
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: getEnvBool("PREFER_IPV4", true),
		Timeout:    httpTimeout,
	})

	rep := replicate.New(replicate.Options{
		APIToken:   apiToken,
		BaseURL:    strings.TrimSpace(getEnv("REPLICATE_BASE_URL", "https://api.replicate.com")),
		Model:      strings.TrimSpace(getEnv("REPLICATE_MODEL", "ideogram-ai/ideogram-v2a")),
		HTTPClient: httpClient,
		Logger:     logger,
	})

	pipe := pipeline.New(pipeline.Options{
		Generator: rep,
		Defaults: params.Defaults{
			Style:       strings.TrimSpace(getEnv("DEFAULT_STYLE", "None")),
			AspectRatio: strings.TrimSpace(getEnv("DEFAULT_ASPECT_RATIO", "1:1")),
		},
		Logger: logger,
	})

	reqTimeout := time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 120)) * time.Second
	if reqTimeout <= 0 {
		reqTimeout = 120 * time.Second
	}

	s := &server{pipe: pipe, timeout: reqTimeout}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticSub)))

	srv := &http.Server{
		Addr:              addr,
		Handler:           withLogging(mux, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("web started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
	logger.Info("web stopped")
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method not allowed"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	res, err := s.pipe.Generate(ctx, req.Prompt)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Markdown: pipeline.FormatImage(res.ImageURL),
		ImageURL: res.ImageURL,
		Style:    res.Request.Style,
		Aspect:   res.Request.AspectRatio,
		Size:     res.Request.Resolution.String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func withLogging(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("http", "method", r.Method, "path", r.URL.Path, "dur_ms", time.Since(start).Milliseconds())
	})
}
