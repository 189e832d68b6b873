package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/go-toolhub/internal/assist"
	"github.com/example/go-toolhub/internal/catalog"
	"github.com/example/go-toolhub/internal/config"
	"github.com/example/go-toolhub/internal/text"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes   int
	maxImageBytes  int
	workers        int
	requestTimeout time.Duration
	logger         *slog.Logger
	assistant      assist.Asker
}

func defaultOptions() options {
	return options{
		maxTextBytes:   1 << 20,
		maxImageBytes:  assist.DefaultMaxImageBytes,
		workers:        2,
		requestTimeout: 60 * time.Second,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for the
// transform and assistant endpoints.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithMaxImageBytes sets the maximum decoded diagram size for POST /assist.
func WithMaxImageBytes(n int) Option {
	return func(o *options) { o.maxImageBytes = n }
}

// WithWorkers sets the maximum number of concurrent assistant calls.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request assistant deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAssistant enables POST /assist. Without it the endpoint answers 503.
func WithAssistant(a assist.Asker) Option {
	return func(o *options) { o.assistant = a }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	opts options
	sem  chan struct{} // bounds concurrent assistant calls
	log  *slog.Logger
}

// NewHandler returns an http.Handler serving /health, /tools, /modes and the
// POST endpoints /case, /trim, /number and /assist.
func NewHandler(optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		opts: opts,
		log:  opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/tools", h.handleTools)
	mux.HandleFunc("/modes", h.handleModes)
	mux.HandleFunc("/case", h.handleCase)
	mux.HandleFunc("/trim", h.handleTrim)
	mux.HandleFunc("/number", h.handleNumber)
	mux.HandleFunc("/assist", h.handleAssist)
	return withRequestID(mux, h.log)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

func (h *handler) handleTools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, catalog.Filter(r.URL.Query().Get("q")))
}

func (h *handler) handleModes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, text.CaseModes())
}

// decodeJSON reads a POST body into v, writing the error response itself.
// It reports whether the handler should continue.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if r.Body == nil || r.Body == http.NoBody {
		writeError(w, http.StatusBadRequest, "request body is required")
		return false
	}

	// JSON escaping can grow text up to six-fold; images are base64.
	limit := int64(h.opts.maxTextBytes)*6 + int64(h.opts.maxImageBytes)*2 + 4096
	body := http.MaxBytesReader(w, r.Body, limit)

	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooBig.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// checkTextSize enforces the text limit, writing 413 when exceeded.
func (h *handler) checkTextSize(w http.ResponseWriter, s string) bool {
	if len(s) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server: wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	assistant       assist.Asker
	shutdownTimeout time.Duration
	log             *slog.Logger
}

// New creates a Server. A nil assistant is built from cfg.Assist when an
// API key is configured; otherwise POST /assist answers 503.
func New(cfg config.Config, assistant assist.Asker) *Server {
	shutdown := 30 * time.Second
	if cfg.Server.ShutdownTimeout > 0 {
		shutdown = time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	}
	return &Server{
		cfg:             cfg,
		assistant:       assistant,
		shutdownTimeout: shutdown,
		log:             slog.Default(),
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// Handler builds the configured http.Handler.
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	assistant, err := s.runtimeAssistant(ctx)
	if err != nil {
		return nil, err
	}

	handlerOpts := []Option{
		WithWorkers(s.cfg.Server.Workers),
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithMaxImageBytes(s.cfg.Assist.MaxImageBytes),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout) * time.Second),
		WithLogger(s.log),
	}
	if assistant != nil {
		handlerOpts = append(handlerOpts, WithAssistant(assistant))
	}
	return NewHandler(handlerOpts...), nil
}

func (s *Server) Start(ctx context.Context) error {
	h, err := s.Handler(ctx)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.log.Info("listening", slog.String("addr", s.cfg.Server.ListenAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}

func (s *Server) runtimeAssistant(ctx context.Context) (assist.Asker, error) {
	if s.assistant != nil {
		return s.assistant, nil
	}
	if strings.TrimSpace(s.cfg.Assist.APIKey) == "" {
		s.log.Warn("assistant disabled: no API key configured")
		return nil, nil
	}

	c, err := assist.New(ctx, s.cfg.Assist.APIKey,
		assist.WithModel(s.cfg.Assist.Model),
		assist.WithTemperature(s.cfg.Assist.Temperature),
		assist.WithMaxImageBytes(s.cfg.Assist.MaxImageBytes),
		assist.WithRequestsPerMinute(s.cfg.Assist.RequestsPerMinute),
		assist.WithLogger(s.log),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize assistant: %w", err)
	}
	return c, nil
}
