package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ServerConfig holds configuration for the leaderboard service.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":3001").
	Address string

	// DBPath is the path to the leaderboard database.
	DBPath string
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address: ":3001",
		DBPath:  "~/.asciiman/leaderboard.db",
	}
}

// Server is the leaderboard HTTP service.
type Server struct {
	repo   Repository
	logger *log.Logger
	now    func() time.Time
	newID  func() string
	http   *http.Server
}

// NewServer creates a service backed by repo. A nil logger logs to stderr.
func NewServer(repo Repository, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "leaderboard",
		})
	}
	return &Server{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/scores", s.handleTop).Methods(http.MethodGet)
	api.HandleFunc("/scores", s.handleSubmit).Methods(http.MethodPost)
	r.Use(s.loggingMiddleware)
	return r
}

// loggingMiddleware logs each request. Player names are never logged.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.now().UTC(),
	})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("mode")))
	entries, err := s.repo.TopEntries(r.Context(), mode, TopLimit)
	if err != nil {
		s.logger.Error("list scores", "mode", mode, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to fetch scores"})
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"scores": entries})
}

// rawSubmission accepts any JSON number so non-integers can be rejected
// instead of failing the decode.
type rawSubmission struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Time  float64 `json:"time"`
	Mode  string  `json:"mode"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	var raw rawSubmission
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if !isInt(raw.Score) || !isInt(raw.Time) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "score and time must be integers"})
		return
	}

	sub := Submission{Name: raw.Name, Score: int(raw.Score), Time: int(raw.Time), Mode: raw.Mode}
	if err := Validate(sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: strings.TrimPrefix(err.Error(), ErrInvalidSubmission.Error()+": ")})
		return
	}
	sub = Normalize(sub)

	now := s.now()
	recent, err := s.repo.CountRecentByName(r.Context(), sub.Name, now.Add(-RateWindow))
	if err != nil {
		s.logger.Error("rate check", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to save score"})
		return
	}
	if recent >= RateLimit {
		s.logger.Warn("rate limited", "mode", sub.Mode)
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "too many submissions, try again later"})
		return
	}

	entry := Entry{
		ID:        s.newID(),
		Name:      sub.Name,
		Score:     sub.Score,
		Time:      sub.Time,
		Mode:      sub.Mode,
		CreatedAt: now.UTC(),
	}
	if err := s.repo.InsertEntry(r.Context(), entry); err != nil {
		s.logger.Error("save score", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to save score"})
		return
	}

	s.logger.Info("score submitted", "mode", entry.Mode, "score", entry.Score, "time", entry.Time)
	writeJSON(w, http.StatusCreated, entry)
}

func isInt(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f) && math.Abs(f) < 1<<31
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client went away; nothing to do
	json.NewEncoder(w).Encode(v)
}

// ListenAndServe starts the service and blocks until SIGINT/SIGTERM.
func (s *Server) ListenAndServe(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("starting leaderboard service", "address", addr)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the service.
func (s *Server) Shutdown() error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
