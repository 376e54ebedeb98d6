// Package api exposes the sprite engine over HTTP for local tooling and the
// drop pipeline. Raw provenance never reaches the logs; request logging and
// error responses carry digests only.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/batch"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/rules"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/store"
)

// Options carries server-wide defaults applied when requests omit a value.
type Options struct {
	// AuthToken protects /api/v1 when set. Empty leaves the API open.
	AuthToken string

	// FrameSize is the frame edge used when a request omits one.
	FrameSize int

	// Workers is the drop render pool size used when a request omits one.
	Workers int

	// PolicyScript is a drop policy body applied when a drop request carries
	// no script of its own.
	PolicyScript string
}

// Server handles HTTP requests
type Server struct {
	db        store.DB
	runner    *batch.Runner
	tables    *rules.Tables
	log       zerolog.Logger
	opts      Options
	startTime time.Time
}

// NewServer creates a new API server.
func NewServer(db store.DB, log zerolog.Logger, opts Options) *Server {
	return &Server{
		db:        db,
		runner:    batch.NewRunner(log),
		tables:    rules.Default(),
		log:       log,
		opts:      opts,
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with proper middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.bearerAuth)

		r.Post("/generate", s.handleGenerate)
		r.Post("/drops", s.handleCreateDrop)
		r.Get("/drops", s.handleListDrops)
		r.Get("/drops/{dropID}", s.handleGetDrop)
		r.Get("/drops/{dropID}/tokens", s.handleDropTokens)
		r.Get("/tokens/{tokenID}/sheet.png", s.handleTokenSheet)
		r.Get("/catalog", s.handleCatalog)
		r.Post("/seed/digest", s.handleSeedDigest)
	})

	return r
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Forge-Version", EngineVersion)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeError writes a structured error response
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string, context map[string]interface{}) {
	errorResponse := ForgeError{
		Type:      errType,
		Message:   message,
		Context:   context,
		RequestID: middleware.GetReqID(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("X-Error-Type", errType)
	w.Header().Set("X-Error-Category", string(GetErrorCategory(errType)))
	s.writeJSON(w, status, errorResponse)
}
