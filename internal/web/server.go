// Package web is the embedding application around the scene engine: a JSON
// API for uploading room photos, opening decorator scenes, and feeding
// pointer events into them.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/oakhaus/decorator/internal/advisor"
	"github.com/oakhaus/decorator/internal/catalog"
	"github.com/oakhaus/decorator/internal/roomimage"
	"github.com/oakhaus/decorator/internal/scene"
)

type Server struct {
	sessions *sessionRegistry
	source   catalog.Source
	rooms    roomimage.Store
	advisor  advisor.Advisor // nil disables the advice endpoint
	clock    scene.Clock
	mux      *http.ServeMux
	logger   *slog.Logger

	sceneWidth  int
	sceneHeight int
}

func NewServer(source catalog.Source, rooms roomimage.Store, adv advisor.Advisor, sceneWidth, sceneHeight int, logger *slog.Logger) *Server {
	s := &Server{
		sessions:    newSessionRegistry(),
		source:      source,
		rooms:       rooms,
		advisor:     adv,
		clock:       scene.SystemClock(),
		mux:         http.NewServeMux(),
		logger:      logger,
		sceneWidth:  sceneWidth,
		sceneHeight: sceneHeight,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /rooms", s.handleUploadRoom)
	s.mux.HandleFunc("GET /rooms/{key}", s.handleGetRoom)
	s.mux.HandleFunc("POST /rooms/{key}/advice", s.handleRoomAdvice)

	s.mux.HandleFunc("POST /scenes", s.handleCreateScene)
	s.mux.HandleFunc("GET /scenes/{id}", s.handleGetScene)
	s.mux.HandleFunc("DELETE /scenes/{id}", s.handleDeleteScene)

	s.mux.HandleFunc("GET /scenes/{id}/catalog/categories", s.handleCategories)
	s.mux.HandleFunc("GET /scenes/{id}/catalog/subcategories", s.handleSubcategories)
	s.mux.HandleFunc("GET /scenes/{id}/catalog/products", s.handleProducts)
	s.mux.HandleFunc("POST /scenes/{id}/catalog/selection", s.handleSelect)

	s.mux.HandleFunc("GET /scenes/{id}/items", s.handleListItems)
	s.mux.HandleFunc("POST /scenes/{id}/items", s.handlePlaceItem)
	s.mux.HandleFunc("DELETE /scenes/{id}/items/{itemID}", s.handleRemoveItem)

	s.mux.HandleFunc("POST /scenes/{id}/pointer", s.handlePointer)
	s.mux.HandleFunc("GET /scenes/{id}/snapshot.webp", s.handleSnapshot)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// session resolves the {id} path variable, writing a 404 when the scene is
// gone (sessions are ephemeral; navigating away tears them down).
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*sceneSession, bool) {
	sess, ok := s.sessions.get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return sess, true
}
