package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Darkcoder011/TasteSphere/internal/models"
	"github.com/Darkcoder011/TasteSphere/internal/pipeline"
	"github.com/Darkcoder011/TasteSphere/internal/store"
)

// Server exposes the pipeline and display preferences over HTTP for the
// browser front-end. It only ever reads pipeline state; all writes go
// through the pipeline's own entry points.
type Server struct {
	pipeline *pipeline.Pipeline
	prefs    *store.PrefsStore
	logger   *zap.Logger
}

func New(p *pipeline.Pipeline, prefs *store.PrefsStore, logger *zap.Logger) *Server {
	return &Server{
		pipeline: p,
		prefs:    prefs,
		logger:   logger,
	}
}

// Router builds the HTTP API
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleSubmit)
		r.Post("/chat/retry", s.handleRetry)
		r.Delete("/chat", s.handleClear)
		r.Get("/state", s.handleState)
		r.Get("/recommendations", s.handleRecommendations)
		r.Put("/filter", s.handleSetFilter)
		r.Get("/entity-types", s.handleEntityTypes)
		r.Get("/theme", s.handleGetTheme)
		r.Put("/theme", s.handleSetTheme)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

type submitRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch err := s.pipeline.Submit(r.Context(), req.Text); {
	case errors.Is(err, pipeline.ErrEmptyInput):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, pipeline.ErrBusy):
		s.respondError(w, http.StatusConflict, err.Error())
	case err != nil:
		s.respondError(w, http.StatusInternalServerError, err.Error())
	default:
		s.respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	switch err := s.pipeline.Retry(r.Context()); {
	case errors.Is(err, pipeline.ErrNoSubmission):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, pipeline.ErrBusy):
		s.respondError(w, http.StatusConflict, err.Error())
	case err != nil:
		s.respondError(w, http.StatusInternalServerError, err.Error())
	default:
		s.respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	s.pipeline.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}

type stateResponse struct {
	Messages        []models.Message                              `json:"messages"`
	Recommendations map[models.EntityType][]models.Recommendation `json:"recommendations"`
	Entities        []models.Entity                               `json:"entities"`
	ActiveFilter    models.EntityType                             `json:"active_filter"`
	Submitting      bool                                          `json:"submitting"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, stateResponse{
		Messages:        s.pipeline.Messages(),
		Recommendations: s.pipeline.Recommendations(),
		Entities:        s.pipeline.Entities(),
		ActiveFilter:    s.pipeline.ActiveFilter(),
		Submitting:      s.pipeline.Submitting(),
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	filter := s.pipeline.ActiveFilter()
	if raw := r.URL.Query().Get("filter"); raw != "" {
		filter = models.EntityType(raw)
		if filter != models.FilterAll && !filter.Valid() {
			s.respondError(w, http.StatusBadRequest, "unknown filter")
			return
		}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"filter":          filter,
		"recommendations": s.pipeline.SelectVisible(filter),
	})
}

type filterRequest struct {
	Filter models.EntityType `json:"filter"`
}

func (s *Server) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.pipeline.SetFilter(req.Filter); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]models.EntityType{"filter": req.Filter})
}

type entityTypeResponse struct {
	ID    models.EntityType `json:"id"`
	Label string            `json:"label"`
	Icon  string            `json:"icon"`
}

func (s *Server) handleEntityTypes(w http.ResponseWriter, _ *http.Request) {
	types := make([]entityTypeResponse, 0, len(models.EntityTypes))
	for _, t := range models.EntityTypes {
		types = append(types, entityTypeResponse{ID: t, Label: t.Label(), Icon: t.Icon()})
	}
	s.respondJSON(w, http.StatusOK, types)
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func (s *Server) handleGetTheme(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"theme": s.prefs.Theme()})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.prefs.SetTheme(req.Theme); err != nil {
		s.logger.Error("Failed to persist theme preference", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to save preference")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"theme": s.prefs.Theme()})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
