package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/antoniostano/voicelab/internal/assets"
	"github.com/antoniostano/voicelab/internal/catalog"
	"github.com/antoniostano/voicelab/internal/config"
	"github.com/antoniostano/voicelab/internal/export"
	"github.com/antoniostano/voicelab/internal/observability"
	"github.com/antoniostano/voicelab/internal/session"
	"github.com/antoniostano/voicelab/internal/studio"
)

type Server struct {
	cfg      config.Config
	svc      *studio.Service
	exporter *export.Exporter
	log      *zap.SugaredLogger
}

func New(cfg config.Config, svc *studio.Service, exporter *export.Exporter, log *zap.SugaredLogger) *Server {
	return &Server{cfg: cfg, svc: svc, exporter: exporter, log: log}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	allowed := []string{"http://localhost:*", "http://127.0.0.1:*"}
	if s.cfg.AllowAnyOrigin {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})
	r.Get("/auth/status", s.handleAuthStatus)

	r.Get("/voices", s.handleListVoices)
	r.Get("/texts", s.handleListTexts)

	r.Get("/personas", s.handleListPersonas)
	r.Post("/personas", s.handleCreatePersona)
	r.Put("/personas/{id}", s.handleUpdatePersona)
	r.Delete("/personas/{id}", s.handleDeletePersona)

	// Generation hits the paid provider; rate limit it separately.
	r.Group(func(gr chi.Router) {
		gr.Use(httprate.LimitByIP(s.cfg.RateLimitPerMin, time.Minute))
		gr.Post("/generate", s.handleGenerate)
		gr.Post("/batch", s.handleBatch)
	})

	r.Get("/assets", s.handleListAssets)
	r.Get("/audio/{filename}", s.handleServeAudio)
	r.Get("/metadata/{filename}", s.handleServeMetadata)
	r.Get("/favorites", s.handleListFavorites)
	r.Post("/favorites/{filename}", s.handleToggleFavorite)
	r.Post("/export/favorites", s.handleExportFavorites)

	r.Post("/sessions", s.handleCreateSession)
	r.Get("/sessions", s.handleListSessions)
	r.Get("/sessions/{id}", s.handleGetSession)
	r.Post("/sessions/{id}/activate", s.handleActivateSession)
	r.Patch("/sessions/{id}", s.handlePatchSession)
	r.Patch("/sessions/{id}/favorites", s.handleSessionFavorites)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"provider": s.svc.Provider(),
	})
}

func (s *Server) handleAuthStatus(w http.ResponseWriter, _ *http.Request) {
	provider := s.svc.Provider()
	configured := true
	var detail string
	switch provider {
	case "gemini":
		if strings.TrimSpace(s.cfg.GeminiAPIKey) == "" {
			configured = false
			detail = "GEMINI_API_KEY is not set"
		}
	case "openai":
		if strings.TrimSpace(s.cfg.OpenAIAPIKey) == "" {
			configured = false
			detail = "OPENAI_API_KEY is not set"
		}
	case "mock":
		detail = "mock provider, no credentials required"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"provider": provider,
		"valid":    configured,
		"detail":   detail,
	})
}

func (s *Server) handleListVoices(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"voices": catalog.Voices})
}

func (s *Server) handleListTexts(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, catalog.DemoTexts)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

// respondMappedError translates service errors into the taxonomy the caller
// sees: validation to 400, unknown ids to 404, the rest to 500.
func (s *Server) respondMappedError(w http.ResponseWriter, err error) {
	var ve *studio.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, "invalid_request", ve.Reason)
	case errors.Is(err, session.ErrNotFound):
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, catalog.ErrPersonaNotFound):
		respondError(w, http.StatusNotFound, "persona_not_found", err.Error())
	case errors.Is(err, assets.ErrAssetNotFound):
		respondError(w, http.StatusNotFound, "asset_not_found", err.Error())
	default:
		s.log.Errorw("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
