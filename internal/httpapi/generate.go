package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/antoniostano/voicelab/internal/export"
	"github.com/antoniostano/voicelab/internal/studio"
	"github.com/antoniostano/voicelab/internal/tts"
)

type generateRequest struct {
	Voice     string `json:"voice"`
	Text      string `json:"text"`
	PersonaID string `json:"persona_id"`
	Model     string `json:"model"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := s.svc.Generate(r.Context(), s.resolveSession(req.SessionID), studio.GenerateRequest{
		Voice:     strings.TrimSpace(req.Voice),
		Text:      req.Text,
		PersonaID: strings.TrimSpace(req.PersonaID),
		Model:     tts.Model(strings.TrimSpace(req.Model)),
	})
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type batchRequest struct {
	Voices      []string `json:"voices"`
	Text        string   `json:"text"`
	PersonaID   string   `json:"persona_id"`
	Model       string   `json:"model"`
	Concurrency int      `json:"concurrency"`
	SessionID   string   `json:"session_id"`
}

type batchResponse struct {
	Results   []studio.Result `json:"results"`
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	results, err := s.svc.RunBatch(r.Context(), s.resolveSession(req.SessionID), studio.BatchRequest{
		Voices:      req.Voices,
		Text:        req.Text,
		PersonaID:   strings.TrimSpace(req.PersonaID),
		Model:       tts.Model(strings.TrimSpace(req.Model)),
		Concurrency: req.Concurrency,
	})
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, batchResponse{
		Results:   results,
		Total:     len(results),
		Succeeded: studio.Succeeded(results),
	})
}

// resolveSession turns the boundary's implicit "active session" convenience
// into the explicit session id the service requires. An explicit id in the
// request always wins; with no active session the legacy bucket is used.
func (s *Server) resolveSession(explicit string) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	return s.svc.Sessions().ActiveID()
}

func (s *Server) handleExportFavorites(w http.ResponseWriter, r *http.Request) {
	archive, err := s.exporter.ExportFavorites(r.Context())
	if errors.Is(err, export.ErrNoFavorites) {
		respondError(w, http.StatusBadRequest, "no_favorites", err.Error())
		return
	}
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, archive)
}
