package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/antoniostano/voicelab/internal/catalog"
)

type personaRequest struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	LocalName        string `json:"local_name"`
	Archetype        string `json:"archetype"`
	Traits           string `json:"traits"`
	ToneInstructions string `json:"tone_instructions"`
	RecommendedVoice string `json:"recommended_voice"`
}

func (r personaRequest) toPersona() catalog.Persona {
	return catalog.Persona{
		ID:               r.ID,
		Name:             r.Name,
		LocalName:        r.LocalName,
		Archetype:        r.Archetype,
		Traits:           r.Traits,
		ToneInstructions: r.ToneInstructions,
		RecommendedVoice: r.RecommendedVoice,
	}
}

func (s *Server) handleListPersonas(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"personas": s.svc.Personas().List()})
}

func (s *Server) handleCreatePersona(w http.ResponseWriter, r *http.Request) {
	var req personaRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	p, err := s.svc.Personas().Create(req.toPersona())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePersona(w http.ResponseWriter, r *http.Request) {
	var req personaRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	p, err := s.svc.Personas().Update(chi.URLParam(r, "id"), req.toPersona())
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// Deleting a persona is idempotent: an unknown id still reports success.
// The response carries whether the id still resolves so a caller holding it
// as the selected persona can clear its selection.
func (s *Server) handleDeletePersona(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.svc.Personas().Delete(id); err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"deleted":      id,
		"still_exists": s.svc.Personas().Exists(id),
	})
}
