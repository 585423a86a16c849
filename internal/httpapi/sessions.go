package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type createSessionRequest struct {
	Name        string   `json:"name"`
	PersonaID   string   `json:"persona_id"`
	TextType    string   `json:"text_type"`
	TextContent string   `json:"text_content"`
	Voices      []string `json:"voices"`
	Files       []string `json:"files"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if req.TextType == "" {
		req.TextType = "demo"
	}

	sess, err := s.svc.CreateSession(r.Context(), req.Name, strings.TrimSpace(req.PersonaID), req.TextType, req.TextContent, req.Voices, req.Files)
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.svc.Sessions().List(r.Context())
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"sessions":  sessions,
		"active_id": s.svc.Sessions().ActiveID(),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Sessions().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleActivateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Sessions().SetActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

type patchSessionRequest struct {
	Voices []string `json:"voices"`
	Files  []string `json:"files"`
}

func (s *Server) handlePatchSession(w http.ResponseWriter, r *http.Request) {
	var req patchSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	sess, err := s.svc.Sessions().Append(r.Context(), chi.URLParam(r, "id"), req.Voices, req.Files)
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

type sessionFavoritesRequest struct {
	Favorites []string `json:"favorites"`
}

func (s *Server) handleSessionFavorites(w http.ResponseWriter, r *http.Request) {
	var req sessionFavoritesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	sess, err := s.svc.UpdateSessionFavorites(r.Context(), chi.URLParam(r, "id"), req.Favorites)
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}
