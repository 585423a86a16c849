package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/antoniostano/voicelab/internal/studio"
)

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	scope := studio.Scope{
		Kind:      studio.ScopeKind(strings.TrimSpace(r.URL.Query().Get("scope"))),
		SessionID: strings.TrimSpace(r.URL.Query().Get("session_id")),
	}
	if scope.Kind == studio.ScopeSession && scope.SessionID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "session scope requires session_id")
		return
	}

	list, err := s.svc.ListAssets(r.Context(), scope)
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"assets": list, "total": len(list)})
}

func (s *Server) handleServeAudio(w http.ResponseWriter, r *http.Request) {
	path, err := s.svc.AudioPath(chi.URLParam(r, "filename"))
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	http.ServeFile(w, r, path)
}

func (s *Server) handleServeMetadata(w http.ResponseWriter, r *http.Request) {
	meta, err := s.svc.ReadMetadata(chi.URLParam(r, "filename"))
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(meta))
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.FavoriteAssets(r.Context())
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"assets": list, "total": len(list)})
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	fav, err := s.svc.ToggleFavorite(filename)
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"filename": filename, "favorite": fav})
}
