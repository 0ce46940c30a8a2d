package handlers

import (
	"net/http"

	"github.com/kurumrehberi/institution-directory/backend/internal/application/services"
	"github.com/kurumrehberi/institution-directory/backend/internal/search"
)

// SuggestHandler serves type-ahead suggestions
type SuggestHandler struct {
	svc    *services.DirectoryService
	recent *search.RecentSearchLog
}

// NewSuggestHandler creates a new suggestion handler
func NewSuggestHandler(svc *services.DirectoryService, recent *search.RecentSearchLog) *SuggestHandler {
	return &SuggestHandler{svc: svc, recent: recent}
}

// GetSuggestions handles GET /api/suggestions
func (h *SuggestHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	req := search.NewSuggestionRequest(r.URL.Query().Get("q"))

	suggestions, err := h.svc.Suggest(r.Context(), h.recent.List(), req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, suggestions)
}
