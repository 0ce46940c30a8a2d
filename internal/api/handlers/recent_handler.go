package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kurumrehberi/institution-directory/backend/internal/search"
)

// RecentHandler manages the per-deployment recent search list
type RecentHandler struct {
	recent *search.RecentSearchLog
}

// NewRecentHandler creates a new recent search handler
func NewRecentHandler(recent *search.RecentSearchLog) *RecentHandler {
	return &RecentHandler{recent: recent}
}

type recentSearchRequest struct {
	Query string `json:"query"`
}

// ListRecentSearches handles GET /api/recent-searches
func (h *RecentHandler) ListRecentSearches(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": h.recent.List(),
	})
}

// RecordRecentSearch handles POST /api/recent-searches
func (h *RecentHandler) RecordRecentSearch(w http.ResponseWriter, r *http.Request) {
	var req recentSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.recent.Record(r.Context(), req.Query); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": h.recent.List(),
	})
}

// DeleteRecentSearch handles DELETE /api/recent-searches
func (h *RecentHandler) DeleteRecentSearch(w http.ResponseWriter, r *http.Request) {
	var req recentSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.recent.Remove(r.Context(), req.Query); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": h.recent.List(),
	})
}
