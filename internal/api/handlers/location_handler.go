package handlers

import (
	"net/http"

	"github.com/kurumrehberi/institution-directory/backend/internal/application/services"
)

// LocationHandler serves the province and district hierarchy
type LocationHandler struct {
	svc *services.DirectoryService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(svc *services.DirectoryService) *LocationHandler {
	return &LocationHandler{svc: svc}
}

// GetProvinces handles GET /api/locations/provinces
func (h *LocationHandler) GetProvinces(w http.ResponseWriter, r *http.Request) {
	provinces, err := h.svc.Provinces()
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"provinces": provinces,
	})
}

// GetDistricts handles GET /api/locations/provinces/{province}/districts
func (h *LocationHandler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	province := r.PathValue("province")
	if province == "" {
		respondWithError(w, http.StatusBadRequest, "province is required")
		return
	}

	districts, err := h.svc.Districts(province)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"province":  province,
		"districts": districts,
	})
}

// GetTypes handles GET /api/institutions/types
func (h *LocationHandler) GetTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.Types()
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"types": types,
	})
}
