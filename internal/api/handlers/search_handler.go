// Package handlers contains the thin HTTP adapters over the directory
// service. Handlers translate query parameters into engine inputs and
// render plain data structures; no search logic lives here.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/kurumrehberi/institution-directory/backend/internal/application/services"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
	"github.com/kurumrehberi/institution-directory/backend/internal/geo"
	"github.com/kurumrehberi/institution-directory/backend/internal/search"
	apperrors "github.com/kurumrehberi/institution-directory/backend/pkg/errors"
)

// SearchHandler handles institution lookup and search requests
type SearchHandler struct {
	svc *services.DirectoryService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(svc *services.DirectoryService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// GetInstitution handles GET /api/institutions/{id}
func (h *SearchHandler) GetInstitution(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "institution ID is required")
		return
	}

	record, err := h.svc.GetInstitution(id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// SearchInstitutions handles GET /api/institutions/search
func (h *SearchHandler) SearchInstitutions(w http.ResponseWriter, r *http.Request) {
	in, err := parseSearchInput(r)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	result, crit, err := h.svc.Query(r.Context(), in, nil)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items":       result.Items,
		"total_count": result.TotalCount,
		"page":        crit.Page,
		"page_size":   crit.PageSize,
	})
}

func parseSearchInput(r *http.Request) (search.Input, error) {
	q := r.URL.Query()

	in := search.Input{
		SearchText: q.Get("q"),
		Province:   q.Get("province"),
		District:   q.Get("district"),
		SortBy:     q.Get("sort_by"),
		SortOrder:  q.Get("sort_order"),
	}
	if types := q.Get("types"); types != "" {
		in.Types = strings.Split(types, ",")
	}

	var err error
	if in.Page, err = parseIntParam(q.Get("page"), "page"); err != nil {
		return in, err
	}
	if in.PageSize, err = parseIntParam(q.Get("page_size"), "page_size"); err != nil {
		return in, err
	}

	box, err := parseBoundingBox(q)
	if err != nil {
		return in, err
	}
	in.BoundingBox = box

	radius, nearMe, err := parseOriginRadius(q)
	if err != nil {
		return in, err
	}
	in.OriginRadius = radius
	in.NearMe = nearMe

	return in, nil
}

// parseBoundingBox reads min_lat/min_lon/max_lat/max_lon; all four must be
// present together
func parseBoundingBox(q map[string][]string) (*geo.BoundingBox, error) {
	values := make([]float64, 0, 4)
	present := 0
	for _, key := range []string{"min_lat", "min_lon", "max_lat", "max_lon"} {
		raw := first(q[key])
		if raw == "" {
			values = append(values, 0)
			continue
		}
		present++
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, apperrors.NewInvalidFilterError("invalid " + key)
		}
		values = append(values, v)
	}

	switch present {
	case 0:
		return nil, nil
	case 4:
		return &geo.BoundingBox{MinLat: values[0], MinLon: values[1], MaxLat: values[2], MaxLon: values[3]}, nil
	default:
		return nil, apperrors.NewInvalidFilterError("bounding box requires min_lat, min_lon, max_lat and max_lon")
	}
}

// parseOriginRadius reads lat/lon/radius_km. The near=true flag without
// coordinates marks a "find near me" request whose origin could not be
// determined; normalization turns that into a geo-unavailable fallback.
func parseOriginRadius(q map[string][]string) (*search.OriginRadius, bool, error) {
	nearMe := first(q["near"]) == "true"
	latRaw, lonRaw := first(q["lat"]), first(q["lon"])
	if latRaw == "" || lonRaw == "" {
		return nil, nearMe, nil
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, nearMe, apperrors.NewInvalidFilterError("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return nil, nearMe, apperrors.NewInvalidFilterError("invalid lon")
	}

	radiusKm := 10.0
	if raw := first(q["radius_km"]); raw != "" {
		if radiusKm, err = strconv.ParseFloat(raw, 64); err != nil {
			return nil, nearMe, apperrors.NewInvalidFilterError("invalid radius_km")
		}
	}

	return &search.OriginRadius{
		Origin:   entities.Location{Latitude: lat, Longitude: lon},
		RadiusKm: radiusKm,
	}, true, nil
}

func parseIntParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewInvalidFilterError("invalid " + name)
	}
	return v, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Helper functions shared by all handlers in this package

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeInvalidFilter, apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
