package routes

import (
	"net/http"

	"github.com/kurumrehberi/institution-directory/backend/internal/api/handlers"
	"github.com/kurumrehberi/institution-directory/backend/internal/api/middleware"
	"github.com/kurumrehberi/institution-directory/backend/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	searchHandler   *handlers.SearchHandler
	suggestHandler  *handlers.SuggestHandler
	locationHandler *handlers.LocationHandler
	recentHandler   *handlers.RecentHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router

func NewRouter(
	searchHandler *handlers.SearchHandler,
	suggestHandler *handlers.SuggestHandler,
	locationHandler *handlers.LocationHandler,
	recentHandler *handlers.RecentHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		searchHandler:   searchHandler,
		suggestHandler:  suggestHandler,
		locationHandler: locationHandler,
		recentHandler:   recentHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Institution endpoints

	r.mux.HandleFunc("GET /api/institutions/search", r.searchHandler.SearchInstitutions)

	r.mux.HandleFunc("GET /api/institutions/types", r.locationHandler.GetTypes)

	r.mux.HandleFunc("GET /api/institutions/{id}", r.searchHandler.GetInstitution)

	// Suggestion endpoint

	r.mux.HandleFunc("GET /api/suggestions", r.suggestHandler.GetSuggestions)

	// Location hierarchy endpoints

	r.mux.HandleFunc("GET /api/locations/provinces", r.locationHandler.GetProvinces)

	r.mux.HandleFunc("GET /api/locations/provinces/{province}/districts", r.locationHandler.GetDistricts)

	// Recent search endpoints

	r.mux.HandleFunc("GET /api/recent-searches", r.recentHandler.ListRecentSearches)
	r.mux.HandleFunc("POST /api/recent-searches", r.recentHandler.RecordRecentSearch)
	r.mux.HandleFunc("DELETE /api/recent-searches", r.recentHandler.DeleteRecentSearch)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so preflight responses get their headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	handler = middleware.CORSMiddleware(handler)

	return handler
}
