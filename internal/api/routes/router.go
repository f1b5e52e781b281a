package routes

import (
	"net/http"

	"github.com/Adi-7i/Banquet/backend/internal/api/handlers"
	"github.com/Adi-7i/Banquet/backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler    *handlers.SearchHandler
	analyticsHandler *handlers.AnalyticsHandler
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	analyticsHandler *handlers.AnalyticsHandler,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		searchHandler:    searchHandler,
		analyticsHandler: analyticsHandler,
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

	// Venue search endpoints
	r.mux.HandleFunc("GET /api/venues/search", r.searchHandler.SearchVenues)
	r.mux.HandleFunc("GET /api/venues/facets", r.searchHandler.GetFacets)
	r.mux.HandleFunc("GET /api/venues/suggest", r.searchHandler.SuggestVenues)

	// Analytics endpoints
	r.mux.HandleFunc("GET /api/analytics/popular-queries", r.analyticsHandler.GetPopularQueries)
	r.mux.HandleFunc("GET /api/analytics/trending-locations", r.analyticsHandler.GetTrendingLocations)
	r.mux.HandleFunc("GET /api/analytics/stats", r.analyticsHandler.GetStats)

	// CORS wraps everything so headers are set on every response
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
