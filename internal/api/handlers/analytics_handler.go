package handlers

import (
	"net/http"

	"github.com/Adi-7i/Banquet/backend/internal/application/services"
)

// AnalyticsHandler serves the search analytics reports
type AnalyticsHandler struct {
	analyticsService *services.SearchAnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.SearchAnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetPopularQueries handles GET /api/analytics/popular-queries
func (h *AnalyticsHandler) GetPopularQueries(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	n := 0
	if limit != nil {
		n = *limit
	}

	popular, err := h.analyticsService.PopularQueries(r.Context(), n)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"popular_queries": popular,
	})
}

// GetTrendingLocations handles GET /api/analytics/trending-locations
func (h *AnalyticsHandler) GetTrendingLocations(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	n := 0
	if limit != nil {
		n = *limit
	}

	trending, err := h.analyticsService.TrendingLocations(r.Context(), n)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trending_locations": trending,
	})
}

// GetStats handles GET /api/analytics/stats
func (h *AnalyticsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsService.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
