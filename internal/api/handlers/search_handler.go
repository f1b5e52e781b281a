package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Adi-7i/Banquet/backend/internal/application/services"
	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
	apperrors "github.com/Adi-7i/Banquet/backend/pkg/errors"
)

// SearchHandler handles venue search HTTP requests
type SearchHandler struct {
	searchService    *services.SearchService
	analyticsService *services.SearchAnalyticsService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *services.SearchService, analyticsService *services.SearchAnalyticsService) *SearchHandler {
	return &SearchHandler{
		searchService:    searchService,
		analyticsService: analyticsService,
	}
}

// SearchVenues handles GET /api/venues/search
func (h *SearchHandler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	query, err := parseSearchQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	meta := services.SearchRequestMeta{
		ClientAddr: clientAddr(r),
		UserID:     r.Header.Get("X-User-ID"),
	}

	result, err := h.searchService.Search(r.Context(), query, meta)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetFacets handles GET /api/venues/facets
func (h *SearchHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.searchService.Facets(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, facets)
}

// SuggestVenues handles GET /api/venues/suggest
func (h *SearchHandler) SuggestVenues(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	n := 0
	if limit != nil {
		n = *limit
	}

	suggestions, err := h.analyticsService.Suggestions(r.Context(), r.URL.Query().Get("q"), n)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
	})
}

// parseSearchQuery maps URL query parameters onto a search query. Anything
// unparseable is a client error; range and pagination clamping happens later
// in Normalize.
func parseSearchQuery(r *http.Request) (entities.SearchQuery, error) {
	values := r.URL.Query()
	query := entities.SearchQuery{
		Text:   strings.TrimSpace(values.Get("q")),
		City:   strings.TrimSpace(values.Get("city")),
		SortBy: entities.SortMode(values.Get("sort")),
	}

	if amenities := values.Get("amenities"); amenities != "" {
		for _, amenity := range strings.Split(amenities, ",") {
			if amenity = strings.TrimSpace(amenity); amenity != "" {
				query.Amenities = append(query.Amenities, amenity)
			}
		}
	}

	var err error
	if query.MinCapacity, err = intParam(r, "min_capacity"); err != nil {
		return query, err
	}
	if query.MaxCapacity, err = intParam(r, "max_capacity"); err != nil {
		return query, err
	}
	if query.MinPrice, err = floatParam(r, "min_price"); err != nil {
		return query, err
	}
	if query.MaxPrice, err = floatParam(r, "max_price"); err != nil {
		return query, err
	}
	if query.MinRating, err = floatParam(r, "min_rating"); err != nil {
		return query, err
	}
	if query.Latitude, err = floatParam(r, "lat"); err != nil {
		return query, err
	}
	if query.Longitude, err = floatParam(r, "lng"); err != nil {
		return query, err
	}
	if query.RadiusKm, err = floatParam(r, "radius_km"); err != nil {
		return query, err
	}

	if (query.Latitude == nil) != (query.Longitude == nil) {
		return query, apperrors.NewValidationError("lat and lng must be supplied together")
	}

	if raw := values.Get("available_date"); raw != "" {
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return query, apperrors.NewValidationError("available_date must be YYYY-MM-DD")
		}
		query.AvailableDate = &date
	}

	if page, err := intParam(r, "page"); err != nil {
		return query, err
	} else if page != nil {
		query.Page = *page
	}
	if limit, err := intParam(r, "limit"); err != nil {
		return query, err
	} else if limit != nil {
		query.Limit = *limit
	}

	return query, nil
}

func intParam(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(name + " must be an integer")
	}
	return &value, nil
}

func floatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.NewValidationError(name + " must be a number")
	}
	return &value, nil
}

func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Helper functions
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
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
