package entities

import (
	"time"
)

// VenueSummary is the denormalised public shape of a venue in search results.
// DistanceKm is only set when the query carried coordinates.
type VenueSummary struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	Country      string          `json:"country"`
	Location     Location        `json:"location"`
	Capacity     int             `json:"capacity"`
	PricePerHour float64         `json:"price_per_hour"`
	Currency     string          `json:"currency"`
	Amenities    map[string]bool `json:"amenities"`
	Images       []string        `json:"images"`
	Rating       float64         `json:"rating"`
	ReviewCount  int             `json:"review_count"`
	DistanceKm   *float64        `json:"distance_km,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Pagination describes the page window of a search result.
type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagination derives page metadata from a total count and the requested
// window.
func NewPagination(total, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page*limit < total,
		HasPrev:    page > 1,
	}
}

// SearchMetadata carries response metadata: measured latency, whether the
// result came from cache and a snapshot of the filters the caller actually
// supplied.
type SearchMetadata struct {
	LatencyMs      int64             `json:"latency_ms"`
	Cached         bool              `json:"cached"`
	AppliedFilters map[string]string `json:"applied_filters"`
}

// SearchResult is the externally visible output of a venue search.
type SearchResult struct {
	Items      []VenueSummary `json:"items"`
	Pagination Pagination     `json:"pagination"`
	Metadata   SearchMetadata `json:"metadata"`
	Facets     *FacetSummary  `json:"facets,omitempty"`
}
