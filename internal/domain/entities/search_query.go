package entities

import (
	"sort"
	"time"
)

// SortMode enumerates the supported result orderings. Each mode maps to a
// total order in the query engine so pagination stays stable.
type SortMode string

const (
	SortPriceLow   SortMode = "PRICE_LOW"
	SortPriceHigh  SortMode = "PRICE_HIGH"
	SortRating     SortMode = "RATING"
	SortDistance   SortMode = "DISTANCE"
	SortPopularity SortMode = "POPULARITY"
	SortNewest     SortMode = "NEWEST"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SearchQuery is the immutable input of a single venue search. Optional
// filters are pointers; nil means "not supplied" and never participates in
// cache identity.
type SearchQuery struct {
	Text          string     `json:"text,omitempty"`
	City          string     `json:"city,omitempty"`
	Amenities     []string   `json:"amenities,omitempty"`
	MinCapacity   *int       `json:"min_capacity,omitempty"`
	MaxCapacity   *int       `json:"max_capacity,omitempty"`
	MinPrice      *float64   `json:"min_price,omitempty"`
	MaxPrice      *float64   `json:"max_price,omitempty"`
	MinRating     *float64   `json:"min_rating,omitempty"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	RadiusKm      *float64   `json:"radius_km,omitempty"`
	AvailableDate *time.Time `json:"available_date,omitempty"`
	SortBy        SortMode   `json:"sort_by,omitempty"`
	Page          int        `json:"page"`
	Limit         int        `json:"limit"`
}

// Normalize clamps pagination, defaults the sort mode and order-normalises
// the amenity list so that semantically equal queries compare equal.
func (q SearchQuery) Normalize() SearchQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	switch q.SortBy {
	case SortPriceLow, SortPriceHigh, SortRating, SortDistance, SortPopularity, SortNewest:
	default:
		q.SortBy = SortNewest
	}
	if len(q.Amenities) > 0 {
		amenities := make([]string, len(q.Amenities))
		copy(amenities, q.Amenities)
		sort.Strings(amenities)
		q.Amenities = amenities
	}
	return q
}

// HasCoordinates reports whether both latitude and longitude were supplied.
func (q SearchQuery) HasCoordinates() bool {
	return q.Latitude != nil && q.Longitude != nil
}

// HasRadius reports whether the query restricts results to a radius. A radius
// without coordinates is meaningless and is ignored.
func (q SearchQuery) HasRadius() bool {
	return q.HasCoordinates() && q.RadiusKm != nil && *q.RadiusKm > 0
}

// Offset returns the skip count derived from page and limit.
func (q SearchQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
