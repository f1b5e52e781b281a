package entities

import (
	"time"
)

// SearchEvent represents a single search interaction for analytics. Events
// are append-only and never read on the hot path.
type SearchEvent struct {
	ID          string    `json:"id" db:"id"`
	Query       string    `json:"query" db:"query"`
	Filters     string    `json:"filters" db:"filters"`
	UserID      string    `json:"user_id,omitempty" db:"user_id"`
	ClientAddr  string    `json:"client_addr" db:"client_addr"`
	ResultCount int       `json:"result_count" db:"result_count"`
	City        string    `json:"city" db:"city"`
	Latitude    *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64  `json:"longitude,omitempty" db:"longitude"`
	SortBy      string    `json:"sort_by" db:"sort_by"`
	LatencyMs   int64     `json:"latency_ms" db:"latency_ms"`
	CacheHit    bool      `json:"cache_hit" db:"cache_hit"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// PopularQuery is one bucket of the popular-queries aggregation.
type PopularQuery struct {
	Query          string  `json:"query"`
	Count          int     `json:"count"`
	AvgResultCount float64 `json:"avg_result_count"`
}

// TrendingLocation is one bucket of the trending-cities aggregation.
type TrendingLocation struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// SearchStats summarises the whole analytics log.
type SearchStats struct {
	TotalSearches   int     `json:"total_searches"`
	SearchesToday   int     `json:"searches_today"`
	AvgLatencyMs    float64 `json:"avg_latency_ms"`
	CacheHitPercent float64 `json:"cache_hit_percent"`
}
