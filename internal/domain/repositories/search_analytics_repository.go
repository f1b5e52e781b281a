package repositories

import (
	"context"

	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
)

// SearchAnalyticsRepository persists one append-only record per search and
// exposes the read-side aggregations.
type SearchAnalyticsRepository interface {
	LogEvent(ctx context.Context, event *entities.SearchEvent) error

	// PopularQueries groups non-empty query texts from the last 7 days and
	// returns the top buckets by count descending.
	PopularQueries(ctx context.Context, limit int) ([]entities.PopularQuery, error)

	// TrendingLocations groups non-empty city values from the last 24 hours
	// and returns the top buckets by count descending.
	TrendingLocations(ctx context.Context, limit int) ([]entities.TrendingLocation, error)

	// Stats summarises the whole log: totals, today's count, average latency
	// and cache-hit ratio.
	Stats(ctx context.Context) (*entities.SearchStats, error)
}
