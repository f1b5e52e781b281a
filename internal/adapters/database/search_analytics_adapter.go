package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
	"github.com/Adi-7i/Banquet/backend/internal/domain/repositories"
	"github.com/Adi-7i/Banquet/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/Adi-7i/Banquet/backend/pkg/errors"
)

const (
	popularWindow  = "created_at > now() - interval '7 days'"
	trendingWindow = "created_at > now() - interval '24 hours'"
)

// SearchAnalyticsAdapter persists search events and serves the aggregate
// reports over them.
type SearchAnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSearchAnalyticsAdapter creates a new search analytics adapter
func NewSearchAnalyticsAdapter(client *postgres.Client) repositories.SearchAnalyticsRepository {
	return &SearchAnalyticsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// LogEvent stores a single search event, filling the id and timestamp when
// the caller left them empty.
func (a *SearchAnalyticsAdapter) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	insertSQL, args, err := a.db.Insert("search_events").Rows(goqu.Record{
		"id":           event.ID,
		"query":        event.Query,
		"filters":      event.Filters,
		"user_id":      event.UserID,
		"client_addr":  event.ClientAddr,
		"result_count": event.ResultCount,
		"city":         event.City,
		"latitude":     event.Latitude,
		"longitude":    event.Longitude,
		"sort_by":      event.SortBy,
		"latency_ms":   event.LatencyMs,
		"cache_hit":    event.CacheHit,
		"created_at":   event.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build search event insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, insertSQL, args...); err != nil {
		return apperrors.NewInternalError("failed to log search event", err)
	}
	return nil
}

// PopularQueries returns the most frequent non-empty query strings of the
// last seven days.
func (a *SearchAnalyticsAdapter) PopularQueries(ctx context.Context, limit int) ([]entities.PopularQuery, error) {
	querySQL, args, err := a.db.Select(
		"query",
		goqu.COUNT("*").As("count"),
		goqu.COALESCE(goqu.AVG("result_count"), 0).As("avg_result_count"),
	).From("search_events").
		Where(goqu.I("query").Neq(""), goqu.L(popularWindow)).
		GroupBy("query").
		Order(goqu.I("count").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build popular queries query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, querySQL, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch popular queries", err)
	}
	defer rows.Close()

	popular := []entities.PopularQuery{}
	for rows.Next() {
		var p entities.PopularQuery
		if err := rows.Scan(&p.Query, &p.Count, &p.AvgResultCount); err != nil {
			return nil, apperrors.NewInternalError("failed to scan popular query", err)
		}
		popular = append(popular, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating popular queries", err)
	}

	return popular, nil
}

// TrendingLocations returns the most searched cities of the last day.
func (a *SearchAnalyticsAdapter) TrendingLocations(ctx context.Context, limit int) ([]entities.TrendingLocation, error) {
	querySQL, args, err := a.db.Select(
		"city",
		goqu.COUNT("*").As("count"),
	).From("search_events").
		Where(goqu.I("city").Neq(""), goqu.L(trendingWindow)).
		GroupBy("city").
		Order(goqu.I("count").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build trending locations query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, querySQL, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch trending locations", err)
	}
	defer rows.Close()

	trending := []entities.TrendingLocation{}
	for rows.Next() {
		var l entities.TrendingLocation
		if err := rows.Scan(&l.City, &l.Count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan trending location", err)
		}
		trending = append(trending, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating trending locations", err)
	}

	return trending, nil
}

// Stats aggregates volume, latency and cache effectiveness in one pass.
func (a *SearchAnalyticsAdapter) Stats(ctx context.Context) (*entities.SearchStats, error) {
	statsSQL := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= date_trunc('day', now())),
			COALESCE(AVG(latency_ms), 0),
			COALESCE(100.0 * COUNT(*) FILTER (WHERE cache_hit) / NULLIF(COUNT(*), 0), 0)
		FROM search_events
	`

	stats := &entities.SearchStats{}
	err := a.client.DB().QueryRowContext(ctx, statsSQL).Scan(
		&stats.TotalSearches,
		&stats.SearchesToday,
		&stats.AvgLatencyMs,
		&stats.CacheHitPercent,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate search stats", err)
	}

	return stats, nil
}
