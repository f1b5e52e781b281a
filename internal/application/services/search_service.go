package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
	"github.com/Adi-7i/Banquet/backend/internal/domain/providers"
	"github.com/Adi-7i/Banquet/backend/internal/domain/repositories"
	"github.com/Adi-7i/Banquet/backend/internal/infrastructure/observability"
	"github.com/Adi-7i/Banquet/backend/internal/search/cachekey"
)

const cacheWriteTimeout = 5 * time.Second

// SearchRecorder accepts search events without blocking the caller.
type SearchRecorder interface {
	Record(event *entities.SearchEvent)
}

// SearchRequestMeta carries request attribution that feeds analytics but
// never influences the result or its cache identity.
type SearchRequestMeta struct {
	ClientAddr string
	UserID     string
}

// SearchService orchestrates a venue search: cache lookup, database query,
// result shaping and the deferred cache and analytics writes. Only the
// database query can fail the search; the cache and analytics tiers degrade
// to logging.
type SearchService struct {
	repo     repositories.VenueSearchRepository
	cache    providers.CacheProvider
	recorder SearchRecorder
	cacheTTL time.Duration
	deferred sync.WaitGroup
}

// NewSearchService creates a new search service
func NewSearchService(
	repo repositories.VenueSearchRepository,
	cache providers.CacheProvider,
	recorder SearchRecorder,
	cacheTTL time.Duration,
) *SearchService {
	return &SearchService{
		repo:     repo,
		cache:    cache,
		recorder: recorder,
		cacheTTL: cacheTTL,
	}
}

// Search runs one venue search end to end.
func (s *SearchService) Search(ctx context.Context, query entities.SearchQuery, meta SearchRequestMeta) (*entities.SearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.Search")
	defer span.End()

	start := time.Now()
	q := query.Normalize()
	key := cachekey.Encode(q)

	if result, ok := s.cachedResult(ctx, key); ok {
		result.Metadata.Cached = true
		result.Metadata.LatencyMs = time.Since(start).Milliseconds()
		s.record(q, meta, result.Pagination.Total, result.Metadata.LatencyMs, true)
		return result, nil
	}

	hits, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]entities.VenueSummary, 0, len(hits))
	for _, hit := range hits {
		items = append(items, summarize(hit))
	}

	result := &entities.SearchResult{
		Items:      items,
		Pagination: entities.NewPagination(total, q.Page, q.Limit),
		Metadata: entities.SearchMetadata{
			LatencyMs:      time.Since(start).Milliseconds(),
			Cached:         false,
			AppliedFilters: appliedFilters(q),
		},
	}

	s.storeResult(key, result)
	s.record(q, meta, total, result.Metadata.LatencyMs, false)

	return result, nil
}

// Facets returns the catalog-wide facet aggregation. The snapshot is served
// straight from the store on every call; callers that need caching do it
// themselves.
func (s *SearchService) Facets(ctx context.Context) (*entities.FacetSummary, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.Facets")
	defer span.End()

	return s.repo.Facets(ctx)
}

// Wait blocks until all deferred cache writes finished, used on shutdown.
func (s *SearchService) Wait() {
	s.deferred.Wait()
}

// cachedResult loads and decodes a cached page. A decode failure counts as a
// miss so a stale or corrupt entry just gets recomputed and overwritten.
func (s *SearchService) cachedResult(ctx context.Context, key string) (*entities.SearchResult, bool) {
	data, ok := s.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}

	var result entities.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cached search result")
		return nil, false
	}
	return &result, true
}

// storeResult writes the page to cache in the background with a fresh
// context, so neither request cancellation nor a slow cache delays the
// response.
func (s *SearchService) storeResult(key string, result *entities.SearchResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to encode search result for cache")
		return
	}

	s.dispatch(func(ctx context.Context) {
		s.cache.Set(ctx, key, payload, s.cacheTTL)
	})
}

func (s *SearchService) dispatch(fn func(context.Context)) {
	s.deferred.Add(1)
	go func() {
		defer s.deferred.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("deferred cache write panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()
		fn(ctx)
	}()
}

func (s *SearchService) record(q entities.SearchQuery, meta SearchRequestMeta, total int, latencyMs int64, cacheHit bool) {
	if s.recorder == nil {
		return
	}

	filters, err := json.Marshal(q)
	if err != nil {
		filters = []byte("{}")
	}

	s.recorder.Record(&entities.SearchEvent{
		Query:       q.Text,
		Filters:     string(filters),
		UserID:      meta.UserID,
		ClientAddr:  meta.ClientAddr,
		ResultCount: total,
		City:        q.City,
		Latitude:    q.Latitude,
		Longitude:   q.Longitude,
		SortBy:      string(q.SortBy),
		LatencyMs:   latencyMs,
		CacheHit:    cacheHit,
	})
}

func summarize(hit repositories.VenueHit) entities.VenueSummary {
	v := hit.Venue

	amenities := v.Amenities
	if amenities == nil {
		amenities = map[string]bool{}
	}
	images := v.Images
	if images == nil {
		images = []string{}
	}

	return entities.VenueSummary{
		ID:           v.ID,
		Name:         v.Name,
		City:         v.Address.City,
		State:        v.Address.State,
		Country:      v.Address.Country,
		Location:     v.Location,
		Capacity:     v.Capacity,
		PricePerHour: v.PricePerHour,
		Currency:     v.Currency,
		Amenities:    amenities,
		Images:       images,
		Rating:       v.Rating,
		ReviewCount:  v.ReviewCount,
		DistanceKm:   hit.DistanceKm,
		CreatedAt:    v.CreatedAt,
	}
}

// appliedFilters snapshots only the filters the caller actually supplied.
func appliedFilters(q entities.SearchQuery) map[string]string {
	filters := map[string]string{"sort": string(q.SortBy)}

	if q.Text != "" {
		filters["text"] = q.Text
	}
	if q.City != "" {
		filters["city"] = q.City
	}
	if len(q.Amenities) > 0 {
		filters["amenities"] = strings.Join(q.Amenities, ",")
	}
	if q.MinCapacity != nil {
		filters["min_capacity"] = strconv.Itoa(*q.MinCapacity)
	}
	if q.MaxCapacity != nil {
		filters["max_capacity"] = strconv.Itoa(*q.MaxCapacity)
	}
	if q.MinPrice != nil {
		filters["min_price"] = strconv.FormatFloat(*q.MinPrice, 'f', -1, 64)
	}
	if q.MaxPrice != nil {
		filters["max_price"] = strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64)
	}
	if q.MinRating != nil {
		filters["min_rating"] = strconv.FormatFloat(*q.MinRating, 'f', -1, 64)
	}
	if q.HasCoordinates() {
		filters["lat"] = strconv.FormatFloat(*q.Latitude, 'f', -1, 64)
		filters["lng"] = strconv.FormatFloat(*q.Longitude, 'f', -1, 64)
	}
	if q.HasRadius() {
		filters["radius_km"] = strconv.FormatFloat(*q.RadiusKm, 'f', -1, 64)
	}
	if q.AvailableDate != nil {
		filters["available_date"] = q.AvailableDate.UTC().Format(time.DateOnly)
	}

	return filters
}
