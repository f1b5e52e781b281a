package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
	"github.com/Adi-7i/Banquet/backend/internal/domain/repositories"
)

const (
	recordTimeout = 5 * time.Second

	defaultReportLimit = 10
	maxReportLimit     = 50

	// how many popular queries the suggestion filter scans
	suggestionPool = 100
)

// SearchAnalyticsService records search events off the request path and
// serves the read-side reports. Recording never blocks a search and a failed
// write is only logged.
type SearchAnalyticsService struct {
	repo    repositories.SearchAnalyticsRepository
	pending sync.WaitGroup
}

// NewSearchAnalyticsService creates a new search analytics service
func NewSearchAnalyticsService(repo repositories.SearchAnalyticsRepository) *SearchAnalyticsService {
	return &SearchAnalyticsService{repo: repo}
}

// Record persists the event in the background. The write gets a fresh
// context so a finished request cannot cancel it.
func (s *SearchAnalyticsService) Record(event *entities.SearchEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("search event recording panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := s.repo.LogEvent(ctx, event); err != nil {
			log.Warn().Err(err).Str("query", event.Query).Msg("failed to record search event")
		}
	}()
}

// Wait blocks until every in-flight recording finished, used on shutdown.
func (s *SearchAnalyticsService) Wait() {
	s.pending.Wait()
}

// PopularQueries returns the top query buckets of the last seven days.
func (s *SearchAnalyticsService) PopularQueries(ctx context.Context, limit int) ([]entities.PopularQuery, error) {
	return s.repo.PopularQueries(ctx, clampReportLimit(limit))
}

// TrendingLocations returns the top searched cities of the last day.
func (s *SearchAnalyticsService) TrendingLocations(ctx context.Context, limit int) ([]entities.TrendingLocation, error) {
	return s.repo.TrendingLocations(ctx, clampReportLimit(limit))
}

// Stats summarises the whole analytics log.
func (s *SearchAnalyticsService) Stats(ctx context.Context) (*entities.SearchStats, error) {
	return s.repo.Stats(ctx)
}

// Suggestions returns popular query texts containing the given fragment,
// most frequent first. An empty fragment yields the overall top queries.
func (s *SearchAnalyticsService) Suggestions(ctx context.Context, fragment string, limit int) ([]string, error) {
	limit = clampReportLimit(limit)

	popular, err := s.repo.PopularQueries(ctx, suggestionPool)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(fragment))
	suggestions := []string{}
	for _, p := range popular {
		if needle != "" && !strings.Contains(strings.ToLower(p.Query), needle) {
			continue
		}
		suggestions = append(suggestions, p.Query)
		if len(suggestions) == limit {
			break
		}
	}

	return suggestions, nil
}

func clampReportLimit(limit int) int {
	if limit < 1 {
		return defaultReportLimit
	}
	if limit > maxReportLimit {
		return maxReportLimit
	}
	return limit
}
