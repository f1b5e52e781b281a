package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
	"github.com/Adi-7i/Banquet/backend/internal/domain/providers"
	"github.com/Adi-7i/Banquet/backend/internal/search/cachekey"
)

const invalidationTimeout = 5 * time.Second

// CacheInvalidationService sweeps the search cache namespace whenever a venue
// write event arrives. The sweep is deliberately coarse: any create, update
// or delete can reshuffle an unknown set of result pages, so all of them go.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for venue write events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelVenueWrites)
	if err != nil {
		return fmt.Errorf("failed to subscribe to venue writes: %w", err)
	}

	go s.processEvents(eventChan)
	log.Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	log.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.VenueEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok || s.ctx.Err() != nil {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent sweeps the whole search namespace for a single venue event.
// A failed or partial sweep is not retried: entries still carry a TTL, so
// staleness is bounded either way.
func (s *CacheInvalidationService) handleEvent(event *entities.VenueEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), invalidationTimeout)
	defer cancel()

	removed := s.cache.InvalidateNamespace(ctx, cachekey.Namespace)
	log.Info().
		Str("event_id", event.ID).
		Str("venue_id", event.VenueID).
		Str("event_type", string(event.EventType)).
		Int("removed", removed).
		Msg("search cache invalidated")
}

// InvalidateAll sweeps the search namespace on demand, for maintenance and
// bulk imports.
func (s *CacheInvalidationService) InvalidateAll(ctx context.Context) int {
	return s.cache.InvalidateNamespace(ctx, cachekey.Namespace)
}
