package providers

import (
	"context"

	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to venue
// write events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.VenueEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.VenueEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelVenueWrites carries every create/update/delete of a venue
// whose publicly visible fields changed.
const EventChannelVenueWrites = "venue:writes"
