package entities

import (
	"time"

	"github.com/google/uuid"
)

// VenueEventType represents the type of venue write event
type VenueEventType string

const (
	VenueEventTypeCreated VenueEventType = "created"
	VenueEventTypeUpdated VenueEventType = "updated"
	VenueEventTypeDeleted VenueEventType = "deleted"
)

// VenueEvent announces a write to a searchable venue field. Any such write
// can invalidate cached search results, so the cache invalidation service
// listens for these.
type VenueEvent struct {
	ID        string         `json:"id"`
	VenueID   string         `json:"venue_id"`
	EventType VenueEventType `json:"event_type"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewVenueEvent creates a new venue event
func NewVenueEvent(venueID string, eventType VenueEventType) *VenueEvent {
	return &VenueEvent{
		ID:        uuid.New().String(),
		VenueID:   venueID,
		EventType: eventType,
		Timestamp: time.Now(),
	}
}
