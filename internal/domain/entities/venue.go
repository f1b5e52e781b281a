package entities

import (
	"time"
)

// VenueStatus describes the publication state of a venue listing.
type VenueStatus string

const (
	VenueStatusDraft     VenueStatus = "draft"
	VenueStatusPending   VenueStatus = "pending"
	VenueStatusPublished VenueStatus = "published"
	VenueStatusSuspended VenueStatus = "suspended"
)

// Venue represents a bookable venue listing.
type Venue struct {
	ID           string          `json:"id" db:"id"`
	OwnerID      string          `json:"owner_id" db:"owner_id"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	Address      Address         `json:"address" db:"-"`
	Location     Location        `json:"location" db:"-"`
	Capacity     int             `json:"capacity" db:"capacity"`
	PricePerHour float64         `json:"price_per_hour" db:"price_per_hour"`
	Currency     string          `json:"currency" db:"currency"`
	Amenities    map[string]bool `json:"amenities" db:"-"`
	Images       []string        `json:"images" db:"-"`
	Rating       float64         `json:"rating" db:"rating"`
	ReviewCount  int             `json:"review_count" db:"review_count"`
	Status       VenueStatus     `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// Address represents a physical address
type Address struct {
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	State   string `json:"state" db:"state"`
	ZipCode string `json:"zip_code" db:"zip_code"`
	Country string `json:"country" db:"country"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
