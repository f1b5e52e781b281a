package cachekey_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
	"github.com/Adi-7i/Banquet/backend/internal/search/cachekey"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestEncode_Deterministic(t *testing.T) {
	q1 := entities.SearchQuery{
		City:        "Mumbai",
		Amenities:   []string{"wifi", "parking", "catering"},
		MinCapacity: intPtr(100),
		SortBy:      entities.SortPriceLow,
		Page:        1,
		Limit:       10,
	}
	q2 := entities.SearchQuery{
		SortBy:      entities.SortPriceLow,
		Amenities:   []string{"parking", "catering", "wifi"},
		Limit:       10,
		Page:        1,
		MinCapacity: intPtr(100),
		City:        "Mumbai",
	}

	assert.Equal(t, cachekey.Encode(q1), cachekey.Encode(q2),
		"field order and amenity order must not affect identity")
}

func TestEncode_AbsentEqualsDefault(t *testing.T) {
	// explicit defaults collide with omitted defaults
	q1 := entities.SearchQuery{City: "Pune"}
	q2 := entities.SearchQuery{
		City:   "Pune",
		SortBy: entities.SortNewest,
		Page:   1,
		Limit:  entities.DefaultPageSize,
	}

	assert.Equal(t, cachekey.Encode(q1), cachekey.Encode(q2))
}

func TestEncode_Sensitivity(t *testing.T) {
	base := entities.SearchQuery{
		Text:        "garden hall",
		City:        "Mumbai",
		Amenities:   []string{"wifi"},
		MinCapacity: intPtr(100),
		MaxCapacity: intPtr(500),
		MinPrice:    floatPtr(1000),
		MaxPrice:    floatPtr(9000),
		MinRating:   floatPtr(4),
		Latitude:    floatPtr(19.0760),
		Longitude:   floatPtr(72.8777),
		RadiusKm:    floatPtr(10),
		AvailableDate: timePtr(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)),
		SortBy:      entities.SortRating,
		Page:        2,
		Limit:       20,
	}
	baseKey := cachekey.Encode(base)

	variants := map[string]entities.SearchQuery{}

	v := base
	v.Text = "banquet hall"
	variants["text"] = v

	v = base
	v.City = "Pune"
	variants["city"] = v

	v = base
	v.Amenities = []string{"wifi", "parking"}
	variants["amenities"] = v

	v = base
	v.MinCapacity = intPtr(200)
	variants["min_capacity"] = v

	v = base
	v.MaxPrice = floatPtr(8000)
	variants["max_price"] = v

	v = base
	v.MinRating = nil
	variants["min_rating"] = v

	v = base
	v.RadiusKm = floatPtr(25)
	variants["radius_km"] = v

	v = base
	v.AvailableDate = timePtr(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	variants["available_date"] = v

	v = base
	v.SortBy = entities.SortDistance
	variants["sort"] = v

	v = base
	v.Page = 3
	variants["page"] = v

	v = base
	v.Limit = 50
	variants["limit"] = v

	for name, variant := range variants {
		assert.NotEqual(t, baseKey, cachekey.Encode(variant),
			"changing %s must change the key", name)
	}
}

func TestEncode_RadiusWithoutCoordinatesIgnored(t *testing.T) {
	// a radius alone is meaningless, so it must not split the key space
	withRadius := entities.SearchQuery{City: "Mumbai", RadiusKm: floatPtr(10)}
	withoutRadius := entities.SearchQuery{City: "Mumbai"}

	assert.Equal(t, cachekey.Encode(withoutRadius), cachekey.Encode(withRadius))

	// with coordinates the radius is meaningful again
	withCoords := entities.SearchQuery{
		City:      "Mumbai",
		Latitude:  floatPtr(19.0760),
		Longitude: floatPtr(72.8777),
		RadiusKm:  floatPtr(10),
	}
	assert.NotEqual(t, cachekey.Encode(withoutRadius), cachekey.Encode(withCoords))
}

func TestEncode_Namespace(t *testing.T) {
	key := cachekey.Encode(entities.SearchQuery{})
	assert.True(t, strings.HasPrefix(key, cachekey.Namespace))
	// sha256 hex after the namespace
	assert.Len(t, key, len(cachekey.Namespace)+64)
}
