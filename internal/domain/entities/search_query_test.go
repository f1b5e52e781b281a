package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchQueryNormalize(t *testing.T) {
	q := SearchQuery{Page: -3, Limit: 0, SortBy: "bogus", Amenities: []string{"wifi", "parking"}}
	n := q.Normalize()

	assert.Equal(t, 1, n.Page)
	assert.Equal(t, DefaultPageSize, n.Limit)
	assert.Equal(t, SortNewest, n.SortBy)
	assert.Equal(t, []string{"parking", "wifi"}, n.Amenities)
	// the receiver stays untouched
	assert.Equal(t, []string{"wifi", "parking"}, q.Amenities)
}

func TestSearchQueryNormalizeClampsLimit(t *testing.T) {
	n := SearchQuery{Limit: 5000}.Normalize()
	assert.Equal(t, MaxPageSize, n.Limit)
}

func TestSearchQueryHasRadius(t *testing.T) {
	lat, lng, radius, zero := 30.0, -97.0, 10.0, 0.0

	assert.False(t, SearchQuery{RadiusKm: &radius}.HasRadius(), "radius without coordinates is ignored")
	assert.False(t, SearchQuery{Latitude: &lat, Longitude: &lng, RadiusKm: &zero}.HasRadius())
	assert.True(t, SearchQuery{Latitude: &lat, Longitude: &lng, RadiusKm: &radius}.HasRadius())
}

func TestSearchQueryOffset(t *testing.T) {
	q := SearchQuery{Page: 3, Limit: 20}.Normalize()
	assert.Equal(t, 40, q.Offset())
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		limit      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of many", 25, 1, 10, 3, true, false},
		{"middle page", 25, 2, 10, 3, true, true},
		{"last partial page", 25, 3, 10, 3, false, true},
		{"beyond the end", 25, 9, 10, 3, false, true},
		{"empty result", 0, 1, 10, 0, false, false},
		{"exact fit", 20, 2, 10, 2, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
		})
	}
}
