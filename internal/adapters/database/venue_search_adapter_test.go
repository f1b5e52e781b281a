package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
	"github.com/Adi-7i/Banquet/backend/internal/infrastructure/clients/postgres"
)

var hitColumns = []string{
	"id", "owner_id", "name", "description", "street", "city", "state",
	"zip_code", "country", "latitude", "longitude", "capacity",
	"price_per_hour", "currency", "amenities", "images", "rating",
	"review_count", "status", "created_at", "updated_at", "distance_km",
}

func setupMockAdapter(t *testing.T) (*VenueSearchAdapter, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	adapter := NewVenueSearchAdapter(postgres.NewClientFromDB(mockDB)).(*VenueSearchAdapter)
	return adapter, mock
}

func venueRow(rows *sqlmock.Rows, id, name, city string, distance interface{}) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, "owner-1", name, "a spacious hall", "12 Main St", city, "CA",
		"94016", "US", 37.77, -122.42, 150, 250.0, "USD",
		[]byte(`{"wifi":true,"parking":true}`), []byte(`{https://img/1.jpg}`),
		4.5, 12, "published", now, now, distance,
	)
}

func TestVenueSearchAdapter_SearchDefault(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM \(SELECT .* "status" = 'published'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows(hitColumns)
	rows = venueRow(rows, "v-1", "Grand Hall", "San Francisco", nil)
	rows = venueRow(rows, "v-2", "Garden Pavilion", "Oakland", nil)
	mock.ExpectQuery(`SELECT .* FROM \(SELECT .*\) AS "venue_hits" ORDER BY "created_at" DESC LIMIT 10`).
		WillReturnRows(rows)

	hits, total, err := adapter.Search(context.Background(), entities.SearchQuery{})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, hits, 2)
	assert.Equal(t, "Grand Hall", hits[0].Venue.Name)
	assert.True(t, hits[0].Venue.Amenities["wifi"])
	assert.Nil(t, hits[0].DistanceKm)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueSearchAdapter_SearchFilters(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	minCap := 100
	maxPrice := 500.0
	query := entities.SearchQuery{
		Text:        "wedding hall",
		City:        "austin",
		MinCapacity: &minCap,
		MaxPrice:    &maxPrice,
		Amenities:   []string{"wifi", "parking"},
	}

	// every filter must land in both the count and the page statement
	filtered := `plainto_tsquery\('english', 'wedding hall'\).*ILIKE '%austin%'.*"capacity" >= 100.*"price_per_hour" <= 500.*\(amenities ->> 'parking'\)::boolean IS TRUE.*\(amenities ->> 'wifi'\)::boolean IS TRUE`

	mock.ExpectQuery(`SELECT COUNT\(\*\).*` + filtered).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := venueRow(sqlmock.NewRows(hitColumns), "v-1", "Grand Hall", "Austin", nil)
	mock.ExpectQuery(filtered).WillReturnRows(rows)

	hits, total, err := adapter.Search(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, hits, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueSearchAdapter_SearchGeoRadius(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	lat, lng, radius := 37.7749, -122.4194, 10.0
	query := entities.SearchQuery{
		Latitude:  &lat,
		Longitude: &lng,
		RadiusKm:  &radius,
		SortBy:    entities.SortDistance,
	}

	geo := `acos\(LEAST\(1\.0,.*"distance_km" <= 10`

	mock.ExpectQuery(`SELECT COUNT\(\*\).*` + geo).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := venueRow(sqlmock.NewRows(hitColumns), "v-1", "Grand Hall", "San Francisco", 3.456789)
	mock.ExpectQuery(geo + `.*ORDER BY "distance_km" ASC`).WillReturnRows(rows)

	hits, _, err := adapter.Search(context.Background(), query)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.NotNil(t, hits[0].DistanceKm)
	assert.Equal(t, 3.46, *hits[0].DistanceKm)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueSearchAdapter_SearchDistanceWithoutRadius(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	lat, lng := 37.7749, -122.4194
	query := entities.SearchQuery{Latitude: &lat, Longitude: &lng}

	// the distance column is computed but must not filter anything
	mock.ExpectQuery(`SELECT COUNT\(\*\).*acos`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := venueRow(sqlmock.NewRows(hitColumns), "v-1", "Grand Hall", "San Francisco", 42.0)
	mock.ExpectQuery(`acos.*ORDER BY "created_at" DESC`).WillReturnRows(rows)

	hits, _, err := adapter.Search(context.Background(), query)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.NotNil(t, hits[0].DistanceKm)
	assert.Equal(t, 42.0, *hits[0].DistanceKm)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueSearchAdapter_SearchAvailableDate(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	query := entities.SearchQuery{AvailableDate: &date}

	booked := `NOT EXISTS \(SELECT 1 FROM bookings b WHERE b\.venue_id = venues\.id AND b\.status = 'confirmed' AND b\.event_date = '2026-09-12'\)`

	mock.ExpectQuery(`SELECT COUNT\(\*\).*` + booked).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(booked).WillReturnRows(sqlmock.NewRows(hitColumns))

	hits, total, err := adapter.Search(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, hits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueSearchAdapter_SortOrders(t *testing.T) {
	tests := []struct {
		name    string
		sortBy  entities.SortMode
		orderBy string
	}{
		{"price low", entities.SortPriceLow, `ORDER BY "price_per_hour" ASC`},
		{"price high", entities.SortPriceHigh, `ORDER BY "price_per_hour" DESC`},
		{"rating ties on newest", entities.SortRating, `ORDER BY "rating" DESC, "created_at" DESC`},
		{"popularity ties on capacity", entities.SortPopularity, `ORDER BY "rating" DESC, "capacity" DESC`},
		{"distance without coords falls back", entities.SortDistance, `ORDER BY "created_at" DESC`},
		{"default newest", "", `ORDER BY "created_at" DESC`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, mock := setupMockAdapter(t)

			mock.ExpectQuery(`SELECT COUNT\(\*\)`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			mock.ExpectQuery(tt.orderBy).
				WillReturnRows(sqlmock.NewRows(hitColumns))

			_, _, err := adapter.Search(context.Background(), entities.SearchQuery{SortBy: tt.sortBy})

			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVenueSearchAdapter_CountError(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).WillReturnError(assert.AnError)

	_, _, err := adapter.Search(context.Background(), entities.SearchQuery{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count venues")
}

func TestVenueSearchAdapter_Facets(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectQuery(`SELECT "city", COUNT\(\*\) AS "count" FROM "venues".*GROUP BY "city" ORDER BY "count" DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"city", "count"}).
			AddRow("San Francisco", 12).
			AddRow("Oakland", 5))

	mock.ExpectQuery(`SELECT COALESCE\(MIN\("price_per_hour"\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"min_price", "max_price", "min_capacity", "max_capacity"}).
			AddRow(50.0, 900.0, 20.0, 800.0))

	mock.ExpectQuery(`jsonb_each_text\(amenities\)`).
		WithArgs("published", amenityFacetLimit).
		WillReturnRows(sqlmock.NewRows([]string{"key", "count"}).
			AddRow("wifi", 14).
			AddRow("parking", 9))

	facets, err := adapter.Facets(context.Background())

	require.NoError(t, err)
	require.Len(t, facets.Cities, 2)
	assert.Equal(t, "San Francisco", facets.Cities[0].City)
	assert.Equal(t, 12, facets.Cities[0].Count)
	assert.Equal(t, 50.0, facets.PriceRange.Min)
	assert.Equal(t, 900.0, facets.PriceRange.Max)
	assert.Equal(t, 20.0, facets.CapacityRange.Min)
	require.Len(t, facets.Amenities, 2)
	assert.Equal(t, "wifi", facets.Amenities[0].Amenity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueSearchAdapter_FacetsEmptyCatalog(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectQuery(`SELECT "city"`).
		WillReturnRows(sqlmock.NewRows([]string{"city", "count"}))
	mock.ExpectQuery(`SELECT COALESCE`).
		WillReturnRows(sqlmock.NewRows([]string{"min_price", "max_price", "min_capacity", "max_capacity"}).
			AddRow(0.0, 0.0, 0.0, 0.0))
	mock.ExpectQuery(`jsonb_each_text`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "count"}))

	facets, err := adapter.Facets(context.Background())

	require.NoError(t, err)
	assert.Empty(t, facets.Cities)
	assert.Empty(t, facets.Amenities)
	assert.Zero(t, facets.PriceRange.Max)
}
