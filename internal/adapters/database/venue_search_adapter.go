package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"

	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
	"github.com/Adi-7i/Banquet/backend/internal/domain/repositories"
	"github.com/Adi-7i/Banquet/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/Adi-7i/Banquet/backend/pkg/errors"
)

const amenityFacetLimit = 20

// venueColumns is the scan order shared by every venue query in this
// adapter.
var venueColumns = []interface{}{
	"id", "owner_id", "name", "description", "street", "city", "state",
	"zip_code", "country", "latitude", "longitude", "capacity",
	"price_per_hour", "currency", "amenities", "images", "rating",
	"review_count", "status", "created_at", "updated_at",
}

// VenueSearchAdapter implements the VenueSearchRepository against
// PostgreSQL. One filtered dataset feeds both the count and the page query,
// so concurrent writes between the two statements surface only as
// eventual-consistency noise in the total; no snapshot is taken.
type VenueSearchAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewVenueSearchAdapter creates a new venue search adapter
func NewVenueSearchAdapter(client *postgres.Client) repositories.VenueSearchRepository {
	return &VenueSearchAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Search returns the matching page and the total count of the same filtered
// set. Only published venues are eligible.
func (a *VenueSearchAdapter) Search(ctx context.Context, query entities.SearchQuery) ([]repositories.VenueHit, int, error) {
	q := query.Normalize()

	ds := a.db.From(a.filteredDataset(q).As("venue_hits"))
	if q.HasRadius() {
		ds = ds.Where(goqu.I("distance_km").Lte(*q.RadiusKm))
	}

	countSQL, countArgs, err := ds.Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count venues", err)
	}

	pageCols := append(append([]interface{}{}, venueColumns...), "distance_km")
	pageQuery := ds.Select(pageCols...).
		Order(a.orderings(q)...).
		Limit(uint(q.Limit)).
		Offset(uint(q.Offset()))

	pageSQL, pageArgs, err := pageQuery.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to search venues", err)
	}
	defer rows.Close()

	hits := []repositories.VenueHit{}
	for rows.Next() {
		hit, err := scanVenueHit(rows)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan venue", err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewInternalError("error iterating venues", err)
	}

	return hits, total, nil
}

// filteredDataset builds the published-only dataset with every supplied
// filter applied and a distance_km column computed when the query carries
// coordinates. The radius bound is applied by the caller on the wrapping
// dataset because distance_km is an alias.
func (a *VenueSearchAdapter) filteredDataset(q entities.SearchQuery) *goqu.SelectDataset {
	cols := append(append([]interface{}{}, venueColumns...), a.distanceColumn(q))

	ds := a.db.Select(cols...).
		From("venues").
		Where(goqu.Ex{"status": string(entities.VenueStatusPublished)})

	if q.Text != "" {
		ds = ds.Where(goqu.L(
			"to_tsvector('english', name || ' ' || description) @@ plainto_tsquery('english', ?)",
			q.Text,
		))
	}
	if q.City != "" {
		ds = ds.Where(goqu.I("city").ILike("%" + q.City + "%"))
	}
	if q.MinCapacity != nil {
		ds = ds.Where(goqu.I("capacity").Gte(*q.MinCapacity))
	}
	if q.MaxCapacity != nil {
		ds = ds.Where(goqu.I("capacity").Lte(*q.MaxCapacity))
	}
	if q.MinPrice != nil {
		ds = ds.Where(goqu.I("price_per_hour").Gte(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		ds = ds.Where(goqu.I("price_per_hour").Lte(*q.MaxPrice))
	}
	if q.MinRating != nil {
		ds = ds.Where(goqu.I("rating").Gte(*q.MinRating))
	}

	// every requested amenity must be present and true
	for _, amenity := range q.Amenities {
		ds = ds.Where(goqu.L("(amenities ->> ?)::boolean IS TRUE", amenity))
	}

	if q.AvailableDate != nil {
		ds = ds.Where(goqu.L(
			"NOT EXISTS (SELECT 1 FROM bookings b WHERE b.venue_id = venues.id AND b.status = 'confirmed' AND b.event_date = ?)",
			q.AvailableDate.UTC().Format(time.DateOnly),
		))
	}

	return ds
}

// distanceColumn yields the great-circle distance in km when coordinates
// were supplied and NULL otherwise. The acos argument is clamped: float
// rounding can push it past 1.0 for identical coordinates, which would yield
// NaN.
func (a *VenueSearchAdapter) distanceColumn(q entities.SearchQuery) goqu.Expression {
	if !q.HasCoordinates() {
		return goqu.L("NULL::double precision").As("distance_km")
	}
	return goqu.L(
		"(6371 * acos(LEAST(1.0, cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + sin(radians(?)) * sin(radians(latitude)))))",
		*q.Latitude, *q.Longitude, *q.Latitude,
	).As("distance_km")
}

// orderings maps a sort mode to a total order. Distance without coordinates
// falls back to newest.
func (a *VenueSearchAdapter) orderings(q entities.SearchQuery) []exp.OrderedExpression {
	switch q.SortBy {
	case entities.SortPriceLow:
		return []exp.OrderedExpression{goqu.I("price_per_hour").Asc()}
	case entities.SortPriceHigh:
		return []exp.OrderedExpression{goqu.I("price_per_hour").Desc()}
	case entities.SortRating:
		return []exp.OrderedExpression{goqu.I("rating").Desc(), goqu.I("created_at").Desc()}
	case entities.SortDistance:
		if q.HasCoordinates() {
			return []exp.OrderedExpression{goqu.I("distance_km").Asc()}
		}
		return []exp.OrderedExpression{goqu.I("created_at").Desc()}
	case entities.SortPopularity:
		return []exp.OrderedExpression{goqu.I("rating").Desc(), goqu.I("capacity").Desc()}
	default:
		return []exp.OrderedExpression{goqu.I("created_at").Desc()}
	}
}

// Facets aggregates the published venue set only; the caller's search
// filters never influence it.
func (a *VenueSearchAdapter) Facets(ctx context.Context) (*entities.FacetSummary, error) {
	summary := &entities.FacetSummary{
		Cities:    []entities.CityCount{},
		Amenities: []entities.AmenityCount{},
	}

	citySQL, cityArgs, err := a.db.Select("city", goqu.COUNT("*").As("count")).
		From("venues").
		Where(goqu.Ex{"status": string(entities.VenueStatusPublished)}).
		GroupBy("city").
		Order(goqu.I("count").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build city facet query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, citySQL, cityArgs...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate cities", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c entities.CityCount
		if err := rows.Scan(&c.City, &c.Count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan city facet", err)
		}
		summary.Cities = append(summary.Cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating city facets", err)
	}

	rangeSQL, rangeArgs, err := a.db.Select(
		goqu.COALESCE(goqu.MIN("price_per_hour"), 0).As("min_price"),
		goqu.COALESCE(goqu.MAX("price_per_hour"), 0).As("max_price"),
		goqu.COALESCE(goqu.MIN("capacity"), 0).As("min_capacity"),
		goqu.COALESCE(goqu.MAX("capacity"), 0).As("max_capacity"),
	).From("venues").
		Where(goqu.Ex{"status": string(entities.VenueStatusPublished)}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build range facet query", err)
	}

	err = a.client.DB().QueryRowContext(ctx, rangeSQL, rangeArgs...).Scan(
		&summary.PriceRange.Min,
		&summary.PriceRange.Max,
		&summary.CapacityRange.Min,
		&summary.CapacityRange.Max,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate ranges", err)
	}

	// amenity histogram over true-valued keys only
	amenitySQL := `
		SELECT am.key, COUNT(*) AS count
		FROM venues, jsonb_each_text(amenities) AS am
		WHERE status = $1 AND am.value = 'true'
		GROUP BY am.key
		ORDER BY count DESC
		LIMIT $2
	`
	amenityRows, err := a.client.DB().QueryContext(ctx, amenitySQL,
		string(entities.VenueStatusPublished), amenityFacetLimit)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate amenities", err)
	}
	defer amenityRows.Close()

	for amenityRows.Next() {
		var c entities.AmenityCount
		if err := amenityRows.Scan(&c.Amenity, &c.Count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan amenity facet", err)
		}
		summary.Amenities = append(summary.Amenities, c)
	}
	if err := amenityRows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating amenity facets", err)
	}

	return summary, nil
}

func scanVenueHit(rows *sql.Rows) (repositories.VenueHit, error) {
	var (
		hit       repositories.VenueHit
		amenities []byte
		images    []string
		distance  sql.NullFloat64
	)

	err := rows.Scan(
		&hit.Venue.ID,
		&hit.Venue.OwnerID,
		&hit.Venue.Name,
		&hit.Venue.Description,
		&hit.Venue.Address.Street,
		&hit.Venue.Address.City,
		&hit.Venue.Address.State,
		&hit.Venue.Address.ZipCode,
		&hit.Venue.Address.Country,
		&hit.Venue.Location.Latitude,
		&hit.Venue.Location.Longitude,
		&hit.Venue.Capacity,
		&hit.Venue.PricePerHour,
		&hit.Venue.Currency,
		&amenities,
		pq.Array(&images),
		&hit.Venue.Rating,
		&hit.Venue.ReviewCount,
		&hit.Venue.Status,
		&hit.Venue.CreatedAt,
		&hit.Venue.UpdatedAt,
		&distance,
	)
	if err != nil {
		return hit, err
	}

	hit.Venue.Images = images
	if len(amenities) > 0 {
		if err := json.Unmarshal(amenities, &hit.Venue.Amenities); err != nil {
			return hit, err
		}
	}
	if distance.Valid {
		km := math.Round(distance.Float64*100) / 100
		hit.DistanceKm = &km
	}

	return hit, nil
}
