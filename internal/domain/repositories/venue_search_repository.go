package repositories

import (
	"context"

	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
)

// VenueHit is a venue row returned by the query engine, carrying the
// computed great-circle distance when the query supplied coordinates.
type VenueHit struct {
	Venue      entities.Venue
	DistanceKm *float64
}

// VenueSearchRepository defines the query engine contract: a filtered,
// geo-aware, sorted and paginated lookup plus the facet aggregation. Both
// operate over published venues only.
type VenueSearchRepository interface {
	// Search returns the page of matching venues and the total count of the
	// same filtered set, computed before skip/limit are applied.
	Search(ctx context.Context, query entities.SearchQuery) ([]VenueHit, int, error)

	// Facets aggregates the published venue set, ignoring all other query
	// parameters.
	Facets(ctx context.Context) (*entities.FacetSummary, error)
}
