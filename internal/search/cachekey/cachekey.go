// Package cachekey derives deterministic cache keys from search queries.
//
// Two semantically identical queries must map to the same key regardless of
// field order, amenity order or explicit-vs-omitted optional fields, so the
// codec builds a map of only the meaningful fields (json marshals map keys in
// sorted order, which makes the encoding canonical) and digests the result.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/Adi-7i/Banquet/backend/internal/domain/entities"
)

// Namespace prefixes every search cache key. Invalidation sweeps this
// namespace as a whole.
const Namespace = "banquet:search:"

// Encode returns the cache key for a query.
func Encode(query entities.SearchQuery) string {
	q := query.Normalize()

	fields := map[string]interface{}{
		"sort":  string(q.SortBy),
		"page":  q.Page,
		"limit": q.Limit,
	}
	if q.Text != "" {
		fields["text"] = q.Text
	}
	if q.City != "" {
		fields["city"] = q.City
	}
	if len(q.Amenities) > 0 {
		fields["amenities"] = q.Amenities
	}
	if q.MinCapacity != nil {
		fields["min_capacity"] = *q.MinCapacity
	}
	if q.MaxCapacity != nil {
		fields["max_capacity"] = *q.MaxCapacity
	}
	if q.MinPrice != nil {
		fields["min_price"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		fields["max_price"] = *q.MaxPrice
	}
	if q.MinRating != nil {
		fields["min_rating"] = *q.MinRating
	}
	if q.Latitude != nil {
		fields["lat"] = *q.Latitude
	}
	if q.Longitude != nil {
		fields["lng"] = *q.Longitude
	}
	// a radius without coordinates never reaches the query engine, so it
	// must not split otherwise identical keys
	if q.RadiusKm != nil && q.HasCoordinates() {
		fields["radius_km"] = *q.RadiusKm
	}
	if q.AvailableDate != nil {
		fields["available_date"] = q.AvailableDate.UTC().Format(time.DateOnly)
	}

	// map marshaling is deterministic: keys are emitted in sorted order
	raw, err := json.Marshal(fields)
	if err != nil {
		// only reachable with non-serializable values, which the field set
		// above cannot contain
		raw = []byte("{}")
	}

	digest := sha256.Sum256(raw)
	return Namespace + hex.EncodeToString(digest[:])
}
