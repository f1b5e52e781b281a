package entities

// CityCount is one bucket of the per-city histogram.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// AmenityCount is one bucket of the per-amenity histogram. Only amenities
// with value true are counted.
type AmenityCount struct {
	Amenity string `json:"amenity"`
	Count   int    `json:"count"`
}

// Range is an inclusive min/max pair.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FacetSummary aggregates the published venue set for filter UIs. It is
// computed over the same publicly visible subset search uses and ignores all
// other query parameters.
type FacetSummary struct {
	Cities        []CityCount    `json:"cities"`
	PriceRange    Range          `json:"price_range"`
	CapacityRange Range          `json:"capacity_range"`
	Amenities     []AmenityCount `json:"amenities"`
}
