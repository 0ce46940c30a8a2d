// Package geo provides the pure geometric predicates used by catalog queries.
package geo

import (
	"math"
	"sort"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
)

const earthRadiusKm = 6371.0

// BoundingBox is a rectangular lat/lon extent, typically a map viewport.
// No wraparound handling: the directory covers national-scale data only.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Valid reports whether the box describes a non-empty extent
func (b BoundingBox) Valid() bool {
	return b.MinLat <= b.MaxLat && b.MinLon <= b.MaxLon
}

// HaversineDistanceKm returns the great-circle distance between two points
// in kilometers. Symmetric; zero for coincident points.
func HaversineDistanceKm(a, b entities.Location) float64 {
	dLat := degreesToRadians(b.Latitude - a.Latitude)
	dLon := degreesToRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(a.Latitude))*math.Cos(degreesToRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// WithinBoundingBox reports whether a point falls inside the box,
// inclusive on both latitude and longitude ranges
func WithinBoundingBox(p entities.Location, box BoundingBox) bool {
	return p.Latitude >= box.MinLat && p.Latitude <= box.MaxLat &&
		p.Longitude >= box.MinLon && p.Longitude <= box.MaxLon
}

// WithinRadius reports whether a point lies within radiusKm of origin
func WithinRadius(p, origin entities.Location, radiusKm float64) bool {
	return HaversineDistanceKm(p, origin) <= radiusKm
}

// SortByDistance returns the points ordered by ascending distance from
// origin. The sort is stable: ties keep their input order.
func SortByDistance(points []entities.Location, origin entities.Location) []entities.Location {
	sorted := make([]entities.Location, len(points))
	copy(sorted, points)

	sort.SliceStable(sorted, func(i, j int) bool {
		return HaversineDistanceKm(sorted[i], origin) < HaversineDistanceKm(sorted[j], origin)
	})
	return sorted
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
