// Package proximity decides which geotagged records lie within a search
// radius of an origin and how wide a map should be zoomed to show them.
package proximity

import (
	"math"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
)

// EarthRadiusMeters is the mean spherical radius used for every distance.
const EarthRadiusMeters = 6371000.0

// Distance returns the haversine great-circle distance in meters. Both
// points must be valid; use DistanceBetween for unchecked input.
func Distance(a, b valueobject.GeoPoint) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	// rounding can push h slightly past 1 for antipodal points
	h = math.Min(1, h)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c
}

// DistanceBetween is Distance with both points validated first.
func DistanceBetween(a, b valueobject.GeoPoint) (float64, error) {
	if !a.IsValid() || !b.IsValid() {
		return 0, domain.ErrInvalidLocation
	}
	return Distance(a, b), nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
