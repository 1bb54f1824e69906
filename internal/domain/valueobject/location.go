package valueobject

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// GeoPoint is a WGS84 coordinate pair in decimal degrees.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Latitude: lat, Longitude: lng}
}

// IsValid reports whether both components are finite and within range.
func (p GeoPoint) IsValid() bool {
	return isFinite(p.Latitude) && isFinite(p.Longitude) &&
		p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// Orb returns the point in orb's [lng, lat] order.
func (p GeoPoint) Orb() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Latitude, p.Longitude)
}

func GeoPointFromOrb(pt orb.Point) GeoPoint {
	return GeoPoint{Latitude: pt.Lat(), Longitude: pt.Lon()}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
