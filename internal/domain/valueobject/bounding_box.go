package valueobject

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// boundPadding widens the prefilter box so that records sitting exactly on
// the radius survive the coarse pass; orb uses a larger earth radius.
const boundPadding = 1.01

type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

func NewBoundingBox(minLat, maxLat, minLng, maxLng float64) *BoundingBox {
	return &BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLng: minLng,
		MaxLng: maxLng,
	}
}

// BoundingBoxAround returns a box containing every point within
// radiusMeters of center, or nil when the box would wrap the antimeridian
// or cover a pole and cannot be expressed as a single envelope.
func BoundingBoxAround(center GeoPoint, radiusMeters float64) *BoundingBox {
	if !center.IsValid() || radiusMeters <= 0 {
		return nil
	}

	b := geo.NewBoundAroundPoint(center.Orb(), radiusMeters*boundPadding)
	bb := fromBound(b)
	if !bb.IsValid() || bb.MaxLng-bb.MinLng >= 359.999 {
		return nil
	}
	return bb
}

func fromBound(b orb.Bound) *BoundingBox {
	return &BoundingBox{
		MinLat: b.Min.Lat(),
		MaxLat: b.Max.Lat(),
		MinLng: b.Min.Lon(),
		MaxLng: b.Max.Lon(),
	}
}

func (bb *BoundingBox) IsValid() bool {
	return bb.MinLat <= bb.MaxLat &&
		bb.MinLng <= bb.MaxLng &&
		bb.MinLat >= -90 && bb.MaxLat <= 90 &&
		bb.MinLng >= -180 && bb.MaxLng <= 180
}

func (bb *BoundingBox) Contains(p GeoPoint) bool {
	return p.Latitude >= bb.MinLat && p.Latitude <= bb.MaxLat &&
		p.Longitude >= bb.MinLng && p.Longitude <= bb.MaxLng
}
