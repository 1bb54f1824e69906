package response

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/location"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/mapview"
)

type LocateResponse struct {
	Location LocationResponse `json:"location"`
	Source   string           `json:"source"`
	Attempts int              `json:"attempts"`
}

// SearchResponse describes the circle a nearby query used.
type SearchResponse struct {
	Center       LocationResponse `json:"center"`
	Source       string           `json:"source"`
	RadiusMeters float64          `json:"radius_meters"`
	Zoom         int              `json:"zoom"`
}

type ZoomResponse struct {
	RadiusMeters float64 `json:"radius_meters"`
	Zoom         int     `json:"zoom"`
}

func LocateFromResolution(res location.Resolution) LocateResponse {
	return LocateResponse{
		Location: LocationFromPoint(res.Point),
		Source:   string(res.Source),
		Attempts: res.Attempts,
	}
}

func SearchFromView(v *mapview.View) SearchResponse {
	return SearchResponse{
		Center:       LocationFromPoint(v.Center),
		Source:       string(v.CenterSource),
		RadiusMeters: v.RadiusMeters,
		Zoom:         v.Zoom,
	}
}

// FeatureCollectionFromView renders the view as GeoJSON. Each feature is a
// point tagged with its layer and distance; the search circle travels as
// foreign members.
func FeatureCollectionFromView(v *mapview.View, openNow func(*entity.Hospital) bool) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, m := range v.Reports {
		r := m.Record
		f := geojson.NewFeature(r.Location.Orb())
		f.ID = r.ID.String()
		f.Properties["layer"] = string(mapview.LayerReports)
		f.Properties["category"] = string(r.Category)
		f.Properties["status"] = string(r.Status)
		f.Properties["species"] = string(r.Species)
		f.Properties["name"] = r.Name
		f.Properties["occurred_at"] = r.OccurredAt
		f.Properties["distance_meters"] = roundMeters(m.DistanceMeters)
		if len(r.Photos) > 0 {
			f.Properties["thumbnail"] = r.Photos[0].URL
		}
		fc.Append(f)
	}

	for _, m := range v.Hospitals {
		h := m.Record
		p, ok := h.Position()
		if !ok {
			continue
		}
		f := geojson.NewFeature(p.Orb())
		f.ID = h.ID.String()
		f.Properties["layer"] = string(mapview.LayerHospitals)
		f.Properties["type"] = string(h.Type)
		f.Properties["name"] = h.Name
		f.Properties["rating"] = h.Rating
		f.Properties["is_24_hours"] = h.Is24Hours
		f.Properties["open_now"] = openNow(&h)
		f.Properties["distance_meters"] = roundMeters(m.DistanceMeters)
		fc.Append(f)
	}

	fc.ExtraMembers = geojson.Properties{
		"center":        []float64{v.Center.Longitude, v.Center.Latitude},
		"center_source": string(v.CenterSource),
		"radius_meters": v.RadiusMeters,
		"zoom":          v.Zoom,
	}
	if len(fc.Features) > 0 {
		fc.BBox = geojson.NewBBox(featureBound(fc))
	}
	return fc
}

func featureBound(fc *geojson.FeatureCollection) orb.Bound {
	b := fc.Features[0].Geometry.Bound()
	for _, f := range fc.Features[1:] {
		b = b.Union(f.Geometry.Bound())
	}
	return b
}

func roundMeters(d float64) float64 {
	return math.Round(d*10) / 10
}
