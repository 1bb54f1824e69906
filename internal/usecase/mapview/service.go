package mapview

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/hospital"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/location"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/report"
)

// SourceRequest marks a centre taken from the request instead of a provider.
const SourceRequest location.Source = "request"

type Layer string

const (
	LayerReports   Layer = "reports"
	LayerHospitals Layer = "hospitals"
)

func (l Layer) IsValid() bool {
	return l == LayerReports || l == LayerHospitals
}

type ReportFinder interface {
	Nearby(ctx context.Context, input report.NearbyInput) ([]proximity.Match[entity.Report], error)
}

type HospitalFinder interface {
	Nearby(ctx context.Context, input hospital.NearbyInput) ([]proximity.Match[entity.Hospital], error)
}

type RadiusSource interface {
	SearchRadius(ctx context.Context, userID uuid.UUID) (float64, error)
	ValidateRadius(radius float64) error
}

type Locator interface {
	Resolve(ctx context.Context, p location.Provider) location.Resolution
}

type Service struct {
	locator   Locator
	radii     RadiusSource
	reports   ReportFinder
	hospitals HospitalFinder
	zoom      proximity.ZoomTable
}

func NewService(locator Locator, radii RadiusSource, reports ReportFinder, hospitals HospitalFinder, zoom proximity.ZoomTable) *Service {
	return &Service{
		locator:   locator,
		radii:     radii,
		reports:   reports,
		hospitals: hospitals,
		zoom:      zoom,
	}
}

func (s *Service) Locate(ctx context.Context, p location.Provider) location.Resolution {
	return s.locator.Resolve(ctx, p)
}

func (s *Service) ZoomLevel(radius float64) (int, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return 0, domain.ErrInvalidRadius
	}
	return s.zoom.LevelFor(radius), nil
}

type Input struct {
	UserID uuid.UUID
	// Origin wins over Provider when set.
	Origin   *valueobject.GeoPoint
	Provider location.Provider
	Radius   *float64
	// Layers defaults to every layer.
	Layers         []Layer
	ReportCategory *entity.ReportCategory
	Species        *entity.Species
	HospitalType   *entity.HospitalType
	OpenNow        bool
	Limit          int
}

type View struct {
	Center       valueobject.GeoPoint
	CenterSource location.Source
	Attempts     int
	RadiusMeters float64
	Zoom         int
	Reports      []proximity.Match[entity.Report]
	Hospitals    []proximity.Match[entity.Hospital]
}

func (v *View) HasLayer(l Layer) bool {
	switch l {
	case LayerReports:
		return v.Reports != nil
	case LayerHospitals:
		return v.Hospitals != nil
	}
	return false
}

func (s *Service) View(ctx context.Context, input Input) (*View, error) {
	layers := input.Layers
	if len(layers) == 0 {
		layers = []Layer{LayerReports, LayerHospitals}
	}
	for _, l := range layers {
		if !l.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLayer, l)
		}
	}

	radius, err := s.radius(ctx, input)
	if err != nil {
		return nil, err
	}

	view := &View{RadiusMeters: radius}
	if input.Origin != nil {
		if !input.Origin.IsValid() {
			return nil, domain.ErrInvalidLocation
		}
		view.Center = *input.Origin
		view.CenterSource = SourceRequest
	} else {
		res := s.locator.Resolve(ctx, input.Provider)
		view.Center = res.Point
		view.CenterSource = res.Source
		view.Attempts = res.Attempts
	}

	search, err := proximity.NewSearchContext(view.Center, radius)
	if err != nil {
		return nil, err
	}
	view.Zoom = s.zoom.LevelFor(radius)

	if slices.Contains(layers, LayerReports) {
		matches, err := s.reports.Nearby(ctx, report.NearbyInput{
			Search:   search,
			Category: input.ReportCategory,
			Species:  input.Species,
			Limit:    input.Limit,
		})
		if err != nil {
			return nil, err
		}
		view.Reports = nonNil(matches)
	}

	if slices.Contains(layers, LayerHospitals) {
		matches, err := s.hospitals.Nearby(ctx, hospital.NearbyInput{
			Search: search,
			Filter: hospital.Filter{Type: input.HospitalType, OpenNow: input.OpenNow},
			Limit:  input.Limit,
		})
		if err != nil {
			return nil, err
		}
		view.Hospitals = nonNil(matches)
	}

	return view, nil
}

// radius picks the explicit radius, then the caller's saved one, then the
// default.
func (s *Service) radius(ctx context.Context, input Input) (float64, error) {
	if input.Radius != nil {
		if err := s.radii.ValidateRadius(*input.Radius); err != nil {
			return 0, err
		}
		return *input.Radius, nil
	}
	return s.radii.SearchRadius(ctx, input.UserID)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
