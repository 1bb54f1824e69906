package hospital

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/pagination"
)

var ErrInvalidHospital = errors.New("invalid hospital")

type Config struct {
	MaxCandidates int
	ObserveFilter func(proximity.FilterStats)
	Now           func() time.Time
}

type Service struct {
	hospitalRepo repository.HospitalRepository
	cfg          Config
}

func NewService(hospitalRepo repository.HospitalRepository, cfg Config) *Service {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 500
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{hospitalRepo: hospitalRepo, cfg: cfg}
}

type Filter struct {
	Type       *entity.HospitalType
	PriceRange *entity.PriceRange
	Is24Hours  *bool
	// OpenNow keeps only places open at the time of the call.
	OpenNow bool
}

func (f Filter) repoFilter() (repository.HospitalFilter, error) {
	if f.Type != nil && !f.Type.IsValid() {
		return repository.HospitalFilter{}, fmt.Errorf("%w: type %q", ErrInvalidHospital, *f.Type)
	}
	if f.PriceRange != nil && !f.PriceRange.IsValid() {
		return repository.HospitalFilter{}, fmt.Errorf("%w: price range %q", ErrInvalidHospital, *f.PriceRange)
	}
	return repository.HospitalFilter{Type: f.Type, PriceRange: f.PriceRange, Is24Hours: f.Is24Hours}, nil
}

type ListInput struct {
	Page    int
	PerPage int
	Filter  Filter
}

// List pages through hospitals by rating. With OpenNow the page is filtered
// after loading, so it may hold fewer than PerPage entries.
func (s *Service) List(ctx context.Context, input ListInput) ([]entity.Hospital, *pagination.Info, error) {
	filter, err := input.Filter.repoFilter()
	if err != nil {
		return nil, nil, err
	}

	hospitals, pageInfo, err := s.hospitalRepo.List(ctx, repository.HospitalListParams{
		Pagination: pagination.NewParams(input.Page, input.PerPage),
		Filter:     filter,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listing hospitals: %w", err)
	}

	if input.Filter.OpenNow {
		hospitals = s.openNow(hospitals)
	}
	return hospitals, pageInfo, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*entity.Hospital, error) {
	return s.hospitalRepo.GetByID(ctx, id)
}

func (s *Service) IsOpenNow(h *entity.Hospital) bool {
	return h.IsOpenAt(s.cfg.Now())
}

type NearbyInput struct {
	Search proximity.SearchContext
	Filter Filter
	Limit  int
}

// Nearby returns hospitals within the search radius ordered by distance,
// then by rating.
func (s *Service) Nearby(ctx context.Context, input NearbyInput) ([]proximity.Match[entity.Hospital], error) {
	if err := input.Search.Validate(); err != nil {
		return nil, err
	}
	filter, err := input.Filter.repoFilter()
	if err != nil {
		return nil, err
	}

	candidates, err := s.candidates(ctx, input, filter)
	if err != nil {
		return nil, fmt.Errorf("loading nearby hospitals: %w", err)
	}

	matches, stats, err := proximity.WithinRadius(candidates, input.Search)
	if err != nil {
		return nil, err
	}
	if s.cfg.ObserveFilter != nil {
		s.cfg.ObserveFilter(stats)
	}

	proximity.SortByDistance(matches, func(a, b entity.Hospital) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	if input.Limit > 0 && len(matches) > input.Limit {
		matches = matches[:input.Limit]
	}
	return matches, nil
}

// maxOpenNowPages bounds how far an open-now search pages past closed
// places.
const maxOpenNowPages = 8

// candidates loads hospitals nearest first. Without OpenNow one page of
// MaxCandidates is enough. With it, closed places are dropped page by page
// and paging stops once a short page or one ending outside the radius
// comes back.
func (s *Service) candidates(ctx context.Context, input NearbyInput, filter repository.HospitalFilter) ([]entity.Hospital, error) {
	q := repository.CandidateQuery{
		Origin: input.Search.Origin,
		Box:    input.Search.BoundingBox(),
		Limit:  s.cfg.MaxCandidates,
	}
	if !input.Filter.OpenNow {
		return s.hospitalRepo.ListCandidates(ctx, q, filter)
	}

	var kept []entity.Hospital
	for range maxOpenNowPages {
		page, err := s.hospitalRepo.ListCandidates(ctx, q, filter)
		if err != nil {
			return nil, err
		}
		more := len(page) == q.Limit && reachesRadius(page, input.Search)
		kept = append(kept, s.openNow(page)...)
		if !more || len(kept) >= s.cfg.MaxCandidates {
			break
		}
		q.Offset += q.Limit
	}
	return kept, nil
}

// reachesRadius reports whether the farthest row of a distance-ordered page
// still lies inside the search radius.
func reachesRadius(page []entity.Hospital, search proximity.SearchContext) bool {
	last, ok := page[len(page)-1].Position()
	if !ok {
		return false
	}
	return proximity.Distance(search.Origin, last) <= search.RadiusMeters
}

// PlaceInput is a place record from an external directory. Coordinates
// arrive loosely typed and may be missing.
type PlaceInput struct {
	PlaceID      string
	Type         entity.HospitalType
	Name         string
	Latitude     valueobject.Coordinate
	Longitude    valueobject.Coordinate
	Address      string
	Phone        string
	Is24Hours    bool
	OpeningHours valueobject.OpeningHours
	Services     []string
	PriceRange   entity.PriceRange
	Description  string
	Website      string
}

// ImportPlace stores a place once per PlaceID. created is false when the
// place already existed and was returned unchanged.
func (s *Service) ImportPlace(ctx context.Context, input PlaceInput) (h *entity.Hospital, created bool, err error) {
	input.PlaceID = strings.TrimSpace(input.PlaceID)
	input.Name = strings.TrimSpace(input.Name)
	if input.PlaceID == "" || input.Name == "" {
		return nil, false, fmt.Errorf("%w: place id and name are required", ErrInvalidHospital)
	}
	if input.Type == "" {
		input.Type = entity.HospitalTypeHospital
	}
	if !input.Type.IsValid() {
		return nil, false, fmt.Errorf("%w: type %q", ErrInvalidHospital, input.Type)
	}
	if input.PriceRange != "" && !input.PriceRange.IsValid() {
		return nil, false, fmt.Errorf("%w: price range %q", ErrInvalidHospital, input.PriceRange)
	}
	if err := input.OpeningHours.Validate(); err != nil {
		return nil, false, fmt.Errorf("%w: opening hours: %v", ErrInvalidHospital, err)
	}

	existing, err := s.hospitalRepo.GetByPlaceID(ctx, input.PlaceID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrHospitalNotFound) {
		return nil, false, fmt.Errorf("looking up place: %w", err)
	}

	var loc *valueobject.GeoPoint
	if p, ok := valueobject.PointFromCoordinates(input.Latitude, input.Longitude); ok {
		loc = &p
	}

	h = entity.NewHospital(input.Type, input.Name, loc)
	h.PlaceID = input.PlaceID
	h.Address = input.Address
	h.Phone = input.Phone
	h.Is24Hours = input.Is24Hours
	h.OpeningHours = input.OpeningHours
	h.Services = input.Services
	h.PriceRange = input.PriceRange
	h.Description = input.Description
	h.Website = input.Website

	if err := s.hospitalRepo.Create(ctx, h); err != nil {
		return nil, false, fmt.Errorf("creating hospital: %w", err)
	}
	return h, true, nil
}

func (s *Service) openNow(hospitals []entity.Hospital) []entity.Hospital {
	now := s.cfg.Now()
	open := hospitals[:0]
	for _, h := range hospitals {
		if h.IsOpenAt(now) {
			open = append(open, h)
		}
	}
	return open
}
