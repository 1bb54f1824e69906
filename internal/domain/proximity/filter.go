package proximity

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
)

// GeoRecord is anything that may carry a position. ok is false when the
// record has no usable coordinates.
type GeoRecord interface {
	Position() (point valueobject.GeoPoint, ok bool)
}

// SearchContext is the origin and radius of a single proximity query.
type SearchContext struct {
	Origin       valueobject.GeoPoint
	RadiusMeters float64
}

// NewSearchContext rejects a non-positive or non-finite radius and an invalid origin.
func NewSearchContext(origin valueobject.GeoPoint, radiusMeters float64) (SearchContext, error) {
	sc := SearchContext{Origin: origin, RadiusMeters: radiusMeters}
	if err := sc.Validate(); err != nil {
		return SearchContext{}, err
	}
	return sc, nil
}

func (sc SearchContext) Validate() error {
	if math.IsNaN(sc.RadiusMeters) || math.IsInf(sc.RadiusMeters, 0) || sc.RadiusMeters <= 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRadius, sc.RadiusMeters)
	}
	if !sc.Origin.IsValid() {
		return fmt.Errorf("%w: origin %s", domain.ErrInvalidLocation, sc.Origin)
	}
	return nil
}

// BoundingBox returns a coarse envelope for storage prefilters, or nil if
// none can be expressed.
func (sc SearchContext) BoundingBox() *valueobject.BoundingBox {
	return valueobject.BoundingBoxAround(sc.Origin, sc.RadiusMeters)
}

// Match pairs a record with its distance from the search origin.
type Match[T any] struct {
	Record         T
	DistanceMeters float64
}

// FilterStats summarises one filter pass.
type FilterStats struct {
	Candidates  int
	Matched     int
	Unlocatable int
}

// WithinRadius keeps records whose distance to the origin is at most the
// radius, preserving input order. Unlocatable records are skipped.
func WithinRadius[T GeoRecord](records []T, sc SearchContext) ([]Match[T], FilterStats, error) {
	stats := FilterStats{Candidates: len(records)}
	if err := sc.Validate(); err != nil {
		return nil, stats, err
	}

	matches := make([]Match[T], 0, len(records))
	for _, rec := range records {
		p, ok := rec.Position()
		if !ok || !p.IsValid() {
			stats.Unlocatable++
			continue
		}
		d := Distance(sc.Origin, p)
		if d <= sc.RadiusMeters {
			matches = append(matches, Match[T]{Record: rec, DistanceMeters: d})
		}
	}
	stats.Matched = len(matches)
	return matches, stats, nil
}

// FilterWithinRadius is WithinRadius without the distance annotation.
func FilterWithinRadius[T GeoRecord](records []T, sc SearchContext) ([]T, error) {
	matches, _, err := WithinRadius(records, sc)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.Record
	}
	return out, nil
}

// SortByDistance orders matches nearest first. tiebreak may be nil; it
// decides the order of records at equal distance.
func SortByDistance[T any](matches []Match[T], tiebreak func(a, b T) int) {
	slices.SortStableFunc(matches, func(a, b Match[T]) int {
		if c := cmp.Compare(a.DistanceMeters, b.DistanceMeters); c != 0 {
			return c
		}
		if tiebreak != nil {
			return tiebreak(a.Record, b.Record)
		}
		return 0
	})
}
