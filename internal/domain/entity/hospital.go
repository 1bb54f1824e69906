package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
)

type HospitalType string

const (
	HospitalTypeHospital HospitalType = "hospital"
	HospitalTypeGrooming HospitalType = "grooming"
)

func (t HospitalType) IsValid() bool {
	return t == HospitalTypeHospital || t == HospitalTypeGrooming
}

type PriceRange string

const (
	PriceFree   PriceRange = "free"
	PriceLow    PriceRange = "low"
	PriceMedium PriceRange = "medium"
	PriceHigh   PriceRange = "high"
)

func (p PriceRange) IsValid() bool {
	switch p {
	case PriceFree, PriceLow, PriceMedium, PriceHigh:
		return true
	}
	return false
}

// Hospital is a veterinary clinic or groomer. Location is nil when the
// imported place carried no usable coordinates.
type Hospital struct {
	ID           uuid.UUID
	Type         HospitalType
	Name         string
	Location     *valueobject.GeoPoint
	Address      string
	Phone        string
	PlaceID      string
	Is24Hours    bool
	OpeningHours valueobject.OpeningHours
	Services     []string
	PriceRange   PriceRange
	Rating       float64
	ReviewCount  int
	Description  string
	Website      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewHospital(t HospitalType, name string, loc *valueobject.GeoPoint) *Hospital {
	now := time.Now().UTC()
	return &Hospital{
		ID:        uuid.New(),
		Type:      t,
		Name:      name,
		Location:  loc,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (h *Hospital) IsOpenAt(t time.Time) bool {
	if h.Is24Hours {
		return true
	}
	return h.OpeningHours.IsOpenAt(t)
}

func (h Hospital) Position() (valueobject.GeoPoint, bool) {
	if h.Location == nil {
		return valueobject.GeoPoint{}, false
	}
	return *h.Location, h.Location.IsValid()
}
