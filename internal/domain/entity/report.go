package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
)

const MaxPhotosPerReport = 5

type ReportCategory string

const (
	CategoryMissing ReportCategory = "missing"
	CategoryFound   ReportCategory = "found"
	CategoryRescue  ReportCategory = "rescue"
)

func (c ReportCategory) IsValid() bool {
	switch c {
	case CategoryMissing, CategoryFound, CategoryRescue:
		return true
	}
	return false
}

type ReportStatus string

const (
	StatusActive   ReportStatus = "active"
	StatusResolved ReportStatus = "resolved"
	StatusClosed   ReportStatus = "closed"
)

func (s ReportStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusResolved, StatusClosed:
		return true
	}
	return false
}

type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

func (s Species) IsValid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	}
	return false
}

// Report is a missing, found or rescued animal pinned to where it was last
// seen.
type Report struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    ReportCategory
	Status      ReportStatus
	Species     Species
	Breed       string
	Name        string
	Description string
	Location    valueobject.GeoPoint
	Address     string
	OccurredAt  time.Time
	Contact     string
	Photos      []Photo
	Views       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

type ReportDetails struct {
	Category    ReportCategory
	Species     Species
	Breed       string
	Name        string
	Description string
	Location    valueobject.GeoPoint
	Address     string
	OccurredAt  time.Time
	Contact     string
}

func NewReport(userID uuid.UUID, d ReportDetails) *Report {
	now := time.Now().UTC()
	r := &Report{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.apply(d)
	if r.OccurredAt.IsZero() {
		r.OccurredAt = now
	}
	return r
}

func (r *Report) Update(d ReportDetails) {
	r.apply(d)
	r.UpdatedAt = time.Now().UTC()
}

func (r *Report) apply(d ReportDetails) {
	r.Category = d.Category
	r.Species = d.Species
	r.Breed = d.Breed
	r.Name = d.Name
	r.Description = d.Description
	r.Location = d.Location
	r.Address = d.Address
	r.OccurredAt = d.OccurredAt
	r.Contact = d.Contact
}

func (r *Report) Details() ReportDetails {
	return ReportDetails{
		Category:    r.Category,
		Species:     r.Species,
		Breed:       r.Breed,
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Address:     r.Address,
		OccurredAt:  r.OccurredAt,
		Contact:     r.Contact,
	}
}

func (r *Report) SetStatus(s ReportStatus) {
	r.Status = s
	r.UpdatedAt = time.Now().UTC()
}

func (r *Report) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

func (r *Report) IsDeleted() bool {
	return r.DeletedAt != nil
}

func (r Report) Position() (valueobject.GeoPoint, bool) {
	return r.Location, r.Location.IsValid()
}
