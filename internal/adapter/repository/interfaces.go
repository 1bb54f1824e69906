package repository

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/pagination"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	List(ctx context.Context, params ReportListParams) ([]entity.Report, *pagination.Info, error)
	// ListCandidates returns reports inside q.Box, nearest to q.Origin
	// first. Exact distance filtering is the caller's job.
	ListCandidates(ctx context.Context, q CandidateQuery, filter ReportFilter) ([]entity.Report, error)
	Update(ctx context.Context, report *entity.Report) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// CandidateQuery selects rows for a radius search. Rows are ordered by
// distance from Origin, so a Limit cut drops the farthest ones. A nil Box
// scans the whole table.
type CandidateQuery struct {
	Origin valueobject.GeoPoint
	Box    *valueobject.BoundingBox
	Limit  int
	Offset int
}

type ReportFilter struct {
	UserID   *uuid.UUID
	Category *entity.ReportCategory
	Status   *entity.ReportStatus
	Species  *entity.Species
	Search   string
}

type ReportListParams struct {
	Pagination pagination.Params
	Filter     ReportFilter
}

type HospitalRepository interface {
	Create(ctx context.Context, hospital *entity.Hospital) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Hospital, error)
	GetByPlaceID(ctx context.Context, placeID string) (*entity.Hospital, error)
	List(ctx context.Context, params HospitalListParams) ([]entity.Hospital, *pagination.Info, error)
	// ListCandidates is ListCandidates for hospitals. Unmapped hospitals
	// come last and only when q.Box is nil.
	ListCandidates(ctx context.Context, q CandidateQuery, filter HospitalFilter) ([]entity.Hospital, error)
}

type HospitalFilter struct {
	Type       *entity.HospitalType
	PriceRange *entity.PriceRange
	Is24Hours  *bool
}

type HospitalListParams struct {
	Pagination pagination.Params
	Filter     HospitalFilter
}

type PhotoRepository interface {
	Create(ctx context.Context, photo *entity.Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Photo, error)
	GetByReportID(ctx context.Context, reportID uuid.UUID) ([]entity.Photo, error)
	CountByReportID(ctx context.Context, reportID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
