package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/hospital"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/location"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/mapview"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/profile"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/report"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/upload"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type ReportService interface {
	Create(ctx context.Context, input report.CreateInput) (*entity.Report, error)
	GetByID(ctx context.Context, reportID uuid.UUID) (*entity.Report, error)
	List(ctx context.Context, input report.ListInput) ([]entity.Report, *pagination.Info, error)
	ListMine(ctx context.Context, userID uuid.UUID, page, perPage int) ([]entity.Report, *pagination.Info, error)
	Update(ctx context.Context, userID, reportID uuid.UUID, input report.UpdateInput) (*entity.Report, error)
	UpdateStatus(ctx context.Context, userID, reportID uuid.UUID, status entity.ReportStatus) (*entity.Report, error)
	Delete(ctx context.Context, userID, reportID uuid.UUID) error
}

type HospitalService interface {
	List(ctx context.Context, input hospital.ListInput) ([]entity.Hospital, *pagination.Info, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Hospital, error)
	ImportPlace(ctx context.Context, input hospital.PlaceInput) (*entity.Hospital, bool, error)
	IsOpenNow(h *entity.Hospital) bool
}

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, input profile.UpdateSettingsInput) (*entity.User, error)
}

type UploadService interface {
	Upload(ctx context.Context, input upload.UploadInput) (*upload.UploadResult, error)
	Delete(ctx context.Context, userID, photoID uuid.UUID) error
}

type MapService interface {
	Locate(ctx context.Context, p location.Provider) location.Resolution
	View(ctx context.Context, input mapview.Input) (*mapview.View, error)
	ZoomLevel(radius float64) (int, error)
}

// ProviderFactory builds the position source for one request.
type ProviderFactory interface {
	ForClient(device *location.Fix, clientIP string) location.Provider
}
