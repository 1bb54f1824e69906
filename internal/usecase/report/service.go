package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/messaging"
	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/pagination"
)

const defaultMaxCandidates = 500

type Config struct {
	// MaxCandidates caps how many rows a nearby query pulls from storage
	// before exact distance filtering.
	MaxCandidates int
	ObserveFilter func(proximity.FilterStats)
}

type Service struct {
	reportRepo repository.ReportRepository
	photoRepo  repository.PhotoRepository
	events     messaging.EventPublisher
	cfg        Config
}

func NewService(reportRepo repository.ReportRepository, photoRepo repository.PhotoRepository, events messaging.EventPublisher, cfg Config) *Service {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = defaultMaxCandidates
	}
	return &Service{
		reportRepo: reportRepo,
		photoRepo:  photoRepo,
		events:     events,
		cfg:        cfg,
	}
}

type CreateInput struct {
	UserID  uuid.UUID
	Details entity.ReportDetails
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.Report, error) {
	if err := validateDetails(input.Details); err != nil {
		return nil, err
	}

	report := entity.NewReport(input.UserID, input.Details)

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	// delivery is best-effort; the publisher logs failures
	_ = s.events.PublishReportCreated(ctx, report)

	return report, nil
}

// GetByID returns a live report and counts the view.
func (s *Service) GetByID(ctx context.Context, reportID uuid.UUID) (*entity.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.IsDeleted() {
		return nil, domain.ErrReportNotFound
	}

	if err := s.reportRepo.IncrementViews(ctx, reportID); err != nil {
		return nil, fmt.Errorf("counting view: %w", err)
	}
	report.Views++

	if err := s.loadPhotos(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

type ListInput struct {
	Page     int
	PerPage  int
	Category *entity.ReportCategory
	Status   *entity.ReportStatus
	Species  *entity.Species
	Search   string
}

func (s *Service) List(ctx context.Context, input ListInput) ([]entity.Report, *pagination.Info, error) {
	filter, err := buildFilter(input.Category, input.Status, input.Species)
	if err != nil {
		return nil, nil, err
	}
	filter.Search = strings.TrimSpace(input.Search)

	return s.list(ctx, input.Page, input.PerPage, filter)
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, page, perPage int) ([]entity.Report, *pagination.Info, error) {
	return s.list(ctx, page, perPage, repository.ReportFilter{UserID: &userID})
}

func (s *Service) list(ctx context.Context, page, perPage int, filter repository.ReportFilter) ([]entity.Report, *pagination.Info, error) {
	params := repository.ReportListParams{
		Pagination: pagination.NewParams(page, perPage),
		Filter:     filter,
	}

	reports, pageInfo, err := s.reportRepo.List(ctx, params)
	if err != nil {
		return nil, nil, fmt.Errorf("listing reports: %w", err)
	}

	for i := range reports {
		if err := s.loadPhotos(ctx, &reports[i]); err != nil {
			return nil, nil, err
		}
	}

	return reports, pageInfo, nil
}

type UpdateInput struct {
	Category    *entity.ReportCategory
	Species     *entity.Species
	Breed       *string
	Name        *string
	Description *string
	Location    *valueobject.GeoPoint
	Address     *string
	OccurredAt  *time.Time
	Contact     *string
}

func (s *Service) Update(ctx context.Context, userID, reportID uuid.UUID, input UpdateInput) (*entity.Report, error) {
	report, err := s.ownedReport(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	d := report.Details()
	if input.Category != nil {
		d.Category = *input.Category
	}
	if input.Species != nil {
		d.Species = *input.Species
	}
	if input.Breed != nil {
		d.Breed = *input.Breed
	}
	if input.Name != nil {
		d.Name = *input.Name
	}
	if input.Description != nil {
		d.Description = *input.Description
	}
	if input.Location != nil {
		d.Location = *input.Location
	}
	if input.Address != nil {
		d.Address = *input.Address
	}
	if input.OccurredAt != nil {
		d.OccurredAt = *input.OccurredAt
	}
	if input.Contact != nil {
		d.Contact = *input.Contact
	}

	if err := validateDetails(d); err != nil {
		return nil, err
	}
	report.Update(d)

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("updating report: %w", err)
	}

	if err := s.loadPhotos(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) UpdateStatus(ctx context.Context, userID, reportID uuid.UUID, status entity.ReportStatus) (*entity.Report, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	report, err := s.ownedReport(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status == status {
		return report, nil
	}

	report.SetStatus(status)
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("updating report status: %w", err)
	}

	_ = s.events.PublishReportStatusChanged(ctx, report)

	return report, nil
}

func (s *Service) Delete(ctx context.Context, userID, reportID uuid.UUID) error {
	if _, err := s.ownedReport(ctx, userID, reportID); err != nil {
		return err
	}

	if err := s.reportRepo.SoftDelete(ctx, reportID); err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	return nil
}

type NearbyInput struct {
	Search   proximity.SearchContext
	Category *entity.ReportCategory
	Species  *entity.Species
	// Status defaults to active.
	Status *entity.ReportStatus
	Limit  int
}

// Nearby returns reports within the search radius, nearest first and
// newest first among equals.
func (s *Service) Nearby(ctx context.Context, input NearbyInput) ([]proximity.Match[entity.Report], error) {
	if err := input.Search.Validate(); err != nil {
		return nil, err
	}

	status := input.Status
	if status == nil {
		active := entity.StatusActive
		status = &active
	}
	filter, err := buildFilter(input.Category, status, input.Species)
	if err != nil {
		return nil, err
	}

	candidates, err := s.reportRepo.ListCandidates(ctx, repository.CandidateQuery{
		Origin: input.Search.Origin,
		Box:    input.Search.BoundingBox(),
		Limit:  s.cfg.MaxCandidates,
	}, filter)
	if err != nil {
		return nil, fmt.Errorf("loading nearby reports: %w", err)
	}

	matches, stats, err := proximity.WithinRadius(candidates, input.Search)
	if err != nil {
		return nil, err
	}
	if s.cfg.ObserveFilter != nil {
		s.cfg.ObserveFilter(stats)
	}

	proximity.SortByDistance(matches, func(a, b entity.Report) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if input.Limit > 0 && len(matches) > input.Limit {
		matches = matches[:input.Limit]
	}

	for i := range matches {
		if err := s.loadPhotos(ctx, &matches[i].Record); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (s *Service) ownedReport(ctx context.Context, userID, reportID uuid.UUID) (*entity.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.IsDeleted() {
		return nil, domain.ErrReportNotFound
	}
	if !report.IsOwnedBy(userID) {
		return nil, domain.ErrForbidden
	}
	return report, nil
}

func (s *Service) loadPhotos(ctx context.Context, report *entity.Report) error {
	photos, err := s.photoRepo.GetByReportID(ctx, report.ID)
	if err != nil {
		return fmt.Errorf("loading photos: %w", err)
	}
	report.Photos = photos
	return nil
}

func validateDetails(d entity.ReportDetails) error {
	if !d.Category.IsValid() {
		return domain.ErrInvalidCategory
	}
	if !d.Species.IsValid() {
		return domain.ErrInvalidSpecies
	}
	if !d.Location.IsValid() {
		return domain.ErrInvalidLocation
	}
	return nil
}

func buildFilter(category *entity.ReportCategory, status *entity.ReportStatus, species *entity.Species) (repository.ReportFilter, error) {
	if category != nil && !category.IsValid() {
		return repository.ReportFilter{}, domain.ErrInvalidCategory
	}
	if status != nil && !status.IsValid() {
		return repository.ReportFilter{}, domain.ErrInvalidStatus
	}
	if species != nil && !species.IsValid() {
		return repository.ReportFilter{}, domain.ErrInvalidSpecies
	}
	return repository.ReportFilter{Category: category, Status: status, Species: species}, nil
}
