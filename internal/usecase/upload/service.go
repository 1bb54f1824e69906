package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/storage"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
)

const DefaultSignedURLExpiry = 24 * time.Hour

type Service struct {
	photoRepo       repository.PhotoRepository
	reportRepo      repository.ReportRepository
	storage         storage.ImageStorage
	imageProcessor  storage.ImageProcessor
	signedURLExpiry time.Duration
}

func NewService(
	photoRepo repository.PhotoRepository,
	reportRepo repository.ReportRepository,
	imageStorage storage.ImageStorage,
	imageProcessor storage.ImageProcessor,
	signedURLExpiry time.Duration,
) *Service {
	if signedURLExpiry <= 0 {
		signedURLExpiry = DefaultSignedURLExpiry
	}
	return &Service{
		photoRepo:       photoRepo,
		reportRepo:      reportRepo,
		storage:         imageStorage,
		imageProcessor:  imageProcessor,
		signedURLExpiry: signedURLExpiry,
	}
}

type UploadInput struct {
	UserID      uuid.UUID
	ReportID    uuid.UUID
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type UploadResult struct {
	Photo     *entity.Photo
	URL       string
	SignedURL string
}

func (s *Service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if _, err := s.ownedReport(ctx, input.UserID, input.ReportID); err != nil {
		return nil, err
	}

	count, err := s.photoRepo.CountByReportID(ctx, input.ReportID)
	if err != nil {
		return nil, fmt.Errorf("counting photos: %w", err)
	}
	if count >= entity.MaxPhotosPerReport {
		return nil, domain.ErrPhotoLimitReached
	}

	processedReader, finalSize, width, height, err := s.imageProcessor.Process(input.File, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("processing image: %w", err)
	}

	ext := strings.ToLower(path.Ext(input.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("reports/%s/%s%s", input.ReportID, uuid.New().String(), ext)

	if err := s.storage.Upload(ctx, key, processedReader, input.ContentType, finalSize); err != nil {
		return nil, fmt.Errorf("uploading to storage: %w", err)
	}

	url := s.storage.GetURL(key)
	signedURL, _ := s.storage.GetSignedURL(key, s.signedURLExpiry)

	photo := entity.NewPhoto(input.ReportID, url, key, input.ContentType, finalSize, width, height)

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		_ = s.storage.Delete(ctx, key)
		return nil, fmt.Errorf("creating photo record: %w", err)
	}

	return &UploadResult{
		Photo:     photo,
		URL:       url,
		SignedURL: signedURL,
	}, nil
}

func (s *Service) Delete(ctx context.Context, userID, photoID uuid.UUID) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}

	if _, err := s.ownedReport(ctx, userID, photo.ReportID); err != nil {
		return err
	}

	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		return fmt.Errorf("deleting photo record: %w", err)
	}

	if err := s.storage.Delete(ctx, photo.Key); err != nil {
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return nil
}

func (s *Service) ownedReport(ctx context.Context, userID, reportID uuid.UUID) (*entity.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if report.IsDeleted() {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}
