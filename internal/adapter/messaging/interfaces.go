package messaging

//go:generate mockgen -source=interfaces.go -destination=../../mocks/messaging_mocks.go -package=mocks

import (
	"context"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
)

type EventPublisher interface {
	PublishReportCreated(ctx context.Context, report *entity.Report) error
	PublishReportStatusChanged(ctx context.Context, report *entity.Report) error
}
