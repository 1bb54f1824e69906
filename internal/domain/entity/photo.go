package entity

import (
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID        uuid.UUID
	ReportID  uuid.UUID
	URL       string
	Key       string
	MimeType  string
	Size      int64
	Width     int
	Height    int
	CreatedAt time.Time
}

func NewPhoto(reportID uuid.UUID, url, key, mimeType string, size int64, width, height int) *Photo {
	return &Photo{
		ID:        uuid.New(),
		ReportID:  reportID,
		URL:       url,
		Key:       key,
		MimeType:  mimeType,
		Size:      size,
		Width:     width,
		Height:    height,
		CreatedAt: time.Now().UTC(),
	}
}
