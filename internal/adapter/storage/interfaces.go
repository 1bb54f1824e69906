package storage

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -destination=../../mocks/storage_mocks.go -package=mocks github.com/marcos-nsantos/petfinder-backend/internal/adapter/storage ImageStorage,ImageProcessor

type ImageStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error
	GetURL(key string) string
	GetSignedURL(key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// ImageProcessor downsizes an image and reports its final size and
// dimensions. Undecodable input passes through with zero dimensions.
type ImageProcessor interface {
	Process(reader io.Reader, contentType string) (io.Reader, int64, int, int, error)
}
