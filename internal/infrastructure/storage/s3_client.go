package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/config"
)

// Photo keys are never reused, so clients may cache objects forever.
const photoCacheControl = "public, max-age=31536000, immutable"

// S3Storage keeps report photos in one bucket on AWS or an S3-compatible
// server such as MinIO.
type S3Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	baseURL   *url.URL
}

func NewS3Storage(cfg config.S3Config) (*S3Storage, error) {
	base := fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.Bucket)
	if cfg.PublicURL != "" {
		base = cfg.PublicURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing photo base url: %w", err)
	}

	client := s3.New(s3.Options{
		Region:           cfg.Region,
		RetryMaxAttempts: 3,
		Credentials:      credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}, func(o *s3.Options) {
		if cfg.Endpoint == "" {
			return
		}
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		baseURL:   baseURL,
	}, nil
}

// Ping checks that the bucket exists and the credentials reach it.
func (s *S3Storage) Ping(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *S3Storage) Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) error {
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String(photoCacheControl),
	}); err != nil {
		return fmt.Errorf("putting photo %s: %w", key, err)
	}
	return nil
}

// GetURL is the public, unsigned address of key.
func (s *S3Storage) GetURL(key string) string {
	return s.baseURL.JoinPath(key).String()
}

func (s *S3Storage) GetSignedURL(key string, expiry time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(context.Background(),
		&s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)},
		s3.WithPresignExpires(expiry),
	)
	if err != nil {
		return "", fmt.Errorf("presigning photo %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("deleting photo %s: %w", key, err)
	}
	return nil
}
