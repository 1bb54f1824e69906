// Package location determines where the caller is, degrading from a
// precise fix to a relaxed one to a fixed fallback coordinate.
package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
)

var (
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("position request timed out")
	ErrInvalidPosition     = errors.New("provider returned an invalid position")
)

// PositionOptions mirror what a device geolocation API accepts.
// MaximumAge bounds how old a cached fix may be.
type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

//go:generate mockgen -source=resolver.go -destination=../../mocks/location_mocks.go -package=mocks

// Provider is a source of the caller's current position.
type Provider interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (valueobject.GeoPoint, error)
}

// Fix is a position reported by the client device. Accuracy is in meters.
type Fix struct {
	Point      valueobject.GeoPoint
	Accuracy   *float64
	CapturedAt time.Time
}

type ProviderFunc func(ctx context.Context, opts PositionOptions) (valueobject.GeoPoint, error)

func (f ProviderFunc) CurrentPosition(ctx context.Context, opts PositionOptions) (valueobject.GeoPoint, error) {
	return f(ctx, opts)
}

type Source string

const (
	SourcePrimary  Source = "primary"
	SourceRetry    Source = "retry"
	SourceFallback Source = "fallback"
)

// Resolution is where the caller was placed and which tier produced it.
type Resolution struct {
	Point    valueobject.GeoPoint
	Source   Source
	Attempts int
}

type Config struct {
	Primary  PositionOptions
	Retry    PositionOptions
	Fallback valueobject.GeoPoint
}

func DefaultConfig() Config {
	return Config{
		Primary: PositionOptions{
			HighAccuracy: true,
			Timeout:      30 * time.Second,
			MaximumAge:   5 * time.Minute,
		},
		Retry: PositionOptions{
			HighAccuracy: false,
			Timeout:      15 * time.Second,
			MaximumAge:   10 * time.Minute,
		},
		Fallback: valueobject.NewGeoPoint(36.3504, 127.3845),
	}
}

type Option func(*Resolver)

// WithObserver registers a callback invoked once per Resolve.
func WithObserver(fn func(Resolution)) Option {
	return func(r *Resolver) {
		r.observe = fn
	}
}

type Resolver struct {
	cfg     Config
	logger  *zap.Logger
	observe func(Resolution)
}

func NewResolver(cfg Config, logger *zap.Logger, opts ...Option) *Resolver {
	r := &Resolver{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve always yields a point. The primary and retry attempts run one
// after the other, each bounded by its own timeout.
func (r *Resolver) Resolve(ctx context.Context, p Provider) Resolution {
	res := r.resolve(ctx, p)
	if r.observe != nil {
		r.observe(res)
	}
	return res
}

func (r *Resolver) resolve(ctx context.Context, p Provider) Resolution {
	if p == nil {
		return Resolution{Point: r.cfg.Fallback, Source: SourceFallback}
	}

	point, err := r.attempt(ctx, p, r.cfg.Primary)
	if err == nil {
		return Resolution{Point: point, Source: SourcePrimary, Attempts: 1}
	}
	r.logger.Debug("primary position attempt failed", zap.Error(err))

	point, err = r.attempt(ctx, p, r.cfg.Retry)
	if err == nil {
		return Resolution{Point: point, Source: SourceRetry, Attempts: 2}
	}
	r.logger.Info("position unavailable, using fallback",
		zap.Error(err),
		zap.Stringer("fallback", r.cfg.Fallback),
	)

	return Resolution{Point: r.cfg.Fallback, Source: SourceFallback, Attempts: 2}
}

type attemptResult struct {
	point valueobject.GeoPoint
	err   error
}

// attempt enforces the timeout even when the provider ignores ctx; a late
// answer lands in the buffered channel and is dropped.
func (r *Resolver) attempt(ctx context.Context, p Provider, opts PositionOptions) (valueobject.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return valueobject.GeoPoint{}, err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	done := make(chan attemptResult, 1)
	go func() {
		point, err := p.CurrentPosition(attemptCtx, opts)
		done <- attemptResult{point: point, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return valueobject.GeoPoint{}, res.err
		}
		if !res.point.IsValid() {
			return valueobject.GeoPoint{}, fmt.Errorf("%w: %s", ErrInvalidPosition, res.point)
		}
		return res.point, nil
	case <-attemptCtx.Done():
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return valueobject.GeoPoint{}, fmt.Errorf("%w after %s", ErrTimeout, opts.Timeout)
		}
		return valueobject.GeoPoint{}, attemptCtx.Err()
	}
}
