// Package geolocation provides server-side position sources for the
// location resolver: client-reported device fixes and IP lookups.
package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/cache"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/location"
)

// coarseAccuracyMeters is the worst device accuracy accepted for a
// high-accuracy request.
const coarseAccuracyMeters = 1000

// DeviceProvider serves a single client-reported fix.
type DeviceProvider struct {
	fix *location.Fix
	now func() time.Time
}

func NewDeviceProvider(fix *location.Fix) *DeviceProvider {
	return &DeviceProvider{fix: fix, now: time.Now}
}

func (p *DeviceProvider) CurrentPosition(_ context.Context, opts location.PositionOptions) (valueobject.GeoPoint, error) {
	if p.fix == nil {
		return valueobject.GeoPoint{}, fmt.Errorf("%w: no device fix", location.ErrPositionUnavailable)
	}
	if !p.fix.Point.IsValid() {
		return valueobject.GeoPoint{}, location.ErrInvalidPosition
	}
	if opts.HighAccuracy && p.fix.Accuracy != nil && *p.fix.Accuracy > coarseAccuracyMeters {
		return valueobject.GeoPoint{}, fmt.Errorf("%w: device fix accuracy %.0fm", location.ErrPositionUnavailable, *p.fix.Accuracy)
	}
	if !p.fix.CapturedAt.IsZero() && opts.MaximumAge > 0 && p.now().Sub(p.fix.CapturedAt) > opts.MaximumAge {
		return valueobject.GeoPoint{}, fmt.Errorf("%w: device fix is stale", location.ErrPositionUnavailable)
	}
	return p.fix.Point, nil
}

type cachedPosition struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	FixedAt   time.Time `json:"fixed_at"`
}

// IPProvider places the client by its IP address. It never satisfies a
// high-accuracy request and reuses cached lookups younger than MaximumAge.
type IPProvider struct {
	locator *IPLocator
	store   cache.Store
	ttl     time.Duration
	ip      string
	logger  *zap.Logger
	now     func() time.Time
}

func (p *IPProvider) CurrentPosition(ctx context.Context, opts location.PositionOptions) (valueobject.GeoPoint, error) {
	if opts.HighAccuracy {
		return valueobject.GeoPoint{}, fmt.Errorf("%w: ip lookup is city level", location.ErrPositionUnavailable)
	}

	key := "geoip:" + p.ip
	if point, ok := p.fromCache(ctx, key, opts.MaximumAge); ok {
		return point, nil
	}

	point, err := p.locator.Locate(ctx, p.ip)
	if err != nil {
		return valueobject.GeoPoint{}, err
	}

	if p.store != nil && p.ttl >= time.Second {
		data, _ := json.Marshal(cachedPosition{Latitude: point.Latitude, Longitude: point.Longitude, FixedAt: p.now().UTC()})
		if err := p.store.Set(ctx, key, data, p.ttl); err != nil {
			p.logger.Warn("caching ip position", zap.Error(err))
		}
	}
	return point, nil
}

func (p *IPProvider) fromCache(ctx context.Context, key string, maxAge time.Duration) (valueobject.GeoPoint, bool) {
	if p.store == nil || maxAge <= 0 {
		return valueobject.GeoPoint{}, false
	}

	data, err := p.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			p.logger.Warn("reading cached ip position", zap.Error(err))
		}
		return valueobject.GeoPoint{}, false
	}

	var cached cachedPosition
	if err := json.Unmarshal(data, &cached); err != nil {
		return valueobject.GeoPoint{}, false
	}
	if p.now().Sub(cached.FixedAt) > maxAge {
		return valueobject.GeoPoint{}, false
	}

	point := valueobject.NewGeoPoint(cached.Latitude, cached.Longitude)
	return point, point.IsValid()
}

// Chain asks each provider in turn and returns the first position.
type Chain []location.Provider

func (c Chain) CurrentPosition(ctx context.Context, opts location.PositionOptions) (valueobject.GeoPoint, error) {
	var errs []error
	for _, p := range c {
		point, err := p.CurrentPosition(ctx, opts)
		if err == nil {
			return point, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return valueobject.GeoPoint{}, location.ErrPositionUnavailable
	}
	return valueobject.GeoPoint{}, errors.Join(errs...)
}

// Factory builds the per-request provider chain.
type Factory struct {
	locator *IPLocator
	store   cache.Store
	ttl     time.Duration
	logger  *zap.Logger
}

func NewFactory(locator *IPLocator, store cache.Store, ttl time.Duration, logger *zap.Logger) *Factory {
	return &Factory{locator: locator, store: store, ttl: ttl, logger: logger}
}

// ForClient prefers the device fix and falls back to the client IP.
func (f *Factory) ForClient(device *location.Fix, clientIP string) location.Provider {
	chain := Chain{NewDeviceProvider(device)}
	if f.locator != nil && clientIP != "" {
		chain = append(chain, &IPProvider{
			locator: f.locator,
			store:   f.store,
			ttl:     f.ttl,
			ip:      clientIP,
			logger:  f.logger,
			now:     time.Now,
		})
	}
	return chain
}
