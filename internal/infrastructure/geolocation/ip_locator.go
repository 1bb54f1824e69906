package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/location"
)

const (
	defaultLookupURL  = "https://ipapi.co/%s/json/"
	defaultTimeout    = 5 * time.Second
	defaultMaxRetries = 1
	defaultRetryDelay = 200 * time.Millisecond
)

// Error is a failed lookup. Retriable marks transient upstream failures.
type Error struct {
	StatusCode int
	Retriable  bool
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ip lookup failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("ip lookup failed: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func isRetriableStatusCode(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusRequestTimeout ||
		statusCode >= 500
}

type lookupResponse struct {
	Latitude  valueobject.Coordinate `json:"latitude"`
	Longitude valueobject.Coordinate `json:"longitude"`
	City      string                 `json:"city"`
	Country   string                 `json:"country_name"`
	Error     bool                   `json:"error"`
	Reason    string                 `json:"reason"`
}

// IPLocator resolves a public IP address to an approximate city-level
// position through an HTTP lookup service.
type IPLocator struct {
	httpClient *http.Client
	urlFormat  string
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

type IPLocatorOption func(*IPLocator)

// WithURL sets the lookup URL; %s is replaced by the IP address.
func WithURL(format string) IPLocatorOption {
	return func(l *IPLocator) {
		l.urlFormat = format
	}
}

func WithTimeout(timeout time.Duration) IPLocatorOption {
	return func(l *IPLocator) {
		l.httpClient.Timeout = timeout
	}
}

func WithMaxRetries(n int) IPLocatorOption {
	return func(l *IPLocator) {
		l.maxRetries = n
	}
}

func WithRetryDelay(d time.Duration) IPLocatorOption {
	return func(l *IPLocator) {
		l.retryDelay = d
	}
}

func WithHTTPClient(c *http.Client) IPLocatorOption {
	return func(l *IPLocator) {
		l.httpClient = c
	}
}

func NewIPLocator(logger *zap.Logger, opts ...IPLocatorOption) *IPLocator {
	l := &IPLocator{
		httpClient: &http.Client{Timeout: defaultTimeout},
		urlFormat:  defaultLookupURL,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate looks up ip. Private, loopback and malformed addresses fail with
// location.ErrPositionUnavailable without a network call.
func (l *IPLocator) Locate(ctx context.Context, ip string) (valueobject.GeoPoint, error) {
	addr := net.ParseIP(strings.TrimSpace(ip))
	if addr == nil || addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() {
		return valueobject.GeoPoint{}, fmt.Errorf("%w: no public address", location.ErrPositionUnavailable)
	}

	var lastErr error
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		if attempt > 0 {
			delay := l.retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return valueobject.GeoPoint{}, ctx.Err()
			}
		}

		point, err := l.lookup(ctx, addr.String())
		if err == nil {
			return point, nil
		}
		lastErr = err

		var lookupErr *Error
		if errors.As(err, &lookupErr) && !lookupErr.Retriable {
			break
		}
		if ctx.Err() != nil {
			return valueobject.GeoPoint{}, ctx.Err()
		}
		l.logger.Debug("ip lookup attempt failed", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	return valueobject.GeoPoint{}, lastErr
}

func (l *IPLocator) lookup(ctx context.Context, ip string) (valueobject.GeoPoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(l.urlFormat, ip), nil)
	if err != nil {
		return valueobject.GeoPoint{}, &Error{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "petfinder-backend")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return valueobject.GeoPoint{}, &Error{Retriable: true, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return valueobject.GeoPoint{}, &Error{
			StatusCode: resp.StatusCode,
			Retriable:  isRetriableStatusCode(resp.StatusCode),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var body lookupResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err != nil {
		return valueobject.GeoPoint{}, &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if body.Error {
		return valueobject.GeoPoint{}, &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %s", location.ErrPositionUnavailable, body.Reason)}
	}

	point, ok := valueobject.PointFromCoordinates(body.Latitude, body.Longitude)
	if !ok {
		return valueobject.GeoPoint{}, &Error{StatusCode: resp.StatusCode, Err: location.ErrInvalidPosition}
	}
	return point, nil
}
