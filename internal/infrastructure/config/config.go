package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/location"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Valkey    ValkeyConfig
	NATS      NATSConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	RateLimit RateLimitConfig
	Location  LocationConfig
	Proximity ProximityConfig
	GeoIP     GeoIPConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	MigrationsPath  string        `envconfig:"MIGRATIONS_PATH" default:"migrations"`
	CORSOrigins     []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" required:"true"`
	Password        string        `envconfig:"DB_PASSWORD" required:"true"`
	Name            string        `envconfig:"DB_NAME" required:"true"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	// StatementTimeout bounds every query, including nearby candidate scans.
	StatementTimeout time.Duration `envconfig:"DB_STATEMENT_TIMEOUT" default:"5s"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type ValkeyConfig struct {
	Host     string `envconfig:"VALKEY_HOST" default:"localhost"`
	Port     int    `envconfig:"VALKEY_PORT" default:"6379"`
	Password string `envconfig:"VALKEY_PASSWORD" default:""`
	DB       int    `envconfig:"VALKEY_DB" default:"0"`
}

func (c ValkeyConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NATSConfig leaves URL empty to disable event publishing.
type NATSConfig struct {
	URL           string `envconfig:"NATS_URL" default:""`
	SubjectPrefix string `envconfig:"NATS_SUBJECT_PREFIX" default:"petfinder"`
}

// JWTConfig verifies tokens issued by the identity service.
type JWTConfig struct {
	SecretKey string `envconfig:"JWT_SECRET_KEY" required:"true"`
	Issuer    string `envconfig:"JWT_ISSUER" default:""`
}

type S3Config struct {
	Endpoint        string        `envconfig:"S3_ENDPOINT"`
	Region          string        `envconfig:"S3_REGION" default:"us-east-1"`
	Bucket          string        `envconfig:"S3_BUCKET" required:"true"`
	AccessKeyID     string        `envconfig:"S3_ACCESS_KEY_ID" required:"true"`
	SecretAccessKey string        `envconfig:"S3_SECRET_ACCESS_KEY" required:"true"`
	UsePathStyle    bool          `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	PublicURL       string        `envconfig:"S3_PUBLIC_URL"`
	SignedURLExpiry time.Duration `envconfig:"S3_SIGNED_URL_EXPIRY" default:"24h"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type RateLimitConfig struct {
	Enabled        bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMin int  `envconfig:"RATE_LIMIT_REQUESTS_PER_MIN" default:"100"`
}

// LocationConfig drives the two-tier position lookup and its fallback.
type LocationConfig struct {
	PrimaryHighAccuracy bool          `envconfig:"LOCATION_PRIMARY_HIGH_ACCURACY" default:"true"`
	PrimaryTimeout      time.Duration `envconfig:"LOCATION_PRIMARY_TIMEOUT" default:"30s"`
	PrimaryMaxAge       time.Duration `envconfig:"LOCATION_PRIMARY_MAX_AGE" default:"5m"`
	RetryTimeout        time.Duration `envconfig:"LOCATION_RETRY_TIMEOUT" default:"15s"`
	RetryMaxAge         time.Duration `envconfig:"LOCATION_RETRY_MAX_AGE" default:"10m"`
	FallbackLatitude    float64       `envconfig:"LOCATION_FALLBACK_LATITUDE" default:"36.3504"`
	FallbackLongitude   float64       `envconfig:"LOCATION_FALLBACK_LONGITUDE" default:"127.3845"`
}

func (c LocationConfig) ResolverConfig() location.Config {
	return location.Config{
		Primary: location.PositionOptions{
			HighAccuracy: c.PrimaryHighAccuracy,
			Timeout:      c.PrimaryTimeout,
			MaximumAge:   c.PrimaryMaxAge,
		},
		Retry: location.PositionOptions{
			HighAccuracy: false,
			Timeout:      c.RetryTimeout,
			MaximumAge:   c.RetryMaxAge,
		},
		Fallback: valueobject.NewGeoPoint(c.FallbackLatitude, c.FallbackLongitude),
	}
}

type ProximityConfig struct {
	DefaultRadius float64   `envconfig:"PROXIMITY_DEFAULT_RADIUS" default:"10000"`
	MaxRadius     float64   `envconfig:"PROXIMITY_MAX_RADIUS" default:"500000"`
	MaxCandidates int       `envconfig:"PROXIMITY_MAX_CANDIDATES" default:"500"`
	ZoomTable     ZoomTable `envconfig:"PROXIMITY_ZOOM_TABLE" default:"1000:5,3000:6,5000:7,10000:8,20000:9,50000:10,*:12"`
}

// ZoomTable decodes PROXIMITY_ZOOM_TABLE.
type ZoomTable struct {
	proximity.ZoomTable
}

func (z *ZoomTable) Decode(value string) error {
	table, err := proximity.ParseZoomTable(value)
	if err != nil {
		return err
	}
	z.ZoomTable = table
	return nil
}

type GeoIPConfig struct {
	URL      string        `envconfig:"GEOIP_URL" default:"https://ipapi.co/%s/json/"`
	Timeout  time.Duration `envconfig:"GEOIP_TIMEOUT" default:"5s"`
	CacheTTL time.Duration `envconfig:"GEOIP_CACHE_TTL" default:"10m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Proximity.DefaultRadius <= 0 {
		return fmt.Errorf("PROXIMITY_DEFAULT_RADIUS must be positive, got %v", c.Proximity.DefaultRadius)
	}
	if c.Proximity.MaxRadius < c.Proximity.DefaultRadius {
		return fmt.Errorf("PROXIMITY_MAX_RADIUS %v is below the default radius", c.Proximity.MaxRadius)
	}
	if c.Proximity.MaxCandidates < 1 {
		return fmt.Errorf("PROXIMITY_MAX_CANDIDATES must be at least 1")
	}
	if !valueobject.NewGeoPoint(c.Location.FallbackLatitude, c.Location.FallbackLongitude).IsValid() {
		return fmt.Errorf("fallback location %v,%v is out of range", c.Location.FallbackLatitude, c.Location.FallbackLongitude)
	}
	if c.Location.PrimaryTimeout <= 0 || c.Location.RetryTimeout <= 0 {
		return fmt.Errorf("location timeouts must be positive")
	}
	return nil
}
