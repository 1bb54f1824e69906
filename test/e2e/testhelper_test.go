package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler"
	pgRepo "github.com/marcos-nsantos/petfinder-backend/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/database"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/geolocation"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/messaging"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/server"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/hospital"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/location"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/mapview"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/profile"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/report"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/upload"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
	testJWTSecret  = "test-secret-key-for-e2e-tests"
	testJWTIssuer  = "petfinder-e2e"
	apiBasePath    = "/api/v1"
)

type TestApp struct {
	Server     *httptest.Server
	Pool       *pgxpool.Pool
	Container  testcontainers.Container
	BaseURL    string
	jwt        *auth.JWTService
	httpClient *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	// Start PostgreSQL container with PostGIS
	pgContainer, err := postgres.Run(ctx,
		"postgis/postgis:18-3.6-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	err = database.RunMigrations(ctx, pool, getMigrationsPath())
	require.NoError(t, err)

	logger, _ := zap.NewDevelopment()

	userRepo := pgRepo.NewUserRepo(pool)
	reportRepo := pgRepo.NewReportRepo(pool)
	hospitalRepo := pgRepo.NewHospitalRepo(pool)
	photoRepo := pgRepo.NewPhotoRepo(pool)

	jwtSvc := auth.NewJWTService(testJWTSecret, testJWTIssuer)

	// No IP locator: requests without a device fix land on the fallback.
	positions := geolocation.NewFactory(nil, nil, 0, logger)
	cfg := location.DefaultConfig()
	cfg.Primary.Timeout = time.Second
	cfg.Retry.Timeout = time.Second
	resolver := location.NewResolver(cfg, logger)

	reportSvc := report.NewService(reportRepo, photoRepo, messaging.NopPublisher{}, report.Config{})
	hospitalSvc := hospital.NewService(hospitalRepo, hospital.Config{})
	profileSvc := profile.NewService(userRepo, 10000, 500000)
	uploadSvc := upload.NewService(photoRepo, reportRepo, &stubImageStorage{}, &stubImageProcessor{}, time.Hour)
	mapSvc := mapview.NewService(resolver, profileSvc, reportSvc, hospitalSvc, proximity.DefaultZoomTable())

	router := server.NewRouter(server.RouterConfig{
		ReportHandler:   handler.NewReportHandler(reportSvc),
		HospitalHandler: handler.NewHospitalHandler(hospitalSvc),
		ProfileHandler:  handler.NewProfileHandler(profileSvc),
		MapHandler:      handler.NewMapHandler(mapSvc, positions, hospitalSvc),
		UploadHandler:   handler.NewUploadHandler(uploadSvc),
		AuthMiddleware:  middleware.NewAuthMiddleware(jwtSvc),
		Logger:          logger,
		Environment:     "test",
	})

	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:    ts,
		Pool:      pool,
		Container: pgContainer,
		BaseURL:   ts.URL,
		jwt:       jwtSvc,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()
	app.Pool.Close()

	ctx := context.Background()
	if err := app.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// newUserToken issues a token for a fresh subject, the way the identity
// service would.
func (app *TestApp) newUserToken(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	userID := uuid.New()
	token, _, err := app.jwt.GenerateAccessToken(userID, time.Hour)
	require.NoError(t, err)
	return userID, token
}

func (app *TestApp) request(method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	fullPath := apiBasePath + path
	req, err := http.NewRequest(method, app.BaseURL+fullPath, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.httpClient.Do(req)
}

func (app *TestApp) get(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodGet, path, nil, headers)
}

func (app *TestApp) post(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPost, path, body, headers)
}

func (app *TestApp) patch(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPatch, path, body, headers)
}

func (app *TestApp) delete(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodDelete, path, nil, headers)
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if dest != nil {
		err = json.Unmarshal(body, dest)
		require.NoError(t, err, "response body: %s", string(body))
	}
}

func authHeader(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
	}
}

// Stub implementations for storage (to avoid S3 dependency in e2e tests)

type stubImageStorage struct{}

func (s *stubImageStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error {
	return nil
}

func (s *stubImageStorage) Delete(ctx context.Context, key string) error {
	return nil
}

func (s *stubImageStorage) GetURL(key string) string {
	return "https://stub-storage.example.com/" + key
}

func (s *stubImageStorage) GetSignedURL(key string, duration time.Duration) (string, error) {
	return "https://stub-storage.example.com/" + key + "?signed=true", nil
}

type stubImageProcessor struct{}

func (s *stubImageProcessor) Process(reader io.Reader, contentType string) (io.Reader, int64, int, int, error) {
	data, _ := io.ReadAll(reader)
	return bytes.NewReader(data), int64(len(data)), 800, 600, nil
}

// getMigrationsPath returns the absolute path to the migrations directory
func getMigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(filename)
	return filepath.Join(testDir, "..", "..", "migrations")
}
