package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/messaging"
	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/cache"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/database"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/geolocation"
	natsmsg "github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/messaging"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/observability"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/server"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/storage"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/hospital"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/location"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/mapview"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/profile"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/report"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format,
		zap.String("service", "petfinder-api"),
		zap.String("env", cfg.Server.Environment),
	)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, cfg.Server.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	postgisVersion, err := database.PostGISVersion(ctx, pool)
	if err != nil {
		logger.Fatal("postgis is required", zap.Error(err))
	}
	logger.Info("database ready", zap.String("postgis", postgisVersion))

	valkeyClient, err := cache.NewValkeyClient(cfg.Valkey)
	if err != nil {
		logger.Fatal("failed to connect to valkey", zap.Error(err))
	}
	defer valkeyClient.Close()

	var events messaging.EventPublisher = natsmsg.NopPublisher{}
	if cfg.NATS.URL != "" {
		publisher, err := natsmsg.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, logger)
		if err != nil {
			logger.Fatal("failed to connect to nats", zap.Error(err))
		}
		defer publisher.Close()
		events = publisher
	} else {
		logger.Info("NATS_URL not set, report events are not published")
	}

	// Repositories
	userRepo := postgres.NewUserRepo(pool)
	reportRepo := postgres.NewReportRepo(pool)
	hospitalRepo := postgres.NewHospitalRepo(pool)
	photoRepo := postgres.NewPhotoRepo(pool)

	// Infrastructure services
	jwtSvc := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.Issuer)

	s3Storage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Fatal("failed to create s3 storage", zap.Error(err))
	}
	if err := s3Storage.Ping(ctx); err != nil {
		// uploads fail until the bucket is reachable; the map works without it
		logger.Warn("photo bucket unreachable", zap.Error(err))
	}
	imageProcessor := storage.NewImageProcessor()

	positions := geolocation.NewFactory(
		geolocation.NewIPLocator(logger,
			geolocation.WithURL(cfg.GeoIP.URL),
			geolocation.WithTimeout(cfg.GeoIP.Timeout),
		),
		cache.NewStore(valkeyClient, "geoip"),
		cfg.GeoIP.CacheTTL,
		logger,
	)
	resolver := location.NewResolver(cfg.Location.ResolverConfig(), logger,
		location.WithObserver(observability.ObserveResolution),
	)

	// Use cases
	reportSvc := report.NewService(reportRepo, photoRepo, events, report.Config{
		MaxCandidates: cfg.Proximity.MaxCandidates,
		ObserveFilter: func(s proximity.FilterStats) { observability.ObserveFilter("reports", s) },
	})
	hospitalSvc := hospital.NewService(hospitalRepo, hospital.Config{
		MaxCandidates: cfg.Proximity.MaxCandidates,
		ObserveFilter: func(s proximity.FilterStats) { observability.ObserveFilter("hospitals", s) },
	})
	profileSvc := profile.NewService(userRepo, cfg.Proximity.DefaultRadius, cfg.Proximity.MaxRadius)
	uploadSvc := upload.NewService(photoRepo, reportRepo, s3Storage, imageProcessor, cfg.S3.SignedURLExpiry)
	mapSvc := mapview.NewService(resolver, profileSvc, reportSvc, hospitalSvc, cfg.Proximity.ZoomTable.ZoomTable)

	// Handlers
	reportHandler := handler.NewReportHandler(reportSvc)
	hospitalHandler := handler.NewHospitalHandler(hospitalSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	mapHandler := handler.NewMapHandler(mapSvc, positions, hospitalSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(valkeyClient, cfg.RateLimit, logger)
	}

	// Router
	router := server.NewRouter(server.RouterConfig{
		ReportHandler:   reportHandler,
		HospitalHandler: hospitalHandler,
		ProfileHandler:  profileHandler,
		MapHandler:      mapHandler,
		UploadHandler:   uploadHandler,
		AuthMiddleware:  authMiddleware,
		RateLimiter:     rateLimiter,
		CORSOrigins:     cfg.Server.CORSOrigins,
		Logger:          logger,
		Environment:     cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
	}

	logger.Info("server stopped")
}
