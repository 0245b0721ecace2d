package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"celebrai-backend/config"
	_ "celebrai-backend/docs" // Important for Swagger
	"celebrai-backend/internal/contractdoc"
	"celebrai-backend/internal/delivery/http/middleware"
	v1 "celebrai-backend/internal/delivery/http/v1"
	"celebrai-backend/internal/domain"
	"celebrai-backend/internal/repository/postgres"
	"celebrai-backend/internal/usecase"
	"celebrai-backend/pkg/auth"
	"celebrai-backend/pkg/database"
	"celebrai-backend/pkg/email"
	"celebrai-backend/pkg/logger"
	"celebrai-backend/pkg/pdfexport"
	"celebrai-backend/pkg/redis"
	"celebrai-backend/pkg/storage"
	"celebrai-backend/pkg/tracing"
	"celebrai-backend/pkg/validation"
)

// @title           Celebrai Backend API
// @version         1.0
// @description     Contract PDFs, signature notifications and dashboard data for party-service tenants.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	if err := logger.Init(cfg.Mode); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Log.Sync()
	gin.SetMode(cfg.Mode)
	logger.Log.Info("Starting celebrai backend", "port", cfg.Port, "mode", cfg.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Tracing
	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.OtelServiceName,
		Environment: cfg.Mode,
		Endpoint:    cfg.OtelEndpoint,
	})
	if err != nil {
		logger.Log.Error("Failed to init tracing", "error", err)
		os.Exit(1)
	}

	// 4. Setup Database
	dbPool, err := database.Connect(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 5. Redis for shared rate limits; in-memory counters otherwise
	var redisClient *goredis.Client
	redisClient, err = redis.Open(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("Redis not configured - rate limits are per instance")
	case err != nil:
		logger.Log.Warn("Redis unavailable - rate limits are per instance", "error", err)
		redisClient = nil
	default:
		defer redisClient.Close()
	}

	// 6. Contract archive
	var archive domain.ContractArchive
	if cfg.StorageConfigured() {
		s3Archive, err := storage.NewS3Archive(ctx, storage.S3Config{
			Endpoint:        cfg.StorageS3Endpoint,
			Region:          cfg.StorageS3Region,
			AccessKeyID:     cfg.StorageS3AccessKey,
			SecretAccessKey: cfg.StorageS3SecretKey,
			Bucket:          cfg.StorageBucket,
		})
		if err != nil {
			logger.Log.Warn("Contract archive disabled", "error", err)
		} else {
			archive = s3Archive
		}
	} else {
		logger.Log.Info("Storage not configured - generated contracts are not archived")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Log.Warn("Unknown timezone, using default", "timezone", cfg.Timezone, "error", err)
		loc = contractdoc.DefaultLocation()
	}

	// 7. Setup Repositories
	tenantRepo := postgres.NewTenantRepository(dbPool)
	ownerDir := postgres.NewOwnerDirectory(dbPool)
	contractRepo := postgres.NewContractRepository(dbPool)
	appointmentRepo := postgres.NewAppointmentRepository(dbPool)

	// 8. Setup UseCases
	sender := email.NewSender(cfg)
	exporter := pdfexport.NewExporter(contractdoc.WithLocation(loc))
	validate := validation.New()

	notificationUC := usecase.NewNotificationUsecase(tenantRepo, ownerDir, sender, cfg.EmailFromAddress, loc)
	contractUC := usecase.NewContractUsecase(contractRepo, tenantRepo, archive, exporter, validate)
	dashboardUC := usecase.NewDashboardUsecase(tenantRepo, appointmentRepo, loc)

	checks := map[string]usecase.HealthCheck{"database": dbPool.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	healthUC := usecase.NewHealthUsecase(checks)

	// 9. Setup Auth (HS256 secret plus JWKS for asymmetric keys)
	verifier := auth.NewVerifier(cfg.SupabaseJWTSecret, auth.NewProvider(auth.JWKSURL(cfg.SupabaseUrl)))

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		NotificationUC: notificationUC,
		ContractUC:     contractUC,
		DashboardUC:    dashboardUC,
		HealthUC:       healthUC,
		Verifier:       verifier,
		RateLimiter:    middleware.NewRateLimiter(redisClient),
		Config:         cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Log.Warn("Tracing shutdown failed", "error", err)
	}

	logger.Log.Info("Server exiting")
}
