package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/dkacademy/registration-api/api/swagger"
	"github.com/dkacademy/registration-api/internal/handler"
	internalmiddleware "github.com/dkacademy/registration-api/internal/middleware"
	"github.com/dkacademy/registration-api/internal/repository"
	"github.com/dkacademy/registration-api/internal/service"
	"github.com/dkacademy/registration-api/pkg/cache"
	"github.com/dkacademy/registration-api/pkg/config"
	"github.com/dkacademy/registration-api/pkg/database"
	appErrors "github.com/dkacademy/registration-api/pkg/errors"
	"github.com/dkacademy/registration-api/pkg/logger"
	corsmiddleware "github.com/dkacademy/registration-api/pkg/middleware/cors"
	reqidmiddleware "github.com/dkacademy/registration-api/pkg/middleware/requestid"
	"github.com/dkacademy/registration-api/pkg/response"
	"github.com/dkacademy/registration-api/pkg/storage"
)

// @title DK Academy Registration API
// @version 1.0.0
// @description Enrollment form backend: registrations, file uploads, admin roster
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db := openDatabase(cfg, logr)
	redisClient := openRedis(cfg, logr)
	blobStore := openBlobStore(cfg, logr)

	r, err := buildRouter(cfg, logr, db, redisClient, blobStore)
	if err != nil {
		logr.Sugar().Fatalw("failed to build router", "error", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// buildRouter wires services, handlers and middleware into the HTTP
// surface. db and redisClient may be nil; the affected endpoints then
// answer with typed JSON errors instead of crashing.
func buildRouter(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, redisClient *redis.Client, blobStore *storage.LocalBlobStore) (*gin.Engine, error) {
	validate := validator.New()

	metricsService := service.NewMetricsService()
	authService, err := service.NewAdminAuthService(cfg.Admin, validate, logr)
	if err != nil {
		return nil, fmt.Errorf("init admin auth: %w", err)
	}
	registrationRepo := repository.NewRegistrationRepository(db)
	registrationService := service.NewRegistrationService(registrationRepo, redisClient, cfg.Cache.TTL, metricsService, validate, logr)
	exportService := service.NewExportService(registrationService, logr)
	uploadService := service.NewUploadService(blobStore, logr)

	registrationHandler := handler.NewRegistrationHandler(registrationService, exportService)
	uploadHandler := handler.NewUploadHandler(uploadService, cfg.Storage.MaxUploadBytes)
	authHandler := handler.NewAuthHandler(authService)
	blobHandler := handler.NewBlobHandler(blobStore)
	metricsHandler := handler.NewMetricsHandler(metricsService, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsService))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, appErrors.ErrMethodNotAllowed)
	})
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrNotFound)
	})

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/blobs/*path", blobHandler.Serve)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	api.POST("/register", registrationHandler.Register)
	api.POST("/upload", uploadHandler.Upload)
	api.POST("/admin/login", authHandler.Login)

	secured := api.Group("", internalmiddleware.JWT(authService))
	secured.GET("/registrations", registrationHandler.List)
	secured.GET("/registrations/export", registrationHandler.Export)
	secured.GET("/admin/session", authHandler.Session)

	return r, nil
}

// openDatabase connects lazily. A missing or unreachable database is
// reported but does not stop the server, requests fail at call time.
func openDatabase(cfg *config.Config, logr *zap.Logger) *sqlx.DB {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Warnw("database unavailable", "error", err)
		return nil
	}
	if err := database.Ping(db); err != nil {
		logr.Sugar().Warnw("database ping failed", "error", err)
	}
	return db
}

func openRedis(cfg *config.Config, logr *zap.Logger) *redis.Client {
	if !cfg.Cache.Enabled {
		return nil
	}
	client, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		return nil
	}
	return client
}

func openBlobStore(cfg *config.Config, logr *zap.Logger) *storage.LocalBlobStore {
	var signer *storage.URLSigner
	if cfg.Storage.Access == config.StorageAccessSigned {
		signer = storage.NewURLSigner(cfg.Storage.SignedURLSecret, cfg.Storage.SignedURLTTL)
	}
	store, err := storage.NewLocalBlobStore(cfg.Storage.Dir, cfg.Storage.PublicBaseURL, signer)
	if err != nil {
		logr.Sugar().Fatalw("failed to init blob store", "error", err)
	}
	return store
}
