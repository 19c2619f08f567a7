package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/rehla/internal/api/auth"
	"ctchen222/rehla/internal/api/controller"
	"ctchen222/rehla/internal/api/middleware"
	apirepository "ctchen222/rehla/internal/api/repository"
	"ctchen222/rehla/internal/api/service"
	"ctchen222/rehla/internal/config"
	"ctchen222/rehla/internal/db"
	"ctchen222/rehla/internal/logger"
	"ctchen222/rehla/internal/repository"
	"ctchen222/rehla/internal/server"
	"ctchen222/rehla/internal/storage"
	"ctchen222/rehla/internal/telemetry"
	"ctchen222/rehla/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const (
	serviceName    = "rehla-api"
	serviceVersion = "1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	shutdownTelemetry, err := telemetry.InitOtel(ctx, telemetry.Options{
		Endpoint:       cfg.OTLPEndpoint,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.AppEnv,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			slog.Error("error shutting down telemetry", "error", err)
		}
	}()

	log := logger.Init(cfg.LogLevel, cfg.LogFormat, cfg.OTLPEndpoint != "")
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize SQLite DB
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize Redis
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer rdb.Close()
	}

	store, uploadDir, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	// Create repositories
	userRepo := apirepository.NewUserRepository(pool)
	storyRepo := apirepository.NewStoryRepository(pool)
	destinationRepo := apirepository.NewDestinationRepository(pool)
	destinationCache := repository.NewDestinationCache(rdb, cfg.CatalogCacheTTL)

	// Create services
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	uploads := upload.NewHandler(store, cfg.UploadMaxSize)
	userService := service.NewUserService(userRepo, tokens, cfg.BcryptCost)
	storyService := service.NewStoryService(storyRepo, uploads)
	destinationService := service.NewDestinationService(destinationRepo, destinationCache)

	// Create controllers
	ctrls := server.Controllers{
		User:        controller.NewUserController(userService),
		Story:       controller.NewStoryController(storyService, uploads),
		Destination: controller.NewDestinationController(destinationService),
		Health:      controller.NewHealthController(pool, destinationCache),
	}
	authn := middleware.NewAuthenticator(tokens, userService)

	srv := server.NewServer(server.Options{
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		UploadDir:          uploadDir,
	}, ctrls, authn)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("http server started", "addr", cfg.Addr(), "env", cfg.AppEnv)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen and serve: %w", err)
	case <-stop:
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exiting")
	return nil
}

// newStorage returns the configured upload backend and, for the local
// backend, the directory to serve under /uploads.
func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, string, error) {
	switch cfg.UploadDriver {
	case config.UploadDriverS3:
		s3, err := storage.NewS3(ctx, storage.S3Options{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		return s3, "", nil
	default:
		local, err := storage.NewLocal(cfg.UploadDir)
		if err != nil {
			return nil, "", err
		}
		return local, local.Dir(), nil
	}
}
