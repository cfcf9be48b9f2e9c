package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/student-enlistment-api/api/swagger"
	"github.com/noah-isme/student-enlistment-api/internal/enlistment"
	"github.com/noah-isme/student-enlistment-api/internal/handler"
	"github.com/noah-isme/student-enlistment-api/internal/middleware"
	"github.com/noah-isme/student-enlistment-api/internal/models"
	"github.com/noah-isme/student-enlistment-api/internal/repository"
	"github.com/noah-isme/student-enlistment-api/internal/service"
	"github.com/noah-isme/student-enlistment-api/pkg/cache"
	"github.com/noah-isme/student-enlistment-api/pkg/config"
	"github.com/noah-isme/student-enlistment-api/pkg/database"
	"github.com/noah-isme/student-enlistment-api/pkg/jobs"
	"github.com/noah-isme/student-enlistment-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/student-enlistment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/student-enlistment-api/pkg/middleware/requestid"
	"github.com/noah-isme/student-enlistment-api/pkg/storage"
)

// @title Student Enlistment API
// @version 1.0.0
// @description Subject enlistment sessions with admission control for the student portal
// @BasePath /api/v1
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	seedCeilings, err := enlistment.ParseCeilings(cfg.Enlistment.SeedCeilings)
	if err != nil {
		return fmt.Errorf("ENLISTMENT_SEED_CEILINGS: %w", err)
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.CatalogCache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("catalog cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	metrics := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, "enlistment", logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.CatalogCache.TTL, logr, redisClient != nil)

	catalogSvc := service.NewCatalogService(repository.NewOfferingRepository(db), cacheSvc, logr, service.CatalogConfig{
		DefaultSeatCapacity: cfg.Enlistment.DefaultSeatCapacity,
		CacheTTL:            cfg.CatalogCache.TTL,
	})

	queue := jobs.NewQueue("catalog", catalogSvc.HandleJob, jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.Retries,
		Logger:     logr,
	})
	queue.Start(ctx)
	defer queue.Stop()

	enlistmentSvc := service.NewEnlistmentService(
		repository.NewStudentRepository(db),
		repository.NewEnlistmentRepository(db),
		repository.NewCurriculumRepository(db),
		catalogSvc,
		catalogSvc,
		queue,
		metrics,
		validator.New(),
		logr,
		service.EnlistmentConfig{
			SessionTTL:          cfg.Enlistment.SessionTTL,
			IrregularCap:        cfg.Enlistment.IrregularCap,
			DefaultCeiling:      cfg.Enlistment.DefaultCeiling,
			DefaultSeatCapacity: cfg.Enlistment.DefaultSeatCapacity,
			SeedCeilings:        seedCeilings,
		},
	)
	tokenSvc := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})
	signer := storage.NewSignedURLSigner(cfg.Forms.SignedURLSecret, cfg.Forms.SignedURLTTL)
	formSvc := service.NewRegistrationFormService(enlistmentSvc, signer, service.FormConfig{APIPrefix: cfg.APIPrefix}, logr, nil, nil)

	dependencies := map[string]handler.Pinger{"postgres": handler.PingFunc(db.PingContext)}
	if redisClient != nil {
		dependencies["redis"] = cacheRepo
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics, dependencies)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	enlistmentHandler := handler.NewEnlistmentHandler(enlistmentSvc)
	formsHandler := handler.NewFormsHandler(formSvc)

	api := r.Group(cfg.APIPrefix)
	api.GET("/forms/:token", formsHandler.Download)

	student := api.Group("/enlistment", middleware.JWT(tokenSvc), middleware.RequireRoles(models.RoleStudent))
	student.POST("/session", enlistmentHandler.Start)
	student.GET("/session", enlistmentHandler.Session)
	student.GET("/offerings", enlistmentHandler.Offerings)
	student.POST("/selections", enlistmentHandler.Add)
	student.DELETE("/selections", enlistmentHandler.Clear)
	student.DELETE("/selections/:code/:section", enlistmentHandler.Remove)
	student.POST("/submit", enlistmentHandler.Submit)
	student.GET("/registration-form", formsHandler.Link)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
