package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/escola-adm/sistema-escolar-api/api/swagger"
	"github.com/escola-adm/sistema-escolar-api/internal/handler"
	"github.com/escola-adm/sistema-escolar-api/internal/middleware"
	"github.com/escola-adm/sistema-escolar-api/internal/repository"
	"github.com/escola-adm/sistema-escolar-api/internal/service"
	"github.com/escola-adm/sistema-escolar-api/pkg/cache"
	"github.com/escola-adm/sistema-escolar-api/pkg/cep"
	"github.com/escola-adm/sistema-escolar-api/pkg/config"
	"github.com/escola-adm/sistema-escolar-api/pkg/database"
	"github.com/escola-adm/sistema-escolar-api/pkg/export"
	"github.com/escola-adm/sistema-escolar-api/pkg/logger"
	corsmiddleware "github.com/escola-adm/sistema-escolar-api/pkg/middleware/cors"
	reqidmiddleware "github.com/escola-adm/sistema-escolar-api/pkg/middleware/requestid"
	"github.com/escola-adm/sistema-escolar-api/pkg/storage"
)

// @title Sistema Escolar API
// @version 1.0.0
// @description Enrollment, reference tables, ledger and audit trail for a small school
// @BasePath /
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(bootCtx, db); err != nil {
		logr.Sugar().Fatalw("failed to ensure schema", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, running without cache", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	attachmentStore, err := storage.NewLocalStorage(cfg.Attachments.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare attachment storage", "error", err)
	}

	userRepo := repository.NewUserRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditSvc := service.NewAuditService(auditRepo, logr)
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthTokenConfig{
		Secret:       cfg.JWT.Secret,
		Expiration:   cfg.JWT.Expiration,
		RecoveryCode: cfg.Auth.RecoveryCode,
	})
	userSvc := service.NewUserService(userRepo, auditSvc, nil, logr)
	referenceSvc := service.NewReferenceService(referenceRepo, auditSvc, cacheSvc, metricsSvc, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, auditSvc, nil, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, auditSvc, attachmentStore, export.NewPDFExporter(), nil, logr)
	exportSvc := service.NewExportService(enrollmentSvc, export.NewCSVExporter(), export.NewPDFExporter())
	cepClient := cep.NewClient(cfg.CEP.BaseURL, cfg.CEP.Timeout)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	referenceHandler := handler.NewReferenceHandler(referenceSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc, exportSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)
	cepHandler := handler.NewCEPHandler(cepClient)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/recover", authHandler.Recover)

	api := r.Group("/", middleware.JWT(authSvc))
	{
		api.GET("/referencias/:kind", referenceHandler.Options)
		api.POST("/referencias/:kind", referenceHandler.Add)
		api.GET("/referencias/:kind/itens", referenceHandler.Rows)

		api.GET("/matriculas", enrollmentHandler.List)
		api.POST("/matriculas", enrollmentHandler.Create)
		api.GET("/matriculas/export", enrollmentHandler.Export)
		api.GET("/matriculas/:matricula", enrollmentHandler.Get)
		api.PUT("/matriculas/:matricula", enrollmentHandler.Edit)

		api.GET("/financeiro", paymentHandler.List)
		api.POST("/financeiro", paymentHandler.Append)
		api.POST("/financeiro/anexos", paymentHandler.UploadAttachment)
		api.GET("/financeiro/anexos/:anexo", paymentHandler.DownloadAttachment)
		api.GET("/financeiro/:id/recibo", paymentHandler.Receipt)

		api.GET("/usuarios", userHandler.List)
		api.POST("/usuarios", userHandler.Create)

		api.GET("/logs", auditHandler.List)
		api.GET("/cep/:codigo", cepHandler.Lookup)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
