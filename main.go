package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"carepulse/config"
	_ "carepulse/docs"
	"carepulse/internal/controller"
	"carepulse/internal/form"
	"carepulse/internal/repository"
	"carepulse/internal/service"
	"carepulse/internal/storage"
	"carepulse/internal/transport/rest"
	"carepulse/internal/transport/websocket"
	"carepulse/pkg/auth"
	"carepulse/pkg/database"
	"carepulse/pkg/logger"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const sessionSweepInterval = time.Minute

// adminTokens defers token checks to the admin service, which is built
// after the feed it notifies.
type adminTokens struct {
	services *service.Services
}

func (a *adminTokens) ParseToken(ctx context.Context, token string) error {
	return a.services.Admin.ParseToken(ctx, token)
}

// @title CarePulse API
// @version 1.0
// @description Patient intake and appointment management
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("running database migrations")
	if err := database.RunMigrations(ctx, db, cfg.Postgres.MigrationsDir, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("migrations applied")

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, logger)
		if err != nil {
			logger.Fatal("failed to initialize S3 storage", zap.Error(err))
		}
		fileStorage = s3Storage
		logger.Info("S3 storage initialized", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		logger.Warn("S3 storage is not configured, identification documents cannot be uploaded")
	}

	passkeyHash, err := auth.HashPasskey(cfg.Admin.Passkey)
	if err != nil {
		logger.Fatal("failed to hash admin passkey", zap.Error(err))
	}

	tokens := &adminTokens{}
	feed := websocket.NewFeedHub(tokens, cfg.HTTP.CORSOrigins, logger)

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      logger,
		Config:      cfg,
		FileStorage: fileStorage,
		Notifier:    feed,
		PasskeyHash: passkeyHash,
	})
	tokens.services = services

	go feed.Run(ctx)

	registry := form.Default()
	sessions := controller.NewSessions(cfg.Forms.SessionTTL, logger)
	go sessions.Run(ctx, sessionSweepInterval)

	handler := rest.NewHandler(rest.Deps{
		Services:  services,
		Registry:  registry,
		Validator: form.NewValidator(registry),
		Sessions:  sessions,
		Feed:      feed,
		Logger:    logger,
		Config:    cfg,
	})

	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("addr", srv.Addr))

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
