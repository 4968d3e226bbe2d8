package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Harshana2/lims/internal/bootstrap"
	"github.com/Harshana2/lims/internal/config"
	"github.com/Harshana2/lims/internal/lims/handler"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/Harshana2/lims/internal/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatalf("jwt.secret (JWT_SECRET) is required")
	}

	zapLogger, err := bootstrap.InitLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting lims service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := bootstrap.InitDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()

	var deps service.Deps
	rdb, err := bootstrap.InitRedis(ctx, cfg.Redis)
	switch {
	case err != nil:
		zapLogger.Warn("Redis unavailable, refresh tokens kept in memory", zap.Error(err))
	case rdb != nil:
		defer rdb.Close()
		deps.Tokens = service.NewRedisTokenStore(rdb)
		zapLogger.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	default:
		zapLogger.Info("Redis not configured, refresh tokens kept in memory")
	}

	archive, err := service.NewMinIOStore(ctx, cfg.MinIO)
	switch {
	case err != nil:
		zapLogger.Warn("MinIO unavailable, report archiving disabled", zap.Error(err))
	case archive != nil:
		deps.Archive = archive
		zapLogger.Info("MinIO connected", zap.String("endpoint", cfg.MinIO.Endpoint), zap.String("bucket", cfg.MinIO.Bucket))
	default:
		zapLogger.Info("MinIO not configured, report archiving disabled")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, cfg, deps, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, db, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, db *gorm.DB, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"code": 40400, "message": "Not found"})
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	})

	handler.RegisterRoutes(r, h, cfg.JWT.Secret)
}
