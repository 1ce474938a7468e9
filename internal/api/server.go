package api

import (
	"context"
	"fmt"
	"time"

	"gestic/internal/app/config"
	"gestic/internal/app/handler"
	"gestic/internal/app/middleware"
	"gestic/internal/app/repository"
	"gestic/internal/app/storage"
	"gestic/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// StartServer loads the configuration, connects the store and serves the API.
func StartServer() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := pkg.SetupLogging(cfg.Log); err != nil {
		return err
	}
	if cfg.DB.DSN == "" {
		return fmt.Errorf("database DSN is empty: set DATABASE_URL, DB_HOST or db.dsn")
	}

	repo, err := repository.New(cfg.DB.DSN, repositoryOptions(cfg))
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logrus.WithError(err).Warn("closing database")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if cfg.AutoMigrate {
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
	}

	var exports handler.SnapshotStore
	if cfg.MinIO.Enabled() {
		client, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			return fmt.Errorf("init minio: %w", err)
		}
		exports = client
	} else {
		logrus.Warn("minio endpoint not configured, catalog export disabled")
	}

	h := handler.NewHandler(repo, exports)
	app := pkg.NewApp(cfg, NewRouter(cfg), h)
	return app.RunApp()
}

// NewRouter builds the engine with the cross-cutting middleware.
func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ActingUser(),
		middleware.RequestLogger(),
		cors.New(corsConfig(cfg.CORS)),
	)
	return r
}

func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cc.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader, middleware.ActingUserHeader}
	cc.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(c.AllowedOrigins) == 0 || (len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = c.AllowedOrigins
	}
	return cc
}

func repositoryOptions(cfg *config.Config) repository.Options {
	opts := repository.DefaultOptions()
	if cfg.DB.MaxOpenConns > 0 {
		opts.MaxOpenConns = cfg.DB.MaxOpenConns
	}
	if cfg.DB.MaxIdleConns > 0 {
		opts.MaxIdleConns = cfg.DB.MaxIdleConns
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		opts.ConnMaxLifetime = cfg.DB.ConnMaxLifetime
	}
	if cfg.DB.SlowThreshold > 0 {
		opts.SlowThreshold = cfg.DB.SlowThreshold
	}
	if cfg.Log.Level == "debug" || cfg.Log.Level == "trace" {
		opts.LogLevel = logger.Info
	}
	return opts
}
