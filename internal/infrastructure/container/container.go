// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	aiapp "github.com/recipehub/api/internal/application/ai"
	bookmarkapp "github.com/recipehub/api/internal/application/bookmark"
	recipeapp "github.com/recipehub/api/internal/application/recipe"
	userapp "github.com/recipehub/api/internal/application/user"
	"github.com/recipehub/api/internal/infrastructure/ai/forkify"
	"github.com/recipehub/api/internal/infrastructure/ai/openai"
	"github.com/recipehub/api/internal/infrastructure/config"
	"github.com/recipehub/api/internal/infrastructure/http/apiserver"
	gormRepo "github.com/recipehub/api/internal/infrastructure/persistence/gorm"
	"github.com/recipehub/api/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/recipehub/api/internal/infrastructure/persistence/redis"
	"github.com/recipehub/api/internal/infrastructure/persistence/sqlite"
	"github.com/recipehub/api/internal/infrastructure/security"
	"github.com/recipehub/api/internal/ports/outbound"
	"github.com/recipehub/api/pkg/logger"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module wires the whole application
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.IsDevelopment(),
		})
	},
)

// DatabaseModule provides the GORM connection, PostgreSQL in
// production and SQLite otherwise
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		if cfg.Database.Driver == "postgres" {
			return postgres.SetupDatabase(cfg, log)
		}

		logLevel := gormLogger.Silent
		if cfg.IsDevelopment() {
			logLevel = gormLogger.Warn
		}
		db, err := sqlite.SetupDatabase(cfg.Database.Database, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}
		log.Info("Connected to SQLite database", zap.String("path", cfg.Database.Database))
		return db, nil
	},
)

// CacheModule provides the optional Redis client and cache repository
var CacheModule = fx.Provide(
	redisRepo.NewClient,
	fx.Annotate(
		redisRepo.NewCacheRepository,
		fx.As(new(outbound.CacheRepository)),
	),
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(
		gormRepo.NewRecipeRepository,
		fx.As(new(outbound.RecipeRepository)),
	),
	fx.Annotate(
		gormRepo.NewUserRepository,
		fx.As(new(outbound.UserRepository)),
	),
	fx.Annotate(
		gormRepo.NewBookmarkRepository,
		fx.As(new(outbound.BookmarkRepository)),
	),
)

// ServiceModule provides application services and external clients
var ServiceModule = fx.Provide(
	security.NewAuthService,
	func(auth *security.AuthService) outbound.TokenService { return auth },
	fx.Annotate(
		openai.NewClient,
		fx.As(new(outbound.AIService)),
	),
	fx.Annotate(
		forkify.NewClient,
		fx.As(new(outbound.RecipeProvider)),
	),
	userapp.NewUserService,
	recipeapp.NewRecipeService,
	bookmarkapp.NewBookmarkService,
	aiapp.NewAIService,
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule registers start and stop hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	redisClient *redislib.Client,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					log.Error("Failed to close Redis connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
