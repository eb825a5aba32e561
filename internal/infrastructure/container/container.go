// Package container provides dependency injection configuration
// Using Uber FX for clean dependency management
package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alchemorsel/menugen/internal/application/catalog"
	"github.com/alchemorsel/menugen/internal/application/export"
	menuapp "github.com/alchemorsel/menugen/internal/application/menu"
	"github.com/alchemorsel/menugen/internal/infrastructure/config"
	"github.com/alchemorsel/menugen/internal/infrastructure/http/apiserver"
	"github.com/alchemorsel/menugen/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/menugen/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/menugen/internal/infrastructure/monitoring"
	"github.com/alchemorsel/menugen/internal/infrastructure/persistence/file"
	gormrepo "github.com/alchemorsel/menugen/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/menugen/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/menugen/internal/infrastructure/persistence/postgres"
	redisrepo "github.com/alchemorsel/menugen/internal/infrastructure/persistence/redis"
	"github.com/alchemorsel/menugen/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/menugen/internal/infrastructure/security"
	"github.com/alchemorsel/menugen/internal/infrastructure/session"
	"github.com/alchemorsel/menugen/internal/ports/inbound"
	"github.com/alchemorsel/menugen/internal/ports/outbound"
	"github.com/alchemorsel/menugen/pkg/healthcheck"
	"github.com/alchemorsel/menugen/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// startupTimeout bounds catalog loading and backend pings during construction
const startupTimeout = 30 * time.Second

// Module exports all application dependencies
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	StorageModule,
	CacheModule,
	MetricsModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Options(
	fx.Provide(func() (*config.Config, error) {
		return config.Load("")
	}),
)

// LoggerModule provides logging
var LoggerModule = fx.Options(
	fx.Provide(NewLogger),
)

// StorageModule provides the recipe catalog repository for the configured driver
var StorageModule = fx.Options(
	fx.Provide(NewCatalogStorage),
	fx.Provide(func(s *CatalogStorage) outbound.CatalogRepository {
		return s.Repository
	}),
)

// CacheModule provides the session cache and the menu session store
var CacheModule = fx.Options(
	fx.Provide(NewSessionCache),
	fx.Provide(func(c *SessionCache) outbound.CacheRepository {
		return c.Repository
	}),
	fx.Provide(
		fx.Annotate(
			NewMenuSessionStore,
			fx.As(new(outbound.MenuSessionRepository)),
		),
	),
)

// MetricsModule provides the Prometheus registry, collector and tracer provider
var MetricsModule = fx.Options(
	fx.Provide(func(cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		return monitoring.NewTracingProvider(cfg, log)
	}),
	fx.Provide(prometheus.NewRegistry),
	fx.Provide(monitoring.NewMetricsCollector),
	fx.Provide(func(m *monitoring.MetricsCollector) outbound.MenuMetrics {
		return m
	}),
)

// ServiceModule provides application services
var ServiceModule = fx.Options(
	fx.Provide(NewCatalogService),
	fx.Provide(func(s *catalog.Service) inbound.CatalogService {
		return s
	}),
	fx.Provide(NewMenuService),
	fx.Provide(func(s *menuapp.MenuService) inbound.MenuService {
		return s
	}),
	fx.Provide(NewExportService),
	fx.Provide(func(s *export.ExportService) inbound.ExportService {
		return s
	}),
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Options(
	fx.Provide(security.NewValidationService),
	fx.Provide(middleware.New),
	fx.Provide(handlers.NewMenuHandlers),
	fx.Provide(NewHealthCheck),
	fx.Provide(apiserver.NewServer),
)

// LifecycleModule manages application lifecycle
var LifecycleModule = fx.Options(
	fx.Invoke(RegisterLifecycleHooks),
)

// NewLogger builds the application logger from the app section of the config
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, err
	}
	return log.With(
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	), nil
}

// CatalogStorage is the catalog repository plus the SQL handle backing it,
// which is nil for the file driver
type CatalogStorage struct {
	Driver     string
	Repository outbound.CatalogRepository
	DB         *sql.DB
}

// Close releases the database handle, if any
func (s *CatalogStorage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// NewCatalogStorage opens the catalog store named by catalog.driver
func NewCatalogStorage(cfg *config.Config, log *zap.Logger) (*CatalogStorage, error) {
	storage := &CatalogStorage{Driver: cfg.Catalog.Driver}

	switch cfg.Catalog.Driver {
	case config.CatalogDriverFile:
		storage.Repository = file.NewCatalogRepository(cfg.Catalog.Path)
		return storage, nil
	case config.CatalogDriverSQLite:
		db, err := sqlite.SetupDatabase(cfg.Catalog.Path, postgres.ParseLogLevel(cfg.Catalog.LogLevel))
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		storage.Repository = gormrepo.NewCatalogRepository(db)
		storage.DB = sqlDB
		return storage, nil
	case config.CatalogDriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()
		db, err := postgres.Connect(ctx, cfg.Catalog, log.Named("postgres"))
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		storage.Repository = gormrepo.NewCatalogRepository(db)
		storage.DB = sqlDB
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown catalog driver %q", cfg.Catalog.Driver)
	}
}

// SessionCache is the cache behind menu sessions. Client is set only for
// the redis backend.
type SessionCache struct {
	Backend    string
	Repository outbound.CacheRepository
	Client     redis.UniversalClient
	closer     func() error
}

// Close stops the memory sweeper or closes the redis client
func (c *SessionCache) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// NewSessionCache builds the cache named by session.backend
func NewSessionCache(cfg *config.Config, log *zap.Logger) (*SessionCache, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client := redisrepo.NewClient(cfg.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout+time.Second)
		defer cancel()
		if err := redisrepo.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		log.Info("Connected to Redis session cache", zap.String("addr", cfg.Redis.Addr()))
		return &SessionCache{
			Backend:    config.SessionBackendRedis,
			Repository: redisrepo.NewCacheRepository(client, log),
			Client:     client,
			closer:     client.Close,
		}, nil
	default:
		cache := memory.NewCacheRepository()
		return &SessionCache{
			Backend:    config.SessionBackendMemory,
			Repository: cache,
			closer:     cache.Close,
		}, nil
	}
}

// NewMenuSessionStore wires the session store to the cache and menu validator
func NewMenuSessionStore(cfg *config.Config, cache outbound.CacheRepository, menus *menuapp.MenuService, log *zap.Logger) *session.MenuSessionStore {
	return session.NewMenuSessionStore(cache, menus, cfg.Session.KeyPrefix, cfg.Session.TTL, log)
}

// NewCatalogService loads the recipe catalog once at startup
func NewCatalogService(repo outbound.CatalogRepository, metrics outbound.MenuMetrics, log *zap.Logger) *catalog.Service {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	return catalog.NewService(ctx, repo, metrics, log)
}

// NewMenuService builds the generator over the loaded catalog
func NewMenuService(catalogs *catalog.Service, metrics outbound.MenuMetrics, log *zap.Logger) *menuapp.MenuService {
	return menuapp.NewMenuService(catalogs.Catalog(), log, menuapp.WithMetrics(metrics))
}

// NewExportService enables the configured export formats
func NewExportService(cfg *config.Config, metrics outbound.MenuMetrics, log *zap.Logger) *export.ExportService {
	return export.NewExportService(cfg.Export.Formats, metrics, log)
}

// NewHealthCheck registers a checker per backing service
func NewHealthCheck(cfg *config.Config, catalogs *catalog.Service, storage *CatalogStorage, cache *SessionCache, log *zap.Logger) *healthcheck.HealthCheck {
	health := healthcheck.New(cfg.App.Version, log)

	health.Register("catalog", CatalogChecker(catalogs))
	if storage.DB != nil {
		health.Register("database", healthcheck.NewDatabaseChecker(storage.DB))
	}
	if cache.Client != nil {
		health.Register("redis", healthcheck.NewRedisChecker(cache.Client))
	}

	return health
}

// CatalogChecker reports degraded while the built-in dataset is in use
func CatalogChecker(catalogs inbound.CatalogService) healthcheck.Checker {
	return healthcheck.NewCustomChecker("catalog", func(ctx context.Context) (healthcheck.Status, string, interface{}) {
		summary := catalogs.Summary(ctx)
		metadata := map[string]interface{}{
			"outcome": summary.Outcome,
			"recipes": summary.Total,
		}
		if summary.Outcome == string(catalog.OutcomeDefaulted) {
			return healthcheck.StatusDegraded, summary.Reason, metadata
		}
		return healthcheck.StatusHealthy, "", metadata
	})
}

// LifecycleParams groups what the lifecycle hooks start and stop
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *zap.Logger
	Server    *apiserver.Server
	Storage   *CatalogStorage
	Cache     *SessionCache
	Tracing   *monitoring.TracingProvider
}

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(p LifecycleParams) {
	log := p.Logger

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting menugen",
				zap.String("addr", p.Server.Server().Addr),
				zap.String("catalog_driver", p.Storage.Driver),
				zap.String("session_backend", p.Cache.Backend),
			)

			go func() {
				if err := p.Server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down menugen")

			shutdownCtx, cancel := context.WithTimeout(ctx, p.Config.Server.ShutdownTimeout)
			defer cancel()
			if err := p.Server.Shutdown(shutdownCtx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if err := p.Cache.Close(); err != nil {
				log.Error("Failed to close session cache", zap.Error(err))
			}

			if err := p.Storage.Close(); err != nil {
				log.Error("Failed to close database connection", zap.Error(err))
			}

			if err := p.Tracing.Shutdown(shutdownCtx); err != nil {
				log.Error("Failed to flush traces", zap.Error(err))
			}

			// Flush logs
			_ = log.Sync()

			return nil
		},
	})
}
