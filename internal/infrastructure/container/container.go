// Package container provides dependency injection using Uber FX.
package container

import (
	"context"

	"github.com/mealforge/v1/internal/application/knowledge"
	memoryapp "github.com/mealforge/v1/internal/application/memory"
	personaapp "github.com/mealforge/v1/internal/application/persona"
	"github.com/mealforge/v1/internal/application/recommend"
	"github.com/mealforge/v1/internal/infrastructure/ai"
	"github.com/mealforge/v1/internal/infrastructure/cache"
	"github.com/mealforge/v1/internal/infrastructure/config"
	httpserver "github.com/mealforge/v1/internal/infrastructure/http"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	memstore "github.com/mealforge/v1/internal/infrastructure/persistence/memory"
	redisstore "github.com/mealforge/v1/internal/infrastructure/persistence/redis"
	"github.com/mealforge/v1/internal/infrastructure/vector"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/mealforge/v1/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module assembles the full application graph.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	StorageModule,
	AIModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration.
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging.
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MonitoringModule provides the latency aggregator and Prometheus collector.
var MonitoringModule = fx.Provide(
	monitoring.NewLatencyTracker,
	monitoring.NewCollector,
	monitoring.NewRecorder,
	func(r *monitoring.Recorder) recommend.MetricsRecorder { return r },
	func(t *monitoring.LatencyTracker) recommend.GenerationRecorder { return t },
)

// StorageModule provides the dish cache, pre-warm buffers, key-value store,
// and vector index. Redis backs the buffers and key-value store when enabled;
// otherwise the in-memory adapters serve.
var StorageModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *goredis.Client {
		if !cfg.Redis.Enabled {
			return nil
		}
		log.Info("Connecting to Redis", zap.String("addr", cfg.Redis.Addr()))
		return goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
	},
	func(client *goredis.Client, cfg *config.Config, log *zap.Logger) outbound.KeyValueStore {
		if client == nil {
			return memstore.NewKeyValueStore()
		}
		return redisstore.NewKeyValueStore(client, cfg.Pipeline.CondensedTTL, log)
	},
	func(client *goredis.Client, log *zap.Logger) outbound.DishBufferStore {
		if client == nil {
			return memstore.NewDishBufferStore()
		}
		return redisstore.NewDishBufferStore(client, log)
	},
	func(cfg *config.Config) outbound.DishCache {
		return cache.NewDishCache(cfg.Pipeline.DishCacheSize)
	},
	func() outbound.VectorIndex {
		return vector.NewIndex()
	},
)

// AIModule provides the LLM collaborator client.
var AIModule = fx.Provide(
	func(cfg *config.Config, collector *monitoring.Collector, log *zap.Logger) outbound.AIService {
		return ai.NewClient(ai.Config{
			BaseURL:        cfg.AI.BaseURL,
			APIKey:         cfg.AI.APIKey,
			Model:          cfg.AI.Model,
			EmbeddingModel: cfg.AI.EmbeddingModel,
			EmbeddingDim:   cfg.AI.EmbeddingDim,
			Timeout:        cfg.AI.Timeout,
		}, collector, log)
	},
)

// ServiceModule provides the application services.
var ServiceModule = fx.Provide(
	func(log *zap.Logger) *knowledge.Service {
		return knowledge.NewService(nil, nil, nil, log)
	},
	func(aiSvc outbound.AIService, vectors outbound.VectorIndex, log *zap.Logger) *personaapp.Service {
		return personaapp.NewService(nil, aiSvc, vectors, log)
	},
	memoryapp.NewService,
	recommend.NewOrchestrator,
	recommend.NewGenerator,
	recommend.NewPreWarmer,
)

// HTTPModule provides the HTTP server.
var HTTPModule = fx.Provide(
	httpserver.NewServer,
)

// LifecycleModule registers start and stop hooks.
var LifecycleModule = fx.Invoke(RegisterLifecycleHooks)

// RegisterLifecycleHooks starts the HTTP server on application start and
// drains it on stop.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	graph *knowledge.Service,
	collector *monitoring.Collector,
	client *goredis.Client,
	server *httpserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)
			collector.SetGraphSize(graph.Size())

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := server.Shutdown(ctx); err != nil {
				log.Warn("HTTP server shutdown error", zap.Error(err))
			}
			if client != nil {
				if err := client.Close(); err != nil {
					log.Warn("Redis close error", zap.Error(err))
				}
			}
			log.Info("Application stopped")
			_ = log.Sync()
			return nil
		},
	})
}
