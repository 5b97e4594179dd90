package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scheme-finder/internal/api"
	"scheme-finder/internal/catalog"
	"scheme-finder/internal/citizen"
	"scheme-finder/internal/common/aws"
	"scheme-finder/internal/common/camunda"
	"scheme-finder/internal/common/config"
	"scheme-finder/internal/common/database"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/common/observability"
	"scheme-finder/internal/matching"
	"scheme-finder/internal/predictor"
	"scheme-finder/internal/tracker"

	sendrecs "scheme-finder/internal/workers/application/send-recommendations"
	trackapp "scheme-finder/internal/workers/application/track-application"
	matchscore "scheme-finder/internal/workers/scheme/calculate-match-score"
	fetchpred "scheme-finder/internal/workers/scheme/fetch-predictions"
	recommend "scheme-finder/internal/workers/scheme/recommend-schemes"
	validateprofile "scheme-finder/internal/workers/scheme/validate-profile"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const profileCacheTTL = 30 * time.Minute

// retryWithBackoff retries an operation with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = operation()
		if err == nil {
			if attempt > 1 {
				log.Info(fmt.Sprintf("%s succeeded", operationName), zap.Int("attempt", attempt))
			}
			return nil
		}

		if attempt < maxRetries {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("retry_in", delay),
				zap.Error(err))
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting scheme-finder worker manager",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("catalogSource", cfg.Catalog.Source))

	obs := observability.New(cfg.App.Name, cfg.Tracing)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var e error
		zeebe, e = camunda.NewClient(cfg.Camunda)
		return e
	}, 5, 2*time.Second, zapLog, "Zeebe connection")
	if err != nil {
		zapLog.Fatal("Failed to connect to Zeebe", zap.Error(err))
	}
	zapLog.Info("Connected to Zeebe", zap.String("address", cfg.Camunda.BrokerAddress))

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("Failed to create Postgres client", zap.Error(err))
	}
	defer pg.Close()
	err = retryWithBackoff(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return pg.Ping(pingCtx)
	}, 5, 2*time.Second, zapLog, "Postgres connection")
	if err != nil {
		zapLog.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	if err := database.EnsureSchema(ctx, pg.DB); err != nil {
		zapLog.Fatal("Failed to apply Postgres schema", zap.Error(err))
	}
	zapLog.Info("Connected to Postgres")

	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("Failed to create Redis client", zap.Error(err))
	}
	defer rdb.Close()
	err = retryWithBackoff(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return rdb.Ping(pingCtx)
	}, 3, time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	zapLog.Info("Connected to Redis", zap.String("address", cfg.Database.Redis.Address))

	source, err := catalogSource(ctx, cfg, pg, rdb.Client, log, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to configure scheme catalog", zap.Error(err))
	}
	store := catalog.NewStore(source, log)
	err = retryWithBackoff(func() error {
		_, e := store.Reload(ctx)
		return e
	}, 3, 2*time.Second, zapLog, "Catalog load")
	if err != nil {
		zapLog.Fatal("Failed to load scheme catalog", zap.Error(err))
	}
	go store.Refresh(ctx, config.GetDuration(cfg.Catalog.RefreshInterval))

	engine := matching.NewEngine()
	profiles := citizen.NewProfileStore(pg.DB, rdb.Client, profileCacheTTL, log)
	applications := tracker.NewRepository(pg.DB, log)
	predictions := predictor.NewClient(cfg.Predictor, log)

	registry := camunda.NewRegistry(zeebe.Zeebe(), obs, log)

	registry.Start(validateprofile.TaskType, config.GetWorkerConfig(cfg, validateprofile.TaskType),
		validateprofile.NewHandler(validateprofile.LoadConfig(), profiles, log).Handle)

	registry.Start(matchscore.TaskType, config.GetWorkerConfig(cfg, matchscore.TaskType),
		matchscore.NewHandler(matchscore.LoadConfig(), store, profiles, log).Handle)

	registry.Start(recommend.TaskType, config.GetWorkerConfig(cfg, recommend.TaskType),
		recommend.NewHandler(recommend.LoadConfig(), store, engine, profiles, rdb.Client, log).Handle)

	registry.Start(fetchpred.TaskType, config.GetWorkerConfig(cfg, fetchpred.TaskType),
		fetchpred.NewHandler(fetchpred.LoadConfig(), predictions, store, log).Handle)

	registry.Start(trackapp.TaskType, config.GetWorkerConfig(cfg, trackapp.TaskType),
		trackapp.NewHandler(trackapp.LoadConfig(), applications, log).Handle)

	if config.IsWorkerEnabled(cfg, sendrecs.TaskType) {
		sendCfg := sendrecs.LoadConfig()
		sendCfg.EmailEnabled = cfg.Notifications.Email.Enabled
		sendCfg.SMSEnabled = cfg.Notifications.SMS.Enabled

		var mailer sendrecs.EmailSender
		if sendCfg.EmailEnabled {
			m, err := aws.NewSESMailer(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.Email.FromEmail)
			if err != nil {
				zapLog.Fatal("Failed to create SES mailer", zap.Error(err))
			}
			mailer = m
		}
		var texter sendrecs.SMSSender
		if sendCfg.SMSEnabled {
			t, err := aws.NewSNSTexter(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.SMS.SenderID)
			if err != nil {
				zapLog.Fatal("Failed to create SNS texter", zap.Error(err))
			}
			texter = t
		}

		registry.Start(sendrecs.TaskType, config.GetWorkerConfig(cfg, sendrecs.TaskType),
			sendrecs.NewHandler(sendCfg, mailer, texter, log).Handle)
	}

	zapLog.Info("Workers registered", zap.Strings("running", registry.Running()))

	server := api.NewServer(api.Deps{
		Catalog:   store,
		Engine:    engine,
		Predictor: predictions,
		Tracker:   applications,
		Checks: map[string]api.Check{
			"postgres": pg.Ping,
			"redis":    rdb.Ping,
			"zeebe":    zeebe.HealthCheck,
		},
		Logger: log,
		Tracer: obs.Tracer(),
	})
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := server.Start(cfg.HTTP.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	registry.Close()
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing telemetry", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// catalogSource builds the configured scheme source, wrapped in the redis
// cache when catalog.cache_ttl is set.
func catalogSource(ctx context.Context, cfg *config.Config, pg *database.PostgresClient, rdb *redis.Client, log logger.Logger, zapLog *zap.Logger) (catalog.Source, error) {
	var source catalog.Source

	switch cfg.Catalog.Source {
	case config.CatalogSourceBuiltin:
		source = catalog.BuiltinSource{}
	case config.CatalogSourceFile:
		source = catalog.FileSource{Path: cfg.Catalog.Path}
	case config.CatalogSourcePostgres:
		source = catalog.NewPostgresSource(pg.DB, cfg.Catalog.Table)
	case config.CatalogSourceElasticsearch:
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, err
		}
		err = retryWithBackoff(func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return es.Ping(pingCtx)
		}, 5, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			return nil, err
		}
		source = catalog.NewElasticsearchSource(es.Client, cfg.Catalog.Index)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}

	if cfg.Catalog.CacheTTL > 0 {
		source = catalog.NewCachedSource(source, rdb, config.GetDuration(cfg.Catalog.CacheTTL), log)
	}
	return source, nil
}
