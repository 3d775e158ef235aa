// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"career-assessment-workers/internal/common/aws"
	"career-assessment-workers/internal/common/camunda"
	"career-assessment-workers/internal/common/config"
	"career-assessment-workers/internal/common/database"
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/common/observability"
	"career-assessment-workers/internal/engine"
	"career-assessment-workers/internal/reference"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	ma "career-assessment-workers/internal/workers/assessment/match-careers"
	nr "career-assessment-workers/internal/workers/assessment/notify-results"
	sa "career-assessment-workers/internal/workers/assessment/score-assessment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe ---
	zeebe, err := camunda.Connect(ctx, cfg.Camunda, camunda.DefaultRetryConfig, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Redis ---
	var redis *database.RedisClient
	err = camunda.Retry(ctx, camunda.DefaultRetryConfig, log, "Redis connection", func(ctx context.Context) error {
		var err error
		if redis, err = database.NewRedis(cfg.Database.Redis); err != nil {
			return err
		}
		return redis.Ping(ctx)
	})
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- PostgreSQL (postgres norms, notification recipients) ---
	var pg *database.PostgresClient
	if cfg.Reference.NormsSource == config.SourcePostgres || config.IsWorkerEnabled(cfg, nr.TaskType) {
		err = camunda.Retry(ctx, camunda.DefaultRetryConfig, log, "PostgreSQL connection", func(ctx context.Context) error {
			var err error
			if pg, err = database.NewPostgres(cfg.Database.Postgres); err != nil {
				return err
			}
			return pg.Ping(ctx)
		})
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Elasticsearch (career catalog index) ---
	var es *database.ElasticsearchClient
	if cfg.Reference.CatalogSource == config.SourceElasticsearch {
		err = camunda.Retry(ctx, camunda.DefaultRetryConfig, log, "Elasticsearch connection", func(ctx context.Context) error {
			var err error
			if es, err = database.NewElasticsearch(cfg.Database.Elasticsearch); err != nil {
				return err
			}
			return es.Ping(ctx)
		})
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Reference data and engine ---
	sources := reference.Sources{}
	if pg != nil {
		sources.DB = pg.DB
	}
	if es != nil {
		sources.Elasticsearch = es.Client
	}
	norms, catalog, err := reference.Load(ctx, cfg.Reference, sources, log)
	if err != nil {
		zapLog.Fatal("reference data load failed", zap.Error(err))
	}

	eng, err := engine.New(cfg.Engine, norms, catalog, log)
	if err != nil {
		zapLog.Fatal("engine configuration rejected", zap.Error(err))
	}

	// --- Workers ---
	var workers []worker.JobWorker
	register := func(taskType string, handler camunda.HandlerFunc) {
		if w := camunda.StartWorker(zeebe, taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, log); w != nil {
			workers = append(workers, w)
		}
	}

	resultTTL := time.Duration(cfg.Database.Redis.ResultTTL) * time.Second

	scoreCfg := sa.LoadConfig()
	scoreCfg.Timeout = config.GetDuration(config.GetWorkerConfig(cfg, sa.TaskType).Timeout)
	scoreCfg.ResultTTL = resultTTL
	register(sa.TaskType, sa.NewHandler(scoreCfg, eng, redis, log).Handle)

	matchCfg := ma.LoadConfig()
	matchCfg.Timeout = config.GetDuration(config.GetWorkerConfig(cfg, ma.TaskType).Timeout)
	register(ma.TaskType, ma.NewHandler(matchCfg, eng, redis, log).Handle)

	if config.IsWorkerEnabled(cfg, nr.TaskType) {
		notifyCfg := nr.LoadConfig()
		notifyCfg.Timeout = config.GetDuration(config.GetWorkerConfig(cfg, nr.TaskType).Timeout)
		notifyCfg.EmailEnabled = cfg.Notifications.Email.Enabled
		notifyCfg.SMSEnabled = cfg.Notifications.SMS.Enabled

		var email *aws.EmailSender
		var sms *aws.SMSSender
		if notifyCfg.EmailEnabled || notifyCfg.SMSEnabled {
			sesClient, snsClient, err := aws.NewClients(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("aws clients failed", zap.Error(err))
			}
			email = aws.NewEmailSender(sesClient, cfg.Notifications.Email.FromEmail)
			sms = aws.NewSMSSender(snsClient, cfg.Notifications.SMS.SenderID)
		}
		register(nr.TaskType, nr.NewHandler(notifyCfg, pg.DB, email, sms, log).Handle)
	}

	zapLog.Info("Workers registered",
		zap.Int("count", len(workers)),
		zap.String("matchStrategy", eng.Strategy()),
		zap.Int("careers", eng.Catalog().Len()),
		zap.Any("instruments", eng.Instruments()),
	)

	// --- Health & Metrics Server ---
	checks := map[string]func(context.Context) error{
		"zeebe":     zeebe.HealthCheck,
		"redis":     redis.Ping,
		"reference": referenceCheck(eng),
	}
	if pg != nil {
		checks["postgres"] = pg.Ping
	}
	if es != nil {
		checks["elasticsearch"] = es.Ping
	}

	server := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           newHealthMux(checks, cfg.Metrics.Enabled),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
