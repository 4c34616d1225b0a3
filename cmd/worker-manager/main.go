// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/api"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/camunda"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/config"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/database"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/observability"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk/artifactstore"

	nrr "github.com/ansar-mazhar/Loan-Approval-System/internal/workers/communication/notify-risk-review"
	adr "github.com/ansar-mazhar/Loan-Approval-System/internal/workers/risk/assess-default-risk"
	vad "github.com/ansar-mazhar/Loan-Approval-System/internal/workers/risk/validate-applicant-data"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}
	_ = bootLog.Sync()

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output).
		With(zap.String("service", cfg.App.Name), zap.String("environment", cfg.App.Environment))
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...", zap.String("version", cfg.App.Version))

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()
	if err := obs.EnableTracing(cfg.Tracing, cfg.App.Version); err != nil {
		zapLog.Fatal("tracing setup failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Artifact source (Redis only when artifacts live there) ---
	var cmdable redis.Cmdable
	if cfg.Artifacts.Source == config.ArtifactSourceRedis {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.Connect(ctx, cfg.Database.Redis)
			return err
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		cmdable = rdb.Cmdable()
		zapLog.Info("Redis connected successfully")
	}

	source, err := artifactstore.NewSourceFromConfig(cfg.Artifacts, cmdable)
	if err != nil {
		zapLog.Fatal("invalid artifact source", zap.Error(err))
	}

	// --- Load the model bundle; the process does not start without it ---
	bundle, err := artifactstore.NewStore(source, log, cfg.Artifacts.ModelVersion).Load(ctx)
	if err != nil {
		zapLog.Fatal("artifact load failed", zap.Error(err))
	}
	assessor := risk.NewAssessor(bundle, log)

	// --- HTTP: health, readiness, metrics and the assessment API ---
	server := api.NewServer(cfg.Server.Address, log, obs)
	server.SetAssessor(assessor)
	go func() {
		if err := server.Start(); err != nil {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Zeebe client ---
	zeebe, err := camunda.NewClientWithConfig(camunda.ClientConfigFrom(cfg.Camunda))
	if err != nil {
		zapLog.Fatal("zeebe client failed", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully", zap.String("gateway", cfg.Camunda.BrokerAddress))

	// --- Workers ---
	manager := camunda.NewWorkerManager(zeebe.GetClient(), zapLog)

	validateHandler, err := vad.NewHandler(vad.HandlerOptions{AppConfig: cfg, Logger: log})
	if err != nil {
		zapLog.Fatal("failed to create validate-applicant-data handler", zap.Error(err))
	}
	manager.Register(vad.TaskType, config.GetWorkerConfig(cfg, vad.TaskType), validateHandler.Handle)

	assessHandler, err := adr.NewHandler(adr.HandlerOptions{
		AppConfig:     cfg,
		Assessor:      assessor,
		Observability: obs,
		Logger:        log,
	})
	if err != nil {
		zapLog.Fatal("failed to create assess-default-risk handler", zap.Error(err))
	}
	manager.Register(adr.TaskType, config.GetWorkerConfig(cfg, adr.TaskType), assessHandler.Handle)

	notifyHandler, err := nrr.NewHandler(nrr.HandlerOptions{AppConfig: cfg, Logger: log})
	if err != nil {
		zapLog.Fatal("failed to create notify-risk-review handler", zap.Error(err))
	}
	manager.Register(nrr.TaskType, config.GetWorkerConfig(cfg, nrr.TaskType), notifyHandler.Handle)

	zapLog.Info("Workers registered", zap.Strings("taskTypes", manager.TaskTypes()))

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	manager.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
