// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jobhunt-tracker/internal/common/camunda"
	"jobhunt-tracker/internal/common/config"
	"jobhunt-tracker/internal/common/database"
	"jobhunt-tracker/internal/common/errors"
	"jobhunt-tracker/internal/common/logger"
	"jobhunt-tracker/internal/common/observability"
	"jobhunt-tracker/internal/tracker/blob"
	"jobhunt-tracker/internal/tracker/store"
	"jobhunt-tracker/pkg/registry"

	// Record workers (4)
	car "jobhunt-tracker/internal/workers/records/create-application-record"
	dar "jobhunt-tracker/internal/workers/records/delete-application-record"
	sar "jobhunt-tracker/internal/workers/records/sync-application-records"
	uar "jobhunt-tracker/internal/workers/records/update-application-record"

	// Insight workers (4)
	bah "jobhunt-tracker/internal/workers/insights/build-activity-histogram"
	fa "jobhunt-tracker/internal/workers/insights/filter-applications"
	ldl "jobhunt-tracker/internal/workers/insights/list-document-labels"
	sum "jobhunt-tracker/internal/workers/insights/summarize-applications"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger settings live in the config, so fall back to defaults here
		fallback, _ := logger.New("info", "console", "stdout")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		panic(err)
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("storage", cfg.Storage.Backend),
	)

	configured := make([]string, 0, len(cfg.Workers))
	for name := range cfg.Workers {
		configured = append(configured, name)
	}
	if unknown := registry.Unknown(configured); len(unknown) > 0 {
		zapLog.Warn("configuration names unknown workers", zap.Strings("workers", unknown))
	}

	obs, err := observability.New("worker-manager")
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Zeebe ---
	zeebe, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Storage backend with retry ---
	var (
		backend blob.Blob
		closer  interface{ Close() error }
	)
	err = camunda.Retry(ctx, camunda.DefaultRetryConfig, func(ctx context.Context) error {
		var err error
		backend, closer, err = blob.Open(ctx, cfg)
		return err
	}, func(attempt int, err error, next time.Duration) {
		zapLog.Warn("storage connection failed, retrying...",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Duration("nextRetryIn", next),
		)
	})
	if err != nil {
		zapLog.Fatal("storage failed after retries", zap.Error(err))
	}
	zapLog.Info("Storage connected successfully", zap.String("backend", backend.Backend()))

	records := store.New(backend, log)
	if err := records.Load(ctx); err != nil {
		if !errors.HasCode(err, errors.ErrCodeMalformedPersistedData) {
			zapLog.Fatal("loading applications failed", zap.Error(err))
		}
		// start empty rather than refuse to run; the bad blob is only
		// overwritten by the next successful sync
		zapLog.Error("persisted applications are malformed, starting empty", zap.Error(err))
	}
	zapLog.Info("Applications loaded", zap.Int("count", records.Len()))

	// --- Optional summary cache ---
	var cache redis.Cmdable
	if cfg.Database.Redis.Address != "" {
		rc, err := database.NewRedis(cfg.Database.Redis)
		if err == nil {
			err = rc.Ping(ctx)
		}
		if err != nil {
			zapLog.Warn("summary cache unavailable, continuing without it", zap.Error(err))
		} else {
			defer rc.Close()
			cache = rc.Client
		}
	}

	clock := clockwork.NewRealClock()
	loc := cfg.Tracker.Location()
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	registrations := []struct {
		taskType string
		handler  camunda.JobHandler
	}{
		{car.TaskType, car.NewHandler(&car.Config{Timeout: timeout(car.TaskType), Location: loc}, records, clock, log)},
		{uar.TaskType, uar.NewHandler(&uar.Config{Timeout: timeout(uar.TaskType)}, records, log)},
		{dar.TaskType, dar.NewHandler(&dar.Config{Timeout: timeout(dar.TaskType)}, records, log)},
		{sar.TaskType, sar.NewHandler(&sar.Config{Timeout: timeout(sar.TaskType)}, records, clock, log)},
		{sum.TaskType, sum.NewHandler(&sum.Config{
			Timeout:  timeout(sum.TaskType),
			CacheTTL: time.Duration(cfg.Tracker.StatsCacheTTL) * time.Second,
		}, records, cache, log)},
		{fa.TaskType, fa.NewHandler(&fa.Config{Timeout: timeout(fa.TaskType)}, records, log)},
		{ldl.TaskType, ldl.NewHandler(&ldl.Config{Timeout: timeout(ldl.TaskType)}, records, log)},
		{bah.TaskType, bah.NewHandler(&bah.Config{
			Timeout:     timeout(bah.TaskType),
			DefaultDays: cfg.Tracker.DefaultWindowDays,
			Location:    loc,
		}, records, clock, log)},
	}

	var workers []worker.JobWorker
	for _, r := range registrations {
		w := camunda.StartWorker(zeebe.GetClient(), r.taskType, config.GetWorkerConfig(cfg, r.taskType), r.handler, obs, log)
		if w != nil {
			workers = append(workers, w)
		}
	}
	zapLog.Info("Workers registered", zap.Int("active", len(workers)), zap.Int("total", len(registrations)))

	// --- Health / metrics ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		rctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		body := map[string]interface{}{
			"status":  "ready",
			"records": records.Len(),
			"dirty":   records.Dirty(),
			"time":    time.Now().Format(time.RFC3339),
		}
		if err := zeebe.HealthCheck(rctx); err != nil {
			body["status"] = "not ready"
			body["error"] = err.Error()
			writeStatus(w, http.StatusServiceUnavailable, body)
			return
		}
		writeStatus(w, http.StatusOK, body)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}

	if records.Dirty() {
		if err := records.Persist(shutdownCtx); err != nil {
			zapLog.Error("final sync failed, unsynced changes lost", zap.Error(err))
		} else {
			zapLog.Info("Unsynced changes persisted", zap.Int("count", records.Len()))
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := closer.Close(); err != nil {
		zapLog.Error("Error closing storage", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping metrics exporter", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
