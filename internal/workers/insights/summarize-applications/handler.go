// internal/workers/insights/summarize-applications/handler.go
package summarizeapplications

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"jobhunt-tracker/internal/common/errors"
	"jobhunt-tracker/internal/common/logger"
	"jobhunt-tracker/internal/common/metrics"
	"jobhunt-tracker/internal/models"
	"jobhunt-tracker/internal/tracker/derive"
)

const (
	TaskType = "summarize-applications"

	cacheKeyPrefix = "tracker:summary:"
)

type RecordView interface {
	View() ([]models.Application, string, bool)
}

type Handler struct {
	config       *Config
	store        RecordView
	cache        redis.Cmdable
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. cache may be nil, in which case every
// call derives the summary from the snapshot.
func NewHandler(config *Config, store RecordView, cache redis.Cmdable, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
		cache:        cache,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if job.Variables != "" {
		if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
			h.fail(ctx, client, job, errors.NewParseError(err))
			return
		}
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) Execute(ctx context.Context, _ *Input) (*Output, error) {
	apps, generation, dirty := h.store.View()
	output := &Output{
		Generation: generation,
		IsDirty:    dirty,
	}

	if cached, ok := h.lookup(ctx, generation); ok {
		output.Summary = cached.Summary
		output.StatusCounts = cached.StatusCounts
		output.Distribution = cached.Distribution
		output.Cached = true
		return output, nil
	}

	computed := cachedSummary{
		Summary:      derive.Summarize(apps),
		StatusCounts: derive.CountByStatus(apps),
		Distribution: derive.StatusDistribution(apps),
	}
	h.save(ctx, generation, computed)

	output.Summary = computed.Summary
	output.StatusCounts = computed.StatusCounts
	output.Distribution = computed.Distribution

	h.logger.Debug("summary derived", map[string]interface{}{
		"generation": generation,
		"total":      computed.Summary.Total,
	})
	return output, nil
}

// lookup never fails the job: a cache error is logged and treated as a miss.
func (h *Handler) lookup(ctx context.Context, generation string) (cachedSummary, bool) {
	var cached cachedSummary
	if h.cache == nil {
		return cached, false
	}

	val, err := h.cache.Get(ctx, cacheKeyPrefix+generation).Result()
	switch {
	case err == redis.Nil:
		metrics.SummaryCacheLookups.WithLabelValues("miss").Inc()
		return cached, false
	case err != nil:
		metrics.SummaryCacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("summary cache read failed", map[string]interface{}{
			"error": err.Error(),
		})
		return cached, false
	}

	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		metrics.SummaryCacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("discarding undecodable cached summary", map[string]interface{}{
			"error": err.Error(),
		})
		return cached, false
	}
	metrics.SummaryCacheLookups.WithLabelValues("hit").Inc()
	return cached, true
}

func (h *Handler) save(ctx context.Context, generation string, s cachedSummary) {
	if h.cache == nil {
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, cacheKeyPrefix+generation, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("summary cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}
