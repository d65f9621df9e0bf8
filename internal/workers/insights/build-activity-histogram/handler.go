// internal/workers/insights/build-activity-histogram/handler.go
package buildactivityhistogram

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/jonboulle/clockwork"

	"jobhunt-tracker/internal/common/errors"
	"jobhunt-tracker/internal/common/logger"
	"jobhunt-tracker/internal/common/metrics"
	"jobhunt-tracker/internal/models"
	"jobhunt-tracker/internal/tracker/derive"
)

const (
	TaskType = "build-activity-histogram"
)

type RecordSource interface {
	Snapshot() []models.Application
}

type Handler struct {
	config       *Config
	store        RecordSource
	clock        clockwork.Clock
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store RecordSource, clock clockwork.Clock, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
		clock:        clock,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	days := input.Days
	if days == 0 {
		days = h.config.DefaultDays
	}

	loc := h.config.Location
	if loc == nil {
		loc = time.UTC
	}
	today := h.clock.Now().In(loc)

	buckets, err := derive.ActivityHistogram(h.store.Snapshot(), days, today)
	if err != nil {
		return nil, err
	}

	return &Output{
		Days:    days,
		Today:   today.Format(models.DateLayout),
		Buckets: buckets,
		Total:   derive.HistogramTotal(buckets),
	}, nil
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
