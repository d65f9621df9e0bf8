// internal/workers/insights/filter-applications/handler.go
package filterapplications

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"jobhunt-tracker/internal/common/errors"
	"jobhunt-tracker/internal/common/logger"
	"jobhunt-tracker/internal/common/metrics"
	"jobhunt-tracker/internal/models"
	"jobhunt-tracker/internal/tracker/derive"
)

const (
	TaskType = "filter-applications"
)

type RecordSource interface {
	Snapshot() []models.Application
}

type Handler struct {
	config       *Config
	store        RecordSource
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store RecordSource, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
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
	query, err := derive.Query{
		Search: input.SearchTerm,
		Status: input.StatusFilter,
		Type:   input.TypeFilter,
		Sort:   derive.SortOrder(input.SortOrder),
	}.Normalize()
	if err != nil {
		return nil, err
	}

	apps := h.store.Snapshot()
	matched := derive.Filter(apps, query)

	h.logger.Debug("applications filtered", map[string]interface{}{
		"matched": len(matched),
		"total":   len(apps),
		"status":  query.Status,
		"type":    query.Type,
	})

	return &Output{
		Applications: matched,
		Count:        len(matched),
		Total:        len(apps),
		StatusFilter: query.Status,
		TypeFilter:   query.Type,
		SortOrder:    string(query.Sort),
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
