// internal/workers/records/create-application-record/handler.go
package createapplicationrecord

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
	"jobhunt-tracker/internal/common/validation"
	"jobhunt-tracker/internal/models"
)

const (
	TaskType = "create-application-record"
)

// RecordStore is the part of the record store this worker needs.
type RecordStore interface {
	Create(ctx context.Context, app models.Application) (models.Application, error)
	Dirty() bool
}

type Handler struct {
	config       *Config
	store        RecordStore
	clock        clockwork.Clock
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store RecordStore, clock clockwork.Clock, log logger.Logger) *Handler {
	if config.Location == nil {
		config.Location = time.Local
	}
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
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, errors.NewParseError(err))
		return
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

// Execute fills the creation defaults and inserts the record at the head
// of the collection.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	app := input.Application
	if app.DateApplied == "" {
		app.DateApplied = h.clock.Now().In(h.config.Location).Format(models.DateLayout)
	}
	app.ApplyDefaults()

	created, err := h.store.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	h.logger.Info("application record created", map[string]interface{}{
		"applicationId": created.ID,
		"companyName":   created.CompanyName,
		"status":        created.Status,
	})

	if !validation.ValidateURL(created.URL) {
		h.logger.Warn("application url is not an absolute link", map[string]interface{}{
			"applicationId": created.ID,
			"url":           created.URL,
		})
	}

	return &Output{
		ApplicationID: created.ID,
		Application:   created,
		IsDirty:       h.store.Dirty(),
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
