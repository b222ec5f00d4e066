// internal/workers/report/materialize-elements/handler.go
package materializeelements

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"transit-report/internal/common/camunda"
	"transit-report/internal/common/config"
	"transit-report/internal/common/errors"
	"transit-report/internal/common/logger"
	"transit-report/internal/common/metrics"
	"transit-report/internal/common/observability"
	"transit-report/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

const TaskType = "report-elements-materialize"

// Materializer turns the stored jobs of a plan into slide elements.
type Materializer interface {
	MaterializeElements(ctx context.Context, planID string) (*models.ElementSet, error)
}

type Handler struct {
	config       *Config
	materializer Materializer
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Materializer  Materializer
	Observability *observability.Observability
	Logger        logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Materializer == nil {
		return nil, fmt.Errorf("%s requires a materializer", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       workerConfig,
		materializer: opts.Materializer,
		obs:          opts.Observability,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err, startTime)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err, startTime)
		return
	}

	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromObject(output)
	if err != nil {
		h.fail(ctx, client, job, errors.NewInternalError("failed to encode job output", err), startTime)
		return
	}
	if _, err := request.Send(ctx); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "success")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(startTime), "success")
}

// Execute materializes the elements of input.PlanID and checks them against the output schema.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	set, err := h.materializer.MaterializeElements(ctx, input.PlanID)
	if err != nil {
		return nil, err
	}

	output := &Output{
		PlanID:        set.PlanID,
		TextElements:  set.TextElements,
		ImageElements: set.ImageElements,
	}

	if result := outputSchema.ValidateValue(output); !result.Valid {
		return nil, errors.NewInternalError("materialized elements failed validation", fmt.Errorf("%s", result.Summary()))
	}

	h.logger.Info("elements materialized", map[string]interface{}{
		"planId":        output.PlanID,
		"textElements":  len(output.TextElements),
		"imageElements": len(output.ImageElements),
	})
	return output, nil
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	raw := []byte(job.GetVariables())
	if result := inputSchema.ValidateBytes(raw); !result.Valid {
		return nil, errors.NewInputValidationFailedError(result.Summary())
	}

	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, errors.NewInputValidationFailedError(err.Error())
	}
	if input.PlanID == "" {
		input.PlanID = strconv.FormatInt(job.GetProcessInstanceKey(), 10)
	}
	return &input, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, startTime time.Time) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.CodeOf(err))).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(startTime), "failed")
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

// Register opens the Zeebe job worker. It returns nil when the worker is disabled.
func (h *Handler) Register(client zbc.Client) *camunda.Worker {
	return camunda.StartWorker(client, TaskType, h.config.WorkerConfig(), h.Handle, h.logger)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}
