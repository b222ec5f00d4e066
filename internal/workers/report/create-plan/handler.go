// internal/workers/report/create-plan/handler.go
package createplan

import (
	"context"
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
	"transit-report/internal/planner"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

const TaskType = "report-plan-create"

// Planner runs a plan once per plan id.
type Planner interface {
	CreatePlan(ctx context.Context, planID string, input *models.CreateResearchTaskInput) (*models.CreatePlanResult, error)
}

type Handler struct {
	config       *Config
	planner      Planner
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Planner       Planner
	Observability *observability.Observability
	Logger        logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Planner == nil {
		return nil, fmt.Errorf("%s requires a planner", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       workerConfig,
		planner:      opts.Planner,
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

	h.logger.Info("plan job completed", map[string]interface{}{
		"jobKey":    job.GetKey(),
		"planId":    output.PlanID,
		"taskCount": output.TaskCount,
		"jobCount":  len(output.CreateSlideJobs),
	})

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "success")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(startTime), "success")
}

// Execute runs the plan for input. It is the same path the HTTP API takes.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.planner.CreatePlan(ctx, input.PlanID, input.Research)
	if err != nil {
		return nil, err
	}

	return &Output{
		PlanID:          result.PlanID,
		TaskCount:       result.TaskCount,
		CreateSlideJobs: result.CreateSlideJobs,
	}, nil
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	research, err := planner.DecodeInput([]byte(job.GetVariables()))
	if err != nil {
		return nil, err
	}

	return &Input{
		PlanID:   planIDFor(research, job.GetProcessInstanceKey()),
		Research: research,
	}, nil
}

// planIDFor keys the plan on the process instance unless the process supplies its own id,
// so a redelivered job never re-runs the plan.
func planIDFor(research *models.CreateResearchTaskInput, processInstanceKey int64) string {
	if research.PlanID != "" {
		return research.PlanID
	}
	return strconv.FormatInt(processInstanceKey, 10)
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, startTime time.Time) {
	code := string(errors.CodeOf(err))
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
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
