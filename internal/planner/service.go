// internal/planner/service.go
package planner

import (
	"context"

	"transit-report/internal/common/logger"
	"transit-report/internal/common/observability"
	"transit-report/internal/jobstore"
	"transit-report/internal/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Service runs the whole pipeline: claim, compile, resolve, dispatch, hand off.
type Service struct {
	compiler     *Compiler
	resolver     *Resolver
	dispatcher   *Dispatcher
	materializer *Materializer
	store        jobstore.Store
	obs          *observability.Observability
	logger       logger.Logger
}

type ServiceOptions struct {
	Compiler      *Compiler
	Resolver      *Resolver
	Dispatcher    *Dispatcher
	Materializer  *Materializer
	Store         jobstore.Store
	Observability *observability.Observability
	Logger        logger.Logger
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		compiler:     opts.Compiler,
		resolver:     opts.Resolver,
		dispatcher:   opts.Dispatcher,
		materializer: opts.Materializer,
		store:        opts.Store,
		obs:          opts.Observability,
		logger:       opts.Logger.With(map[string]interface{}{"component": "planner"}),
	}
}

// PlanIDFor picks the idempotency key for a request: an explicit key wins over the
// input's planId, and a fresh UUID is used when neither is set.
func PlanIDFor(explicit string, input *models.CreateResearchTaskInput) string {
	if explicit != "" {
		return explicit
	}
	if input != nil && input.PlanID != "" {
		return input.PlanID
	}
	return uuid.NewString()
}

// CreatePlan executes the plan at most once per planID. Any failure aborts the call
// with no partial result; the claim is kept so a failed plan is not re-run.
func (s *Service) CreatePlan(ctx context.Context, planID string, input *models.CreateResearchTaskInput) (result *models.CreatePlanResult, err error) {
	ctx, span := s.obs.StartSpan(ctx, "planner.create_plan", attribute.String("plan.id", planID))
	defer func() { observability.EndSpan(span, err) }()

	log := s.logger.With(map[string]interface{}{"planId": planID})

	if err := s.store.ClaimPlan(ctx, planID); err != nil {
		log.Warn("plan claim rejected", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	tasks := s.compiler.Compile(input)
	span.SetAttributes(attribute.Int("plan.tasks", len(tasks)))

	jobs, err := s.resolver.ResolveAll(ctx, tasks)
	if err != nil {
		log.Error("task resolution failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	if err := s.dispatcher.Dispatch(ctx, jobs); err != nil {
		log.Error("dispatch failed", map[string]interface{}{"error": err.Error(), "jobCount": len(jobs)})
		return nil, err
	}

	if err := s.store.PutJobs(ctx, planID, jobs); err != nil {
		log.Error("failed to store slide jobs", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	log.Info("plan executed", map[string]interface{}{
		"taskCount": len(tasks),
		"jobCount":  len(jobs),
	})

	return &models.CreatePlanResult{
		PlanID:          planID,
		TaskCount:       len(tasks),
		CreateSlideJobs: jobs,
	}, nil
}

// MaterializeElements reads the stored jobs of planID and stores their slide elements.
func (s *Service) MaterializeElements(ctx context.Context, planID string) (set *models.ElementSet, err error) {
	ctx, span := s.obs.StartSpan(ctx, "planner.materialize_elements", attribute.String("plan.id", planID))
	defer func() { observability.EndSpan(span, err) }()

	jobs, err := s.store.GetJobs(ctx, planID)
	if err != nil {
		return nil, err
	}

	elements, err := s.materializer.Materialize(planID, jobs)
	if err != nil {
		return nil, err
	}

	if err := s.store.PutElements(ctx, planID, elements); err != nil {
		return nil, err
	}

	s.logger.Info("slide elements materialized", map[string]interface{}{
		"planId":        planID,
		"textElements":  len(elements.TextElements),
		"imageElements": len(elements.ImageElements),
	})

	return &elements, nil
}

// GetElements returns the element set already materialized for planID.
func (s *Service) GetElements(ctx context.Context, planID string) (*models.ElementSet, error) {
	return s.store.GetElements(ctx, planID)
}
