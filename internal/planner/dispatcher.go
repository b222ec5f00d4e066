// internal/planner/dispatcher.go
package planner

import (
	"context"

	"transit-report/internal/common/errors"
	"transit-report/internal/common/logger"
	"transit-report/internal/common/metrics"
	"transit-report/internal/models"

	"golang.org/x/sync/errgroup"
)

// Renderer is the presentation mutation service.
type Renderer interface {
	UpdateShape(ctx context.Context, referenceElementKey, content string) error
	UpdateImage(ctx context.Context, referenceElementKey, imageURL string) error
}

// Dispatcher sends slide jobs to the renderer concurrently.
type Dispatcher struct {
	renderer       Renderer
	maxConcurrency int
	logger         logger.Logger
}

func NewDispatcher(renderer Renderer, maxConcurrency int, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		renderer:       renderer,
		maxConcurrency: maxConcurrency,
		logger:         log.With(map[string]interface{}{"component": "dispatcher"}),
	}
}

// Dispatch sends every job and waits for all of them. The first failure is returned and
// stops jobs that have not started yet; requests already in flight are left to complete.
func (d *Dispatcher) Dispatch(ctx context.Context, jobs []models.SlideJob) error {
	g, gctx := errgroup.WithContext(ctx)
	if d.maxConcurrency > 0 {
		g.SetLimit(d.maxConcurrency)
	}

	for _, job := range jobs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return ctx.Err()
			}
			err := d.dispatchOne(ctx, job)
			status := "success"
			if err != nil {
				status = "failed"
			}
			metrics.SlideJobsDispatched.WithLabelValues(string(job.JobTool), status).Inc()
			return err
		})
	}

	return g.Wait()
}

func (d *Dispatcher) dispatchOne(ctx context.Context, job models.SlideJob) error {
	if job.Type != models.JobTypeCreate {
		return errors.NewUnsupportedJobTypeError(string(job.Type))
	}

	switch job.JobTool {
	case models.JobToolText:
		return d.renderer.UpdateShape(ctx, job.ReferenceElementKey, job.Params.Content)
	case models.JobToolImage:
		return d.renderer.UpdateImage(ctx, job.ReferenceElementKey, job.Params.URL)
	default:
		return errors.NewUnsupportedJobToolError(string(job.JobTool))
	}
}
