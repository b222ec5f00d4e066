// internal/planner/resolver.go
package planner

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"transit-report/internal/common/errors"
	"transit-report/internal/common/logger"
	"transit-report/internal/common/metrics"
	"transit-report/internal/generation"
	"transit-report/internal/models"

	"golang.org/x/sync/errgroup"
)

// Resolver turns research tasks into slide jobs. Only text_gen reaches the generator.
type Resolver struct {
	generator         generation.Generator
	generationTimeout time.Duration
	maxConcurrency    int
	logger            logger.Logger
}

// NewResolver builds a resolver. maxConcurrency 0 resolves every task at once.
func NewResolver(generator generation.Generator, generationTimeout time.Duration, maxConcurrency int, log logger.Logger) *Resolver {
	return &Resolver{
		generator:         generator,
		generationTimeout: generationTimeout,
		maxConcurrency:    maxConcurrency,
		logger:            log.With(map[string]interface{}{"component": "resolver"}),
	}
}

// Resolve returns the slide job for task, or nil for image_gen, which has no strategy yet.
func (r *Resolver) Resolve(ctx context.Context, task models.ResearchTask) (*models.SlideJob, error) {
	switch task.ResearchType {
	case models.ResearchTypeImageGen:
		r.logger.Info("image generation not supported, region skipped", map[string]interface{}{
			"referenceElementKey": task.ReferenceElementKey,
		})
		metrics.SlideJobsResolved.WithLabelValues(string(task.ResearchType)).Inc()
		return nil, nil
	case models.ResearchTypeImageGiven:
		metrics.SlideJobsResolved.WithLabelValues(string(task.ResearchType)).Inc()
		return models.NewCreateJob(task, models.ImageParams(task.Prompt)), nil
	case models.ResearchTypeTextGiven, models.ResearchTypeSubwayGen:
		metrics.SlideJobsResolved.WithLabelValues(string(task.ResearchType)).Inc()
		return models.NewCreateJob(task, models.TextParams(task.Prompt)), nil
	case models.ResearchTypeTextGen:
		text, err := r.generate(ctx, task)
		if err != nil {
			return nil, err
		}
		metrics.SlideJobsResolved.WithLabelValues(string(task.ResearchType)).Inc()
		return models.NewCreateJob(task, models.TextParams(text)), nil
	default:
		return nil, errors.NewUnsupportedResearchTypeError(string(task.ResearchType))
	}
}

func (r *Resolver) generate(ctx context.Context, task models.ResearchTask) (string, error) {
	if r.generationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.generationTimeout)
		defer cancel()
	}

	start := time.Now()
	text, err := r.generator.Generate(ctx, generation.Request{
		Prompt:          buildGenerationPrompt(task),
		MaxOutputTokens: task.MaxOutputTokens,
	})
	metrics.TextGenerationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		r.logger.Error("text generation failed", map[string]interface{}{
			"referenceElementKey": task.ReferenceElementKey,
			"error":               err.Error(),
		})
		if stderrors.Is(err, generation.ErrGenerationTimeout) || stderrors.Is(err, context.DeadlineExceeded) {
			return "", errors.NewTextGenerationTimeoutError(task.ReferenceElementKey, err)
		}
		return "", errors.NewTextGenerationFailedError(task.ReferenceElementKey, err)
	}

	return text, nil
}

// buildGenerationPrompt appends the length target to the task prompt.
func buildGenerationPrompt(task models.ResearchTask) string {
	if task.RecommendedOutputTokens == nil {
		return task.Prompt
	}
	return fmt.Sprintf("%s\n\nAim for roughly %d tokens in your response.", task.Prompt, *task.RecommendedOutputTokens)
}

// ResolveAll resolves every task concurrently and returns the non-nil jobs in task order.
// After the first error no further task starts; calls in flight finish, then the error is
// returned and nothing partial is.
func (r *Resolver) ResolveAll(ctx context.Context, tasks []models.ResearchTask) ([]models.SlideJob, error) {
	results := make([]*models.SlideJob, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	if r.maxConcurrency > 0 {
		g.SetLimit(r.maxConcurrency)
	}

	for i, task := range tasks {
		g.Go(func() error {
			if gctx.Err() != nil {
				return ctx.Err()
			}
			job, err := r.Resolve(ctx, task)
			if err != nil {
				return err
			}
			results[i] = job
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	jobs := make([]models.SlideJob, 0, len(results))
	for _, job := range results {
		if job != nil {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}
