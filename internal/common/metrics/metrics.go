// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	TasksCompiled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "report_tasks_compiled_total",
			Help: "Research tasks produced by the plan compiler",
		},
	)

	TasksDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_tasks_dropped_total",
			Help: "Shape catalog entries excluded from a plan",
		},
		[]string{"reason"},
	)

	SlideJobsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_slide_jobs_resolved_total",
			Help: "Research tasks resolved, by research type",
		},
		[]string{"research_type"},
	)

	SlideJobsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_slide_jobs_dispatched_total",
			Help: "Slide jobs sent to the rendering service",
		},
		[]string{"job_tool", "status"},
	)

	TextGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "report_text_generation_duration_seconds",
			Help:    "Latency of text generation calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
	)
)
