// internal/models/slide_job.go
package models

// JobType tags a slide job as a create or delete instruction.
type JobType string

const (
	JobTypeCreate JobType = "create"
	JobTypeDelete JobType = "delete"
)

// JobTool selects the rendering operation for a create job.
type JobTool string

const (
	JobToolText  JobTool = "text"
	JobToolImage JobTool = "image"
)

// JobParams is the tool-specific payload. Exactly one of Content or URL is meaningful,
// selected by JobTool.
type JobParams struct {
	JobTool JobTool `json:"jobTool"`
	Content string  `json:"content,omitempty"`
	URL     string  `json:"url,omitempty"`
}

// TextParams builds a text payload.
func TextParams(content string) JobParams {
	return JobParams{JobTool: JobToolText, Content: content}
}

// ImageParams builds an image payload.
func ImageParams(url string) JobParams {
	return JobParams{JobTool: JobToolImage, URL: url}
}

// SlideJob writes one content value into one template region.
type SlideJob struct {
	Type                JobType      `json:"type"`
	Parent              ResearchTask `json:"parent"`
	BoundingBox         BoundingBox  `json:"boundingBox"`
	ReferenceElementKey string       `json:"referenceElementKey"`
	JobTool             JobTool      `json:"jobTool"`
	Params              JobParams    `json:"params"`
}

// NewCreateJob addresses a create job at the task's element.
func NewCreateJob(task ResearchTask, params JobParams) *SlideJob {
	return &SlideJob{
		Type:                JobTypeCreate,
		Parent:              task,
		BoundingBox:         task.BoundingBox,
		ReferenceElementKey: task.ReferenceElementKey,
		JobTool:             params.JobTool,
		Params:              params,
	}
}

// DeleteSlideJob clears a template region.
type DeleteSlideJob struct {
	Type                JobType      `json:"type"`
	Parent              ResearchTask `json:"parent"`
	BoundingBox         BoundingBox  `json:"boundingBox"`
	ReferenceElementKey string       `json:"referenceElementKey"`
}

// CreatePlanResult is the response of the plan-compilation entry point.
type CreatePlanResult struct {
	PlanID          string     `json:"planId"`
	TaskCount       int        `json:"taskCount"`
	CreateSlideJobs []SlideJob `json:"createSlideJobs"`
}
