// internal/workers/report/create-plan/models.go
package createplan

import "transit-report/internal/models"

// Input is the process variable set: the caller's preference summary plus an optional planId.
type Input struct {
	PlanID   string
	Research *models.CreateResearchTaskInput
}

// Output is written back to the process as variables.
type Output struct {
	PlanID          string            `json:"planId"`
	TaskCount       int               `json:"taskCount"`
	CreateSlideJobs []models.SlideJob `json:"createSlideJobs"`
}
