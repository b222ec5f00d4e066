// internal/planner/delete.go
package planner

import "transit-report/internal/models"

// DeleteJobsFor builds a clear-region job for every text task. Image regions are never cleared.
// The result is not dispatched: the renderer exposes no delete operation.
func DeleteJobsFor(tasks []models.ResearchTask) []models.DeleteSlideJob {
	jobs := make([]models.DeleteSlideJob, 0, len(tasks))
	for _, task := range tasks {
		if task.ResearchType.IsImage() {
			continue
		}
		jobs = append(jobs, models.DeleteSlideJob{
			Type:                models.JobTypeDelete,
			Parent:              task,
			BoundingBox:         task.BoundingBox,
			ReferenceElementKey: task.ReferenceElementKey,
		})
	}
	return jobs
}

// AsSlideJob addresses a delete job the way a create job is addressed, for dispatch.
func AsSlideJob(job models.DeleteSlideJob) models.SlideJob {
	return models.SlideJob{
		Type:                job.Type,
		Parent:              job.Parent,
		BoundingBox:         job.BoundingBox,
		ReferenceElementKey: job.ReferenceElementKey,
	}
}
