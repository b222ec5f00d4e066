// internal/planner/materializer.go
package planner

import (
	"strings"

	"transit-report/internal/common/errors"
	"transit-report/internal/layout"
	"transit-report/internal/models"
)

// TextFitter chooses the value and font size for a text box.
type TextFitter interface {
	FitText(text string, box models.BoundingBox) layout.FitResult
}

// Materializer turns dispatched slide jobs into concrete slide elements.
type Materializer struct {
	fitter      TextFitter
	insetMargin float64
}

func NewMaterializer(fitter TextFitter, insetMargin float64) *Materializer {
	return &Materializer{fitter: fitter, insetMargin: insetMargin}
}

// Materialize builds the element set for planID, preserving job order within each kind.
func (m *Materializer) Materialize(planID string, jobs []models.SlideJob) (models.ElementSet, error) {
	set := models.ElementSet{
		PlanID:        planID,
		TextElements:  []models.TextSlideElement{},
		ImageElements: []models.ImageSlideElement{},
	}

	for _, job := range jobs {
		margin := m.marginFor(job.Parent)

		switch job.JobTool {
		case models.JobToolText:
			box := layout.Inset(job.BoundingBox, margin)
			fit := m.fitter.FitText(job.Params.Content, box)
			set.TextElements = append(set.TextElements, models.TextSlideElement{
				BoundingBox: box,
				Value:       fit.Value,
				FontSize:    fit.FontSize,
				FontStyle:   layout.DefaultFontStyle(),
			})
		case models.JobToolImage:
			set.ImageElements = append(set.ImageElements, m.imageElements(job, margin)...)
		default:
			return models.ElementSet{}, errors.NewUnsupportedJobToolError(string(job.JobTool))
		}
	}

	return set, nil
}

// imageElements fills one box, or a row of slots when the task asks for more than one.
func (m *Materializer) imageElements(job models.SlideJob, margin float64) []models.ImageSlideElement {
	slots := job.Parent.Slots
	if slots <= 1 {
		return []models.ImageSlideElement{{
			BoundingBox: layout.Inset(job.BoundingBox, margin),
			Value:       job.Params.URL,
		}}
	}

	urls := strings.Fields(job.Params.URL)
	if len(urls) > slots {
		urls = urls[:slots]
	}

	elements := make([]models.ImageSlideElement, 0, len(urls))
	for i, url := range urls {
		elements = append(elements, models.ImageSlideElement{
			BoundingBox: layout.SplitHorizontallyWithMargin(job.BoundingBox, i, slots, margin),
			Value:       url,
		})
	}
	return elements
}

func (m *Materializer) marginFor(task models.ResearchTask) float64 {
	if task.Inset != nil {
		return *task.Inset
	}
	return m.insetMargin
}
