// internal/planner/materializer_test.go
package planner

import (
	"testing"

	"transit-report/internal/common/errors"
	"transit-report/internal/layout"
	"transit-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedFitter records the boxes it was asked to fit and echoes the text at 12pt.
type fixedFitter struct {
	boxes []models.BoundingBox
}

func (f *fixedFitter) FitText(text string, box models.BoundingBox) layout.FitResult {
	f.boxes = append(f.boxes, box)
	return layout.FitResult{Value: text, FontSize: 12}
}

func imageJob(key, urls string, slots int) models.SlideJob {
	task := models.ResearchTask{
		BoundingBox:         models.BoundingBox{Left: 0, Top: 0, Width: 300, Height: 100},
		ReferenceElementKey: key,
		ResearchType:        models.ResearchTypeImageGiven,
		Slots:               slots,
	}
	return *models.NewCreateJob(task, models.ImageParams(urls))
}

func TestMaterialize_TextElements(t *testing.T) {
	fitter := &fixedFitter{}
	task := createTestTask("t1", models.ResearchTypeTextGiven, "")
	jobs := []models.SlideJob{*models.NewCreateJob(task, models.TextParams("Astoria is quiet."))}

	set, err := NewMaterializer(fitter, 10).Materialize("plan-1", jobs)

	require.NoError(t, err)
	assert.Equal(t, "plan-1", set.PlanID)
	assert.Empty(t, set.ImageElements)
	require.Len(t, set.TextElements, 1)

	el := set.TextElements[0]
	assert.Equal(t, models.BoundingBox{Left: 10, Top: 10, Width: 80, Height: 30}, el.BoundingBox)
	assert.Equal(t, "Astoria is quiet.", el.Value)
	assert.Equal(t, 12.0, el.FontSize)
	assert.Equal(t, layout.DefaultFontStyle(), el.FontStyle)
	assert.Equal(t, []models.BoundingBox{el.BoundingBox}, fitter.boxes)
}

func TestMaterialize_TaskInsetOverridesDefault(t *testing.T) {
	inset := 0.0
	task := createTestTask("t1", models.ResearchTypeTextGiven, "")
	task.Inset = &inset
	jobs := []models.SlideJob{*models.NewCreateJob(task, models.TextParams("x"))}

	set, err := NewMaterializer(&fixedFitter{}, 10).Materialize("p", jobs)

	require.NoError(t, err)
	assert.Equal(t, task.BoundingBox, set.TextElements[0].BoundingBox)
}

func TestMaterialize_SingleImage(t *testing.T) {
	set, err := NewMaterializer(&fixedFitter{}, 10).Materialize("p", []models.SlideJob{imageJob("i1", "https://img/a.png", 0)})

	require.NoError(t, err)
	require.Len(t, set.ImageElements, 1)
	assert.Equal(t, "https://img/a.png", set.ImageElements[0].Value)
	assert.Equal(t, models.BoundingBox{Left: 10, Top: 10, Width: 280, Height: 80}, set.ImageElements[0].BoundingBox)
}

func TestMaterialize_ImageRow(t *testing.T) {
	tests := []struct {
		name      string
		urls      string
		slots     int
		wantCount int
	}{
		{"fewer urls than slots", "https://img/a.png https://img/b.png", 3, 2},
		{"more urls than slots", "a b c", 2, 2},
		{"no urls", "   ", 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := imageJob("row", tt.urls, tt.slots)

			set, err := NewMaterializer(&fixedFitter{}, 10).Materialize("p", []models.SlideJob{job})

			require.NoError(t, err)
			require.Len(t, set.ImageElements, tt.wantCount)
			for i, el := range set.ImageElements {
				assert.Equal(t, layout.SplitHorizontallyWithMargin(job.BoundingBox, i, tt.slots, 10), el.BoundingBox)
			}
		})
	}
}

func TestMaterialize_ImageRowPlacement(t *testing.T) {
	set, err := NewMaterializer(&fixedFitter{}, 10).Materialize("p", []models.SlideJob{imageJob("row", "a b c", 3)})

	require.NoError(t, err)
	require.Len(t, set.ImageElements, 3)
	assert.Equal(t, models.BoundingBox{Left: 110, Top: 10, Width: 80, Height: 80}, set.ImageElements[1].BoundingBox)
	assert.Equal(t, "c", set.ImageElements[2].Value)
}

func TestMaterialize_UnknownTool(t *testing.T) {
	job := *models.NewCreateJob(createTestTask("x", models.ResearchTypeTextGiven, ""), models.JobParams{JobTool: "audio"})

	_, err := NewMaterializer(&fixedFitter{}, 10).Materialize("p", []models.SlideJob{job})

	assert.True(t, errors.HasCode(err, errors.ErrCodeUnsupportedJobTool))
}
