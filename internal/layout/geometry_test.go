// internal/layout/geometry_test.go
package layout

import (
	"testing"

	"transit-report/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestInset(t *testing.T) {
	tests := []struct {
		name   string
		box    models.BoundingBox
		margin float64
		want   models.BoundingBox
	}{
		{"symmetric", models.BoundingBox{Left: 0, Top: 0, Width: 100, Height: 50}, 10, models.BoundingBox{Left: 10, Top: 10, Width: 80, Height: 30}},
		{"zero margin", models.BoundingBox{Left: 5, Top: 6, Width: 7, Height: 8}, 0, models.BoundingBox{Left: 5, Top: 6, Width: 7, Height: 8}},
		{"degenerate is not rejected", models.BoundingBox{Width: 10, Height: 10}, 10, models.BoundingBox{Left: 10, Top: 10, Width: -10, Height: -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Inset(tt.box, tt.margin)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, tt.box.Width-2*tt.margin, got.Width, 1e-9)
			assert.InDelta(t, tt.box.Height-2*tt.margin, got.Height, 1e-9)
		})
	}
}

func TestInset_DoesNotModifyInput(t *testing.T) {
	box := models.BoundingBox{Left: 1, Top: 1, Width: 100, Height: 100}
	_ = Inset(box, 10)
	assert.Equal(t, models.BoundingBox{Left: 1, Top: 1, Width: 100, Height: 100}, box)
}

func TestStrip_WidthsSumAndOrder(t *testing.T) {
	box := models.BoundingBox{Left: 120, Top: 40, Width: 1000, Height: 200}

	for _, n := range []int{1, 2, 3, 4, 7} {
		sum := 0.0
		prevLeft := box.Left - 1
		for i := 0; i < n; i++ {
			s := Strip(box, i, n)
			sum += s.Width
			assert.Greater(t, s.Left, prevLeft)
			assert.Equal(t, box.Top, s.Top)
			assert.Equal(t, box.Height, s.Height)
			prevLeft = s.Left
		}
		assert.InDelta(t, box.Width, sum, 1e-9, "n=%d", n)
		assert.InDelta(t, box.Right(), Strip(box, n-1, n).Right(), 1e-9)
	}
}

func TestSplitHorizontally(t *testing.T) {
	box := models.BoundingBox{Left: 0, Top: 0, Width: 400, Height: 100}

	got := SplitHorizontally(box, 1, 4)
	assert.Equal(t, models.BoundingBox{Left: 110, Top: 10, Width: 80, Height: 80}, got)

	got = SplitHorizontallyWithMargin(box, 3, 4, 0)
	assert.Equal(t, models.BoundingBox{Left: 300, Top: 0, Width: 100, Height: 100}, got)
}

func TestStrip_NonPositiveCount(t *testing.T) {
	box := models.BoundingBox{Width: 50, Height: 20}
	assert.Equal(t, box, Strip(box, 0, 0))
}

func TestDefaultFontStyle(t *testing.T) {
	style := DefaultFontStyle()
	assert.Equal(t, 400, style.FontWeight)
	assert.Equal(t, "#000000", style.FontColor)
	assert.Equal(t, "Arial", style.FontFamily)
	assert.Equal(t, models.TextAlignLeft, style.TextAlign)
}
