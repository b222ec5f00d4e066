// internal/layout/geometry.go
package layout

import "transit-report/internal/models"

// SplitMargin is the inset applied to every strip produced by SplitHorizontally.
const SplitMargin = 10.0

// Inset shrinks box by margin on every side. Negative resulting sizes are returned as is.
func Inset(box models.BoundingBox, margin float64) models.BoundingBox {
	return models.BoundingBox{
		Left:   box.Left + margin,
		Top:    box.Top + margin,
		Width:  box.Width - 2*margin,
		Height: box.Height - 2*margin,
	}
}

// Strip returns strip index of count equal-width vertical strips of box, without inset.
// A count below 1 is treated as 1.
func Strip(box models.BoundingBox, index, count int) models.BoundingBox {
	if count < 1 {
		count = 1
	}
	width := box.Width / float64(count)
	return models.BoundingBox{
		Left:   box.Left + float64(index)*width,
		Top:    box.Top,
		Width:  width,
		Height: box.Height,
	}
}

// SplitHorizontally returns strip index (0-based) of count strips, inset by SplitMargin.
func SplitHorizontally(box models.BoundingBox, index, count int) models.BoundingBox {
	return SplitHorizontallyWithMargin(box, index, count, SplitMargin)
}

// SplitHorizontallyWithMargin is SplitHorizontally with an explicit margin.
func SplitHorizontallyWithMargin(box models.BoundingBox, index, count int, margin float64) models.BoundingBox {
	return Inset(Strip(box, index, count), margin)
}
