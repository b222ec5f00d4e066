// internal/models/shared.go
package models

// BoundingBox is a region in template coordinate units (EMU for pptx templates).
// Values are never edited in place; derived boxes are new values.
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (b BoundingBox) Right() float64 {
	return b.Left + b.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (b BoundingBox) Bottom() float64 {
	return b.Top + b.Height
}

// IntPtr is a small helper for optional token budgets.
func IntPtr(i int) *int {
	return &i
}
