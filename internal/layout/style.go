// internal/layout/style.go
package layout

import "transit-report/internal/models"

// DefaultFontStyle is applied to text elements that carry no styling of their own.
func DefaultFontStyle() models.FontStyle {
	return models.FontStyle{
		FontWeight: 400,
		FontColor:  "#000000",
		FontFamily: "Arial",
		TextAlign:  models.TextAlignLeft,
	}
}
