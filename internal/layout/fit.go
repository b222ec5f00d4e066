// internal/layout/fit.go
package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"transit-report/internal/models"
)

var (
	// FontSizes are tried largest first.
	FontSizes = []float64{16, 14, 12, 10}
	// LengthCutoffs are the fractions of the text kept, longest first.
	LengthCutoffs = []float64{1, 0.8, 0.6, 0.5}
)

// FitResult is the chosen value and font size for a text element.
type FitResult struct {
	Value    string  `json:"value"`
	FontSize float64 `json:"fontSize"`
}

// Fitter picks the largest font size, then the longest cutoff, at which text fits a box.
type Fitter struct {
	measurer      Measurer
	unitsPerPoint float64
}

// NewFitter converts template units to points by dividing by unitsPerPoint (12700 for EMU).
func NewFitter(measurer Measurer, unitsPerPoint float64) *Fitter {
	if unitsPerPoint <= 0 {
		unitsPerPoint = 1
	}
	return &Fitter{measurer: measurer, unitsPerPoint: unitsPerPoint}
}

// FitText grid-searches FontSizes x LengthCutoffs. When no combination fits, the smallest
// size with the shortest cutoff is returned.
func (f *Fitter) FitText(text string, box models.BoundingBox) FitResult {
	if strings.TrimSpace(text) == "" {
		return FitResult{Value: text, FontSize: FontSizes[0]}
	}

	width := box.Width / f.unitsPerPoint
	height := box.Height / f.unitsPerPoint

	for _, size := range FontSizes {
		for _, cutoff := range LengthCutoffs {
			candidate := Truncate(text, cutoff)
			if f.measurer.Fits(candidate, size, width, height) {
				return FitResult{Value: candidate, FontSize: size}
			}
		}
	}

	return FitResult{
		Value:    Truncate(text, LengthCutoffs[len(LengthCutoffs)-1]),
		FontSize: FontSizes[len(FontSizes)-1],
	}
}

// Truncate keeps the leading fraction of text, counted in runes, without trailing whitespace.
func Truncate(text string, fraction float64) string {
	if fraction >= 1 {
		return text
	}
	n := utf8.RuneCountInString(text)
	keep := int(float64(n) * fraction)

	i := 0
	for pos := range text {
		if i == keep {
			return strings.TrimRightFunc(text[:pos], unicode.IsSpace)
		}
		i++
	}
	return text
}

