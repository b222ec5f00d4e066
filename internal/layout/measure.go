// internal/layout/measure.go
package layout

import (
	"fmt"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Measurer decides whether text set at fontSize points fits a width x height point area.
type Measurer interface {
	Fits(text string, fontSize, width, height float64) bool
}

// FontMeasurer word-wraps text with a real TrueType font and compares the wrapped block to the area.
// It is safe for concurrent use: faces are created per call.
type FontMeasurer struct {
	font        *truetype.Font
	lineSpacing float64
}

// NewFontMeasurer loads the TTF at fontPath, or the embedded Go Regular face when fontPath is empty.
func NewFontMeasurer(fontPath string, lineSpacing float64) (*FontMeasurer, error) {
	fontBytes := goregular.TTF
	if fontPath != "" {
		b, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		fontBytes = b
	}

	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}

	if lineSpacing <= 0 {
		lineSpacing = 1
	}
	return &FontMeasurer{font: parsed, lineSpacing: lineSpacing}, nil
}

func (m *FontMeasurer) Fits(text string, fontSize, width, height float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}

	face := truetype.NewFace(m.font, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)

	lines := dc.WordWrap(text, width)
	for _, line := range lines {
		if w, _ := dc.MeasureString(line); w > width {
			return false
		}
	}

	lineHeight := dc.FontHeight() * m.lineSpacing
	return float64(len(lines))*lineHeight <= height
}
