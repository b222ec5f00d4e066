// internal/catalog/shapes.go
package catalog

import (
	"encoding/json"
	"os"

	"transit-report/internal/common/errors"
)

// Shape describes one template element that must be filled.
// Value is the element's current text, or "image" for picture shapes.
type Shape struct {
	PrimaryKey string `json:"primary_key"`
	Value      string `json:"value"`
}

// ShapeCatalog is the ordered, read-only list of template elements.
type ShapeCatalog struct {
	shapes []Shape
}

// NewShapeCatalog copies shapes so later edits by the caller do not leak in.
func NewShapeCatalog(shapes []Shape) *ShapeCatalog {
	return &ShapeCatalog{shapes: append([]Shape(nil), shapes...)}
}

// LoadShapes reads and validates a shapes_info document.
func LoadShapes(path string) (*ShapeCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewCatalogLoadFailedError(path, err)
	}
	return ParseShapes(path, data)
}

// ParseShapes validates data against the shape schema and decodes it.
func ParseShapes(source string, data []byte) (*ShapeCatalog, error) {
	if result := shapesSchema.ValidateBytes(data); !result.Valid {
		return nil, errors.NewCatalogInvalidError(source, result.Summary())
	}

	var shapes []Shape
	if err := json.Unmarshal(data, &shapes); err != nil {
		return nil, errors.NewCatalogInvalidError(source, err.Error())
	}
	return &ShapeCatalog{shapes: shapes}, nil
}

// Shapes returns the entries in catalog order.
func (c *ShapeCatalog) Shapes() []Shape {
	return append([]Shape(nil), c.shapes...)
}

// Keys returns the primary keys in catalog order, duplicates included.
func (c *ShapeCatalog) Keys() []string {
	keys := make([]string, len(c.shapes))
	for i, s := range c.shapes {
		keys[i] = s.PrimaryKey
	}
	return keys
}

func (c *ShapeCatalog) Len() int {
	return len(c.shapes)
}
