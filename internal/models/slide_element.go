// internal/models/slide_element.go
package models

type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignCenter TextAlign = "center"
	TextAlignRight  TextAlign = "right"
)

// FontStyle is the styling applied to a materialized text element.
type FontStyle struct {
	FontWeight int       `json:"fontWeight"`
	FontColor  string    `json:"fontColor"`
	FontFamily string    `json:"fontFamily"`
	TextAlign  TextAlign `json:"textAlign"`
}

// TextSlideElement is a text box ready for the presentation renderer.
type TextSlideElement struct {
	BoundingBox BoundingBox `json:"boundingBox"`
	Value       string      `json:"value"`
	FontSize    float64     `json:"fontSize"`
	FontStyle
}

type ImageSlideElement struct {
	BoundingBox BoundingBox `json:"boundingBox"`
	Value       string      `json:"value"`
}

// ElementSet is the output of the materialization stage for one plan.
type ElementSet struct {
	PlanID        string              `json:"planId"`
	TextElements  []TextSlideElement  `json:"textElements"`
	ImageElements []ImageSlideElement `json:"imageElements"`
}
