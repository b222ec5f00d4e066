// internal/workers/report/materialize-elements/models.go
package materializeelements

import "transit-report/internal/models"

type Input struct {
	PlanID string `json:"planId"`
}

// Output is written back to the process as variables.
type Output struct {
	PlanID        string                     `json:"planId"`
	TextElements  []models.TextSlideElement  `json:"textElements"`
	ImageElements []models.ImageSlideElement `json:"imageElements"`
}
