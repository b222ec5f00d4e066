// internal/planner/input.go
package planner

import (
	"encoding/json"

	"transit-report/internal/common/errors"
	"transit-report/internal/common/validation"
	"transit-report/internal/models"
)

// Unknown fields are ignored; every known field is optional.
var inputSchema = validation.MustCompile("create_research_task_input", `{
  "type": "object",
  "properties": {
    "planId": {"type": "string", "maxLength": 128},
    "summary": {"type": "string"},
    "preferred_line": {"type": "string"},
    "preferred_station": {"type": "string"},
    "budget_range": {"type": "string"},
    "commute_preferences": {"type": "string"},
    "lifestyle_preferences": {"type": "array", "items": {"type": "string"}},
    "amenities_desired": {"type": "array", "items": {"type": "string"}},
    "alternative_stations": {"type": "array", "items": {"type": "string"}},
    "alternative_neighborhoods": {"type": "array", "items": {"type": "string"}},
    "neighborhood_likes": {"type": "array", "items": {"type": "string"}},
    "neighborhood_dislikes": {"type": "array", "items": {"type": "string"}},
    "charts": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "chart"],
        "properties": {"id": {"type": "string"}, "chart": {"type": "string"}}
      }
    },
    "stats": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "value"],
        "properties": {"id": {"type": "string"}, "value": {"type": "string"}}
      }
    },
    "subwayLines": {"type": "array", "items": {"type": "string"}}
  }
}`)

// DecodeInput validates raw against the input schema and decodes it.
func DecodeInput(raw []byte) (*models.CreateResearchTaskInput, error) {
	if result := inputSchema.ValidateBytes(raw); !result.Valid {
		return nil, errors.NewInputValidationFailedError(result.Summary())
	}

	var input models.CreateResearchTaskInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, errors.NewInputValidationFailedError(err.Error())
	}
	return &input, nil
}
