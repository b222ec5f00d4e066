// internal/catalog/schemas.go
package catalog

import "transit-report/internal/common/validation"

const shapesSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["primary_key"],
    "properties": {
      "primary_key": {"type": "string", "minLength": 1},
      "value": {"type": "string"}
    }
  }
}`

const heuristicsSchemaJSON = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["research", "bounding_box"],
    "properties": {
      "research": {
        "oneOf": [
          {"type": "null"},
          {
            "type": "object",
            "required": ["prompt", "research_type"],
            "properties": {
              "prompt": {"type": "string"},
              "research_type": {"enum": ["image_gen", "image_given", "text_gen", "text_given", "subway_gen"]},
              "max_output_tokens": {"type": "integer", "minimum": 1},
              "recommended_output_tokens": {"type": "integer", "minimum": 1}
            }
          }
        ]
      },
      "bounding_box": {
        "type": "object",
        "required": ["left", "top", "width", "height"],
        "properties": {
          "left": {"type": "number"},
          "top": {"type": "number"},
          "width": {"type": "number"},
          "height": {"type": "number"}
        }
      },
      "layout": {
        "type": "object",
        "properties": {
          "slots": {"type": "integer", "minimum": 1},
          "inset": {"type": "number", "minimum": 0}
        }
      }
    }
  }
}`

var (
	shapesSchema     = validation.MustCompile("shapes_info", shapesSchemaJSON)
	heuristicsSchema = validation.MustCompile("heuristic", heuristicsSchemaJSON)
)
