// internal/workers/report/materialize-elements/validation.go
package materializeelements

import "transit-report/internal/common/validation"

// planId is optional: the process instance key stands in for it.
var inputSchema = validation.MustCompile(TaskType+"-input", `{
  "type": "object",
  "properties": {
    "planId": {"type": "string", "minLength": 1, "maxLength": 128}
  }
}`)

var outputSchema = validation.MustCompile(TaskType+"-output", `{
  "type": "object",
  "required": ["planId", "textElements", "imageElements"],
  "properties": {
    "planId": {"type": "string"},
    "textElements": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["boundingBox", "value", "fontSize", "fontWeight", "fontColor", "fontFamily", "textAlign"],
        "properties": {
          "fontSize": {"type": "number", "minimum": 0},
          "textAlign": {"enum": ["left", "center", "right"]}
        }
      }
    },
    "imageElements": {
      "type": "array",
      "items": {"type": "object", "required": ["boundingBox", "value"]}
    }
  }
}`)
