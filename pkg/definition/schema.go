package definition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// workflowSchema is the JSON Schema every definition document must satisfy
// before decoding. Struct-level validation runs afterwards for the rules a
// schema cannot express.
const workflowSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "$ref": "#/definitions/workflow",
  "definitions": {
    "workflow": {
      "type": "object",
      "properties": {
        "name": {"type": "string", "minLength": 3},
        "description": {"type": "string"},
        "components": {
          "type": "array",
          "minItems": 1,
          "items": {"$ref": "#/definitions/component"}
        }
      },
      "required": ["name", "components"]
    },
    "component": {
      "type": "object",
      "properties": {
        "kind": {"enum": ["task", "task_group", "logic", "trigger", "subflow"]},
        "name": {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "type": {"type": "string"},
        "config": {"type": "object"},
        "inputs": {"type": "object"},
        "mode": {"enum": ["sequential", "parallel"]},
        "tasks": {
          "type": "array",
          "items": {"$ref": "#/definitions/component"}
        },
        "switch": {
          "type": "object",
          "properties": {
            "output": {"type": "string", "minLength": 1},
            "cases": {
              "type": "object",
              "additionalProperties": {
                "type": "array",
                "items": {"$ref": "#/definitions/component"}
              }
            },
            "default": {
              "type": "array",
              "items": {"$ref": "#/definitions/component"}
            }
          },
          "required": ["output", "cases"]
        },
        "components": {
          "type": "array",
          "items": {"$ref": "#/definitions/component"}
        },
        "workflow": {"$ref": "#/definitions/workflow"}
      },
      "required": ["kind", "name"]
    }
  }
}`

// ValidateDocument checks a raw definition document against the workflow
// schema and returns every violation joined into a single error.
func ValidateDocument(doc []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(workflowSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to validate workflow definition: %w", err)
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}

	return errors.New("invalid workflow definition: " + strings.Join(violations, "; "))
}
