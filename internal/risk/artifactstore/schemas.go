// internal/risk/artifactstore/schemas.go
package artifactstore

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const modelSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["kind", "n_features", "classes"],
  "properties": {
    "kind": {"enum": ["logistic_regression", "random_forest", "gradient_boosting"]},
    "version": {"type": "string"},
    "n_features": {"type": "integer", "minimum": 1},
    "classes": {"type": "array", "items": {"type": "integer"}, "minItems": 2, "maxItems": 2},
    "coef": {"type": "array", "items": {"type": "number"}, "minItems": 1},
    "intercept": {"type": "number"},
    "base_score": {"type": "number"},
    "trees": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["nodes"],
        "properties": {
          "nodes": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["left", "right"],
              "properties": {
                "feature": {"type": "integer"},
                "threshold": {"type": "number"},
                "left": {"type": "integer"},
                "right": {"type": "integer"},
                "value": {"type": "array", "items": {"type": "number"}}
              }
            }
          }
        }
      }
    }
  },
  "allOf": [
    {
      "if": {"properties": {"kind": {"const": "logistic_regression"}}},
      "then": {"required": ["coef", "intercept"]}
    },
    {
      "if": {"properties": {"kind": {"const": "random_forest"}}},
      "then": {"required": ["trees"]}
    },
    {
      "if": {"properties": {"kind": {"const": "gradient_boosting"}}},
      "then": {"required": ["trees", "base_score"]}
    }
  ]
}`

const scalerSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["feature_names_in", "mean", "scale"],
  "properties": {
    "feature_names_in": {"type": "array", "items": {"type": "string"}, "minItems": 1, "uniqueItems": true},
    "mean": {"type": "array", "items": {"type": "number"}, "minItems": 1},
    "scale": {"type": "array", "items": {"type": "number", "minimum": 0}, "minItems": 1}
  }
}`

const featureNamesSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {"type": "string", "minLength": 1},
  "minItems": 1,
  "uniqueItems": true
}`

const mappingSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "minProperties": 1,
  "additionalProperties": {"type": "number"}
}`

var schemas = map[string]*gojsonschema.Schema{}

func init() {
	for name, src := range map[string]string{
		ModelFile:                   modelSchema,
		ScalerFile:                  scalerSchema,
		FeatureNamesFile:            featureNamesSchema,
		HomeOwnershipMappingFile:    mappingSchema,
		PreviousDefaultsMappingFile: mappingSchema,
	} {
		s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
		if err != nil {
			panic(fmt.Sprintf("artifact schema for %s: %v", name, err))
		}
		schemas[name] = s
	}
}

// validateDocument checks raw JSON against the schema registered for the artifact.
func validateDocument(name string, data []byte) error {
	schema, ok := schemas[name]
	if !ok {
		return fmt.Errorf("no schema for artifact %s", name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("artifact %s is not valid JSON: %w", name, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("artifact %s failed schema validation: %s", name, strings.Join(msgs, "; "))
	}
	return nil
}
