package internal

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const configSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"tool_path": {"type": "string"},
		"log_level": {"type": "string", "enum": ["error", "warn", "warning", "notice", "info", "debug"]},
		"history": {"type": "boolean"},
		"compound": {"type": "boolean"},
		"dirs": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"scripts": {"type": "string"},
				"results": {"type": "string"}
			}
		},
		"watch": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"debounce_ms": {"type": "integer", "minimum": 0},
				"max_wait_ms": {"type": "integer", "minimum": 0},
				"patterns": {"type": "array", "items": {"type": "string", "minLength": 1}}
			}
		}
	}
}`

type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ValidateConfig checks a YAML config document against the config schema.
// The returned error covers documents that are not YAML at all.
func ValidateConfig(data []byte) (ValidationResult, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ValidationResult{}, err
	}
	if doc == nil {
		doc = map[string]any{}
	}

	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("schema validation error: %w", err)
	}

	var errs []string
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return ValidationResult{
		Valid:  result.Valid(),
		Errors: errs,
	}, nil
}

func FormatValidationErrors(result ValidationResult) string {
	if result.Valid {
		return ""
	}
	return strings.Join(result.Errors, "\n")
}
