// internal/common/validation/schema.go
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Error codes reported per field.
const (
	CodeRequired     = "REQUIRED_FIELD_MISSING"
	CodeExtraField   = "EXTRA_FIELD"
	CodeInvalidType  = "INVALID_TYPE"
	CodeNotFinite    = "NOT_FINITE"
	CodeMinimum      = "MINIMUM_VIOLATION"
	CodeMaximum      = "MAXIMUM_VIOLATION"
	CodeMinLength    = "MIN_LENGTH_VIOLATION"
	CodeMaxLength    = "MAX_LENGTH_VIOLATION"
	CodeInvalidEnum  = "INVALID_ENUM_VALUE"
	CodeInvalidItems = "INVALID_ARRAY_ITEM"
)

// JSONSchema is the subset of JSON Schema used to check job variables and
// API payloads: a flat object of typed, bounded properties.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
	ItemType    string   `json:"itemType,omitempty"` // element type for arrays
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func fieldError(field, code, format string, args ...interface{}) ValidationError {
	return ValidationError{Field: field, Code: code, Message: fmt.Sprintf(format, args...)}
}

// ValidateInput checks input against schema. Errors are ordered by field name
// so the same input always yields the same report.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	var errs []ValidationError

	for _, name := range schema.Required {
		if _, ok := input[name]; !ok {
			errs = append(errs, fieldError(name, CodeRequired, "required field missing"))
		}
	}

	names := make([]string, 0, len(input))
	for name := range input {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop, known := schema.Properties[name]
		if !known {
			if !schema.AdditionalProperties {
				errs = append(errs, fieldError(name, CodeExtraField, "field not allowed in schema"))
			}
			continue
		}
		errs = append(errs, checkProperty(name, input[name], prop)...)
	}

	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// checkProperty stops at the first type error; bound checks on a value of the
// wrong type only add noise.
func checkProperty(name string, value interface{}, prop Property) []ValidationError {
	if err := checkType(name, value, prop.Type); err != nil {
		return []ValidationError{*err}
	}

	var errs []ValidationError
	switch prop.Type {
	case "number", "integer":
		f, _ := toFloat(value)
		if prop.Minimum != nil && f < *prop.Minimum {
			errs = append(errs, fieldError(name, CodeMinimum, "value must be >= %v", *prop.Minimum))
		}
		if prop.Maximum != nil && f > *prop.Maximum {
			errs = append(errs, fieldError(name, CodeMaximum, "value must be <= %v", *prop.Maximum))
		}
	case "string":
		s := value.(string)
		if prop.MinLength != nil && len(s) < *prop.MinLength {
			errs = append(errs, fieldError(name, CodeMinLength, "value must be at least %d characters", *prop.MinLength))
		}
		if prop.MaxLength != nil && len(s) > *prop.MaxLength {
			errs = append(errs, fieldError(name, CodeMaxLength, "value must be at most %d characters", *prop.MaxLength))
		}
		if len(prop.Enum) > 0 && !contains(prop.Enum, s) {
			errs = append(errs, fieldError(name, CodeInvalidEnum, "value must be one of %v", prop.Enum))
		}
	case "array":
		if prop.ItemType == "" {
			break
		}
		for i, item := range value.([]interface{}) {
			if err := checkType(fmt.Sprintf("%s[%d]", name, i), item, prop.ItemType); err != nil {
				err.Code = CodeInvalidItems
				errs = append(errs, *err)
			}
		}
	}
	return errs
}

func checkType(name string, value interface{}, expected string) *ValidationError {
	mismatch := func() *ValidationError {
		err := fieldError(name, CodeInvalidType, "expected %s, got %T", expected, value)
		return &err
	}

	switch expected {
	case "number", "integer":
		f, ok := toFloat(value)
		if !ok {
			return mismatch()
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			err := fieldError(name, CodeNotFinite, "value must be a finite number")
			return &err
		}
		// JSON decoding yields float64; an integer is any value without a fraction.
		if expected == "integer" && f != math.Trunc(f) {
			err := fieldError(name, CodeInvalidType, "expected integer, got %v", value)
			return &err
		}
	case "string":
		if _, ok := value.(string); !ok {
			return mismatch()
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return mismatch()
		}
	case "object":
		if _, ok := value.(map[string]interface{}); !ok {
			return mismatch()
		}
	case "array":
		if _, ok := value.([]interface{}); !ok {
			return mismatch()
		}
	}
	return nil
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

var activityIDPattern = regexp.MustCompile(`^[a-z]+\.[a-z]+\.[a-z]+$`)

// ValidateActivityNaming checks the domain.subdomain.action form of registry IDs.
func ValidateActivityNaming(activityID string) error {
	if !activityIDPattern.MatchString(activityID) {
		return fmt.Errorf("activity ID %q must follow format: domain.subdomain.action (e.g., risk.default.assess)", activityID)
	}
	return nil
}

// GetErrorMessages returns "field: message" for every error.
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors reports whether field, or an element of it, failed.
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+"[") {
			return true
		}
	}
	return false
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// ToFloat is the numeric coercion used by the validator.
func ToFloat(value interface{}) (float64, bool) {
	return toFloat(value)
}

func Float64Ptr(v float64) *float64 { return &v }

func IntPtr(v int) *int { return &v }
