package validation

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"age":       {Type: "integer", Minimum: Float64Ptr(18), Maximum: Float64Ptr(75)},
			"rate":      {Type: "number", Minimum: Float64Ptr(5), Maximum: Float64Ptr(30)},
			"ownership": {Type: "string", Enum: []string{"OWN", "RENT"}},
			"note":      {Type: "string", MaxLength: IntPtr(5)},
		},
		Required: []string{"age", "rate", "ownership"},
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name      string
		input     map[string]interface{}
		valid     bool
		errFields []string
	}{
		{
			name:  "valid json numbers",
			input: map[string]interface{}{"age": 30.0, "rate": 15.5, "ownership": "OWN"},
			valid: true,
		},
		{
			name:  "valid go ints",
			input: map[string]interface{}{"age": 30, "rate": int64(15), "ownership": "RENT"},
			valid: true,
		},
		{
			name:      "fractional integer",
			input:     map[string]interface{}{"age": 30.5, "rate": 15.0, "ownership": "OWN"},
			errFields: []string{"age"},
		},
		{
			name:      "out of range",
			input:     map[string]interface{}{"age": 17.0, "rate": 30.01, "ownership": "OWN"},
			errFields: []string{"age", "rate"},
		},
		{
			name:      "bad enum",
			input:     map[string]interface{}{"age": 30.0, "rate": 15.0, "ownership": "CASTLE"},
			errFields: []string{"ownership"},
		},
		{
			name:      "missing and extra",
			input:     map[string]interface{}{"age": 30.0, "rate": 15.0, "loan_status": 1.0},
			errFields: []string{"ownership", "loan_status"},
		},
		{
			name:      "wrong type",
			input:     map[string]interface{}{"age": "thirty", "rate": 15.0, "ownership": "OWN"},
			errFields: []string{"age"},
		},
		{
			name:      "too long",
			input:     map[string]interface{}{"age": 30.0, "rate": 15.0, "ownership": "OWN", "note": "abcdef"},
			errFields: []string{"note"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(tt.input, testSchema())
			assert.Equal(t, tt.valid, result.Valid, result.GetErrorMessages())
			for _, f := range tt.errFields {
				assert.True(t, result.HasErrors(f), "expected error on %s", f)
			}
		})
	}
}

func TestValidateInput_BoundsAreInclusive(t *testing.T) {
	for _, age := range []float64{18, 75} {
		result := ValidateInput(map[string]interface{}{"age": age, "rate": 5.0, "ownership": "OWN"}, testSchema())
		assert.True(t, result.Valid, "age %v", age)
	}
}

func TestValidateInput_JSONNumber(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"age": json.Number("40"), "rate": json.Number("12.5"), "ownership": "OWN",
	}, testSchema())
	assert.True(t, result.Valid, result.GetErrorMessages())
}

func TestValidateActivityNaming(t *testing.T) {
	assert.NoError(t, ValidateActivityNaming("risk.default.assess"))
	assert.Error(t, ValidateActivityNaming("assess-default-risk"))
}

func TestValidateInput_NonFiniteNumbers(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		result := ValidateInput(map[string]interface{}{"age": 30, "rate": v, "ownership": "OWN"}, testSchema())
		require.False(t, result.Valid)
		assert.Equal(t, CodeNotFinite, result.Errors[0].Code)
	}
}

func TestValidateInput_ArrayItems(t *testing.T) {
	schema := JSONSchema{Properties: map[string]Property{"channels": {Type: "array", ItemType: "string"}}}

	assert.True(t, ValidateInput(map[string]interface{}{"channels": []interface{}{"sns", "email"}}, schema).Valid)

	result := ValidateInput(map[string]interface{}{"channels": []interface{}{"sns", 3}}, schema)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "channels[1]", result.Errors[0].Field)
	assert.Equal(t, CodeInvalidItems, result.Errors[0].Code)
	assert.True(t, result.HasErrors("channels"))
}

func TestValidateInput_ErrorsAreOrdered(t *testing.T) {
	result := ValidateInput(map[string]interface{}{"rate": 99.0, "age": 99.0, "ownership": "OWN"}, testSchema())
	require.Len(t, result.Errors, 2)
	assert.Equal(t, []string{"age: value must be <= 75", "rate: value must be <= 30"}, result.GetErrorMessages())
}
