package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk/form"
)

const artifactsDir = "../../../artifacts"

func defaultVars() map[string]interface{} {
	return form.ToVariables(form.Defaults(nil))
}

func TestPredict_Text(t *testing.T) {
	var out bytes.Buffer
	err := predict(context.Background(), artifactsDir, defaultVars(), false, &out, logger.NewTestLogger(t))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Verdict: HIGH RISK")
	assert.Contains(t, text, "Decision threshold: 20%")
	assert.Contains(t, text, "Model: loan-default-lr-2024.06")
}

func TestPredict_JSON(t *testing.T) {
	vars := defaultVars()
	vars[form.FieldPreviousDefaults] = "Yes"

	var out bytes.Buffer
	require.NoError(t, predict(context.Background(), artifactsDir, vars, true, &out, logger.NewTestLogger(t)))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Equal(t, "LOW_RISK", body["verdict"])
	assert.InDelta(t, 0.375, body["loanPercentIncome"], 1e-9)
}

func TestPredict_Errors(t *testing.T) {
	ctx := context.Background()
	log := logger.NewTestLogger(t)

	err := predict(ctx, t.TempDir(), defaultVars(), false, &bytes.Buffer{}, log)
	assert.Error(t, err, "empty artifact directory")

	vars := defaultVars()
	vars[form.FieldAge] = 12.0
	err = predict(ctx, artifactsDir, vars, false, &bytes.Buffer{}, log)
	var invalid *form.InvalidInputError
	assert.ErrorAs(t, err, &invalid)

	vars = defaultVars()
	vars[form.FieldHomeOwnership] = "CASTLE"
	assert.Error(t, predict(ctx, artifactsDir, vars, false, &bytes.Buffer{}, log))
}
