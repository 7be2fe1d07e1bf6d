package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearclaim/claims-engine/engine"
)

func evaluateFixture(t *testing.T) *engine.RuleReport {
	t.Helper()
	eng := engine.New()
	eng.Now = func() engine.Date { return engine.NewDate(2025, 1, 1) }
	amount := engine.NewMoney(50000)
	result, err := eng.Evaluate(
		&engine.PolicyData{
			InceptionDate:  "2024-01-01",
			PolicyStatus:   "active",
			BaseSumAssured: engine.NewMoney(500000),
			CoPayment:      engine.PercentageCap(10),
		},
		&engine.ClaimData{
			AdmissionDate: "2024-06-15",
			Condition:     "Appendicitis",
			ClaimAmount:   &amount,
		},
	)
	require.NoError(t, err)
	return result
}

func TestRenderResult_JSON(t *testing.T) {
	out, err := renderResult(evaluateFixture(t), "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "CLEARED_WITH_DEDUCTIONS", decoded["status"])
	assert.Equal(t, "Medium", decoded["risk_level"])
	assert.Equal(t, "5000", decoded["total_deductions"])

	rules, ok := decoded["rule_results"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, rules)
	first, ok := rules[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "inception_date", first["key"])
	assert.Equal(t, "Pass", first["decision"])
}

func TestRenderResult_Tabular(t *testing.T) {
	result := evaluateFixture(t)

	md, err := renderResult(result, "markdown")
	require.NoError(t, err)
	assert.Contains(t, md, "| SECTION | RULE |")

	txt, err := renderResult(result, "text")
	require.NoError(t, err)
	assert.Contains(t, txt, "DETAILED RULE RESULTS:")
}

func TestRenderResult_UnknownFormat(t *testing.T) {
	_, err := renderResult(evaluateFixture(t), "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
