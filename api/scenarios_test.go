/*
scenarios_test.go - Tests for the canned demo scenarios

Every scenario is run through the real handler stack and must land on the
status it advertises.
*/
package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListScenarios(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/scenarios", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []Scenario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, len(scenarios))
	assert.Equal(t, "clean-claim", listed[0].ID)
	assert.NotEmpty(t, listed[0].Description)
}

func TestRunScenario_Unknown(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/no-such/run", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunScenario_OutcomesMatchAdvertised(t *testing.T) {
	router := newTestRouter(t)

	for _, scenario := range scenarios {
		t.Run(scenario.ID, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/scenarios/"+scenario.ID+"/run", "")
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			var dto AdjudicationDTO
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
			assert.Equal(t, scenario.Expected, dto.Report.Status)
		})
	}
}

func TestRunScenario_RecordsHistory(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/expired-policy/run", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/adjudications?status=REJECTED", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []AdjudicationSummaryDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "High", summaries[0].RiskLevel)
}
