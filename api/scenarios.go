/*
scenarios.go - Demo scenarios for testing and demonstrations

PURPOSE:

	Provides canned policy+claim document pairs that demonstrate specific
	engine behaviors without needing real extracted documents. Each scenario
	is a ready-to-evaluate input pair with the outcome it illustrates.

AVAILABLE SCENARIOS:

	clean-claim:          Every rule passes, claim cleared
	co-payment:           Contractual deduction, cleared with deductions
	expired-policy:       Admission before inception, early termination
	waiting-period:       Claim inside the 30-day initial waiting period
	room-rent-overage:    Proportionate deduction from a 1% room rent cap

HOW SCENARIOS WORK:
 1. GET /api/scenarios lists the catalog
 2. POST /api/scenarios/{id}/run evaluates the pair and records it like
    any other adjudication

NOTE:

	Scenario runs write real history records. Only use in development/demo
	environments.

SEE ALSO:
  - handlers.go: Adjudicate shares the evaluation path
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// =============================================================================
// SCENARIO CATALOG
// =============================================================================

// Scenario is one canned policy+claim pair.
type Scenario struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Expected    string `json:"expected_status"`

	policy string
	claim  string
}

var scenarios = []Scenario{
	{
		ID:          "clean-claim",
		Name:        "Clean Claim",
		Description: "Active policy, admission well past all waiting periods, no caps in play",
		Expected:    "CLEARED",
		policy: `{
			"inception_date": "2024-01-01",
			"policy_status": "active",
			"base_sum_assured": "500000"
		}`,
		claim: `{
			"admission_date": "2024-06-15",
			"condition": "Appendicitis",
			"claim_amount": "80,000"
		}`,
	},
	{
		ID:          "co-payment",
		Name:        "Co-payment Deduction",
		Description: "10% co-payment clause produces a contractual deduction",
		Expected:    "CLEARED_WITH_DEDUCTIONS",
		policy: `{
			"inception_date": "2024-01-01",
			"policy_status": "active",
			"base_sum_assured": "500000",
			"co_payment": "10%"
		}`,
		claim: `{
			"admission_date": "2024-06-15",
			"condition": "Appendicitis",
			"claim_amount": "50,000"
		}`,
	},
	{
		ID:          "expired-policy",
		Name:        "Admission Before Inception",
		Description: "Policy not yet active on the admission date; evaluation terminates early",
		Expected:    "REJECTED",
		policy: `{
			"inception_date": "2024-06-01",
			"policy_status": "active",
			"base_sum_assured": "500000"
		}`,
		claim: `{
			"admission_date": "2024-03-15",
			"condition": "Fever"
		}`,
	},
	{
		ID:          "waiting-period",
		Name:        "Initial Waiting Period",
		Description: "Admission 19 days into the policy, inside the 30-day initial wait",
		Expected:    "REJECTED",
		policy: `{
			"inception_date": "2024-06-01",
			"policy_status": "active",
			"base_sum_assured": "500000"
		}`,
		claim: `{
			"admission_date": "2024-06-20",
			"condition": "Gastritis"
		}`,
	},
	{
		ID:          "room-rent-overage",
		Name:        "Room Rent Overage",
		Description: "Room rent above the 1% daily cap triggers a proportionate deduction",
		Expected:    "CLEARED_WITH_DEDUCTIONS",
		policy: `{
			"inception_date": "2024-01-01",
			"policy_status": "active",
			"base_sum_assured": "500000",
			"room_rent_capping": "1%"
		}`,
		claim: `{
			"admission_date": "2024-06-15",
			"condition": "Appendicitis",
			"hospital_bill": {
				"room_rent": "8,000",
				"procedure": "Appendectomy",
				"procedure_cost": "60,000"
			}
		}`,
	},
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the scenario catalog.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// RunScenario evaluates a canned scenario and records it like any other
// adjudication.
// POST /api/scenarios/{id}/run
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var scenario *Scenario
	for i := range scenarios {
		if scenarios[i].ID == id {
			scenario = &scenarios[i]
			break
		}
	}
	if scenario == nil {
		writeError(w, http.StatusNotFound, "Scenario not found", nil)
		return
	}

	h.adjudicateDocuments(w, r, []byte(scenario.policy), []byte(scenario.claim))
}
