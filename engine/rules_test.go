package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearclaim/claims-engine/engine"
)

// Evaluator behavior is exercised through Evaluate so the gating stays
// honest; these tests pin down the per-rule tables and arithmetic.

func evaluate(t *testing.T, policy *engine.PolicyData, claim *engine.ClaimData) *engine.RuleReport {
	t.Helper()
	report, err := fixedEngine(2024, time.July, 1).Evaluate(policy, claim)
	require.NoError(t, err)
	return report
}

// =============================================================================
// DAYCARE
// =============================================================================

func TestDaycare_ApprovedProcedures(t *testing.T) {
	for _, procedure := range []string{
		"cataract extraction", "inguinal hernia repair", "tonsillectomy",
		"adenoidectomy", "dental extraction", "upper GI endoscopy",
		"screening colonoscopy", "liver biopsy",
	} {
		claim := &engine.ClaimData{
			HospitalBill:     &engine.HospitalBill{},
			DischargeSummary: &engine.DischargeSummary{Procedure: procedure, IsDaycare: true},
		}
		report := evaluate(t, activePolicy(), claim)

		daycare, ok := report.Result(engine.RuleDaycare)
		require.True(t, ok)
		assert.Equal(t, engine.DecisionPass, daycare.Decision, "procedure %q", procedure)
	}
}

func TestDaycare_NotDaycare_PassesWithoutListCheck(t *testing.T) {
	claim := &engine.ClaimData{
		HospitalBill:     &engine.HospitalBill{},
		DischargeSummary: &engine.DischargeSummary{Procedure: "complex neurosurgery", IsDaycare: false},
	}
	report := evaluate(t, activePolicy(), claim)

	daycare, _ := report.Result(engine.RuleDaycare)
	assert.Equal(t, engine.DecisionPass, daycare.Decision)
}

// =============================================================================
// ROOM RENT / ICU
// =============================================================================

func TestRoomRent_NoCapping_Passes(t *testing.T) {
	claim := &engine.ClaimData{HospitalBill: &engine.HospitalBill{RoomRent: money(90000)}}
	report := evaluate(t, activePolicy(), claim)

	roomRent, _ := report.Result(engine.RuleRoomRentEligibility)
	assert.Equal(t, engine.DecisionPass, roomRent.Decision)
	assert.Contains(t, roomRent.Details, "No Room rent capping applied")
}

func TestRoomRent_AtLimitBoundary_Passes(t *testing.T) {
	// 1% of 500000 = 5000; a bill of exactly 5000 is within the limit.
	policy := activePolicy()
	policy.RoomRentCapping = engine.PercentageCap(1)

	claim := &engine.ClaimData{HospitalBill: &engine.HospitalBill{RoomRent: money(5000)}}
	report := evaluate(t, policy, claim)

	roomRent, _ := report.Result(engine.RuleRoomRentEligibility)
	assert.Equal(t, engine.DecisionPass, roomRent.Decision)
	assert.Nil(t, roomRent.DeductionAmount)
}

func TestICUCapping_AbsoluteCap(t *testing.T) {
	policy := activePolicy()
	policy.ICUCapping = engine.AbsoluteCap(10000)

	claim := &engine.ClaimData{HospitalBill: &engine.HospitalBill{ICUCharges: money(14500)}}
	report := evaluate(t, policy, claim)

	icu, _ := report.Result(engine.RuleICUCapping)
	assert.Equal(t, engine.DecisionDeduct, icu.Decision)
	assert.True(t, icu.Deduction().Equal(money(4500)))
}

func TestRoomRent_PercentageCapWithMalformedSumAssured_Rejects(t *testing.T) {
	// GIVEN a percentage cap whose base sum assured failed to parse
	policy := activePolicy()
	policy.BaseSumAssured = engine.Money{}
	policy.MarkMalformed("baseSumAssured", "five lakh")
	policy.RoomRentCapping = engine.PercentageCap(1)

	claim := &engine.ClaimData{HospitalBill: &engine.HospitalBill{RoomRent: money(5000)}}
	report := evaluate(t, policy, claim)

	// THEN the rule rejects at low confidence instead of capping against zero
	roomRent, _ := report.Result(engine.RuleRoomRentEligibility)
	assert.Equal(t, engine.DecisionReject, roomRent.Decision)
	assert.InDelta(t, 0.3, roomRent.ConfidenceScore, 1e-9)
	assert.Nil(t, roomRent.DeductionAmount)
	assert.Contains(t, roomRent.Details, "five lakh")
}

func TestICUCapping_AbsoluteCapIgnoresMalformedSumAssured(t *testing.T) {
	// An absolute ceiling never touches the sum assured.
	policy := activePolicy()
	policy.BaseSumAssured = engine.Money{}
	policy.MarkMalformed("baseSumAssured", "five lakh")
	policy.ICUCapping = engine.AbsoluteCap(10000)

	claim := &engine.ClaimData{HospitalBill: &engine.HospitalBill{ICUCharges: money(8000)}}
	report := evaluate(t, policy, claim)

	icu, _ := report.Result(engine.RuleICUCapping)
	assert.Equal(t, engine.DecisionPass, icu.Decision)
}

// =============================================================================
// SUB-LIMITS
// =============================================================================

func TestSubLimits_NoMatchingProcedure_Passes(t *testing.T) {
	policy := activePolicy()
	policy.CataractCapping = engine.AbsoluteCap(25000)

	claim := &engine.ClaimData{
		HospitalBill: &engine.HospitalBill{Procedure: "appendectomy", ProcedureCost: money(80000)},
	}
	report := evaluate(t, policy, claim)

	subLimits, _ := report.Result(engine.RuleSubLimits)
	assert.Equal(t, engine.DecisionPass, subLimits.Decision)
	assert.Contains(t, subLimits.Details, "No specific sub-limit")
}

func TestSubLimits_MatchWithoutConfiguredCap_Passes(t *testing.T) {
	claim := &engine.ClaimData{
		HospitalBill: &engine.HospitalBill{Procedure: "bariatric surgery", ProcedureCost: money(300000)},
	}
	report := evaluate(t, activePolicy(), claim)

	subLimits, _ := report.Result(engine.RuleSubLimits)
	assert.Equal(t, engine.DecisionPass, subLimits.Decision)
}

func TestSubLimits_PercentageCapAgainstSumAssured(t *testing.T) {
	// Joint replacement capped at 50% of the 500000 sum assured = 250000.
	policy := activePolicy()
	policy.JointReplacementCapping = engine.PercentageCap(50)

	claim := &engine.ClaimData{
		HospitalBill: &engine.HospitalBill{
			Procedure:     "total knee joint replacement",
			ProcedureCost: money(300000),
		},
	}
	report := evaluate(t, policy, claim)

	subLimits, _ := report.Result(engine.RuleSubLimits)
	assert.Equal(t, engine.DecisionCapLimitApplied, subLimits.Decision)
	assert.True(t, subLimits.Deduction().Equal(money(50000)))
}

func TestSubLimits_PercentageCapWithMalformedSumAssured_Rejects(t *testing.T) {
	policy := activePolicy()
	policy.BaseSumAssured = engine.Money{}
	policy.MarkMalformed("baseSumAssured", "five lakh")
	policy.JointReplacementCapping = engine.PercentageCap(50)

	claim := &engine.ClaimData{
		HospitalBill: &engine.HospitalBill{
			Procedure:     "total knee joint replacement",
			ProcedureCost: money(300000),
		},
	}
	report := evaluate(t, policy, claim)

	subLimits, _ := report.Result(engine.RuleSubLimits)
	assert.Equal(t, engine.DecisionReject, subLimits.Decision)
	assert.InDelta(t, 0.3, subLimits.ConfidenceScore, 1e-9)
	assert.Nil(t, subLimits.DeductionAmount)
}

// =============================================================================
// NON-MEDICAL ITEMS
// =============================================================================

func TestNonMedical_MatchesKeywordsCaseInsensitively(t *testing.T) {
	claim := &engine.ClaimData{
		HospitalBill: &engine.HospitalBill{
			ItemizedBill: map[string]engine.Money{
				"Toiletries Kit":         money(450),
				"TELEPHONE charges":      money(150),
				"TV rental":              money(300),
				"Documentation Charges":  money(100),
				"surgeon fees":           money(45000),
				"operation theatre":      money(20000),
				"Food and beverages":     money(700),
				"administrative charges": money(250),
			},
		},
	}
	report := evaluate(t, activePolicy(), claim)

	nonMedical, _ := report.Result(engine.RuleNonMedical)
	assert.Equal(t, engine.DecisionDeduct, nonMedical.Decision)
	// 450 + 150 + 300 + 100 + 700 + 250
	assert.True(t, nonMedical.Deduction().Equal(money(1950)),
		"deduction = %s", nonMedical.Deduction())
}

func TestNonMedical_AllPayable_Passes(t *testing.T) {
	claim := &engine.ClaimData{
		HospitalBill: &engine.HospitalBill{
			ItemizedBill: map[string]engine.Money{
				"surgeon fees": money(45000),
				"room rent":    money(5000),
			},
		},
	}
	report := evaluate(t, activePolicy(), claim)

	nonMedical, _ := report.Result(engine.RuleNonMedical)
	assert.Equal(t, engine.DecisionPass, nonMedical.Decision)
}

// =============================================================================
// CO-PAYMENT
// =============================================================================

func TestCoPayment_FlatAmount(t *testing.T) {
	policy := activePolicy()
	policy.CoPayment = engine.AbsoluteCap(2500)

	claim := &engine.ClaimData{ClaimAmount: moneyPtr(50000)}
	report := evaluate(t, policy, claim)

	copay, _ := report.Result(engine.RuleCoPayment)
	assert.Equal(t, engine.DecisionDeduct, copay.Decision)
	assert.True(t, copay.Deduction().Equal(money(2500)))
}

func TestCoPayment_ZeroOrUnset_Passes(t *testing.T) {
	claim := &engine.ClaimData{ClaimAmount: moneyPtr(50000)}
	report := evaluate(t, activePolicy(), claim)

	copay, _ := report.Result(engine.RuleCoPayment)
	assert.Equal(t, engine.DecisionPass, copay.Decision)
	assert.Nil(t, copay.DeductionAmount)
}

// =============================================================================
// DISEASE-SPECIFIC WAITING
// =============================================================================

func TestDiseaseSpecific_Table(t *testing.T) {
	cases := []struct {
		condition string
		days      int
		admission string
		decision  engine.Decision
	}{
		{"type 2 diabetes mellitus", 90, "2024-03-01", engine.DecisionReject}, // 60 days
		{"type 2 diabetes mellitus", 90, "2024-06-01", engine.DecisionPass},   // 152 days
		{"essential hypertension", 90, "2024-02-15", engine.DecisionReject},
		{"cardiac arrhythmia", 180, "2024-06-01", engine.DecisionReject},
		{"metastatic cancer", 365, "2024-12-01", engine.DecisionReject},
	}

	for _, tc := range cases {
		eng := &engine.Engine{Now: func() engine.Date { return engine.NewDate(2025, time.January, 1) }}
		report, err := eng.Evaluate(activePolicy(), &engine.ClaimData{
			AdmissionDate: tc.admission,
			Condition:     tc.condition,
		})
		require.NoError(t, err)

		disease, ok := report.Result(engine.RuleDiseaseSpecific)
		require.True(t, ok, "condition %q must trigger the rule", tc.condition)
		assert.Equal(t, tc.decision, disease.Decision, "condition %q admitted %s", tc.condition, tc.admission)
	}
}

func TestDiseaseSpecific_ExactBoundaryPasses(t *testing.T) {
	// 90 days to the day satisfies a 90-day waiting period.
	report := evaluate(t, activePolicy(), &engine.ClaimData{
		AdmissionDate: "2024-03-31", // inception 2024-01-01 + 90 days
		Condition:     "diabetes",
	})

	disease, ok := report.Result(engine.RuleDiseaseSpecific)
	require.True(t, ok)
	assert.Equal(t, engine.DecisionPass, disease.Decision)
}

// =============================================================================
// EXPORTED TABLES
// =============================================================================

func TestCatalog_OrderAndCriticality(t *testing.T) {
	catalog := engine.Catalog()
	require.Len(t, catalog, 11)

	critical := map[engine.RuleKey]bool{}
	for _, entry := range catalog {
		critical[entry.Key] = entry.Critical
		assert.NotEmpty(t, entry.Name)
		assert.NotEmpty(t, entry.Criteria)
		assert.NotEmpty(t, entry.DocumentsRequired)
	}

	for _, key := range []engine.RuleKey{
		engine.RuleInceptionDate, engine.RuleLapseCheck, engine.RuleDaycare,
		engine.RuleInitialWaiting, engine.RuleDiseaseSpecific, engine.RuleMaternity,
	} {
		assert.True(t, critical[key], "%q must be critical", key)
	}
	for _, key := range []engine.RuleKey{
		engine.RuleRoomRentEligibility, engine.RuleICUCapping,
		engine.RuleSubLimits, engine.RuleNonMedical, engine.RuleCoPayment,
	} {
		assert.False(t, critical[key], "%q must not be critical", key)
	}
}

func TestExportedTables_AreCopies(t *testing.T) {
	// Mutating a returned table must not affect engine behavior.
	daycare := engine.ApprovedDaycareProcedures()
	daycare[0] = "neurosurgery"

	claim := &engine.ClaimData{
		HospitalBill:     &engine.HospitalBill{},
		DischargeSummary: &engine.DischargeSummary{Procedure: "neurosurgery", IsDaycare: true},
	}
	report := evaluate(t, activePolicy(), claim)

	result, _ := report.Result(engine.RuleDaycare)
	assert.Equal(t, engine.DecisionReject, result.Decision)
}
