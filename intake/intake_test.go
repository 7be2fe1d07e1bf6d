package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearclaim/claims-engine/engine"
)

func TestParsePolicy_MixedFieldTypes(t *testing.T) {
	// GIVEN a policy document mixing numbers, strings and separators
	data := []byte(`{
		"inception_date": "2024-01-01",
		"policy_status": "active",
		"grace_period": "30",
		"base_sum_assured": "5,00,000",
		"room_rent_capping": "1%",
		"icu_capping": "2%",
		"co_payment": "10%",
		"cataract_capping": "at actuals",
		"hernia_capping": 20000
	}`)

	// WHEN parsing
	policy, err := ParsePolicy(data)
	require.NoError(t, err)

	// THEN every field lands in its engine representation
	assert.Equal(t, "2024-01-01", policy.InceptionDate)
	assert.Equal(t, 30, policy.GracePeriodDays)
	assert.True(t, policy.BaseSumAssured.Equal(mustMoney(t, "500000")))
	assert.Equal(t, engine.CapPercentage, policy.RoomRentCapping.Kind)
	assert.Equal(t, engine.CapPercentage, policy.ICUCapping.Kind)
	assert.Equal(t, engine.CapPercentage, policy.CoPayment.Kind)
	assert.Equal(t, engine.CapUnlimited, policy.CataractCapping.Kind)
	assert.Equal(t, engine.CapAbsolute, policy.HerniaCapping.Kind)
}

func TestParsePolicy_BareNumberPercentFields(t *testing.T) {
	// GIVEN percent-natured caps written without the "%" sign
	data := []byte(`{
		"base_sum_assured": 500000,
		"room_rent_capping": "1",
		"icu_capping": 2.5,
		"co_payment": 10,
		"cataract_capping": 20000
	}`)

	policy, err := ParsePolicy(data)
	require.NoError(t, err)

	// THEN room rent, ICU and co-payment read as percentages
	assert.Equal(t, engine.PercentageCap(1), policy.RoomRentCapping)
	assert.Equal(t, engine.PercentageCap(2.5), policy.ICUCapping)
	assert.Equal(t, engine.PercentageCap(10), policy.CoPayment)
	// AND sub-limit caps stay absolute amounts
	assert.Equal(t, engine.AbsoluteCap(20000), policy.CataractCapping)
}

func TestParsePolicy_NumericGracePeriod(t *testing.T) {
	policy, err := ParsePolicy([]byte(`{"grace_period": 15}`))
	require.NoError(t, err)
	assert.Equal(t, 15, policy.GracePeriodDays)
}

func TestParsePolicy_MalformedCappingRecorded(t *testing.T) {
	// GIVEN a capping value no parser can read
	policy, err := ParsePolicy([]byte(`{"room_rent_capping": "one percent"}`))
	require.NoError(t, err)

	// THEN the raw text is retained for the rule to reject
	raw, ok := policy.MalformedField("roomRentCapping")
	require.True(t, ok)
	assert.Equal(t, "one percent", raw)
	assert.False(t, policy.RoomRentCapping.IsSet())
}

func TestParsePolicy_MalformedSumAssuredRecorded(t *testing.T) {
	policy, err := ParsePolicy([]byte(`{"base_sum_assured": "five lakh"}`))
	require.NoError(t, err)

	raw, ok := policy.MalformedField("baseSumAssured")
	require.True(t, ok)
	assert.Equal(t, "five lakh", raw)
}

func TestParsePolicy_NullAndMissingFields(t *testing.T) {
	// GIVEN nulls and omissions
	policy, err := ParsePolicy([]byte(`{"inception_date": null, "co_payment": null}`))
	require.NoError(t, err)

	// THEN everything resolves to unset without malformed records
	assert.Empty(t, policy.InceptionDate)
	assert.False(t, policy.CoPayment.IsSet())
	_, ok := policy.MalformedField("coPayment")
	assert.False(t, ok)
}

func TestParsePolicy_InvalidJSON(t *testing.T) {
	_, err := ParsePolicy([]byte(`{"inception_date": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid policy document")
}

func TestParseClaim_FullDocument(t *testing.T) {
	data := []byte(`{
		"admission_date": "2024-06-15",
		"claim_amount": "1,25,000",
		"condition": "Cataract surgery",
		"patient_sex": "Female",
		"hospital_bill": {
			"room_rent": 4000,
			"icu_charges": "0",
			"procedure": "Cataract Surgery",
			"procedure_cost": "45,000",
			"itemized_bill": {
				"Toiletries": "500",
				"Surgeon fees": 30000
			}
		},
		"discharge_summary": {
			"procedure": "Cataract Surgery",
			"is_daycare": true
		}
	}`)

	claim, err := ParseClaim(data)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-15", claim.AdmissionDate)
	require.NotNil(t, claim.ClaimAmount)
	assert.True(t, claim.ClaimAmount.Equal(mustMoney(t, "125000")))
	assert.Equal(t, engine.SexFemale, claim.PatientSex)

	require.NotNil(t, claim.HospitalBill)
	assert.True(t, claim.HospitalBill.RoomRent.Equal(mustMoney(t, "4000")))
	assert.True(t, claim.HospitalBill.ProcedureCost.Equal(mustMoney(t, "45000")))
	assert.True(t, claim.HospitalBill.ItemizedBill["Toiletries"].Equal(mustMoney(t, "500")))

	require.NotNil(t, claim.DischargeSummary)
	assert.True(t, claim.DischargeSummary.IsDaycare)
}

func TestParseClaim_DaycareFlagVariants(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`"true"`, true},
		{`"Yes"`, true},
		{`1`, true},
		{`false`, false},
		{`"no"`, false},
		{`null`, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			claim, err := ParseClaim([]byte(`{"discharge_summary": {"is_daycare": ` + tt.raw + `}}`))
			require.NoError(t, err)
			require.NotNil(t, claim.DischargeSummary)
			assert.Equal(t, tt.want, claim.DischargeSummary.IsDaycare)
		})
	}
}

func TestParseClaim_MissingSections(t *testing.T) {
	claim, err := ParseClaim([]byte(`{"admission_date": "2024-06-15"}`))
	require.NoError(t, err)

	assert.Nil(t, claim.ClaimAmount)
	assert.Nil(t, claim.HospitalBill)
	assert.Nil(t, claim.DischargeSummary)
	assert.Equal(t, engine.SexUnknown, claim.PatientSex)
}

func TestParseClaim_UnparsableAmountIsZero(t *testing.T) {
	claim, err := ParseClaim([]byte(`{"hospital_bill": {"room_rent": "complimentary"}}`))
	require.NoError(t, err)
	require.NotNil(t, claim.HospitalBill)
	assert.True(t, claim.HospitalBill.RoomRent.IsZero())
}

func TestBareNumberCoPayment_DeductsPercentageOfClaim(t *testing.T) {
	// GIVEN documents whose co-payment arrives as a bare number
	policy, err := ParsePolicy([]byte(`{
		"inception_date": "2024-01-01",
		"policy_status": "active",
		"base_sum_assured": 500000,
		"co_payment": 10
	}`))
	require.NoError(t, err)
	claim, err := ParseClaim([]byte(`{
		"admission_date": "2024-06-15",
		"claim_amount": 50000
	}`))
	require.NoError(t, err)

	// WHEN adjudicating
	e := engine.New()
	e.Now = func() engine.Date { return engine.NewDate(2025, 1, 1) }
	result, err := e.Evaluate(policy, claim)
	require.NoError(t, err)

	// THEN the deduction is 10% of the claimed amount, not a flat 10
	require.True(t, result.TotalDeductions.Equal(mustMoney(t, "5000")),
		"total deductions %s", result.TotalDeductions)
	for _, r := range result.RuleResults {
		if r.Key == engine.RuleCoPayment {
			assert.Equal(t, engine.DecisionDeduct, r.Decision)
			require.NotNil(t, r.DeductionAmount)
			assert.True(t, r.DeductionAmount.Equal(mustMoney(t, "5000")))
			return
		}
	}
	t.Fatal("co-payment rule not evaluated")
}

func mustMoney(t *testing.T, s string) engine.Money {
	t.Helper()
	m, ok := engine.ParseMoney(s)
	require.True(t, ok, "bad test amount %q", s)
	return m
}
