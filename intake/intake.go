/*
Package intake converts extracted JSON documents into engine inputs.

PURPOSE:

	Upstream extraction (LLM-backed, OCR-fed) produces JSON whose field types
	are unreliable: amounts arrive as numbers or as strings with thousands
	separators, percentages carry "%" suffixes, booleans are sometimes the
	strings "true"/"yes". This package absorbs that noise once, at the
	boundary, and hands the engine clean PolicyData/ClaimData.

TOLERANCE RULES:
  - Any scalar field accepts JSON string, number, bool, or null
  - Currency fields accept "12,500", "Rs. 12500", 12500 and 12500.0
  - Capping fields additionally accept "1%", "at actuals"
  - Bare numbers in room rent, ICU and co-payment caps are percentages;
    policy wording expresses these as a share of the sum assured (or the
    claim amount) and the "%" sign is frequently dropped in extraction
  - Unparsable capping/amount text is recorded on PolicyData as malformed
    so the relevant rule resolves it to a low-confidence rejection
  - Unknown JSON fields are ignored

USAGE:

	policy, err := intake.ParsePolicy(policyJSON)
	claim, err := intake.ParseClaim(claimJSON)
	report, err := engine.New().Evaluate(policy, claim)

SEE ALSO:
  - engine/policy.go: field semantics and malformed-field tracking
*/
package intake

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/clearclaim/claims-engine/engine"
)

// =============================================================================
// FLEXIBLE SCALAR - string | number | bool | null
// =============================================================================

// flexValue is a JSON scalar captured as text regardless of its JSON type.
type flexValue string

func (f *flexValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexValue(strings.TrimSpace(v))
		return nil
	}
	// Numbers and booleans keep their literal text.
	*f = flexValue(s)
	return nil
}

func (f flexValue) empty() bool { return f == "" }

func (f flexValue) isZero() bool {
	return f == "" || f == "0" || f == "0.0" || strings.EqualFold(string(f), "null")
}

func (f flexValue) bool() bool {
	switch strings.ToLower(string(f)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

func (f flexValue) int() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(f)))
	if err != nil {
		return 0
	}
	return n
}

// =============================================================================
// POLICY DOCUMENT
// =============================================================================

// PolicyDocument mirrors the extracted policy JSON.
type PolicyDocument struct {
	InceptionDate   flexValue `json:"inception_date"`
	PolicyStartDate flexValue `json:"policy_start_date"`
	PolicyStatus    flexValue `json:"policy_status"`
	GracePeriod     flexValue `json:"grace_period"`
	LastPaymentDate flexValue `json:"last_payment_date"`
	BaseSumAssured  flexValue `json:"base_sum_assured"`

	RoomRentCapping         flexValue `json:"room_rent_capping"`
	ICUCapping              flexValue `json:"icu_capping"`
	CoPayment               flexValue `json:"co_payment"`
	CataractCapping         flexValue `json:"cataract_capping"`
	HerniaCapping           flexValue `json:"hernia_capping"`
	JointReplacementCapping flexValue `json:"joint_replacement_capping"`
	BariatricCapping        flexValue `json:"bariatric_obesity_surgery_capping"`
}

// ParsePolicy decodes an extracted policy document. The error covers JSON
// syntax only; field-level noise is absorbed or recorded as malformed.
func ParsePolicy(data []byte) (*engine.PolicyData, error) {
	var doc PolicyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("intake: invalid policy document: %w", err)
	}

	policy := &engine.PolicyData{
		InceptionDate:   string(doc.InceptionDate),
		PolicyStartDate: string(doc.PolicyStartDate),
		PolicyStatus:    string(doc.PolicyStatus),
		GracePeriodDays: doc.GracePeriod.int(),
		LastPaymentDate: string(doc.LastPaymentDate),
	}

	if !doc.BaseSumAssured.isZero() {
		if m, ok := engine.ParseMoney(string(doc.BaseSumAssured)); ok {
			policy.BaseSumAssured = m
		} else {
			policy.MarkMalformed("baseSumAssured", string(doc.BaseSumAssured))
		}
	}

	caps := []struct {
		field string
		raw   flexValue
		dst   *engine.CappingValue
		// percentField marks caps whose policy wording is always a share
		// of a base figure, so a bare number means percent ("10" == "10%").
		// Sub-limit caps stay absolute currency amounts.
		percentField bool
	}{
		{"roomRentCapping", doc.RoomRentCapping, &policy.RoomRentCapping, true},
		{"icuCapping", doc.ICUCapping, &policy.ICUCapping, true},
		{"coPayment", doc.CoPayment, &policy.CoPayment, true},
		{"cataractCapping", doc.CataractCapping, &policy.CataractCapping, false},
		{"herniaCapping", doc.HerniaCapping, &policy.HerniaCapping, false},
		{"jointReplacementCapping", doc.JointReplacementCapping, &policy.JointReplacementCapping, false},
		{"bariatricCapping", doc.BariatricCapping, &policy.BariatricCapping, false},
	}
	for _, c := range caps {
		value, ok := engine.ParseCapping(string(c.raw))
		if !ok {
			policy.MarkMalformed(c.field, string(c.raw))
			continue
		}
		if c.percentField && value.Kind == engine.CapAbsolute {
			value.Kind = engine.CapPercentage
		}
		*c.dst = value
	}

	return policy, nil
}

// =============================================================================
// CLAIM DOCUMENT
// =============================================================================

// ClaimDocument mirrors the extracted claim JSON.
type ClaimDocument struct {
	AdmissionDate flexValue `json:"admission_date"`
	ClaimAmount   flexValue `json:"claim_amount"`
	Condition     flexValue `json:"condition"`
	PatientSex    flexValue `json:"patient_sex"`

	HospitalBill *struct {
		RoomRent      flexValue            `json:"room_rent"`
		ICUCharges    flexValue            `json:"icu_charges"`
		Procedure     flexValue            `json:"procedure"`
		ProcedureCost flexValue            `json:"procedure_cost"`
		ItemizedBill  map[string]flexValue `json:"itemized_bill"`
	} `json:"hospital_bill"`

	DischargeSummary *struct {
		Procedure flexValue `json:"procedure"`
		IsDaycare flexValue `json:"is_daycare"`
	} `json:"discharge_summary"`
}

// ParseClaim decodes an extracted claim document.
func ParseClaim(data []byte) (*engine.ClaimData, error) {
	var doc ClaimDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("intake: invalid claim document: %w", err)
	}

	claim := &engine.ClaimData{
		AdmissionDate: string(doc.AdmissionDate),
		Condition:     string(doc.Condition),
		PatientSex:    engine.ParsePatientSex(string(doc.PatientSex)),
	}

	if !doc.ClaimAmount.empty() {
		if m, ok := engine.ParseMoney(string(doc.ClaimAmount)); ok {
			claim.ClaimAmount = &m
		}
	}

	if doc.HospitalBill != nil {
		bill := &engine.HospitalBill{
			Procedure:     string(doc.HospitalBill.Procedure),
			RoomRent:      parseAmount(doc.HospitalBill.RoomRent),
			ICUCharges:    parseAmount(doc.HospitalBill.ICUCharges),
			ProcedureCost: parseAmount(doc.HospitalBill.ProcedureCost),
		}
		if len(doc.HospitalBill.ItemizedBill) > 0 {
			bill.ItemizedBill = make(map[string]engine.Money, len(doc.HospitalBill.ItemizedBill))
			for item, raw := range doc.HospitalBill.ItemizedBill {
				bill.ItemizedBill[item] = parseAmount(raw)
			}
		}
		claim.HospitalBill = bill
	}

	if doc.DischargeSummary != nil {
		claim.DischargeSummary = &engine.DischargeSummary{
			Procedure: string(doc.DischargeSummary.Procedure),
			IsDaycare: doc.DischargeSummary.IsDaycare.bool(),
		}
	}

	return claim, nil
}

// parseAmount reads a currency field, treating unparsable text as zero.
func parseAmount(raw flexValue) engine.Money {
	m, ok := engine.ParseMoney(string(raw))
	if !ok {
		return engine.Money{}
	}
	return m
}
