/*
Package engine provides the core claim adjudication rule engine.

PURPOSE:

	This package contains the types and algorithms that decide whether an
	insurance claim is payable, partially payable with deductions, or rejected.
	It reproduces the manual work of a claims adjudicator applying a fixed
	rulebook: policy validity checks, benefit limits, co-payment, waiting
	periods, and non-payable line items.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A currency amount backed by decimal.Decimal
  - Decision: Closed set of per-rule outcomes (Pass, Reject, Deduct, ...)
  - Section: Which part of the rulebook a rule belongs to
  - RuleResult: The immutable outcome of a single rule evaluation
  - RuleReport: The aggregated adjudication outcome for one claim

DESIGN PRINCIPLES:
 1. Purity: Evaluate is a pure function of (policy, claim); no I/O, no state
 2. Precision: Uses decimal.Decimal to avoid floating-point money errors
 3. Closed taxonomies: Decision and Section are sum types, not free strings
 4. No crashes on bad data: malformed input becomes a low-confidence Reject

USAGE:

	eng := engine.New()
	report, err := eng.Evaluate(policy, claim)
	if err != nil {
	    // programmer error (nil inputs); never raised for malformed data
	}
	fmt.Println(report.Status, report.TotalDeductions)

SEE ALSO:
  - catalog.go: The ordered rule catalog and engine-owned keyword tables
  - rules.go:   One evaluator per rule id
  - engine.go:  Evaluation order, gating, and early termination
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Currency amount with exact arithmetic
// =============================================================================

// Money is a currency amount. Amounts produced by the engine (deductions,
// limits) are always non-negative; comparisons and arithmetic are exact.
type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money      { return Money{Value: decimal.NewFromFloat(value)} }
func NewMoneyFromInt(value int64) Money { return Money{Value: decimal.NewFromInt(value)} }

// ParseMoney parses a currency amount that may carry thousands separators
// ("12,500") or be empty. Empty and unparsable strings yield (zero, false).
func ParseMoney(s string) (Money, bool) {
	d, err := decimal.NewFromString(stripAmountNoise(s))
	if err != nil {
		return Money{}, false
	}
	return Money{Value: d}, true
}

func (m Money) Zero() Money                  { return Money{} }
func (m Money) Add(b Money) Money            { return Money{Value: m.Value.Add(b.Value)} }
func (m Money) Sub(b Money) Money            { return Money{Value: m.Value.Sub(b.Value)} }
func (m Money) Mul(s decimal.Decimal) Money  { return Money{Value: m.Value.Mul(s)} }
func (m Money) Div(s decimal.Decimal) Money  { return Money{Value: m.Value.Div(s)} }
func (m Money) IsZero() bool                 { return m.Value.IsZero() }
func (m Money) IsPositive() bool             { return m.Value.IsPositive() }
func (m Money) IsNegative() bool             { return m.Value.IsNegative() }
func (m Money) GreaterThan(b Money) bool     { return m.Value.GreaterThan(b.Value) }
func (m Money) LessThan(b Money) bool        { return m.Value.LessThan(b.Value) }
func (m Money) LessThanOrEqual(b Money) bool { return m.Value.LessThanOrEqual(b.Value) }
func (m Money) Equal(b Money) bool           { return m.Value.Equal(b.Value) }
func (m Money) String() string               { return m.Value.String() }

// Percent applies pct as a percentage: m * pct / 100.
func (m Money) Percent(pct decimal.Decimal) Money {
	return Money{Value: m.Value.Mul(pct).Div(decimal.NewFromInt(100))}
}

// =============================================================================
// DECISION - Per-rule outcome taxonomy (closed set)
// =============================================================================

// Decision is the outcome class of a single rule evaluation.
type Decision int

const (
	// DecisionPass: criteria satisfied, no monetary effect.
	DecisionPass Decision = iota

	// DecisionReject: the claim (or line item) must be denied. Always
	// critical for the rules the catalog designates as termination triggers.
	DecisionReject

	// DecisionDeduct: a flat or computed amount is subtracted from the
	// payable amount.
	DecisionDeduct

	// DecisionProportionateDeduction: room-rent overage. Semantically a
	// deduction but kept distinct for reporting.
	DecisionProportionateDeduction

	// DecisionCapLimitApplied: a sub-limit clips the payable procedure cost.
	// Also carries a deduction amount.
	DecisionCapLimitApplied
)

func (d Decision) String() string {
	switch d {
	case DecisionPass:
		return "Pass"
	case DecisionReject:
		return "Reject"
	case DecisionDeduct:
		return "Deduct"
	case DecisionProportionateDeduction:
		return "Proportionate Deduction"
	case DecisionCapLimitApplied:
		return "Cap Limit Applied"
	default:
		return "Unknown"
	}
}

// =============================================================================
// SECTION - Rulebook grouping
// =============================================================================

type Section int

const (
	SectionPolicyValidity Section = iota
	SectionPolicyLimits
	SectionWaitingPeriods
)

func (s Section) String() string {
	switch s {
	case SectionPolicyValidity:
		return "Policy Validity"
	case SectionPolicyLimits:
		return "Policy Limits"
	case SectionWaitingPeriods:
		return "Waiting Periods"
	default:
		return "Unknown"
	}
}

// =============================================================================
// RISK LEVEL AND CLAIM STATUS
// =============================================================================

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

type ClaimStatus string

const (
	StatusCleared               ClaimStatus = "CLEARED"
	StatusClearedWithDeductions ClaimStatus = "CLEARED_WITH_DEDUCTIONS"
	StatusRejected              ClaimStatus = "REJECTED"
)

// =============================================================================
// RULE RESULT - Outcome of a single rule evaluation
// =============================================================================

// RuleResult is the outcome of one rule. It is created once by an evaluator
// and never mutated afterwards.
type RuleResult struct {
	// Key is the catalog key of the rule (e.g. "inception_date").
	Key RuleKey

	// RuleName is the human-readable rule name from the catalog.
	RuleName string

	Section  Section
	Decision Decision

	// CriteriaMet records whether the rule's criteria were satisfied.
	// Note: co-payment records true even though it produces a deduction;
	// a contractual deduction is not a failure.
	CriteriaMet bool

	// ConfidenceScore (0.0-1.0) reflects parse/data quality, not business
	// certainty. Malformed inputs score ~0.3.
	ConfidenceScore float64

	// Details is always non-empty and suitable for direct display.
	Details string

	// DeductionAmount is present only when the decision implies a deduction.
	DeductionAmount *Money
}

// Deduction returns the deduction amount, or zero if the rule produced none.
func (r RuleResult) Deduction() Money {
	if r.DeductionAmount == nil {
		return Money{}
	}
	return *r.DeductionAmount
}

func withDeduction(r RuleResult, amount Money) RuleResult {
	r.DeductionAmount = &amount
	return r
}

// =============================================================================
// RULE REPORT - Aggregated adjudication outcome
// =============================================================================

// RuleReport is the engine's sole output. RuleResults preserves evaluation
// order; on early termination it is a strict prefix of the catalog order.
type RuleReport struct {
	OverallValid      bool
	OverallConfidence float64

	// RuleResults in evaluation order. A slice (not a map) so the
	// catalog-prefix invariant stays observable.
	RuleResults []RuleResult

	TotalDeductions Money
	Recommendations []string
	RiskLevel       RiskLevel
	Status          ClaimStatus
}

// Result looks up a rule result by catalog key.
func (r *RuleReport) Result(key RuleKey) (RuleResult, bool) {
	for _, res := range r.RuleResults {
		if res.Key == key {
			return res, true
		}
	}
	return RuleResult{}, false
}

// Keys returns the evaluated rule keys in evaluation order.
func (r *RuleReport) Keys() []RuleKey {
	keys := make([]RuleKey, len(r.RuleResults))
	for i, res := range r.RuleResults {
		keys[i] = res.Key
	}
	return keys
}
