/*
engine.go - The adjudication orchestrator

PURPOSE:

	Sequences the rule evaluators in catalog order, applies the gating and
	early-termination policy, accumulates deductions, and assembles the final
	RuleReport.

EVALUATION ORDER AND GATING:
 1. Policy Validity (critical):
    inception_date  - only when an admission date is present
    lapse_check     - always
 2. Policy Limits   - only when a hospital bill is present:
    daycare (critical), then room_rent_eligibility, icu_capping,
    sub_limits, non_medical (non-critical, all run, deductions accumulate)
 3. co_payment      - only when a claim amount is present (non-critical)
 4. Waiting Periods - only when an admission date is present:
    initial_waiting, disease_specific, maternity (all critical)

EARLY TERMINATION:

	When a critical rule rejects, evaluation stops: the report keeps the rules
	evaluated so far (a strict prefix of the catalog order) and the deductions
	already accumulated, and is stamped invalid / REJECTED / High risk with a
	termination reason appended to the recommendations.

CONCURRENCY:

	Evaluate holds no shared state; a single Engine may be used from any
	number of goroutines.
*/
package engine

import "fmt"

// =============================================================================
// ENGINE
// =============================================================================

// Engine evaluates claims against policies. The zero value is usable; Now is
// only consulted by the lapse check and defaults to the current day.
type Engine struct {
	// Now supplies the evaluation date. Nil means Today.
	Now func() Date
}

// New returns an Engine evaluating as of the current day.
func New() *Engine { return &Engine{} }

func (e *Engine) asOf() Date {
	if e.Now != nil {
		return e.Now()
	}
	return Today()
}

// =============================================================================
// EVALUATION
// =============================================================================

// run accumulates state for one Evaluate call.
type run struct {
	results         []RuleResult
	totalDeductions Money
	recommendations []string
}

// record appends a result and folds in any deduction it carries.
func (r *run) record(result RuleResult, deductionLabel string) {
	r.results = append(r.results, result)
	if result.DeductionAmount != nil {
		r.totalDeductions = r.totalDeductions.Add(*result.DeductionAmount)
		if deductionLabel != "" {
			r.recommendations = append(r.recommendations,
				fmt.Sprintf("%s deduction: %s", deductionLabel, *result.DeductionAmount))
		}
	}
}

func (r *run) recommend(msg string) {
	r.recommendations = append(r.recommendations, msg)
}

// Evaluate adjudicates one claim against one policy. It returns a typed
// error only for nil inputs; malformed business data always resolves into
// the report itself.
func (e *Engine) Evaluate(policy *PolicyData, claim *ClaimData) (*RuleReport, error) {
	if policy == nil {
		return nil, ErrNilPolicy
	}
	if claim == nil {
		return nil, ErrNilClaim
	}

	r := &run{}

	// --- Policy Validity ---------------------------------------------------

	if claim.AdmissionDate != "" {
		result := evaluateInceptionDate(policy, claim.AdmissionDate)
		r.record(result, "")
		if result.Decision == DecisionReject {
			r.recommend("Policy not active on admission date - claim may be rejected")
			return e.terminate(r, "Policy validity check failed"), nil
		}
	}

	result := evaluateLapseCheck(policy, e.asOf())
	r.record(result, "")
	if result.Decision == DecisionReject {
		r.recommend("Policy is in grace/lapse period - payment required")
		return e.terminate(r, "Policy lapse check failed"), nil
	}

	// --- Policy Limits -----------------------------------------------------

	if claim.HospitalBill != nil {
		result := evaluateDaycare(claim.DischargeSummary)
		r.record(result, "")
		if result.Decision == DecisionReject {
			r.recommend("Daycare procedure not approved - claim may be rejected")
			return e.terminate(r, "Daycare check failed"), nil
		}

		// Non-critical limits: each runs regardless of the others' outcome.
		r.record(evaluateRoomRent(policy, claim.HospitalBill), "Room rent")
		r.record(evaluateICUCapping(policy, claim.HospitalBill), "ICU capping")
		r.record(evaluateSubLimits(policy, claim.HospitalBill), "Sub-limit")
		r.record(evaluateNonMedical(claim.HospitalBill), "Non-medical items")
	}

	// --- Co-payment --------------------------------------------------------

	// A zero claimed amount means no figure was extracted; there is nothing
	// to apply a co-payment against.
	if claim.ClaimAmount != nil && !claim.ClaimAmount.IsZero() {
		r.record(evaluateCoPayment(policy, *claim.ClaimAmount), "Co-payment")
	}

	// --- Waiting Periods ---------------------------------------------------

	if claim.AdmissionDate != "" {
		result := evaluateInitialWaiting(policy, claim.AdmissionDate)
		r.record(result, "")
		if result.Decision == DecisionReject {
			r.recommend(fmt.Sprintf("Waiting period not satisfied: %s", result.Details))
			return e.terminate(r, "Waiting period check failed: Initial Waiting"), nil
		}

		if result, applies := evaluateDiseaseSpecific(policy, claim.AdmissionDate, claim.Condition); applies {
			r.record(result, "")
			if result.Decision == DecisionReject {
				r.recommend(fmt.Sprintf("Waiting period not satisfied: %s", result.Details))
				return e.terminate(r, "Waiting period check failed: Disease Specific"), nil
			}
		}

		if result, applies := evaluateMaternity(policy, claim.AdmissionDate, claim.Condition, claim.PatientSex); applies {
			r.record(result, "")
			if result.Decision == DecisionReject {
				r.recommend(fmt.Sprintf("Waiting period not satisfied: %s", result.Details))
				return e.terminate(r, "Waiting period check failed: Maternity"), nil
			}
		} else if isMaternityRelated(claim.Condition) && claim.PatientSex == SexUnknown {
			r.recommend("Patient sex unknown - maternity waiting period not evaluated")
		}
	}

	return e.finalize(r), nil
}

// =============================================================================
// AGGREGATION
// =============================================================================

// finalize assembles the report for a run that completed without early
// termination.
func (e *Engine) finalize(r *run) *RuleReport {
	// A deduction-class decision does not invalidate the claim; only a
	// rejection does. Co-payment and cap overages are contractual.
	overallValid := true
	for _, result := range r.results {
		if result.Decision == DecisionReject {
			overallValid = false
		}
	}

	status := StatusCleared
	switch {
	case !overallValid:
		status = StatusRejected
	case r.totalDeductions.IsPositive():
		status = StatusClearedWithDeductions
	}

	risk := RiskLow
	switch {
	case !overallValid:
		risk = RiskHigh
	case r.totalDeductions.IsPositive():
		risk = RiskMedium
	}

	return &RuleReport{
		OverallValid:      overallValid,
		OverallConfidence: meanConfidence(r.results),
		RuleResults:       r.results,
		TotalDeductions:   r.totalDeductions,
		Recommendations:   r.recommendations,
		RiskLevel:         risk,
		Status:            status,
	}
}

// terminate assembles the report for a run stopped by a critical rejection.
// Deductions already accumulated are preserved, not discarded.
func (e *Engine) terminate(r *run, reason string) *RuleReport {
	r.recommend(fmt.Sprintf("Early termination: %s", reason))
	return &RuleReport{
		OverallValid:      false,
		OverallConfidence: meanConfidence(r.results),
		RuleResults:       r.results,
		TotalDeductions:   r.totalDeductions,
		Recommendations:   r.recommendations,
		RiskLevel:         RiskHigh,
		Status:            StatusRejected,
	}
}

func meanConfidence(results []RuleResult) float64 {
	if len(results) == 0 {
		return 0.0
	}
	var sum float64
	for _, r := range results {
		sum += r.ConfidenceScore
	}
	return sum / float64(len(results))
}
