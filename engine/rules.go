/*
rules.go - One evaluator per rule id

PURPOSE:

	Leaf-level rule evaluators. Each is a pure function taking policy data and
	the relevant claim slice, returning a single RuleResult. Evaluators never
	panic and never return errors: malformed business data is itself an
	outcome (Reject, low confidence, descriptive details), not a fault.

CONFIDENCE:

	ConfidenceScore reflects parse/data quality, not business certainty:
	  0.9  clean evaluation on well-formed data
	  0.8  evaluation resting on a default or an absent optional field
	  0.7  derived condition (e.g. payment overdue inferred from dates)
	  0.3  malformed input resolved to a rejection
	  0.0  required field entirely absent

SEE ALSO:
  - catalog.go: rule metadata, keyword tables
  - engine.go:  which evaluator runs when
*/
package engine

import (
	"fmt"
	"strings"
)

const (
	confHigh = 0.9
	confGood = 0.8
	confFair = 0.7
	confLow  = 0.3
)

// newResult builds a RuleResult with name and section taken from the
// catalog, keeping evaluators free of duplicated metadata.
func newResult(key RuleKey, decision Decision, criteriaMet bool, confidence float64, details string) RuleResult {
	entry, _ := CatalogEntryFor(key)
	return RuleResult{
		Key:             key,
		RuleName:        entry.Name,
		Section:         entry.Section,
		Decision:        decision,
		CriteriaMet:     criteriaMet,
		ConfidenceScore: confidence,
		Details:         details,
	}
}

func rejectMalformed(key RuleKey, details string) RuleResult {
	return newResult(key, DecisionReject, false, confLow, details)
}

// =============================================================================
// POLICY VALIDITY
// =============================================================================

// evaluateInceptionDate checks that the policy was active on the admission
// date. Only called when an admission date is present.
func evaluateInceptionDate(policy *PolicyData, admissionDate string) RuleResult {
	inceptionRaw := policy.inception()
	if inceptionRaw == "" {
		return newResult(RuleInceptionDate, DecisionReject, false, 0.0,
			"Inception date not found in policy data")
	}

	inception, err := ParseDate(inceptionRaw)
	if err != nil {
		return rejectMalformed(RuleInceptionDate,
			fmt.Sprintf("Invalid inception date format: %s", inceptionRaw))
	}
	admission, err := ParseDate(admissionDate)
	if err != nil {
		return rejectMalformed(RuleInceptionDate,
			fmt.Sprintf("Invalid admission date format: %s", admissionDate))
	}

	if inception.BeforeOrEqual(admission) {
		return newResult(RuleInceptionDate, DecisionPass, true, confHigh,
			fmt.Sprintf("Policy active from %s, admission on %s", inception, admission))
	}
	return newResult(RuleInceptionDate, DecisionReject, false, confHigh,
		fmt.Sprintf("Policy not active on admission date. Inception: %s, Admission: %s", inception, admission))
}

// evaluateLapseCheck rejects lapsed or grace-period policies, and policies
// whose last premium payment is older than the grace window as of asOf.
func evaluateLapseCheck(policy *PolicyData, asOf Date) RuleResult {
	status := normalizeKeyword(policy.PolicyStatus)
	if status == "lapsed" || status == "grace" {
		return newResult(RuleLapseCheck, DecisionReject, false, confGood,
			fmt.Sprintf("Policy status: %s", status))
	}

	if policy.LastPaymentDate != "" {
		lastPayment, err := ParseDate(policy.LastPaymentDate)
		if err != nil {
			return rejectMalformed(RuleLapseCheck,
				fmt.Sprintf("Invalid last payment date format: %s", policy.LastPaymentDate))
		}
		daysSincePayment := DaysBetween(lastPayment, asOf)
		if daysSincePayment > policy.GracePeriodDays {
			return newResult(RuleLapseCheck, DecisionReject, false, confFair,
				fmt.Sprintf("Payment overdue by %d days", daysSincePayment-policy.GracePeriodDays))
		}
	}

	return newResult(RuleLapseCheck, DecisionPass, true, confGood,
		"Policy is active and not in grace/lapse period")
}

// =============================================================================
// POLICY LIMITS
// =============================================================================

// evaluateDaycare rejects daycare admissions whose procedure is not on the
// approved list. Non-daycare admissions pass trivially.
func evaluateDaycare(summary *DischargeSummary) RuleResult {
	if summary == nil || !summary.IsDaycare {
		return newResult(RuleDaycare, DecisionPass, true, confHigh,
			"Not a daycare admission")
	}

	procedure := normalizeKeyword(summary.Procedure)
	if containsAnyKeyword(procedure, approvedDaycareProcedures) {
		return newResult(RuleDaycare, DecisionPass, true, confHigh,
			fmt.Sprintf("Daycare procedure '%s' is IRDA approved", procedure))
	}
	return newResult(RuleDaycare, DecisionReject, false, confGood,
		fmt.Sprintf("Daycare procedure '%s' not in IRDA approved list", procedure))
}

// evaluateCappedCharge is the shared shape of the room-rent and ICU rules:
// resolve a cap against the base sum assured and compare the billed charge.
// Overage produces overageDecision with the excess as the deduction.
func evaluateCappedCharge(key RuleKey, policy *PolicyData, cap CappingValue, capField, chargeName string, actual Money, overageDecision Decision) RuleResult {
	if raw, bad := policy.MalformedField(capField); bad {
		return rejectMalformed(key, fmt.Sprintf("Invalid %s value: %s", chargeName, raw))
	}
	if !cap.IsSet() {
		return newResult(key, DecisionPass, true, confGood,
			fmt.Sprintf("No %s capping applied", chargeName))
	}
	if cap.Kind == CapPercentage {
		if raw, bad := policy.MalformedField("baseSumAssured"); bad {
			return rejectMalformed(key,
				fmt.Sprintf("Cannot resolve %s limit: invalid base sum assured: %s", chargeName, raw))
		}
	}

	limit, finite := cap.Limit(policy.BaseSumAssured)
	if !finite {
		return newResult(key, DecisionPass, true, confHigh,
			fmt.Sprintf("%s payable at actuals", chargeName))
	}

	if actual.LessThanOrEqual(limit) {
		return newResult(key, DecisionPass, true, confHigh,
			fmt.Sprintf("%s %s within limit %s", chargeName, actual, limit))
	}
	result := newResult(key, overageDecision, false, confHigh,
		fmt.Sprintf("%s %s exceeds limit %s", chargeName, actual, limit))
	return withDeduction(result, actual.Sub(limit))
}

func evaluateRoomRent(policy *PolicyData, bill *HospitalBill) RuleResult {
	return evaluateCappedCharge(RuleRoomRentEligibility, policy, policy.RoomRentCapping,
		"roomRentCapping", "Room rent", bill.RoomRent, DecisionProportionateDeduction)
}

func evaluateICUCapping(policy *PolicyData, bill *HospitalBill) RuleResult {
	return evaluateCappedCharge(RuleICUCapping, policy, policy.ICUCapping,
		"icuCapping", "ICU charges", bill.ICUCharges, DecisionDeduct)
}

// evaluateSubLimits matches the billed procedure against the procedures with
// dedicated policy sub-limits and clips the cost to the cap.
func evaluateSubLimits(policy *PolicyData, bill *HospitalBill) RuleResult {
	var matched *SubLimitProcedure
	for i := range subLimitProcedures {
		if containsKeyword(bill.Procedure, subLimitProcedures[i].Keyword) {
			matched = &subLimitProcedures[i]
			break
		}
	}
	if matched == nil {
		return newResult(RuleSubLimits, DecisionPass, true, confGood,
			"No specific sub-limit for this procedure")
	}

	cap := matched.Cap(policy)
	if cap.Kind == CapPercentage {
		if raw, bad := policy.MalformedField("baseSumAssured"); bad {
			return rejectMalformed(RuleSubLimits,
				fmt.Sprintf("Cannot resolve %s cap: invalid base sum assured: %s", matched.Keyword, raw))
		}
	}
	limit, finite := cap.Limit(policy.BaseSumAssured)
	if !cap.IsSet() || !finite {
		return newResult(RuleSubLimits, DecisionPass, true, confGood,
			fmt.Sprintf("No sub-limit cap configured for %s", matched.Keyword))
	}

	if bill.ProcedureCost.LessThanOrEqual(limit) {
		return newResult(RuleSubLimits, DecisionPass, true, confHigh,
			fmt.Sprintf("Procedure cost %s within cap %s", bill.ProcedureCost, limit))
	}
	result := newResult(RuleSubLimits, DecisionCapLimitApplied, false, confHigh,
		fmt.Sprintf("Procedure cost %s exceeds cap %s", bill.ProcedureCost, limit))
	return withDeduction(result, bill.ProcedureCost.Sub(limit))
}

// evaluateNonMedical sums itemized line items matching the non-payable list.
func evaluateNonMedical(bill *HospitalBill) RuleResult {
	var total Money
	for item, amount := range bill.ItemizedBill {
		if containsAnyKeyword(item, nonPayableItems) {
			total = total.Add(amount)
		}
	}

	if total.IsZero() {
		return newResult(RuleNonMedical, DecisionPass, true, confHigh,
			"No non-medical items found in bill")
	}
	result := newResult(RuleNonMedical, DecisionDeduct, false, confGood,
		fmt.Sprintf("Non-medical items totaling %s found", total))
	return withDeduction(result, total)
}

// evaluateCoPayment computes the contractual co-payment deduction. The
// criteria are recorded as met even when a deduction is produced: co-payment
// is a term of the policy, not a failure.
func evaluateCoPayment(policy *PolicyData, claimAmount Money) RuleResult {
	if raw, bad := policy.MalformedField("coPayment"); bad {
		return rejectMalformed(RuleCoPayment, fmt.Sprintf("Invalid co-payment value: %s", raw))
	}

	cap := policy.CoPayment
	if !cap.IsSet() || cap.Kind == CapUnlimited {
		return newResult(RuleCoPayment, DecisionPass, true, confHigh,
			"No co-payment applicable")
	}

	var deduction Money
	var details string
	switch cap.Kind {
	case CapPercentage:
		deduction = claimAmount.Percent(cap.Amount)
		details = fmt.Sprintf("Co-payment %s%% applied", cap.Amount)
	default:
		deduction = Money{Value: cap.Amount}
		details = fmt.Sprintf("Flat co-payment %s applied", cap.Amount)
	}

	result := newResult(RuleCoPayment, DecisionDeduct, true, confHigh, details)
	return withDeduction(result, deduction)
}

// =============================================================================
// WAITING PERIODS
// =============================================================================

// policyAgeAtAdmission parses both dates and returns the policy age in days.
// The returned RuleResult is non-nil when parsing failed and carries the
// rejection to report under key.
func policyAgeAtAdmission(key RuleKey, policy *PolicyData, admissionDate string) (int, *RuleResult) {
	inceptionRaw := policy.inception()
	if inceptionRaw == "" || admissionDate == "" {
		r := rejectMalformed(key, "Missing inception date or admission date for waiting period validation")
		return 0, &r
	}

	inception, err := ParseDate(inceptionRaw)
	if err != nil {
		r := rejectMalformed(key, fmt.Sprintf("Invalid inception date format: %s", inceptionRaw))
		return 0, &r
	}
	admission, err := ParseDate(admissionDate)
	if err != nil {
		r := rejectMalformed(key, fmt.Sprintf("Invalid admission date format: %s", admissionDate))
		return 0, &r
	}
	return DaysBetween(inception, admission), nil
}

// evaluateInitialWaiting enforces the 30-day initial waiting period.
// Exactly 30 days passes.
func evaluateInitialWaiting(policy *PolicyData, admissionDate string) RuleResult {
	age, failed := policyAgeAtAdmission(RuleInitialWaiting, policy, admissionDate)
	if failed != nil {
		return *failed
	}

	if age < InitialWaitingDays {
		return newResult(RuleInitialWaiting, DecisionReject, false, confHigh,
			fmt.Sprintf("Policy only %d days old, requires %d days", age, InitialWaitingDays))
	}
	return newResult(RuleInitialWaiting, DecisionPass, true, confHigh,
		fmt.Sprintf("Policy %d days old, meets %d-day requirement", age, InitialWaitingDays))
}

// evaluateDiseaseSpecific enforces per-disease waiting periods. The rule is
// produced only when the condition matches a known disease keyword; the
// second return reports whether it applies.
func evaluateDiseaseSpecific(policy *PolicyData, admissionDate, condition string) (RuleResult, bool) {
	var matched *DiseaseWaitingPeriod
	for i := range diseaseWaitingPeriods {
		if containsKeyword(condition, diseaseWaitingPeriods[i].Keyword) {
			matched = &diseaseWaitingPeriods[i]
			break
		}
	}
	if matched == nil {
		return RuleResult{}, false
	}

	age, failed := policyAgeAtAdmission(RuleDiseaseSpecific, policy, admissionDate)
	if failed != nil {
		return *failed, true
	}

	disease := capitalize(matched.Keyword)
	if age < matched.Days {
		return newResult(RuleDiseaseSpecific, DecisionReject, false, confHigh,
			fmt.Sprintf("%s condition requires %d days, policy only %d days old", disease, matched.Days, age)), true
	}
	return newResult(RuleDiseaseSpecific, DecisionPass, true, confHigh,
		fmt.Sprintf("%s condition waiting period satisfied", disease)), true
}

// isMaternityRelated reports whether the condition text matches a maternity
// keyword.
func isMaternityRelated(condition string) bool {
	return condition != "" && containsAnyKeyword(condition, maternityKeywords)
}

// evaluateMaternity enforces the maternity waiting period. The rule applies
// only to maternity-related conditions with a known patient sex; an unknown
// sex leaves the rule unproduced (the orchestrator surfaces that in the
// recommendations instead).
func evaluateMaternity(policy *PolicyData, admissionDate, condition string, sex PatientSex) (RuleResult, bool) {
	if !isMaternityRelated(condition) || sex == SexUnknown {
		return RuleResult{}, false
	}

	if sex == SexMale {
		return newResult(RuleMaternity, DecisionReject, false, confHigh,
			"Maternity condition not applicable for male patient"), true
	}

	age, failed := policyAgeAtAdmission(RuleMaternity, policy, admissionDate)
	if failed != nil {
		return *failed, true
	}

	if age < MaternityWaitingDays {
		return newResult(RuleMaternity, DecisionReject, false, confHigh,
			fmt.Sprintf("Maternity condition requires %d days, policy only %d days old", MaternityWaitingDays, age)), true
	}
	return newResult(RuleMaternity, DecisionPass, true, confHigh,
		"Maternity condition waiting period satisfied"), true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
