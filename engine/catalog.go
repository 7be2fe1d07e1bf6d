/*
catalog.go - The rule catalog and engine-owned keyword tables

PURPOSE:

	One immutable, ordered table defines every rule the engine knows: its key,
	display name, section, human-readable criteria, the decision class applied
	on failure, the supporting documents an adjudicator would pull, and whether
	a rejection terminates the run. The orchestrator takes evaluation order
	from this table and the report package takes row metadata from it, so the
	two can never drift apart.

	The keyword tables (waiting periods, approved daycare procedures,
	non-payable items, maternity indicators, sub-limit procedures) are owned
	here and exported through the API boundary; consumers must not re-declare
	them.

NOTE:

	Criteria text is descriptive, for adjudicators reading reports. It is
	never parsed or executed.
*/
package engine

import "strings"

// =============================================================================
// RULE KEYS
// =============================================================================

type RuleKey string

const (
	RuleInceptionDate       RuleKey = "inception_date"
	RuleLapseCheck          RuleKey = "lapse_check"
	RuleDaycare             RuleKey = "daycare"
	RuleRoomRentEligibility RuleKey = "room_rent_eligibility"
	RuleICUCapping          RuleKey = "icu_capping"
	RuleSubLimits           RuleKey = "sub_limits"
	RuleNonMedical          RuleKey = "non_medical"
	RuleCoPayment           RuleKey = "co_payment"
	RuleInitialWaiting      RuleKey = "initial_waiting"
	RuleDiseaseSpecific     RuleKey = "disease_specific"
	RuleMaternity           RuleKey = "maternity"
)

// =============================================================================
// CATALOG
// =============================================================================

// CatalogEntry is the static definition of one rule.
type CatalogEntry struct {
	Key      RuleKey
	Name     string
	Section  Section
	Criteria string

	// FailureDecision is the decision class this rule applies when its
	// criteria are not met.
	FailureDecision Decision

	// Critical rules terminate the run when they reject.
	Critical bool

	DocumentsRequired []string
}

// Catalog returns the full rule catalog in evaluation order. The returned
// slice is a copy; callers may not mutate engine state through it.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogEntryFor looks up a single rule definition.
func CatalogEntryFor(key RuleKey) (CatalogEntry, bool) {
	for _, e := range catalog {
		if e.Key == key {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

var catalog = []CatalogEntry{
	{
		Key:               RuleInceptionDate,
		Name:              "Inception Date",
		Section:           SectionPolicyValidity,
		Criteria:          "Policy must be active on date of admission",
		FailureDecision:   DecisionReject,
		Critical:          true,
		DocumentsRequired: []string{"Policy Master Document", "Policy Document"},
	},
	{
		Key:               RuleLapseCheck,
		Name:              "Lapse Check",
		Section:           SectionPolicyValidity,
		Criteria:          "Policy should not be in grace/lapse",
		FailureDecision:   DecisionReject,
		Critical:          true,
		DocumentsRequired: []string{"Policy Master Document", "Policy Document", "Payment Receipt"},
	},
	{
		Key:               RuleDaycare,
		Name:              "Daycare",
		Section:           SectionPolicyLimits,
		Criteria:          "Within IRDA-approved daycare",
		FailureDecision:   DecisionReject,
		Critical:          true,
		DocumentsRequired: []string{"Policy Master Document", "Policy Document", "Discharge Summary"},
	},
	{
		Key:               RuleRoomRentEligibility,
		Name:              "Room Rent Eligibility",
		Section:           SectionPolicyLimits,
		Criteria:          "Room rent within entitled limit",
		FailureDecision:   DecisionProportionateDeduction,
		DocumentsRequired: []string{"Policy Master Document", "Policy Document", "Hospital Bill"},
	},
	{
		Key:               RuleICUCapping,
		Name:              "ICU Capping",
		Section:           SectionPolicyLimits,
		Criteria:          "ICU charges within cap",
		FailureDecision:   DecisionDeduct,
		DocumentsRequired: []string{"Policy Master Document", "Policy Document", "Hospital Bill"},
	},
	{
		Key:               RuleSubLimits,
		Name:              "Sub-limits",
		Section:           SectionPolicyLimits,
		Criteria:          "Procedure under cap limit",
		FailureDecision:   DecisionCapLimitApplied,
		DocumentsRequired: []string{"Policy Master Document", "Policy Document", "Hospital Bill"},
	},
	{
		Key:               RuleNonMedical,
		Name:              "Non-Medical",
		Section:           SectionPolicyLimits,
		Criteria:          "IRDA non-payables",
		FailureDecision:   DecisionDeduct,
		DocumentsRequired: []string{"Policy Master Document", "Policy Document", "Hospital Bill", "Itemized Bill"},
	},
	{
		Key:               RuleCoPayment,
		Name:              "Co-payment",
		Section:           SectionPolicyLimits,
		Criteria:          "Co-pay % as per policy",
		FailureDecision:   DecisionDeduct,
		DocumentsRequired: []string{"Policy Master Document", "Policy Document"},
	},
	{
		Key:               RuleInitialWaiting,
		Name:              "Initial Waiting",
		Section:           SectionWaitingPeriods,
		Criteria:          "30 days since inception for non-accident admissions",
		FailureDecision:   DecisionReject,
		Critical:          true,
		DocumentsRequired: []string{"Policy Master Document", "Policy Document"},
	},
	{
		Key:               RuleDiseaseSpecific,
		Name:              "Disease Specific",
		Section:           SectionWaitingPeriods,
		Criteria:          "Condition covered post waiting period",
		FailureDecision:   DecisionReject,
		Critical:          true,
		DocumentsRequired: []string{"Policy Master Document", "Policy Document"},
	},
	{
		Key:               RuleMaternity,
		Name:              "Maternity",
		Section:           SectionWaitingPeriods,
		Criteria:          "Covered with waiting period",
		FailureDecision:   DecisionReject,
		Critical:          true,
		DocumentsRequired: []string{"Policy Master Document", "Policy Document"},
	},
}

// =============================================================================
// WAITING PERIODS
// =============================================================================

const (
	// InitialWaitingDays is the minimum policy age for any non-accident claim.
	InitialWaitingDays = 30

	// MaternityWaitingDays is the minimum policy age for maternity claims.
	MaternityWaitingDays = 270
)

// DiseaseWaitingPeriod maps a condition keyword to its required waiting days.
type DiseaseWaitingPeriod struct {
	Keyword string
	Days    int
}

// DiseaseWaitingPeriods lists disease-specific waiting periods in match
// order; the first keyword found as a substring of the condition wins.
func DiseaseWaitingPeriods() []DiseaseWaitingPeriod {
	out := make([]DiseaseWaitingPeriod, len(diseaseWaitingPeriods))
	copy(out, diseaseWaitingPeriods)
	return out
}

var diseaseWaitingPeriods = []DiseaseWaitingPeriod{
	{Keyword: "diabetes", Days: 90},
	{Keyword: "hypertension", Days: 90},
	{Keyword: "cardiac", Days: 180},
	{Keyword: "cancer", Days: 365},
}

// MaternityKeywords lists the condition keywords that mark a claim as
// maternity-related.
func MaternityKeywords() []string {
	out := make([]string, len(maternityKeywords))
	copy(out, maternityKeywords)
	return out
}

var maternityKeywords = []string{
	"pregnancy", "delivery", "cesarean", "maternity", "obstetric", "gynecological",
}

// =============================================================================
// DAYCARE AND NON-PAYABLES
// =============================================================================

// ApprovedDaycareProcedures lists the IRDA-approved daycare procedure
// keywords.
func ApprovedDaycareProcedures() []string {
	out := make([]string, len(approvedDaycareProcedures))
	copy(out, approvedDaycareProcedures)
	return out
}

var approvedDaycareProcedures = []string{
	"cataract", "hernia", "tonsillectomy", "adenoidectomy",
	"dental", "endoscopy", "colonoscopy", "biopsy",
}

// NonPayableItems lists the IRDA non-payable line-item keywords.
func NonPayableItems() []string {
	out := make([]string, len(nonPayableItems))
	copy(out, nonPayableItems)
	return out
}

var nonPayableItems = []string{
	"toiletries", "personal items", "food", "telephone", "tv",
	"attendant charges", "documentation charges", "administrative charges",
}

// =============================================================================
// SUB-LIMIT PROCEDURES
// =============================================================================

// SubLimitProcedure binds a procedure keyword to the policy cap that governs
// it.
type SubLimitProcedure struct {
	Keyword string
	Cap     func(*PolicyData) CappingValue
}

// SubLimitProcedures lists the procedures with dedicated policy sub-limits,
// in match order.
func SubLimitProcedures() []SubLimitProcedure {
	out := make([]SubLimitProcedure, len(subLimitProcedures))
	copy(out, subLimitProcedures)
	return out
}

var subLimitProcedures = []SubLimitProcedure{
	{Keyword: "cataract", Cap: func(p *PolicyData) CappingValue { return p.CataractCapping }},
	{Keyword: "hernia", Cap: func(p *PolicyData) CappingValue { return p.HerniaCapping }},
	{Keyword: "joint replacement", Cap: func(p *PolicyData) CappingValue { return p.JointReplacementCapping }},
	{Keyword: "bariatric", Cap: func(p *PolicyData) CappingValue { return p.BariatricCapping }},
}

// =============================================================================
// KEYWORD MATCHING
// =============================================================================

func normalizeKeyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsKeyword reports whether text contains keyword, case-insensitively.
func containsKeyword(text, keyword string) bool {
	return strings.Contains(normalizeKeyword(text), keyword)
}

// containsAnyKeyword reports whether text contains any of the keywords.
func containsAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if containsKeyword(text, kw) {
			return true
		}
	}
	return false
}
