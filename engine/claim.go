/*
claim.go - Claim-side input data

PURPOSE:

	ClaimData carries everything the adjudicator knows about one claim: the
	admission, the diagnosed condition, the hospital bill, and the discharge
	summary. Like PolicyData, no field is structurally required; the
	orchestrator simply skips rules whose context is missing.

PATIENT SEX:

	Maternity waiting-period applicability depends on the patient's sex, which
	upstream extraction frequently cannot establish. PatientSex is therefore an
	explicit tri-state: when it is unknown, the maternity rule is not evaluated
	at all and the report notes why, rather than guessing a default.
*/
package engine

// =============================================================================
// PATIENT SEX - Explicit tri-state, never defaulted
// =============================================================================

type PatientSex int

const (
	SexUnknown PatientSex = iota
	SexFemale
	SexMale
)

func (s PatientSex) String() string {
	switch s {
	case SexFemale:
		return "female"
	case SexMale:
		return "male"
	default:
		return "unknown"
	}
}

// ParsePatientSex maps free text to the tri-state. Anything unrecognized is
// unknown.
func ParsePatientSex(raw string) PatientSex {
	switch normalizeKeyword(raw) {
	case "female", "f", "woman":
		return SexFemale
	case "male", "m", "man":
		return SexMale
	default:
		return SexUnknown
	}
}

// =============================================================================
// CLAIM DATA
// =============================================================================

// ClaimData describes one claim. HospitalBill, DischargeSummary, and
// ClaimAmount are optional; rules gated on them are skipped when absent.
type ClaimData struct {
	// AdmissionDate is the raw admission date text; empty means unknown.
	AdmissionDate string

	// ClaimAmount is the claimed total. Nil when not supplied.
	ClaimAmount *Money

	// Condition is the free-text diagnosis or claim category.
	Condition string

	PatientSex PatientSex

	HospitalBill     *HospitalBill
	DischargeSummary *DischargeSummary
}

// HospitalBill is the billed breakdown from the hospital.
type HospitalBill struct {
	RoomRent      Money
	ICUCharges    Money
	Procedure     string
	ProcedureCost Money

	// ItemizedBill maps line-item name to billed amount.
	ItemizedBill map[string]Money
}

// DischargeSummary is the discharge-side view of the treatment.
type DischargeSummary struct {
	Procedure string
	IsDaycare bool
}
