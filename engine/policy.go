/*
policy.go - Policy-side input data

PURPOSE:

	PolicyData is the read-only description of one insurance policy as produced
	by the upstream extraction pipeline. No field is structurally required;
	absence is a valid state every evaluator must handle.

FIELD TOLERANCE:

	Upstream extraction is lossy. Dates stay raw strings because their parsing
	tolerance (three formats, tried in order) is part of each evaluator's
	contract - an unparsable date is a rule outcome, not a construction error.
	Capping and currency fields are parsed exactly once, here at the boundary;
	fields whose raw text could not be parsed are tracked so evaluators can
	resolve them to low-confidence rejections instead of silently passing.

SEE ALSO:
  - capping.go: CappingValue tagged union
  - claim.go:   the claim-side counterpart
*/
package engine

// =============================================================================
// POLICY DATA
// =============================================================================

// PolicyData describes one policy. Construct it directly in Go callers, or
// via the intake package when the source is an extracted JSON document.
type PolicyData struct {
	// InceptionDate is the raw policy start date text. Evaluators fall back
	// to PolicyStartDate when it is empty.
	InceptionDate   string
	PolicyStartDate string

	// PolicyStatus is free text ("active", "lapsed", "grace", ...).
	PolicyStatus string

	// GracePeriodDays is the premium grace window. Zero when unknown.
	GracePeriodDays int

	// LastPaymentDate is the raw date text of the last premium payment.
	LastPaymentDate string

	// BaseSumAssured anchors percentage-based caps.
	BaseSumAssured Money

	// Per-benefit caps, parsed once at the boundary.
	RoomRentCapping         CappingValue
	ICUCapping              CappingValue
	CoPayment               CappingValue
	CataractCapping         CappingValue
	HerniaCapping           CappingValue
	JointReplacementCapping CappingValue
	BariatricCapping        CappingValue

	// malformed maps field name -> raw text for fields whose value could
	// not be parsed at intake. Evaluators turn these into rejections.
	malformed map[string]string
}

// MarkMalformed records that a named field carried unparsable raw text.
func (p *PolicyData) MarkMalformed(field, raw string) {
	if p.malformed == nil {
		p.malformed = make(map[string]string)
	}
	p.malformed[field] = raw
}

// MalformedField returns the raw text of a field that failed to parse.
func (p *PolicyData) MalformedField(field string) (string, bool) {
	raw, ok := p.malformed[field]
	return raw, ok
}

// inception returns the effective inception date text, falling back to the
// policy start date when the inception field is absent.
func (p *PolicyData) inception() string {
	if p.InceptionDate != "" {
		return p.InceptionDate
	}
	return p.PolicyStartDate
}
