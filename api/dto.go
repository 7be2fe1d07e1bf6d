/*
dto.go - Request/response data structures for the adjudication API

PURPOSE:

	Defines the JSON shapes exposed over HTTP and the conversions between
	them and the engine's domain types. Domain types never leak JSON tags;
	all serialization concerns live here.

CONVENTIONS:
  - snake_case field names
  - Decision/Section/Status enums cross the wire as their display strings
  - Money crosses the wire as a JSON number
  - DTO conversion is lossless: a report round-trips through its DTO, so
    stored report JSON can be re-rendered without re-evaluating

SEE ALSO:
  - handlers.go: the only producer/consumer of these types
  - engine/types.go: the domain types these mirror
*/
package api

import (
	"fmt"
	"time"

	"github.com/clearclaim/claims-engine/engine"
	"github.com/clearclaim/claims-engine/store/sqlite"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// REQUESTS
// =============================================================================

// AdjudicateRequest carries the two extracted documents for one evaluation.
type AdjudicateRequest struct {
	Policy jsonRaw `json:"policy"`
	Claim  jsonRaw `json:"claim"`
}

// jsonRaw delays decoding so intake can apply its own tolerance rules.
type jsonRaw []byte

func (r *jsonRaw) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}

func (r jsonRaw) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// =============================================================================
// RESPONSES
// =============================================================================

// RuleResultDTO is one rule outcome on the wire.
type RuleResultDTO struct {
	Key             string   `json:"key"`
	RuleName        string   `json:"rule_name"`
	Section         string   `json:"section"`
	Decision        string   `json:"decision"`
	CriteriaMet     bool     `json:"criteria_met"`
	ConfidenceScore float64  `json:"confidence_score"`
	Details         string   `json:"details"`
	DeductionAmount *float64 `json:"deduction_amount,omitempty"`
}

// RuleReportDTO is the full adjudication outcome on the wire.
type RuleReportDTO struct {
	OverallValid      bool            `json:"overall_valid"`
	OverallConfidence float64         `json:"overall_confidence"`
	RuleResults       []RuleResultDTO `json:"rule_results"`
	TotalDeductions   float64         `json:"total_deductions"`
	Recommendations   []string        `json:"recommendations"`
	RiskLevel         string          `json:"risk_level"`
	Status            string          `json:"status"`
}

// AdjudicationDTO is a stored adjudication with its full report.
type AdjudicationDTO struct {
	ID        string        `json:"id"`
	CreatedAt string        `json:"created_at"`
	Report    RuleReportDTO `json:"report"`
}

// AdjudicationSummaryDTO is the listing row: headline columns only.
type AdjudicationSummaryDTO struct {
	ID                string  `json:"id"`
	CreatedAt         string  `json:"created_at"`
	Status            string  `json:"status"`
	RiskLevel         string  `json:"risk_level"`
	OverallValid      bool    `json:"overall_valid"`
	OverallConfidence float64 `json:"overall_confidence"`
	TotalDeductions   string  `json:"total_deductions"`
	RuleCount         int     `json:"rule_count"`
}

// CatalogEntryDTO describes one rule in the catalog endpoint.
type CatalogEntryDTO struct {
	Key               string   `json:"key"`
	Name              string   `json:"name"`
	Section           string   `json:"section"`
	Criteria          string   `json:"criteria"`
	FailureDecision   string   `json:"failure_decision"`
	Critical          bool     `json:"critical"`
	DocumentsRequired []string `json:"documents_required"`
}

// =============================================================================
// DOMAIN <-> DTO CONVERSION
// =============================================================================

func toReportDTO(r *engine.RuleReport) RuleReportDTO {
	dto := RuleReportDTO{
		OverallValid:      r.OverallValid,
		OverallConfidence: r.OverallConfidence,
		TotalDeductions:   r.TotalDeductions.Value.InexactFloat64(),
		Recommendations:   append([]string{}, r.Recommendations...),
		RiskLevel:         string(r.RiskLevel),
		Status:            string(r.Status),
		RuleResults:       make([]RuleResultDTO, len(r.RuleResults)),
	}
	for i, res := range r.RuleResults {
		rd := RuleResultDTO{
			Key:             string(res.Key),
			RuleName:        res.RuleName,
			Section:         res.Section.String(),
			Decision:        res.Decision.String(),
			CriteriaMet:     res.CriteriaMet,
			ConfidenceScore: res.ConfidenceScore,
			Details:         res.Details,
		}
		if res.DeductionAmount != nil {
			v := res.DeductionAmount.Value.InexactFloat64()
			rd.DeductionAmount = &v
		}
		dto.RuleResults[i] = rd
	}
	return dto
}

// fromReportDTO reconstructs a domain report from stored JSON, for
// re-rendering without re-evaluating.
func fromReportDTO(dto RuleReportDTO) (*engine.RuleReport, error) {
	r := &engine.RuleReport{
		OverallValid:      dto.OverallValid,
		OverallConfidence: dto.OverallConfidence,
		TotalDeductions:   engine.NewMoney(dto.TotalDeductions),
		Recommendations:   append([]string{}, dto.Recommendations...),
		RiskLevel:         engine.RiskLevel(dto.RiskLevel),
		Status:            engine.ClaimStatus(dto.Status),
		RuleResults:       make([]engine.RuleResult, len(dto.RuleResults)),
	}
	for i, rd := range dto.RuleResults {
		decision, err := decisionFromString(rd.Decision)
		if err != nil {
			return nil, err
		}
		section, err := sectionFromString(rd.Section)
		if err != nil {
			return nil, err
		}
		res := engine.RuleResult{
			Key:             engine.RuleKey(rd.Key),
			RuleName:        rd.RuleName,
			Section:         section,
			Decision:        decision,
			CriteriaMet:     rd.CriteriaMet,
			ConfidenceScore: rd.ConfidenceScore,
			Details:         rd.Details,
		}
		if rd.DeductionAmount != nil {
			m := engine.NewMoney(*rd.DeductionAmount)
			res.DeductionAmount = &m
		}
		r.RuleResults[i] = res
	}
	return r, nil
}

func decisionFromString(s string) (engine.Decision, error) {
	for _, d := range []engine.Decision{
		engine.DecisionPass, engine.DecisionReject, engine.DecisionDeduct,
		engine.DecisionProportionateDeduction, engine.DecisionCapLimitApplied,
	} {
		if d.String() == s {
			return d, nil
		}
	}
	return engine.DecisionPass, fmt.Errorf("unknown decision %q", s)
}

func sectionFromString(s string) (engine.Section, error) {
	for _, sec := range []engine.Section{
		engine.SectionPolicyValidity, engine.SectionPolicyLimits, engine.SectionWaitingPeriods,
	} {
		if sec.String() == s {
			return sec, nil
		}
	}
	return engine.SectionPolicyValidity, fmt.Errorf("unknown section %q", s)
}

func toSummaryDTO(rec sqlite.AdjudicationRecord) AdjudicationSummaryDTO {
	return AdjudicationSummaryDTO{
		ID:                rec.ID,
		CreatedAt:         rec.CreatedAt.Format(time.RFC3339),
		Status:            rec.Status,
		RiskLevel:         rec.RiskLevel,
		OverallValid:      rec.OverallValid,
		OverallConfidence: rec.OverallConfidence,
		TotalDeductions:   rec.TotalDeductions,
		RuleCount:         rec.RuleCount,
	}
}

func toCatalogDTOs() []CatalogEntryDTO {
	entries := engine.Catalog()
	dtos := make([]CatalogEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = CatalogEntryDTO{
			Key:               string(e.Key),
			Name:              e.Name,
			Section:           e.Section.String(),
			Criteria:          e.Criteria,
			FailureDecision:   e.FailureDecision.String(),
			Critical:          e.Critical,
			DocumentsRequired: append([]string{}, e.DocumentsRequired...),
		}
	}
	return dtos
}
