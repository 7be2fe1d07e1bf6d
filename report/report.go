/*
Package report renders adjudication outcomes for humans.

PURPOSE:

	The engine emits a structured RuleReport; adjudicators and downstream
	systems want it as a table. This package turns a report into ASCII,
	markdown, HTML or plain-text renderings, all driven by the same row
	model so the formats can never disagree on content.

KEY CONCEPTS:
  - Row: One rule outcome joined with its static catalog metadata
  - Format: Closed set of output formats
  - Render: summary + table for tabular formats, standalone for text

DESIGN PRINCIPLES:
 1. Rows come straight from RuleReport.RuleResults, which already
    preserves evaluation order and early termination; no re-ordering here
 2. Catalog metadata (criteria, documents, failure decision) is looked up,
    never duplicated
 3. Currency is formatted once, in one place

USAGE:

	out := report.Render(ruleReport, report.FormatMarkdown)

SEE ALSO:
  - engine/catalog.go: the row metadata source
*/
package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/clearclaim/claims-engine/engine"
)

// =============================================================================
// FORMAT
// =============================================================================

// Format selects an output rendering.
type Format string

const (
	FormatASCII    Format = "ascii"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
)

// ParseFormat resolves a user-supplied format name, defaulting to markdown.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatASCII:
		return FormatASCII, true
	case FormatMarkdown, "":
		return FormatMarkdown, true
	case FormatHTML:
		return FormatHTML, true
	case FormatText:
		return FormatText, true
	}
	return FormatMarkdown, false
}

// =============================================================================
// ROW MODEL
// =============================================================================

// Row is one rule outcome joined with its catalog metadata.
type Row struct {
	Section          string
	Rule             string
	Criteria         string
	DecisionIfFails  string
	DocumentRequired string
	Status           string // "PASS" or "FAIL"
	ActualDecision   string
	Reason           string
	Deduction        *engine.Money
}

// Rows converts a rule report into table rows. Rules skipped by gating or
// early termination are omitted, not padded; the table shows exactly what
// the engine evaluated.
func Rows(r *engine.RuleReport) []Row {
	rows := make([]Row, 0, len(r.RuleResults))
	for _, res := range r.RuleResults {
		entry, ok := engine.CatalogEntryFor(res.Key)
		if !ok {
			continue
		}

		status := "FAIL"
		if res.Decision == engine.DecisionPass {
			status = "PASS"
		}

		row := Row{
			Section:          res.Section.String(),
			Rule:             res.RuleName,
			Criteria:         entry.Criteria,
			DecisionIfFails:  entry.FailureDecision.String(),
			DocumentRequired: strings.Join(entry.DocumentsRequired, ", "),
			Status:           status,
			ActualDecision:   res.Decision.String(),
			Reason:           res.Details,
		}
		if d := res.Deduction(); d.IsPositive() {
			row.Deduction = &d
		}
		rows = append(rows, row)
	}
	return rows
}

// =============================================================================
// RENDER
// =============================================================================

const noResults = "No rule evaluation results available."

// Render produces the complete report in the requested format. Tabular
// formats are prefixed with the summary; text stands alone.
func Render(r *engine.RuleReport, format Format) string {
	rows := Rows(r)
	switch format {
	case FormatText:
		return TextReport(r, rows)
	case FormatASCII:
		return Summary(r) + "\n\n" + ASCIITable(rows)
	case FormatHTML:
		return Summary(r) + "\n\n" + HTMLTable(rows)
	default:
		return Summary(r) + "\n\n" + MarkdownTable(rows)
	}
}

var tableHeaders = []string{
	"SECTION", "RULE", "CRITERIA", "DECISION IF FAILS",
	"DOCUMENT REQUIRED", "STATUS", "ACTUAL DECISION", "REASON",
}

// ASCIITable renders rows as a fixed-width pipe table.
func ASCIITable(rows []Row) string {
	if len(rows) == 0 {
		return noResults
	}

	widths := []int{15, 22, 48, 25, 45, 8, 24, 50}

	var b strings.Builder
	sep := "|"
	for _, w := range widths {
		sep += strings.Repeat("-", w+2) + "|"
	}

	writeLine := func(cells []string) {
		b.WriteString("| ")
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(" | ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString(" |\n")
	}

	b.WriteString(sep + "\n")
	writeLine(tableHeaders)
	b.WriteString(sep + "\n")
	for _, row := range rows {
		writeLine([]string{
			row.Section, row.Rule, row.Criteria, row.DecisionIfFails,
			row.DocumentRequired, row.Status, row.ActualDecision,
			truncate(row.Reason, 50),
		})
	}
	b.WriteString(sep)
	return b.String()
}

// MarkdownTable renders rows as a markdown pipe table. Deductions are shown
// inline with the actual decision.
func MarkdownTable(rows []Row) string {
	if len(rows) == 0 {
		return noResults
	}

	var b strings.Builder
	b.WriteString("| " + strings.Join(tableHeaders, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(tableHeaders)) + "\n")

	for _, row := range rows {
		decision := row.ActualDecision
		if row.Deduction != nil {
			decision += " (" + FormatCurrency(*row.Deduction) + ")"
		}
		reason := strings.ReplaceAll(row.Reason, "|", "\\|")
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			row.Section, row.Rule, row.Criteria, row.DecisionIfFails,
			row.DocumentRequired, row.Status, decision, reason)
	}
	return b.String()
}

// HTMLTable renders rows as a styled HTML table.
func HTMLTable(rows []Row) string {
	if len(rows) == 0 {
		return "<p>" + noResults + "</p>"
	}

	var b strings.Builder
	b.WriteString(`<style>
.rule-table { border-collapse: collapse; width: 100%; margin: 20px 0; }
.rule-table th, .rule-table td { border: 1px solid #ddd; padding: 8px; text-align: left; }
.rule-table th { background-color: #f2f2f2; font-weight: bold; }
.rule-table .pass { background-color: #d4edda; }
.rule-table .fail { background-color: #f8d7da; }
.rule-table .deduction { color: #721c24; font-weight: bold; }
.rule-table .reason { max-width: 300px; word-wrap: break-word; }
</style>
<table class="rule-table">
<thead>
<tr>
`)
	for _, h := range tableHeaders {
		b.WriteString("<th>" + h + "</th>\n")
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")

	for _, row := range rows {
		class := "fail"
		if row.Status == "PASS" {
			class = "pass"
		}
		decision := row.ActualDecision
		if row.Deduction != nil {
			decision += " (" + FormatCurrency(*row.Deduction) + ")"
		}
		fmt.Fprintf(&b, "<tr class=%q>\n", class)
		for _, cell := range []string{
			row.Section, row.Rule, row.Criteria, row.DecisionIfFails,
			row.DocumentRequired, row.Status,
		} {
			b.WriteString("<td>" + html.EscapeString(cell) + "</td>\n")
		}
		b.WriteString(`<td class="deduction">` + html.EscapeString(decision) + "</td>\n")
		b.WriteString(`<td class="reason">` + html.EscapeString(row.Reason) + "</td>\n")
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// TextReport renders the summary plus section-grouped rule details.
func TextReport(r *engine.RuleReport, rows []Row) string {
	if len(rows) == 0 {
		return noResults
	}

	var b strings.Builder
	b.WriteString(Summary(r))
	b.WriteString("\nDETAILED RULE RESULTS:\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")

	// Group by section, preserving first-seen section order.
	var sectionOrder []string
	bySection := make(map[string][]Row)
	for _, row := range rows {
		if _, seen := bySection[row.Section]; !seen {
			sectionOrder = append(sectionOrder, row.Section)
		}
		bySection[row.Section] = append(bySection[row.Section], row)
	}

	for _, section := range sectionOrder {
		b.WriteString("\n" + strings.ToUpper(section) + ":\n")
		b.WriteString(strings.Repeat("-", len(section)) + "\n")
		for _, row := range bySection[section] {
			icon := "❌"
			if row.Status == "PASS" {
				icon = "✅"
			}
			decision := row.ActualDecision
			if row.Deduction != nil {
				decision += " (" + FormatCurrency(*row.Deduction) + ")"
			}
			fmt.Fprintf(&b, "%s %s\n", icon, row.Rule)
			fmt.Fprintf(&b, "   Criteria: %s\n", row.Criteria)
			fmt.Fprintf(&b, "   Decision: %s\n", decision)
			fmt.Fprintf(&b, "   Reason: %s\n", row.Reason)
			fmt.Fprintf(&b, "   Document Required: %s\n\n", row.DocumentRequired)
		}
	}
	return b.String()
}

// Summary renders the header block: status, deductions, rule statistics and
// the top recommendations.
func Summary(r *engine.RuleReport) string {
	var b strings.Builder
	b.WriteString("POLICY RULE VALIDATION SUMMARY\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Overall Status: %s\n", statusDisplay(r.Status))
	fmt.Fprintf(&b, "Total Deductions: %s\n\n", FormatCurrency(r.TotalDeductions))

	total := len(r.RuleResults)
	passed := 0
	rejected := 0
	for _, res := range r.RuleResults {
		switch res.Decision {
		case engine.DecisionPass:
			passed++
		case engine.DecisionReject:
			rejected++
		}
	}

	b.WriteString("Rule Statistics:\n")
	fmt.Fprintf(&b, "• Total Rules Checked: %d\n", total)
	fmt.Fprintf(&b, "• Rules Passed: %d (%s)\n", passed, percent(passed, total))
	fmt.Fprintf(&b, "• Rules Failed: %d (%s)\n", rejected, percent(rejected, total))

	b.WriteString("\nKey Observations:\n")
	if len(r.Recommendations) == 0 {
		b.WriteString("• No specific recommendations available\n")
	} else {
		recs := r.Recommendations
		if len(recs) > 5 {
			recs = recs[:5]
		}
		for _, rec := range recs {
			b.WriteString("• " + rec + "\n")
		}
	}
	return b.String()
}

func statusDisplay(s engine.ClaimStatus) string {
	switch s {
	case engine.StatusCleared:
		return "✅ CLEARED"
	case engine.StatusClearedWithDeductions:
		return "⚠️ CLEARED WITH DEDUCTIONS"
	case engine.StatusRejected:
		return "❌ REJECTED"
	default:
		return "❓ " + string(s)
	}
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}

// truncate counts runes so a clipped reason never splits a multi-byte
// character (details frequently carry ₹ amounts).
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// FormatCurrency renders an amount as rupees with thousands separators and
// two decimal places, e.g. "₹12,500.00".
func FormatCurrency(m engine.Money) string {
	fixed := m.Value.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-3:]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	out := "₹" + grouped.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
