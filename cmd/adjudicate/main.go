/*
main.go - Command-line adjudication tool

PURPOSE:

	Evaluates a policy+claim document pair from the command line, without the
	HTTP service. Useful for batch adjudication in scripts and for inspecting
	a single claim during triage.

COMMANDS:

	adjudicate evaluate -p policy.json -c claim.json [-o format] [-w file]
	adjudicate rules

EXIT CODES:

	0  claim cleared (with or without deductions)
	1  claim rejected, or the tool itself failed

EXAMPLES:

	# Markdown report to stdout
	adjudicate evaluate -p policy.json -c claim.json

	# Raw report JSON for piping
	adjudicate evaluate -p policy.json -c claim.json -o json

	# Full text report to a file
	adjudicate evaluate -p policy.json -c claim.json -o text -w report.txt

SEE ALSO:
  - cmd/server/main.go: the HTTP service over the same engine
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearclaim/claims-engine/engine"
	"github.com/clearclaim/claims-engine/intake"
	"github.com/clearclaim/claims-engine/report"
)

func main() {
	root := &cobra.Command{
		Use:           "adjudicate",
		Short:         "Evaluate insurance claims against policy rules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newRulesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newEvaluateCmd() *cobra.Command {
	var (
		policyPath string
		claimPath  string
		format     string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Adjudicate one policy+claim document pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			policyData, err := os.ReadFile(policyPath)
			if err != nil {
				return fmt.Errorf("read policy: %w", err)
			}
			claimData, err := os.ReadFile(claimPath)
			if err != nil {
				return fmt.Errorf("read claim: %w", err)
			}

			policy, err := intake.ParsePolicy(policyData)
			if err != nil {
				return err
			}
			claim, err := intake.ParseClaim(claimData)
			if err != nil {
				return err
			}

			result, err := engine.New().Evaluate(policy, claim)
			if err != nil {
				return err
			}

			out, err := renderResult(result, format)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}

			if result.Status == engine.StatusRejected {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&policyPath, "policy", "p", "", "path to the extracted policy JSON (required)")
	cmd.Flags().StringVarP(&claimPath, "claim", "c", "", "path to the extracted claim JSON (required)")
	cmd.Flags().StringVarP(&format, "output", "o", "markdown", "output format: markdown, ascii, html, text, json")
	cmd.Flags().StringVarP(&outPath, "write", "w", "", "write the report to a file instead of stdout")
	cmd.MarkFlagRequired("policy")
	cmd.MarkFlagRequired("claim")

	return cmd
}

func renderResult(result *engine.RuleReport, format string) (string, error) {
	if format == "json" {
		data, err := json.MarshalIndent(jsonReport(result), "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	f, ok := report.ParseFormat(format)
	if !ok {
		return "", fmt.Errorf("unknown output format %q", format)
	}
	return report.Render(result, f), nil
}

// jsonReport flattens the report for machine consumption: enums as strings,
// money as plain decimal strings.
func jsonReport(result *engine.RuleReport) map[string]any {
	rules := make([]map[string]any, len(result.RuleResults))
	for i, res := range result.RuleResults {
		rule := map[string]any{
			"key":              string(res.Key),
			"rule_name":        res.RuleName,
			"section":          res.Section.String(),
			"decision":         res.Decision.String(),
			"criteria_met":     res.CriteriaMet,
			"confidence_score": res.ConfidenceScore,
			"details":          res.Details,
		}
		if res.DeductionAmount != nil {
			rule["deduction_amount"] = res.DeductionAmount.String()
		}
		rules[i] = rule
	}
	return map[string]any{
		"overall_valid":      result.OverallValid,
		"overall_confidence": result.OverallConfidence,
		"total_deductions":   result.TotalDeductions.String(),
		"risk_level":         string(result.RiskLevel),
		"status":             string(result.Status),
		"recommendations":    result.Recommendations,
		"rule_results":       rules,
	}
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the rule catalog in evaluation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, e := range engine.Catalog() {
				critical := ""
				if e.Critical {
					critical = " [critical]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-25s %-16s %s%s\n",
					e.Key, e.Section, e.Criteria, critical)
			}
			return nil
		},
	}
}
