/*
capping.go - Benefit capping values

PURPOSE:

	Policy documents encode benefit caps three ways: a percentage of the base
	sum assured ("1%"), an absolute currency amount ("25000"), or the sentinel
	"at actuals" meaning unlimited. Upstream extraction hands these to us as
	free text. CappingValue is the tagged union the rest of the engine works
	with so sentinel substrings are parsed exactly once, at the data boundary.

KINDS:

	CapUnset      - field absent or zero; the benefit is uncapped
	CapPercentage - percentage of the base sum assured
	CapAbsolute   - flat currency ceiling
	CapUnlimited  - explicit "at actuals" wording

SEE ALSO:
  - policy.go: parses raw attributes into CappingValue
  - rules.go:  resolves CappingValue against the base sum assured
*/
package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CAPPING VALUE - Percentage | Absolute | Unlimited | unset
// =============================================================================

type CapKind int

const (
	CapUnset CapKind = iota
	CapPercentage
	CapAbsolute
	CapUnlimited
)

// CappingValue is a parsed benefit cap. The zero value means "no cap defined".
type CappingValue struct {
	Kind   CapKind
	Amount decimal.Decimal // percentage points for CapPercentage, currency for CapAbsolute
}

func PercentageCap(pct float64) CappingValue {
	return CappingValue{Kind: CapPercentage, Amount: decimal.NewFromFloat(pct)}
}

func AbsoluteCap(amount float64) CappingValue {
	return CappingValue{Kind: CapAbsolute, Amount: decimal.NewFromFloat(amount)}
}

func UnlimitedCap() CappingValue {
	return CappingValue{Kind: CapUnlimited}
}

// ParseCapping converts raw capping text into a CappingValue. Empty text,
// "0" and unparsable text all come back as CapUnset with ok=false only for
// genuinely unparsable input; absence is a valid state, not an error.
//
//	""            -> CapUnset, true
//	"0"           -> CapUnset, true
//	"at actuals"  -> CapUnlimited, true
//	"1%"          -> CapPercentage(1), true
//	"25,000"      -> CapAbsolute(25000), true
//	"one lakh"    -> CapUnset, false
func ParseCapping(raw string) (CappingValue, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return CappingValue{}, true
	}
	if strings.Contains(strings.ToLower(s), "actuals") {
		return UnlimitedCap(), true
	}

	isPercent := strings.Contains(s, "%")
	d, err := decimal.NewFromString(stripAmountNoise(s))
	if err != nil {
		return CappingValue{}, false
	}
	if d.IsZero() {
		return CappingValue{}, true
	}
	if isPercent {
		return CappingValue{Kind: CapPercentage, Amount: d}, true
	}
	return CappingValue{Kind: CapAbsolute, Amount: d}, true
}

// IsSet reports whether any cap was defined at all.
func (c CappingValue) IsSet() bool { return c.Kind != CapUnset }

// Limit resolves the cap to a currency ceiling against the base sum assured.
// The second return is false when no finite limit applies (unset or unlimited).
func (c CappingValue) Limit(baseSumAssured Money) (Money, bool) {
	switch c.Kind {
	case CapPercentage:
		return baseSumAssured.Percent(c.Amount), true
	case CapAbsolute:
		return Money{Value: c.Amount}, true
	default:
		return Money{}, false
	}
}

func (c CappingValue) String() string {
	switch c.Kind {
	case CapPercentage:
		return c.Amount.String() + "%"
	case CapAbsolute:
		return c.Amount.String()
	case CapUnlimited:
		return "at actuals"
	default:
		return "none"
	}
}

// stripAmountNoise removes formatting that upstream extraction leaves in
// numeric fields: thousands separators, percent signs, currency markers.
func stripAmountNoise(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "Rs")
	s = strings.TrimPrefix(s, "₹")
	return strings.TrimSpace(s)
}
