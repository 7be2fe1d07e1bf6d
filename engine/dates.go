package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// DATE - Day-granularity date with tolerant parsing
// =============================================================================

// Date is a calendar day in UTC. The engine never cares about times of day.
type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) IsZero() bool                  { return d.Time.IsZero() }
func (d Date) AddDays(n int) Date            { return Date{Time: d.Time.AddDate(0, 0, n)} }

// String renders the canonical YYYY-MM-DD form. Parsing then re-rendering is
// stable across all three accepted input formats.
func (d Date) String() string { return d.Time.Format("2006-01-02") }

// DaysBetween returns the number of whole days from from to to.
func DaysBetween(from, to Date) int {
	return int(to.Time.Sub(from.Time).Hours() / 24)
}

// =============================================================================
// PARSING - YYYY-MM-DD, DD/MM/YYYY, DD/MM/YY (tried in that order)
// =============================================================================

// ParseDate parses the date formats tolerated at the data boundary:
// "2006-01-02", "15/06/2024" and "15/06/24". Two-digit years pivot at 50:
// yy < 50 means 2000+yy, otherwise 1900+yy. Go's own two-digit-year rule
// pivots at 69, so DD/MM/YY is handled by hand.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return Date{Time: t}, nil
	}
	if d, ok := parseShortYear(s); ok {
		return d, nil
	}
	return Date{}, fmt.Errorf("unrecognized date format: %q", s)
}

// parseShortYear handles DD/MM/YY with the 50 pivot.
func parseShortYear(s string) (Date, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 || len(parts[2]) != 2 {
		return Date{}, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	yy, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return Date{}, false
	}

	year := 1900 + yy
	if yy < 50 {
		year = 2000 + yy
	}

	// Reject impossible day/month combinations instead of letting
	// time.Date normalize them (31/02/24 must not become March 2).
	if month < 1 || month > 12 || day < 1 {
		return Date{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) {
		return Date{}, false
	}
	return Date{Time: t}, true
}
