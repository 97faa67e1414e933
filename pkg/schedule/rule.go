// Package schedule holds the recurrence rules attached to reminders and the
// date arithmetic used to display them.
package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RuleType tags the shape of a Rule.
type RuleType string

const (
	// Once fires on a single stored date.
	Once RuleType = "once"
	// Weekday fires on a day of the week.
	Weekday RuleType = "weekday"
	// Monthly fires on a day of the month, clamped to the month length.
	Monthly RuleType = "monthly"
	// MonthlyWeekday fires on the Nth given weekday of the month.
	MonthlyWeekday RuleType = "monthlyWeekday"
	// FirstWeekdayOfMonth fires on the first given weekday of the month.
	FirstWeekdayOfMonth RuleType = "firstWeekdayOfMonth"
)

// ruleAliases maps names written by older versions onto current rule types.
var ruleAliases = map[string]RuleType{
	"once":                Once,
	"date":                Once,
	"weekday":             Weekday,
	"weekly":              Weekday,
	"monthly":             Monthly,
	"monthlyweekday":      MonthlyWeekday,
	"nthweekday":          MonthlyWeekday,
	"firstweekdayofmonth": FirstWeekdayOfMonth,
	"firstweekday":        FirstWeekdayOfMonth,
}

// ParseRuleType resolves a rule type name, accepting legacy aliases.
func ParseRuleType(raw string) (RuleType, error) {
	t, ok := ruleAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("schedule: unknown rule type %q", raw)
	}
	return t, nil
}

// Rule is a tagged recurrence specification. Only the fields relevant to Type
// are meaningful.
type Rule struct {
	Type RuleType

	// Date is the firing date of a Once rule.
	Date time.Time

	Weekday time.Weekday

	// WeekInterval is persisted for compatibility. NextOccurrence does not
	// skip weeks with it.
	WeekInterval int

	DayOfMonth  int
	WeekOfMonth int
}

const isoLayout = "2006-01-02T15:04:05.000Z"

// ParseDate accepts RFC3339 timestamps (with or without fractional seconds)
// and bare YYYY-MM-DD dates, the latter interpreted in the local zone.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", v, time.Local)
}

// FormatDate renders t the way the document stores dates: an ISO string in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseRule builds a normalized Rule from a loosely typed JSON object. The
// boolean result is false when the value cannot describe a rule.
func ParseRule(m map[string]any) (Rule, bool) {
	if m == nil {
		return Rule{}, false
	}
	rawType, _ := m["type"].(string)
	typ, err := ParseRuleType(rawType)
	if err != nil {
		return Rule{}, false
	}

	r := Rule{Type: typ}
	switch typ {
	case Once:
		s, _ := m["date"].(string)
		if s == "" {
			return Rule{}, false
		}
		d, err := ParseDate(s)
		if err != nil {
			return Rule{}, false
		}
		r.Date = d
	case Weekday:
		r.Weekday = weekdayOf(m["weekday"])
		r.WeekInterval = atLeastOne(intOf(m["weekInterval"]))
	case Monthly:
		r.DayOfMonth = clampInt(intOf(m["dayOfMonth"]), 1, 31)
	case MonthlyWeekday:
		r.Weekday = weekdayOf(m["weekday"])
		r.WeekOfMonth = atLeastOne(intOf(m["weekOfMonth"]))
	case FirstWeekdayOfMonth:
		r.Weekday = weekdayOf(m["weekday"])
		r.WeekOfMonth = 1
	}
	return r, true
}

// MarshalJSON writes only the fields of the rule's own type.
func (r Rule) MarshalJSON() ([]byte, error) {
	out := map[string]any{"type": r.Type}
	switch r.Type {
	case Once:
		out["date"] = FormatDate(r.Date)
	case Weekday:
		out["weekday"] = int(r.Weekday)
		out["weekInterval"] = atLeastOne(r.WeekInterval)
	case Monthly:
		out["dayOfMonth"] = r.DayOfMonth
	case MonthlyWeekday:
		out["weekday"] = int(r.Weekday)
		out["weekOfMonth"] = atLeastOne(r.WeekOfMonth)
	case FirstWeekdayOfMonth:
		out["weekday"] = int(r.Weekday)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts any object ParseRule understands.
func (r *Rule) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	parsed, ok := ParseRule(m)
	if !ok {
		return fmt.Errorf("schedule: invalid rule %s", string(b))
	}
	*r = parsed
	return nil
}

func weekdayOf(v any) time.Weekday {
	n := intOf(v) % 7
	if n < 0 {
		n += 7
	}
	return time.Weekday(n)
}

func intOf(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
