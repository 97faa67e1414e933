package card

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"tableflip.dev/cardboard/pkg/schedule"
)

// The *FromMap functions coerce loosely typed JSON objects, in the current or
// any older item shape, into typed items. Missing keys are backfilled from
// the item's name or its position; missing titles from the key.

// IconFromMap coerces an icon-like object. Dividers keep only key and icon.
func IconFromMap(m map[string]any, index int) IconItem {
	it := IconItem{
		Key:       keyOf(m, fmt.Sprintf("icon_%d", index)),
		Icon:      firstString(m, "icon", "image", "src"),
		IsDivider: boolOf(m["isDivider"]),
	}
	if !it.IsDivider {
		it.URL = firstString(m, "url", "href", "link")
		it.Title = firstString(m, "title", "name")
	}
	return it
}

// SubtaskFromMap coerces a text-link object.
func SubtaskFromMap(m map[string]any, index int) SubtaskItem {
	return SubtaskItem{
		Key:   keyOf(m, fmt.Sprintf("item_%d", index)),
		Text:  firstString(m, "text", "title", "name"),
		URL:   firstString(m, "url", "href", "link"),
		Links: linksOf(m["links"], false),
	}
}

// CopyPasteFromMap coerces a snippet object.
func CopyPasteFromMap(m map[string]any, index int) CopyPasteItem {
	return CopyPasteItem{
		Key:      keyOf(m, fmt.Sprintf("item_%d", index)),
		Text:     firstString(m, "text", "title", "name"),
		CopyText: firstString(m, "copyText", "value", "text"),
	}
}

// ReminderFromMap coerces a reminder object, including the legacy
// mode-based (calendar/interval) shape.
func ReminderFromMap(m map[string]any, index int) ReminderItem {
	r := ReminderItem{
		Key:   keyOf(m, reminderFallbackKey()),
		URL:   firstString(m, "url", "href", "link"),
		Links: linksOf(m["links"], true),
	}

	r.Title = firstString(m, "title", "name")
	if r.Title == "" {
		r.Title = TitleFromKey(str(m["key"]))
	}
	if r.Title == "" {
		r.Title = "Untitled"
	}

	r.Type = reminderTypeOf(m)

	if sm, ok := m["schedule"].(map[string]any); ok {
		if rule, ok := schedule.ParseRule(sm); ok {
			r.Schedule = &rule
		}
	}
	if n, ok := firstNumber(m, "interval", "target"); ok {
		r.Interval = &n
	}
	if n, ok := firstNumber(m, "currentNumber", "current"); ok {
		r.CurrentNumber = &n
	}
	if bm, ok := m["breakdown"].(map[string]any); ok {
		r.Breakdown = breakdownOf(bm)
	}

	if r.Type == ReminderInterval {
		switch it := schedule.IntervalMode(str(m["intervalType"])); it {
		case schedule.Limit, schedule.Goal:
			r.IntervalType = it
		default:
			r.IntervalType = schedule.Limit
		}
		switch u := IntervalUnit(str(m["intervalUnit"])); u {
		case UnitNone, UnitDollar, UnitPercent:
			r.IntervalUnit = u
		default:
			r.IntervalUnit = UnitNone
		}
	}
	return r
}

func reminderTypeOf(m map[string]any) ReminderType {
	switch ReminderType(str(m["type"])) {
	case ReminderDays:
		return ReminderDays
	case ReminderInterval:
		return ReminderInterval
	}
	switch str(m["mode"]) {
	case "calendar":
		return ReminderDays
	case "interval":
		return ReminderInterval
	}
	if _, ok := m["schedule"]; ok {
		return ReminderDays
	}
	if _, ok := firstNumber(m, "interval", "target"); ok {
		return ReminderInterval
	}
	return ReminderDays
}

func breakdownOf(m map[string]any) *Breakdown {
	b := &Breakdown{Locked: boolOf(m["locked"]), Rows: []BreakdownRow{}}
	rows, _ := m["rows"].([]any)
	for _, raw := range rows {
		rm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		v, _ := num(rm["value"])
		b.Rows = append(b.Rows, BreakdownRow{Label: str(rm["label"]), Value: v})
	}
	return b
}

// linksOf reads a list of {title,url}. When keepEmpty is set an absent list
// yields an empty, non-nil slice.
func linksOf(v any, keepEmpty bool) []Link {
	list, _ := v.([]any)
	var out []Link
	if keepEmpty {
		out = []Link{}
	}
	for _, raw := range list {
		switch l := raw.(type) {
		case map[string]any:
			link := Link{Title: firstString(l, "title", "name"), URL: str(l["url"])}
			if link.Title == "" && link.URL == "" {
				continue
			}
			out = append(out, link)
		case string:
			if l != "" {
				out = append(out, Link{Title: l, URL: l})
			}
		}
	}
	return out
}

var reminderFallbackKey = func() string {
	return fmt.Sprintf("reminder_%d_%s", time.Now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func keyOf(m map[string]any, fallback string) string {
	if k := strings.TrimSpace(str(m["key"])); k != "" {
		return k
	}
	for _, field := range []string{"name", "title", "text"} {
		if s := Slugify(str(m[field])); s != "" {
			return s
		}
	}
	return fallback
}

// Slugify lowercases s and joins its letter and digit runs with underscores.
func Slugify(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// TitleFromKey turns power_bi into "Power Bi".
func TitleFromKey(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func firstString(m map[string]any, fields ...string) string {
	for _, f := range fields {
		if s := str(m[f]); s != "" {
			return s
		}
	}
	return ""
}

func firstNumber(m map[string]any, fields ...string) (float64, bool) {
	for _, f := range fields {
		if n, ok := num(m[f]); ok {
			return n, true
		}
	}
	return 0, false
}

func str(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

func num(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func boolOf(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	}
	return false
}
