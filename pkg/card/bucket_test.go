package card

import (
	"encoding/json"
	"testing"
)

func decodeAny(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode %s: %v", s, err)
	}
	return v
}

func assertWellFormed(t *testing.T, b Bucket) {
	t.Helper()
	if b.Icons == nil || b.Reminders == nil || b.Subtasks == nil || b.CopyPaste == nil {
		t.Fatalf("bucket has a nil collection: %+v", b)
	}
}

func TestNormalizeBucketTotality(t *testing.T) {
	inputs := map[string]string{
		"empty array": `[]`,
		"icon":        `[{"key":"gh","icon":"gh.png","url":"https://github.com"}]`,
		"reminder":    `[{"key":"rent","type":"days","schedule":{"type":"monthly","dayOfMonth":1}}]`,
		"copy paste":  `[{"key":"sig","text":"Signature","copyText":"-- me"}]`,
		"subtask":     `[{"key":"docs","text":"Docs","url":"https://docs"}]`,
		"null":        `null`,
		"object":      `{}`,
		"garbage":     `"garbage"`,
		"number":      `42`,
		"scalars":     `[1,2,3]`,
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			assertWellFormed(t, NormalizeBucket(decodeAny(t, in)))
		})
	}
}

func TestNormalizeBucketClassifiesBareArrays(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{`[{"title":"Pay rent","schedule":null}]`, KindReminders},
		{`[{"name":"Gym","mode":"interval","interval":3}]`, KindReminders},
		{`[{"title":"x","type":"interval"}]`, KindReminders},
		{`[{"text":"Email","copyText":"me@example.com","icon":"x"}]`, KindCopyPaste},
		{`[{"icon":"a.png","text":"both"}]`, KindIcons},
		{`[{"text":"Docs"}]`, KindSubtasks},
		{`[{"name":"Only a name"}]`, KindReminders},
	}
	for _, tc := range tests {
		b := NormalizeBucket(decodeAny(t, tc.in))
		assertWellFormed(t, b)
		if got := b.Len(tc.kind); got != 1 {
			t.Errorf("%s: expected one %s item, bucket %+v", tc.in, tc.kind, b)
		}
	}

	b := NormalizeBucket(decodeAny(t, `[{"foo":"bar"}]`))
	if !b.Empty() {
		t.Errorf("expected unrecognized shape to give an empty bucket, got %+v", b)
	}
}

func TestNormalizeBucketObjectFillsMissingFields(t *testing.T) {
	b := NormalizeBucket(decodeAny(t, `{"icons":[{"key":"a","icon":"a.png"}],"subtasks":[]}`))
	assertWellFormed(t, b)
	if len(b.Icons) != 1 || b.Icons[0].Key != "a" {
		t.Fatalf("unexpected icons %+v", b.Icons)
	}
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"icons":[{"key":"a","icon":"a.png"}],"reminders":[],"subtasks":[],"copyPaste":[]}`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}

func TestReminderFromMapBackfillsTitle(t *testing.T) {
	r := ReminderFromMap(map[string]any{"key": "power_bi"}, 0)
	if r.Title != "Power Bi" {
		t.Fatalf("expected Power Bi, got %q", r.Title)
	}
	r = ReminderFromMap(map[string]any{}, 3)
	if r.Title != "Untitled" {
		t.Fatalf("expected Untitled, got %q", r.Title)
	}
	if r.Key == "" {
		t.Fatalf("expected a synthesized key")
	}
	if r.Links == nil {
		t.Fatalf("expected non-nil links")
	}
}

func TestReminderCurrentFollowsUnlockedBreakdown(t *testing.T) {
	r := ReminderFromMap(map[string]any{
		"key": "budget", "type": "interval", "interval": "500", "currentNumber": 100.0,
		"breakdown": map[string]any{"locked": false, "rows": []any{
			map[string]any{"label": "food", "value": 120.0},
			map[string]any{"label": "fuel", "value": "30"},
		}},
	}, 0)
	if got := r.Current(); got != 150 {
		t.Fatalf("expected breakdown sum 150, got %v", got)
	}
	r.Breakdown.Locked = true
	if got := r.Current(); got != 100 {
		t.Fatalf("expected locked current 100, got %v", got)
	}
	p, ok := r.Progress()
	if !ok || p.Remaining != 400 {
		t.Fatalf("unexpected progress %+v", p)
	}
	if r.IntervalType != "limit" || r.IntervalUnit != UnitNone {
		t.Fatalf("expected interval defaults, got %q %q", r.IntervalType, r.IntervalUnit)
	}
}

func TestIconFromMapDropsDividerFields(t *testing.T) {
	it := IconFromMap(map[string]any{"icon": "line.svg", "isDivider": true, "url": "x"}, 4)
	if it != (IconItem{Key: "icon_4", Icon: "line.svg", IsDivider: true}) {
		t.Fatalf("unexpected divider %+v", it)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Power BI":        "power_bi",
		"  Google  Docs!": "google_docs",
		"---":             "",
		"Café 24/7":       "café_24_7",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q): expected %q, got %q", in, want, got)
		}
	}
}
