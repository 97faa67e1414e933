package schedule

import (
	"encoding/json"
	"testing"
	"time"
)

func TestIntervalProgress(t *testing.T) {
	tests := []struct {
		name    string
		target  float64
		current float64
		mode    IntervalMode
		pct     float64
		band    Band
		urgency Urgency
	}{
		{"limit with headroom", 100, 10, Limit, 90, BandBest, Green},
		{"limit at half", 100, 50, Limit, 50, BandWarn, Warn},
		{"limit nearly used", 100, 70, Limit, 30, BandWorse, Orange},
		{"limit exceeded", 100, 120, Limit, -20, BandWorst, Danger},
		{"goal far away", 100, 10, Goal, 90, BandBest, Danger},
		{"goal halfway", 100, 40, Goal, 60, BandWarn, Orange},
		{"goal close", 100, 70, Goal, 30, BandWorse, Warn},
		{"goal passed", 100, 130, Goal, -30, BandWorst, Green},
		{"zero target", 0, 5, Limit, 0, BandWorst, Danger},
		{"negative target", -200, -50, Limit, -75, BandWorst, Danger},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := IntervalProgress(tc.target, tc.current, tc.mode)
			if p.Remaining != tc.target-tc.current {
				t.Errorf("remaining: expected %v, got %v", tc.target-tc.current, p.Remaining)
			}
			if p.Percentage != tc.pct {
				t.Errorf("percentage: expected %v, got %v", tc.pct, p.Percentage)
			}
			if p.Band != tc.band {
				t.Errorf("band: expected %s, got %s", tc.band, p.Band)
			}
			if p.Urgency != tc.urgency {
				t.Errorf("urgency: expected %s, got %s", tc.urgency, p.Urgency)
			}
		})
	}
}

func TestParseRuleNormalizes(t *testing.T) {
	r, ok := ParseRule(map[string]any{"type": "weekly", "weekday": float64(10)})
	if !ok {
		t.Fatalf("expected weekly alias to parse")
	}
	if r.Type != Weekday || r.Weekday != time.Wednesday || r.WeekInterval != 1 {
		t.Fatalf("unexpected rule %+v", r)
	}

	r, ok = ParseRule(map[string]any{"type": "monthly", "dayOfMonth": "45"})
	if !ok || r.DayOfMonth != 31 {
		t.Fatalf("expected clamped day of month, got %+v", r)
	}

	if _, ok := ParseRule(map[string]any{"type": "fortnightly"}); ok {
		t.Fatalf("expected unknown type to be rejected")
	}
	if _, ok := ParseRule(map[string]any{"type": "once"}); ok {
		t.Fatalf("expected once without date to be rejected")
	}
}

func TestRuleJSONKeepsSundayAndDate(t *testing.T) {
	in := `{"type":"firstWeekdayOfMonth","weekday":0}`
	var r Rule
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != in {
		t.Fatalf("expected %s, got %s", in, out)
	}

	once := Rule{Type: Once, Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)}
	out, err = json.Marshal(once)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"date":"2024-03-05T00:00:00.000Z","type":"once"}`; string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
	var back Rule
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Date.Equal(once.Date) {
		t.Fatalf("expected %v, got %v", once.Date, back.Date)
	}
}
