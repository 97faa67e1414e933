package card

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/cardboard/pkg/schedule"
)

const sampleDocument = `{
  "schemaVersion": 3,
  "sections": [
    {"id": "tools", "type": "unified", "title": "Tools", "twoColumnPair": true, "pairIndex": 0},
    {"id": "bills", "type": "unified", "title": "Bills", "twoColumnPair": true, "pairIndex": 1}
  ],
  "sectionColors": {"tools": {"light": "#aaa", "dark": "#bbb"}, "bills": "#123456"},
  "collapsedSubtitles": {"bills:Home": true, "bills:Car": "yes"},
  "darkMode": "true",
  "displayMode": "sideways",
  "header": {"title": "Home"},
  "timers": [{"label": "tea", "seconds": 180}, 7],
  "tools": {
    "Work": {"icons": [{"key": "gh", "icon": "gh.png", "url": "https://github.com", "title": "GitHub"}]},
    "_default": [{"text": "Docs", "url": "https://docs"}]
  },
  "bills": {
    "Home": {"reminders": [{"key": "rent", "title": "Rent", "url": "", "type": "days",
      "schedule": {"type": "once", "date": "2024-03-05T00:00:00.000Z"}, "links": []}]}
  },
  "orphan": {"_default": {"icons": []}}
}`

func TestDecodeDocumentIsLenient(t *testing.T) {
	var d Document
	if err := json.Unmarshal([]byte(sampleDocument), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if d.DarkMode {
		t.Errorf("expected string darkMode to be ignored")
	}
	if d.DisplayMode != Normal {
		t.Errorf("expected invalid displayMode to keep default, got %q", d.DisplayMode)
	}
	if got := d.SectionColors["bills"]; got != (ColorPair{Light: "#123456"}) {
		t.Errorf("expected bare color string to become light, got %+v", got)
	}
	if !d.CollapsedSubtitles["bills:Home"] || len(d.CollapsedSubtitles) != 1 {
		t.Errorf("unexpected collapsed state %v", d.CollapsedSubtitles)
	}
	if len(d.Timers) != 1 || d.Timers[0]["label"] != "tea" {
		t.Errorf("unexpected timers %v", d.Timers)
	}
	if _, ok := d.Content["orphan"]; ok {
		t.Errorf("expected content of unknown section to be dropped")
	}

	tools := d.ContentOf("tools")
	if diff := cmp.Diff([]string{"Work", DefaultSubtitle}, tools.Subtitles()); diff != "" {
		t.Errorf("subtitle order (-want +got):\n%s", diff)
	}
	if got := tools.Bucket(DefaultSubtitle).Subtasks; len(got) != 1 || got[0].Key != "docs" {
		t.Errorf("expected bare array to normalize into subtasks, got %+v", got)
	}

	rent := d.ContentOf("bills").Bucket("Home").Reminders[0]
	if rent.Schedule == nil || rent.Schedule.Type != schedule.Once {
		t.Fatalf("expected once schedule, got %+v", rent.Schedule)
	}
	if want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC); !rent.Schedule.Date.Equal(want) {
		t.Errorf("expected %v, got %v", want, rent.Schedule.Date)
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	var d Document
	if err := json.Unmarshal([]byte(sampleDocument), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	first, err := json.Marshal(&d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Document
	if err := json.Unmarshal(first, &again); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	second, err := json.Marshal(&again)
	if err != nil {
		t.Fatalf("marshal again: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("round trip changed the document:\n%s\n%s", first, second)
	}
}

func TestStackedIsDerivedWithoutPairs(t *testing.T) {
	d := New()
	d.Sections = []SectionRef{
		{ID: "a", Type: UnifiedType, TwoColumnPair: true, PairIndex: 0},
		{ID: "b", Type: UnifiedType, TwoColumnPair: true, PairIndex: 1},
	}
	stacked := d.Stacked()
	for _, s := range stacked {
		if s.TwoColumnPair {
			t.Fatalf("expected stacked layout without pairs, got %+v", stacked)
		}
	}
	if !d.Sections[0].TwoColumnPair {
		t.Fatalf("deriving stacked must not touch the normal layout")
	}
	stacked[0].Title = "changed"
	if d.Sections[0].Title == "changed" {
		t.Fatalf("stacked layout shares memory with sections")
	}
}

func TestCloneSharesNothing(t *testing.T) {
	var d Document
	if err := json.Unmarshal([]byte(sampleDocument), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	c := d.Clone()
	if mustJSON(t, &d) != mustJSON(t, c) {
		t.Fatalf("clone differs from original")
	}

	c.Sections[0].Title = "x"
	c.SectionColors["tools"] = ColorPair{Light: "#000"}
	c.Header["title"] = "Changed"
	c.Timers[0]["label"] = "coffee"
	rent := &c.ContentOf("bills").Bucket("Home").Reminders[0]
	rent.Schedule.Date = rent.Schedule.Date.AddDate(1, 0, 0)
	rent.Links = append(rent.Links, Link{Title: "pay", URL: "https://bank"})

	orig := d.ContentOf("bills").Bucket("Home").Reminders[0]
	switch {
	case d.Sections[0].Title != "Tools":
		t.Fatalf("sections shared")
	case d.SectionColors["tools"].Light != "#aaa":
		t.Fatalf("colors shared")
	case d.Header["title"] != "Home":
		t.Fatalf("header shared")
	case d.Timers[0]["label"] != "tea":
		t.Fatalf("timers shared")
	case orig.Schedule.Date.Year() != 2024 || len(orig.Links) != 0:
		t.Fatalf("reminder shared: %+v", orig)
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}
