package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/schedule"
	"tableflip.dev/cardboard/pkg/store"
)

func plain(t *testing.T) (*PrettyPrint, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	buf := &bytes.Buffer{}
	return &PrettyPrint{Theme: card.Light, Profile: termenv.Ascii, Width: 80, Out: buf}, buf
}

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "#FFF", want: "#ffffff", ok: true},
		{in: "a1b2c3", want: "#a1b2c3", ok: true},
		{in: " #0f0 ", want: "#00ff00", ok: true},
		{in: "#12345", ok: false},
		{in: "red", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := NormalizeHex(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("NormalizeHex(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReadable(t *testing.T) {
	if Readable("#ffffff", card.Light) {
		t.Fatalf("white should not read on a light background")
	}
	if Readable("#000000", card.Dark) {
		t.Fatalf("black should not read on a dark background")
	}
	if !Readable("#1e66f5", card.Light) {
		t.Fatalf("blue should read on a light background")
	}
}

func dashboard(t *testing.T) *card.Document {
	t.Helper()
	d := card.New()
	id := d.AddSection("Daily")
	d.SetNote(id, "check these first")
	if _, err := d.AddItem(id, "", card.KindSubtasks, map[string]any{"text": "Inbox", "url": "https://mail.example.com"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := d.AddSubtitle(id, "Hidden"); err != nil {
		t.Fatalf("AddSubtitle: %v", err)
	}
	if _, err := d.AddItem(id, "Hidden", card.KindCopyPaste, map[string]any{"text": "sig", "copyText": "Regards"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	d.ToggleCollapsed(id, "Hidden")
	d.AddSection("Empty")
	return d
}

func TestDashboard(t *testing.T) {
	pp, buf := plain(t)
	pp.ShowKey = true
	d := dashboard(t)
	pp.Dashboard(d, card.Stacked)

	out := buf.String()
	for _, want := range []string{"Daily  section_1", "check these first", "• Inbox", "mail.example.com", "Hidden (1 hidden)", "Empty"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Regards") {
		t.Fatalf("collapsed subtitle printed its items:\n%s", out)
	}
}

func TestDashboardEmpty(t *testing.T) {
	pp, buf := plain(t)
	pp.Dashboard(card.New(), card.Normal)
	if !strings.Contains(buf.String(), "no cards") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWhen(t *testing.T) {
	target := 100.0
	next := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		item app.Due
		want string
	}{
		{name: "today", item: app.Due{Days: 0}, want: "today"},
		{name: "tomorrow", item: app.Due{Days: 1}, want: "tomorrow"},
		{name: "yesterday", item: app.Due{Days: -1}, want: "yesterday"},
		{name: "overdue", item: app.Due{Days: -3}, want: "3 days overdue"},
		{name: "later", item: app.Due{Days: 5, Next: next}, want: "in 5 days, Tue Feb 20"},
		{
			name: "interval",
			item: app.Due{
				Reminder: card.ReminderItem{Interval: &target, IntervalUnit: card.UnitDollar},
				Progress: &schedule.Progress{Remaining: 25, Band: schedule.BandWorse},
			},
			want: "$25 left of $100 (" + schedule.BandWorse.String() + ")",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := When(tt.item); got != tt.want {
				t.Fatalf("When() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDueTable(t *testing.T) {
	pp, buf := plain(t)
	d := card.New()
	id := d.AddSection("Bills")
	pp.Due(d, []app.Due{{
		SectionID: id,
		Subtitle:  card.DefaultSubtitle,
		Reminder:  card.ReminderItem{Title: "Rent"},
		Urgency:   schedule.Danger,
		Days:      -4,
	}})
	out := buf.String()
	for _, want := range []string{"Rent", "Bills", "4 days overdue", string(schedule.Danger)} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCalendar(t *testing.T) {
	pp, buf := plain(t)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	pp.Calendar(feb, nil)
	out := buf.String()
	if !strings.Contains(out, "February") || !strings.Contains(out, "29") {
		t.Fatalf("got:\n%s", out)
	}
	if DaysIn(feb) != 29 {
		t.Fatalf("DaysIn(feb 2024) = %d", DaysIn(feb))
	}
	if StartDay(feb) != time.Thursday {
		t.Fatalf("StartDay(feb 2024) = %s", StartDay(feb))
	}
	if got := NextMonth(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)); got.Month() != time.February {
		t.Fatalf("NextMonth = %s", got)
	}
}

func TestBackups(t *testing.T) {
	pp, buf := plain(t)
	pp.Backups([]store.Snapshot{{Name: "20240506T070809.000000000Z", Taken: time.Now(), Size: 42}})
	if !strings.Contains(buf.String(), "20240506T070809.000000000Z") || !strings.Contains(buf.String(), "42 B") {
		t.Fatalf("got:\n%s", buf.String())
	}
}
