package card

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ids(list []SectionRef) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return out
}

func TestAddAndDeleteSection(t *testing.T) {
	d := New()
	a := d.AddSection("Tools")
	b := d.AddSection("Bills")
	if a != "section_1" || b != "section_2" {
		t.Fatalf("unexpected ids %s %s", a, b)
	}
	if diff := cmp.Diff([]string{a, b}, ids(d.Stacked())); diff != "" {
		t.Fatalf("stacked layout (-want +got):\n%s", diff)
	}

	d.SetSectionColor(b, Dark, "#111")
	d.SetSubtitleColor(b, "Home", Light, "#222")
	d.ToggleCollapsed(b, "Home")
	d.SetNote(b, "pay on time")
	if err := d.PairSections(Normal, 0); err != nil {
		t.Fatalf("pair: %v", err)
	}

	if err := d.DeleteSection(b); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if diff := cmp.Diff([]string{a}, ids(d.Sections)); diff != "" {
		t.Fatalf("sections (-want +got):\n%s", diff)
	}
	if d.Sections[0].TwoColumnPair {
		t.Fatalf("expected partner to be unpaired")
	}
	if len(d.SectionColors)+len(d.SubtitleColors)+len(d.CollapsedSubtitles)+len(d.CardNotes) != 0 {
		t.Fatalf("expected metadata cleanup, got %+v", d)
	}
	if _, ok := d.Content[b]; ok {
		t.Fatalf("expected content removed")
	}

	var nf NotFoundError
	if err := d.DeleteSection(b); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestReorderSectionRepairsPairs(t *testing.T) {
	d := New()
	for _, title := range []string{"a", "b", "c"} {
		d.AddSection(title)
	}
	if err := d.PairSections(Normal, 0); err != nil {
		t.Fatalf("pair: %v", err)
	}
	if err := d.ReorderSection(Normal, 2, 1); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if diff := cmp.Diff([]string{"section_1", "section_3", "section_2"}, ids(d.Sections)); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	for _, s := range d.Sections {
		if s.TwoColumnPair {
			t.Fatalf("expected split pair to be cleared: %+v", d.Sections)
		}
	}

	if err := d.ReorderSection(Stacked, 0, 2); err != nil {
		t.Fatalf("reorder stacked: %v", err)
	}
	if diff := cmp.Diff([]string{"section_2", "section_3", "section_1"}, ids(d.SectionsStacked)); diff != "" {
		t.Fatalf("stacked order (-want +got):\n%s", diff)
	}
	var ie IndexError
	if err := d.ReorderSection(Normal, 5, 0); !errors.As(err, &ie) {
		t.Fatalf("expected IndexError, got %v", err)
	}
}

func TestItemOperations(t *testing.T) {
	d := New()
	id := d.AddSection("Links")

	k1, err := d.AddItem(id, "", KindIcons, map[string]any{"icon": "a.png", "url": "https://a"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	k2, _ := d.AddItem(id, "", KindIcons, map[string]any{"key": k1, "icon": "b.png"})
	k3, _ := d.AddItem(id, "Work", KindReminders, map[string]any{"title": "Standup", "schedule": map[string]any{"type": "weekday", "weekday": 1.0}})
	if k1 == k2 {
		t.Fatalf("expected duplicate key to be replaced, got %s twice", k1)
	}
	if k3 != "reminder_1" {
		t.Fatalf("expected reminder_1, got %s", k3)
	}

	c := d.ContentOf(id)
	if diff := cmp.Diff([]string{DefaultSubtitle, "Work"}, c.Subtitles()); diff != "" {
		t.Fatalf("subtitles (-want +got):\n%s", diff)
	}

	if err := d.ReorderItem(id, DefaultSubtitle, KindIcons, 1, 0); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if diff := cmp.Diff([]string{k2, k1}, c.Bucket(DefaultSubtitle).Keys(KindIcons)); diff != "" {
		t.Fatalf("icon order (-want +got):\n%s", diff)
	}

	if err := d.DeleteItem(id, "", KindIcons, k1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := d.DeleteItem(id, "", KindIcons, k1); err == nil {
		t.Fatalf("expected second delete to fail")
	}
	if _, err := d.AddItem("missing", "", KindIcons, nil); err == nil {
		t.Fatalf("expected missing section error")
	}
	if _, err := d.AddItem(id, "Bogus", Kind("widgets"), nil); err == nil {
		t.Fatalf("expected invalid kind error")
	}
	if got := c.Bucket("Bogus"); got != nil {
		t.Fatalf("invalid kind left subtitle Bogus behind: %+v", got)
	}

	d.SetSubtitleColor(id, "Work", Light, "#fff")
	if err := d.DeleteSubtitle(id, "Work"); err != nil {
		t.Fatalf("delete subtitle: %v", err)
	}
	if _, ok := d.SubtitleColors[SubtitleKey(id, "Work")]; ok {
		t.Fatalf("expected subtitle color cleanup")
	}
}

func TestSetColorKeepsOtherTheme(t *testing.T) {
	d := New()
	d.SetSectionColor("a", Light, "#aaa")
	d.SetSectionColor("a", Dark, "#bbb")
	d.SetSectionColor("a", Light, "#ccc")
	if got := d.SectionColors["a"]; got != (ColorPair{Light: "#ccc", Dark: "#bbb"}) {
		t.Fatalf("unexpected pair %+v", got)
	}
	d.SetSectionColor("a", Light, "")
	d.SetSectionColor("a", Dark, "")
	if _, ok := d.SectionColors["a"]; ok {
		t.Fatalf("expected cleared entry to be removed")
	}
}
