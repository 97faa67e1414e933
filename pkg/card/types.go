// Package card defines the dashboard document: the ordered section layouts,
// their presentation metadata and the unified per-section content buckets.
package card

import (
	"encoding/json"
	"strings"
)

// SchemaVersion is the version written by this package.
const SchemaVersion = 3

// UnifiedType is the section type of every migrated section.
const UnifiedType = "unified"

// DefaultSubtitle is the bucket name used for ungrouped content.
const DefaultSubtitle = "_default"

// Kind names one of the four collections held by a Bucket.
type Kind string

const (
	KindIcons     Kind = "icons"
	KindReminders Kind = "reminders"
	KindSubtasks  Kind = "subtasks"
	KindCopyPaste Kind = "copyPaste"
)

// AllKinds returns the bucket kinds in their persisted order.
func AllKinds() []Kind {
	return []Kind{KindIcons, KindReminders, KindSubtasks, KindCopyPaste}
}

// ParseKind resolves a kind name case-insensitively, accepting a few
// singular spellings used on the command line.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "icons", "icon":
		return KindIcons, nil
	case "reminders", "reminder":
		return KindReminders, nil
	case "subtasks", "subtask", "task", "tasks":
		return KindSubtasks, nil
	case "copypaste", "copy", "snippet", "snippets":
		return KindCopyPaste, nil
	}
	return "", &InvalidKindError{Kind: raw}
}

// keyPrefix is the prefix of keys generated for new items of the kind.
func (k Kind) keyPrefix() string {
	switch k {
	case KindIcons:
		return "icon"
	case KindReminders:
		return "reminder"
	case KindCopyPaste:
		return "copy"
	default:
		return "item"
	}
}

// DisplayMode selects which section layout is shown.
type DisplayMode string

const (
	Normal  DisplayMode = "normal"
	Stacked DisplayMode = "stacked"
)

// ParseDisplayMode only accepts the exact mode names.
func ParseDisplayMode(raw string) (DisplayMode, bool) {
	switch DisplayMode(raw) {
	case Normal, Stacked:
		return DisplayMode(raw), true
	}
	return "", false
}

// Theme selects the light or dark half of a ColorPair.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// SectionRef places a card in a layout.
type SectionRef struct {
	ID    string
	Type  string
	Title string

	// TwoColumnPair marks the section as half of a side-by-side pair with the
	// adjacent section holding the complementary PairIndex.
	TwoColumnPair bool
	PairIndex     int
}

type sectionRefJSON struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	TwoColumnPair bool   `json:"twoColumnPair,omitempty"`
	PairIndex     *int   `json:"pairIndex,omitempty"`
}

func (s SectionRef) MarshalJSON() ([]byte, error) {
	out := sectionRefJSON{ID: s.ID, Type: s.Type, Title: s.Title}
	if s.TwoColumnPair {
		idx := s.PairIndex
		out.TwoColumnPair = true
		out.PairIndex = &idx
	}
	return json.Marshal(out)
}

func (s *SectionRef) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*s = sectionRefFromMap(m)
	return nil
}

func sectionRefFromMap(m map[string]any) SectionRef {
	s := SectionRef{
		ID:    str(m["id"]),
		Type:  str(m["type"]),
		Title: str(m["title"]),
	}
	if boolOf(m["twoColumnPair"]) {
		s.TwoColumnPair = true
		if n, ok := num(m["pairIndex"]); ok && n == 1 {
			s.PairIndex = 1
		}
	}
	return s
}

// ColorPair holds a color per theme. Either half may be empty.
type ColorPair struct {
	Light string `json:"light,omitempty"`
	Dark  string `json:"dark,omitempty"`
}

// For returns the color of the theme.
func (c ColorPair) For(t Theme) string {
	if t == Dark {
		return c.Dark
	}
	return c.Light
}

// With returns a copy with the theme's color replaced.
func (c ColorPair) With(t Theme, color string) ColorPair {
	if t == Dark {
		c.Dark = color
	} else {
		c.Light = color
	}
	return c
}

// IsZero reports whether neither theme has a color.
func (c ColorPair) IsZero() bool {
	return c.Light == "" && c.Dark == ""
}

// colorPairFrom reads an object entry, or a bare string as the light color.
func colorPairFrom(v any) (ColorPair, bool) {
	switch c := v.(type) {
	case string:
		return ColorPair{Light: c}, true
	case map[string]any:
		return ColorPair{Light: str(c["light"]), Dark: str(c["dark"])}, true
	}
	return ColorPair{}, false
}

// Link is a titled URL attached to a reminder or subtask.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// IconItem is a launcher tile, or a visual separator when IsDivider is set.
type IconItem struct {
	Key       string `json:"key"`
	Icon      string `json:"icon"`
	URL       string `json:"url,omitempty"`
	Title     string `json:"title,omitempty"`
	IsDivider bool   `json:"isDivider,omitempty"`
}

// SubtaskItem is a text link.
type SubtaskItem struct {
	Key   string `json:"key"`
	Text  string `json:"text"`
	URL   string `json:"url"`
	Links []Link `json:"links,omitempty"`
}

// CopyPasteItem is a snippet whose CopyText goes to the clipboard.
type CopyPasteItem struct {
	Key      string `json:"key"`
	Text     string `json:"text"`
	CopyText string `json:"copyText"`
}

func (i IconItem) ItemKey() string      { return i.Key }
func (i ReminderItem) ItemKey() string  { return i.Key }
func (i SubtaskItem) ItemKey() string   { return i.Key }
func (i CopyPasteItem) ItemKey() string { return i.Key }

// Record is an opaque JSON object carried for the UI (timers, header).
type Record map[string]any
