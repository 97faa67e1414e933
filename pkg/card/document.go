package card

import (
	"encoding/json"
	"sort"
)

// Top-level document field names. Any other top-level key is the content of
// the section with that id.
const (
	FieldSchemaVersion      = "schemaVersion"
	FieldSections           = "sections"
	FieldSectionsStacked    = "sectionsStacked"
	FieldSectionTitles      = "sectionTitles"
	FieldSectionIcons       = "sectionIcons"
	FieldSectionColors      = "sectionColors"
	FieldSubtitleColors     = "subtitleColors"
	FieldCollapsedSubtitles = "collapsedSubtitles"
	FieldCardNotes          = "cardNotes"
	FieldHeader             = "header"
	FieldDarkMode           = "darkMode"
	FieldDisplayMode        = "displayMode"
	FieldTimers             = "timers"
	FieldQuickAccessItems   = "quickAccessItems"
)

// Fields lists every reserved top-level field name.
func Fields() []string {
	return []string{
		FieldSchemaVersion, FieldSections, FieldSectionsStacked,
		FieldSectionTitles, FieldSectionIcons, FieldSectionColors,
		FieldSubtitleColors, FieldCollapsedSubtitles, FieldCardNotes,
		FieldHeader, FieldDarkMode, FieldDisplayMode, FieldTimers,
		FieldQuickAccessItems,
	}
}

// IsField reports whether name is a reserved top-level field.
func IsField(name string) bool {
	for _, f := range Fields() {
		if f == name {
			return true
		}
	}
	return false
}

// Document is the whole persisted dashboard.
type Document struct {
	SchemaVersion int

	// Sections is the card order of the normal display mode.
	Sections []SectionRef
	// SectionsStacked is the card order of the stacked display mode. nil
	// means it has not been derived yet; see Stacked.
	SectionsStacked []SectionRef

	SectionTitles  map[string]string
	SectionIcons   map[string]string
	SectionColors  map[string]ColorPair
	SubtitleColors map[string]ColorPair
	// CollapsedSubtitles and SubtitleColors are keyed by SubtitleKey.
	CollapsedSubtitles map[string]bool
	CardNotes          map[string]string

	Header           Record
	DarkMode         bool
	DisplayMode      DisplayMode
	Timers           []Record
	QuickAccessItems []any

	// Content is keyed by section id. A missing entry is an empty card.
	Content map[string]*Content
}

// New returns the empty default document.
func New() *Document {
	return &Document{
		SchemaVersion:      SchemaVersion,
		Sections:           []SectionRef{},
		SectionTitles:      map[string]string{},
		SectionIcons:       map[string]string{},
		SectionColors:      map[string]ColorPair{},
		SubtitleColors:     map[string]ColorPair{},
		CollapsedSubtitles: map[string]bool{},
		CardNotes:          map[string]string{},
		Header:             Record{},
		DisplayMode:        Normal,
		Timers:             []Record{},
		QuickAccessItems:   []any{},
		Content:            map[string]*Content{},
	}
}

// SubtitleKey builds the composite sectionId:subtitle key.
func SubtitleKey(sectionID, subtitle string) string {
	return sectionID + ":" + subtitle
}

// Stacked returns the stacked layout, deriving it from Sections without
// pairing flags on first access.
func (d *Document) Stacked() []SectionRef {
	if d.SectionsStacked == nil {
		d.SectionsStacked = make([]SectionRef, len(d.Sections))
		for i, s := range d.Sections {
			s.TwoColumnPair = false
			s.PairIndex = 0
			d.SectionsStacked[i] = s
		}
	}
	return d.SectionsStacked
}

// Layout returns a pointer to the section list of the mode.
func (d *Document) Layout(mode DisplayMode) *[]SectionRef {
	if mode == Stacked {
		d.Stacked()
		return &d.SectionsStacked
	}
	return &d.Sections
}

// Section finds a section in the normal layout, falling back to stacked.
func (d *Document) Section(id string) (SectionRef, bool) {
	for _, list := range [][]SectionRef{d.Sections, d.SectionsStacked} {
		for _, s := range list {
			if s.ID == id {
				return s, true
			}
		}
	}
	return SectionRef{}, false
}

// SectionIDs returns the ids of both layouts, normal order first.
func (d *Document) SectionIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, list := range [][]SectionRef{d.Sections, d.SectionsStacked} {
		for _, s := range list {
			if s.ID == "" || seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// ContentOf returns the content of a section, or empty content.
func (d *Document) ContentOf(id string) *Content {
	if c := d.Content[id]; c != nil {
		return c
	}
	return &Content{}
}

// FieldSet records which top-level fields were present and well typed.
type FieldSet map[string]bool

// DecodeFields decodes the top-level fields of a raw document one at a time.
// A field with the wrong type is skipped and left out of the FieldSet; it is
// never an error. Content is decoded for every section id in either layout.
func DecodeFields(raw map[string]json.RawMessage) (*Document, FieldSet) {
	d := New()
	d.SchemaVersion = 0
	set := FieldSet{}

	decode := func(field string, fn func(json.RawMessage) bool) {
		if v, ok := raw[field]; ok && fn(v) {
			set[field] = true
		}
	}

	decode(FieldSchemaVersion, func(v json.RawMessage) bool {
		var n float64
		if json.Unmarshal(v, &n) != nil {
			return false
		}
		d.SchemaVersion = int(n)
		return true
	})
	decode(FieldSections, func(v json.RawMessage) bool {
		list, ok := decodeSections(v)
		d.Sections = list
		return ok
	})
	decode(FieldSectionsStacked, func(v json.RawMessage) bool {
		list, ok := decodeSections(v)
		if ok {
			d.SectionsStacked = list
		}
		return ok
	})
	decode(FieldSectionTitles, func(v json.RawMessage) bool { return decodeStrings(v, d.SectionTitles) })
	decode(FieldSectionIcons, func(v json.RawMessage) bool { return decodeStrings(v, d.SectionIcons) })
	decode(FieldCardNotes, func(v json.RawMessage) bool { return decodeStrings(v, d.CardNotes) })
	decode(FieldSectionColors, func(v json.RawMessage) bool { return decodeColors(v, d.SectionColors) })
	decode(FieldSubtitleColors, func(v json.RawMessage) bool { return decodeColors(v, d.SubtitleColors) })
	decode(FieldCollapsedSubtitles, func(v json.RawMessage) bool {
		var m map[string]any
		if json.Unmarshal(v, &m) != nil || m == nil {
			return false
		}
		for k, b := range m {
			if flag, ok := b.(bool); ok {
				d.CollapsedSubtitles[k] = flag
			}
		}
		return true
	})
	decode(FieldHeader, func(v json.RawMessage) bool {
		var m map[string]any
		if json.Unmarshal(v, &m) != nil || m == nil {
			return false
		}
		d.Header = Record(m)
		return true
	})
	decode(FieldDarkMode, func(v json.RawMessage) bool {
		var b any
		if json.Unmarshal(v, &b) != nil {
			return false
		}
		flag, ok := b.(bool)
		d.DarkMode = flag
		return ok
	})
	decode(FieldDisplayMode, func(v json.RawMessage) bool {
		var s any
		if json.Unmarshal(v, &s) != nil {
			return false
		}
		raw, _ := s.(string)
		mode, ok := ParseDisplayMode(raw)
		if ok {
			d.DisplayMode = mode
		}
		return ok
	})
	decode(FieldTimers, func(v json.RawMessage) bool {
		var list []any
		if json.Unmarshal(v, &list) != nil || list == nil {
			return false
		}
		for _, t := range list {
			if m, ok := t.(map[string]any); ok {
				d.Timers = append(d.Timers, Record(m))
			}
		}
		return true
	})
	decode(FieldQuickAccessItems, func(v json.RawMessage) bool {
		var list []any
		if json.Unmarshal(v, &list) != nil || list == nil {
			return false
		}
		d.QuickAccessItems = list
		return true
	})

	for _, id := range d.SectionIDs() {
		if v, ok := raw[id]; ok && !IsField(id) {
			d.Content[id] = DecodeContent(v)
		}
	}
	return d, set
}

func decodeSections(v json.RawMessage) ([]SectionRef, bool) {
	var list []any
	if json.Unmarshal(v, &list) != nil || list == nil {
		return []SectionRef{}, false
	}
	out := make([]SectionRef, 0, len(list))
	seen := make(map[string]bool)
	for _, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		s := sectionRefFromMap(m)
		if s.ID == "" || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out, true
}

func decodeStrings(v json.RawMessage, into map[string]string) bool {
	var m map[string]any
	if json.Unmarshal(v, &m) != nil || m == nil {
		return false
	}
	for k, s := range m {
		if val, ok := s.(string); ok {
			into[k] = val
		}
	}
	return true
}

func decodeColors(v json.RawMessage, into map[string]ColorPair) bool {
	var m map[string]any
	if json.Unmarshal(v, &m) != nil || m == nil {
		return false
	}
	for k, c := range m {
		if pair, ok := colorPairFrom(c); ok {
			into[k] = pair
		}
	}
	return true
}

// UnmarshalJSON decodes a current-shape document leniently. Older shapes
// should go through the migrate package first.
func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	decoded, _ := DecodeFields(raw)
	if decoded.SchemaVersion == 0 {
		decoded.SchemaVersion = SchemaVersion
	}
	*d = *decoded
	return nil
}

// MarshalJSON writes the enumerated top-level fields plus one content entry
// per section id of either layout.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := d.Fields()
	for _, id := range d.SectionIDs() {
		if IsField(id) {
			continue
		}
		out[id] = d.ContentOf(id)
	}
	return json.Marshal(out)
}

// Fields returns the enumerated top-level fields, without content.
func (d *Document) Fields() map[string]any {
	out := map[string]any{
		FieldSchemaVersion:      d.SchemaVersion,
		FieldSections:           nonNil(d.Sections),
		FieldSectionTitles:      nonNilMap(d.SectionTitles),
		FieldSectionIcons:       nonNilMap(d.SectionIcons),
		FieldSectionColors:      nonNilMap(d.SectionColors),
		FieldSubtitleColors:     nonNilMap(d.SubtitleColors),
		FieldCollapsedSubtitles: nonNilMap(d.CollapsedSubtitles),
		FieldCardNotes:          nonNilMap(d.CardNotes),
		FieldHeader:             nonNilMap(d.Header),
		FieldDarkMode:           d.DarkMode,
		FieldDisplayMode:        d.DisplayMode,
		FieldTimers:             nonNil(d.Timers),
		FieldQuickAccessItems:   nonNil(d.QuickAccessItems),
	}
	if d.SectionsStacked != nil {
		out[FieldSectionsStacked] = d.SectionsStacked
	}
	if out[FieldDisplayMode] == DisplayMode("") {
		out[FieldDisplayMode] = Normal
	}
	return out
}

// SectionTypes counts sections of the normal layout by type.
func (d *Document) SectionTypes() map[string]int {
	out := make(map[string]int)
	for _, s := range d.Sections {
		out[s.Type]++
	}
	return out
}

// SortedKeys returns the keys of m in order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nonNilMap[M ~map[string]V, V any](m M) M {
	if m == nil {
		return M{}
	}
	return m
}
