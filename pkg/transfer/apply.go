package transfer

import (
	"encoding/json"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/migrate"
)

// uiFields are applied only when well typed.
var uiFields = []string{
	card.FieldDarkMode,
	card.FieldDisplayMode,
	card.FieldTimers,
	card.FieldQuickAccessItems,
}

// Result summarizes an applied import.
type Result struct {
	// Version is the schema version the payload declared, 1 if none.
	Version   int
	Migration migrate.Report
	// Sections lists the ids whose content was replaced.
	Sections []string
	// Ignored lists UI fields present with an unusable value.
	Ignored []string
}

// Apply writes an imported payload onto live. Structure is applied before
// content so every id the content references is known. Older payloads are
// migrated first. Content replaces live content whole, per section. raw is
// modified.
//
// Malformed values are skipped, never reported as errors.
func Apply(live *card.Document, raw migrate.Raw) Result {
	res := Result{Version: migrate.Version(raw)}

	delete(raw, MetadataField)
	if structure, ok := objectOf(raw[StructureField]); ok {
		for k, v := range structure {
			raw[k] = v
		}
	}
	delete(raw, StructureField)

	if res.Version < migrate.CurrentVersion {
		res.Migration = migrate.Upgrade(raw)
	}

	incoming, fields := card.DecodeFields(raw)
	applyStructure(live, incoming, fields)

	if live.Content == nil {
		live.Content = map[string]*card.Content{}
	}
	for _, id := range live.SectionIDs() {
		v, ok := raw[id]
		if !ok || card.IsField(id) || !contentShaped(v) {
			continue
		}
		live.Content[id] = card.DecodeContent(v)
		res.Sections = append(res.Sections, id)
	}

	for _, f := range uiFields {
		if _, present := raw[f]; present && !fields[f] {
			res.Ignored = append(res.Ignored, f)
		}
	}
	if fields[card.FieldDarkMode] {
		live.DarkMode = incoming.DarkMode
	}
	if fields[card.FieldDisplayMode] {
		live.DisplayMode = incoming.DisplayMode
	}
	if fields[card.FieldTimers] {
		live.Timers = incoming.Timers
	}
	if fields[card.FieldQuickAccessItems] {
		live.QuickAccessItems = incoming.QuickAccessItems
	}
	if live.SchemaVersion < card.SchemaVersion {
		live.SchemaVersion = card.SchemaVersion
	}
	return res
}

// applyStructure replaces each structural field the payload carried.
func applyStructure(live, in *card.Document, fields card.FieldSet) {
	if fields[card.FieldSections] {
		live.Sections = in.Sections
	}
	switch {
	case fields[card.FieldSectionsStacked]:
		live.SectionsStacked = in.SectionsStacked
	case fields[card.FieldSections]:
		// Derived again from the imported sections on first use.
		live.SectionsStacked = nil
	}
	if fields[card.FieldSectionTitles] {
		live.SectionTitles = in.SectionTitles
	}
	if fields[card.FieldSectionIcons] {
		live.SectionIcons = in.SectionIcons
	}
	if fields[card.FieldSectionColors] {
		live.SectionColors = in.SectionColors
	}
	if fields[card.FieldSubtitleColors] {
		live.SubtitleColors = in.SubtitleColors
	}
	if fields[card.FieldCollapsedSubtitles] {
		live.CollapsedSubtitles = in.CollapsedSubtitles
	}
	if fields[card.FieldCardNotes] {
		live.CardNotes = in.CardNotes
	}
	if fields[card.FieldHeader] {
		live.Header = in.Header
	}
}

func objectOf(v json.RawMessage) (map[string]json.RawMessage, bool) {
	var m map[string]json.RawMessage
	if len(v) == 0 || json.Unmarshal(v, &m) != nil || m == nil {
		return nil, false
	}
	return m, true
}

// contentShaped reports whether v is an object or a bare legacy list.
func contentShaped(v json.RawMessage) bool {
	var x any
	if json.Unmarshal(v, &x) != nil {
		return false
	}
	switch x.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}
