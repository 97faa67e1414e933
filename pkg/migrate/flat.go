package migrate

import (
	"encoding/json"

	"tableflip.dev/cardboard/pkg/card"
)

// flatSections is the fixed card set of the oldest documents, which stored
// each card under its type name and had no sections list.
var flatSections = []struct {
	id    string
	title string
}{
	{"newCard", "New Card"},
	{"dailyTasks", "Daily Tasks"},
	{"dailyTools", "Daily Tools"},
	{"contentCreation", "Content Creation"},
	{"ads", "Ads"},
	{"newCardAnalytics", "Analytics"},
	{"analytics", "Analytics"},
	{"tools", "Tools"},
	{"copyPaste", "Copy & Paste"},
	{"reminders", "Reminders"},
}

// synthesizeSections builds a sections list for a flat legacy document, one
// section per legacy card key present. It returns false when the document
// already has sections or holds no legacy cards.
func synthesizeSections(raw Raw) bool {
	if _, ok := sectionList(raw[card.FieldSections]); ok {
		return false
	}
	var sections []card.SectionRef
	titles := map[string]string{}
	_ = json.Unmarshal(raw[card.FieldSectionTitles], &titles)
	for _, s := range flatSections {
		v, ok := raw[s.id]
		if !ok || string(v) == "null" {
			continue
		}
		title := s.title
		if t, ok := titles[s.id]; ok && t != "" {
			title = t
		}
		sections = append(sections, card.SectionRef{ID: s.id, Type: s.id, Title: title})
		titles[s.id] = title
	}
	if len(sections) == 0 {
		return false
	}
	raw[card.FieldSections] = mustMarshal(sections)
	raw[card.FieldSectionTitles] = mustMarshal(titles)
	return true
}
