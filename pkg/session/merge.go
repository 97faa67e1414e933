package session

import (
	"strings"

	"tableflip.dev/cardboard/pkg/card"
)

// Merge folds working into live. Scalars, simple maps and the layout lists
// are taken from working as they are. Content is replaced per section id of
// working. Color maps merge per entry and per theme: a theme working leaves
// unset keeps its live value, and live entries working lacks survive unless
// they belong to a section or subtitle working removed.
//
// working is consumed; live takes ownership of its values.
func Merge(live, working *card.Document) {
	gone := removed(live, working)

	live.SchemaVersion = working.SchemaVersion
	live.DarkMode = working.DarkMode
	live.DisplayMode = working.DisplayMode
	live.Header = working.Header
	live.SectionTitles = working.SectionTitles
	live.SectionIcons = working.SectionIcons
	live.CollapsedSubtitles = working.CollapsedSubtitles
	live.CardNotes = working.CardNotes

	live.Sections = working.Sections
	live.SectionsStacked = working.SectionsStacked
	live.Timers = working.Timers
	live.QuickAccessItems = working.QuickAccessItems

	if live.Content == nil {
		live.Content = map[string]*card.Content{}
	}
	for id := range gone.sections {
		delete(live.Content, id)
	}
	for _, id := range working.SectionIDs() {
		if c, ok := working.Content[id]; ok {
			live.Content[id] = c
		} else {
			delete(live.Content, id)
		}
	}

	live.SectionColors = mergeColors(live.SectionColors, working.SectionColors)
	live.SubtitleColors = mergeColors(live.SubtitleColors, working.SubtitleColors)
	for id := range gone.sections {
		delete(live.SectionColors, id)
	}
	for key := range live.SubtitleColors {
		if _, ok := working.SubtitleColors[key]; ok {
			continue
		}
		if gone.has(key) {
			delete(live.SubtitleColors, key)
		}
	}
}

// deletions are the sections and subtitle keys live has and working lacks.
type deletions struct {
	sections  map[string]bool
	subtitles map[string]bool
}

func (g deletions) has(subtitleKey string) bool {
	id, _, _ := strings.Cut(subtitleKey, ":")
	return g.sections[id] || g.subtitles[subtitleKey]
}

func removed(live, working *card.Document) deletions {
	g := deletions{sections: map[string]bool{}, subtitles: map[string]bool{}}
	kept := map[string]bool{}
	for _, id := range working.SectionIDs() {
		kept[id] = true
	}
	for _, id := range live.SectionIDs() {
		if !kept[id] {
			g.sections[id] = true
			continue
		}
		have := map[string]bool{}
		for _, sub := range working.ContentOf(id).Subtitles() {
			have[sub] = true
		}
		for _, sub := range live.ContentOf(id).Subtitles() {
			if !have[sub] {
				g.subtitles[card.SubtitleKey(id, sub)] = true
			}
		}
	}
	return g
}

func mergeColors(live, working map[string]card.ColorPair) map[string]card.ColorPair {
	if live == nil {
		live = make(map[string]card.ColorPair, len(working))
	}
	for key, in := range working {
		have := live[key]
		if in.Light != "" {
			have.Light = in.Light
		}
		if in.Dark != "" {
			have.Dark = in.Dark
		}
		live[key] = have
	}
	return live
}
