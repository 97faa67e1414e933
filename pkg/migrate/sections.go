package migrate

import (
	"encoding/json"

	"tableflip.dev/cardboard/pkg/card"
)

type sectionKind int

const (
	unknownSection sectionKind = iota
	iconSection
	linkSection
	subtitledSection
	unifiedSection
)

// legacyTypes maps every historical section type to the way its content
// is laid out.
var legacyTypes = map[string]sectionKind{
	"newCard":          iconSection,
	"dailyTasks":       iconSection,
	"dailyTools":       iconSection,
	"contentCreation":  iconSection,
	"ads":              iconSection,
	"newCardAnalytics": linkSection,
	"analytics":        linkSection,
	"tools":            linkSection,
	"copyPaste":        subtitledSection,
	"reminders":        subtitledSection,
	card.UnifiedType:   unifiedSection,
}

// IsLegacyType reports whether typ is a known pre-unified section type.
func IsLegacyType(typ string) bool {
	k, ok := legacyTypes[typ]
	return ok && k != unifiedSection
}

// Section converts the content of one section of legacy type typ into
// unified content. ok is false when raw does not have a usable shape; the
// section then has no content.
func Section(typ string, raw json.RawMessage) (content *card.Content, ok bool) {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return nil, false
	}

	switch legacyTypes[typ] {
	case iconSection:
		items, isList := v.([]any)
		if !isList {
			return nil, false
		}
		return single(card.KindIcons, typ, items), true
	case linkSection:
		items, isList := v.([]any)
		if !isList {
			return nil, false
		}
		return single(card.KindSubtasks, typ, items), true
	case subtitledSection:
		return subtitled(typ, raw, v)
	default:
		switch v.(type) {
		case []any, map[string]any:
			return card.DecodeContent(raw), true
		}
		return nil, false
	}
}

// single puts every object of items into one kind of the default bucket.
func single(kind card.Kind, typ string, items []any) *card.Content {
	c := card.NewContent()
	c.Set(card.DefaultSubtitle, bucketOf(kind, typ, items))
	return c
}

// subtitled converts a {subtitle: [items]} map of copyPaste or reminders
// items. A bare list is read as the default subtitle. A subtitle that
// already holds a bucket object is normalized as is.
func subtitled(typ string, raw json.RawMessage, v any) (*card.Content, bool) {
	kind := card.KindReminders
	if typ == "copyPaste" {
		kind = card.KindCopyPaste
	}
	switch val := v.(type) {
	case []any:
		return single(kind, typ, val), true
	case map[string]any:
	default:
		return nil, false
	}

	// Decode again as content to keep subtitle order, then rewrite the
	// subtitles whose value was a bare list.
	c := card.DecodeContent(raw)
	lists := map[string][]any{}
	var byName map[string]any
	_ = json.Unmarshal(raw, &byName)
	for name, sub := range byName {
		if items, isList := sub.([]any); isList {
			lists[name] = items
		}
	}
	for _, name := range c.Subtitles() {
		if items, isList := lists[name]; isList {
			c.Set(name, bucketOf(kind, typ, items))
		}
	}
	return c, true
}

func bucketOf(kind card.Kind, typ string, items []any) card.Bucket {
	b := card.NewBucket()
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		switch kind {
		case card.KindIcons:
			b.Icons = append(b.Icons, card.IconFromMap(m, i))
		case card.KindSubtasks:
			b.Subtasks = append(b.Subtasks, card.SubtaskFromMap(m, i))
		case card.KindCopyPaste:
			b.CopyPaste = append(b.CopyPaste, card.CopyPasteFromMap(m, i))
		case card.KindReminders:
			b.Reminders = append(b.Reminders, card.ReminderFromMap(m, i))
		}
	}
	return b
}

// unifySections converts the content of every section to unified content
// and rewrites the section types in both layouts. Content lives once under
// the section id, so an id seen in both layouts is converted once.
func unifySections(raw Raw, r *Report) {
	done := map[string]bool{}
	for _, field := range []string{card.FieldSections, card.FieldSectionsStacked} {
		list, ok := sectionList(raw[field])
		if !ok {
			continue
		}
		for _, entry := range list {
			s, isObject := entry.(map[string]any)
			if !isObject {
				continue
			}
			id, _ := s["id"].(string)
			typ, _ := s["type"].(string)
			if id != "" && !done[id] && !card.IsField(id) {
				done[id] = true
				convertContent(raw, id, typ, r)
			}
			if typ != card.UnifiedType {
				s["type"] = card.UnifiedType
				if id != "" && field == card.FieldSections {
					r.Converted = append(r.Converted, id)
				}
			}
		}
		raw[field] = mustMarshal(list)
	}
}

func convertContent(raw Raw, id, typ string, r *Report) {
	value, present := raw[id]
	if !present || string(value) == "null" {
		return
	}
	c, ok := Section(typ, value)
	if !ok {
		delete(raw, id)
		r.Dropped = append(r.Dropped, id)
		return
	}
	raw[id] = mustMarshal(c)
}

// addReminders injects an empty reminders list into every bucket of every
// unified section that predates it. Other bucket fields are left alone.
func addReminders(raw Raw, r *Report) {
	list, ok := sectionList(raw[card.FieldSections])
	if !ok {
		return
	}
	for _, entry := range list {
		s, _ := entry.(map[string]any)
		id, _ := s["id"].(string)
		if typ, _ := s["type"].(string); typ != card.UnifiedType || id == "" || card.IsField(id) {
			continue
		}
		var subtitles map[string]map[string]json.RawMessage
		if json.Unmarshal(raw[id], &subtitles) != nil {
			continue
		}
		missing := 0
		for _, b := range subtitles {
			if _, has := b[string(card.KindReminders)]; b != nil && !has {
				missing++
			}
		}
		if missing > 0 {
			raw[id] = mustMarshal(card.DecodeContent(raw[id]))
			r.Injected += missing
		}
	}
}

func sectionList(v json.RawMessage) ([]any, bool) {
	var list []any
	if len(v) == 0 || json.Unmarshal(v, &list) != nil || list == nil {
		return nil, false
	}
	return list, true
}
