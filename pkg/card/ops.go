package card

import (
	"strings"
)

// AddSection appends a new unified section to both layouts and returns its id.
func (d *Document) AddSection(title string) string {
	id := GenerateKey("section", d.SectionIDs())
	ref := SectionRef{ID: id, Type: UnifiedType, Title: title}
	d.Stacked()
	d.Sections = append(d.Sections, ref)
	d.SectionsStacked = append(d.SectionsStacked, ref)
	if d.SectionTitles == nil {
		d.SectionTitles = map[string]string{}
	}
	d.SectionTitles[id] = title
	if d.Content == nil {
		d.Content = map[string]*Content{}
	}
	d.Content[id] = NewContent()
	return id
}

// DeleteSection removes a section from both layouts together with its
// content and every metadata entry keyed by it. A pair partner loses its
// pairing flags.
func (d *Document) DeleteSection(id string) error {
	if _, ok := d.Section(id); !ok {
		return NotFoundError{Kind: "section", ID: id}
	}
	d.Sections = RepairPairs(removeSection(d.Sections, id))
	if d.SectionsStacked != nil {
		d.SectionsStacked = RepairPairs(removeSection(d.SectionsStacked, id))
	}

	delete(d.Content, id)
	delete(d.SectionTitles, id)
	delete(d.SectionIcons, id)
	delete(d.SectionColors, id)
	delete(d.CardNotes, id)
	prefix := SubtitleKey(id, "")
	for k := range d.SubtitleColors {
		if strings.HasPrefix(k, prefix) {
			delete(d.SubtitleColors, k)
		}
	}
	for k := range d.CollapsedSubtitles {
		if strings.HasPrefix(k, prefix) {
			delete(d.CollapsedSubtitles, k)
		}
	}
	return nil
}

func removeSection(list []SectionRef, id string) []SectionRef {
	out := make([]SectionRef, 0, len(list))
	for _, s := range list {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// ReorderSection moves the section at from to position to in the layout of
// mode. Pairs split by the move are unpaired.
func (d *Document) ReorderSection(mode DisplayMode, from, to int) error {
	layout := d.Layout(mode)
	moved, err := move(*layout, from, to)
	if err != nil {
		return err
	}
	*layout = RepairPairs(moved)
	return nil
}

// PairSections pairs the section at index with the one after it.
func (d *Document) PairSections(mode DisplayMode, index int) error {
	layout := *d.Layout(mode)
	if index < 0 || index+1 >= len(layout) {
		return IndexError{Index: index, Len: len(layout)}
	}
	for _, i := range []int{index, index + 1} {
		if layout[i].TwoColumnPair {
			d.unpairAt(layout, i)
		}
	}
	layout[index].TwoColumnPair, layout[index].PairIndex = true, 0
	layout[index+1].TwoColumnPair, layout[index+1].PairIndex = true, 1
	return nil
}

// UnpairSection clears the pair the section at index belongs to.
func (d *Document) UnpairSection(mode DisplayMode, index int) error {
	layout := *d.Layout(mode)
	if index < 0 || index >= len(layout) {
		return IndexError{Index: index, Len: len(layout)}
	}
	d.unpairAt(layout, index)
	return nil
}

func (d *Document) unpairAt(layout []SectionRef, i int) {
	partner := i + 1
	if layout[i].PairIndex == 1 {
		partner = i - 1
	}
	layout[i].TwoColumnPair, layout[i].PairIndex = false, 0
	if partner >= 0 && partner < len(layout) {
		layout[partner].TwoColumnPair, layout[partner].PairIndex = false, 0
	}
}

// RepairPairs clears pairing flags that do not form an adjacent 0/1 pair.
func RepairPairs(list []SectionRef) []SectionRef {
	for i := 0; i < len(list); i++ {
		if !list[i].TwoColumnPair {
			continue
		}
		if list[i].PairIndex == 0 && i+1 < len(list) &&
			list[i+1].TwoColumnPair && list[i+1].PairIndex == 1 {
			i++
			continue
		}
		list[i].TwoColumnPair, list[i].PairIndex = false, 0
	}
	return list
}

// AddSubtitle appends an empty subtitle bucket to a section.
func (d *Document) AddSubtitle(sectionID, subtitle string) error {
	c, err := d.content(sectionID)
	if err != nil {
		return err
	}
	c.Ensure(normalizeSubtitle(subtitle))
	return nil
}

// DeleteSubtitle removes a subtitle bucket with its color and collapse state.
func (d *Document) DeleteSubtitle(sectionID, subtitle string) error {
	c, err := d.content(sectionID)
	if err != nil {
		return err
	}
	subtitle = normalizeSubtitle(subtitle)
	if !c.Delete(subtitle) {
		return NotFoundError{Kind: "subtitle", ID: SubtitleKey(sectionID, subtitle)}
	}
	delete(d.SubtitleColors, SubtitleKey(sectionID, subtitle))
	delete(d.CollapsedSubtitles, SubtitleKey(sectionID, subtitle))
	return nil
}

// AddItem coerces fields into an item of kind, stores it in the subtitle's
// bucket and returns its key. A missing or already used key is replaced by
// a generated one.
func (d *Document) AddItem(sectionID, subtitle string, kind Kind, fields map[string]any) (string, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return "", err
	}
	c, err := d.content(sectionID)
	if err != nil {
		return "", err
	}
	b := c.Ensure(normalizeSubtitle(subtitle))
	keys := b.Keys(kind)
	key := str(fields["key"])
	if key == "" || contains(keys, key) {
		key = GenerateKey(kind.keyPrefix(), keys)
	}
	m := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		m[k] = v
	}
	m["key"] = key

	index := len(keys)
	switch kind {
	case KindIcons:
		b.Icons = append(b.Icons, IconFromMap(m, index))
	case KindReminders:
		b.Reminders = append(b.Reminders, ReminderFromMap(m, index))
	case KindSubtasks:
		b.Subtasks = append(b.Subtasks, SubtaskFromMap(m, index))
	case KindCopyPaste:
		b.CopyPaste = append(b.CopyPaste, CopyPasteFromMap(m, index))
	default:
		return "", &InvalidKindError{Kind: string(kind)}
	}
	return key, nil
}

// DeleteItem removes the item with key from the subtitle's bucket.
func (d *Document) DeleteItem(sectionID, subtitle string, kind Kind, key string) error {
	b, err := d.bucket(sectionID, subtitle)
	if err != nil {
		return err
	}
	var found bool
	switch kind {
	case KindIcons:
		b.Icons, found = removeKey(b.Icons, key)
	case KindReminders:
		b.Reminders, found = removeKey(b.Reminders, key)
	case KindSubtasks:
		b.Subtasks, found = removeKey(b.Subtasks, key)
	case KindCopyPaste:
		b.CopyPaste, found = removeKey(b.CopyPaste, key)
	default:
		return &InvalidKindError{Kind: string(kind)}
	}
	if !found {
		return NotFoundError{Kind: string(kind), ID: key}
	}
	return nil
}

// ReorderItem moves an item of kind within its bucket.
func (d *Document) ReorderItem(sectionID, subtitle string, kind Kind, from, to int) error {
	b, err := d.bucket(sectionID, subtitle)
	if err != nil {
		return err
	}
	switch kind {
	case KindIcons:
		b.Icons, err = move(b.Icons, from, to)
	case KindReminders:
		b.Reminders, err = move(b.Reminders, from, to)
	case KindSubtasks:
		b.Subtasks, err = move(b.Subtasks, from, to)
	case KindCopyPaste:
		b.CopyPaste, err = move(b.CopyPaste, from, to)
	default:
		return &InvalidKindError{Kind: string(kind)}
	}
	return err
}

// SetSectionColor sets one theme's color of a section. An empty color
// clears that theme.
func (d *Document) SetSectionColor(id string, theme Theme, color string) {
	if d.SectionColors == nil {
		d.SectionColors = map[string]ColorPair{}
	}
	setColor(d.SectionColors, id, theme, color)
}

// SetSubtitleColor sets one theme's color of a subtitle.
func (d *Document) SetSubtitleColor(sectionID, subtitle string, theme Theme, color string) {
	if d.SubtitleColors == nil {
		d.SubtitleColors = map[string]ColorPair{}
	}
	setColor(d.SubtitleColors, SubtitleKey(sectionID, normalizeSubtitle(subtitle)), theme, color)
}

func setColor(m map[string]ColorPair, key string, theme Theme, color string) {
	pair := m[key].With(theme, color)
	if pair.IsZero() {
		delete(m, key)
		return
	}
	m[key] = pair
}

// ToggleCollapsed flips and returns the collapsed state of a subtitle.
func (d *Document) ToggleCollapsed(sectionID, subtitle string) bool {
	if d.CollapsedSubtitles == nil {
		d.CollapsedSubtitles = map[string]bool{}
	}
	key := SubtitleKey(sectionID, normalizeSubtitle(subtitle))
	collapsed := !d.CollapsedSubtitles[key]
	if collapsed {
		d.CollapsedSubtitles[key] = true
	} else {
		delete(d.CollapsedSubtitles, key)
	}
	return collapsed
}

// SetNote sets or, when empty, clears the note of a card.
func (d *Document) SetNote(id, note string) {
	if d.CardNotes == nil {
		d.CardNotes = map[string]string{}
	}
	if note == "" {
		delete(d.CardNotes, id)
		return
	}
	d.CardNotes[id] = note
}

// content returns the content of an existing section, creating it if the
// section has none yet.
func (d *Document) content(sectionID string) (*Content, error) {
	if _, ok := d.Section(sectionID); !ok {
		return nil, NotFoundError{Kind: "section", ID: sectionID}
	}
	if d.Content == nil {
		d.Content = map[string]*Content{}
	}
	c := d.Content[sectionID]
	if c == nil {
		c = &Content{}
		d.Content[sectionID] = c
	}
	return c, nil
}

func (d *Document) bucket(sectionID, subtitle string) (*Bucket, error) {
	c, err := d.content(sectionID)
	if err != nil {
		return nil, err
	}
	subtitle = normalizeSubtitle(subtitle)
	b := c.Bucket(subtitle)
	if b == nil {
		return nil, NotFoundError{Kind: "subtitle", ID: SubtitleKey(sectionID, subtitle)}
	}
	return b, nil
}

func normalizeSubtitle(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return DefaultSubtitle
	}
	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeKey[T interface{ ItemKey() string }](items []T, key string) ([]T, bool) {
	i := indexOfKey(items, key)
	if i < 0 {
		return items, false
	}
	return append(items[:i], items[i+1:]...), true
}

// move is an array splice: remove at from, insert at to.
func move[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) {
		return items, IndexError{Index: from, Len: len(items)}
	}
	if to < 0 || to >= len(items) {
		return items, IndexError{Index: to, Len: len(items)}
	}
	item := items[from]
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out, nil
}
