package card

// cloneBucket deep-copies every item, including schedule rules, so the copy
// shares no memory with b.
func cloneBucket(b Bucket) Bucket {
	out := Bucket{
		Icons:     append([]IconItem{}, b.Icons...),
		Reminders: make([]ReminderItem, len(b.Reminders)),
		Subtasks:  make([]SubtaskItem, len(b.Subtasks)),
		CopyPaste: append([]CopyPasteItem{}, b.CopyPaste...),
	}
	for i, r := range b.Reminders {
		out.Reminders[i] = cloneReminder(r)
	}
	for i, s := range b.Subtasks {
		s.Links = cloneSlice(s.Links)
		out.Subtasks[i] = s
	}
	return out
}

func cloneReminder(r ReminderItem) ReminderItem {
	if r.Schedule != nil {
		rule := *r.Schedule
		r.Schedule = &rule
	}
	if r.Interval != nil {
		v := *r.Interval
		r.Interval = &v
	}
	if r.CurrentNumber != nil {
		v := *r.CurrentNumber
		r.CurrentNumber = &v
	}
	if r.Breakdown != nil {
		bd := Breakdown{Locked: r.Breakdown.Locked, Rows: cloneSlice(r.Breakdown.Rows)}
		r.Breakdown = &bd
	}
	r.Links = cloneSlice(r.Links)
	return r
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func cloneMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// cloneAny deep-copies a decoded JSON value.
func cloneAny(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = cloneAny(e)
		}
		return out
	case Record:
		return cloneRecord(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneAny(e)
		}
		return out
	default:
		return val
	}
}

func cloneRecord(r Record) Record {
	if r == nil {
		return nil
	}
	return Record(cloneAny(map[string]any(r)).(map[string]any))
}

func cloneRecords(rs []Record) []Record {
	if rs == nil {
		return nil
	}
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = cloneRecord(r)
	}
	return out
}

// Clone returns a structural deep copy of the document. Dates stay dates.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		SchemaVersion:      d.SchemaVersion,
		Sections:           cloneSlice(d.Sections),
		SectionsStacked:    cloneSlice(d.SectionsStacked),
		SectionTitles:      cloneMap(d.SectionTitles),
		SectionIcons:       cloneMap(d.SectionIcons),
		SectionColors:      cloneMap(d.SectionColors),
		SubtitleColors:     cloneMap(d.SubtitleColors),
		CollapsedSubtitles: cloneMap(d.CollapsedSubtitles),
		CardNotes:          cloneMap(d.CardNotes),
		Header:             cloneRecord(d.Header),
		DarkMode:           d.DarkMode,
		DisplayMode:        d.DisplayMode,
		Timers:             cloneRecords(d.Timers),
		Content:            make(map[string]*Content, len(d.Content)),
	}
	if d.QuickAccessItems != nil {
		out.QuickAccessItems = cloneAny(d.QuickAccessItems).([]any)
	}
	for id, c := range d.Content {
		out.Content[id] = c.Clone()
	}
	return out
}
