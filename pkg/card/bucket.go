package card

import (
	"encoding/json"
)

// Bucket holds all content under one subtitle. After normalization all four
// slices are non-nil.
type Bucket struct {
	Icons     []IconItem      `json:"icons"`
	Reminders []ReminderItem  `json:"reminders"`
	Subtasks  []SubtaskItem   `json:"subtasks"`
	CopyPaste []CopyPasteItem `json:"copyPaste"`
}

// NewBucket returns an empty, well-formed bucket.
func NewBucket() Bucket {
	return Bucket{
		Icons:     []IconItem{},
		Reminders: []ReminderItem{},
		Subtasks:  []SubtaskItem{},
		CopyPaste: []CopyPasteItem{},
	}
}

// shapeRule maps a predicate over a legacy item onto the bucket kind that
// holds it. Rules are tried in order; the first match wins.
type shapeRule struct {
	name  string
	kind  Kind
	match func(map[string]any) bool
}

var shapeRules = []shapeRule{
	{name: "reminder", kind: KindReminders, match: func(m map[string]any) bool {
		if _, ok := m["schedule"]; ok {
			return true
		}
		switch str(m["type"]) {
		case "days", "interval":
			return true
		}
		switch str(m["mode"]) {
		case "calendar", "interval":
			return true
		}
		return false
	}},
	{name: "copy-paste", kind: KindCopyPaste, match: hasField("copyText")},
	{name: "icon", kind: KindIcons, match: hasField("icon")},
	{name: "subtask", kind: KindSubtasks, match: hasField("text")},
	{name: "titled", kind: KindReminders, match: func(m map[string]any) bool {
		return hasField("title")(m) || hasField("name")(m)
	}},
}

func hasField(name string) func(map[string]any) bool {
	return func(m map[string]any) bool {
		_, ok := m[name]
		return ok
	}
}

// Classify decides which bucket kind a bare item belongs to. ok is false for
// values no rule recognizes.
func Classify(item any) (kind Kind, ok bool) {
	m, isObject := item.(map[string]any)
	if !isObject {
		return "", false
	}
	for _, rule := range shapeRules {
		if rule.match(m) {
			return rule.kind, true
		}
	}
	return "", false
}

// NormalizeBucket turns any decoded JSON value into a well-formed bucket. A
// bare array is classified by its first element; buckets are never
// deliberately mixed. Objects are read field by field. Anything else is an
// empty bucket.
func NormalizeBucket(v any) Bucket {
	b := NewBucket()
	switch val := v.(type) {
	case []any:
		if len(val) == 0 {
			return b
		}
		kind, ok := Classify(val[0])
		if !ok {
			return b
		}
		b.appendItems(kind, val)
	case map[string]any:
		for _, kind := range AllKinds() {
			if items, ok := val[string(kind)].([]any); ok {
				b.appendItems(kind, items)
			}
		}
	}
	return b
}

// NormalizeBucketJSON is NormalizeBucket over raw JSON. Invalid JSON yields an
// empty bucket.
func NormalizeBucketJSON(raw json.RawMessage) Bucket {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return NewBucket()
	}
	return NormalizeBucket(v)
}

func (b *Bucket) appendItems(kind Kind, items []any) {
	for i, raw := range items {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		switch kind {
		case KindIcons:
			b.Icons = append(b.Icons, IconFromMap(m, i))
		case KindReminders:
			b.Reminders = append(b.Reminders, ReminderFromMap(m, i))
		case KindSubtasks:
			b.Subtasks = append(b.Subtasks, SubtaskFromMap(m, i))
		case KindCopyPaste:
			b.CopyPaste = append(b.CopyPaste, CopyPasteFromMap(m, i))
		}
	}
}

// Len returns the number of items of the kind.
func (b *Bucket) Len(kind Kind) int {
	switch kind {
	case KindIcons:
		return len(b.Icons)
	case KindReminders:
		return len(b.Reminders)
	case KindSubtasks:
		return len(b.Subtasks)
	case KindCopyPaste:
		return len(b.CopyPaste)
	}
	return 0
}

// Empty reports whether the bucket holds no items.
func (b *Bucket) Empty() bool {
	for _, k := range AllKinds() {
		if b.Len(k) > 0 {
			return false
		}
	}
	return true
}

// Keys lists the item keys of the kind in order.
func (b *Bucket) Keys(kind Kind) []string {
	switch kind {
	case KindIcons:
		return keysOf(b.Icons)
	case KindReminders:
		return keysOf(b.Reminders)
	case KindSubtasks:
		return keysOf(b.Subtasks)
	case KindCopyPaste:
		return keysOf(b.CopyPaste)
	}
	return nil
}

// MarshalJSON writes empty collections as [] rather than null.
func (b Bucket) MarshalJSON() ([]byte, error) {
	type plain Bucket
	return json.Marshal(plain(b.normalized()))
}

// UnmarshalJSON tolerates every shape NormalizeBucket does.
func (b *Bucket) UnmarshalJSON(raw []byte) error {
	*b = NormalizeBucketJSON(raw)
	return nil
}

func (b Bucket) normalized() Bucket {
	if b.Icons == nil {
		b.Icons = []IconItem{}
	}
	if b.Subtasks == nil {
		b.Subtasks = []SubtaskItem{}
	}
	if b.CopyPaste == nil {
		b.CopyPaste = []CopyPasteItem{}
	}
	if b.Reminders == nil {
		b.Reminders = []ReminderItem{}
	} else {
		for i := range b.Reminders {
			if b.Reminders[i].Links == nil {
				rs := make([]ReminderItem, len(b.Reminders))
				copy(rs, b.Reminders)
				for j := range rs {
					if rs[j].Links == nil {
						rs[j].Links = []Link{}
					}
				}
				b.Reminders = rs
				break
			}
		}
	}
	return b
}

func keysOf[T interface{ ItemKey() string }](items []T) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.ItemKey()
	}
	return keys
}

func indexOfKey[T interface{ ItemKey() string }](items []T, key string) int {
	for i, it := range items {
		if it.ItemKey() == key {
			return i
		}
	}
	return -1
}
