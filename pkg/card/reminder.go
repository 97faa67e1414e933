package card

import (
	"time"

	"tableflip.dev/cardboard/pkg/schedule"
)

// ReminderType says whether a reminder follows a calendar rule or a number.
type ReminderType string

const (
	ReminderDays     ReminderType = "days"
	ReminderInterval ReminderType = "interval"
)

// IntervalUnit is the display unit of an interval reminder.
type IntervalUnit string

const (
	UnitNone    IntervalUnit = "none"
	UnitDollar  IntervalUnit = "dollar"
	UnitPercent IntervalUnit = "percent"
)

// BreakdownRow is one labelled contribution to an interval's current number.
type BreakdownRow struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Breakdown itemizes CurrentNumber. While unlocked the rows define it.
type Breakdown struct {
	Locked bool           `json:"locked"`
	Rows   []BreakdownRow `json:"rows"`
}

// Sum adds the row values.
func (b Breakdown) Sum() float64 {
	var total float64
	for _, r := range b.Rows {
		total += r.Value
	}
	return total
}

// ReminderItem is either a scheduled (days) or a numeric (interval) reminder.
type ReminderItem struct {
	Key      string         `json:"key"`
	Title    string         `json:"title"`
	URL      string         `json:"url"`
	Type     ReminderType   `json:"type"`
	Schedule *schedule.Rule `json:"schedule,omitempty"`

	// Interval is the target of an interval reminder.
	Interval      *float64              `json:"interval,omitempty"`
	CurrentNumber *float64              `json:"currentNumber,omitempty"`
	IntervalType  schedule.IntervalMode `json:"intervalType,omitempty"`
	IntervalUnit  IntervalUnit          `json:"intervalUnit,omitempty"`
	Breakdown     *Breakdown            `json:"breakdown,omitempty"`

	Links []Link `json:"links"`
}

// Current returns the effective current number: the breakdown sum while the
// breakdown is unlocked, CurrentNumber otherwise.
func (r ReminderItem) Current() float64 {
	if r.Breakdown != nil && !r.Breakdown.Locked {
		return r.Breakdown.Sum()
	}
	if r.CurrentNumber != nil {
		return *r.CurrentNumber
	}
	return 0
}

// Next returns the next occurrence of a days reminder. ok is false for
// interval reminders and reminders without a schedule.
func (r ReminderItem) Next(today time.Time) (next time.Time, ok bool) {
	if r.Type != ReminderDays || r.Schedule == nil {
		return time.Time{}, false
	}
	return schedule.NextOccurrence(*r.Schedule, today), true
}

// Progress returns the interval progress. ok is false for days reminders.
func (r ReminderItem) Progress() (p schedule.Progress, ok bool) {
	if r.Type != ReminderInterval {
		return schedule.Progress{}, false
	}
	var target float64
	if r.Interval != nil {
		target = *r.Interval
	}
	mode := r.IntervalType
	if mode == "" {
		mode = schedule.Limit
	}
	return schedule.IntervalProgress(target, r.Current(), mode), true
}
