package printers

import (
	"tableflip.dev/cardboard/pkg/schedule"
)

// Item bullets.
const (
	IconBullet      = "▪"
	DividerBullet   = "─"
	ReminderBullet  = "◷"
	SubtaskBullet   = "•"
	LinkBullet      = " ↳"
	CopyPasteBullet = "⧉"
	UrgencyDot      = "●"
)

// Glyph documents one symbol of the dashboard output.
type Glyph struct {
	Symbol  string
	Name    string
	Meaning string
}

// Bullets lists the item bullets in the order items are printed.
func Bullets() []Glyph {
	return []Glyph{
		{Symbol: IconBullet, Name: "icons", Meaning: "launcher tile"},
		{Symbol: DividerBullet, Name: "icons", Meaning: "divider between tiles"},
		{Symbol: ReminderBullet, Name: "reminders", Meaning: "scheduled or numeric reminder"},
		{Symbol: SubtaskBullet, Name: "subtasks", Meaning: "text link"},
		{Symbol: LinkBullet, Name: "subtasks", Meaning: "extra link of a subtask"},
		{Symbol: CopyPasteBullet, Name: "copyPaste", Meaning: "snippet copied to the clipboard"},
	}
}

// Urgencies lists the reminder states from most to least urgent.
func Urgencies() []Glyph {
	return []Glyph{
		{Symbol: urgencyColor(schedule.Danger).Sprint(UrgencyDot), Name: string(schedule.Danger), Meaning: "due today or overdue, or an interval at its most pressing band"},
		{Symbol: urgencyColor(schedule.Orange).Sprint(UrgencyDot), Name: string(schedule.Orange), Meaning: "due in 1 or 2 days"},
		{Symbol: urgencyColor(schedule.Warn).Sprint(UrgencyDot), Name: string(schedule.Warn), Meaning: "due in 3 to 7 days"},
		{Symbol: urgencyColor(schedule.Green).Sprint(UrgencyDot), Name: string(schedule.Green), Meaning: "due in 8 days or more"},
	}
}
