package app

import (
	"sort"
	"strings"
	"time"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/schedule"
)

// Due is one reminder with its computed schedule state.
type Due struct {
	SectionID string
	Subtitle  string
	Reminder  card.ReminderItem
	Urgency   schedule.Urgency

	// Set for day reminders with a schedule.
	Next time.Time
	Days int

	// Set for interval reminders.
	Progress *schedule.Progress
}

// Due lists every reminder of the current document, most urgent first. Day
// reminders without a usable schedule are left out.
func (s *Service) Due(today time.Time) []Due {
	return DueReminders(s.Current(), today)
}

// Today is the service clock's date.
func (s *Service) Today() time.Time {
	return schedule.DateOnly(s.now())
}

// DueReminders walks the sections of d in normal layout order.
func DueReminders(d *card.Document, today time.Time) []Due {
	var list []Due
	for _, id := range d.SectionIDs() {
		c := d.ContentOf(id)
		for _, sub := range c.Subtitles() {
			for _, r := range c.Bucket(sub).Reminders {
				item := Due{SectionID: id, Subtitle: sub, Reminder: r}
				if r.Type == card.ReminderInterval {
					p, ok := r.Progress()
					if !ok {
						continue
					}
					item.Progress = &p
					item.Urgency = p.Urgency
				} else {
					next, ok := r.Next(today)
					if !ok {
						continue
					}
					item.Next = next
					item.Days = schedule.DaysUntil(next, today)
					item.Urgency = schedule.ClassifyUrgency(item.Days)
				}
				list = append(list, item)
			}
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Urgency.Rank() != b.Urgency.Rank() {
			return a.Urgency.Rank() < b.Urgency.Rank()
		}
		if (a.Progress == nil) != (b.Progress == nil) {
			return a.Progress == nil
		}
		if a.Progress == nil && a.Days != b.Days {
			return a.Days < b.Days
		}
		return strings.ToLower(a.Reminder.Title) < strings.ToLower(b.Reminder.Title)
	})
	return list
}
