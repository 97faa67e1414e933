package due

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/printers"
	"tableflip.dev/cardboard/pkg/schedule"
)

type Due struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	// Months of calendar to print after the list, starting with this one.
	Months int
	JSON   bool
}

type dueJSON struct {
	Section  string           `json:"section"`
	Subtitle string           `json:"subtitle"`
	Key      string           `json:"key"`
	Title    string           `json:"title"`
	Urgency  schedule.Urgency `json:"urgency"`
	Next     string           `json:"next,omitempty"`
	Days     *int             `json:"days,omitempty"`
	Left     *float64         `json:"remaining,omitempty"`
	Percent  *float64         `json:"percentage,omitempty"`
}

func (n *Due) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("no dashboard service")
	}
	today := n.Service.Today()
	list := n.Service.Due(today)

	if n.JSON {
		out := make([]dueJSON, 0, len(list))
		for _, d := range list {
			item := dueJSON{
				Section:  d.SectionID,
				Subtitle: d.Subtitle,
				Key:      d.Reminder.Key,
				Title:    d.Reminder.Title,
				Urgency:  d.Urgency,
			}
			if d.Progress != nil {
				item.Left, item.Percent = &d.Progress.Remaining, &d.Progress.Percentage
			} else {
				days := d.Days
				item.Next, item.Days = schedule.FormatDate(d.Next), &days
			}
			out = append(out, item)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	n.Printer.Due(n.Service.Current(), list)
	month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	for i := 0; i < n.Months; i++ {
		n.Printer.Calendar(month, n.occurrences(month, today))
		month = printers.NextMonth(month)
	}
	return nil
}

// occurrences lists every day reminder firing in the month, with urgency
// relative to today.
func (n *Due) occurrences(month, today time.Time) []app.Due {
	var out []app.Due
	for day := month; day.Month() == month.Month(); day = day.AddDate(0, 0, 1) {
		for _, d := range n.Service.Due(day) {
			if d.Progress != nil || d.Days != 0 {
				continue
			}
			d.Days = schedule.DaysUntil(d.Next, today)
			d.Urgency = schedule.ClassifyUrgency(d.Days)
			out = append(out, d)
		}
	}
	return out
}
