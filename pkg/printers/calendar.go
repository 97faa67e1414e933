package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/schedule"
)

const weekWidth = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the month of then as a grid. Days with a scheduled
// reminder are colored by the most urgent reminder falling on them.
func (pp *PrettyPrint) Calendar(then time.Time, due []app.Due) {
	w := pp.out()
	marks := make(map[int]schedule.Urgency)
	for _, d := range due {
		if d.Progress != nil || d.Next.IsZero() {
			continue
		}
		if d.Next.Year() != then.Year() || d.Next.Month() != then.Month() {
			continue
		}
		day := d.Next.Day()
		if prev, ok := marks[day]; !ok || d.Urgency.Rank() < prev.Rank() {
			marks[day] = d.Urgency
		}
	}

	tf := color.New(color.FgWhite, color.Italic)
	m := then.Month().String()
	mid := (weekWidth - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", weekWidth-mid-len(m)))

	// Pad out the start of the month.
	d := StartDay(then)
	_, _ = fmt.Fprint(w, strings.Repeat("   ", int(d)))

	plain := color.New(color.Faint, color.FgWhite)
	for i := 1; i <= DaysIn(then); i++ {
		printer := plain
		if u, ok := marks[i]; ok {
			printer = urgencyColor(u)
		}
		_, _ = printer.Fprintf(w, "%2d ", i)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.UTC).Weekday()
}
