package printers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/migrate"
	"tableflip.dev/cardboard/pkg/schedule"
	"tableflip.dev/cardboard/pkg/store"
	"tableflip.dev/cardboard/pkg/transfer"
)

func urgencyColor(u schedule.Urgency) *color.Color {
	switch u {
	case schedule.Danger:
		return color.New(color.FgRed, color.Bold)
	case schedule.Orange:
		return color.New(color.FgHiRed)
	case schedule.Warn:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// Due prints reminders as a table, in the order given.
func (pp *PrettyPrint) Due(d *card.Document, due []app.Due) {
	w := pp.out()
	if len(due) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(w, " no reminders\n\n")
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() / 2)
	header := []interface{}{bold.Sprint("Status"), bold.Sprint("Reminder"), bold.Sprint("Card"), bold.Sprint("When")}
	if pp.ShowKey {
		header = append([]interface{}{bold.Sprint("Key")}, header...)
	}
	tbl.AddRow(header...)

	for _, item := range due {
		section := d.SectionTitles[item.SectionID]
		if section == "" {
			section = item.SectionID
		}
		if item.Subtitle != card.DefaultSubtitle {
			section += " / " + item.Subtitle
		}
		row := []interface{}{
			urgencyColor(item.Urgency).Sprint(string(item.Urgency)),
			item.Reminder.Title,
			section,
			When(item),
		}
		if pp.ShowKey {
			row = append([]interface{}{item.Reminder.Key}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w)
}

// When describes the schedule state of a reminder in words.
func When(item app.Due) string {
	if p := item.Progress; p != nil {
		unit := item.Reminder.IntervalUnit
		return fmt.Sprintf("%s left of %s (%s)",
			amount(p.Remaining, unit),
			amount(deref(item.Reminder.Interval), unit),
			p.Band)
	}
	switch {
	case item.Days == 0:
		return "today"
	case item.Days == 1:
		return "tomorrow"
	case item.Days == -1:
		return "yesterday"
	case item.Days < 0:
		return fmt.Sprintf("%d days overdue", -item.Days)
	default:
		return fmt.Sprintf("in %d days, %s", item.Days, item.Next.Format("Mon Jan 2"))
	}
}

func amount(v float64, unit card.IntervalUnit) string {
	n := strconv.FormatFloat(v, 'f', -1, 64)
	switch unit {
	case card.UnitDollar:
		if strings.HasPrefix(n, "-") {
			return "-$" + n[1:]
		}
		return "$" + n
	case card.UnitPercent:
		return n + "%"
	}
	return n
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Backups prints the snapshots, newest first as given.
func (pp *PrettyPrint) Backups(list []store.Snapshot) {
	w := pp.out()
	if len(list) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(w, " no backups\n\n")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Taken"), bold.Sprint("Size"))
	for _, s := range list {
		tbl.AddRow(s.Name, s.Taken.Local().Format(time.RFC822), fmt.Sprintf("%d B", s.Size))
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(w, tbl)
}

// Migration summarizes a migration report.
func (pp *PrettyPrint) Migration(r migrate.Report, backup string) {
	w := pp.out()
	faint := color.New(color.Faint)
	if !r.Changed() {
		_, _ = fmt.Fprintf(w, "dashboard is current (schema version %d)\n", r.To)
		return
	}
	_, _ = fmt.Fprintf(w, "migrated schema version %d to %d\n", r.From, r.To)
	if r.Synthesized {
		_, _ = fmt.Fprintln(w, "  built card layout from legacy fields")
	}
	if len(r.Converted) > 0 {
		_, _ = fmt.Fprintf(w, "  converted: %s\n", strings.Join(r.Converted, ", "))
	}
	if len(r.Dropped) > 0 {
		_, _ = color.New(color.FgYellow).Fprintf(w, "  dropped unreadable content: %s\n", strings.Join(r.Dropped, ", "))
	}
	if r.Injected > 0 {
		_, _ = fmt.Fprintf(w, "  added reminders to %d buckets\n", r.Injected)
	}
	if backup != "" {
		_, _ = faint.Fprintf(w, "  previous version saved as %s\n", backup)
	}
}

// Imported summarizes an applied import.
func (pp *PrettyPrint) Imported(r transfer.Result) {
	w := pp.out()
	_, _ = fmt.Fprintf(w, "imported schema version %d, %d cards replaced\n", r.Version, len(r.Sections))
	if r.Migration.Changed() {
		_, _ = color.New(color.Faint).Fprintf(w, "  migrated %d to %d\n", r.Migration.From, r.Migration.To)
	}
	if len(r.Ignored) > 0 {
		_, _ = color.New(color.FgYellow).Fprintf(w, "  ignored invalid fields: %s\n", strings.Join(r.Ignored, ", "))
	}
}

// Info prints where the dashboard lives and what it holds.
func (pp *PrettyPrint) Info(cfg store.Config, d *card.Document, backups int) {
	w := pp.out()
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("path"), cfg.BasePath())
	tbl.AddRow(bold.Sprint("quota"), fmt.Sprintf("%d B", cfg.Quota()))
	if cfg.Override() != "" {
		tbl.AddRow(bold.Sprint("override"), cfg.Override())
	}
	if cfg.OverrideDir() != "" {
		tbl.AddRow(bold.Sprint("override dir"), cfg.OverrideDir())
	}
	if cfg.Media() != "" {
		tbl.AddRow(bold.Sprint("media"), cfg.Media())
	}
	tbl.AddRow(bold.Sprint("schema"), d.SchemaVersion)
	tbl.AddRow(bold.Sprint("cards"), len(d.Sections))
	tbl.AddRow(bold.Sprint("mode"), string(d.DisplayMode))
	tbl.AddRow(bold.Sprint("backups"), backups)
	_, _ = fmt.Fprintln(w, tbl)

	types := d.SectionTypes()
	if len(types) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w)
	pp.Title("Card types")
	tt := uitable.New()
	tt.Separator = "  "
	for _, k := range card.SortedKeys(types) {
		name := k
		if name == "" {
			name = "(none)"
		}
		tt.AddRow(name, types[k])
	}
	tt.RightAlign(1)
	_, _ = fmt.Fprintln(w, tt)
}
