package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/media"
)

type PrettyPrint struct {
	ShowKey bool
	Theme   card.Theme
	Profile termenv.Profile
	// Width bounds wrapped notes and truncated URLs.
	Width int
	Out   io.Writer
	// Media resolves icon names to library files when set.
	Media *media.Manifest
}

// NewPretty prints to stdout in the colors stdout supports.
func NewPretty(theme card.Theme) *PrettyPrint {
	return &PrettyPrint{
		Theme:   theme,
		Profile: Profile(os.Stdout),
		Width:   80,
		Out:     color.Output,
	}
}

const urlTail = "…"

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width < 20 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Dashboard prints every card of the layout of mode, in order.
func (pp *PrettyPrint) Dashboard(d *card.Document, mode card.DisplayMode) {
	// Deriving the stacked layout must not touch the caller's document.
	layout := *d.Clone().Layout(mode)
	if len(layout) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no cards\n\n")
		return
	}
	for _, s := range layout {
		pp.Section(d, s)
	}
}

// Section prints one card: its title line, note and subtitle buckets.
func (pp *PrettyPrint) Section(d *card.Document, s card.SectionRef) {
	w := pp.out()
	faint := color.New(color.Faint)

	title := d.SectionTitles[s.ID]
	if title == "" {
		title = s.Title
	}
	if title == "" {
		title = s.ID
	}
	if icon := d.SectionIcons[s.ID]; icon != "" {
		title = icon + " " + title
	}
	_, _ = fmt.Fprint(w, paint(pp.Profile, title, d.SectionColors[s.ID], pp.Theme, true))
	if s.TwoColumnPair {
		_, _ = faint.Fprintf(w, " [pair %d/2]", s.PairIndex+1)
	}
	if pp.ShowKey {
		_, _ = faint.Fprintf(w, "  %s", s.ID)
	}
	_, _ = fmt.Fprintln(w)

	if note := d.CardNotes[s.ID]; note != "" {
		wrapped := wordwrap.String(note, pp.width()-4)
		_, _ = faint.Fprintln(w, indent.String(wrapped, 2))
	}

	c := d.ContentOf(s.ID)
	for _, sub := range c.Subtitles() {
		b := c.Bucket(sub)
		key := card.SubtitleKey(s.ID, sub)
		indentBy := 2
		if sub != card.DefaultSubtitle {
			_, _ = fmt.Fprint(w, "  "+paint(pp.Profile, sub, d.SubtitleColors[key], pp.Theme, false))
			if d.CollapsedSubtitles[key] {
				_, _ = faint.Fprintf(w, " (%d hidden)\n", itemCount(b))
				continue
			}
			_, _ = fmt.Fprintln(w)
			indentBy = 4
		} else if b.Empty() {
			continue
		}
		pp.Bucket(b, indentBy)
	}
	_, _ = fmt.Fprintln(w)
}

// Bucket prints the items of one subtitle, grouped by kind.
func (pp *PrettyPrint) Bucket(b *card.Bucket, indentBy int) {
	w := pp.out()
	pad := strings.Repeat(" ", indentBy)
	faint := color.New(color.Faint)
	key := color.New(color.FgHiYellow, color.Italic, color.Faint)

	item := func(itemKey, bullet, text, extra string) {
		_, _ = fmt.Fprint(w, pad)
		if pp.ShowKey {
			_, _ = key.Fprintf(w, "%-12s ", itemKey)
		}
		_, _ = fmt.Fprintf(w, "%s %s", bullet, text)
		if extra != "" {
			_, _ = faint.Fprintf(w, "  %s", extra)
		}
		_, _ = fmt.Fprintln(w)
	}

	for _, i := range b.Icons {
		if i.IsDivider {
			item(i.Key, DividerBullet, strings.Repeat(DividerBullet, 8), "")
			continue
		}
		icon := i.Icon
		if pp.Media != nil {
			if resolved, ok := pp.Media.Resolve(i.Icon); ok {
				icon = resolved
			}
		}
		item(i.Key, IconBullet, i.Title, strings.TrimSpace(icon+" "+pp.url(i.URL)))
	}
	for _, r := range b.Reminders {
		item(r.Key, ReminderBullet, r.Title, pp.url(r.URL))
	}
	for _, s := range b.Subtasks {
		item(s.Key, SubtaskBullet, s.Text, pp.url(s.URL))
		for _, l := range s.Links {
			item("", LinkBullet, l.Title, pp.url(l.URL))
		}
	}
	for _, c := range b.CopyPaste {
		item(c.Key, CopyPasteBullet, c.Text, pp.clip(c.CopyText))
	}
}

func (pp *PrettyPrint) url(u string) string {
	return truncate.StringWithTail(u, uint(pp.width()/2), urlTail)
}

func (pp *PrettyPrint) clip(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return truncate.StringWithTail(s, uint(pp.width()/2), urlTail)
}

func itemCount(b *card.Bucket) int {
	n := 0
	for _, k := range card.AllKinds() {
		n += b.Len(k)
	}
	return n
}
