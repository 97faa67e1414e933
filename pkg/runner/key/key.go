// Package key provides CLI helpers to display the dashboard legend.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cardboard/pkg/printers"
)

// Key prints the item bullets and the reminder urgency classes.
type Key struct{}

// Do renders the legend to stdout.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")
	k.Key(ctx, "Bullets", "Kind", printers.Bullets())
	_, _ = fmt.Fprintln(color.Output, "")
	k.Key(ctx, "Urgency", "Class", printers.Urgencies())
	fmt.Println("")
	return nil
}

// Key renders one glyph table.
func (k *Key) Key(_ context.Context, title, column string, glyfs []printers.Glyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(title), bold.Sprint(column), bold.Sprint("Meaning"))
	for _, v := range glyfs {
		tbl.AddRow(v.Symbol, v.Name, v.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}
