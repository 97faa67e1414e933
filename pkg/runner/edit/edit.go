// Package edit runs document changes from the command line inside an edit
// session, so a change is either committed whole or discarded.
package edit

import (
	"context"
	"errors"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/printers"
)

type Session struct {
	Service *app.Service
	// DryRun prints the edited card and discards the session.
	DryRun  bool
	Printer *printers.PrettyPrint
	// Mode is the layout printed when a change has no single card to show.
	// It defaults to the document's display mode.
	Mode card.DisplayMode
}

// Run applies change to the working copy and commits it, or discards it on
// a dry run. The card whose id change returns is printed afterwards, the
// whole dashboard when there is none.
func (s *Session) Run(ctx context.Context, change func(ctx context.Context) (string, error)) error {
	if s.Service == nil {
		return errors.New("no dashboard service")
	}
	if err := s.Service.BeginEdit(); err != nil {
		return err
	}
	section, err := change(ctx)
	if err != nil {
		_ = s.Service.DiscardEdit()
		return err
	}

	if s.DryRun {
		s.print(s.Service.Current(), section)
		return s.Service.DiscardEdit()
	}
	if err := s.Service.CommitEdit(ctx); err != nil {
		return err
	}
	s.print(s.Service.Current(), section)
	return nil
}

func (s *Session) print(d *card.Document, section string) {
	if s.Printer == nil {
		return
	}
	if ref, ok := d.Section(section); ok {
		s.Printer.Section(d, ref)
		return
	}
	mode := s.Mode
	if mode == "" {
		mode = d.DisplayMode
	}
	s.Printer.Dashboard(d, mode)
}
