package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/migrate"
	"tableflip.dev/cardboard/pkg/session"
	"tableflip.dev/cardboard/pkg/store"
	"tableflip.dev/cardboard/pkg/transfer"
)

// Service provides the dashboard operations shared by every front end. It
// owns the edit session and persists after each change made outside one.
// A Service is not safe for concurrent use; callers serialize actions.
type Service struct {
	Persistence store.Persistence
	Log         *zap.Logger
	Notifier    Notifier
	// Version is recorded in export metadata.
	Version string
	// Now defaults to time.Now.
	Now func() time.Time
	// HTTP fetches override URLs. Defaults to http.DefaultClient.
	HTTP *http.Client

	editor    *session.Editor
	importing bool
}

var (
	ErrNotOpen          = errors.New("app: dashboard not opened")
	ErrImportInProgress = errors.New("app: import already in progress")
)

// Open loads the stored dashboard. It must be called before anything else.
func (s *Service) Open(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	live := card.New()
	report, err := s.load(ctx, live)
	if err != nil {
		return err
	}
	if report.Changed() {
		s.log().Debug("dashboard migrated on open", zap.Object("migration", report))
	}
	s.editor = session.New(live)
	return nil
}

// Reload replaces the live document with the stored one, as after a change
// made by another process. An active edit session is refreshed.
func (s *Service) Reload(ctx context.Context) error {
	if s.editor == nil {
		return s.Open(ctx)
	}
	live := card.New()
	if _, err := s.load(ctx, live); err != nil {
		return err
	}
	s.editor.Replace(live)
	return nil
}

// load restores the stored document into live. A document that loaded but
// could not be written back stays usable in memory.
func (s *Service) load(ctx context.Context, live *card.Document) (migrate.Report, error) {
	report, err := s.Persistence.Load(ctx, live)
	if errors.Is(err, store.ErrNotRewritten) {
		s.log().Error("stored document not rewritten", zap.Error(err))
		s.notify(Error, fmt.Sprintf("dashboard loaded but could not be saved: %v", err))
		return report, nil
	}
	return report, err
}

// Current returns the working copy while editing, else the live document.
func (s *Service) Current() *card.Document {
	if s.editor == nil {
		return card.New()
	}
	return s.editor.Current()
}

func (s *Service) Editing() bool {
	return s.editor != nil && s.editor.Editing()
}

func (s *Service) BeginEdit() error {
	if s.editor == nil {
		return ErrNotOpen
	}
	return s.editor.Begin()
}

// CommitEdit merges the working copy into the live document and persists.
func (s *Service) CommitEdit(ctx context.Context) error {
	if s.editor == nil {
		return ErrNotOpen
	}
	if err := s.editor.Commit(); err != nil {
		return err
	}
	return s.save(ctx)
}

func (s *Service) DiscardEdit() error {
	if s.editor == nil {
		return ErrNotOpen
	}
	return s.editor.Discard()
}

// mutate applies fn to the current document and persists unless an edit
// session is collecting the change.
func (s *Service) mutate(ctx context.Context, fn func(d *card.Document) error) error {
	if s.editor == nil {
		return ErrNotOpen
	}
	if err := fn(s.editor.Current()); err != nil {
		return err
	}
	if s.editor.Editing() {
		return nil
	}
	return s.save(ctx)
}

func (s *Service) save(ctx context.Context) error {
	if err := s.Persistence.Save(ctx, s.editor.Live()); err != nil {
		s.notify(Error, fmt.Sprintf("changes could not be saved: %v", err))
		return err
	}
	return nil
}

// AddItem adds an item built from fields and returns its key.
func (s *Service) AddItem(ctx context.Context, sectionID, subtitle string, kind card.Kind, fields map[string]any) (string, error) {
	var key string
	err := s.mutate(ctx, func(d *card.Document) (err error) {
		key, err = d.AddItem(sectionID, subtitle, kind, fields)
		return err
	})
	return key, err
}

func (s *Service) DeleteItem(ctx context.Context, sectionID, subtitle string, kind card.Kind, key string) error {
	return s.mutate(ctx, func(d *card.Document) error {
		return d.DeleteItem(sectionID, subtitle, kind, key)
	})
}

func (s *Service) ReorderItem(ctx context.Context, sectionID, subtitle string, kind card.Kind, from, to int) error {
	return s.mutate(ctx, func(d *card.Document) error {
		return d.ReorderItem(sectionID, subtitle, kind, from, to)
	})
}

// AddSection adds an empty card and returns its id.
func (s *Service) AddSection(ctx context.Context, title string) (string, error) {
	var id string
	err := s.mutate(ctx, func(d *card.Document) error {
		id = d.AddSection(title)
		return nil
	})
	return id, err
}

func (s *Service) DeleteSection(ctx context.Context, id string) error {
	return s.mutate(ctx, func(d *card.Document) error {
		return d.DeleteSection(id)
	})
}

func (s *Service) ReorderSection(ctx context.Context, mode card.DisplayMode, from, to int) error {
	return s.mutate(ctx, func(d *card.Document) error {
		return d.ReorderSection(mode, from, to)
	})
}

// Update runs an arbitrary document change through the same path as the
// named operations.
func (s *Service) Update(ctx context.Context, fn func(d *card.Document) error) error {
	return s.mutate(ctx, fn)
}

// Export snapshots the current document.
func (s *Service) Export() transfer.Payload {
	return transfer.Export(s.Current(), s.Version, s.now())
}

// Import applies a payload onto the live document, refreshes an active edit
// session and persists once.
func (s *Service) Import(ctx context.Context, raw migrate.Raw) (transfer.Result, error) {
	if s.editor == nil {
		return transfer.Result{}, ErrNotOpen
	}
	if s.importing {
		return transfer.Result{}, ErrImportInProgress
	}
	s.importing = true
	defer func() { s.importing = false }()

	res := transfer.Apply(s.editor.Live(), raw)
	if s.editor.Refresh() {
		s.log().Debug("edit session refreshed after import")
	}
	s.log().Info("imported dashboard",
		zap.Int("version", res.Version),
		zap.Strings("sections", res.Sections),
		zap.Strings("ignored", res.Ignored),
		zap.Object("migration", res.Migration))
	return res, s.save(ctx)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) log() *zap.Logger {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
	return s.Log
}

func (s *Service) notify(level Level, msg string) {
	if s.Notifier != nil {
		s.Notifier.Notify(level, msg)
	}
}
