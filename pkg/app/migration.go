package app

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/migrate"
	"tableflip.dev/cardboard/pkg/store"
)

// Migrate snapshots the stored document, then loads it again through the
// migration engine and makes the result live. The report is empty when the
// stored document was already current.
func (s *Service) Migrate(ctx context.Context) (migrate.Report, string, error) {
	if s.editor == nil {
		return migrate.Report{}, "", ErrNotOpen
	}
	backup := s.Persistence.Backup(ctx)
	live := card.New()
	report, err := s.load(ctx, live)
	if err != nil {
		return report, backup, err
	}
	s.editor.Replace(live)
	s.log().Info("migration finished", zap.String("backup", backup), zap.Object("migration", report))
	return report, backup, nil
}

// Backup snapshots the stored document. Backups are best effort; "" means
// nothing was written.
func (s *Service) Backup(ctx context.Context) string {
	if s.Persistence == nil {
		return ""
	}
	return s.Persistence.Backup(ctx)
}

func (s *Service) Backups(ctx context.Context) []store.Snapshot {
	if s.Persistence == nil {
		return nil
	}
	return s.Persistence.Backups(ctx)
}

// RestoreBackup makes the named backup live. The document it replaces is
// backed up first.
func (s *Service) RestoreBackup(ctx context.Context, name string) error {
	if s.editor == nil {
		return ErrNotOpen
	}
	d, err := s.Persistence.ReadBackup(ctx, name)
	if err != nil {
		return err
	}
	if prev := s.Persistence.Backup(ctx); prev != "" {
		s.log().Debug("backed up before restore", zap.String("backup", prev))
	}
	s.editor.Replace(d)
	return s.save(ctx)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNotOpen
	}
	return s.Persistence.Watch(ctx)
}
