package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/migrate"
	"tableflip.dev/cardboard/pkg/schedule"
	"tableflip.dev/cardboard/pkg/store"
	"tableflip.dev/cardboard/pkg/transfer"
)

type memoryPersistence struct {
	payload  []byte
	saves    int
	failSave error
	backups  map[string][]byte
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{backups: map[string][]byte{}}
}

func (m *memoryPersistence) Load(_ context.Context, live *card.Document) (migrate.Report, error) {
	if m.payload == nil {
		return migrate.Report{}, nil
	}
	raw, err := migrate.Decode(m.payload)
	if err != nil {
		return migrate.Report{}, err
	}
	report := migrate.Upgrade(raw)
	stored, fields := card.DecodeFields(raw)
	store.Restore(live, stored, fields)
	if err := m.Save(context.Background(), live); err != nil {
		return report, fmt.Errorf("%w: %w", store.ErrNotRewritten, err)
	}
	return report, nil
}

func (m *memoryPersistence) Save(_ context.Context, d *card.Document) error {
	if m.failSave != nil {
		return m.failSave
	}
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	m.payload = b
	m.saves++
	return nil
}

func (m *memoryPersistence) Backup(context.Context) string {
	if m.payload == nil {
		return ""
	}
	name := fmt.Sprintf("b%d", len(m.backups)+1)
	m.backups[name] = m.payload
	return name
}

func (m *memoryPersistence) Backups(context.Context) []store.Snapshot {
	var out []store.Snapshot
	for name, b := range m.backups {
		out = append(out, store.Snapshot{Name: name, Size: len(b)})
	}
	return out
}

func (m *memoryPersistence) ReadBackup(_ context.Context, name string) (*card.Document, error) {
	b, ok := m.backups[name]
	if !ok {
		return nil, card.NotFoundError{Kind: "backup", ID: name}
	}
	var d card.Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func openService(t *testing.T, p *memoryPersistence) *Service {
	t.Helper()
	s := &Service{
		Persistence: p,
		Now:         func() time.Time { return time.Date(2024, 2, 15, 9, 0, 0, 0, time.Local) },
	}
	require.NoError(t, s.Open(context.Background()))
	return s
}

func TestMutationsPersistOutsideEdit(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersistence()
	s := openService(t, p)

	id, err := s.AddSection(ctx, "Tools")
	require.NoError(t, err)
	key, err := s.AddItem(ctx, id, "", card.KindIcons, map[string]any{"icon": "a.png"})
	require.NoError(t, err)
	assert.Equal(t, "icon_1", key)
	assert.Equal(t, 2, p.saves)

	require.NoError(t, s.DeleteItem(ctx, id, "", card.KindIcons, key))
	assert.Equal(t, 3, p.saves)

	var nf card.NotFoundError
	require.ErrorAs(t, s.DeleteSection(ctx, "missing"), &nf)
	assert.Equal(t, 3, p.saves, "failed operations are not persisted")
}

func TestEditSessionPersistsOnCommit(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersistence()
	s := openService(t, p)
	id, err := s.AddSection(ctx, "Tools")
	require.NoError(t, err)
	saves := p.saves

	require.NoError(t, s.BeginEdit())
	assert.True(t, s.Editing())
	_, err = s.AddSection(ctx, "Bills")
	require.NoError(t, err)
	require.NoError(t, s.ReorderSection(ctx, card.Normal, 1, 0))
	assert.Equal(t, saves, p.saves)

	require.NoError(t, s.CommitEdit(ctx))
	assert.Equal(t, saves+1, p.saves)
	assert.Equal(t, "section_2", s.Current().Sections[0].ID)
	assert.Equal(t, id, s.Current().Sections[1].ID)

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.DeleteSection(ctx, id))
	require.NoError(t, s.DiscardEdit())
	_, ok := s.Current().Section(id)
	assert.True(t, ok)
	assert.Equal(t, saves+1, p.saves)
}

func TestSaveFailureNotifies(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersistence()
	var got []string
	s := openService(t, p)
	s.Notifier = NotifierFunc(func(level Level, msg string) {
		got = append(got, level.String()+": "+msg)
	})

	p.failSave = store.ErrQuotaExceeded
	_, err := s.AddSection(ctx, "Tools")
	require.ErrorIs(t, err, store.ErrQuotaExceeded)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "error: changes could not be saved")
	assert.Len(t, s.Current().Sections, 1, "in-memory state stays valid")

	p.failSave = nil
	_, err = s.AddSection(ctx, "Bills")
	require.NoError(t, err)
}

func TestOpenKeepsDocumentWhenRewriteFails(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersistence()
	p.payload = []byte(`{"sections":[{"id":"links","type":"newCard","title":"Links"}],"links":[{"key":"gh","icon":"gh.png"}]}`)
	p.failSave = store.ErrQuotaExceeded

	var got []string
	s := &Service{
		Persistence: p,
		Notifier: NotifierFunc(func(level Level, msg string) {
			got = append(got, level.String()+": "+msg)
		}),
	}
	require.NoError(t, s.Open(ctx))
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "error: dashboard loaded but could not be saved")
	require.Len(t, s.Current().Sections, 1)
	assert.Equal(t, "links", s.Current().Sections[0].ID)

	require.NoError(t, s.Reload(ctx))
	assert.Len(t, got, 2)
	assert.Len(t, s.Current().Sections, 1)

	p.failSave = nil
	_, err := s.AddSection(ctx, "Tools")
	require.NoError(t, err)
}

func TestImportRefreshesWorkingCopy(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersistence()
	s := openService(t, p)

	src := card.New()
	id := src.AddSection("Imported")
	_, err := src.AddItem(id, "", card.KindSubtasks, map[string]any{"text": "read"})
	require.NoError(t, err)
	b, err := json.Marshal(transfer.Export(src, "test", time.Now()))
	require.NoError(t, err)

	require.NoError(t, s.BeginEdit())
	s.Current().DarkMode = true

	raw, err := migrate.Decode(b)
	require.NoError(t, err)
	saves := p.saves
	res, err := s.Import(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, res.Sections)
	assert.Equal(t, saves+1, p.saves, "import persists once")

	// The working copy now reflects the import.
	_, ok := s.Current().Section(id)
	assert.True(t, ok)
	require.NoError(t, s.CommitEdit(ctx))
	_, ok = s.Current().Section(id)
	assert.True(t, ok, "commit must not revert the import")
}

func TestImportGuard(t *testing.T) {
	ctx := context.Background()
	s := openService(t, newMemoryPersistence())
	s.importing = true

	_, err := s.Import(ctx, migrate.Raw{})
	assert.ErrorIs(t, err, ErrImportInProgress)

	file := filepath.Join(t.TempDir(), OverrideFile)
	require.NoError(t, os.WriteFile(file, []byte(`{"schemaVersion":3}`), 0o644))
	ok, err := s.ApplyOverride(ctx, file)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestApplyOverride(t *testing.T) {
	ctx := context.Background()
	payload := `{"schemaVersion": 3, "_structure": {"sections": [{"id": "net", "type": "unified", "title": "Net"}]},
		"net": {"_default": {"icons": [{"key": "n", "icon": "n.png"}]}}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/override.json" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, payload)
	}))
	defer srv.Close()

	s := openService(t, newMemoryPersistence())
	ok, err := s.ApplyOverride(ctx, srv.URL+"/missing.json")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.ApplyOverride(ctx, srv.URL+"/override.json")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "n", s.Current().ContentOf("net").Bucket(card.DefaultSubtitle).Icons[0].Key)

	ok, err = s.ApplyOverride(ctx, filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.False(t, ok)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	ok, err = s.ApplyOverride(ctx, bad)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "hello")
	}))
	defer srv.Close()

	s := &Service{}
	b, err := s.Fetch(ctx, srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = s.Fetch(ctx, srv.URL+"/gone")
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, OverrideFile), []byte("{}"), 0o644))
	b, err = s.Fetch(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))

	_, err = s.Fetch(ctx, filepath.Join(dir, "nope.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteOverride(t *testing.T) {
	ctx := context.Background()
	s := openService(t, newMemoryPersistence())
	id, err := s.AddSection(ctx, "Tools")
	require.NoError(t, err)

	ok, err := s.WriteOverride(ctx, filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	dir := t.TempDir()
	ok, err = s.WriteOverride(ctx, dir)
	require.NoError(t, err)
	require.True(t, ok)

	// The written file is a valid override for another device.
	other := openService(t, newMemoryPersistence())
	ok, err = other.ApplyOverride(ctx, dir)
	require.NoError(t, err)
	require.True(t, ok)
	_, found := other.Current().Section(id)
	assert.True(t, found)
}

func TestBackupAndRestore(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersistence()
	s := openService(t, p)
	id, err := s.AddSection(ctx, "Keep")
	require.NoError(t, err)

	name := s.Backup(ctx)
	require.NotEmpty(t, name)
	require.NoError(t, s.DeleteSection(ctx, id))

	require.NoError(t, s.RestoreBackup(ctx, name))
	_, ok := s.Current().Section(id)
	assert.True(t, ok)
	assert.Len(t, s.Backups(ctx), 2, "restore backs up the replaced document")

	var nf card.NotFoundError
	assert.True(t, errors.As(s.RestoreBackup(ctx, "nope"), &nf))
}

func TestMigrateReloadsStoredDocument(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersistence()
	p.payload = []byte(`{"sections": [{"id": "a", "type": "tools", "title": "A"}], "a": [{"text": "x"}]}`)
	s := openService(t, p)
	assert.Equal(t, card.UnifiedType, s.Current().Sections[0].Type)

	report, backup, err := s.Migrate(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, backup)
	assert.False(t, report.Changed(), "stored document is current after open saved it")
}

func TestDueOrdering(t *testing.T) {
	ctx := context.Background()
	s := openService(t, newMemoryPersistence())
	id, err := s.AddSection(ctx, "Bills")
	require.NoError(t, err)

	add := func(fields map[string]any) {
		_, err := s.AddItem(ctx, id, "", card.KindReminders, fields)
		require.NoError(t, err)
	}
	add(map[string]any{"title": "Far", "schedule": map[string]any{"type": "monthly", "dayOfMonth": 28}})
	add(map[string]any{"title": "Overdue", "schedule": map[string]any{"type": "once", "date": "2024-02-01"}})
	add(map[string]any{"title": "Soon", "schedule": map[string]any{"type": "once", "date": "2024-02-16"}})
	add(map[string]any{"title": "Budget", "type": "interval", "interval": 100, "currentNumber": 90})
	add(map[string]any{"title": "Unscheduled"})

	due := s.Due(s.Today())
	var titles []string
	for _, d := range due {
		titles = append(titles, d.Reminder.Title)
	}
	assert.Equal(t, []string{"Overdue", "Budget", "Soon", "Far"}, titles)

	assert.Equal(t, -14, due[0].Days)
	assert.Equal(t, schedule.Danger, due[0].Urgency)
	require.NotNil(t, due[1].Progress)
	assert.Equal(t, schedule.BandWorst, due[1].Progress.Band)
	assert.Equal(t, 13, due[3].Days)
	assert.Equal(t, schedule.Green, due[3].Urgency)
}
