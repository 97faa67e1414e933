package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/migrate"
)

// Persistence defines the persistence contract for the dashboard document.
type Persistence interface {
	// Load restores the stored document into live, migrating it first. A
	// missing document leaves live untouched. A failed write back returns
	// an error matching ErrNotRewritten with live already restored.
	Load(ctx context.Context, live *card.Document) (migrate.Report, error)
	Save(ctx context.Context, d *card.Document) error
	// Backup snapshots the stored payload. It returns the snapshot name, or
	// "" when nothing was written.
	Backup(ctx context.Context) string
	// Backups lists the snapshots, newest first.
	Backups(ctx context.Context) []Snapshot
	ReadBackup(ctx context.Context, name string) (*card.Document, error)
	Watch(ctx context.Context) (<-chan Event, error)
}

// Snapshot describes one backup.
type Snapshot struct {
	Name  string    `json:"name"`
	Taken time.Time `json:"taken"`
	Size  int       `json:"size"`
}

const backupLayout = "20060102T150405.000000000Z"

// Option configures a Persistence.
type Option func(*persistence)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(p *persistence) {
		if log != nil {
			p.log = log
		}
	}
}

// WithClock replaces time.Now for backup names.
func WithClock(now func() time.Time) Option {
	return func(p *persistence) {
		p.now = now
	}
}

// Open creates a Persistence backed by diskv using the provided config.
func Open(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return newPersistence(NewKV(cfg.BasePath(), cfg.Quota()), cfg.BasePath(), opts...), nil
}

// New wraps an existing KV. Watch needs a base path and fails for stores
// made this way.
func New(kv KV, opts ...Option) Persistence {
	return newPersistence(kv, "", opts...)
}

func newPersistence(kv KV, basePath string, opts ...Option) *persistence {
	p := &persistence{kv: kv, basePath: basePath, log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type persistence struct {
	kv       KV
	basePath string
	log      *zap.Logger
	now      func() time.Time
}

// read returns the stored payload, falling back to the legacy key. found is
// false when neither exists.
func (p *persistence) read() (payload []byte, key string, err error) {
	for _, key := range []string{DocumentKey, LegacyKey} {
		val, err := p.kv.Read(key)
		if err == nil {
			return val, key, nil
		}
		if !notFound(err) {
			return nil, key, fmt.Errorf("store: read %s: %w", key, err)
		}
	}
	return nil, "", nil
}

func (p *persistence) Load(ctx context.Context, live *card.Document) (migrate.Report, error) {
	payload, key, err := p.read()
	if err != nil || payload == nil {
		return migrate.Report{}, err
	}

	raw, err := migrate.Decode(payload)
	if err != nil {
		// A corrupt document must not keep the dashboard from opening.
		p.log.Warn("stored document unreadable, starting empty", zap.String("key", key), zap.Error(err))
		return migrate.Report{}, nil
	}
	report := migrate.Upgrade(raw)
	if report.Changed() {
		p.log.Info("migrated stored document", zap.String("key", key), zap.Object("migration", report))
	}

	stored, fields := card.DecodeFields(raw)
	Restore(live, stored, fields)

	if err := p.Save(ctx, live); err != nil {
		return report, fmt.Errorf("%w: %w", ErrNotRewritten, err)
	}
	if key == LegacyKey {
		if err := p.kv.Erase(LegacyKey); err != nil {
			p.log.Debug("erase legacy document", zap.Error(err))
		}
	}
	return report, nil
}

// Restore copies the fields of stored that were present onto live. Map
// fields are merged key by key so entries live already has survive; lists
// and scalars are replaced. Content is replaced per section id.
func Restore(live, stored *card.Document, fields card.FieldSet) {
	if fields[card.FieldSchemaVersion] {
		live.SchemaVersion = stored.SchemaVersion
	}
	if fields[card.FieldSections] {
		live.Sections = stored.Sections
	}
	if fields[card.FieldSectionsStacked] {
		live.SectionsStacked = stored.SectionsStacked
	}
	if fields[card.FieldSectionTitles] {
		live.SectionTitles = mergeInto(live.SectionTitles, stored.SectionTitles)
	}
	if fields[card.FieldSectionIcons] {
		live.SectionIcons = mergeInto(live.SectionIcons, stored.SectionIcons)
	}
	if fields[card.FieldSectionColors] {
		live.SectionColors = mergeInto(live.SectionColors, stored.SectionColors)
	}
	if fields[card.FieldSubtitleColors] {
		live.SubtitleColors = mergeInto(live.SubtitleColors, stored.SubtitleColors)
	}
	if fields[card.FieldCollapsedSubtitles] {
		live.CollapsedSubtitles = mergeInto(live.CollapsedSubtitles, stored.CollapsedSubtitles)
	}
	if fields[card.FieldCardNotes] {
		live.CardNotes = mergeInto(live.CardNotes, stored.CardNotes)
	}
	if fields[card.FieldHeader] {
		live.Header = mergeInto(live.Header, stored.Header)
	}
	if fields[card.FieldDarkMode] {
		live.DarkMode = stored.DarkMode
	}
	if fields[card.FieldDisplayMode] {
		live.DisplayMode = stored.DisplayMode
	}
	if fields[card.FieldTimers] {
		live.Timers = stored.Timers
	}
	if fields[card.FieldQuickAccessItems] {
		live.QuickAccessItems = stored.QuickAccessItems
	}
	if live.Content == nil {
		live.Content = map[string]*card.Content{}
	}
	for id, c := range stored.Content {
		live.Content[id] = c
	}
}

func mergeInto[M ~map[string]V, V any](dst, src M) M {
	if dst == nil {
		dst = M{}
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (p *persistence) Save(ctx context.Context, d *card.Document) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("store: encode document: %w", err)
	}
	err = p.kv.Write(DocumentKey, payload)
	if errors.Is(err, ErrQuotaExceeded) {
		swept := p.sweepBackups()
		p.log.Warn("storage quota exceeded, removed backups", zap.Int("backups", swept), zap.Error(err))
		err = p.kv.Write(DocumentKey, payload)
	}
	if err != nil {
		return fmt.Errorf("store: save document: %w", err)
	}
	return nil
}

// sweepBackups erases every backup and returns how many were removed.
func (p *persistence) sweepBackups() int {
	n := 0
	for _, key := range p.kv.Keys(BackupPrefix) {
		if err := p.kv.Erase(key); err != nil {
			p.log.Debug("erase backup", zap.String("key", key), zap.Error(err))
			continue
		}
		n++
	}
	return n
}

func (p *persistence) Backup(ctx context.Context) string {
	payload, _, err := p.read()
	if err != nil || payload == nil {
		p.log.Debug("backup skipped, nothing stored", zap.Error(err))
		return ""
	}
	name := p.now().UTC().Format(backupLayout)
	if err := p.kv.Write(BackupPrefix+name, payload); err != nil {
		p.log.Debug("backup failed", zap.String("name", name), zap.Error(err))
		return ""
	}
	return name
}

func (p *persistence) Backups(ctx context.Context) []Snapshot {
	var list []Snapshot
	for _, key := range p.kv.Keys(BackupPrefix) {
		name := strings.TrimPrefix(key, BackupPrefix)
		taken, err := time.Parse(backupLayout, name)
		if err != nil {
			continue
		}
		s := Snapshot{Name: name, Taken: taken}
		if val, err := p.kv.Read(key); err == nil {
			s.Size = len(val)
		}
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Taken.After(list[j].Taken) })
	return list
}

func (p *persistence) ReadBackup(ctx context.Context, name string) (*card.Document, error) {
	payload, err := p.kv.Read(BackupPrefix + name)
	if err != nil {
		if notFound(err) {
			return nil, card.NotFoundError{Kind: "backup", ID: name}
		}
		return nil, fmt.Errorf("store: read backup %s: %w", name, err)
	}
	raw, err := migrate.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("store: backup %s: %w", name, err)
	}
	migrate.Upgrade(raw)
	d, _ := card.DecodeFields(raw)
	return d, nil
}
