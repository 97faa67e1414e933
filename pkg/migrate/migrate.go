// Package migrate upgrades stored or imported dashboard documents of any
// historical shape to the current unified schema.
package migrate

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap/zapcore"

	"tableflip.dev/cardboard/pkg/card"
)

// CurrentVersion is the schema version every migrated document carries.
const CurrentVersion = card.SchemaVersion

// Raw is a document split into its top-level fields.
type Raw map[string]json.RawMessage

// Decode splits b into top-level fields.
func Decode(b []byte) (Raw, error) {
	var raw Raw
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("migrate: decode document: %w", err)
	}
	if raw == nil {
		raw = Raw{}
	}
	return raw, nil
}

// Clone copies raw. Field values are copied too.
func (r Raw) Clone() Raw {
	out := make(Raw, len(r))
	for k, v := range r {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Version reads schemaVersion, defaulting to 1 when absent or not a number.
func Version(raw Raw) int {
	var v float64
	if err := json.Unmarshal(raw[card.FieldSchemaVersion], &v); err != nil || v < 1 {
		return 1
	}
	return int(v)
}

// Report describes what a migration changed.
type Report struct {
	From int
	To   int
	// Synthesized is set when the sections list was built from a flat
	// legacy document.
	Synthesized bool
	// Converted lists the ids of sections whose legacy type was rewritten.
	Converted []string
	// Dropped lists the ids whose content could not be converted.
	Dropped []string
	// Injected counts buckets that gained a reminders list.
	Injected int
}

// Changed reports whether the document was touched beyond normalization.
func (r Report) Changed() bool {
	return r.From != r.To || r.Synthesized || len(r.Converted) > 0 || len(r.Dropped) > 0 || r.Injected > 0
}

// MarshalLogObject lets a Report be logged with zap.Object.
func (r Report) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("from", r.From)
	enc.AddInt("to", r.To)
	enc.AddBool("synthesized", r.Synthesized)
	enc.AddInt("converted", len(r.Converted))
	enc.AddInt("dropped", len(r.Dropped))
	enc.AddInt("injected", r.Injected)
	return nil
}

type step struct {
	from  int
	name  string
	apply func(Raw, *Report)
}

// steps upgrade a document from version `from` to from+1.
var steps = []step{
	{from: 1, name: "unify legacy section types", apply: unifySections},
	{from: 2, name: "add reminders to unified buckets", apply: addReminders},
}

// Migrate returns an upgraded copy of raw. raw is not modified.
func Migrate(raw Raw) (Raw, Report) {
	out := raw.Clone()
	return out, Upgrade(out)
}

// Upgrade migrates raw in place. It is idempotent and never lowers the
// schema version. A final normalization pass runs on every call, so content
// that skipped migration (hand edits, imports) is repaired too.
func Upgrade(raw Raw) Report {
	from := Version(raw)
	r := Report{From: from}
	if synthesizeSections(raw) {
		r.Synthesized = true
	}

	v := from
	for _, s := range steps {
		if v == s.from {
			s.apply(raw, &r)
			v = s.from + 1
		}
	}
	unifySections(raw, &r)

	if v < CurrentVersion {
		v = CurrentVersion
	}
	r.To = v
	raw[card.FieldSchemaVersion] = mustMarshal(v)
	return r
}

// Steps names the upgrade steps that would run for a document at version v.
func Steps(v int) []string {
	var names []string
	for _, s := range steps {
		if v == s.from {
			names = append(names, s.name)
			v++
		}
	}
	return names
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("migrate: marshal %T: %v", v, err))
	}
	return b
}
