// Package transfer builds export payloads of the dashboard document and
// applies imported payloads, of any schema generation, onto a live document.
package transfer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/cardboard/pkg/card"
)

const (
	// MetadataField holds provenance. It is never read back.
	MetadataField = "_metadata"
	// StructureField holds the layouts and presentation metadata.
	StructureField = "_structure"
)

// structureFields are the document fields exported under StructureField.
var structureFields = []string{
	card.FieldSections,
	card.FieldSectionsStacked,
	card.FieldSectionTitles,
	card.FieldSectionIcons,
	card.FieldSectionColors,
	card.FieldSubtitleColors,
	card.FieldCollapsedSubtitles,
	card.FieldCardNotes,
	card.FieldHeader,
}

// Metadata documents where an export came from.
type Metadata struct {
	ID           string         `json:"exportId"`
	ExportedAt   time.Time      `json:"exportedAt"`
	AppVersion   string         `json:"appVersion,omitempty"`
	SectionCount int            `json:"sectionCount"`
	SectionTypes map[string]int `json:"sectionTypes"`
}

// Payload is a self-contained snapshot of a document.
type Payload struct {
	Metadata Metadata
	Document *card.Document
}

// Export snapshots d. The payload shares no memory with d.
func Export(d *card.Document, appVersion string, now time.Time) Payload {
	snap := d.Clone()
	return Payload{
		Metadata: Metadata{
			ID:           uuid.NewString(),
			ExportedAt:   now.UTC(),
			AppVersion:   appVersion,
			SectionCount: len(snap.Sections),
			SectionTypes: snap.SectionTypes(),
		},
		Document: snap,
	}
}

// MarshalJSON writes the metadata block, the structure block, the UI state
// at the top level and one content entry per section id.
func (p Payload) MarshalJSON() ([]byte, error) {
	d := p.Document
	if d == nil {
		d = card.New()
	}
	fields := d.Fields()

	structure := make(map[string]any, len(structureFields))
	for _, f := range structureFields {
		if v, ok := fields[f]; ok {
			structure[f] = v
		}
		delete(fields, f)
	}

	out := fields
	out[MetadataField] = p.Metadata
	out[StructureField] = structure
	for _, id := range d.SectionIDs() {
		if card.IsField(id) || id == MetadataField || id == StructureField {
			continue
		}
		out[id] = d.ContentOf(id)
	}
	return json.Marshal(out)
}
