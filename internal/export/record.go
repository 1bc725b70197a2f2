// Package export implements the export pipeline for Annex: it turns a
// project's examples and annotations into a lazy stream of per-annotator
// records ready for serialization.
package export

import "encoding/json"

// Reserved annotator names in exported records. UserUnknown marks records
// for examples nobody annotated; UserAll marks merged records in
// collaborative projects.
const (
	UserUnknown = "unknown"
	UserAll     = "all"
)

// Label is one exported label value. The concrete shape depends on the
// project type: TextLabel for categories and free text, SpanLabel for
// sequence labeling.
type Label interface {
	isLabel()
}

// TextLabel is a bare label string. Marshals as a JSON string.
type TextLabel string

func (TextLabel) isLabel() {}

// SpanLabel is an offset-bounded label. Marshals as [start, end, label].
type SpanLabel struct {
	Start int
	End   int
	Label string
}

func (SpanLabel) isLabel() {}

func (l SpanLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{l.Start, l.End, l.Label})
}

// RelationTuple is a fully dereferenced link between two spans. Marshals as
// [from_offset, from_label, to_offset, to_label, type].
type RelationTuple struct {
	FromOffset int
	FromLabel  string
	ToOffset   int
	ToLabel    string
	Type       string
}

func (t RelationTuple) MarshalJSON() ([]byte, error) {
	return json.Marshal([5]any{t.FromOffset, t.FromLabel, t.ToOffset, t.ToLabel, t.Type})
}

// Record is the export unit for one (example, annotator) pair. Label,
// Metadata, and Relations are always non-nil so they serialize as empty
// collections rather than null.
type Record struct {
	ID        int64           `json:"id"`
	Data      string          `json:"data"`
	Label     []Label         `json:"label"`
	User      string          `json:"user"`
	Metadata  map[string]any  `json:"metadata"`
	Relations []RelationTuple `json:"annotation_relations"`
}
