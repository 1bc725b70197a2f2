// Package annotations implements the annotation domain for Annex: the
// categories, spans, free-text entries, and span relations annotators record
// against examples.
package annotations

import "time"

// Category assigns one label type to a whole example.
type Category struct {
	ID        int64     `json:"id"`
	ExampleID int64     `json:"example_id"`
	LabelID   int64     `json:"label_id"`
	Label     string    `json:"label"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Span marks a labeled region of an example's text by character offsets.
type Span struct {
	ID          int64     `json:"id"`
	ExampleID   int64     `json:"example_id"`
	StartOffset int       `json:"start_offset"`
	EndOffset   int       `json:"end_offset"`
	LabelID     int64     `json:"label_id"`
	Label       string    `json:"label"`
	UserName    string    `json:"user_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// TextAnnotation records free text against an example, such as a translation
// or a transcript.
type TextAnnotation struct {
	ID        int64     `json:"id"`
	ExampleID int64     `json:"example_id"`
	Text      string    `json:"text"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Relation links two spans within a project under a named relation type.
type Relation struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"project_id"`
	FromSpanID int64     `json:"from_span_id"`
	ToSpanID   int64     `json:"to_span_id"`
	TypeID     int64     `json:"type_id"`
	Type       string    `json:"type"`
	UserName   string    `json:"user_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Counts aggregates a project's stored annotations by kind.
type Counts struct {
	Categories int64 `json:"categories"`
	Spans      int64 `json:"spans"`
	Texts      int64 `json:"texts"`
	Relations  int64 `json:"relations"`
}

// CreateCategoryCommand carries the data needed to record a category.
type CreateCategoryCommand struct {
	LabelID  int64  `json:"label_id"`
	UserName string `json:"user_name"`
}

// CreateSpanCommand carries the data needed to record a span.
type CreateSpanCommand struct {
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	LabelID     int64  `json:"label_id"`
	UserName    string `json:"user_name"`
}

// CreateTextCommand carries the data needed to record a free-text entry.
type CreateTextCommand struct {
	Text     string `json:"text"`
	UserName string `json:"user_name"`
}

// CreateRelationCommand carries the data needed to link two spans.
type CreateRelationCommand struct {
	FromSpanID int64  `json:"from_span_id"`
	ToSpanID   int64  `json:"to_span_id"`
	TypeID     int64  `json:"type_id"`
	UserName   string `json:"user_name"`
}
