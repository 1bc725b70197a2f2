package export

import (
	"context"
	"iter"

	"github.com/annexlabs/annex/internal/annotations"
	"github.com/annexlabs/annex/internal/examples"
	"github.com/annexlabs/annex/internal/projects"
)

// ProjectSource resolves the project under export.
type ProjectSource interface {
	Find(ctx context.Context, id int64) (*projects.Project, error)
}

// ExampleSource streams a project's examples in ascending id order,
// optionally restricted to examples with at least one recorded approval.
type ExampleSource interface {
	Stream(ctx context.Context, projectID int64, approvedOnly bool) iter.Seq2[examples.Example, error]
}

// AnnotationSource lists one example's annotations in insertion (id) order.
type AnnotationSource interface {
	ListCategories(ctx context.Context, exampleID int64) ([]annotations.Category, error)
	ListSpans(ctx context.Context, exampleID int64) ([]annotations.Span, error)
	ListTexts(ctx context.Context, exampleID int64) ([]annotations.TextAnnotation, error)
}

// RelationSource exposes a project's stored span relations and the span
// lookup used to dereference them.
type RelationSource interface {
	ListRelations(ctx context.Context, projectID int64) ([]annotations.Relation, error)
	FindSpan(ctx context.Context, id int64) (*annotations.Span, error)
}
