package annotations

import "context"

// System defines the public contract for annotation operations. Category,
// span, and text operations are scoped to a single example; relations are
// scoped to a project. Lists return rows in insertion (id) order.
type System interface {
	Handler() *Handler

	ListCategories(ctx context.Context, exampleID int64) ([]Category, error)
	CreateCategory(ctx context.Context, exampleID int64, cmd CreateCategoryCommand) (*Category, error)
	DeleteCategory(ctx context.Context, exampleID, id int64) error

	ListSpans(ctx context.Context, exampleID int64) ([]Span, error)
	FindSpan(ctx context.Context, id int64) (*Span, error)
	CreateSpan(ctx context.Context, exampleID int64, cmd CreateSpanCommand) (*Span, error)
	DeleteSpan(ctx context.Context, exampleID, id int64) error

	ListTexts(ctx context.Context, exampleID int64) ([]TextAnnotation, error)
	CreateText(ctx context.Context, exampleID int64, cmd CreateTextCommand) (*TextAnnotation, error)
	DeleteText(ctx context.Context, exampleID, id int64) error

	ListRelations(ctx context.Context, projectID int64) ([]Relation, error)
	CreateRelation(ctx context.Context, projectID int64, cmd CreateRelationCommand) (*Relation, error)
	DeleteRelation(ctx context.Context, projectID, id int64) error

	Counts(ctx context.Context, projectID int64) (*Counts, error)
}
