package export

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
)

type repo struct {
	projects    ProjectSource
	examples    ExampleSource
	annotations AnnotationSource
	relations   RelationSource
	logger      *slog.Logger
}

// New creates an export System over the given domain sources.
func New(
	projectSrc ProjectSource,
	exampleSrc ExampleSource,
	annotationSrc AnnotationSource,
	relationSrc RelationSource,
	logger *slog.Logger,
) System {
	return &repo{
		projects:    projectSrc,
		examples:    exampleSrc,
		annotations: annotationSrc,
		relations:   relationSrc,
		logger:      logger.With("system", "export"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// List produces the record stream for one project. Nothing is read from the
// sources until the caller pulls; each pull advances the underlying example
// cursor at most one row.
func (r *repo) List(ctx context.Context, projectID int64, approvedOnly bool) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		project, err := r.projects.Find(ctx, projectID)
		if err != nil {
			yield(Record{}, fmt.Errorf("find project %d: %w", projectID, err))
			return
		}

		strat, ok := strategies[project.Type]
		if !ok {
			yield(Record{}, fmt.Errorf("%w: %s", ErrUnsupportedType, project.Type))
			return
		}

		for ex, err := range r.examples.Stream(ctx, projectID, approvedOnly) {
			if err != nil {
				yield(Record{}, fmt.Errorf("stream examples: %w", err))
				return
			}

			labels, err := strat.labels(ctx, r.annotations, ex.ID)
			if err != nil {
				yield(Record{}, fmt.Errorf("collect labels for example %d: %w", ex.ID, err))
				return
			}

			var relations *Grouping[RelationTuple]
			if strat.relations {
				relations, err = r.relationTuples(ctx, projectID)
				if err != nil {
					yield(Record{}, err)
					return
				}
			}

			if project.Collaborative {
				labels = ReduceAll(labels)
				if relations != nil {
					relations = ReduceAll(relations)
				}
			}

			data := strat.data(&ex)

			if labels.Len() == 0 {
				record := Record{
					ID:        ex.ID,
					Data:      data,
					Label:     []Label{},
					User:      UserUnknown,
					Metadata:  map[string]any{},
					Relations: []RelationTuple{},
				}
				if !yield(record, nil) {
					return
				}
				continue
			}

			for user, values := range labels.All() {
				record := Record{
					ID:        ex.ID,
					Data:      data,
					Label:     values,
					User:      user,
					Metadata:  ex.Meta,
					Relations: []RelationTuple{},
				}
				if relations != nil {
					if tuples := relations.Get(user); tuples != nil {
						record.Relations = tuples
					}
				}
				if !yield(record, nil) {
					return
				}
			}
		}
	}
}

// relationTuples dereferences every stored relation for the project into
// export tuples grouped by annotator. A relation referencing a missing span
// is a data-integrity failure: the error propagates and no further records
// are produced.
func (r *repo) relationTuples(ctx context.Context, projectID int64) (*Grouping[RelationTuple], error) {
	relations, err := r.relations.ListRelations(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}

	g := NewGrouping[RelationTuple]()
	for _, rel := range relations {
		from, err := r.relations.FindSpan(ctx, rel.FromSpanID)
		if err != nil {
			return nil, fmt.Errorf("relation %d: resolve span %d: %w", rel.ID, rel.FromSpanID, err)
		}

		to, err := r.relations.FindSpan(ctx, rel.ToSpanID)
		if err != nil {
			return nil, fmt.Errorf("relation %d: resolve span %d: %w", rel.ID, rel.ToSpanID, err)
		}

		g.Add(rel.UserName, RelationTuple{
			FromOffset: from.StartOffset,
			FromLabel:  from.Label,
			ToOffset:   to.StartOffset,
			ToLabel:    to.Label,
			Type:       rel.Type,
		})
	}

	return g, nil
}
