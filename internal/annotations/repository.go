package annotations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/annexlabs/annex/pkg/repository"
)

const (
	categoryColumns = "c.id, c.example_id, c.label_id, lt.text, c.user_name, c.created_at"
	spanColumns     = "s.id, s.example_id, s.start_offset, s.end_offset, s.label_id, lt.text, s.user_name, s.created_at"
	relationColumns = "r.id, r.project_id, r.from_span_id, r.to_span_id, r.type_id, rt.name, r.user_name, r.created_at"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an annotation repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "annotations"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListCategories(ctx context.Context, exampleID int64) ([]Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM public.categories c
		JOIN public.label_types lt ON lt.id = c.label_id
		WHERE c.example_id = $1
		ORDER BY c.id`

	return repository.QueryMany(ctx, r.db, query, []any{exampleID}, scanCategory)
}

func (r *repo) CreateCategory(ctx context.Context, exampleID int64, cmd CreateCategoryCommand) (*Category, error) {
	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		query := `
			INSERT INTO public.categories(example_id, label_id, user_name)
			VALUES ($1, $2, $3)
			RETURNING id`

		var id int64
		err := tx.QueryRowContext(ctx, query, exampleID, cmd.LabelID, cmd.UserName).Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("category created", "id", id, "example_id", exampleID, "user_name", cmd.UserName)
	return r.findCategory(ctx, id)
}

func (r *repo) DeleteCategory(ctx context.Context, exampleID, id int64) error {
	if err := r.deleteScoped(
		ctx,
		"DELETE FROM public.categories WHERE id = $1 AND example_id = $2",
		id, exampleID,
	); err != nil {
		return err
	}

	r.logger.Info("category deleted", "id", id, "example_id", exampleID)
	return nil
}

func (r *repo) ListSpans(ctx context.Context, exampleID int64) ([]Span, error) {
	query := `
		SELECT ` + spanColumns + `
		FROM public.spans s
		JOIN public.label_types lt ON lt.id = s.label_id
		WHERE s.example_id = $1
		ORDER BY s.id`

	return repository.QueryMany(ctx, r.db, query, []any{exampleID}, scanSpan)
}

func (r *repo) FindSpan(ctx context.Context, id int64) (*Span, error) {
	query := `
		SELECT ` + spanColumns + `
		FROM public.spans s
		JOIN public.label_types lt ON lt.id = s.label_id
		WHERE s.id = $1`

	sp, err := repository.QueryOne(ctx, r.db, query, []any{id}, scanSpan)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &sp, nil
}

func (r *repo) CreateSpan(ctx context.Context, exampleID int64, cmd CreateSpanCommand) (*Span, error) {
	if cmd.StartOffset < 0 || cmd.EndOffset <= cmd.StartOffset {
		return nil, ErrInvalidSpan
	}

	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		query := `
			INSERT INTO public.spans(example_id, start_offset, end_offset, label_id, user_name)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`

		var id int64
		err := tx.QueryRowContext(
			ctx, query,
			exampleID, cmd.StartOffset, cmd.EndOffset, cmd.LabelID, cmd.UserName,
		).Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("span created", "id", id, "example_id", exampleID, "user_name", cmd.UserName)
	return r.FindSpan(ctx, id)
}

func (r *repo) DeleteSpan(ctx context.Context, exampleID, id int64) error {
	if err := r.deleteScoped(
		ctx,
		"DELETE FROM public.spans WHERE id = $1 AND example_id = $2",
		id, exampleID,
	); err != nil {
		return err
	}

	r.logger.Info("span deleted", "id", id, "example_id", exampleID)
	return nil
}

func (r *repo) ListTexts(ctx context.Context, exampleID int64) ([]TextAnnotation, error) {
	query := `
		SELECT id, example_id, text, user_name, created_at
		FROM public.text_annotations
		WHERE example_id = $1
		ORDER BY id`

	return repository.QueryMany(ctx, r.db, query, []any{exampleID}, scanText)
}

func (r *repo) CreateText(ctx context.Context, exampleID int64, cmd CreateTextCommand) (*TextAnnotation, error) {
	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (TextAnnotation, error) {
		query := `
			INSERT INTO public.text_annotations(example_id, text, user_name)
			VALUES ($1, $2, $3)
			RETURNING id, example_id, text, user_name, created_at`

		return repository.QueryOne(ctx, tx, query, []any{exampleID, cmd.Text, cmd.UserName}, scanText)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("text annotation created", "id", t.ID, "example_id", exampleID, "user_name", cmd.UserName)
	return &t, nil
}

func (r *repo) DeleteText(ctx context.Context, exampleID, id int64) error {
	if err := r.deleteScoped(
		ctx,
		"DELETE FROM public.text_annotations WHERE id = $1 AND example_id = $2",
		id, exampleID,
	); err != nil {
		return err
	}

	r.logger.Info("text annotation deleted", "id", id, "example_id", exampleID)
	return nil
}

func (r *repo) ListRelations(ctx context.Context, projectID int64) ([]Relation, error) {
	query := `
		SELECT ` + relationColumns + `
		FROM public.annotation_relations r
		JOIN public.relation_types rt ON rt.id = r.type_id
		WHERE r.project_id = $1
		ORDER BY r.id`

	return repository.QueryMany(ctx, r.db, query, []any{projectID}, scanRelation)
}

func (r *repo) CreateRelation(ctx context.Context, projectID int64, cmd CreateRelationCommand) (*Relation, error) {
	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		query := `
			INSERT INTO public.annotation_relations(project_id, from_span_id, to_span_id, type_id, user_name)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`

		var id int64
		err := tx.QueryRowContext(
			ctx, query,
			projectID, cmd.FromSpanID, cmd.ToSpanID, cmd.TypeID, cmd.UserName,
		).Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("relation created", "id", id, "project_id", projectID, "user_name", cmd.UserName)
	return r.findRelation(ctx, id)
}

func (r *repo) DeleteRelation(ctx context.Context, projectID, id int64) error {
	if err := r.deleteScoped(
		ctx,
		"DELETE FROM public.annotation_relations WHERE id = $1 AND project_id = $2",
		id, projectID,
	); err != nil {
		return err
	}

	r.logger.Info("relation deleted", "id", id, "project_id", projectID)
	return nil
}

func (r *repo) Counts(ctx context.Context, projectID int64) (*Counts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM public.categories c
			 JOIN public.examples e ON e.id = c.example_id
			 WHERE e.project_id = $1),
			(SELECT COUNT(*) FROM public.spans s
			 JOIN public.examples e ON e.id = s.example_id
			 WHERE e.project_id = $1),
			(SELECT COUNT(*) FROM public.text_annotations t
			 JOIN public.examples e ON e.id = t.example_id
			 WHERE e.project_id = $1),
			(SELECT COUNT(*) FROM public.annotation_relations r
			 WHERE r.project_id = $1)`

	var c Counts
	err := r.db.QueryRowContext(ctx, query, projectID).Scan(
		&c.Categories,
		&c.Spans,
		&c.Texts,
		&c.Relations,
	)
	if err != nil {
		return nil, fmt.Errorf("count annotations: %w", err)
	}

	return &c, nil
}

func (r *repo) findCategory(ctx context.Context, id int64) (*Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM public.categories c
		JOIN public.label_types lt ON lt.id = c.label_id
		WHERE c.id = $1`

	c, err := repository.QueryOne(ctx, r.db, query, []any{id}, scanCategory)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) findRelation(ctx context.Context, id int64) (*Relation, error) {
	query := `
		SELECT ` + relationColumns + `
		FROM public.annotation_relations r
		JOIN public.relation_types rt ON rt.id = r.type_id
		WHERE r.id = $1`

	rel, err := repository.QueryOne(ctx, r.db, query, []any{id}, scanRelation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rel, nil
}

func (r *repo) deleteScoped(ctx context.Context, query string, id, scope int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(ctx, tx, query, id, scope); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}
