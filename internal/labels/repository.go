package labels

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/annexlabs/annex/pkg/repository"
)

const (
	defaultBackgroundColor = "#209cee"
	defaultTextColor       = "#ffffff"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a label catalog repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "labels"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListLabelTypes(ctx context.Context, projectID int64) ([]LabelType, error) {
	query := `
		SELECT id, project_id, text, background_color, text_color
		FROM public.label_types
		WHERE project_id = $1
		ORDER BY text
	`

	return repository.QueryMany(ctx, r.db, query, []any{projectID}, scanLabelType)
}

func (r *repo) FindLabelType(ctx context.Context, projectID, id int64) (*LabelType, error) {
	query := `
		SELECT id, project_id, text, background_color, text_color
		FROM public.label_types
		WHERE id = $1
		  AND project_id = $2
	`

	lt, err := repository.QueryOne(ctx, r.db, query, []any{id, projectID}, scanLabelType)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &lt, nil
}

func (r *repo) CreateLabelType(ctx context.Context, projectID int64, cmd CreateLabelTypeCommand) (*LabelType, error) {
	if cmd.BackgroundColor == "" {
		cmd.BackgroundColor = defaultBackgroundColor
	}

	if cmd.TextColor == "" {
		cmd.TextColor = defaultTextColor
	}

	lt, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (LabelType, error) {
		query := `
			INSERT INTO public.label_types (project_id, text, background_color, text_color)
			VALUES ($1, $2, $3, $4)
			RETURNING id, project_id, text, background_color, text_color
		`

		created, err := repository.QueryOne(ctx, tx, query, []any{
			projectID,
			cmd.Text,
			cmd.BackgroundColor,
			cmd.TextColor,
		}, scanLabelType)
		if err != nil {
			return LabelType{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		return created, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("label type created", "id", lt.ID, "project_id", projectID, "text", lt.Text)
	return &lt, nil
}

func (r *repo) UpdateLabelType(ctx context.Context, projectID, id int64, cmd UpdateLabelTypeCommand) (*LabelType, error) {
	lt, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (LabelType, error) {
		query := `
			UPDATE public.label_types
			SET text = $1,
			    background_color = $2,
			    text_color = $3
			WHERE id = $4
			  AND project_id = $5
			RETURNING id, project_id, text, background_color, text_color
		`

		updated, err := repository.QueryOne(ctx, tx, query, []any{
			cmd.Text,
			cmd.BackgroundColor,
			cmd.TextColor,
			id,
			projectID,
		}, scanLabelType)
		if err != nil {
			return LabelType{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		return updated, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("label type updated", "id", lt.ID, "project_id", projectID)
	return &lt, nil
}

func (r *repo) DeleteLabelType(ctx context.Context, projectID, id int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		query := `
			DELETE FROM public.label_types
			WHERE id = $1
			  AND project_id = $2
		`

		if err := repository.ExecExpectOne(ctx, tx, query, id, projectID); err != nil {
			return 0, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		return id, nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("label type deleted", "id", id, "project_id", projectID)
	return nil
}

func (r *repo) ListRelationTypes(ctx context.Context, projectID int64) ([]RelationType, error) {
	query := `
		SELECT id, project_id, name
		FROM public.relation_types
		WHERE project_id = $1
		ORDER BY name
	`

	return repository.QueryMany(ctx, r.db, query, []any{projectID}, scanRelationType)
}

func (r *repo) CreateRelationType(ctx context.Context, projectID int64, cmd CreateRelationTypeCommand) (*RelationType, error) {
	rt, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (RelationType, error) {
		query := `
			INSERT INTO public.relation_types (project_id, name)
			VALUES ($1, $2)
			RETURNING id, project_id, name
		`

		created, err := repository.QueryOne(ctx, tx, query, []any{projectID, cmd.Name}, scanRelationType)
		if err != nil {
			return RelationType{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		return created, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("relation type created", "id", rt.ID, "project_id", projectID, "name", rt.Name)
	return &rt, nil
}

func (r *repo) DeleteRelationType(ctx context.Context, projectID, id int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		query := `
			DELETE FROM public.relation_types
			WHERE id = $1
			  AND project_id = $2
		`

		if err := repository.ExecExpectOne(ctx, tx, query, id, projectID); err != nil {
			return 0, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		return id, nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("relation type deleted", "id", id, "project_id", projectID)
	return nil
}
