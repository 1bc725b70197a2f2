package examples

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/annexlabs/annex/pkg/pagination"
	"github.com/annexlabs/annex/pkg/query"
	"github.com/annexlabs/annex/pkg/repository"
	"github.com/annexlabs/annex/pkg/storage"
)

// batchUploadConcurrency bounds parallel blob uploads during batch imports.
const batchUploadConcurrency = 4

const exampleColumns = "id, project_id, text, filename, upload_key, content_type, size_bytes, page_count, meta, created_at"

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an example repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "examples"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	projectID int64,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Example], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("ProjectID", projectID).
		WhereSearch(page.Search, "Text", "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count examples: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanExample)
	if err != nil {
		return nil, fmt.Errorf("query examples: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, projectID, id int64) (*Example, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("ID", id).
		WhereEquals("ProjectID", projectID).
		BuildSingleOrNull()

	ex, err := repository.QueryOne(ctx, r.db, q, args, scanExample)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &ex, nil
}

func (r *repo) Create(ctx context.Context, projectID int64, cmd CreateCommand) (*Example, error) {
	meta, err := encodeMeta(cmd.Meta)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO public.examples(project_id, text, meta)
		VALUES ($1, $2, $3)
		RETURNING %s`, exampleColumns)

	ex, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Example, error) {
		return repository.QueryOne(ctx, tx, q, []any{projectID, cmd.Text, meta}, scanExample)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("example created", "id", ex.ID, "project_id", projectID)
	return &ex, nil
}

func (r *repo) Upload(ctx context.Context, projectID int64, cmd UploadCommand) (*Example, error) {
	meta, err := encodeMeta(cmd.Meta)
	if err != nil {
		return nil, err
	}

	key := buildStorageKey(projectID, uuid.New(), sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload example blob: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO public.examples(project_id, filename, upload_key, content_type, size_bytes, page_count, meta)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, exampleColumns)

	insertArgs := []any{
		projectID,
		cmd.Filename,
		key,
		cmd.ContentType,
		int64(len(cmd.Data)),
		cmd.PageCount,
		meta,
	}

	ex, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Example, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanExample)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("example uploaded", "id", ex.ID, "project_id", projectID, "filename", ex.Filename)
	return &ex, nil
}

// UploadBatch uploads the given files concurrently, each as its own example.
// The batch aborts on the first failure; examples already committed remain.
func (r *repo) UploadBatch(ctx context.Context, projectID int64, cmds []UploadCommand) ([]Example, error) {
	results := make([]Example, len(cmds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchUploadConcurrency)

	for i, cmd := range cmds {
		g.Go(func() error {
			ex, err := r.Upload(ctx, projectID, cmd)
			if err != nil {
				return fmt.Errorf("upload %s: %w", cmd.Filename, err)
			}
			results[i] = *ex
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *repo) Delete(ctx context.Context, projectID, id int64) error {
	ex, err := r.Find(ctx, projectID, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM public.examples WHERE id = $1 AND project_id = $2",
			id, projectID,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if ex.UploadKey != nil {
		if delErr := r.storage.Delete(ctx, *ex.UploadKey); delErr != nil {
			r.logger.Warn(
				"blob delete failed after DB delete",
				"key", *ex.UploadKey,
				"error", delErr,
			)
		}
	}

	r.logger.Info("example deleted", "id", id, "project_id", projectID)
	return nil
}

func (r *repo) Approve(ctx context.Context, projectID, exampleID int64, userName string) (*Approval, error) {
	if _, err := r.Find(ctx, projectID, exampleID); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO public.example_approvals(example_id, user_name)
		VALUES ($1, $2)
		RETURNING id, example_id, user_name, created_at`

	approval, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Approval, error) {
		return repository.QueryOne(ctx, tx, q, []any{exampleID, userName}, scanApproval)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("example approved", "example_id", exampleID, "user_name", userName)
	return &approval, nil
}

func (r *repo) RevokeApproval(ctx context.Context, projectID, exampleID int64, userName string) error {
	if _, err := r.Find(ctx, projectID, exampleID); err != nil {
		return err
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM public.example_approvals WHERE example_id = $1 AND user_name = $2",
			exampleID, userName,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("example approval revoked", "example_id", exampleID, "user_name", userName)
	return nil
}

func (r *repo) ListApprovals(ctx context.Context, projectID, exampleID int64) ([]Approval, error) {
	q := `
		SELECT a.id, a.example_id, a.user_name, a.created_at
		FROM public.example_approvals a
		JOIN public.examples e ON e.id = a.example_id
		WHERE a.example_id = $1
		  AND e.project_id = $2
		ORDER BY a.id`

	return repository.QueryMany(ctx, r.db, q, []any{exampleID, projectID}, scanApproval)
}

func (r *repo) Progress(ctx context.Context, projectID int64) (*Progress, error) {
	q := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE EXISTS (` + approvedSubquery + `))
		FROM public.examples e
		WHERE e.project_id = $1`

	var p Progress
	if err := r.db.QueryRowContext(ctx, q, projectID).Scan(&p.Total, &p.Approved); err != nil {
		return nil, fmt.Errorf("count example progress: %w", err)
	}
	p.Remaining = p.Total - p.Approved

	return &p, nil
}

func (r *repo) Media(ctx context.Context, projectID, id int64) (*Media, error) {
	ex, err := r.Find(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	if ex.UploadKey == nil {
		return nil, ErrNoMedia
	}

	res, err := r.storage.Download(ctx, *ex.UploadKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoMedia
		}
		return nil, fmt.Errorf("download example blob: %w", err)
	}

	return &Media{
		Filename:    downloadName(ex.Filename, ex.ID),
		ContentType: res.ContentType,
		Size:        res.ContentLength,
		Body:        res.Body,
	}, nil
}

func (r *repo) Stream(ctx context.Context, projectID int64, approvedOnly bool) iter.Seq2[Example, error] {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("ProjectID", projectID)

	if approvedOnly {
		qb.WhereExists(approvedSubquery)
	}

	stmt, args := qb.Build()
	return repository.QueryStream(ctx, r.db, stmt, args, scanExample)
}

func encodeMeta(meta map[string]any) ([]byte, error) {
	if meta == nil {
		meta = map[string]any{}
	}
	encoded, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode example meta: %w", err)
	}
	return encoded, nil
}

func buildStorageKey(projectID int64, id uuid.UUID, filename string) string {
	return fmt.Sprintf("projects/%d/examples/%s/%s", projectID, id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "example"
	}
	return url.PathEscape(name)
}

func downloadName(filename string, id int64) string {
	name := path.Base(filename)
	if name == "." || name == "/" || name == "" {
		return fmt.Sprintf("example-%d", id)
	}
	return name
}
