package examples

import (
	"context"
	"iter"

	"github.com/annexlabs/annex/pkg/pagination"
)

// System defines the public contract for example operations. All operations
// are scoped to a single project.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(ctx context.Context, projectID int64, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Example], error)
	Find(ctx context.Context, projectID, id int64) (*Example, error)
	Create(ctx context.Context, projectID int64, cmd CreateCommand) (*Example, error)
	Upload(ctx context.Context, projectID int64, cmd UploadCommand) (*Example, error)
	UploadBatch(ctx context.Context, projectID int64, cmds []UploadCommand) ([]Example, error)
	Delete(ctx context.Context, projectID, id int64) error

	Approve(ctx context.Context, projectID, exampleID int64, userName string) (*Approval, error)
	RevokeApproval(ctx context.Context, projectID, exampleID int64, userName string) error
	ListApprovals(ctx context.Context, projectID, exampleID int64) ([]Approval, error)
	Progress(ctx context.Context, projectID int64) (*Progress, error)

	Media(ctx context.Context, projectID, id int64) (*Media, error)

	// Stream yields the project's examples in ascending id order, optionally
	// restricted to examples with at least one recorded approval. The
	// sequence holds a database cursor until iteration ends.
	Stream(ctx context.Context, projectID int64, approvedOnly bool) iter.Seq2[Example, error]
}
