package export

import (
	"context"
	"iter"
)

// System defines the public contract for export operations.
type System interface {
	Handler() *Handler

	// List yields the project's export records lazily, one per (example,
	// annotator) pair, with examples in ascending id order and annotators in
	// first-annotation order. approvedOnly restricts the stream to examples
	// with at least one recorded approval. The first error terminates the
	// sequence; every record yielded before it is valid.
	List(ctx context.Context, projectID int64, approvedOnly bool) iter.Seq2[Record, error]
}
