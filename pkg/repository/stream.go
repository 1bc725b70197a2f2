package repository

import (
	"context"
	"iter"
)

// QueryStream runs a query and yields each scanned row lazily, without
// collecting the result set. The sequence owns the rows handle and releases
// it when iteration ends, whether by exhaustion, error, or an early break.
// A query, scan, or iteration error is yielded once with a zero value and
// terminates the sequence.
func QueryStream[T any](ctx context.Context, q Querier, query string, args []any, scan ScanFunc[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			yield(zero, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(item, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(zero, err)
		}
	}
}
