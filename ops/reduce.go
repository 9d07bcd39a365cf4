package ops

import (
	"context"

	"github.com/kbukum/compgraph/pipeline"
	"github.com/kbukum/compgraph/row"
)

// Reduce groups consecutive rows of source sharing the same value for keys
// and calls reducer once per group. source MUST already be sorted by keys
// (typically via Sort) — Reduce does not sort, it only groups adjacent
// rows, mirroring itertools.groupby's semantics of grouping runs rather
// than scanning the whole stream for a key.
func Reduce(source RowIterator, keys []string, reducer Reducer) RowIterator {
	return &reduceOp{grouper: newGrouper(source, keys), reducer: reducer}
}

type reduceOp struct {
	grouper *grouper
	reducer Reducer
	current RowIterator
}

func (op *reduceOp) Next(ctx context.Context) (row.Row, bool, error) {
	for {
		if op.current != nil {
			r, ok, err := op.current.Next(ctx)
			if err != nil {
				return nil, false, reducerError(err)
			}
			if ok {
				return r, true, nil
			}
			_ = op.current.Close()
			op.current = nil
		}

		group, _, ok, err := op.grouper.next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		op.current = op.reducer.Reduce(op.grouper.keys, pipeline.FromSlice(group))
	}
}

func (op *reduceOp) Close() error {
	if op.current != nil {
		_ = op.current.Close()
	}
	return op.grouper.close()
}
