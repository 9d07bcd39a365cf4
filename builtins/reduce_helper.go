package builtins

import (
	"context"

	"github.com/kbukum/compgraph/ops"
	"github.com/kbukum/compgraph/pipeline"
	"github.com/kbukum/compgraph/row"
)

// aggregate builds a RowIterator from a function that consumes an entire
// collected group at once. Every built-in Reducer below needs the whole
// group in hand (to read the first row's key columns, to sum/count/rank
// across it) rather than being able to fold it one row at a time, so this
// is the shared Reduce implementation they all sit on top of. Collection
// is deferred to the first Next call so a Reducer with no matching groups
// never touches its source at all.
func aggregate(rows ops.RowIterator, fn func(keys []string, group []row.Row) ([]row.Row, error), keys []string) ops.RowIterator {
	return &deferredIter{
		compute: func(ctx context.Context) ([]row.Row, error) {
			group, err := collectRows(ctx, rows)
			if err != nil {
				return nil, err
			}
			return fn(keys, group)
		},
	}
}

type deferredIter struct {
	compute func(ctx context.Context) ([]row.Row, error)
	inner   ops.RowIterator
	err     error
	started bool
}

func (d *deferredIter) Next(ctx context.Context) (row.Row, bool, error) {
	if !d.started {
		d.started = true
		rows, err := d.compute(ctx)
		if err != nil {
			d.err = err
		} else {
			d.inner = pipeline.FromSlice(rows)
		}
	}
	if d.err != nil {
		return nil, false, d.err
	}
	return d.inner.Next(ctx)
}

func (d *deferredIter) Close() error {
	if d.inner != nil {
		return d.inner.Close()
	}
	return nil
}
