package ops

import (
	"context"

	"github.com/kbukum/compgraph/pipeline"
	"github.com/kbukum/compgraph/row"
)

// Map applies mapper to every row of source, flattening each row's
// (possibly empty, possibly multi-row) result back into a single stream.
func Map(source RowIterator, mapper Mapper) RowIterator {
	return pipeline.FlatMap(source, func(r row.Row) (RowIterator, error) {
		out, err := mapper.Map(r)
		if err != nil {
			return nil, mapperError(err)
		}
		return pipeline.FromSlice(out), nil
	})
}

// Filter keeps rows for which keep returns true; it is a Mapper degenerate
// case kept as a dedicated operator since predicate filtering is common
// enough to not want an allocation-per-row slice result.
func Filter(source RowIterator, keep func(row.Row) (bool, error)) RowIterator {
	return &filterOp{source: source, keep: keep}
}

type filterOp struct {
	source RowIterator
	keep   func(row.Row) (bool, error)
}

func (f *filterOp) Next(ctx context.Context) (row.Row, bool, error) {
	for {
		r, ok, err := f.source.Next(ctx)
		if err != nil || !ok {
			return r, false, err
		}
		matched, err := f.keep(r)
		if err != nil {
			return nil, false, mapperError(err)
		}
		if matched {
			return r, true, nil
		}
	}
}

func (f *filterOp) Close() error { return f.source.Close() }
