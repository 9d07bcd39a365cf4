package graph

import (
	"context"

	"github.com/kbukum/compgraph/cgerrors"
	"github.com/kbukum/compgraph/extsort"
	"github.com/kbukum/compgraph/ops"
	"github.com/kbukum/compgraph/row"
)

type materializeFunc func(ctx context.Context, sources map[string]Source) (ops.RowIterator, error)

// Graph is an immutable node in a computational graph. Every builder method
// (Map, Filter, Reduce, Sort, Join) returns a new Graph wrapping the
// receiver; the receiver itself is never mutated, so the same Graph value
// can be reused as the parent of several different continuations, or as
// the "other side" of more than one Join.
type Graph struct {
	materialize materializeFunc
}

// FromIter constructs a Graph that reads from the Source registered under
// name when Run is called.
func FromIter(name string) *Graph {
	return &Graph{materialize: func(ctx context.Context, sources map[string]Source) (ops.RowIterator, error) {
		src, ok := sources[name]
		if !ok {
			return nil, cgerrors.SourceMissing(name)
		}
		return src(ctx)
	}}
}

// FromFile constructs a Graph that reads path one line at a time through
// parser when Run is called, matching the reference implementation's
// graph_from_file(filename, parser). A nil parser defaults to
// rowio.ParseJSONLine. The file is opened fresh on every Run.
func FromFile(path string, parser Parser) *Graph {
	return &Graph{materialize: func(_ context.Context, _ map[string]Source) (ops.RowIterator, error) {
		return openFileSource(path, parser)
	}}
}

// Map extends the graph with a Map operation.
func (g *Graph) Map(mapper ops.Mapper) *Graph {
	prev := g.materialize
	return &Graph{materialize: func(ctx context.Context, sources map[string]Source) (ops.RowIterator, error) {
		in, err := prev(ctx, sources)
		if err != nil {
			return nil, err
		}
		return ops.Map(in, mapper), nil
	}}
}

// Filter extends the graph with a Filter operation keeping rows for which
// keep returns true.
func (g *Graph) Filter(keep func(row.Row) (bool, error)) *Graph {
	prev := g.materialize
	return &Graph{materialize: func(ctx context.Context, sources map[string]Source) (ops.RowIterator, error) {
		in, err := prev(ctx, sources)
		if err != nil {
			return nil, err
		}
		return ops.Filter(in, keep), nil
	}}
}

// Reduce extends the graph with a Reduce operation grouping consecutive
// rows by keys. The graph up to this point MUST already be sorted by keys
// (typically via a preceding Sort) — Reduce groups adjacent runs, it does
// not sort.
func (g *Graph) Reduce(reducer ops.Reducer, keys []string) *Graph {
	prev := g.materialize
	return &Graph{materialize: func(ctx context.Context, sources map[string]Source) (ops.RowIterator, error) {
		in, err := prev(ctx, sources)
		if err != nil {
			return nil, err
		}
		return ops.Reduce(in, keys, reducer), nil
	}}
}

// Sort extends the graph with an external sort by keys. Unlike every other
// builder, the resulting stage is not lazy: it fully drains its input as
// soon as Run reaches it, since a correct sort cannot emit a single row
// before it has seen enough input to know that row is really first.
func (g *Graph) Sort(keys []string, opts extsort.Options) *Graph {
	prev := g.materialize
	return &Graph{materialize: func(ctx context.Context, sources map[string]Source) (ops.RowIterator, error) {
		in, err := prev(ctx, sources)
		if err != nil {
			return nil, err
		}
		return extsort.Sort(ctx, in, keys, opts)
	}}
}

// Join extends the graph with a sort-merge join against other, another
// Graph entirely. Both sides must already be sorted by keys. other is
// re-materialized from scratch on every Run — joins are not memoized
// across runs, matching the reference implementation.
func (g *Graph) Join(joiner ops.Joiner, other *Graph, keys []string) *Graph {
	prev := g.materialize
	otherMaterialize := other.materialize
	return &Graph{materialize: func(ctx context.Context, sources map[string]Source) (ops.RowIterator, error) {
		left, err := prev(ctx, sources)
		if err != nil {
			return nil, err
		}
		right, err := otherMaterialize(ctx, sources)
		if err != nil {
			_ = left.Close()
			return nil, err
		}
		return ops.Join(left, right, keys, joiner), nil
	}}
}

// Run materializes the graph against sources and returns the resulting row
// stream. Map, Filter, Reduce and Join stages read no row until the caller
// starts pulling from the returned iterator; a Sort stage is the exception
// and drains its whole input during Run itself (see Sort).
func (g *Graph) Run(ctx context.Context, sources map[string]Source) (ops.RowIterator, error) {
	return g.materialize(ctx, sources)
}
