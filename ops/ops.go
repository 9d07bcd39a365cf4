// Package ops defines the row operators a Graph is built from — Map,
// Filter, Reduce and Join — as lazy transformations over
// pipeline.Iterator[row.Row]; sorting lives in extsort and sources in
// graph. Each operator pulls its input one row at a time and emits output
// the same way. Reduce and Join require their input pre-sorted by the
// grouping keys and buffer one key group at a time (with an empty key
// list the whole input is one group).
package ops

import (
	"github.com/kbukum/compgraph/cgerrors"
	"github.com/kbukum/compgraph/pipeline"
	"github.com/kbukum/compgraph/row"
)

// RowIterator is the concrete stream type every operator consumes and
// produces.
type RowIterator = pipeline.Iterator[row.Row]

// Mapper transforms a single row into zero or more output rows. A Mapper
// that wants to drop a row returns no rows; one that wants to fan a row out
// (Split) returns several.
type Mapper interface {
	Map(r row.Row) ([]row.Row, error)
}

// MapperFunc adapts a plain function to the Mapper interface.
type MapperFunc func(r row.Row) ([]row.Row, error)

// Map calls f.
func (f MapperFunc) Map(r row.Row) ([]row.Row, error) { return f(r) }

// Reducer folds one group of rows sharing the same key into zero or more
// output rows. The engine calls it once per distinct key value found in
// the (pre-sorted) input; within a call, rows arrives as an iterator over
// the group, which the engine has already buffered in memory. Most
// built-in reducers collect it into a slice, since group sizes are
// expected to be small relative to the whole stream.
type Reducer interface {
	Reduce(keys []string, rows RowIterator) RowIterator
}

// Joiner combines the rows of a single key group from two streams. Either
// side's slice may be empty, representing an outer-join gap; a Joiner that
// wants an inner join simply emits nothing when one side is empty.
type Joiner interface {
	Join(keys []string, left, right []row.Row) ([]row.Row, error)
}

// EnableOrderAssertions, when true, makes Reduce and Join verify at each
// group boundary that the next key is not smaller than the previous one,
// and fail fast with a TypeMismatch-coded error instead of silently
// producing wrong groupings. ExternalSort's merge step does not consult
// it. It costs a key comparison per group, so it is off by default and
// the graph is expected to route through Sort before Reduce/Join.
var EnableOrderAssertions = false

func mapperError(err error) error {
	if err == nil {
		return nil
	}
	return cgerrors.MapperError(err)
}

func reducerError(err error) error {
	if err == nil {
		return nil
	}
	return cgerrors.ReducerError(err)
}

func joinerError(err error) error {
	if err == nil {
		return nil
	}
	return cgerrors.JoinerError(err)
}
