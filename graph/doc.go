// Package graph assembles operators into a computational graph: an
// immutable, lazily-materialized description of a row-processing pipeline
// that is only actually run when Run is called. A Graph built by chaining
// Map/Reduce/Sort/Join is cheap to construct and safe to share — nothing
// reads a row before Run is called, and apart from Sort stages, which drain
// their input inside Run, nothing reads until the caller pulls from the
// resulting iterator.
//
// Mirrors compgraph.Graph from the Python reference implementation:
// Source nodes read from named inputs or files, and every other node
// wraps its parent(s) with one ops operator. Join nodes hold a reference
// to a second Graph (the "other side") that is independently re-run on
// every Run call, matching the reference implementation's lack of
// memoization across runs.
package graph
