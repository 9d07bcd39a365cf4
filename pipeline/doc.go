// Package pipeline provides the single-threaded, pull-based Iterator
// primitive every stream in this module is built on.
//
// Iterators are lazy — no work happens until a value is pulled via Next.
// Each stage pulls from its source on demand, which is what lets a graph
// operator suspend after every row without any goroutines or channels.
//
// # Operators
//
//   - Map: transform each value
//   - FlatMap: transform each value into zero or more values
//   - Filter: keep values matching a predicate
//
// There is deliberately no Buffer, Parallel, or Merge here: the engine this
// package backs runs one operator at a time, pulled by the terminal
// consumer, so concurrent fan-out has no home in this package.
//
// # Usage
//
//	src := pipeline.FromSlice([]int{1, 2, 3, 4, 5})
//	doubled := pipeline.Map(src, func(n int) (int, error) { return n * 2, nil })
//	evens := pipeline.Filter(doubled, func(n int) bool { return n%2 == 0 })
//	results, _ := pipeline.Collect(ctx, evens)
package pipeline
