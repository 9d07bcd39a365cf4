package pipeline

import "context"

// Map transforms each value using fn, preserving order and laziness.
func Map[I, O any](source Iterator[I], fn func(I) (O, error)) Iterator[O] {
	return &mapIter[I, O]{source: source, fn: fn}
}

// FlatMap transforms each value into an Iterator and flattens the results,
// the same shape used to splice one row's expansion into the parent stream
// (e.g. Split emitting several rows per input row).
func FlatMap[I, O any](source Iterator[I], fn func(I) (Iterator[O], error)) Iterator[O] {
	return &flatMapIter[I, O]{source: source, fn: fn}
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](source Iterator[T], fn func(T) bool) Iterator[T] {
	return &filterIter[T]{source: source, fn: fn}
}

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(I) (O, error)
}

func (it *mapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	out, err := it.fn(val)
	if err != nil {
		var zero O
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type flatMapIter[I, O any] struct {
	source  Iterator[I]
	fn      func(I) (Iterator[O], error)
	current Iterator[O]
}

func (it *flatMapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	for {
		if it.current != nil {
			val, ok, err := it.current.Next(ctx)
			if err != nil {
				var zero O
				return zero, false, err
			}
			if ok {
				return val, true, nil
			}
			_ = it.current.Close()
			it.current = nil
		}
		in, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			var zero O
			return zero, false, err
		}
		inner, err := it.fn(in)
		if err != nil {
			var zero O
			return zero, false, err
		}
		it.current = inner
	}
}

func (it *flatMapIter[I, O]) Close() error {
	if it.current != nil {
		_ = it.current.Close()
	}
	return it.source.Close()
}

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(T) bool
}

func (it *filterIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		if it.fn(val) {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }
