package row

import "fmt"

// Row is a single record flowing through the graph: an immutable mapping
// from column name to Value. Operators never mutate a Row in place — Map
// and Reduce build a fresh Row for each output record, and With returns a
// copy rather than modifying the receiver.
type Row map[string]Value

// New constructs a Row from the given columns.
func New(columns map[string]Value) Row {
	r := make(Row, len(columns))
	for k, v := range columns {
		r[k] = v
	}
	return r
}

// Get returns the value stored at column and whether it was present. A
// missing column is distinct from one holding Null.
func (r Row) Get(column string) (Value, bool) {
	v, ok := r[column]
	return v, ok
}

// MustGet returns the value at column, or an error carrying enough context
// for the caller to wrap as a KeyMissing graph error.
func (r Row) MustGet(column string) (Value, error) {
	v, ok := r[column]
	if !ok {
		return Value{}, fmt.Errorf("row: column %q not found", column)
	}
	return v, nil
}

// Clone returns a shallow copy of r. Values are themselves immutable, so a
// shallow copy is sufficient to let a caller build a derived Row without
// aliasing the original's backing map.
func (r Row) Clone() Row {
	cp := make(Row, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// With returns a copy of r with column set to value, leaving r unmodified.
func (r Row) With(column string, value Value) Row {
	cp := r.Clone()
	cp[column] = value
	return cp
}

// WithColumns returns a copy of r with every column in cols set to its
// corresponding value, leaving r unmodified.
func (r Row) WithColumns(cols map[string]Value) Row {
	cp := r.Clone()
	for k, v := range cols {
		cp[k] = v
	}
	return cp
}

// Without returns a copy of r with the named columns removed.
func (r Row) Without(columns ...string) Row {
	cp := r.Clone()
	for _, c := range columns {
		delete(cp, c)
	}
	return cp
}

// Project returns a new Row containing only the named columns. A column
// absent from r is simply absent from the result, matching the engine's
// convention that missing is distinct from null.
func (r Row) Project(columns ...string) Row {
	cp := make(Row, len(columns))
	for _, c := range columns {
		if v, ok := r[c]; ok {
			cp[c] = v
		}
	}
	return cp
}

// Key projects r onto the ordered list of columns used as a sort/group key.
// The result is a comparable-by-value slice suitable for Compare/Equal,
// independent of any other columns the row carries.
type Key []Value

// KeyOf extracts the Key for r over the given ordered columns. It returns
// an error if any column is missing — callers (Sort, Reduce, Join) require
// every row to carry its key columns.
func KeyOf(r Row, columns []string) (Key, error) {
	key := make(Key, len(columns))
	for i, c := range columns {
		v, ok := r[c]
		if !ok {
			return nil, fmt.Errorf("row: key column %q not found", c)
		}
		key[i] = v
	}
	return key, nil
}

// Equal reports whether k and other hold pairwise-equal values.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if !k[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Compare orders k against other column by column, returning at the first
// differing column. Both keys must have the same arity and pairwise-matching
// kinds per column; a kind mismatch surfaces as an error from the
// underlying Value.Compare call.
func (k Key) Compare(other Key) (int, error) {
	if len(k) != len(other) {
		return 0, fmt.Errorf("row: cannot compare keys of differing arity (%d vs %d)", len(k), len(other))
	}
	for i := range k {
		c, err := k[i].Compare(other[i])
		if err != nil {
			return 0, fmt.Errorf("row: key column %d: %w", i, err)
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}
