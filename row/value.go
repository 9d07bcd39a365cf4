// Package row defines the untyped record model the engine streams: Row, a
// column-keyed mapping, and Value, the closed tagged union of types a
// column may hold.
package row

import (
	"fmt"
	"math"
)

// Kind tags the concrete type held by a Value. The set is closed and small
// on purpose — extending it is a single edit point (one constant, one
// constructor, one accessor, one branch in Compare/Equal).
type Kind uint8

const (
	// KindNull marks an absent/None value. The zero Value is KindNull.
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindFloatList
)

// String returns a human-readable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindFloatList:
		return "float_list"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the row's value domain: 64-bit signed
// integer, 64-bit float, UTF-8 string, an ordered list of floats (used for
// [lon, lat] coordinate pairs), or null. It is immutable once constructed.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	fl   []float64
}

// Null returns the null Value. It is also the zero value of Value.
func Null() Value { return Value{} }

// Int constructs an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float constructs a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// FloatList constructs a Value holding an ordered list of floats. The slice
// is copied so later mutation by the caller cannot violate row immutability.
func FloatList(fl []float64) Value {
	cp := make([]float64, len(fl))
	copy(cp, fl)
	return Value{kind: KindFloatList, fl: cp}
}

// Kind returns the tag of this value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt returns the integer held by v and true, or (0, false) if v is not
// KindInt.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the float held by v and true, or (0, false) if v is not
// KindFloat.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// AsString returns the string held by v and true, or ("", false) if v is
// not KindString.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsFloatList returns the float list held by v and true, or (nil, false) if
// v is not KindFloatList. The returned slice must not be mutated.
func (v Value) AsFloatList() ([]float64, bool) {
	if v.kind != KindFloatList {
		return nil, false
	}
	return v.fl, true
}

// Number extracts a numeric value from v regardless of whether it is
// KindInt or KindFloat, for arithmetic mappers/reducers (Product, Sum,
// CalculateSpeed, …) that accept either. It does not participate in
// ordering: Compare still treats int and float as distinct kinds.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Equal reports whether v and other hold the same kind and value.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f || (math.IsNaN(v.f) && math.IsNaN(other.f))
	case KindString:
		return v.s == other.s
	case KindFloatList:
		if len(v.fl) != len(other.fl) {
			return false
		}
		for i := range v.fl {
			if v.fl[i] != other.fl[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders v against other. Both must share the same Kind; comparing
// across kinds returns a TypeMismatch-flavored error rather than a
// meaningless ordering, per the engine's key-projection contract. Null and
// FloatList values are not ordered and also return an error.
func (v Value) Compare(other Value) (int, error) {
	if v.kind != other.kind {
		return 0, fmt.Errorf("row: cannot compare %s with %s", v.kind, other.kind)
	}
	switch v.kind {
	case KindInt:
		switch {
		case v.i < other.i:
			return -1, nil
		case v.i > other.i:
			return 1, nil
		default:
			return 0, nil
		}
	case KindFloat:
		switch {
		case v.f < other.f:
			return -1, nil
		case v.f > other.f:
			return 1, nil
		default:
			return 0, nil
		}
	case KindString:
		switch {
		case v.s < other.s:
			return -1, nil
		case v.s > other.s:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, fmt.Errorf("row: values of kind %s are not ordered", v.kind)
	}
}

// String renders v for logging and diagnostics; it is not a serialization
// format.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "<null>"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return v.s
	case KindFloatList:
		return fmt.Sprintf("%v", v.fl)
	default:
		return "<unknown>"
	}
}
