package builtins

import "github.com/kbukum/compgraph/row"

const (
	defaultSuffixLeft  = "_1"
	defaultSuffixRight = "_2"
)

// generalJoin pairs every row of left with every row of right, the same
// cross-product-within-a-key-group shape as operations.py's general_join.
// A column present on both sides (and not itself a join key) is split into
// <column><suffixLeft> from left and <column><suffixRight> from right
// rather than one side silently clobbering the other. Join-key columns
// appear once, with the left row's value.
func generalJoin(keys []string, left, right []row.Row, suffixLeft, suffixRight string) ([]row.Row, error) {
	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}

	// Column sets are assumed uniform within a join group (every row on a
	// side comes from the same upstream schema), so which non-key columns
	// collide between the sides is computed once from the first row of
	// each, the same way operations.py's general_join computes it once
	// from the first (row_a, row_b) pair it sees.
	common := make(map[string]bool)
	if len(left) > 0 && len(right) > 0 {
		for col := range left[0] {
			if keySet[col] {
				continue
			}
			if _, ok := right[0][col]; ok {
				common[col] = true
			}
		}
	}

	out := make([]row.Row, 0, len(left)*len(right))
	for _, a := range left {
		for _, b := range right {
			merged := make(row.Row, len(a)+len(b))
			for col, v := range a {
				if common[col] {
					merged[col+suffixLeft] = v
				} else {
					merged[col] = v
				}
			}
			for col, v := range b {
				if common[col] {
					merged[col+suffixRight] = v
				} else if _, fromLeft := a[col]; keySet[col] && fromLeft {
					continue
				} else {
					merged[col] = v
				}
			}
			out = append(out, merged)
		}
	}
	return out, nil
}

func suffixesOrDefault(suffixLeft, suffixRight string) (string, string) {
	if suffixLeft == "" {
		suffixLeft = defaultSuffixLeft
	}
	if suffixRight == "" {
		suffixRight = defaultSuffixRight
	}
	return suffixLeft, suffixRight
}

// InnerJoiner drops any key present on only one side.
type InnerJoiner struct {
	SuffixLeft, SuffixRight string
}

func (j InnerJoiner) Join(keys []string, left, right []row.Row) ([]row.Row, error) {
	if left == nil || right == nil {
		return nil, nil
	}
	sl, sr := suffixesOrDefault(j.SuffixLeft, j.SuffixRight)
	return generalJoin(keys, left, right, sl, sr)
}

// OuterJoiner passes through whichever side is unmatched for a given key,
// and cross-joins keys present on both sides.
type OuterJoiner struct {
	SuffixLeft, SuffixRight string
}

func (j OuterJoiner) Join(keys []string, left, right []row.Row) ([]row.Row, error) {
	if left == nil {
		return right, nil
	}
	if right == nil {
		return left, nil
	}
	sl, sr := suffixesOrDefault(j.SuffixLeft, j.SuffixRight)
	return generalJoin(keys, left, right, sl, sr)
}

// LeftJoiner keeps every left row, passing it through unmatched when a key
// has no right-side rows, and drops keys present only on the right.
type LeftJoiner struct {
	SuffixLeft, SuffixRight string
}

func (j LeftJoiner) Join(keys []string, left, right []row.Row) ([]row.Row, error) {
	if right == nil {
		return left, nil
	}
	if left == nil {
		return nil, nil
	}
	sl, sr := suffixesOrDefault(j.SuffixLeft, j.SuffixRight)
	return generalJoin(keys, left, right, sl, sr)
}

// RightJoiner keeps every right row, passing it through unmatched when a
// key has no left-side rows, and drops keys present only on the left.
type RightJoiner struct {
	SuffixLeft, SuffixRight string
}

func (j RightJoiner) Join(keys []string, left, right []row.Row) ([]row.Row, error) {
	if left == nil {
		return right, nil
	}
	if right == nil {
		return nil, nil
	}
	sl, sr := suffixesOrDefault(j.SuffixLeft, j.SuffixRight)
	return generalJoin(keys, left, right, sl, sr)
}
