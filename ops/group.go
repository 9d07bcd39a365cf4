package ops

import (
	"context"

	"github.com/kbukum/compgraph/cgerrors"
	"github.com/kbukum/compgraph/row"
)

// grouper pulls consecutive same-key runs out of a sorted RowIterator, one
// group per call to next. It is the shared lookahead machinery behind both
// Reduce and Join, which both need "give me the next run of rows sharing a
// key" but combine runs differently (fold vs. sort-merge pairing).
type grouper struct {
	source   RowIterator
	keys     []string
	pending  row.Row
	havePend bool
	done     bool
}

func newGrouper(source RowIterator, keys []string) *grouper {
	return &grouper{source: source, keys: keys}
}

// next returns the next group and its key, or (nil, nil, false, nil) once
// the source is exhausted.
func (g *grouper) next(ctx context.Context) ([]row.Row, row.Key, bool, error) {
	if g.done {
		return nil, nil, false, nil
	}

	var group []row.Row
	var groupKey row.Key

	if g.havePend {
		k, err := row.KeyOf(g.pending, g.keys)
		if err != nil {
			return nil, nil, false, cgerrors.KeyMissing(firstMissing(g.keys, g.pending))
		}
		group = append(group, g.pending)
		groupKey = k
		g.havePend = false
	}

	for {
		r, ok, err := g.source.Next(ctx)
		if err != nil {
			return nil, nil, false, err
		}
		if !ok {
			break
		}
		k, err := row.KeyOf(r, g.keys)
		if err != nil {
			return nil, nil, false, cgerrors.KeyMissing(firstMissing(g.keys, r))
		}
		if groupKey == nil {
			groupKey = k
			group = append(group, r)
			continue
		}
		if k.Equal(groupKey) {
			group = append(group, r)
			continue
		}
		if EnableOrderAssertions {
			if c, cmpErr := groupKey.Compare(k); cmpErr == nil && c > 0 {
				return nil, nil, false, cgerrors.TypeMismatch("input is not sorted by group keys")
			}
		}
		g.pending = r
		g.havePend = true
		return group, groupKey, true, nil
	}

	g.done = true
	if group == nil {
		return nil, nil, false, nil
	}
	return group, groupKey, true, nil
}

func (g *grouper) close() error { return g.source.Close() }

// firstMissing returns the first of keys that r lacks, or "" if r has all.
func firstMissing(keys []string, r row.Row) string {
	for _, k := range keys {
		if _, ok := r[k]; !ok {
			return k
		}
	}
	return ""
}
