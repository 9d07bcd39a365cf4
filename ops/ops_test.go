package ops

import (
	"context"
	"testing"

	"github.com/kbukum/compgraph/pipeline"
	"github.com/kbukum/compgraph/row"
)

func rows(rs ...row.Row) RowIterator { return pipeline.FromSlice(rs) }

func collect(t *testing.T, it RowIterator) []row.Row {
	t.Helper()
	got, err := pipeline.Collect(context.Background(), it)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return got
}

func TestMap_FlattensAndTransforms(t *testing.T) {
	src := rows(
		row.New(map[string]row.Value{"n": row.Int(1)}),
		row.New(map[string]row.Value{"n": row.Int(2)}),
	)
	double := MapperFunc(func(r row.Row) ([]row.Row, error) {
		n, _ := r.Get("n")
		v, _ := n.AsInt()
		return []row.Row{r.With("n", row.Int(v * 2))}, nil
	})
	out := collect(t, Map(src, double))
	if len(out) != 2 {
		t.Fatalf("Map() produced %d rows, want 2", len(out))
	}
	v, _ := out[0].Get("n")
	if n, _ := v.AsInt(); n != 2 {
		t.Fatalf("Map()[0].n = %d, want 2", n)
	}
}

func TestFilter_DropsNonMatching(t *testing.T) {
	src := rows(
		row.New(map[string]row.Value{"n": row.Int(1)}),
		row.New(map[string]row.Value{"n": row.Int(2)}),
		row.New(map[string]row.Value{"n": row.Int(3)}),
	)
	out := collect(t, Filter(src, func(r row.Row) (bool, error) {
		v, _ := r.Get("n")
		n, _ := v.AsInt()
		return n%2 == 1, nil
	}))
	if len(out) != 2 {
		t.Fatalf("Filter() produced %d rows, want 2", len(out))
	}
}

type countReducer struct{}

func (countReducer) Reduce(keys []string, rs RowIterator) RowIterator {
	count := 0
	var key row.Row
	ctx := context.Background()
	for {
		r, ok, err := rs.Next(ctx)
		if err != nil || !ok {
			break
		}
		if key == nil {
			key = r.Project(keys...)
		}
		count++
	}
	if key == nil {
		return pipeline.FromSlice[row.Row](nil)
	}
	return pipeline.FromSlice([]row.Row{key.With("count", row.Int(int64(count)))})
}

func TestReduce_GroupsConsecutiveKeys(t *testing.T) {
	src := rows(
		row.New(map[string]row.Value{"g": row.String("a"), "v": row.Int(1)}),
		row.New(map[string]row.Value{"g": row.String("a"), "v": row.Int(2)}),
		row.New(map[string]row.Value{"g": row.String("b"), "v": row.Int(3)}),
	)
	out := collect(t, Reduce(src, []string{"g"}, countReducer{}))
	if len(out) != 2 {
		t.Fatalf("Reduce() produced %d groups, want 2", len(out))
	}
	v, _ := out[0].Get("count")
	if n, _ := v.AsInt(); n != 2 {
		t.Fatalf("Reduce()[0].count = %d, want 2", n)
	}
	v, _ = out[1].Get("count")
	if n, _ := v.AsInt(); n != 1 {
		t.Fatalf("Reduce()[1].count = %d, want 1", n)
	}
}

type innerJoiner struct{}

func (innerJoiner) Join(keys []string, left, right []row.Row) ([]row.Row, error) {
	if len(left) == 0 || len(right) == 0 {
		return nil, nil
	}
	var out []row.Row
	for _, l := range left {
		for _, r := range right {
			merged := l.Clone()
			for k, v := range r {
				merged[k] = v
			}
			out = append(out, merged)
		}
	}
	return out, nil
}

func TestJoin_InnerDropsUnmatchedKeys(t *testing.T) {
	left := rows(
		row.New(map[string]row.Value{"id": row.Int(1), "name": row.String("a")}),
		row.New(map[string]row.Value{"id": row.Int(2), "name": row.String("b")}),
	)
	right := rows(
		row.New(map[string]row.Value{"id": row.Int(2), "score": row.Int(9)}),
	)
	out := collect(t, Join(left, right, []string{"id"}, innerJoiner{}))
	if len(out) != 1 {
		t.Fatalf("Join() produced %d rows, want 1", len(out))
	}
	v, _ := out[0].Get("name")
	if s, _ := v.AsString(); s != "b" {
		t.Fatalf("Join()[0].name = %q, want b", s)
	}
}
