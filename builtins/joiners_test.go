package builtins

import (
	"testing"

	"github.com/kbukum/compgraph/row"
)

func docRow(doc int64, extra string) row.Row {
	return row.New(map[string]row.Value{"doc": row.Int(doc), "tag": row.String(extra)})
}

func TestInnerJoiner_DropsUnmatchedKeys(t *testing.T) {
	left := []row.Row{docRow(1, "left")}
	out, err := InnerJoiner{}.Join([]string{"doc"}, left, nil)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if out != nil {
		t.Fatalf("InnerJoiner should drop an unmatched key, got %v", out)
	}
}

func TestInnerJoiner_CrossJoinsMatchedGroup(t *testing.T) {
	left := []row.Row{docRow(1, "left")}
	right := []row.Row{row.New(map[string]row.Value{"doc": row.Int(1), "score": row.Float(0.5)})}
	out, err := InnerJoiner{}.Join([]string{"doc"}, left, right)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("InnerJoiner produced %d rows, want 1", len(out))
	}
	if _, ok := out[0].Get("tag"); !ok {
		t.Fatalf("joined row missing left-only column tag")
	}
	if _, ok := out[0].Get("score"); !ok {
		t.Fatalf("joined row missing right-only column score")
	}
}

func TestInnerJoiner_SuffixesCollidingNonKeyColumns(t *testing.T) {
	left := []row.Row{row.New(map[string]row.Value{"doc": row.Int(1), "value": row.Int(10)})}
	right := []row.Row{row.New(map[string]row.Value{"doc": row.Int(1), "value": row.Int(20)})}
	out, err := InnerJoiner{}.Join([]string{"doc"}, left, right)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	v1, ok1 := out[0].Get("value_1")
	v2, ok2 := out[0].Get("value_2")
	if !ok1 || !ok2 {
		t.Fatalf("expected value_1/value_2 suffixed columns, got %v", out[0])
	}
	n1, _ := v1.AsInt()
	n2, _ := v2.AsInt()
	if n1 != 10 || n2 != 20 {
		t.Fatalf("value_1=%d value_2=%d, want 10/20", n1, n2)
	}
}

func TestLeftJoiner_PassesThroughUnmatchedLeft(t *testing.T) {
	left := []row.Row{docRow(1, "left")}
	out, err := LeftJoiner{}.Join([]string{"doc"}, left, nil)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("LeftJoiner should pass through the unmatched left row, got %v", out)
	}
}

func TestLeftJoiner_DropsRightOnlyKey(t *testing.T) {
	right := []row.Row{docRow(1, "right")}
	out, err := LeftJoiner{}.Join([]string{"doc"}, nil, right)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if out != nil {
		t.Fatalf("LeftJoiner should drop a right-only key, got %v", out)
	}
}

func TestRightJoiner_PassesThroughUnmatchedRight(t *testing.T) {
	right := []row.Row{docRow(1, "right")}
	out, err := RightJoiner{}.Join([]string{"doc"}, nil, right)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("RightJoiner should pass through the unmatched right row, got %v", out)
	}
}

func TestOuterJoiner_PassesThroughEitherSide(t *testing.T) {
	left := []row.Row{docRow(1, "left")}
	if out, err := (OuterJoiner{}).Join([]string{"doc"}, left, nil); err != nil || len(out) != 1 {
		t.Fatalf("OuterJoiner(left, nil) = %v, %v", out, err)
	}
	right := []row.Row{docRow(2, "right")}
	if out, err := (OuterJoiner{}).Join([]string{"doc"}, nil, right); err != nil || len(out) != 1 {
		t.Fatalf("OuterJoiner(nil, right) = %v, %v", out, err)
	}
}
