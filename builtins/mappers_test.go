package builtins

import (
	"testing"

	"github.com/kbukum/compgraph/row"
)

func must(t *testing.T) func([]row.Row, error) []row.Row {
	return func(rows []row.Row, err error) []row.Row {
		t.Helper()
		if err != nil {
			t.Fatalf("Map() error = %v", err)
		}
		return rows
	}
}

func TestFilterPunctuation(t *testing.T) {
	r := row.New(map[string]row.Value{"text": row.String("Hello, world!!")})
	out := must(t)(FilterPunctuation{Column: "text"}.Map(r))
	v, _ := out[0].Get("text")
	if s, _ := v.AsString(); s != "Hello world" {
		t.Fatalf("text = %q, want %q", s, "Hello world")
	}
}

func TestLowerCase(t *testing.T) {
	r := row.New(map[string]row.Value{"text": row.String("HeLLo")})
	out := must(t)(LowerCase{Column: "text"}.Map(r))
	v, _ := out[0].Get("text")
	if s, _ := v.AsString(); s != "hello" {
		t.Fatalf("text = %q, want hello", s)
	}
}

func TestSplit_FansOutOnWhitespace(t *testing.T) {
	r := row.New(map[string]row.Value{"text": row.String("a b  c"), "doc": row.Int(1)})
	out := must(t)(Split{Column: "text"}.Map(r))
	want := []string{"a", "b", "c"}
	if len(out) != len(want) {
		t.Fatalf("got %d rows, want %d", len(out), len(want))
	}
	for i, w := range want {
		v, _ := out[i].Get("text")
		if s, _ := v.AsString(); s != w {
			t.Fatalf("row %d text = %q, want %q", i, s, w)
		}
		if d, _ := out[i].Get("doc"); d.Kind() != row.KindInt {
			t.Fatalf("row %d lost doc column", i)
		}
	}
}

func TestProduct(t *testing.T) {
	r := row.New(map[string]row.Value{"a": row.Int(2), "b": row.Float(3.5)})
	out := must(t)(Product{Columns: []string{"a", "b"}}.Map(r))
	v, _ := out[0].Get("product")
	if f, _ := v.AsFloat(); f != 7.0 {
		t.Fatalf("product = %v, want 7.0", f)
	}
}

func TestFilter_DropsWhenConditionFalse(t *testing.T) {
	r := row.New(map[string]row.Value{"n": row.Int(3)})
	cond := func(r row.Row) (bool, error) {
		v, _ := r.Get("n")
		n, _ := v.AsInt()
		return n > 5, nil
	}
	out := must(t)(Filter{Condition: cond}.Map(r))
	if len(out) != 0 {
		t.Fatalf("Filter kept a row that should have been dropped")
	}
}

func TestProject_KeepsOnlyNamedColumns(t *testing.T) {
	r := row.New(map[string]row.Value{"a": row.Int(1), "b": row.Int(2), "c": row.Int(3)})
	out := must(t)(Project{Columns: []string{"a", "c"}}.Map(r))
	if _, ok := out[0].Get("b"); ok {
		t.Fatalf("Project kept column b")
	}
	if _, ok := out[0].Get("a"); !ok {
		t.Fatalf("Project dropped column a")
	}
}

func TestCalculateTime_WeekdayAndHour(t *testing.T) {
	r := row.New(map[string]row.Value{"enter": row.String("20171020T112238.723000")})
	m := CalculateTime{
		EnterTime:     "enter",
		Layout:        "20060102T150405.000000",
		WeekdayResult: "weekday",
		HourResult:    "hour",
	}
	out := must(t)(m.Map(r))
	wd, _ := out[0].Get("weekday")
	if s, _ := wd.AsString(); s != "Fri" {
		t.Fatalf("weekday = %q, want Fri", s)
	}
	hr, _ := out[0].Get("hour")
	if n, _ := hr.AsInt(); n != 11 {
		t.Fatalf("hour = %d, want 11", n)
	}
}

func TestCalculateLength_Haversine(t *testing.T) {
	r := row.New(map[string]row.Value{
		"start": row.FloatList([]float64{37.84870228730142, 55.73853974696249}),
		"end":   row.FloatList([]float64{37.8490418381989, 55.73832445777953}),
	})
	m := CalculateLength{StartPoint: "start", EndPoint: "end", ResultColumn: "length"}
	out := must(t)(m.Map(r))
	v, _ := out[0].Get("length")
	length, _ := v.AsFloat()
	if length <= 0 || length > 1 {
		t.Fatalf("length = %v, want a small positive distance in km", length)
	}
}

func TestCalculateLength_SkipsIfResultAlreadyPresent(t *testing.T) {
	r := row.New(map[string]row.Value{
		"start":  row.FloatList([]float64{0, 0}),
		"end":    row.FloatList([]float64{1, 1}),
		"length": row.Float(42),
	})
	m := CalculateLength{StartPoint: "start", EndPoint: "end", ResultColumn: "length"}
	out := must(t)(m.Map(r))
	v, _ := out[0].Get("length")
	if f, _ := v.AsFloat(); f != 42 {
		t.Fatalf("length = %v, want untouched 42", f)
	}
}
