package algorithms

import (
	"context"
	"math"
	"sort"
	"testing"

	"github.com/kbukum/compgraph/graph"
	"github.com/kbukum/compgraph/pipeline"
	"github.com/kbukum/compgraph/row"
)

func approxEqual(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol*math.Max(1, math.Abs(want))
}

func textRow(doc int64, text string) row.Row {
	return row.New(map[string]row.Value{"doc_id": row.Int(doc), "text": row.String(text)})
}

func runGraph(t *testing.T, g *graph.Graph, name string, rows []row.Row) []row.Row {
	t.Helper()
	it, err := g.Run(context.Background(), map[string]graph.Source{name: graph.FromRows(rows)})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out, err := pipeline.Collect(context.Background(), it)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return out
}

// TestWordCount_S1 mirrors spec scenario S1: after punctuation-strip and
// lowercase, six rows collapse to three distinct words.
func TestWordCount_S1(t *testing.T) {
	rows := []row.Row{
		textRow(1, "hi!*%!@^"),
		textRow(2, "aboba!*%!@^"),
		textRow(3, "aboba AbObA !*%!@^ aboba"),
		textRow(4, "aboba?!*%!@^ HI aBoBa BaObAB"),
		textRow(5, "hi HI!*%!@^ baobab..."),
		textRow(6, "!*%!@^baobab? baobab... BAOBAB!!! BaoBaB!!*%!@^!! hi!!!*%!@^!!!"),
	}
	g := WordCount("texts", WordCountConfig{})
	out := runGraph(t, g, "texts", rows)

	if len(out) != 3 {
		t.Fatalf("WordCount produced %d rows, want 3: %v", len(out), out)
	}
	type wc struct {
		text  string
		count int64
	}
	var got []wc
	for _, r := range out {
		textV, _ := r.Get("text")
		countV, _ := r.Get("count")
		s, _ := textV.AsString()
		n, _ := countV.AsInt()
		got = append(got, wc{s, n})
	}
	want := []wc{{"hi", 5}, {"aboba", 6}, {"baobab", 6}}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("row %d = %+v, want %+v (full: %v)", i, got[i], w, got)
		}
	}
}

type tfIdfExpectation struct {
	doc   int64
	text  string
	tfIdf float64
}

// TestInvertedIndex_S2 mirrors spec scenario S2 (tf-idf top-3 per word),
// grounded on the Python reference implementation's test_multiple_call_tf_idf
// second fixture (hi/aboba/baobab corpus).
func TestInvertedIndex_S2(t *testing.T) {
	rows := []row.Row{
		textRow(1, "hi!*%!@^"),
		textRow(2, "aboba!*%!@^"),
		textRow(3, "aboba AbObA !*%!@^ aboba"),
		textRow(4, "aboba?!*%!@^ HI aBoBa BaObAB"),
		textRow(5, "hi HI!*%!@^ baobab..."),
		textRow(6, "!*%!@^baobab? baobab... BAOBAB!!! BaoBaB!!*%!@^!! hi!!!*%!@^!!!"),
	}
	g := InvertedIndex("texts", InvertedIndexConfig{})
	out := runGraph(t, g, "texts", rows)

	var got []tfIdfExpectation
	for _, r := range out {
		docV, _ := r.Get("doc_id")
		textV, _ := r.Get("text")
		tfIdfV, _ := r.Get("tf_idf")
		doc, _ := docV.AsInt()
		text, _ := textV.AsString()
		val, _ := tfIdfV.AsFloat()
		got = append(got, tfIdfExpectation{doc, text, val})
	}
	sort.Slice(got, func(i, j int) bool {
		if got[i].doc != got[j].doc {
			return got[i].doc < got[j].doc
		}
		return got[i].text < got[j].text
	})

	want := []tfIdfExpectation{
		{1, "hi", 0.40546510},
		{2, "aboba", 0.693147},
		{3, "aboba", 0.693147},
		{4, "aboba", 0.34657},
		{4, "baobab", 0.17328},
		{4, "hi", 0.10136},
		{5, "baobab", 0.23104},
		{5, "hi", 0.27031},
		{6, "baobab", 0.554517},
	}
	if len(got) != len(want) {
		t.Fatalf("InvertedIndex produced %d rows, want %d: %v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].doc != w.doc || got[i].text != w.text || !approxEqual(got[i].tfIdf, w.tfIdf, 0.001) {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], w)
		}
	}
}

// TestPMI_S3 mirrors spec scenario S3, grounded on
// test_multiple_call_pmi's first fixture.
func TestPMI_S3(t *testing.T) {
	rows := []row.Row{
		textRow(1, "hello, little world"),
		textRow(2, "little"),
		textRow(3, "little little little"),
		textRow(4, "little? hello little world"),
		textRow(5, "HELLO HELLO! WORLD..."),
		textRow(6, "world? world... world!!! WORLD!!! HELLO!!! HELLO!!!!!!!"),
	}
	g := PMI("texts", PMIConfig{})
	out := runGraph(t, g, "texts", rows)

	want := []tfIdfExpectation{
		{3, "little", 0.9555},
		{4, "little", 0.9555},
		{5, "hello", 1.1786},
		{6, "world", 0.7731},
		{6, "hello", 0.0800},
	}
	if len(out) != len(want) {
		t.Fatalf("PMI produced %d rows, want %d: %v", len(out), len(want), out)
	}
	for i, w := range want {
		docV, _ := out[i].Get("doc_id")
		textV, _ := out[i].Get("text")
		pmiV, _ := out[i].Get("pmi")
		doc, _ := docV.AsInt()
		text, _ := textV.AsString()
		val, _ := pmiV.AsFloat()
		if doc != w.doc || text != w.text || !approxEqual(val, w.tfIdf, 0.001) {
			t.Fatalf("row %d = {%d %s %v}, want %+v", i, doc, text, val, w)
		}
	}
}

type speedExpectation struct {
	weekday string
	hour    int64
	speed   float64
}

// TestAverageSpeed_S4 mirrors spec scenario S4, grounded on
// test_multiple_call_yandex_maps's first fixture.
func TestAverageSpeed_S4(t *testing.T) {
	lengths := []row.Row{
		row.New(map[string]row.Value{
			"start":   row.FloatList([]float64{37.84870228730142, 55.73853974696249}),
			"end":     row.FloatList([]float64{37.8490418381989, 55.73832445777953}),
			"edge_id": row.Int(8414926848168493057),
		}),
	}
	times := []row.Row{
		edgeTimeRow(8414926848168493057, "20171020T112237.427000", "20171020T112238.723000"),
		edgeTimeRow(8414926848168493057, "20171011T145551.957000", "20171011T145553.040000"),
		edgeTimeRow(8414926848168493057, "20171020T090547.463000", "20171020T090548.939000"),
		edgeTimeRow(8414926848168493057, "20171024T144059.102000", "20171024T144101.879000"),
	}

	g := AverageSpeed("travel_time", "edge_length", AverageSpeedConfig{})
	ctx := context.Background()
	it, err := g.Run(ctx, map[string]graph.Source{
		"travel_time": graph.FromRows(times),
		"edge_length": graph.FromRows(lengths),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out, err := pipeline.Collect(ctx, it)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	var got []speedExpectation
	for _, r := range out {
		wd, _ := r.Get("weekday")
		hr, _ := r.Get("hour")
		sp, _ := r.Get("speed")
		s, _ := wd.AsString()
		h, _ := hr.AsInt()
		v, _ := sp.AsFloat()
		got = append(got, speedExpectation{s, h, v})
	}
	sort.Slice(got, func(i, j int) bool {
		if got[i].weekday != got[j].weekday {
			return got[i].weekday < got[j].weekday
		}
		return got[i].hour < got[j].hour
	})

	want := []speedExpectation{
		{"Fri", 9, 78.1070},
		{"Fri", 11, 88.9552},
		{"Tue", 14, 41.5145},
		{"Wed", 14, 106.4505},
	}
	if len(got) != len(want) {
		t.Fatalf("AverageSpeed produced %d rows, want %d: %v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].weekday != w.weekday || got[i].hour != w.hour || !approxEqual(got[i].speed, w.speed, 0.001) {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], w)
		}
	}
}

func edgeTimeRow(edgeID int64, enter, leave string) row.Row {
	return row.New(map[string]row.Value{
		"edge_id":    row.Int(edgeID),
		"enter_time": row.String(enter),
		"leave_time": row.String(leave),
	})
}
