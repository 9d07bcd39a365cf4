package extsort

import (
	"context"
	"os"
	"testing"

	"github.com/kbukum/compgraph/pipeline"
	"github.com/kbukum/compgraph/row"
)

func mkRow(n int64, tag string) row.Row {
	return row.New(map[string]row.Value{"n": row.Int(n), "tag": row.String(tag)})
}

func collectInts(t *testing.T, it interface {
	Next(context.Context) (row.Row, bool, error)
	Close() error
}) []int64 {
	t.Helper()
	var out []int64
	ctx := context.Background()
	for {
		r, ok, err := it.Next(ctx)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if !ok {
			break
		}
		v, _ := r.Get("n")
		n, _ := v.AsInt()
		out = append(out, n)
	}
	_ = it.Close()
	return out
}

func TestSort_InMemoryNoSpill(t *testing.T) {
	src := pipeline.FromSlice([]row.Row{
		mkRow(3, "a"), mkRow(1, "b"), mkRow(2, "c"),
	})
	out, err := Sort(context.Background(), src, []string{"n"}, Options{BufferRows: 100})
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	got := collectInts(t, out)
	want := []int64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort() = %v, want %v", got, want)
		}
	}
}

func TestSort_SpillsAndMerges(t *testing.T) {
	rows := []row.Row{
		mkRow(5, "a"), mkRow(3, "b"), mkRow(8, "c"), mkRow(1, "d"),
		mkRow(9, "e"), mkRow(2, "f"), mkRow(7, "g"), mkRow(4, "h"),
	}
	src := pipeline.FromSlice(rows)
	out, err := Sort(context.Background(), src, []string{"n"}, Options{BufferRows: 2, SpillDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	got := collectInts(t, out)
	want := []int64{1, 2, 3, 4, 5, 7, 8, 9}
	if len(got) != len(want) {
		t.Fatalf("Sort() produced %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSort_StableOnEqualKeys(t *testing.T) {
	rows := []row.Row{
		mkRow(1, "first"), mkRow(1, "second"), mkRow(1, "third"),
	}
	src := pipeline.FromSlice(rows)
	out, err := Sort(context.Background(), src, []string{"n"}, Options{BufferRows: 1, SpillDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	ctx := context.Background()
	var tags []string
	for {
		r, ok, err := out.Next(ctx)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if !ok {
			break
		}
		v, _ := r.Get("tag")
		s, _ := v.AsString()
		tags = append(tags, s)
	}
	_ = out.Close()
	want := []string{"first", "second", "third"}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("Sort() tags = %v, want stable order %v", tags, want)
		}
	}
}

func TestSort_SpillFilesRemovedAfterDrain(t *testing.T) {
	spillDir := t.TempDir()
	rows := []row.Row{
		mkRow(5, "a"), mkRow(3, "b"), mkRow(8, "c"), mkRow(1, "d"),
		mkRow(9, "e"), mkRow(2, "f"),
	}
	src := pipeline.FromSlice(rows)
	out, err := Sort(context.Background(), src, []string{"n"}, Options{BufferRows: 2, SpillDir: spillDir})
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}

	entries, err := os.ReadDir(spillDir)
	if err != nil {
		t.Fatalf("ReadDir(spillDir) error = %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected spill runs to be written mid-sort, found none")
	}

	_ = collectInts(t, out)

	entries, err = os.ReadDir(spillDir)
	if err != nil {
		t.Fatalf("ReadDir(spillDir) error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("spill dir not empty after drain: %v", entries)
	}
}

func TestSort_MissingKeyColumn(t *testing.T) {
	src := pipeline.FromSlice([]row.Row{row.New(map[string]row.Value{"other": row.Int(1)})})
	_, err := Sort(context.Background(), src, []string{"n"}, Options{BufferRows: 10})
	if err == nil {
		t.Fatalf("Sort() error = nil, want error for missing key column")
	}
}
