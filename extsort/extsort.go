// Package extsort implements the Sort operator: a stable external sort
// over row.Row streams keyed by an ordered list of columns. Rows are
// buffered in memory up to a configured threshold; once the threshold is
// hit the buffer is sorted and spilled to a run file in SpillDir, named
// with a fresh UUID to avoid collisions between concurrent graph runs
// sharing the same spill directory. Once the source is exhausted, spilled
// runs (plus any final partial buffer) are merged with a k-way min-heap
// merge that preserves stability across runs.
package extsort

import (
	"bufio"
	"container/heap"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/kbukum/compgraph/cgerrors"
	"github.com/kbukum/compgraph/ops"
	"github.com/kbukum/compgraph/pipeline"
	"github.com/kbukum/compgraph/row"
	"github.com/kbukum/compgraph/rowio"
)

// Options configures an external sort.
type Options struct {
	// BufferRows is the maximum number of rows held in memory before a run
	// is spilled to disk. Zero means "never spill" — the whole input is
	// sorted in memory.
	BufferRows int
	// SpillDir is the directory run files are written to. Defaults to
	// os.TempDir() if empty.
	SpillDir string
}

func (o Options) spillDir() string {
	if o.SpillDir != "" {
		return o.SpillDir
	}
	return os.TempDir()
}

// Sort consumes source fully, in order to guarantee the result is sorted
// by keys, and returns an Iterator over the sorted rows. Ties (rows with
// equal keys) preserve their relative input order.
func Sort(ctx context.Context, source ops.RowIterator, keys []string, opts Options) (ops.RowIterator, error) {
	defer source.Close()

	var (
		buffer   []indexedRow
		runFiles []string
		seq      int
	)

	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		if err := sortIndexed(buffer, keys); err != nil {
			return err
		}
		path, err := spillRun(opts.spillDir(), buffer)
		if err != nil {
			return err
		}
		runFiles = append(runFiles, path)
		buffer = buffer[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			cleanupRuns(runFiles)
			return nil, err
		}
		r, ok, err := source.Next(ctx)
		if err != nil {
			cleanupRuns(runFiles)
			return nil, err
		}
		if !ok {
			break
		}
		buffer = append(buffer, indexedRow{row: r, seq: seq})
		seq++
		if opts.BufferRows > 0 && len(buffer) >= opts.BufferRows {
			if err := flush(); err != nil {
				cleanupRuns(runFiles)
				return nil, err
			}
		}
	}

	if len(runFiles) == 0 {
		// Entire input fit in memory — no disk round trip needed.
		if err := sortIndexed(buffer, keys); err != nil {
			return nil, err
		}
		return pipeline.FromSlice(plainRows(buffer)), nil
	}

	if err := flush(); err != nil {
		cleanupRuns(runFiles)
		return nil, err
	}
	return newMergeIterator(runFiles, keys)
}

type indexedRow struct {
	row row.Row
	seq int
}

func plainRows(indexed []indexedRow) []row.Row {
	out := make([]row.Row, len(indexed))
	for i, ir := range indexed {
		out[i] = ir.row
	}
	return out
}

// sortIndexed sorts in place by keys, breaking ties by original sequence
// number so the sort is stable without relying on sort.SliceStable's
// quadratic worst case guarantees across repeated partial sorts. Every row
// is checked against keys up front so a missing column is reported once,
// rather than surfacing mid-sort from inside the less function.
func sortIndexed(buffer []indexedRow, keys []string) error {
	for _, ir := range buffer {
		if _, err := row.KeyOf(ir.row, keys); err != nil {
			return cgerrors.KeyMissing(firstMissingKey(keys, ir.row))
		}
	}
	var sortErr error
	sort.Slice(buffer, func(i, j int) bool {
		less, err := lessIndexed(buffer[i], buffer[j], keys)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return less
	})
	return sortErr
}

func lessIndexed(a, b indexedRow, keys []string) (bool, error) {
	ka, err := row.KeyOf(a.row, keys)
	if err != nil {
		return false, cgerrors.KeyMissing(firstMissingKey(keys, a.row))
	}
	kb, err := row.KeyOf(b.row, keys)
	if err != nil {
		return false, cgerrors.KeyMissing(firstMissingKey(keys, b.row))
	}
	c, err := ka.Compare(kb)
	if err != nil {
		return false, cgerrors.TypeMismatch(err.Error())
	}
	if c != 0 {
		return c < 0, nil
	}
	return a.seq < b.seq, nil
}

func firstMissingKey(keys []string, r row.Row) string {
	for _, k := range keys {
		if _, ok := r.Get(k); !ok {
			return k
		}
	}
	return ""
}

func spillRun(dir string, rows []indexedRow) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("compgraph-sort-%s.jsonl", uuid.New().String()))
	f, err := os.Create(path)
	if err != nil {
		return "", cgerrors.SortIO("create run file", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, ir := range rows {
		line, err := rowio.WriteJSONLine(ir.row)
		if err != nil {
			return "", cgerrors.SortIO("encode run row", err)
		}
		if _, err := w.WriteString(line); err != nil {
			return "", cgerrors.SortIO("write run row", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return "", cgerrors.SortIO("write run row", err)
		}
	}
	if err := w.Flush(); err != nil {
		return "", cgerrors.SortIO("flush run file", err)
	}
	return path, nil
}

func cleanupRuns(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}

// runReader streams one spilled run file back as Row values.
type runReader struct {
	file    *os.File
	scanner *bufio.Scanner
}

func openRun(path string) (*runReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cgerrors.SortIO("open run file", err)
	}
	return &runReader{file: f, scanner: bufio.NewScanner(f)}, nil
}

func (r *runReader) next() (row.Row, bool, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return nil, false, cgerrors.SortIO("read run file", err)
		}
		return nil, false, nil
	}
	parsed, err := rowio.ParseJSONLine(r.scanner.Text())
	if err != nil {
		return nil, false, cgerrors.SortIO("parse run row", err)
	}
	return parsed, true, nil
}

func (r *runReader) close() error {
	return r.file.Close()
}

// mergeIterator performs a k-way merge of sorted run files using a min-heap
// keyed on each run's current row, breaking ties by run index so rows that
// compared equal keep the relative order they were written in (each run is
// itself internally stable, and earlier runs always hold earlier input).
type mergeIterator struct {
	runs    []*runReader
	paths   []string
	keys    []string
	h       *mergeHeap
	started bool
}

func newMergeIterator(paths []string, keys []string) (*mergeIterator, error) {
	m := &mergeIterator{paths: paths, keys: keys}
	for _, p := range paths {
		rr, err := openRun(p)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.runs = append(m.runs, rr)
	}
	return m, nil
}

func (m *mergeIterator) init(ctx context.Context) error {
	m.h = &mergeHeap{keys: m.keys}
	for i, rr := range m.runs {
		r, ok, err := rr.next()
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		key, err := row.KeyOf(r, m.keys)
		if err != nil {
			return cgerrors.KeyMissing(firstMissingKey(m.keys, r))
		}
		heap.Push(m.h, &mergeItem{row: r, key: key, runIdx: i})
	}
	heap.Init(m.h)
	m.started = true
	return nil
}

func (m *mergeIterator) Next(ctx context.Context) (row.Row, bool, error) {
	if !m.started {
		if err := m.init(ctx); err != nil {
			return nil, false, err
		}
	}
	if m.h.Len() == 0 {
		return nil, false, nil
	}
	top := heap.Pop(m.h).(*mergeItem)

	next, ok, err := m.runs[top.runIdx].next()
	if err != nil {
		return nil, false, err
	}
	if ok {
		key, err := row.KeyOf(next, m.keys)
		if err != nil {
			return nil, false, cgerrors.KeyMissing(firstMissingKey(m.keys, next))
		}
		heap.Push(m.h, &mergeItem{row: next, key: key, runIdx: top.runIdx})
	}
	return top.row, true, nil
}

func (m *mergeIterator) Close() error {
	var firstErr error
	for _, rr := range m.runs {
		if err := rr.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	cleanupRuns(m.paths)
	return firstErr
}
