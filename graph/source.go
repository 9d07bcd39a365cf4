package graph

import (
	"bufio"
	"context"
	"os"

	"github.com/kbukum/compgraph/cgerrors"
	"github.com/kbukum/compgraph/ops"
	"github.com/kbukum/compgraph/pipeline"
	"github.com/kbukum/compgraph/row"
	"github.com/kbukum/compgraph/rowio"
)

// Source produces a fresh RowIterator each time it's called. Graph.Run
// resolves a FromIter node's name against a map of Sources, the Go
// equivalent of the kwargs-based row-iterator factories the reference
// implementation's graph_from_iter reads from.
type Source func(ctx context.Context) (ops.RowIterator, error)

// FromRows returns a Source that replays a fixed, in-memory slice of rows
// every time it's called. Intended for tests and small inline inputs.
func FromRows(rows []row.Row) Source {
	return func(_ context.Context) (ops.RowIterator, error) {
		return pipeline.FromSlice(rows), nil
	}
}

// Parser turns one line of text into a Row. FileSource defaults to
// rowio.ParseJSONLine when the caller passes nil, but any text -> Row
// function can be supplied, matching the reference implementation's
// graph_from_file(filename, parser) signature.
type Parser func(line string) (row.Row, error)

// FileSource returns a Source that streams path one line at a time through
// parser, opening and scanning the file fresh on every call. A nil parser
// defaults to rowio.ParseJSONLine.
func FileSource(path string, parser Parser) Source {
	return func(_ context.Context) (ops.RowIterator, error) {
		return openFileSource(path, parser)
	}
}

// fileSourceIterator streams a text file as Rows via parser.
type fileSourceIterator struct {
	path    string
	parser  Parser
	file    *os.File
	scanner *bufio.Scanner
	line    int
}

func openFileSource(path string, parser Parser) (*fileSourceIterator, error) {
	if parser == nil {
		parser = rowio.ParseJSONLine
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, cgerrors.SourceIO(path, err)
	}
	return &fileSourceIterator{path: path, parser: parser, file: f, scanner: bufio.NewScanner(f)}, nil
}

func (it *fileSourceIterator) Next(_ context.Context) (row.Row, bool, error) {
	if !it.scanner.Scan() {
		if err := it.scanner.Err(); err != nil {
			return nil, false, cgerrors.SourceIO(it.path, err)
		}
		return nil, false, nil
	}
	it.line++
	r, err := it.parser(it.scanner.Text())
	if err != nil {
		return nil, false, cgerrors.SourceParse(it.path, it.line, err)
	}
	return r, true, nil
}

func (it *fileSourceIterator) Close() error {
	return it.file.Close()
}
