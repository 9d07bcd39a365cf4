package algorithms

import (
	"fmt"

	"github.com/kbukum/compgraph/builtins"
	"github.com/kbukum/compgraph/graph"
	"github.com/kbukum/compgraph/row"
)

// splitGraph strips punctuation, lowercases, and tokenizes textColumn,
// fanning each input row out into one row per token. Shared by word count,
// inverted index, and PMI — all three start from the same tokenization.
func splitGraph(g *graph.Graph, textColumn string) *graph.Graph {
	return g.
		Map(builtins.FilterPunctuation{Column: textColumn}).
		Map(builtins.LowerCase{Column: textColumn}).
		Map(builtins.Split{Column: textColumn})
}

func columnNumber(r row.Row, column string) (float64, error) {
	v, err := r.MustGet(column)
	if err != nil {
		return 0, err
	}
	n, ok := v.Number()
	if !ok {
		return 0, fmt.Errorf("algorithms: column %q is %s, not numeric", column, v.Kind())
	}
	return n, nil
}
