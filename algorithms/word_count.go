package algorithms

import (
	"github.com/kbukum/compgraph/builtins"
	"github.com/kbukum/compgraph/extsort"
	"github.com/kbukum/compgraph/graph"
)

// WordCountConfig configures WordCount. Zero-value fields are filled in by
// applyDefaults, matching the column defaults of the Python reference
// implementation's word_count_graph.
type WordCountConfig struct {
	TextColumn  string
	CountColumn string
	SortOptions extsort.Options
}

func (c *WordCountConfig) applyDefaults() {
	if c.TextColumn == "" {
		c.TextColumn = "text"
	}
	if c.CountColumn == "" {
		c.CountColumn = "count"
	}
}

// WordCount builds a graph that counts occurrences of every word in
// TextColumn across all rows of source, sorted ascending by count then by
// word.
func WordCount(source string, cfg WordCountConfig) *graph.Graph {
	cfg.applyDefaults()

	g := graph.FromIter(source)
	return splitGraph(g, cfg.TextColumn).
		Sort([]string{cfg.TextColumn}, cfg.SortOptions).
		Reduce(builtins.Count{Column: cfg.CountColumn}, []string{cfg.TextColumn}).
		Sort([]string{cfg.CountColumn, cfg.TextColumn}, cfg.SortOptions)
}
