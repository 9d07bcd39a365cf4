package algorithms

import (
	"math"

	"github.com/kbukum/compgraph/builtins"
	"github.com/kbukum/compgraph/extsort"
	"github.com/kbukum/compgraph/graph"
	"github.com/kbukum/compgraph/row"
)

// PMIConfig configures PMI.
type PMIConfig struct {
	DocColumn    string
	TextColumn   string
	ResultColumn string
	SortOptions  extsort.Options
}

func (c *PMIConfig) applyDefaults() {
	if c.DocColumn == "" {
		c.DocColumn = "doc_id"
	}
	if c.TextColumn == "" {
		c.TextColumn = "text"
	}
	if c.ResultColumn == "" {
		c.ResultColumn = "pmi"
	}
}

// PMI builds a graph giving, for every document, the top 10 words ranked
// by pointwise mutual information between the word and the document.
func PMI(source string, cfg PMIConfig) *graph.Graph {
	cfg.applyDefaults()

	g := graph.FromIter(source)

	const countColumn = "count"
	wordsWithCorrectLen := splitGraph(g, cfg.TextColumn).
		Filter(func(r row.Row) (bool, error) {
			v, err := r.MustGet(cfg.TextColumn)
			if err != nil {
				return false, err
			}
			s, ok := v.AsString()
			if !ok {
				return false, nil
			}
			return len([]rune(s)) > 4, nil
		}).
		Sort([]string{cfg.DocColumn, cfg.TextColumn}, cfg.SortOptions)

	wordsWithCorrectCount := wordsWithCorrectLen.
		Reduce(builtins.Count{Column: countColumn}, []string{cfg.DocColumn, cfg.TextColumn}).
		Filter(func(r row.Row) (bool, error) {
			v, err := r.MustGet(countColumn)
			if err != nil {
				return false, err
			}
			n, _ := v.AsInt()
			return n > 1, nil
		})

	wordsSatisfyingCond := wordsWithCorrectLen.
		Join(builtins.InnerJoiner{}, wordsWithCorrectCount, []string{cfg.DocColumn, cfg.TextColumn})

	calcFreq := func(freqColumn string, keys []string) *graph.Graph {
		return wordsSatisfyingCond.
			Reduce(builtins.TermFrequency{WordsColumn: cfg.TextColumn, ResultColumn: freqColumn}, keys).
			Sort([]string{cfg.TextColumn}, cfg.SortOptions)
	}

	const freqOnlyColumn = "freq_only_doc_graph"
	freqOnlyDocGraph := calcFreq(freqOnlyColumn, []string{cfg.DocColumn})

	const freqAllColumn = "freq_all_docs_graph"
	freqAllDocsGraph := calcFreq(freqAllColumn, nil)

	return freqOnlyDocGraph.Join(builtins.InnerJoiner{}, freqAllDocsGraph, []string{cfg.TextColumn}).
		Map(builtins.Calculate{
			Operation: func(r row.Row) (row.Value, error) {
				freqOnly, err := columnNumber(r, freqOnlyColumn)
				if err != nil {
					return row.Value{}, err
				}
				freqAll, err := columnNumber(r, freqAllColumn)
				if err != nil {
					return row.Value{}, err
				}
				return row.Float(math.Log(freqOnly / freqAll)), nil
			},
			Result: cfg.ResultColumn,
		}).
		Map(builtins.Project{Columns: []string{cfg.DocColumn, cfg.TextColumn, cfg.ResultColumn}}).
		Sort([]string{cfg.DocColumn}, cfg.SortOptions).
		Reduce(builtins.TopN{Column: cfg.ResultColumn, N: 10}, []string{cfg.DocColumn})
}
