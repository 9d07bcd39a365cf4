package algorithms

import (
	"math"

	"github.com/kbukum/compgraph/builtins"
	"github.com/kbukum/compgraph/extsort"
	"github.com/kbukum/compgraph/graph"
	"github.com/kbukum/compgraph/row"
)

// InvertedIndexConfig configures InvertedIndex.
type InvertedIndexConfig struct {
	DocColumn    string
	TextColumn   string
	ResultColumn string
	SortOptions  extsort.Options
}

func (c *InvertedIndexConfig) applyDefaults() {
	if c.DocColumn == "" {
		c.DocColumn = "doc_id"
	}
	if c.TextColumn == "" {
		c.TextColumn = "text"
	}
	if c.ResultColumn == "" {
		c.ResultColumn = "tf_idf"
	}
}

// InvertedIndex builds a graph computing tf-idf for every (document, word)
// pair, keeping the top 3 documents per word ranked by tf-idf.
func InvertedIndex(source string, cfg InvertedIndexConfig) *graph.Graph {
	cfg.applyDefaults()

	g := graph.FromIter(source)
	splitWords := splitGraph(g, cfg.TextColumn)

	const docsCountColumn = "docs_count"
	// The raw source carries exactly one row per document (it is text per
	// document, not yet tokenized), so every doc_id value already appears
	// at most once — FirstReducer's grouping needs no preceding Sort here.
	countDocs := g.
		Reduce(builtins.FirstReducer{}, []string{cfg.DocColumn}).
		Reduce(builtins.Count{Column: docsCountColumn}, nil)

	const totalColumn = "total"
	const idfColumn = "idf"
	idf := splitWords.
		Sort([]string{cfg.DocColumn, cfg.TextColumn}, cfg.SortOptions).
		Reduce(builtins.FirstReducer{}, []string{cfg.DocColumn, cfg.TextColumn}).
		Sort([]string{cfg.TextColumn}, cfg.SortOptions).
		Reduce(builtins.Count{Column: totalColumn}, []string{cfg.TextColumn}).
		Join(builtins.InnerJoiner{}, countDocs, nil).
		Map(builtins.Calculate{
			Operation: func(r row.Row) (row.Value, error) {
				docsCount, err := columnNumber(r, docsCountColumn)
				if err != nil {
					return row.Value{}, err
				}
				total, err := columnNumber(r, totalColumn)
				if err != nil {
					return row.Value{}, err
				}
				return row.Float(math.Log(docsCount / total)), nil
			},
			Result: idfColumn,
		})

	const tfColumn = "tf"
	tf := splitWords.
		Reduce(builtins.TermFrequency{WordsColumn: cfg.TextColumn, ResultColumn: tfColumn}, []string{cfg.DocColumn}).
		Sort([]string{cfg.TextColumn}, cfg.SortOptions)

	return tf.Join(builtins.InnerJoiner{}, idf, []string{cfg.TextColumn}).
		Map(builtins.Product{Columns: []string{idfColumn, tfColumn}, ResultColumn: cfg.ResultColumn}).
		Map(builtins.Project{Columns: []string{cfg.DocColumn, cfg.TextColumn, cfg.ResultColumn}}).
		Reduce(builtins.TopN{Column: cfg.ResultColumn, N: 3}, []string{cfg.TextColumn})
}
