// Command pmi runs the pointwise-mutual-information graph over a
// line-delimited JSON input file and writes, per document, its top-10
// words ranked by pmi to an output file.
package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/compgraph/algorithms"
	"github.com/kbukum/compgraph/cmd/internal/cliutil"
	"github.com/kbukum/compgraph/graph"
	"github.com/kbukum/compgraph/logger"
)

func main() {
	fs := pflag.NewFlagSet("pmi", pflag.ExitOnError)
	docColumn := fs.String("doc-column", "doc_id", "column identifying the document")
	textColumn := fs.String("text-column", "text", "column holding the text to tokenize")
	resultColumn := fs.String("result-column", "pmi", "column to write the pmi score to")
	cfgFlags := cliutil.BindConfigFlags(fs)
	fs.Parse(os.Args[1:])
	cfgFlags.MaybePrintVersion("pmi")

	if fs.NArg() != 2 {
		os.Stderr.WriteString("usage: pmi [flags] <input-file> <output-file>\n")
		os.Exit(2)
	}
	inputPath, outputPath := fs.Arg(0), fs.Arg(1)

	cfg, err := cfgFlags.LoadEngineConfig()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger.Init(&cfg.Logging)
	log := logger.NewDefault("pmi")

	g := algorithms.PMI("input", algorithms.PMIConfig{
		DocColumn:    *docColumn,
		TextColumn:   *textColumn,
		ResultColumn: *resultColumn,
		SortOptions:  cliutil.SortOptions(cfg),
	})

	ctx := cliutil.NewRunContext(context.Background())
	log = log.WithContext(ctx)
	it, err := g.Run(ctx, map[string]graph.Source{"input": graph.FileSource(inputPath, nil)})
	if err != nil {
		cliutil.Fail(log, "building pmi graph", err)
	}

	out, w, err := cliutil.OpenOutput(outputPath)
	if err != nil {
		cliutil.Fail(log, "opening output file", err)
	}
	defer out.Close()

	count, err := cliutil.WriteRows(ctx, w, it, log)
	if err != nil {
		cliutil.Fail(log, "running pmi graph", err)
	}
	log.Info("pmi complete", map[string]interface{}{"rows": count, "input": inputPath, "output": outputPath})
}
