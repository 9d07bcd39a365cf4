// Command wordcount runs the word-count graph over a line-delimited JSON
// input file and writes counted words, one per line, to an output file.
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
	fs := pflag.NewFlagSet("wordcount", pflag.ExitOnError)
	textColumn := fs.String("text-column", "text", "column holding the text to tokenize")
	countColumn := fs.String("count-column", "count", "column to write the word count to")
	cfgFlags := cliutil.BindConfigFlags(fs)
	fs.Parse(os.Args[1:])
	cfgFlags.MaybePrintVersion("wordcount")

	if fs.NArg() != 2 {
		os.Stderr.WriteString("usage: wordcount [flags] <input-file> <output-file>\n")
		os.Exit(2)
	}
	inputPath, outputPath := fs.Arg(0), fs.Arg(1)

	cfg, err := cfgFlags.LoadEngineConfig()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger.Init(&cfg.Logging)
	log := logger.NewDefault("wordcount")

	g := algorithms.WordCount("input", algorithms.WordCountConfig{
		TextColumn:  *textColumn,
		CountColumn: *countColumn,
		SortOptions: cliutil.SortOptions(cfg),
	})

	ctx := cliutil.NewRunContext(context.Background())
	log = log.WithContext(ctx)
	it, err := g.Run(ctx, map[string]graph.Source{"input": graph.FileSource(inputPath, nil)})
	if err != nil {
		cliutil.Fail(log, "building word-count graph", err)
	}

	out, w, err := cliutil.OpenOutput(outputPath)
	if err != nil {
		cliutil.Fail(log, "opening output file", err)
	}
	defer out.Close()

	count, err := cliutil.WriteRows(ctx, w, it, log)
	if err != nil {
		cliutil.Fail(log, "running word-count graph", err)
	}
	log.Info("word count complete", map[string]interface{}{"rows": count, "input": inputPath, "output": outputPath})
}
