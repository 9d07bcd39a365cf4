// Command avgspeed runs the average-speed graph over two line-delimited
// JSON input files — edge travel times and edge lengths — and writes
// average speed per (weekday, hour) to an output file.
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
	fs := pflag.NewFlagSet("avgspeed", pflag.ExitOnError)
	edgeIDColumn := fs.String("edge-id-column", "edge_id", "column identifying the road edge")
	enterColumn := fs.String("enter-time-column", "enter_time", "column holding the edge-enter timestamp")
	leaveColumn := fs.String("leave-time-column", "leave_time", "column holding the edge-leave timestamp")
	startColumn := fs.String("start-coord-column", "start", "column holding the edge start [lon, lat]")
	endColumn := fs.String("end-coord-column", "end", "column holding the edge end [lon, lat]")
	weekdayColumn := fs.String("weekday-result-column", "weekday", "column to write the weekday to")
	hourColumn := fs.String("hour-result-column", "hour", "column to write the hour to")
	speedColumn := fs.String("speed-result-column", "speed", "column to write the speed to")
	timeLayout := fs.String("time-layout", algorithms.TimeLayout, "Go reference-time layout for timestamp columns")
	cfgFlags := cliutil.BindConfigFlags(fs)
	fs.Parse(os.Args[1:])
	cfgFlags.MaybePrintVersion("avgspeed")

	if fs.NArg() != 3 {
		os.Stderr.WriteString("usage: avgspeed [flags] <times-file> <lengths-file> <output-file>\n")
		os.Exit(2)
	}
	timesPath, lengthsPath, outputPath := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	cfg, err := cfgFlags.LoadEngineConfig()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger.Init(&cfg.Logging)
	log := logger.NewDefault("avgspeed")

	g := algorithms.AverageSpeed("times", "lengths", algorithms.AverageSpeedConfig{
		EnterTimeColumn:     *enterColumn,
		LeaveTimeColumn:     *leaveColumn,
		EdgeIDColumn:        *edgeIDColumn,
		StartCoordColumn:    *startColumn,
		EndCoordColumn:      *endColumn,
		WeekdayResultColumn: *weekdayColumn,
		HourResultColumn:    *hourColumn,
		SpeedResultColumn:   *speedColumn,
		TimeLayout:          *timeLayout,
		SortOptions:         cliutil.SortOptions(cfg),
	})

	ctx := cliutil.NewRunContext(context.Background())
	log = log.WithContext(ctx)
	it, err := g.Run(ctx, map[string]graph.Source{
		"times":   graph.FileSource(timesPath, nil),
		"lengths": graph.FileSource(lengthsPath, nil),
	})
	if err != nil {
		cliutil.Fail(log, "building average-speed graph", err)
	}

	out, w, err := cliutil.OpenOutput(outputPath)
	if err != nil {
		cliutil.Fail(log, "opening output file", err)
	}
	defer out.Close()

	count, err := cliutil.WriteRows(ctx, w, it, log)
	if err != nil {
		cliutil.Fail(log, "running average-speed graph", err)
	}
	log.Info("average speed complete", map[string]interface{}{"rows": count, "times": timesPath, "lengths": lengthsPath, "output": outputPath})
}
