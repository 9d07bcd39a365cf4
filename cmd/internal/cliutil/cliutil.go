// Package cliutil holds the flag parsing and run-loop plumbing shared by
// every graph-engine CLI binary under cmd/.
package cliutil

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/kbukum/compgraph/config"
	"github.com/kbukum/compgraph/extsort"
	"github.com/kbukum/compgraph/logger"
	"github.com/kbukum/compgraph/ops"
	"github.com/kbukum/compgraph/rowio"
	"github.com/kbukum/compgraph/version"
)

// ConfigFlags are the command-line flags every algorithm CLI exposes for
// loading and overriding the shared config.EngineConfig.
type ConfigFlags struct {
	ConfigFile     string
	EnvFile        string
	SortBufferRows string
	SpillDir       string
	LogLevel       string
	LogFormat      string
	showVersion    bool
}

// BindConfigFlags registers the shared config/logging/sort/version flags on
// fs.
func BindConfigFlags(fs *pflag.FlagSet) *ConfigFlags {
	f := &ConfigFlags{}
	fs.StringVar(&f.ConfigFile, "config", "", "path to a YAML config file")
	fs.StringVar(&f.EnvFile, "env-file", "", "path to a .env file")
	fs.StringVar(&f.SortBufferRows, "sort-buffer-rows", "", "rows buffered in memory before a run spills to disk, or a size string like 64MB")
	fs.StringVar(&f.SpillDir, "sort-spill-dir", "", "directory for spilled sort runs (default: OS temp dir)")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFormat, "log-format", "", "log format (console, json)")
	fs.BoolVar(&f.showVersion, "version", false, "print version information and exit")
	return f
}

// MaybePrintVersion prints the binary's build version and exits the process
// if --version was passed. Call this right after fs.Parse and before any
// other flag is consulted.
func (f *ConfigFlags) MaybePrintVersion(binaryName string) {
	if !f.showVersion {
		return
	}
	fmt.Printf("%s %s\n", binaryName, version.GetFullVersion())
	os.Exit(0)
}

// LoadEngineConfig loads config.EngineConfig from f's config/env files and
// environment, then applies any non-empty flag overrides, defaults, and
// validation, in that order — flags win over file/env, matching the
// precedence a CLI user expects.
func (f *ConfigFlags) LoadEngineConfig() (*config.EngineConfig, error) {
	var cfg config.EngineConfig
	if err := config.LoadConfig(&cfg,
		config.WithConfigFile(f.ConfigFile),
		config.WithEnvFile(f.EnvFile),
	); err != nil {
		return nil, fmt.Errorf("cliutil: loading config: %w", err)
	}

	if f.SortBufferRows != "" {
		cfg.SortBufferRows = f.SortBufferRows
	}
	if f.SpillDir != "" {
		cfg.SpillDir = f.SpillDir
	}
	if f.LogLevel != "" {
		cfg.Logging.Level = f.LogLevel
	}
	if f.LogFormat != "" {
		cfg.Logging.Format = f.LogFormat
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cliutil: invalid config: %w", err)
	}
	return &cfg, nil
}

// NewRunContext tags ctx with a freshly generated run ID, so every log line
// emitted during this Graph.Run can be correlated back to it via
// Logger.WithContext.
func NewRunContext(ctx context.Context) context.Context {
	return logger.WithRunID(ctx, uuid.NewString())
}

// SortOptions returns the extsort.Options described by cfg.
func SortOptions(cfg *config.EngineConfig) extsort.Options {
	return extsort.Options{BufferRows: cfg.SortBufferRowCount(), SpillDir: cfg.SpillDir}
}

// WriteRows drains it, writing one line-delimited JSON row per line to w.
func WriteRows(ctx context.Context, w *bufio.Writer, it ops.RowIterator, log *logger.Logger) (int, error) {
	defer func() {
		if cerr := it.Close(); cerr != nil {
			log.Warn("closing row iterator", map[string]interface{}{"error": cerr.Error()})
		}
	}()

	count := 0
	for {
		r, ok, err := it.Next(ctx)
		if err != nil {
			return count, fmt.Errorf("cliutil: reading output row %d: %w", count, err)
		}
		if !ok {
			break
		}
		line, err := rowio.WriteJSONLine(r)
		if err != nil {
			return count, fmt.Errorf("cliutil: encoding output row %d: %w", count, err)
		}
		if _, err := w.WriteString(line); err != nil {
			return count, fmt.Errorf("cliutil: writing output row %d: %w", count, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return count, fmt.Errorf("cliutil: writing output row %d: %w", count, err)
		}
		count++
	}
	return count, w.Flush()
}

// OpenOutput opens path for writing, truncating it, and wraps it in a
// buffered writer. The caller is responsible for closing the returned file
// after the writer has been flushed.
func OpenOutput(path string) (*os.File, *bufio.Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cliutil: create %s: %w", path, err)
	}
	return f, bufio.NewWriter(f), nil
}

// Fail logs err as a fatal error and exits the process with status 1. It is
// the top-level error path for every cmd/ main, mirroring the engine's
// structured-logging convention instead of a bare panic or Println.
func Fail(log *logger.Logger, msg string, err error) {
	log.WithError(err).Error(msg)
	os.Exit(1)
}
