package config

import (
	"fmt"

	"github.com/kbukum/compgraph/logger"
	"github.com/kbukum/compgraph/util"
	"github.com/kbukum/compgraph/validation"
)

// EngineConfig contains the settings a graph-engine binary needs to run:
// how much to buffer in memory before an external sort spills to disk,
// where to spill to, and the embedded logging configuration. CLI drivers
// (cmd/wordcount, cmd/invertedindex, …) load one of these via LoadConfig
// and pass it down to Graph.Run.
type EngineConfig struct {
	Environment string `yaml:"environment" mapstructure:"environment" validate:"required,oneof=development staging production"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	// SortBufferRows is the max number of rows ExternalSort holds in
	// memory per run before spilling to SpillDir. Accepts a plain row
	// count or a size string like "64MB"; both are parsed via
	// util.ParseSize and the result is used as the row count directly, so
	// a size string yields its byte count ("64MB" means 67108864 rows) —
	// no bytes-per-row estimate is applied.
	SortBufferRows string `yaml:"sort_buffer_rows" mapstructure:"sort_buffer_rows" validate:"required"`

	// SpillDir is the directory external sort writes run files to.
	// Defaults to os.TempDir() if empty.
	SpillDir string `yaml:"spill_dir" mapstructure:"spill_dir"`

	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills in unset fields with sensible defaults. Call this
// once after LoadConfig and before Validate.
func (c *EngineConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.SortBufferRows == "" {
		c.SortBufferRows = "100000"
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = "compgraph"
	}
	c.Logging.ApplyDefaults()
}

// Validate checks that the configuration is internally consistent. It runs
// the struct-tag checks (required fields, environment enum) first, then the
// domain checks a tag can't express: the parsed sort-buffer size and the
// embedded logging config.
func (c *EngineConfig) Validate() error {
	if err := validation.Validate(*c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.SortBufferRowCount() <= 0 {
		return fmt.Errorf("config.sort_buffer_rows: must be positive, got %q", c.SortBufferRows)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// SortBufferRowCount parses SortBufferRows into a row count, accepting
// either a plain integer ("100000") or a human-readable size string
// ("64MB") via util.ParseSize. Falls back to the 100000-row default if the
// configured value cannot be parsed.
func (c *EngineConfig) SortBufferRowCount() int {
	return int(util.ParseSize(c.SortBufferRows, 100000))
}
