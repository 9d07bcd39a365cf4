package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/compgraph/logger"
)

func TestEngineConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := EngineConfig{}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := EngineConfig{Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})

	t.Run("fills in default sort buffer", func(t *testing.T) {
		cfg := EngineConfig{}
		cfg.ApplyDefaults()
		if cfg.SortBufferRows == "" {
			t.Error("expected SortBufferRows to get a default")
		}
	})
}

func TestEngineConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     EngineConfig
		wantErr bool
		errMsg  string
	}{
		{
			"valid development",
			EngineConfig{Environment: "development", SortBufferRows: "1000", Logging: logger.Config{Level: "info", Format: "console"}},
			false, "",
		},
		{
			"invalid environment",
			EngineConfig{Environment: "invalid", SortBufferRows: "1000", Logging: logger.Config{Level: "info", Format: "console"}},
			true, "environment: must be one of",
		},
		{
			"non-positive sort buffer",
			EngineConfig{Environment: "production", SortBufferRows: "0", Logging: logger.Config{Level: "info", Format: "console"}},
			true, "config.sort_buffer_rows",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
environment: staging
sort_buffer_rows: "50000"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg EngineConfig
	if err := LoadConfig(&cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.SortBufferRows != "50000" {
		t.Errorf("expected sort_buffer_rows '50000', got %q", cfg.SortBufferRows)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg EngineConfig
	if err := LoadConfig(&cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestWithFileSystemOption(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
}

func TestWithConfigFileOption(t *testing.T) {
	var lc LoaderConfig
	WithConfigFile("/path/to/config.yml")(&lc)
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
}

func TestWithEnvFileOption(t *testing.T) {
	var lc LoaderConfig
	WithEnvFile("/path/to/.env")(&lc)
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}
