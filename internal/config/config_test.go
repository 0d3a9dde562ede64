package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nao1215/htmlmend/internal/escape"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default File is index.html", func(t *testing.T) {
		t.Parallel()
		if cfg.File != "index.html" {
			t.Errorf("expected File to be 'index.html', got '%s'", cfg.File)
		}
	})

	t.Run("default markers", func(t *testing.T) {
		t.Parallel()
		if !strings.HasPrefix(cfg.StartMarker, "function marquerLivraisonReussie() {\n") {
			t.Errorf("unexpected start marker %q", cfg.StartMarker)
		}
		if cfg.EndMarker != "async function marquerLivraisonEchouee()" {
			t.Errorf("unexpected end marker %q", cfg.EndMarker)
		}
		if cfg.KeepStart {
			t.Error("expected KeepStart to be false by default")
		}
	})

	t.Run("default Top is 50", func(t *testing.T) {
		t.Parallel()
		if cfg.Top != 50 {
			t.Errorf("expected Top to be 50, got %d", cfg.Top)
		}
	})

	t.Run("default Width is 20", func(t *testing.T) {
		t.Parallel()
		if cfg.Width != 20 {
			t.Errorf("expected Width to be 20, got %d", cfg.Width)
		}
	})

	t.Run("strict decoding by default", func(t *testing.T) {
		t.Parallel()
		if cfg.Lenient {
			t.Error("expected Lenient to be false by default")
		}
	})

	t.Run("nine default sequences", func(t *testing.T) {
		t.Parallel()
		if len(cfg.Probes) != 9 {
			t.Fatalf("expected 9 probes, got %d", len(cfg.Probes))
		}
		for _, p := range cfg.Probes {
			decoded, err := escape.Unescape(p)
			if err != nil {
				t.Fatalf("default probe %q does not decode: %v", p, err)
			}
			if utf8.RuneCountInString(decoded) != 2 || !strings.HasPrefix(decoded, "Ô") {
				t.Errorf("unexpected probe %q", decoded)
			}
		}
	})

	t.Run("default sequences are a copy", func(t *testing.T) {
		t.Parallel()
		other := NewConfig()
		other.Probes[0] = "changed"
		if DefaultProbes[0] == "changed" {
			t.Error("expected NewConfig to copy DefaultProbes")
		}
	})
}

// TestConfigValidate tests every validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid config returns nil", mutate: func(_ *Config) {}},
		{name: "empty file", mutate: func(c *Config) { c.File = "" }, wantErr: ErrNoFile},
		{name: "empty start marker", mutate: func(c *Config) { c.StartMarker = "" }, wantErr: ErrEmptyStartMarker},
		{name: "empty end marker", mutate: func(c *Config) { c.EndMarker = "" }, wantErr: ErrEmptyEndMarker},
		{name: "zero width", mutate: func(c *Config) { c.Width = 0 }, wantErr: ErrInvalidWidth},
		{name: "negative top", mutate: func(c *Config) { c.Top = -1 }, wantErr: ErrInvalidTop},
		{name: "zero top lists everything", mutate: func(c *Config) { c.Top = 0 }},
		{
			name:    "json and markdown",
			mutate:  func(c *Config) { c.JSONReport, c.MarkdownReport = true, true },
			wantErr: ErrConflictingReportFormats,
		},
		{name: "tee without output", mutate: func(c *Config) { c.Tee = true }, wantErr: ErrTeeWithoutOutput},
		{name: "tee with output", mutate: func(c *Config) { c.Tee, c.ReportFile = true, "report.json" }},
		{name: "json log format", mutate: func(c *Config) { c.LogFormat = LogFormatJSON }},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestLoadConfigFile tests loading YAML configuration.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.htmlmend")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".htmlmend")
		content := `document: public/index.html
lenient: true
logFormat: json
strip:
  start: "<!-- begin legacy -->"
  end: "<!-- end legacy -->"
  keepStart: true
pairs:
  top: 0
seq:
  width: 10
  probes:
    - '\xc3\xa9'
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		file, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		file.Apply(cfg)

		if cfg.File != "public/index.html" {
			t.Errorf("expected document path, got %q", cfg.File)
		}
		if !cfg.Lenient {
			t.Error("expected lenient decoding")
		}
		if cfg.StartMarker != "<!-- begin legacy -->" || cfg.EndMarker != "<!-- end legacy -->" {
			t.Errorf("unexpected markers %q / %q", cfg.StartMarker, cfg.EndMarker)
		}
		if !cfg.KeepStart {
			t.Error("expected keepStart to be applied")
		}
		if cfg.LogFormat != LogFormatJSON {
			t.Errorf("expected log format %q, got %q", LogFormatJSON, cfg.LogFormat)
		}
		if cfg.Top != 0 {
			t.Errorf("expected explicit top 0 to be applied, got %d", cfg.Top)
		}
		if cfg.Width != 10 {
			t.Errorf("expected width 10, got %d", cfg.Width)
		}
		if len(cfg.Probes) != 1 || cfg.Probes[0] != `\xc3\xa9` {
			t.Errorf("unexpected probes %v", cfg.Probes)
		}
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".htmlmend")
		if err := os.WriteFile(configPath, []byte("{}\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		file, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		file.Apply(cfg)
		if cfg.Top != DefaultTop || cfg.Width != DefaultWidth || cfg.StartMarker != DefaultStartMarker {
			t.Errorf("expected defaults to survive, got %+v", cfg)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".htmlmend")
		content := `invalid: yaml: content: [}`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("finds config in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		t.Chdir(dir)

		result := FindConfigFile("")
		if filepath.Base(result) != DefaultConfigFile {
			t.Errorf("expected config in cwd, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if dir := XDGDataDir(); !strings.HasSuffix(dir, AppName) {
		t.Errorf("expected XDG data dir to end with %q, got %q", AppName, dir)
	}
	if dir := XDGConfigDir(); !strings.HasSuffix(dir, AppName) {
		t.Errorf("expected XDG config dir to end with %q, got %q", AppName, dir)
	}
}
