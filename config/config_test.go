package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergev/vecl/parser"
	"github.com/sergev/vecl/render"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if cfg.Associativity() != parser.RightNested {
		t.Errorf("Associativity() = %v, want right", cfg.Associativity())
	}
	if cfg.Format() != render.FormatSExpr {
		t.Errorf("Format() = %v, want sexpr", cfg.Format())
	}
	if !cfg.ColorEnabled() {
		t.Errorf("color should be enabled by default")
	}
	if cfg.REPL.Prompt != "vecl> " || cfg.REPL.ContinuationPrompt != ".... " {
		t.Errorf("unexpected prompts %q/%q", cfg.REPL.Prompt, cfg.REPL.ContinuationPrompt)
	}
	if cfg.Log.Level != "warning" {
		t.Errorf("Log.Level = %q, want warning", cfg.Log.Level)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[parser]
associativity = "left"

[output]
format = "yaml"
locations = true
color = false

[repl]
prompt = ">> "

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Associativity() != parser.LeftFolded {
		t.Errorf("Associativity() = %v, want left", cfg.Associativity())
	}
	if cfg.Format() != render.FormatYAML || !cfg.Output.Locations {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if cfg.ColorEnabled() {
		t.Errorf("color should be disabled")
	}
	if cfg.REPL.Prompt != ">> " {
		t.Errorf("Prompt = %q, want >> ", cfg.REPL.Prompt)
	}
	if cfg.REPL.ContinuationPrompt != ".... " {
		t.Errorf("missing keys should fall back to defaults, got %q", cfg.REPL.ContinuationPrompt)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "[parser\n", "failed to parse config"},
		{"associativity", "[parser]\nassociativity = \"middle\"\n", "unknown associativity"},
		{"format", "[output]\nformat = \"xml\"\n", "unknown output format"},
		{"level", "[log]\nlevel = \"loud\"\n", "not a valid logrus Level"},
		{"unknown key", "[output]\nfromat = \"json\"\n", "unknown config keys"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadDefaultUsesEnv(t *testing.T) {
	path := writeConfig(t, "[output]\nformat = \"json\"\n")
	t.Setenv(EnvVar, path)
	cfg, used, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault returned error: %v", err)
	}
	if used != path {
		t.Errorf("LoadDefault used %q, want %q", used, path)
	}
	if cfg.Format() != render.FormatJSON {
		t.Errorf("Format() = %v, want json", cfg.Format())
	}
}

func TestLoadDefaultWithoutFile(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv("HOME", t.TempDir())
	cfg, used, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault returned error: %v", err)
	}
	if used != "" {
		t.Errorf("expected no config file, got %q", used)
	}
	if cfg.Format() != render.FormatSExpr {
		t.Errorf("expected defaults, got format %v", cfg.Format())
	}
}

func TestHistoryPathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := Default()
	if got, want := cfg.HistoryPath(), filepath.Join(home, ".vecl_history"); got != want {
		t.Errorf("HistoryPath() = %q, want %q", got, want)
	}
	cfg.REPL.HistoryFile = "$HOME/hist"
	if got, want := cfg.HistoryPath(), filepath.Join(home, "hist"); got != want {
		t.Errorf("HistoryPath() = %q, want %q", got, want)
	}
}
