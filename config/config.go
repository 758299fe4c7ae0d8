// Package config loads vecl CLI settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/sergev/vecl/parser"
	"github.com/sergev/vecl/render"
)

// EnvVar names the environment variable that overrides the config path.
const EnvVar = "VECL_CONFIG"

// Config holds the complete CLI configuration.
type Config struct {
	Parser ParserConfig `toml:"parser"`
	Output OutputConfig `toml:"output"`
	REPL   REPLConfig   `toml:"repl"`
	Log    LogConfig    `toml:"log"`
}

// ParserConfig holds grammar options.
type ParserConfig struct {
	Associativity string `toml:"associativity"`
}

// OutputConfig controls how parsed trees are printed.
type OutputConfig struct {
	Format    string `toml:"format"`
	Locations bool   `toml:"locations"`
	Color     *bool  `toml:"color"`
}

// REPLConfig holds interactive session settings.
type REPLConfig struct {
	HistoryFile        string `toml:"history_file"`
	Prompt             string `toml:"prompt"`
	ContinuationPrompt string `toml:"continuation_prompt"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a TOML file. The path may reference
// environment variables and a leading ~.
func Load(path string) (*Config, error) {
	path = expandPath(path)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault loads the file named by VECL_CONFIG, or the per-user default
// file. A missing per-user file yields the built-in defaults.
func LoadDefault() (*Config, string, error) {
	if path := os.Getenv(EnvVar); path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	path := DefaultPath()
	if path == "" {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// DefaultPath returns $HOME/.config/vecl/config.toml, or "" when there is no
// home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "vecl", "config.toml")
}

func (c *Config) applyDefaults() {
	if c.Parser.Associativity == "" {
		c.Parser.Associativity = parser.RightNested.String()
	}
	if c.Output.Format == "" {
		c.Output.Format = string(render.FormatSExpr)
	}
	if c.Output.Color == nil {
		enabled := true
		c.Output.Color = &enabled
	}
	if c.REPL.HistoryFile == "" {
		c.REPL.HistoryFile = "~/.vecl_history"
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "vecl> "
	}
	if c.REPL.ContinuationPrompt == "" {
		c.REPL.ContinuationPrompt = ".... "
	}
	if c.Log.Level == "" {
		c.Log.Level = logrus.WarnLevel.String()
	}
}

// Validate checks that every enumerated setting has a known value.
func (c *Config) Validate() error {
	if _, err := parser.ParseAssociativity(c.Parser.Associativity); err != nil {
		return err
	}
	if _, err := render.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Associativity returns the parsed parser.associativity setting.
func (c *Config) Associativity() parser.Associativity {
	a, _ := parser.ParseAssociativity(c.Parser.Associativity)
	return a
}

// Format returns the parsed output.format setting.
func (c *Config) Format() render.Format {
	f, _ := render.ParseFormat(c.Output.Format)
	return f
}

// ColorEnabled reports whether styled output is wanted.
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// HistoryPath returns the expanded REPL history file path, or "" when it
// cannot be resolved.
func (c *Config) HistoryPath() string {
	if c.REPL.HistoryFile == "" {
		return ""
	}
	path := expandPath(c.REPL.HistoryFile)
	if strings.HasPrefix(path, "~") {
		return ""
	}
	return path
}

func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
