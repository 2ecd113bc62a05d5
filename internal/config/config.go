// Package config loads the letter CLI configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the file read when no --config flag is given. A missing
// default file is not an error.
const DefaultPath = "letter.toml"

// Output formats understood by the render package.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Config holds the complete CLI configuration
type Config struct {
	Output OutputConfig `toml:"output"`
	Tokens TokensConfig `toml:"tokens"`
	Log    LogConfig    `toml:"log"`
}

// OutputConfig controls how ASTs and tokens are printed
type OutputConfig struct {
	Format string `toml:"format"`
	Indent int    `toml:"indent"`
}

// TokensConfig controls the token listing. It shares output.indent.
type TokensConfig struct {
	Format string `toml:"format"`
}

// LogConfig controls diagnostic logging on stderr
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Format: FormatJSON, Indent: 2},
		Tokens: TokensConfig{Format: FormatText},
		Log:    LogConfig{Level: "warn"},
	}
}

// Load reads path, fills unset keys from Default and validates the result.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads path when it is set, otherwise DefaultPath if that file
// exists, otherwise Default().
func LoadDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultPath); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(DefaultPath)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := validFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if err := validFormat(c.Tokens.Format); err != nil {
		return fmt.Errorf("tokens.format: %w", err)
	}
	if c.Output.Indent < 0 {
		return fmt.Errorf("output.indent: must not be negative, got %d", c.Output.Indent)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func validFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML, FormatText:
		return nil
	}
	return fmt.Errorf("unknown format %q (want json, yaml or text)", format)
}

// SlogLevel converts the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("unknown level %q", l.Level)
	}
	return lvl, nil
}
