package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given.
const DefaultConfigFile = "wu.toml"

// Config represents common configuration for CLI tools
type Config struct {
	Verbose     bool     `json:"verbose" toml:"verbose" yaml:"verbose"`
	Debug       bool     `json:"debug" toml:"debug" yaml:"debug"`
	LogFormat   string   `json:"log_format" toml:"log_format" yaml:"log_format"`       // text or json
	Color       string   `json:"color" toml:"color" yaml:"color"`                      // auto, always or never
	ModulePaths []string `json:"module_paths" toml:"module_paths" yaml:"module_paths"` // manifest search path
	Prelude     []string `json:"prelude" toml:"prelude" yaml:"prelude"`                // modules whose exports are visible everywhere
	TraceParser bool     `json:"trace_parser" toml:"trace_parser" yaml:"trace_parser"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		LogFormat:   "text",
		Color:       "auto",
		ModulePaths: []string{"."},
	}
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults. The format follows the extension: .toml, .yaml/.yml or .json.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(configPath)); ext {
	case ".toml":
		err = toml.Unmarshal(data, config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	case ".json":
		err = json.Unmarshal(data, config)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return config, nil
}

// Validate checks enumerated keys.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q (want text or json)", c.LogFormat)
	}
	switch strings.ToLower(c.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q (want auto, always or never)", c.Color)
	}
	return nil
}

// SaveConfig saves configuration to file in the format given by its
// extension.
func (c *Config) SaveConfig(configPath string) error {
	var (
		data []byte
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(configPath)); ext {
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
