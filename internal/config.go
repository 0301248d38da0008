package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = "utgen.yaml"

// legacyToolPath is the default clicast location of a stock Windows install.
const legacyToolPath = `C:\VCAST\clicast.exe`

type Config struct {
	ToolPath string      `yaml:"tool_path"`
	LogLevel string      `yaml:"log_level"`
	History  bool        `yaml:"history"`
	Compound *bool       `yaml:"compound"` // nil: ask interactively
	Dirs     DirsConfig  `yaml:"dirs"`
	Watch    WatchConfig `yaml:"watch"`
}

type DirsConfig struct {
	Scripts string `yaml:"scripts"`
	Results string `yaml:"results"`
}

type WatchConfig struct {
	DebounceMs int      `yaml:"debounce_ms"`
	MaxWaitMs  int      `yaml:"max_wait_ms"`
	Patterns   []string `yaml:"patterns"`
}

// DefaultToolPath returns $VECTORCAST_DIR/clicast when the variable is set,
// otherwise the stock Windows install location.
func DefaultToolPath() string {
	if dir := os.Getenv("VECTORCAST_DIR"); dir != "" {
		name := "clicast"
		if runtime.GOOS == "windows" {
			name = "clicast.exe"
		}
		return filepath.Join(dir, name)
	}
	return legacyToolPath
}

// DefaultConfig returns a baseline configuration.
func DefaultConfig() Config {
	return Config{
		ToolPath: DefaultToolPath(),
		LogLevel: "info",
		History:  true,
		Dirs: DirsConfig{
			Scripts: "Unit_Tst",
			Results: "Results",
		},
		Watch: WatchConfig{
			DebounceMs: 1000,
			MaxWaitMs:  10000,
			Patterns:   []string{"*.vce"},
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the defaults.
// The document is checked against the config schema before decoding.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	result, err := ValidateConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("config: invalid %q:\n%s", path, FormatValidationErrors(result))
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults refills fields an explicit empty value cleared.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.ToolPath == "" {
		c.ToolPath = def.ToolPath
	}
	if c.Dirs.Scripts == "" {
		c.Dirs.Scripts = def.Dirs.Scripts
	}
	if c.Dirs.Results == "" {
		c.Dirs.Results = def.Dirs.Results
	}
	if c.Watch.DebounceMs <= 0 {
		c.Watch.DebounceMs = def.Watch.DebounceMs
	}
	if c.Watch.MaxWaitMs <= 0 {
		c.Watch.MaxWaitMs = def.Watch.MaxWaitMs
	}
	if len(c.Watch.Patterns) == 0 {
		c.Watch.Patterns = def.Watch.Patterns
	}
}

// PrettyYAML renders the configuration as YAML for diagnostics.
func (c Config) PrettyYAML() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", c)
	}
	return string(out)
}
