package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/TriM-Organization/bedrock-structure-editor/library"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfig names the config file when no path is given.
	EnvConfig = "MCSTRUCTURE_CONFIG"
	// EnvLibrary names the library path when the config file leaves it empty.
	EnvLibrary = "MCSTRUCTURE_LIBRARY"

	DefaultLibraryPath = "structures.db"
	DefaultExportName  = "output.mcstructure"
	DefaultLogLevel    = "info"
)

// Config is the root of the config file.
type Config struct {
	Library LibraryConfig `yaml:"library"`
	Log     LogConfig     `yaml:"log"`
	Export  ExportConfig  `yaml:"export"`
}

// LibraryConfig says where and how the structure library is opened.
type LibraryConfig struct {
	Path       string `yaml:"path"`
	Backend    string `yaml:"backend"`
	NoSync     bool   `yaml:"no_sync"`
	NoGrowSync bool   `yaml:"no_grow_sync"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ExportConfig struct {
	// DefaultName is used when a command writes a structure
	// and no output path was given.
	DefaultName string `yaml:"default_name"`
}

// Default returns the config used when no file is given.
func Default() *Config {
	cfg := new(Config)
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML config file at path.
// If path is empty, it tries the file named by MCSTRUCTURE_CONFIG,
// and returns Default when that is empty too.
//
// Fields the file leaves empty get their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %v", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("Load: %s: %v", path, err)
	}
	cfg.applyDefaults()

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("Load: %s: %w", path, err)
	}
	return &cfg, nil
}

// applyDefaults fills empty fields. The library path comes from
// MCSTRUCTURE_LIBRARY before falling back to DefaultLibraryPath.
func (c *Config) applyDefaults() {
	if c.Library.Path == "" {
		c.Library.Path = os.Getenv(EnvLibrary)
	}
	if c.Library.Path == "" {
		c.Library.Path = DefaultLibraryPath
	}
	if c.Library.Backend == "" {
		c.Library.Backend = string(library.BackendBolt)
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Export.DefaultName == "" {
		c.Export.DefaultName = DefaultExportName
	}
}

// Validate reports fields that hold an unknown value.
func (c *Config) Validate() error {
	switch library.Backend(c.Library.Backend) {
	case library.BackendBolt, library.BackendLevelDB, library.BackendBadger:
	default:
		return fmt.Errorf("Validate: unknown library backend %q", c.Library.Backend)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("Validate: %w", err)
	}
	return nil
}

// LibraryOptions returns the options to open the library with.
func (c *Config) LibraryOptions(logger *pterm.Logger) library.Options {
	return library.Options{
		Backend:    library.Backend(c.Library.Backend),
		NoSync:     c.Library.NoSync,
		NoGrowSync: c.Library.NoGrowSync,
		Logger:     logger,
	}
}

// Logger returns a pterm logger at the configured level.
func (c *Config) Logger() *pterm.Logger {
	level, err := ParseLogLevel(c.Log.Level)
	if err != nil {
		level = pterm.LogLevelInfo
	}
	return pterm.DefaultLogger.WithLevel(level)
}

// ParseLogLevel maps a level name to its pterm level.
func ParseLogLevel(name string) (pterm.LogLevel, error) {
	switch strings.ToLower(name) {
	case "trace":
		return pterm.LogLevelTrace, nil
	case "debug":
		return pterm.LogLevelDebug, nil
	case "info":
		return pterm.LogLevelInfo, nil
	case "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	case "off", "disabled":
		return pterm.LogLevelDisabled, nil
	}
	return pterm.LogLevelInfo, fmt.Errorf("ParseLogLevel: unknown log level %q", name)
}
