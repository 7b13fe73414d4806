package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/shadow/internal/errors"
	"github.com/vango-dev/shadow/pkg/reactive"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "shadowctl.json"

	// DefaultFormat is the default output format.
	DefaultFormat = "json"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "warn"

	// DefaultDiffContext is the default number of context lines in text diffs.
	DefaultDiffContext = 3
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the shadowctl.json configuration.
type Config struct {
	// Schema is the path to the default schema file.
	Schema string `json:"schema,omitempty"`

	// Format is the output format for documents: "json" or "yaml".
	Format string `json:"format,omitempty"`

	// Color controls colored output: "auto", "always" or "never".
	Color string `json:"color,omitempty"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `json:"logLevel,omitempty"`

	// MaxFlushPasses bounds re-runs within one reactive flush.
	MaxFlushPasses int `json:"maxFlushPasses,omitempty"`

	// DiffContext is the number of unchanged lines shown around text
	// diff hunks.
	DiffContext int `json:"diffContext,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Format:         DefaultFormat,
		Color:          ColorAuto,
		LogLevel:       DefaultLogLevel,
		MaxFlushPasses: reactive.DefaultMaxFlushPasses,
		DiffContext:    DefaultDiffContext,
	}
}

// Load reads configuration from the specified directory.
// It looks for shadowctl.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("S300").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithPath(path)
		}
		return nil, errors.New("S301").Wrap(err).WithPath(path)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("S301").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON").
			WithPath(path)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("S301").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("S301").Wrap(err).WithPath(path)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.MaxFlushPasses == 0 {
		c.MaxFlushPasses = reactive.DefaultMaxFlushPasses
	}
	if c.DiffContext == 0 {
		c.DiffContext = DefaultDiffContext
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Format {
	case "json", "yaml":
	default:
		return invalid("format", c.Format, `"json" or "yaml"`)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return invalid("color", c.Color, `"auto", "always" or "never"`)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return invalid("logLevel", c.LogLevel, `"debug", "info", "warn" or "error"`)
	}
	if c.MaxFlushPasses < 1 {
		return errors.New("S302").
			WithDetail("maxFlushPasses must be at least 1").
			WithPath("maxFlushPasses")
	}
	if c.DiffContext < 0 {
		return errors.New("S302").
			WithDetail("diffContext must not be negative").
			WithPath("diffContext")
	}
	return nil
}

func invalid(field, value, want string) error {
	return errors.New("S302").
		WithDetailf("%s is %q, want %s", field, value, want).
		WithPath(field)
}

// SchemaPath returns the absolute path to the schema file, or "" when
// none is configured.
func (c *Config) SchemaPath() string {
	if c.Schema == "" {
		return ""
	}
	if filepath.IsAbs(c.Schema) {
		return c.Schema
	}
	return filepath.Join(c.Dir(), c.Schema)
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing shadowctl.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("S300").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromDir loads the nearest configuration at or above dir. When no
// file exists it returns the defaults.
func LoadFromDir(dir string) (*Config, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		if errors.HasCode(err, "S300") {
			return New(), nil
		}
		return nil, err
	}
	return Load(root)
}
