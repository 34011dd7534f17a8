package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ShigekuniWork/ocypode/pkg/protocol"
	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "ocypode.toml"

	// DefaultRole is the codec role used when none is configured.
	DefaultRole = "server"

	// DefaultMaxFrameSize is the default largest accepted remaining length (1 MiB).
	DefaultMaxFrameSize = 1 << 20

	// DefaultInspectAddr is the default listen address of the inspection service.
	DefaultInspectAddr = "127.0.0.1:4280"

	// DefaultName is the default tracer name and metrics namespace.
	DefaultName = "ocypode"
)

// ErrNotFound is returned when no configuration file exists at the given path.
var ErrNotFound = errors.New("config: file not found")

// Config represents the complete ocypode.toml configuration.
type Config struct {
	// Role is the default codec role ("server" or "client").
	Role string `toml:"role"`

	// Limits bounds decoding.
	Limits LimitsConfig `toml:"limits"`

	// Log configures the process logger.
	Log LogConfig `toml:"log"`

	// Inspect configures the inspection HTTP service.
	Inspect InspectConfig `toml:"inspect"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LimitsConfig mirrors protocol.Limits.
type LimitsConfig struct {
	// MaxFrameSize is the largest accepted remaining length. 0 means no limit.
	MaxFrameSize uint32 `toml:"max_frame_size"`

	// Lenient ignores the declared remaining length when decoding.
	Lenient bool `toml:"lenient"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format"`
}

// InspectConfig configures the inspection service.
type InspectConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// TracerName names the tracer used for codec spans.
	TracerName string `toml:"tracer_name"`

	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace string `toml:"metrics_namespace"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Role: DefaultRole,
		Limits: LimitsConfig{
			MaxFrameSize: DefaultMaxFrameSize,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Inspect: InspectConfig{
			Addr:             DefaultInspectAddr,
			TracerName:       DefaultName,
			MetricsNamespace: DefaultName,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for ocypode.toml in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
// Keys missing from the file keep their defaults; unknown keys are an error.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
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
		return errors.New("config: no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	c.configPath = path
	return f.Close()
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for fields set to empty strings.
func (c *Config) applyDefaults() {
	c.Role = strings.ToLower(strings.TrimSpace(c.Role))
	if c.Role == "" {
		c.Role = DefaultRole
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Inspect.Addr == "" {
		c.Inspect.Addr = DefaultInspectAddr
	}
	if c.Inspect.TracerName == "" {
		c.Inspect.TracerName = DefaultName
	}
	if c.Inspect.MetricsNamespace == "" {
		c.Inspect.MetricsNamespace = DefaultName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := protocol.ParseRole(c.Role); err != nil {
		return fmt.Errorf("config: role: %w", err)
	}
	if c.Limits.MaxFrameSize > wire.MaxVarint {
		return fmt.Errorf("config: limits.max_frame_size %d exceeds %d", c.Limits.MaxFrameSize, wire.MaxVarint)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format %q is not text or json", c.Log.Format)
	}
	return nil
}

// CodecRole returns the configured role.
func (c *Config) CodecRole() protocol.Role {
	role, err := protocol.ParseRole(c.Role)
	if err != nil {
		return protocol.RoleServer
	}
	return role
}

// CodecLimits returns the configured decode limits.
func (c *Config) CodecLimits() protocol.Limits {
	return protocol.Limits{
		MaxFrameSize: c.Limits.MaxFrameSize,
		Lenient:      c.Limits.Lenient,
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the nearest ocypode.toml.
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
			return "", fmt.Errorf("%w: no %s in %s or any parent directory", ErrNotFound, ConfigFileName, startDir)
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest ocypode.toml above the working
// directory, or the defaults when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if errors.Is(err, ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(root)
}
