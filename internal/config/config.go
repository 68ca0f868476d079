// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/Vandesm14/stack-server/internal/constants"
)

// Engine kinds accepted in [engine].kind.
const (
	EngineStack  = "stack"
	EngineShell  = "shell"
	EngineRemote = "remote"
)

// Config is the root configuration structure.
type Config struct {
	LogLevel string       `toml:"log_level"`
	Device   DeviceConfig `toml:"device"`
	Engine   EngineConfig `toml:"engine"`
	Server   ServerConfig `toml:"server"`
	UI       UIConfig     `toml:"ui"`
}

// DeviceConfig holds the display geometry.
type DeviceConfig struct {
	WrapWidth    int    `toml:"wrap_width"`
	WindowHeight int    `toml:"window_height"`
	InitialText  string `toml:"initial_text"`
}

// EngineConfig selects the execution backend used in Run mode.
type EngineConfig struct {
	Kind      string `toml:"kind"`
	Endpoint  string `toml:"endpoint"`
	TimeoutMS int    `toml:"timeout_ms"`
	ShellDir  string `toml:"shell_dir"`
}

// Timeout returns the run budget as a duration.
func (e EngineConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutMS) * time.Millisecond
}

// Cacheable reports whether the engine's results depend only on the source,
// so the server may reuse them.
func (e EngineConfig) Cacheable() bool {
	return e.Kind == EngineStack
}

// ServerConfig holds the HTTP backend settings.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	MaxConns      int    `toml:"max_conns"`
	CachePath     string `toml:"cache_path"`
	CacheTTLHours int    `toml:"cache_ttl_hours"`
}

// CacheTTL returns the result cache lifetime.
func (s ServerConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLHours) * time.Hour
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma style used to colour the device cells.
	SyntaxTheme string `toml:"syntax_theme"`
	// Language is the Chroma lexer used to classify the cells. Empty picks
	// one from the engine kind.
	Language string `toml:"language"`
}

// Default returns the reference device configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Device: DeviceConfig{
			WrapWidth:    constants.WrapWidth,
			WindowHeight: constants.WindowHeight,
			InitialText:  constants.InitialText,
		},
		Engine: EngineConfig{
			Kind:      EngineStack,
			TimeoutMS: int(constants.RunTimeout / time.Millisecond),
		},
		Server: ServerConfig{
			Addr:          constants.ServerAddr,
			MaxConns:      64,
			CacheTTLHours: 24,
		},
		UI: UIConfig{
			SyntaxTheme: constants.SyntaxTheme,
		},
	}
}

// Load reads configuration from a TOML file on top of the defaults and
// applies environment variable overrides. A missing file is not an error;
// a file that exists but does not parse is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Device.WrapWidth < 1 {
		errs = append(errs, fmt.Errorf("device.wrap_width=%d must be at least 1", c.Device.WrapWidth))
	}
	if c.Device.WindowHeight < 1 {
		errs = append(errs, fmt.Errorf("device.window_height=%d must be at least 1", c.Device.WindowHeight))
	}

	switch c.Engine.Kind {
	case EngineStack, EngineShell:
	case EngineRemote:
		if c.Engine.Endpoint == "" {
			errs = append(errs, errors.New("engine.endpoint is required for the remote engine"))
		} else if err := validateEndpoint(c.Engine.Endpoint); err != nil {
			errs = append(errs, fmt.Errorf("engine.endpoint=%q is invalid: %v", c.Engine.Endpoint, err))
		}
	default:
		errs = append(errs, fmt.Errorf("engine.kind=%q must be one of %s, %s, %s",
			c.Engine.Kind, EngineStack, EngineShell, EngineRemote))
	}
	if c.Engine.TimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("engine.timeout_ms=%d must not be negative", c.Engine.TimeoutMS))
	}

	if c.Server.MaxConns < 0 {
		errs = append(errs, fmt.Errorf("server.max_conns=%d must not be negative", c.Server.MaxConns))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level=%q is invalid: %v", c.LogLevel, err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Level returns the parsed log level, info when unset.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func validateEndpoint(value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("missing scheme or host")
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"STACK_ENGINE", func(v string) {
			if v != "" {
				cfg.Engine.Kind = strings.ToLower(v)
			}
		}},
		{"STACK_ENDPOINT", func(v string) {
			if v != "" {
				cfg.Engine.Endpoint = v
			}
		}},
		{"STACK_ADDR", func(v string) {
			if v != "" {
				cfg.Server.Addr = v
			}
		}},
		{"STACK_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.LogLevel = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the data directory (~/.config/stack-server).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "stack-server"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPath returns the config file path inside the data directory.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
