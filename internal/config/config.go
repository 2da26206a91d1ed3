package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/consolekit/internal/config/loader"
)

// Config loads Settings from defaults, an optional file and the
// environment.
type Config struct {
	path   string
	fs     loader.FileSystem
	env    *loader.EnvLoader
	useEnv bool
}

// Option is a functional option for configuring Config.
type Option func(*Config)

// WithPath sets the configuration file. The format follows the extension.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem sets the file system used to read the file.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvLoader replaces the environment loader.
func WithEnvLoader(env *loader.EnvLoader) Option {
	return func(c *Config) {
		c.env = env
	}
}

// WithoutEnv disables the environment layer.
func WithoutEnv() Option {
	return func(c *Config) {
		c.useEnv = false
	}
}

// New creates a new Config with the given options.
func New(opts ...Option) *Config {
	c := &Config{
		fs:     loader.DefaultFS(),
		env:    loader.NewEnvLoader(loader.DefaultPrefix),
		useEnv: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the configuration file path, or "" if there is none.
func (c *Config) Path() string {
	return c.path
}

// Load assembles and validates the settings.
func (c *Config) Load() (*Settings, error) {
	merged := make(map[string]any)

	if c.path != "" {
		if _, err := c.fs.Stat(c.path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, c.path)
			}
			return nil, err
		}
		fileLoader, err := loader.ForFile(c.fs, c.path)
		if err != nil {
			return nil, err
		}
		fileConfig, err := fileLoader.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileConfig)
	}

	if c.useEnv && c.env != nil {
		envConfig, err := c.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envConfig)
	}

	settings, err := decode(merged)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// decode overlays a merged map onto the default settings. The map is
// round-tripped through TOML so YAML, TOML and environment values share one
// decoder.
func decode(merged map[string]any) (*Settings, error) {
	settings := Default()
	if len(merged) == 0 {
		return settings, nil
	}

	data, err := toml.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, &loader.ParseError{Path: "<merged>", Message: err.Error(), Err: err}
	}
	return settings, nil
}
