package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override values read from the configuration file.
const (
	EnvAssetsDir = "ANIMA_ASSETS_DIR"
	EnvScene     = "ANIMA_SCENE"
	EnvLogLevel  = "ANIMA_LOG_LEVEL"
	EnvManifest  = "ANIMA_MANIFEST"
	EnvWidth     = "ANIMA_WIDTH"
	EnvHeight    = "ANIMA_HEIGHT"
)

type Config struct {
	// Root directory every asset path is resolved against.
	AssetsDir string `toml:"assets_dir"`
	// Scene id loaded at startup, relative to AssetsDir and without extension.
	Scene string `toml:"scene"`
	// Directory holding the .glslv/.glslf pairs, relative to AssetsDir.
	ShaderDir string `toml:"shader_dir"`
	Width     uint32 `toml:"width"`
	Height    uint32 `toml:"height"`
	LogLevel  string `toml:"log_level"`
	// Optional preload manifest, relative to AssetsDir.
	Manifest string `toml:"manifest"`
	// Manifest group requested before the scene is loaded.
	PreloadGroup string `toml:"preload_group"`
}

func DefaultConfig() *Config {
	return &Config{
		AssetsDir: ".",
		Scene:     "data/vika",
		ShaderDir: "shader",
		Width:     1280,
		Height:    720,
		LogLevel:  "info",
	}
}

// LoadConfig reads a TOML file on top of the defaults, then applies the
// environment (optionally populated from envFile). A missing file at either
// path is not an error.
func LoadConfig(path string, envFile string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			LogDebug("config file %s not found, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvAssetsDir); ok {
		c.AssetsDir = v
	}
	if v, ok := os.LookupEnv(EnvScene); ok {
		c.Scene = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvManifest); ok {
		c.Manifest = v
	}
	for env, dst := range map[string]*uint32{EnvWidth: &c.Width, EnvHeight: &c.Height} {
		v, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a positive integer", ErrInvalidConfig, env, v)
		}
		*dst = uint32(n)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.AssetsDir == "" {
		return fmt.Errorf("%w: assets_dir must not be empty", ErrInvalidConfig)
	}
	if c.Scene == "" {
		return fmt.Errorf("%w: scene must not be empty", ErrInvalidConfig)
	}
	if c.ShaderDir == "" {
		return fmt.Errorf("%w: shader_dir must not be empty", ErrInvalidConfig)
	}
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("%w: width and height must be > 0, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.PreloadGroup != "" && c.Manifest == "" {
		return fmt.Errorf("%w: preload_group %q set without a manifest", ErrInvalidConfig, c.PreloadGroup)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() LogLevel {
	l, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return LogLevelInfo
	}
	return l
}
