package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvConfig = "SUIKASIM_CONFIG"
	EnvPreset = "SUIKASIM_PRESET"
	EnvSeed   = "SUIKASIM_SEED"
	EnvTheme  = "SUIKASIM_THEME"
)

// Env holds the settings that can come from the environment or a .env file.
type Env struct {
	ConfigPath string
	Preset     string
	Seed       int64
	HasSeed    bool
	Theme      string
}

// LoadEnv loads the given dotenv files (".env" when none are given) without
// overriding variables already set, then reads the SUIKASIM_* variables.
// Missing dotenv files are not an error.
func LoadEnv(files ...string) (Env, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Env{}, fmt.Errorf("load env: %w", err)
	}

	env := Env{
		ConfigPath: os.Getenv(EnvConfig),
		Preset:     os.Getenv(EnvPreset),
		Theme:      os.Getenv(EnvTheme),
	}
	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Env{}, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, EnvSeed, s)
		}
		env.Seed = seed
		env.HasSeed = true
	}
	return env, nil
}

// Resolve builds the effective config: defaults, then preset, then file,
// then the environment seed. Flags are applied by the caller afterwards.
func Resolve(preset, path string, env Env) (*Config, error) {
	if preset == "" {
		preset = env.Preset
	}
	if path == "" {
		path = env.ConfigPath
	}

	cfg := DefaultConfig()
	if preset != "" {
		cfg = GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, ListPresets())
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg, err = Parse(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if env.HasSeed {
		cfg.Sim.Seed = env.Seed
	}
	return cfg, cfg.Validate()
}
