// Package config resolves the tutorial settings from built-in defaults,
// .env files and the process environment. Command line flags are applied
// on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix starts every environment variable read by FromEnv.
const EnvPrefix = "GLTUT_"

// Config holds every setting shared by the demos.
type Config struct {
	Width     int
	Height    int
	Title     string
	ShaderDir string // empty means the embedded shaders
	ScenePath string // empty means the embedded scene
	VSync     bool
	Watch     bool // reload shaders from ShaderDir when they change
	LogLevel  slog.Level
}

// Default matches the window of the original tutorials.
func Default() Config {
	return Config{
		Width:    800,
		Height:   600,
		Title:    "OpenGL",
		VSync:    true,
		LogLevel: slog.LevelInfo,
	}
}

// Validate checks settings that cannot work together.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Watch && c.ShaderDir == "" {
		errs = append(errs, errors.New("config: watching shaders needs a shader directory"))
	}
	return errors.Join(errs...)
}

// Load reads the given .env files, skipping missing ones, and then the
// process environment, which wins over any file. Earlier files win over
// later ones.
func Load(files ...string) (Config, error) {
	dotenv := make(map[string]string)
	for _, file := range files {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", file, err)
		}
		for k, v := range values {
			if _, ok := dotenv[k]; !ok {
				dotenv[k] = v
			}
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	return FromEnv(Default(), lookup)
}

// FromEnv overrides fields of base with the GLTUT_* variables found by
// lookup. Every malformed value is reported.
func FromEnv(base Config, lookup func(string) (string, bool)) (Config, error) {
	c := base
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	flag := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	num("WIDTH", &c.Width)
	num("HEIGHT", &c.Height)
	str("TITLE", &c.Title)
	str("SHADERS", &c.ShaderDir)
	str("SCENE", &c.ScenePath)
	flag("VSYNC", &c.VSync)
	flag("WATCH", &c.Watch)

	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("config: %sLOG_LEVEL: %w", EnvPrefix, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return base, err
	}
	return c, nil
}
