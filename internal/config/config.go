package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/fundmap/internal/hierarchy"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// selects a nested key: FUNDMAP_CANVAS__WIDTH sets canvas.width.
const EnvPrefix = "FUNDMAP_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FUNDMAP_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataURL == "" && c.DataFile == "" {
		if c.Dataset == "" {
			return fmt.Errorf("one of dataset, data_url or data_file is required")
		}
		if _, ok := datasetPresets[c.Dataset]; !ok {
			return fmt.Errorf("invalid dataset %q: must be one of kickstarter, movies, videogames", c.Dataset)
		}
	}

	if c.Output == "" {
		return fmt.Errorf("output is required")
	}

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas width and height must be positive")
	}
	if c.Canvas.Padding < 0 {
		return fmt.Errorf("canvas padding must be non-negative")
	}

	// legend.Build replaces non-positive dimensions with its defaults, so a
	// zero here would be ignored.
	if c.Legend.Width <= 0 || c.Legend.Padding <= 0 || c.Legend.Spacing <= 0 {
		return fmt.Errorf("legend width, padding and spacing must be positive")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}

	if err := hierarchy.ValidatePatterns(c.Include); err != nil {
		return fmt.Errorf("include: %w", err)
	}
	if err := hierarchy.ValidatePatterns(c.Exclude); err != nil {
		return fmt.Errorf("exclude: %w", err)
	}

	return nil
}

// Source returns where the dataset should be read from. Exactly one of the
// results is non-empty: a local file takes precedence over an explicit URL,
// which takes precedence over the dataset preset.
func (c *Config) Source() (url, path string) {
	switch {
	case c.DataFile != "":
		return "", c.DataFile
	case c.DataURL != "":
		return c.DataURL, ""
	}
	p, _ := GetPreset(c.Dataset)
	return p.URL, ""
}

// Captions returns the page title and description, falling back to the
// dataset preset when they are not set.
func (c *Config) Captions() (title, description string) {
	p, _ := GetPreset(c.Dataset)
	title, description = c.Title, c.Description
	if title == "" {
		title = p.Title
	}
	if description == "" {
		description = p.Description
	}
	if title == "" {
		title = "Treemap"
	}
	return title, description
}
