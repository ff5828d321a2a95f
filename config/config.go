// Package config loads and validates the YAML configuration file.
// Flags override file values; the file only needs to exist when the
// caller passes --config.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wisebayes/solstice-scrapegraph/core/harvest"
)

// Config holds the tunable settings for the parse pipeline.
type Config struct {
	// ChunkSize is the configured chunk size the mode-dependent budget
	// is derived from.
	ChunkSize int `yaml:"chunk_size"`

	// ImageExtensions overrides the extension set used to classify a
	// harvested URL as an image.
	ImageExtensions []string `yaml:"image_extensions"`

	// UserAgent is sent with every fetch request.
	UserAgent string `yaml:"user_agent"`

	// FetchTimeoutSeconds bounds each fetch request.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`

	// OutputDir is where rendered results are written.
	OutputDir string `yaml:"output_dir"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ChunkSize:           4096,
		ImageExtensions:     harvest.DefaultImageExtensions,
		FetchTimeoutSeconds: 30,
	}
}

// Load reads a YAML config file and fills unset fields from Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("fetch_timeout_seconds must be positive, got %d", c.FetchTimeoutSeconds)
	}
	for _, ext := range c.ImageExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("image extension %q must start with a dot", ext)
		}
	}
	return nil
}

// FetchTimeout returns the fetch timeout as a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
