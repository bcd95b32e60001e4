package weave

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-weave/images"
)

// Config holds the tunables of a combine run. It is usually read from a YAML file
// and then overridden by command-line flags.
type Config struct {
	// Resampler selects the exact-resize implementation ("nfnt" or "xdraw").
	Resampler images.Resampler `yaml:"resampler"`
	// MaxBufferBytes is the output container's reservation in bytes.
	MaxBufferBytes int `yaml:"max_buffer_bytes"`
	// EnforceCapacity rejects combined buffers larger than MaxBufferBytes. When
	// false the reservation is only an allocation hint.
	EnforceCapacity *bool `yaml:"enforce_capacity"`
	// JPEGQuality is used for JPEG output and lossy WebP output.
	JPEGQuality int `yaml:"jpeg_quality"`
	// WebPLossless selects lossless WebP output.
	WebPLossless *bool `yaml:"webp_lossless"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is one of auto, console, json.
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.Resampler == "" {
		c.Resampler = images.ResamplerNFNT
	}
	if c.MaxBufferBytes <= 0 {
		c.MaxBufferBytes = DefaultCapacity
	}
	if c.EnforceCapacity == nil {
		c.EnforceCapacity = boolPtr(true)
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		c.JPEGQuality = images.DefaultJPEGQuality
	}
	if c.WebPLossless == nil {
		c.WebPLossless = boolPtr(true)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "auto"
	}
	return c
}

// Validate checks values that defaults cannot repair.
func (c Config) Validate() error {
	if _, err := images.ParseResampler(string(c.Resampler)); err != nil {
		return err
	}
	if c.MaxBufferBytes > MaxCapacity {
		return errors.Errorf("max_buffer_bytes %d exceeds the %d byte limit", c.MaxBufferBytes, MaxCapacity)
	}
	return nil
}

// EncodeOptions derives the codec options from the config.
func (c Config) EncodeOptions() images.EncodeOptions {
	c = c.withDefaults()
	return images.EncodeOptions{
		JPEGQuality:  c.JPEGQuality,
		WebPLossless: *c.WebPLossless,
	}
}

// LoadConfig reads a YAML config file. An empty path or a missing file yields the
// defaults; a file that cannot be parsed is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}

	return cfg, nil
}

func boolPtr(v bool) *bool {
	return &v
}
