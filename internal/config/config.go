// Package config loads and validates the converter settings.
//
// Settings come from Default, optionally overridden by a TOML file given on
// the command line. There is no implicit config location: without a file,
// the converter always behaves the same way.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/benoitkugler/sessionsvg/blob"
	"github.com/benoitkugler/sessionsvg/internal/logging"
)

const (
	defaultCanvasWidth  = 565
	defaultAspectWidth  = 16
	defaultAspectHeight = 9
	defaultByteOrder    = "little"
	defaultLogLevel     = "info"
	defaultLogFormat    = "auto"
)

// Canvas contains the SVG canvas sizing.
// The height is the largest y coordinate plus Width * AspectWidth / AspectHeight.
type Canvas struct {
	Width        int     `toml:"width"`
	AspectWidth  float64 `toml:"aspect_width"`
	AspectHeight float64 `toml:"aspect_height"`
}

// Decode contains the binary array settings.
type Decode struct {
	ByteOrder string `toml:"byte_order"` // little or big
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values.
type Config struct {
	Canvas  Canvas  `toml:"canvas"`
	Decode  Decode  `toml:"decode"`
	Logging Logging `toml:"logging"`
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Canvas: Canvas{
			Width:        defaultCanvasWidth,
			AspectWidth:  defaultAspectWidth,
			AspectHeight: defaultAspectHeight,
		},
		Decode: Decode{ByteOrder: defaultByteOrder},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load reads the TOML file at path on top of the defaults and validates
// the result. An empty path returns the defaults.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, fmt.Errorf("parse config: %s", strict.String())
			}
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 {
		return errors.New("canvas.width must be positive")
	}
	if c.Canvas.AspectWidth <= 0 || c.Canvas.AspectHeight <= 0 {
		return errors.New("canvas.aspect_width and canvas.aspect_height must be positive")
	}
	if _, err := blob.ParseByteOrder(c.Decode.ByteOrder); err != nil {
		return fmt.Errorf("decode.byte_order: %w", err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be auto, console or json, got %q", c.Logging.Format)
	}
	return nil
}

// AspectRatio returns the canvas height factor, AspectWidth / AspectHeight.
func (c Canvas) AspectRatio() float64 {
	return c.AspectWidth / c.AspectHeight
}
