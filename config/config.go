// SPDX-License-Identifier: MIT

// Package config loads matcalc settings from a YAML file.
//
// Every key is optional; keys left out keep their defaults, and a missing
// file yields Default(). Unknown keys are rejected so that typos such as
// "epsilion:" fail loudly instead of being ignored.
//
//	epsilon: 1e-10          # pivot / rank threshold
//	display_mode: fraction  # fraction | decimal
//	max_denominator: 1000   # largest q printed as p/q
//	precision: 4            # decimal digits
//	max_dim: 6              # upper bound for generated examples
//	timeout: 5s             # per-command wait bound
//	log_level: info         # debug | info | warn | error
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/matcalc/format"
	"github.com/katalvlaran/matcalc/matrix"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Defaults.
const (
	DefaultMaxDim  = 6
	DefaultTimeout = 5 * time.Second
	FileName       = "config.yaml"
	EnvPath        = "MATCALC_CONFIG"
)

// Config holds the user-tunable settings.
type Config struct {
	Epsilon        float64       `yaml:"epsilon"`
	DisplayMode    format.Mode   `yaml:"display_mode"`
	MaxDenominator int           `yaml:"max_denominator"`
	Precision      int           `yaml:"precision"`
	MaxDim         int           `yaml:"max_dim"`
	Timeout        time.Duration `yaml:"timeout"`
	LogLevel       slog.Level    `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Epsilon:        matrix.DefaultEpsilon,
		DisplayMode:    format.Fraction,
		MaxDenominator: format.DefaultMaxDenominator,
		Precision:      format.DefaultPrecision,
		MaxDim:         DefaultMaxDim,
		Timeout:        DefaultTimeout,
		LogLevel:       slog.LevelInfo,
	}
}

// DefaultPath returns $MATCALC_CONFIG when set, else
// <user config dir>/matcalc/config.yaml. It returns "" when neither can be
// determined.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "matcalc", FileName)
}

// Load reads path on top of Default(). An empty path or a file that does
// not exist yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of Default() and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) || c.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon %v must be finite and > 0", ErrInvalid, c.Epsilon)
	case c.DisplayMode != format.Fraction && c.DisplayMode != format.Decimal:
		return fmt.Errorf("%w: display_mode %v", ErrInvalid, c.DisplayMode)
	case c.MaxDenominator < 1:
		return fmt.Errorf("%w: max_denominator %d must be ≥ 1", ErrInvalid, c.MaxDenominator)
	case c.Precision < 0 || c.Precision > 17:
		return fmt.Errorf("%w: precision %d must be in [0, 17]", ErrInvalid, c.Precision)
	case c.MaxDim < 1:
		return fmt.Errorf("%w: max_dim %d must be ≥ 1", ErrInvalid, c.MaxDim)
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout %v must be ≥ 0", ErrInvalid, c.Timeout)
	}

	return nil
}

// MatrixOptions returns the kernel options implied by c.
func (c Config) MatrixOptions() []matrix.Option {
	return []matrix.Option{matrix.WithEpsilon(c.Epsilon)}
}

// FormatOptions returns the rendering options implied by c.
func (c Config) FormatOptions() []format.Option {
	return []format.Option{
		format.WithMaxDenominator(c.MaxDenominator),
		format.WithPrecision(c.Precision),
	}
}
