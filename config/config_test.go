// SPDX-License-Identifier: MIT

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/matcalc/config"
	"github.com/katalvlaran/matcalc/format"
	"github.com/katalvlaran/matcalc/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, matrix.DefaultEpsilon, cfg.Epsilon)
	assert.Equal(t, format.Fraction, cfg.DisplayMode)
	assert.Equal(t, 1000, cfg.MaxDenominator)
	assert.Equal(t, 4, cfg.Precision)
	assert.Equal(t, 6, cfg.MaxDim)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`epsilon: 1e-8
display_mode: decimal
precision: 6
timeout: 250ms
log_level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-8, cfg.Epsilon)
	assert.Equal(t, format.Decimal, cfg.DisplayMode)
	assert.Equal(t, 6, cfg.Precision)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	// untouched keys keep defaults
	assert.Equal(t, 1000, cfg.MaxDenominator)
	assert.Equal(t, 6, cfg.MaxDim)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{"unknown key", "epsilion: 1e-9\n", false},
		{"bad mode", "display_mode: latex\n", false},
		{"bad duration", "timeout: soon\n", false},
		{"negative epsilon", "epsilon: -1\n", true},
		{"zero epsilon", "epsilon: 0\n", true},
		{"zero denominator", "max_denominator: 0\n", true},
		{"precision too high", "precision: 18\n", true},
		{"zero max dim", "max_dim: 0\n", true},
		{"negative timeout", "timeout: -1s\n", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.yaml))
			require.Error(t, err)
			if tc.invalid {
				assert.ErrorIs(t, err, config.ErrInvalid)
			}
		})
	}
}

func TestDefaultPath_Env(t *testing.T) {
	t.Setenv(config.EnvPath, "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", config.DefaultPath())
}

func TestOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Epsilon = 1e-3
	cfg.Precision = 2

	o := matrix.NewMatrixOptions(cfg.MatrixOptions()...)
	assert.Equal(t, 1e-3, o.Epsilon())
	assert.Equal(t, "0.33", format.Number(1.0/3.0, format.Decimal, cfg.FormatOptions()...))
}
