// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/matcalc/calc"
	"github.com/katalvlaran/matcalc/config"
	"github.com/katalvlaran/matcalc/format"
	"github.com/katalvlaran/matcalc/linsys"
	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/parse"
	"github.com/katalvlaran/matcalc/worker"
)

// session is the resolved state of one command invocation: config file
// merged with flags, output, logger and input source.
type session struct {
	cfg    config.Config
	mode   format.Mode
	policy parse.Policy
	mopts  []matrix.Option
	fopts  []format.Option

	out *OutputFormatter
	log *slog.Logger
	in  io.Reader
	ctx context.Context
}

// newSession loads the config file and applies flag overrides.
// Failures are already reported through the formatter.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	s := &session{
		out: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
			Verbose:   opts.Verbose,
		},
		in:  cmd.InOrStdin(),
		ctx: cmd.Context(),
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, s.fail(ErrCodeConfig, ExitCommandError, err)
	}

	if opts.Mode != "" {
		if cfg.DisplayMode, err = format.ParseMode(opts.Mode); err != nil {
			return nil, s.fail(ErrCodeConfig, ExitCommandError, err)
		}
	}
	if opts.Eps != "" {
		eps, perr := parse.ParseCell(opts.Eps)
		if perr != nil {
			return nil, s.fail(ErrCodeConfig, ExitCommandError, fmt.Errorf("--eps: %w", perr))
		}
		cfg.Epsilon = eps
	}
	if err = cfg.Validate(); err != nil {
		return nil, s.fail(ErrCodeConfig, ExitCommandError, err)
	}

	switch opts.Policy {
	case "", "strict":
		s.policy = parse.Strict
	case "coerce":
		s.policy = parse.CoerceZero
	default:
		return nil, s.fail(ErrCodeConfig, ExitCommandError, fmt.Errorf("invalid policy %q: must be one of %v", opts.Policy, ValidPolicies))
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = slog.LevelDebug
	}
	s.log = slog.New(slog.NewTextHandler(s.out.GetErrWriter(), &slog.HandlerOptions{Level: level}))

	s.cfg = cfg
	s.mode = cfg.DisplayMode
	s.mopts = cfg.MatrixOptions()
	s.fopts = cfg.FormatOptions()
	s.log.Debug("session ready", "config", path, "mode", s.mode, "eps", cfg.Epsilon, "policy", s.policy)

	return s, nil
}

// readText returns the contents of path, or of stdin for "-".
func (s *session) readText(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(s.in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readMatrix reads and parses one grid file. Coerced cells are logged.
func (s *session) readMatrix(path string) (*matrix.Dense, error) {
	text, err := s.readText(path)
	if err != nil {
		return nil, s.fail(ErrCodeInput, ExitCommandError, err)
	}
	m, warnings, err := parse.ParseMatrix(text, s.policy)
	s.warn(path, warnings)
	if err != nil {
		return nil, s.fail(ErrCodeInput, ExitCommandError, fmt.Errorf("%s: %w", path, err))
	}
	s.out.VerboseLog("read %s: %dx%d", path, m.Rows(), m.Cols())

	return m, nil
}

func (s *session) warn(path string, warnings []error) {
	for _, w := range warnings {
		s.log.Warn("invalid cell replaced by 0", "file", path, "error", w)
	}
}

// parseScalar parses a command-line scalar argument with the cell grammar.
func (s *session) parseScalar(name, text string) (float64, error) {
	v, err := parse.ParseCell(text)
	if err != nil {
		return 0, s.fail(ErrCodeInput, ExitCommandError, fmt.Errorf("%s: %w", name, err))
	}
	return v, nil
}

// parseInt parses a command-line integer argument.
func (s *session) parseInt(name, text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, s.fail(ErrCodeInput, ExitCommandError, fmt.Errorf("%s: %q is not an integer", name, text))
	}
	return v, nil
}

// compute runs job on a worker bounded by the configured timeout and
// reports failures.
func compute[T any](s *session, name string, job func() (T, error)) (T, error) {
	v, err := worker.Run(s.ctx, job,
		worker.WithName(name),
		worker.WithTimeout(s.cfg.Timeout),
		worker.WithLogger(s.log),
	)
	if err != nil {
		code, exit := classify(err)
		return v, s.fail(code, exit, err)
	}
	return v, nil
}

// fail prints err through the formatter and returns the matching ExitError.
func (s *session) fail(code string, exit int, err error) error {
	if ferr := s.out.Error(code, err.Error(), nil); ferr != nil {
		return WrapExitError(ExitFailure, "write output", ferr)
	}
	return WrapExitError(exit, code, err)
}

// classify maps kernel errors to an error code and exit status.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrCodeTimeout, ExitFailure
	case errors.Is(err, matrix.ErrSingular):
		return ErrCodeSingular, ExitFailure
	case errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrNonSquare),
		errors.Is(err, matrix.ErrInvalidDimensions),
		errors.Is(err, matrix.ErrBadShape),
		errors.Is(err, linsys.ErrNotAugmented):
		return ErrCodeShape, ExitFailure
	case errors.Is(err, calc.ErrUnknownMatrix),
		errors.Is(err, calc.ErrUnsupported),
		errors.Is(err, calc.ErrDivisionByZero):
		return ErrCodeExpression, ExitFailure
	case errors.Is(err, parse.ErrInvalidNumber):
		return ErrCodeInput, ExitCommandError
	default:
		return ErrCodeGeneric, ExitFailure
	}
}

// rowsOf converts m for output. Every matrix reaching here is well formed.
func rowsOf(m matrix.Matrix) [][]float64 {
	rows, err := matrix.ToRows(m)
	if err != nil {
		return nil
	}
	return rows
}

// number renders x with the session's display settings.
func (s *session) number(x float64) string {
	return format.Number(x, s.mode, s.fopts...)
}

// grid renders m with the session's display settings.
func (s *session) grid(m matrix.Matrix) string {
	return format.Matrix(rowsOf(m), s.mode, s.fopts...)
}
