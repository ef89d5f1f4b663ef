// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/matcalc/format"
	"github.com/katalvlaran/matcalc/linsys"
	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/parse"
)

// SolveOptions holds solve-specific flags.
type SolveOptions struct {
	RHS    string   // file holding b; when empty the input is [A|b]
	Params []string // "x2=3" assignments for free variables
}

// SolveResult is the JSON payload of solve.
type SolveResult struct {
	linsys.Solution
	Display string    `json:"display"`
	Point   []float64 `json:"point,omitempty"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{}

	cmd := &cobra.Command{
		Use:   "solve <file|->",
		Short: "Solve a linear system A·x = b",
		Long: `Classify and solve A·x = b.

The input is the augmented matrix [A | b], or A alone with --rhs naming a
file that holds b as a single row or column. The answer is unique,
inconsistent, or infinite; an infinite family is printed with every
variable written in terms of the free ones. --param x2=3 picks one point
of the family.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RHS, "rhs", "", "file holding the right-hand side b")
	cmd.Flags().StringArrayVar(&opts.Params, "param", nil, "free variable value, e.g. x2=3 (repeatable)")

	return cmd
}

func runSolve(rootOpts *RootOptions, opts *SolveOptions, path string, cmd *cobra.Command) error {
	s, err := newSession(rootOpts, cmd)
	if err != nil {
		return err
	}

	aug, err := s.readAugmented(path, opts.RHS)
	if err != nil {
		return err
	}
	params, err := s.parseParams(opts.Params, aug.Cols()-1)
	if err != nil {
		return err
	}

	sol, err := compute(s, "solve", func() (linsys.Solution, error) { return linsys.Solve(aug, s.mopts...) })
	if err != nil {
		return err
	}
	s.log.Debug("system classified", "kind", sol.Kind, "rank_a", sol.RankA, "rank_aug", sol.RankAug)

	display := sol.Render(s.mode, s.fopts...)
	res := SolveResult{Solution: sol, Display: display}
	if len(params) > 0 && sol.Kind == linsys.Infinite {
		res.Point = sol.Evaluate(params)
		display += "at " + formatParams(params, sol.Free) + ": " + format.Vector(res.Point, s.mode, s.fopts...) + "\n"
	}
	if x := sol.Evaluate(params); x != nil {
		if r, rerr := linsys.Residual(aug, x); rerr == nil {
			s.out.VerboseLog("residual max|A·x - b| = %g", r)
		}
	}

	header, rest, _ := strings.Cut(display, "\n")
	return s.out.Success(s.out.Paint(verdictColor(sol.Kind), header)+"\n"+rest, res)
}

// readAugmented reads [A|b] from one file, or A and b from two.
func (s *session) readAugmented(path, rhs string) (*matrix.Dense, error) {
	a, err := s.readMatrix(path)
	if err != nil || rhs == "" {
		return a, err
	}

	text, err := s.readText(rhs)
	if err != nil {
		return nil, s.fail(ErrCodeInput, ExitCommandError, err)
	}
	b, warnings, err := parse.ParseVector(text, s.policy)
	s.warn(rhs, warnings)
	if err != nil {
		return nil, s.fail(ErrCodeInput, ExitCommandError, fmt.Errorf("%s: %w", rhs, err))
	}

	rows, err := matrix.ToRows(a)
	if err != nil {
		return nil, s.fail(ErrCodeInput, ExitCommandError, err)
	}
	if len(b) != len(rows) {
		err = fmt.Errorf("A has %d rows, b has %d values: %w", len(rows), len(b), matrix.ErrDimensionMismatch)
		return nil, s.fail(ErrCodeShape, ExitFailure, err)
	}
	for i := range rows {
		rows[i] = append(rows[i], b[i])
	}
	aug, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, s.fail(ErrCodeInput, ExitCommandError, err)
	}

	return aug, nil
}

// parseParams turns ["x2=3", "x4=1/2"] into {1: 3, 3: 0.5}.
func (s *session) parseParams(params []string, n int) (map[int]float64, error) {
	out := make(map[int]float64, len(params))
	for _, p := range params {
		name, value, ok := strings.Cut(p, "=")
		var j int
		if ok {
			_, err := fmt.Sscanf(strings.TrimSpace(name), "x%d", &j)
			ok = err == nil && j >= 1 && j <= n
		}
		if !ok {
			return nil, s.fail(ErrCodeInput, ExitCommandError, fmt.Errorf("--param %q: want xN=value with 1 ≤ N ≤ %d", p, n))
		}
		v, err := s.parseScalar(name, value)
		if err != nil {
			return nil, err
		}
		out[j-1] = v
	}

	return out, nil
}

func formatParams(params map[int]float64, free []int) string {
	parts := make([]string, 0, len(free))
	for _, j := range free {
		parts = append(parts, fmt.Sprintf("%s=%g", format.VarName(j), params[j]))
	}

	return strings.Join(parts, ", ")
}

func verdictColor(k linsys.Kind) func(string, ...any) string {
	switch k {
	case linsys.Unique:
		return color.GreenString
	case linsys.Infinite:
		return color.YellowString
	default:
		return color.RedString
	}
}
