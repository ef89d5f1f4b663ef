// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/matcalc/format"
	"github.com/katalvlaran/matcalc/matrix"
)

// ScalarResult is the JSON payload of det and rank.
type ScalarResult struct {
	Op      string  `json:"op"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// MatrixResult is the JSON payload of commands returning one matrix.
type MatrixResult struct {
	Op   string      `json:"op"`
	Rows [][]float64 `json:"rows"`
}

// LUResult is the JSON payload of lu and plu. P, Perm and Swaps are set by plu only.
type LUResult struct {
	Op    string      `json:"op"`
	P     [][]float64 `json:"p,omitempty"`
	L     [][]float64 `json:"l"`
	U     [][]float64 `json:"u"`
	Perm  []int       `json:"perm,omitempty"`
	Swaps int         `json:"swaps,omitempty"`
}

// EchelonResult is the JSON payload of rref.
type EchelonResult struct {
	Op     string      `json:"op"`
	Rows   [][]float64 `json:"rows"`
	Pivots []int       `json:"pivots"`
	Rank   int         `json:"rank"`
}

// unaryCommand builds a command taking one matrix file.
func unaryCommand(rootOpts *RootOptions, use, short, long string, run func(s *session, m *matrix.Dense) error) *cobra.Command {
	return &cobra.Command{
		Use:           use + " <file|->",
		Short:         short,
		Long:          long,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			m, err := s.readMatrix(args[0])
			if err != nil {
				return err
			}
			return run(s, m)
		},
	}
}

// binaryCommand builds a command taking two matrix files.
func binaryCommand(rootOpts *RootOptions, use, short string, op func(a, b matrix.Matrix) (matrix.Matrix, error)) *cobra.Command {
	return &cobra.Command{
		Use:           use + " <a> <b>",
		Short:         short,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			if args[0] == "-" && args[1] == "-" {
				return s.fail(ErrCodeInput, ExitCommandError, fmt.Errorf("only one operand can be read from stdin"))
			}
			a, err := s.readMatrix(args[0])
			if err != nil {
				return err
			}
			b, err := s.readMatrix(args[1])
			if err != nil {
				return err
			}
			res, err := compute(s, use, func() (matrix.Matrix, error) { return op(a, b) })
			if err != nil {
				return err
			}
			return s.outputMatrix(use, res)
		},
	}
}

func (s *session) outputMatrix(op string, m matrix.Matrix) error {
	return s.out.Success(s.grid(m), MatrixResult{Op: op, Rows: rowsOf(m)})
}

func (s *session) outputScalar(op string, v float64) error {
	display := s.number(v)
	return s.out.Success(display+"\n", ScalarResult{Op: op, Value: v, Display: display})
}

// NewDetCommand creates the det command.
func NewDetCommand(rootOpts *RootOptions) *cobra.Command {
	return unaryCommand(rootOpts, "det", "Determinant of a square matrix",
		"Determinant by Gaussian elimination with partial pivoting; 0 when a pivot falls below --eps.",
		func(s *session, m *matrix.Dense) error {
			d, err := compute(s, "det", func() (float64, error) { return matrix.Determinant(m, s.mopts...) })
			if err != nil {
				return err
			}
			return s.outputScalar("det", d)
		})
}

// NewRankCommand creates the rank command.
func NewRankCommand(rootOpts *RootOptions) *cobra.Command {
	return unaryCommand(rootOpts, "rank", "Rank of a matrix",
		"Number of pivots of the row-echelon form; pivots below --eps count as zero.",
		func(s *session, m *matrix.Dense) error {
			r, err := compute(s, "rank", func() (int, error) { return matrix.Rank(m, s.mopts...) })
			if err != nil {
				return err
			}
			return s.outputScalar("rank", float64(r))
		})
}

// NewInvCommand creates the inv command.
func NewInvCommand(rootOpts *RootOptions) *cobra.Command {
	return unaryCommand(rootOpts, "inv", "Inverse of a square matrix",
		"Gauss-Jordan inverse; fails with a singular-matrix error when a pivot falls below --eps.",
		func(s *session, m *matrix.Dense) error {
			inv, err := compute(s, "inv", func() (matrix.Matrix, error) { return matrix.Inverse(m, s.mopts...) })
			if err != nil {
				return err
			}
			return s.outputMatrix("inv", inv)
		})
}

// NewTransposeCommand creates the transpose command.
func NewTransposeCommand(rootOpts *RootOptions) *cobra.Command {
	return unaryCommand(rootOpts, "transpose", "Transpose of a matrix", "",
		func(s *session, m *matrix.Dense) error {
			t, err := compute(s, "transpose", func() (matrix.Matrix, error) { return matrix.Transpose(m) })
			if err != nil {
				return err
			}
			return s.outputMatrix("transpose", t)
		})
}

// NewLUCommand creates the lu command.
func NewLUCommand(rootOpts *RootOptions) *cobra.Command {
	return unaryCommand(rootOpts, "lu", "Doolittle LU factorization without pivoting",
		`Factors A = L·U with unit lower-triangular L. No rows are exchanged, so a
vanishing leading minor fails even for invertible A; use plu for those.`,
		func(s *session, m *matrix.Dense) error {
			res, err := compute(s, "lu", func() (matrix.LUResult, error) { return matrix.LU(m, s.mopts...) })
			if err != nil {
				return err
			}
			var b strings.Builder
			b.WriteString("L =\n" + s.grid(res.L))
			b.WriteString("U =\n" + s.grid(res.U))
			return s.out.Success(b.String(), LUResult{Op: "lu", L: rowsOf(res.L), U: rowsOf(res.U)})
		})
}

// NewPLUCommand creates the plu command.
func NewPLUCommand(rootOpts *RootOptions) *cobra.Command {
	return unaryCommand(rootOpts, "plu", "LU factorization with partial pivoting",
		"Factors P·A = L·U choosing the largest pivot in each column.",
		func(s *session, m *matrix.Dense) error {
			res, err := compute(s, "plu", func() (matrix.PLUResult, error) { return matrix.PLU(m, s.mopts...) })
			if err != nil {
				return err
			}
			var b strings.Builder
			b.WriteString("P =\n" + s.grid(res.P))
			b.WriteString("L =\n" + s.grid(res.L))
			b.WriteString("U =\n" + s.grid(res.U))
			fmt.Fprintf(&b, "swaps = %d\n", res.Swaps)
			return s.out.Success(b.String(), LUResult{
				Op: "plu", P: rowsOf(res.P), L: rowsOf(res.L), U: rowsOf(res.U),
				Perm: res.Perm, Swaps: res.Swaps,
			})
		})
}

// NewRREFCommand creates the rref command.
func NewRREFCommand(rootOpts *RootOptions) *cobra.Command {
	var refOnly bool
	cmd := unaryCommand(rootOpts, "rref", "Reduced row-echelon form",
		"Gauss-Jordan reduction with partial pivoting; --ref stops at row-echelon form.",
		func(s *session, m *matrix.Dense) error {
			reduce := matrix.ReducedRowEchelon
			if refOnly {
				reduce = matrix.RowEchelon
			}
			ech, err := compute(s, "rref", func() (matrix.Echelon, error) { return reduce(m, s.mopts...) })
			if err != nil {
				return err
			}
			names := make([]string, len(ech.Pivots))
			for i, p := range ech.Pivots {
				names[i] = format.VarName(p)
			}
			text := s.grid(ech.M) + fmt.Sprintf("rank = %d, pivots: %s\n", ech.Rank(), strings.Join(names, ", "))
			return s.out.Success(text, EchelonResult{Op: "rref", Rows: rowsOf(ech.M), Pivots: ech.Pivots, Rank: ech.Rank()})
		})
	cmd.Flags().BoolVar(&refOnly, "ref", false, "row-echelon form only (no back elimination)")

	return cmd
}

// NewScaleCommand creates the scale command.
func NewScaleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "scale <file|-> <k>",
		Short:         "Multiply every entry by a scalar",
		Long:          "k uses the cell grammar (\"-2\", \"1/3\"). Flags go before the file.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			m, err := s.readMatrix(args[0])
			if err != nil {
				return err
			}
			k, err := s.parseScalar("k", args[1])
			if err != nil {
				return err
			}
			res, err := compute(s, "scale", func() (matrix.Matrix, error) { return matrix.Scale(m, k) })
			if err != nil {
				return err
			}
			return s.outputMatrix("scale", res)
		},
	}
	// "scale a.txt -2": stop flag parsing at the first argument.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// NewPowCommand creates the pow command.
func NewPowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pow <file|-> <p>",
		Short:         "Integer power of a square matrix",
		Long:          "A^p by repeated squaring; p = 0 gives I and negative p inverts first. Flags go before the file.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			m, err := s.readMatrix(args[0])
			if err != nil {
				return err
			}
			p, err := s.parseInt("p", args[1])
			if err != nil {
				return err
			}
			res, err := compute(s, "pow", func() (matrix.Matrix, error) { return matrix.Power(m, p, s.mopts...) })
			if err != nil {
				return err
			}
			return s.outputMatrix("pow", res)
		},
	}
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return binaryCommand(rootOpts, "add", "Element-wise sum A + B", matrix.Add)
}

// NewSubCommand creates the sub command.
func NewSubCommand(rootOpts *RootOptions) *cobra.Command {
	return binaryCommand(rootOpts, "sub", "Element-wise difference A - B", matrix.Sub)
}

// NewMulCommand creates the mul command.
func NewMulCommand(rootOpts *RootOptions) *cobra.Command {
	return binaryCommand(rootOpts, "mul", "Matrix product A · B", matrix.Mul)
}
