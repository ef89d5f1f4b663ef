// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/matcalc/matrix"
)

// RandomOptions holds random-specific flags.
type RandomOptions struct {
	Seed uint64
	Min  int
	Max  int
}

// NewRandomCommand creates the random command.
func NewRandomCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RandomOptions{}

	cmd := &cobra.Command{
		Use:   "random <rows> <cols>",
		Short: "Print a random integer matrix to practise on",
		Long: `Print a rows×cols matrix of random integers in [--min, --max] in the
grid format every other command reads. Both dimensions are bounded by
max_dim from the config file. The same --seed always gives the same matrix.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRandom(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().IntVar(&opts.Min, "min", -9, "smallest value")
	cmd.Flags().IntVar(&opts.Max, "max", 9, "largest value")

	return cmd
}

func runRandom(rootOpts *RootOptions, opts *RandomOptions, args []string, cmd *cobra.Command) error {
	s, err := newSession(rootOpts, cmd)
	if err != nil {
		return err
	}
	r, err := s.parseInt("rows", args[0])
	if err != nil {
		return err
	}
	c, err := s.parseInt("cols", args[1])
	if err != nil {
		return err
	}
	if limit := s.cfg.MaxDim; r < 1 || c < 1 || r > limit || c > limit {
		return s.fail(ErrCodeConfig, ExitCommandError, fmt.Errorf("size %dx%d outside 1..%d (max_dim)", r, c, limit))
	}
	if opts.Min > opts.Max {
		return s.fail(ErrCodeConfig, ExitCommandError, fmt.Errorf("--min %d > --max %d", opts.Min, opts.Max))
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	s.log.Debug("random matrix", "rows", r, "cols", c, "seed", seed)
	rng := rand.New(rand.NewPCG(seed, seed))

	span := opts.Max - opts.Min + 1
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = make([]float64, c)
		for j := range rows[i] {
			rows[i][j] = float64(opts.Min + rng.IntN(span))
		}
	}

	m, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return s.fail(ErrCodeGeneric, ExitFailure, err)
	}

	return s.outputMatrix("random", m)
}
