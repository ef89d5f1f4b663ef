// SPDX-License-Identifier: MIT

// Package cli implements the matcalc command line.
//
// Matrices are read from files (or "-" for stdin) in the whitespace grid
// format of package parse: one row per line, cells separated by spaces,
// tabs or ';', each cell a number or a small arithmetic expression.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
// Empty strings mean "take the value from the config file".
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Mode       string // "fraction" | "decimal"
	Eps        string // pivot threshold, any parse cell ("1e-8", "1/1000")
	Policy     string // "strict" | "coerce"
	ConfigPath string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidPolicies defines the allowed invalid-cell policies.
var ValidPolicies = []string{"strict", "coerce"}

// NewRootCommand creates the root command for the matcalc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "matcalc",
		Short: "matcalc - dense matrix calculator",
		Long: `A calculator for small dense matrices: determinant, rank, inverse,
LU and PLU factorizations, row reduction, arithmetic, expressions and
linear systems with symbolic solutions for free variables.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !slices.Contains(ValidPolicies, opts.Policy) {
				return fmt.Errorf("invalid policy %q: must be one of %v", opts.Policy, ValidPolicies)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Mode, "mode", "", "number display (fraction|decimal); default from config")
	cmd.PersistentFlags().StringVar(&opts.Eps, "eps", "", "pivot threshold; default from config")
	cmd.PersistentFlags().StringVar(&opts.Policy, "policy", "strict", "invalid cells (strict|coerce)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $MATCALC_CONFIG or user config dir)")

	// Add subcommands
	cmd.AddCommand(NewDetCommand(opts))
	cmd.AddCommand(NewRankCommand(opts))
	cmd.AddCommand(NewInvCommand(opts))
	cmd.AddCommand(NewLUCommand(opts))
	cmd.AddCommand(NewPLUCommand(opts))
	cmd.AddCommand(NewRREFCommand(opts))
	cmd.AddCommand(NewTransposeCommand(opts))
	cmd.AddCommand(NewScaleCommand(opts))
	cmd.AddCommand(NewPowCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewSubCommand(opts))
	cmd.AddCommand(NewMulCommand(opts))
	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewRandomCommand(opts))

	return cmd
}
