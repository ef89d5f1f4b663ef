// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/matcalc/format"
	"github.com/katalvlaran/matcalc/parse"
)

// ParseResult is the JSON payload of parse.
type ParseResult struct {
	Rows     [][]float64 `json:"rows"`
	Shape    [2]int      `json:"shape"`
	Warnings []string    `json:"warnings,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file|->",
		Short: "Check a matrix file and print it normalised",
		Long: `Parse a grid file and print the matrix it denotes.

Cells may be numbers ("2.5", "2,5", "-1e-3") or arithmetic ("1/4", "2^10").
With --policy coerce invalid cells become 0 and are listed as warnings;
with the default strict policy the first invalid cell is an error that
names its row and column.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}
}

func runParse(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	s, err := newSession(rootOpts, cmd)
	if err != nil {
		return err
	}
	text, err := s.readText(path)
	if err != nil {
		return s.fail(ErrCodeInput, ExitCommandError, err)
	}

	rows, warnings, err := parse.ParseGrid(text, s.policy)
	if err != nil {
		return s.fail(ErrCodeInput, ExitCommandError, fmt.Errorf("%s: %w", path, err))
	}

	res := ParseResult{Rows: rows, Shape: [2]int{len(rows), len(rows[0])}}
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d\n", res.Shape[0], res.Shape[1])
	b.WriteString(format.Matrix(rows, s.mode, s.fopts...))
	for _, w := range warnings {
		res.Warnings = append(res.Warnings, w.Error())
		fmt.Fprintf(&b, "%s: %v\n", s.out.Paint(color.YellowString, "warning"), w)
	}

	return s.out.Success(b.String(), res)
}
