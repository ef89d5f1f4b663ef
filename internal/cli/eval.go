// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/matcalc/calc"
	"github.com/katalvlaran/matcalc/history"
	"github.com/katalvlaran/matcalc/matrix"
)

// AnsName is bound to the most recent matrix result during eval.
const AnsName = "ans"

var (
	assignment = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=([^=].*)$`)
	binding    = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=(.+)$`)
)

// EvalOptions holds eval-specific flags.
type EvalOptions struct {
	Matrices []string // "A=path" bindings
}

// EvalEntry is one evaluated expression in the JSON payload of eval.
type EvalEntry struct {
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Expr   string      `json:"expr"`
	Rows   [][]float64 `json:"rows,omitempty"`
	Scalar *float64    `json:"scalar,omitempty"`
}

// EvalResult is the JSON payload of eval.
type EvalResult struct {
	Entries []EvalEntry `json:"entries"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <expr>...",
		Short: "Evaluate matrix expressions",
		Long: `Evaluate one or more matrix expressions over named matrices.

Bind matrices with -m NAME=file. Operators: + - * / ^ (** too), unary -.
Functions: ` + strings.Join(calc.Functions(), ", ") + `.

Expressions run in order. "C = A*B" binds the result to C for the
following expressions; every matrix result is also available as "ans".

  matcalc eval -m A=a.txt -m B=b.txt "A + 4*B" "inv(ans)" "det(A)"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Matrices, "matrix", "m", nil, "bind a matrix: NAME=file (repeatable)")

	return cmd
}

func runEval(rootOpts *RootOptions, opts *EvalOptions, exprs []string, cmd *cobra.Command) error {
	s, err := newSession(rootOpts, cmd)
	if err != nil {
		return err
	}

	env := make(map[string]matrix.Matrix, len(opts.Matrices)+1)
	stdinUsed := false
	for _, b := range opts.Matrices {
		m := binding.FindStringSubmatch(b)
		if m == nil {
			return s.fail(ErrCodeInput, ExitCommandError, fmt.Errorf("-m %q: want NAME=file", b))
		}
		if m[2] == "-" {
			if stdinUsed {
				return s.fail(ErrCodeInput, ExitCommandError, fmt.Errorf("only one matrix can be read from stdin"))
			}
			stdinUsed = true
		}
		if env[m[1]], err = s.readMatrix(m[2]); err != nil {
			return err
		}
	}

	h := history.New()
	for i, src := range exprs {
		label, body := "r"+strconv.Itoa(i+1), src
		if m := assignment.FindStringSubmatch(src); m != nil {
			label, body = m[1], m[2]
		}

		v, err := compute(s, "eval", func() (calc.Value, error) { return calc.Eval(body, env, s.mopts...) })
		if err != nil {
			return err
		}
		e := h.Add(label, strings.TrimSpace(body), v)
		s.log.Debug("evaluated", "id", e.ID, "label", label, "matrix", v.IsMatrix())

		if v.IsMatrix() {
			env[label] = v.Matrix
			env[AnsName] = v.Matrix
		}
	}

	return s.outputHistory(h, len(exprs) == 1 && !assignment.MatchString(exprs[0]))
}

// outputHistory prints every entry; bare prints a lone result without its label.
func (s *session) outputHistory(h *history.History, bare bool) error {
	var (
		b   strings.Builder
		res EvalResult
	)
	for _, e := range h.All() {
		v := e.Result.(calc.Value)
		entry := EvalEntry{ID: e.ID.String(), Label: e.Label, Expr: e.Op}
		if v.IsMatrix() {
			entry.Rows = rowsOf(v.Matrix)
			if !bare {
				b.WriteString(e.Label + " =\n")
			}
			b.WriteString(s.grid(v.Matrix))
		} else {
			x := v.Scalar
			entry.Scalar = &x
			if !bare {
				b.WriteString(e.Label + " = ")
			}
			b.WriteString(s.number(x) + "\n")
		}
		res.Entries = append(res.Entries, entry)
	}

	return s.out.Success(b.String(), res)
}
