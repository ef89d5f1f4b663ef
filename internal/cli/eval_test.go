// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval_Golden(t *testing.T) {
	cases := []struct {
		golden string
		args   []string
	}{
		{"eval", []string{"eval", "-m", "A=testdata/a.txt", "-m", "B=testdata/b.txt", "A + 4*B"}},
		{"eval_session", []string{"eval", "-m", "A=testdata/a.txt", "-m", "B=testdata/b.txt",
			"C = A*B", "det(C)", "2*inv(ans)"}},
	}

	for _, tc := range cases {
		t.Run(tc.golden, func(t *testing.T) {
			out, _, err := execute(t, "", tc.args...)
			require.NoError(t, err)
			newGoldie(t).Assert(t, tc.golden, []byte(out))
		})
	}
}

func TestEval_Scalar(t *testing.T) {
	out, _, err := execute(t, "", "eval", "-m", "A=testdata/a.txt", "det(A)")
	require.NoError(t, err)
	assert.Equal(t, "-2\n", out)

	out, _, err = execute(t, "", "eval", "1/4 + 1/4")
	require.NoError(t, err)
	assert.Equal(t, "1/2\n", out)
}

func TestEval_Stdin(t *testing.T) {
	out, _, err := execute(t, "2 0\n0 2\n", "eval", "-m", "M=-", "M^3")
	require.NoError(t, err)
	assert.Equal(t, "8  0\n0  8\n", out)

	out, _, err = execute(t, "1\n", "eval", "-m", "A=-", "-m", "B=-", "A+B")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E001]")
}

func TestEval_JSON(t *testing.T) {
	out, _, err := execute(t, "", "eval", "--format", "json", "-m", "A=testdata/a.txt", "T(A)", "trace(A)")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   EvalResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Entries, 2)

	first, second := resp.Data.Entries[0], resp.Data.Entries[1]
	assert.Equal(t, "r1", first.Label)
	assert.Equal(t, "T(A)", first.Expr)
	assert.Equal(t, [][]float64{{1, 3}, {2, 4}}, first.Rows)
	assert.Nil(t, first.Scalar)
	_, err = uuid.Parse(first.ID)
	require.NoError(t, err)

	assert.Equal(t, "r2", second.Label)
	require.NotNil(t, second.Scalar)
	assert.InDelta(t, 5, *second.Scalar, 1e-9)
	assert.Nil(t, second.Rows)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestEval_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code string
		exit int
	}{
		{"unknown matrix", []string{"eval", "-m", "A=testdata/a.txt", "A + Z"}, ErrCodeExpression, ExitFailure},
		{"unsupported", []string{"eval", "-m", "A=testdata/a.txt", "A == A"}, ErrCodeExpression, ExitFailure},
		{"shape", []string{"eval", "-m", "A=testdata/a.txt", "-m", "W=testdata/wide.txt", "A + W"}, ErrCodeShape, ExitFailure},
		{"singular", []string{"eval", "-m", "S=testdata/singular.txt", "inv(S)"}, ErrCodeSingular, ExitFailure},
		{"bad binding", []string{"eval", "-m", "testdata/a.txt", "A"}, ErrCodeInput, ExitCommandError},
		{"unreadable binding", []string{"eval", "-m", "A=testdata/nope.txt", "A"}, ErrCodeInput, ExitCommandError},
		{"scalar is not bound", []string{"eval", "-m", "A=testdata/a.txt", "d = det(A)", "d * A"}, ErrCodeExpression, ExitFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := execute(t, "", tc.args...)
			require.Error(t, err)
			assert.Equal(t, tc.exit, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tc.code+"]")
		})
	}
}
