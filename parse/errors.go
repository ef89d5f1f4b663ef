// SPDX-License-Identifier: MIT

package parse

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNumber is matched (errors.Is) by every *InvalidNumberError.
	ErrInvalidNumber = errors.New("parse: invalid number")

	// ErrRaggedRows is returned by ParseGrid when rows have different cell counts.
	ErrRaggedRows = errors.New("parse: rows have different lengths")

	// ErrEmptyGrid is returned by ParseGrid when the text holds no cells.
	ErrEmptyGrid = errors.New("parse: empty grid")

	// ErrNotVector is returned by ParseVector for grids wider and taller than one.
	ErrNotVector = errors.New("parse: not a vector")
)

// InvalidNumberError reports a cell that has no numeric interpretation.
// Row and Col are zero-based; both are -1 for a cell parsed without position.
type InvalidNumberError struct {
	Text string
	Row  int
	Col  int
	Err  error // underlying cause (syntax, non-finite result, ...)
}

func (e *InvalidNumberError) Error() string {
	msg := fmt.Sprintf("parse: invalid number %q", e.Text)
	if e.Row >= 0 && e.Col >= 0 {
		// one-based for people reading the message
		msg += fmt.Sprintf(" at row %d, col %d", e.Row+1, e.Col+1)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is makes errors.Is(err, ErrInvalidNumber) hold for every InvalidNumberError.
func (e *InvalidNumberError) Is(target error) bool { return target == ErrInvalidNumber }

func (e *InvalidNumberError) Unwrap() error { return e.Err }
