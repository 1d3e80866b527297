package ledger

import (
	"errors"
	"strings"
)

var (
	ErrNotFound  = errors.New("transaction not found")
	ErrForbidden = errors.New("you do not have permission to modify this transaction")
)

// ValidationError carries every problem found in one input.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, ", ")
}

func (e *ValidationError) add(problem string) {
	e.Problems = append(e.Problems, problem)
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
