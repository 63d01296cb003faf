package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingParty    = errors.New("missing_party")
	ErrNoValidLines    = errors.New("no_valid_lines")
	ErrInvalidType     = errors.New("invalid_document_type")
	ErrNotFound        = errors.New("document_not_found")
	ErrDuplicateNumber = errors.New("duplicate_document_number")
)

// InvalidLineError points at the first named line missing a positive
// quantity or price. Row is 1-based to match the grid the operator sees.
type InvalidLineError struct {
	Row   int
	Field string
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("invalid_line: row %d has no valid %s", e.Row, e.Field)
}
