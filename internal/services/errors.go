package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup by id finds no row.
var ErrNotFound = errors.New("record not found")

// ConstraintError reports a foreign key that does not resolve to a row.
type ConstraintError struct {
	Field string
	ID    uint
}

func (e *ConstraintError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s: referenced row does not exist", e.Field)
	}
	return fmt.Sprintf("%s: no row with id %d", e.Field, e.ID)
}
