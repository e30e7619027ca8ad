package repositories

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist.
type ErrNotFound struct {
	What string
}

func (e *ErrNotFound) Error() string {
	if e.What == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.What)
}

// IsNotFound reports whether err, or any error it wraps, is an ErrNotFound.
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}
