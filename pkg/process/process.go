// Package process opens a running process for read-only memory access.
package process

import (
	"errors"
	"fmt"

	"github.com/cbodonnell/worldlens/pkg/memory"
)

var (
	// ErrNotFound is returned when no running process matches the requested name.
	ErrNotFound = fmt.Errorf("%w: process not found", memory.ErrAttachFailure)
	// ErrAccessDenied is returned when the process exists but its memory may not be read.
	ErrAccessDenied = fmt.Errorf("%w: access denied", memory.ErrAttachFailure)
	// ErrUnsupported is returned on platforms without a foreign-memory reader.
	ErrUnsupported = fmt.Errorf("%w: unsupported platform", memory.ErrAttachFailure)

	errProcessClosed = errors.New("process handle closed")
)

// Attach finds the first running process whose executable name is name and
// opens it for reading. The returned Process implements memory.Handle.
func Attach(name string) (*Process, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty process name", ErrNotFound)
	}
	return attach(name)
}
