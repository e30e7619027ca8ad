package memory

import "errors"

var (
	// ErrReadFault is returned when an address cannot be read: it is outside the
	// readable range of the target process, it is unmapped, or the process has exited.
	ErrReadFault = errors.New("read fault")

	// ErrCorruptData is returned when foreign memory was readable but its content is
	// implausible, e.g. a string without terminator or a list with an absurd length.
	ErrCorruptData = errors.New("corrupt data")

	// ErrAttachFailure is returned when the target process cannot be opened.
	ErrAttachFailure = errors.New("attach failure")
)
