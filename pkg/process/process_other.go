//go:build !linux && !windows

package process

// Process is a read-only view of another process's memory.
type Process struct {
	Pid  int
	Name string
}

func attach(name string) (*Process, error) {
	return nil, ErrUnsupported
}

func (p *Process) ReadBytes(address uint64, length int) ([]byte, error) {
	return nil, ErrUnsupported
}

func (p *Process) Close() error {
	return nil
}
