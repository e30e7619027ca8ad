//go:build linux

package process

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// comm values are truncated by the kernel to 15 bytes.
const commMaxLen = 15

// Process is a read-only view of another process's memory.
type Process struct {
	Pid  int
	Name string

	lock   sync.RWMutex
	closed bool
}

func attach(name string) (*Process, error) {
	pid, err := findPid(name)
	if err != nil {
		return nil, err
	}
	p := &Process{Pid: pid, Name: name}
	if err := p.probe(); err != nil {
		return nil, err
	}
	return p, nil
}

func findPid(name string) (int, error) {
	want := name
	if len(want) > commMaxLen {
		want = want[:commMaxLen]
	}

	entries, err := os.ReadDir("/proc")
	if err != nil {
		return 0, fmt.Errorf("failed to list processes: %v", err)
	}
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		comm, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "comm"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(comm)) == want {
			return pid, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// probe reads the first byte of the first mapping to surface permission
// problems at attach time rather than on the first tick.
func (p *Process) probe() error {
	f, err := os.Open(filepath.Join("/proc", strconv.Itoa(p.Pid), "maps"))
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w: %s", ErrAccessDenied, p.Name)
		}
		return fmt.Errorf("%w: %s: %v", ErrNotFound, p.Name, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return fmt.Errorf("%w: %s has no mappings", ErrAccessDenied, p.Name)
	}
	start, _, _ := strings.Cut(scanner.Text(), "-")
	address, err := strconv.ParseUint(start, 16, 64)
	if err != nil {
		return fmt.Errorf("failed to parse mapping of %s: %v", p.Name, err)
	}

	if _, err := p.ReadBytes(address, 1); err != nil {
		if errors.Is(err, unix.EPERM) {
			return fmt.Errorf("%w: %s", ErrAccessDenied, p.Name)
		}
		return err
	}
	return nil
}

// ReadBytes reads length bytes at address with process_vm_readv.
func (p *Process) ReadBytes(address uint64, length int) ([]byte, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	if p.closed {
		return nil, errProcessClosed
	}
	if length <= 0 {
		return []byte{}, nil
	}

	buf := make([]byte, length)
	local := []unix.Iovec{{Base: &buf[0]}}
	local[0].SetLen(length)
	remote := []unix.RemoteIovec{{Base: uintptr(address), Len: length}}

	n, err := unix.ProcessVMReadv(p.Pid, local, remote, 0)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (p *Process) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.closed = true
	return nil
}
