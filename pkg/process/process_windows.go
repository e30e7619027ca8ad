//go:build windows

package process

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Process is a read-only view of another process's memory.
type Process struct {
	Pid  int
	Name string

	lock   sync.RWMutex
	handle windows.Handle
	closed bool
}

func attach(name string) (*Process, error) {
	pid, err := findPid(name)
	if err != nil {
		return nil, err
	}

	handle, err := windows.OpenProcess(windows.PROCESS_VM_READ|windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			return nil, fmt.Errorf("%w: %s", ErrAccessDenied, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, name, err)
	}

	return &Process{
		Pid:    int(pid),
		Name:   name,
		handle: handle,
	}, nil
}

func findPid(name string) (uint32, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to snapshot processes: %v", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	if err := windows.Process32First(snapshot, &entry); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	for {
		if strings.EqualFold(windows.UTF16ToString(entry.ExeFile[:]), name) {
			return entry.ProcessID, nil
		}
		if err := windows.Process32Next(snapshot, &entry); err != nil {
			break
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// ReadBytes reads length bytes at address with ReadProcessMemory.
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
	var n uintptr
	if err := windows.ReadProcessMemory(p.handle, uintptr(address), &buf[0], uintptr(length), &n); err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (p *Process) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return windows.CloseHandle(p.handle)
}
