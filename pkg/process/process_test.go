package process

import (
	"testing"

	"github.com/cbodonnell/worldlens/pkg/memory"
	"github.com/stretchr/testify/assert"
)

func TestAttach_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		process string
	}{
		{name: "empty name", process: ""},
		{name: "no such process", process: "worldlens-no-such-process.exe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Attach(tt.process)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, memory.ErrAttachFailure)
		})
	}
}

func TestProcess_ImplementsHandle(t *testing.T) {
	var _ memory.Handle = (*Process)(nil)
}
