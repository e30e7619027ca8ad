package recorder

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/cbodonnell/worldlens/pkg/messages"
)

// maxFrameSize bounds a single recorded frame when reading back.
const maxFrameSize = 16 << 20

// FileRecorder appends snapshots to a file. Each frame is a uvarint length
// followed by a compressed snapshot as produced by messages.SerializeSnapshot.
type FileRecorder struct {
	lock      sync.Mutex
	file      *os.File
	bufWriter *bufio.Writer
	path      string
	frames    int
}

func NewFileRecorder(path string) (*FileRecorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording: %w", err)
	}

	return &FileRecorder{
		file:      f,
		bufWriter: bufio.NewWriter(f),
		path:      path,
	}, nil
}

// Record writes one snapshot frame and flushes it to the file.
func (fr *FileRecorder) Record(s *types.Snapshot) error {
	b, err := messages.SerializeSnapshot(s)
	if err != nil {
		return err
	}

	fr.lock.Lock()
	defer fr.lock.Unlock()

	var header [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(header[:], uint64(len(b)))
	if _, err := fr.bufWriter.Write(header[:n]); err != nil {
		return fmt.Errorf("failed to write frame header: %w", err)
	}
	if _, err := fr.bufWriter.Write(b); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	if err := fr.bufWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush frame: %w", err)
	}
	fr.frames++
	return nil
}

// Sink adapts Record to a snapshot sink, logging failures.
func (fr *FileRecorder) Sink(s *types.Snapshot) {
	if err := fr.Record(s); err != nil {
		log.Error("Failed to record snapshot %d: %v", s.Tick, err)
	}
}

// Frames returns the number of frames written by this recorder.
func (fr *FileRecorder) Frames() int {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	return fr.frames
}

func (fr *FileRecorder) Close() error {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	if err := fr.bufWriter.Flush(); err != nil {
		return err
	}
	return fr.file.Close()
}

// Replay reads the frames of a recording in order and calls fn for each.
// A truncated trailing frame, as left by a crash mid-write, ends the replay
// without error.
func Replay(r io.Reader, fn func(*types.Snapshot) error) error {
	br := bufio.NewReader(r)
	for frame := 0; ; frame++ {
		size, err := binary.ReadUvarint(br)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("failed to read frame %d header: %w", frame, err)
		}
		if size > maxFrameSize {
			return fmt.Errorf("frame %d too large: %d bytes", frame, size)
		}

		b := make([]byte, size)
		if _, err := io.ReadFull(br, b); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				log.Warn("Recording ends with a truncated frame %d", frame)
				return nil
			}
			return fmt.Errorf("failed to read frame %d: %w", frame, err)
		}

		s, err := messages.DeserializeSnapshot(b)
		if err != nil {
			return fmt.Errorf("failed to decode frame %d: %w", frame, err)
		}
		if err := fn(s); err != nil {
			return err
		}
	}
}

// ReplayFile is Replay over the file at path.
func ReplayFile(path string, fn func(*types.Snapshot) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open recording: %w", err)
	}
	defer f.Close()
	return Replay(f, fn)
}
