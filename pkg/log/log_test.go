package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	for _, level := range []LogLevel{LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug, LogLevelTrace} {
		got, err := ParseLogLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, got)
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}

func lines(buf *bytes.Buffer) []map[string]interface{} {
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &entry); err == nil {
			out = append(out, entry)
		}
	}
	return out
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(buf, LogLevelInfo)

	l.Debug("hidden")
	l.Info("walked %d records", 3)
	l.Error("read failed: %s", "fault")

	entries := lines(buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "walked 3 records", entries[0]["msg"])
	assert.Equal(t, "error", entries[1]["level"])

	buf.Reset()
	l.SetLevel(LogLevelTrace)
	l.Trace("chain %x", 0x62AA14)
	require.Len(t, lines(buf), 1)
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worldlens.log")
	buf := &bytes.Buffer{}
	l := NewWithFile(buf, FileOptions{Path: path}, LogLevelInfo)

	l.Info("attached")
	require.NoError(t, l.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "attached")
	assert.Contains(t, buf.String(), "attached")
}

func TestSetDefaultLogger(t *testing.T) {
	prev := current()
	defer SetDefaultLogger(prev)

	buf := &bytes.Buffer{}
	SetDefaultLogger(New(buf, LogLevelWarn))
	Info("hidden")
	Warn("map %s unknown", "dungeon")

	entries := lines(buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "map dungeon unknown", entries[0]["msg"])
}
