package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/resizehelper/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "resizehelper.log")
	l, err := NewLogger(&cfg)
	require.NoError(t, err)

	l.Info("to file")
	l.Error("[1/1] FAIL a.png -> 10x10px @ 72dpi  |  boom")
	require.NoError(t, l.Close())

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[INFO] to file")
	assert.Contains(t, string(b), "[ERROR] [1/1] FAIL")
}

func TestNew_Format(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.now = func() time.Time { return time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC) }

	l.Success("[%d/%d] OK  %s", 1, 2, "a.jpg")
	l.Debug(true, "shown")
	l.Debug(false, "hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-03-01 09:05:00 [SUCCESS] [1/2] OK  a.jpg", lines[0])
	assert.Equal(t, "2024-03-01 09:05:00 [DEBUG] shown", lines[1])
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Warn("nothing")
	assert.False(t, l.Verbose())
	assert.NoError(t, l.Close())
}
