package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LogBuffer collects JSON log lines written by concurrent goroutines.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Entries decodes one JSON object per logged line.
func (b *LogBuffer) Entries() ([]map[string]any, error) {
	var entries []map[string]any
	sc := bufio.NewScanner(bytes.NewBufferString(b.String()))
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, sc.Err()
}

// WithMessage returns the entries whose msg equals msg.
func (b *LogBuffer) WithMessage(msg string) ([]map[string]any, error) {
	entries, err := b.Entries()
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	for _, e := range entries {
		if e[slog.MessageKey] == msg {
			out = append(out, e)
		}
	}
	return out, nil
}

// GetTestLogger returns a debug-level JSON logger and the buffer it writes to.
func GetTestLogger(t *testing.T) (*slog.Logger, *LogBuffer) {
	t.Helper()
	buf := &LogBuffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// RequireLogMessage fails the test unless exactly one entry carries msg, and
// returns that entry.
func RequireLogMessage(t *testing.T, buf *LogBuffer, msg string) map[string]any {
	t.Helper()
	entries, err := buf.WithMessage(msg)
	require.NoError(t, err, "log output is not JSON lines")
	require.Len(t, entries, 1, "entries with msg %q in:\n%s", msg, buf.String())
	return entries[0]
}

// AssertLogField checks that some entry has field set to expected.
func AssertLogField(t *testing.T, buf *LogBuffer, field string, expected any) {
	t.Helper()
	entries, err := buf.Entries()
	require.NoError(t, err, "log output is not JSON lines")
	for _, e := range entries {
		if v, ok := e[field]; ok && v == expected {
			return
		}
	}
	assert.Failf(t, "log field not found", "no entry has %s=%v in:\n%s", field, expected, buf.String())
}
