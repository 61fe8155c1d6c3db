package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, dir string) []map[string]any {
	t.Helper()

	files, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	f, err := os.Open(files[0])
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestLoggerAdapter_WritesJSONLines(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLoggerAdapter(Config{Dir: dir, Name: "http://localhost:8000", Level: "debug"})
	require.NoError(t, err)

	log.Debug("debug line", "poll", 1)
	log.WithField("runID", "abc").Info("with field")
	log.WithFields(map[string]any{"status": "done", "facts": 2}).Warn("with fields")
	log.Error("failed", "error", "boom")
	require.NoError(t, log.Close())

	entries := readEntries(t, dir)
	require.Len(t, entries, 4)

	assert.Equal(t, "DEBUG", entries[0]["level"])
	assert.Equal(t, "debug line", entries[0]["message"])
	assert.EqualValues(t, 1, entries[0]["poll"])
	assert.NotEmpty(t, entries[0]["timestamp"])

	assert.Equal(t, "abc", entries[1]["runID"])
	assert.Equal(t, "done", entries[2]["status"])
	assert.EqualValues(t, 2, entries[2]["facts"])
	assert.Equal(t, "ERROR", entries[3]["level"])
}

func TestLoggerAdapter_LevelFilters(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLoggerAdapter(Config{Dir: dir, Name: "filter", Level: "warn"})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Close())

	entries := readEntries(t, dir)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}

func TestLoggerAdapter_InvalidLevelFallsBackToInfo(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLoggerAdapter(Config{Dir: dir, Name: "fallback", Level: "verbose"})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")
	require.NoError(t, log.Close())

	assert.Len(t, readEntries(t, dir), 1)
}

func TestNewNopLogger(t *testing.T) {
	log := NewNopLogger()
	log.Info("nothing")
	assert.NoError(t, log.WithField("k", "v").Close())
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "http___localhost_8000", sanitize("http://localhost:8000"))
	assert.Equal(t, "validator", sanitize(""))
	assert.Len(t, sanitize(string(make([]byte, 100))), 60)
}
