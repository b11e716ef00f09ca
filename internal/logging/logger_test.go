package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDisabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(filepath.Join(dir, "logs"), Options{DebugMode: false}))
	defer CloseAll()

	// With debug mode off nothing is created and helpers are no-ops.
	Hooks("should not be written")
	_, err := os.Stat(filepath.Join(dir, "logs"))
	assert.True(t, os.IsNotExist(err))
}

func TestInitializeDebugMode(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "debug"}))
	defer func() {
		CloseAll()
		Initialize("", Options{DebugMode: false})
	}()

	assert.True(t, IsDebugMode())

	Marks("mark recorded: %s", "turn-1")
	MarksDebug("debug detail")
	PolishError("provider blew up")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestLevelFiltering(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "error"}))
	defer func() {
		CloseAll()
		Initialize("", Options{DebugMode: false})
	}()

	l := Get(CategoryPolish)
	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("dropped")
	l.Error("kept")
}
