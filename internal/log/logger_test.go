package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	require.NoError(t, SetLevel("warn"))

	Info("hidden")
	Warn("visible", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=visible key=value")

	require.NoError(t, SetLevel(" DEBUG "))
	Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")

	assert.Error(t, SetLevel("loud"))
}

func TestTranscriptEscapes(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	require.NoError(t, SetLevel("debug"))

	Transcript("<", "a\tb\x1b[0m")
	assert.Contains(t, buf.String(), `dir=<`)
	assert.Contains(t, buf.String(), `x1b[0m`)
	assert.NotContains(t, buf.String(), "\x1b")
}

func TestSetFileOutputKeepsLevel(t *testing.T) {
	SetOutput(&bytes.Buffer{})
	require.NoError(t, SetLevel("error"))

	path := filepath.Join(t.TempDir(), "navigator.log")
	require.NoError(t, SetFileOutput(path))
	t.Cleanup(func() {
		Close()
		SetOutput(os.Stderr)
		SetLevel("warn")
	})

	Warn("dropped")
	Error("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}
