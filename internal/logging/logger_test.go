package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "feeschart.log")

	log, err := New(Options{File: file, Level: "debug"})
	require.NoError(t, err)
	log.Warn("fetch series failed", zap.String("endpoint", "mock://fees"))
	require.NoError(t, log.Sync())

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"level":"warn"`)
	assert.Contains(t, string(b), `"msg":"fetch series failed"`)
	assert.Contains(t, string(b), `"endpoint":"mock://fees"`)
}

func TestNewRespectsLevel(t *testing.T) {
	file := filepath.Join(t.TempDir(), "feeschart.log")

	log, err := New(Options{File: file, Level: "error"})
	require.NoError(t, err)
	log.Info("hidden")
	require.NoError(t, log.Sync())

	b, _ := os.ReadFile(file)
	assert.NotContains(t, string(b), "hidden")
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	assert.Error(t, err)
}
