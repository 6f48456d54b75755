package logging

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Stderr(t *testing.T) {
	closer, err := Setup(Config{})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ghost-flight.log")
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	closer, err := Setup(Config{File: path})
	require.NoError(t, err)

	log.Printf("[TEST] hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[TEST] hello")
}

func TestNewRotatingWriter_Defaults(t *testing.T) {
	w := NewRotatingWriter(Config{File: "x.log"})
	assert.Equal(t, 32, w.MaxSize)
	assert.Equal(t, 3, w.MaxBackups)

	w = NewRotatingWriter(Config{File: "x.log", MaxSizeMB: 5, MaxBackups: 1, MaxAgeDays: 7})
	assert.Equal(t, 5, w.MaxSize)
	assert.Equal(t, 1, w.MaxBackups)
	assert.Equal(t, 7, w.MaxAge)
}
