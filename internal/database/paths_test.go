package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultDBPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GetDefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, AppDirName, SQLiteDBFileName), path)

	info, err := os.Stat(filepath.Join(home, AppDirName))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
