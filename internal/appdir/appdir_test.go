package appdir_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/catalog/internal/appdir"
)

func TestConfigDir(t *testing.T) {
	dir, err := appdir.ConfigDir()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir), "expected absolute path, got %q", dir)
	assert.Equal(t, appdir.Name, filepath.Base(dir))
}

func TestEnsureFile_CreatesFileAndDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, appdir.EnsureFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestEnsureFile_KeepsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\n"), 0o600))

	require.NoError(t, appdir.EnsureFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "output: json\n", string(data))
}
