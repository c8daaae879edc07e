package fileaccess

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "content"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "imsmanifest.xml"), []byte("<manifest/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content", "index.html"), []byte("<html/>"), 0644))
	return dir
}

func TestLocal_ExistsAndOpen(t *testing.T) {
	fa, err := NewLocal(writeTree(t))
	require.NoError(t, err)

	assert.True(t, fa.Exists(context.Background(), "imsmanifest.xml"))
	assert.True(t, fa.Exists(context.Background(), "content/index.html"))
	assert.False(t, fa.Exists(context.Background(), "missing.xml"))

	rc, err := fa.Open(context.Background(), "imsmanifest.xml")
	require.NoError(t, err)
	defer rc.Close()
}

func TestLocal_ExistsRejectsTraversal(t *testing.T) {
	fa, err := NewLocal(writeTree(t))
	require.NoError(t, err)

	assert.False(t, fa.Exists(context.Background(), "../../../etc/passwd"))
	assert.False(t, fa.Exists(context.Background(), "/etc/passwd"))
}

func TestLocal_List(t *testing.T) {
	fa, err := NewLocal(writeTree(t))
	require.NoError(t, err)

	paths, err := fa.List(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, paths, "imsmanifest.xml")
	assert.Contains(t, paths, "content/index.html")
}

func TestFindCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "IMSMANIFEST.XML"), []byte("<manifest/>"), 0644))
	fa, err := NewLocal(dir)
	require.NoError(t, err)

	found, ok := FindCaseInsensitive(context.Background(), fa, "", "imsmanifest.xml")
	require.True(t, ok)
	assert.Equal(t, "IMSMANIFEST.XML", found)

	_, ok = FindCaseInsensitive(context.Background(), fa, "", "cmi5.xml")
	assert.False(t, ok)
}

func TestLocal_TotalSize(t *testing.T) {
	fa, err := NewLocal(writeTree(t))
	require.NoError(t, err)

	size, ok := fa.TotalSize(context.Background())
	require.True(t, ok)
	assert.Greater(t, size, uint64(0))
}
