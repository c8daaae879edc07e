package detect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/elearnparse/pkg/fileaccess"
	"github.com/ternarybob/elearnparse/pkg/model"
)

func localFA(t *testing.T, files map[string]string) fileaccess.FileAccess {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	fa, err := fileaccess.NewLocal(dir)
	require.NoError(t, err)
	return fa
}

func TestRegistry_DetectScorm12(t *testing.T) {
	fa := localFA(t, map[string]string{
		"imsmanifest.xml": "<manifest><metadata><schemaversion>1.2</schemaversion></metadata></manifest>",
	})
	mt, err := NewDefaultRegistry().Detect(context.Background(), fa)
	require.NoError(t, err)
	assert.Equal(t, model.ScormV12, mt)
}

func TestRegistry_DetectScorm2004(t *testing.T) {
	fa := localFA(t, map[string]string{
		"imsmanifest.xml": "<manifest><metadata><schemaversion>2004 3rd Edition</schemaversion></metadata></manifest>",
	})
	mt, err := NewDefaultRegistry().Detect(context.Background(), fa)
	require.NoError(t, err)
	assert.Equal(t, model.Scorm2004, mt)
}

func TestRegistry_DetectCmi5(t *testing.T) {
	fa := localFA(t, map[string]string{"cmi5.xml": "<courseStructure/>"})
	mt, err := NewDefaultRegistry().Detect(context.Background(), fa)
	require.NoError(t, err)
	assert.Equal(t, model.CMI5, mt)
}

func TestRegistry_DetectAICC(t *testing.T) {
	fa := localFA(t, map[string]string{"course1.crs": "[Course]"})
	mt, err := NewDefaultRegistry().Detect(context.Background(), fa)
	require.NoError(t, err)
	assert.Equal(t, model.AICC, mt)
}

func TestRegistry_PriorityResolvesScormOverAICC(t *testing.T) {
	fa := localFA(t, map[string]string{
		"imsmanifest.xml": "<manifest><metadata><schemaversion>1.2</schemaversion></metadata></manifest>",
		"course1.crs":      "[Course]",
	})
	mt, err := NewDefaultRegistry().Detect(context.Background(), fa)
	require.NoError(t, err)
	assert.Equal(t, model.ScormV12, mt)
}

func TestRegistry_Unknown(t *testing.T) {
	fa := localFA(t, map[string]string{"readme.txt": "nothing here"})
	_, err := NewDefaultRegistry().Detect(context.Background(), fa)
	require.Error(t, err)
	var detectErr *Error
	require.ErrorAs(t, err, &detectErr)
	assert.True(t, detectErr.Unknown)
}
