package elearnparse

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/elearnparse/pkg/fileaccess"
	"github.com/ternarybob/elearnparse/pkg/metadata"
	"github.com/ternarybob/elearnparse/pkg/model"
)

const happyScorm12 = `<?xml version="1.0"?>
<manifest identifier="course1" version="1.0">
  <metadata><schemaversion>1.2</schemaversion></metadata>
  <organizations default="o1">
    <organization identifier="o1">
      <title>Course</title>
      <item identifier="i1" identifierref="r1"><title>Lesson</title></item>
    </organization>
  </organizations>
  <resources>
    <resource identifier="r1" type="webcontent" adlcp:scormtype="sco" href="index.html"/>
  </resources>
</manifest>`

func localPackage(t *testing.T, files map[string]string) fileaccess.FileAccess {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	fa, err := fileaccess.NewLocal(dir)
	require.NoError(t, err)
	return fa
}

func TestDetect_Scorm(t *testing.T) {
	fa := localPackage(t, map[string]string{"imsmanifest.xml": happyScorm12, "index.html": "<html/>"})
	mt, err := Detect(context.Background(), fa)
	require.NoError(t, err)
	assert.Equal(t, model.ScormV12, mt)
}

func TestDetect_Unknown(t *testing.T) {
	fa := localPackage(t, map[string]string{"readme.txt": "nothing here"})
	_, err := Detect(context.Background(), fa)
	require.Error(t, err)
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindDetection, pe.Kind)
}

func TestParse_HappyPathScorm(t *testing.T) {
	fa := localPackage(t, map[string]string{"imsmanifest.xml": happyScorm12, "index.html": "<html/>"})
	md, err := Parse(context.Background(), fa)
	require.NoError(t, err)
	assert.Equal(t, "course1", md.Identifier)
	assert.Equal(t, "index.html", md.LaunchURL)
	assert.Equal(t, metadata.SequencingNone, md.SequencingLevel)
}

func TestParse_FailsClosedOnValidationError(t *testing.T) {
	manifest := `<?xml version="1.0"?><manifest identifier="" version="1.0"></manifest>`
	fa := localPackage(t, map[string]string{"imsmanifest.xml": manifest})
	_, err := Parse(context.Background(), fa)
	require.Error(t, err)
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, pe.Kind)
	require.NotNil(t, pe.Result)
	assert.NotEmpty(t, pe.Result.Errors())
}

func TestParseWith_LenientAcceptsStructuralErrors(t *testing.T) {
	manifest := `<?xml version="1.0"?><manifest identifier="" version="1.0"></manifest>`
	fa := localPackage(t, map[string]string{"imsmanifest.xml": manifest})

	opts := DefaultOptions()
	opts.Mode = "lenient"
	md, err := ParseWith(context.Background(), opts, fa)
	require.NoError(t, err)
	assert.Equal(t, model.ScormV12, md.ModuleType)
}

func TestValidate_NeverErrorsOnMissingManifest(t *testing.T) {
	fa := localPackage(t, map[string]string{"readme.txt": "nothing here"})
	result := Validate(context.Background(), fa)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Errors())
}
