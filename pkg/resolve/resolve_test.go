package resolve

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/elearnparse/pkg/fileaccess"
	"github.com/ternarybob/elearnparse/pkg/scorm"
)

const randomTestManifest = `<?xml version="1.0"?>
<manifest identifier="com.scorm.golfsamples.sequencing.randomtest" version="1.0">
  <metadata>
    <schemaversion>2004 3rd Edition</schemaversion>
  </metadata>
  <organizations default="golf_sample_default_org">
    <organization identifier="golf_sample_default_org">
      <title>Random Test</title>
      <item identifier="pretest_item" identifierref="pretest_resource">
        <title>Pretest</title>
      </item>
      <item identifier="posttest_item" identifierref="posttest_resource">
        <title>Posttest</title>
        <imsss:sequencing>
          <imsss:objectives>
            <imsss:primaryObjective objectiveID="local_obj">
              <imsss:mapInfo targetObjectiveID="com.scorm.golfsamples.sequencing.randomtest.content_completed" writeSatisfiedStatus="true"/>
            </imsss:primaryObjective>
          </imsss:objectives>
        </imsss:sequencing>
      </item>
    </organization>
  </organizations>
  <resources>
    <resource identifier="pretest_resource" type="webcontent" adlcp:scormtype="sco" href="pretest.html"/>
    <resource identifier="posttest_resource" type="webcontent" adlcp:scormtype="sco" href="posttest.html"/>
  </resources>
</manifest>`

func TestBuild_ActivityTreeAndIndices(t *testing.T) {
	fa := writeManifestFA(t, randomTestManifest)
	m, err := scorm.Parse(context.Background(), fa, scorm.DefaultParseOptions())
	require.NoError(t, err)

	tree := Build(m)

	require.Len(t, tree.Nodes, 2)
	assert.Contains(t, tree.ItemByID, "pretest_item")
	assert.Contains(t, tree.ItemByID, "posttest_item")
	assert.Contains(t, tree.ResourceByID, "pretest_resource")

	assert.Contains(t, tree.ObjectiveToGlobals, "com.scorm.golfsamples.sequencing.randomtest.content_completed")
	assert.Empty(t, tree.MultiWriterObjectives)
}

func TestBuild_DuplicateResourceIdentifiers(t *testing.T) {
	manifest := `<?xml version="1.0"?>
<manifest identifier="dup" version="1.0">
  <organizations default="o1">
    <organization identifier="o1">
      <title>Dup</title>
      <item identifier="i1" identifierref="r1"/>
    </organization>
  </organizations>
  <resources>
    <resource identifier="r1" type="webcontent" adlcp:scormtype="sco" href="a.html"/>
    <resource identifier="r1" type="webcontent" adlcp:scormtype="sco" href="b.html"/>
  </resources>
</manifest>`
	fa := writeManifestFA(t, manifest)
	m, err := scorm.Parse(context.Background(), fa, scorm.DefaultParseOptions())
	require.NoError(t, err)

	tree := Build(m)
	assert.Equal(t, []string{"r1"}, tree.DuplicateResourceIDs)
	assert.Equal(t, "a.html", string(tree.ResourceByID["r1"].Href))
}

func TestVerifyHrefs_MissingFile(t *testing.T) {
	manifest := `<?xml version="1.0"?>
<manifest identifier="missing" version="1.0">
  <organizations default="o1">
    <organization identifier="o1">
      <title>Missing</title>
      <item identifier="i1" identifierref="r1"/>
    </organization>
  </organizations>
  <resources>
    <resource identifier="r1" type="webcontent" adlcp:scormtype="sco" href="does-not-exist.html"/>
  </resources>
</manifest>`
	fa := writeManifestFA(t, manifest)
	m, err := scorm.Parse(context.Background(), fa, scorm.DefaultParseOptions())
	require.NoError(t, err)

	tree := Build(m)
	VerifyHrefs(context.Background(), fa, tree)
	assert.Equal(t, []string{"r1"}, tree.MissingHrefResources)
}

func writeManifestFA(t *testing.T, contents string) fileaccess.FileAccess {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "imsmanifest.xml"), []byte(contents), 0644))
	fa, err := fileaccess.NewLocal(dir)
	require.NoError(t, err)
	return fa
}
