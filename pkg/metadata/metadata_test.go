package metadata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/elearnparse/pkg/aicc"
	"github.com/ternarybob/elearnparse/pkg/cmi5"
	"github.com/ternarybob/elearnparse/pkg/fileaccess"
	"github.com/ternarybob/elearnparse/pkg/resolve"
	"github.com/ternarybob/elearnparse/pkg/scorm"
)

const scorm12Manifest = `<?xml version="1.0"?>
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

const scorm2004FullManifest = `<?xml version="1.0"?>
<manifest identifier="course2" version="1.0">
  <metadata><schemaversion>2004 3rd Edition</schemaversion></metadata>
  <organizations default="o1">
    <organization identifier="o1">
      <title>Course</title>
      <item identifier="i1" identifierref="r1">
        <title>Lesson</title>
        <imsss:sequencing>
          <imsss:sequencingRules>
            <imsss:postConditionRule>
              <imsss:ruleConditions><imsss:ruleCondition condition="always"/></imsss:ruleConditions>
              <imsss:ruleAction action="exitParent"/>
            </imsss:postConditionRule>
          </imsss:sequencingRules>
        </imsss:sequencing>
      </item>
    </organization>
  </organizations>
  <resources>
    <resource identifier="r1" type="webcontent" adlcp:scormtype="sco" href="index.html"/>
  </resources>
</manifest>`

func fa(t *testing.T, manifest string, extra map[string]string) fileaccess.FileAccess {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "imsmanifest.xml"), []byte(manifest), 0644))
	for name, content := range extra {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	f, err := fileaccess.NewLocal(dir)
	require.NoError(t, err)
	return f
}

func TestFromScorm_12HasNoSequencing(t *testing.T) {
	f := fa(t, scorm12Manifest, nil)
	m, err := scorm.Parse(context.Background(), f, scorm.DefaultParseOptions())
	require.NoError(t, err)
	tree := resolve.Build(m)

	md := FromScorm(context.Background(), f, m, tree)
	assert.False(t, md.HasSequencing)
	assert.Equal(t, SequencingNone, md.SequencingLevel)
	assert.False(t, md.XAPIEnabled)
	assert.Equal(t, "course1", md.Identifier)
}

func TestFromScorm_2004WithRulesIsFull(t *testing.T) {
	f := fa(t, scorm2004FullManifest, nil)
	m, err := scorm.Parse(context.Background(), f, scorm.DefaultParseOptions())
	require.NoError(t, err)
	tree := resolve.Build(m)

	md := FromScorm(context.Background(), f, m, tree)
	assert.True(t, md.HasSequencing)
	assert.Equal(t, SequencingFull, md.SequencingLevel)
}

func TestFromScorm_TinCanCompanionEnablesXAPI(t *testing.T) {
	f := fa(t, scorm12Manifest, map[string]string{"tincan.xml": "<tincan/>"})
	m, err := scorm.Parse(context.Background(), f, scorm.DefaultParseOptions())
	require.NoError(t, err)
	tree := resolve.Build(m)

	md := FromScorm(context.Background(), f, m, tree)
	assert.True(t, md.XAPIEnabled)
}

func TestFromAICC_AlwaysNoneSequencing(t *testing.T) {
	m := &aicc.Manifest{Course: aicc.Course{ID: "C1", Title: "AICC Course"}}
	md := FromAICC(m)
	assert.Equal(t, SequencingNone, md.SequencingLevel)
	assert.False(t, md.XAPIEnabled)
	assert.Equal(t, "C1", md.Identifier)
}

func TestFromCMI5_AlwaysXAPIEnabled(t *testing.T) {
	m := &cmi5.Manifest{Course: cmi5.Course{ID: "https://example.com/c1"}}
	md := FromCMI5(m)
	assert.True(t, md.XAPIEnabled)
	assert.Equal(t, SequencingNone, md.SequencingLevel)
}
