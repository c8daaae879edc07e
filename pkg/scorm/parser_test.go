package scorm

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

const scorm12Manifest = `<?xml version="1.0"?>
<manifest identifier="com.example.course" version="1.0">
  <metadata>
    <schema>ADL SCORM</schema>
    <schemaversion>1.2</schemaversion>
  </metadata>
  <organizations default="org1">
    <organization identifier="org1">
      <title>Example Course</title>
      <item identifier="item1" identifierref="res1">
        <title>Lesson 1</title>
        <adlcp:masteryscore>80</adlcp:masteryscore>
      </item>
    </organization>
  </organizations>
  <resources>
    <resource identifier="res1" type="webcontent" adlcp:scormtype="sco" href="index.html">
      <file href="index.html"/>
    </resource>
  </resources>
</manifest>`

const scorm2004Manifest = `<?xml version="1.0"?>
<manifest identifier="com.example.course2004" version="1.0">
  <metadata>
    <schema>ADL SCORM</schema>
    <schemaversion>2004 3rd Edition</schemaversion>
  </metadata>
  <organizations default="org1">
    <organization identifier="org1">
      <title>Sequenced Course</title>
      <item identifier="item1" identifierref="res1">
        <title>Module 1</title>
        <imsss:sequencing>
          <imsss:controlMode choice="false" flow="true"/>
          <imsss:sequencingRules>
            <imsss:postConditionRule>
              <imsss:ruleConditions conditionCombination="all">
                <imsss:ruleCondition condition="satisfied"/>
              </imsss:ruleConditions>
              <imsss:ruleAction action="exitParent"/>
            </imsss:postConditionRule>
          </imsss:sequencingRules>
        </imsss:sequencing>
      </item>
    </organization>
  </organizations>
  <resources>
    <resource identifier="res1" type="webcontent" adlcp:scormtype="sco" href="module1/index.html">
      <file href="module1/index.html"/>
    </resource>
  </resources>
</manifest>`

func writeManifest(t *testing.T, contents string) fileaccess.FileAccess {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "imsmanifest.xml"), []byte(contents), 0644))
	fa, err := fileaccess.NewLocal(dir)
	require.NoError(t, err)
	return fa
}

func TestParse_Scorm12HappyPath(t *testing.T) {
	fa := writeManifest(t, scorm12Manifest)

	m, err := Parse(context.Background(), fa, DefaultParseOptions())
	require.NoError(t, err)

	assert.Equal(t, model.ScormV12, m.ModuleType())
	assert.Equal(t, "com.example.course", m.Identifier())
	assert.Equal(t, "Example Course", m.Title())
	launchURL, ok := m.LaunchURL()
	require.True(t, ok)
	assert.Equal(t, "index.html", launchURL)

	org, ok := m.DefaultOrganization()
	require.True(t, ok)
	require.Len(t, org.Items, 1)
	require.NotNil(t, org.Items[0].MasteryScore)
	assert.InDelta(t, 0.8, float64(*org.Items[0].MasteryScore), 0.0001)
}

func TestParse_Scorm2004Sequencing(t *testing.T) {
	fa := writeManifest(t, scorm2004Manifest)

	m, err := Parse(context.Background(), fa, DefaultParseOptions())
	require.NoError(t, err)

	assert.Equal(t, model.Scorm2004, m.ModuleType())
	assert.Equal(t, model.EditionThird, m.Edition)

	org, ok := m.DefaultOrganization()
	require.True(t, ok)
	require.Len(t, org.Items, 1)
	seq := org.Items[0].Sequencing
	require.NotNil(t, seq)
	assert.False(t, seq.ControlMode.Choice)
	assert.True(t, seq.ControlMode.Flow)
	require.Len(t, seq.PostConditionRules, 1)
	assert.Equal(t, "exitParent", string(seq.PostConditionRules[0].Action))
	assert.True(t, seq.HasRules())
}

func TestParse_MissingManifest(t *testing.T) {
	dir := t.TempDir()
	fa, err := fileaccess.NewLocal(dir)
	require.NoError(t, err)

	_, err = Parse(context.Background(), fa, DefaultParseOptions())
	require.Error(t, err)

	var scormErr *Error
	require.ErrorAs(t, err, &scormErr)
}
