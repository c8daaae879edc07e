package validate

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

const validManifest = `<?xml version="1.0"?>
<manifest identifier="course1" version="1.0">
  <organizations default="org1">
    <organization identifier="org1">
      <title>Course</title>
      <item identifier="item1" identifierref="res1"><title>Lesson</title></item>
    </organization>
  </organizations>
  <resources>
    <resource identifier="res1" type="webcontent" adlcp:scormtype="sco" href="index.html"/>
  </resources>
</manifest>`

func scormFA(t *testing.T, manifest string, files map[string]string) fileaccess.FileAccess {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "imsmanifest.xml"), []byte(manifest), 0644))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	fa, err := fileaccess.NewLocal(dir)
	require.NoError(t, err)
	return fa
}

func TestValidate_HappyPathScormHasNoErrors(t *testing.T) {
	fa := scormFA(t, validManifest, map[string]string{"index.html": "<html/>"})
	m, err := scorm.Parse(context.Background(), fa, scorm.DefaultParseOptions())
	require.NoError(t, err)

	tree := resolve.Build(m)
	resolve.VerifyHrefs(context.Background(), fa, tree)

	result := Validate(NewScormContext(m, tree), ModeStrict, nil)
	assert.Empty(t, result.Errors())
}

func TestValidate_MissingOrganizationsAndResources(t *testing.T) {
	manifest := `<?xml version="1.0"?><manifest identifier="c" version="1.0"></manifest>`
	fa := scormFA(t, manifest, nil)
	m, err := scorm.Parse(context.Background(), fa, scorm.DefaultParseOptions())
	require.NoError(t, err)

	tree := resolve.Build(m)
	result := Validate(NewScormContext(m, tree), ModeStrict, nil)

	codes := issueCodes(result.Errors())
	assert.Contains(t, codes, CodeOrganizationsMissing)
	assert.Contains(t, codes, CodeResourcesMissing)
}

func TestValidate_UnresolvedIdentifierRef(t *testing.T) {
	manifest := `<?xml version="1.0"?>
<manifest identifier="c" version="1.0">
  <organizations default="o1">
    <organization identifier="o1">
      <title>T</title>
      <item identifier="i1" identifierref="nope"/>
    </organization>
  </organizations>
  <resources>
    <resource identifier="res1" type="webcontent" adlcp:scormtype="sco" href="index.html"/>
  </resources>
</manifest>`
	fa := scormFA(t, manifest, map[string]string{"index.html": "<html/>"})
	m, err := scorm.Parse(context.Background(), fa, scorm.DefaultParseOptions())
	require.NoError(t, err)

	tree := resolve.Build(m)
	result := Validate(NewScormContext(m, tree), ModeStrict, nil)

	codes := issueCodes(result.Errors())
	assert.Contains(t, codes, CodeMissingResourceRef)
	assert.Contains(t, issueCodes(result.Warnings()), CodeOrphanedResource)
}

func TestValidate_PathTraversalIsNonDisableable(t *testing.T) {
	manifest := `<?xml version="1.0"?>
<manifest identifier="c" version="1.0">
  <organizations default="o1">
    <organization identifier="o1">
      <title>T</title>
      <item identifier="i1" identifierref="res1"/>
    </organization>
  </organizations>
  <resources>
    <resource identifier="res1" type="webcontent" adlcp:scormtype="sco" href="../../etc/passwd"/>
  </resources>
</manifest>`
	fa := scormFA(t, manifest, nil)
	m, err := scorm.Parse(context.Background(), fa, scorm.DefaultParseOptions())
	require.NoError(t, err)

	tree := resolve.Build(m)
	profile := &Profile{DisabledCodes: []string{CodeUnsafePathTraversal}}

	result := Validate(NewScormContext(m, tree), ModeStrict, profile)
	assert.Contains(t, issueCodes(result.Errors()), CodeUnsafePathTraversal)

	lenientResult := Validate(NewScormContext(m, tree), ModeLenient, nil)
	for _, issue := range lenientResult.Issues {
		if issue.Code == CodeUnsafePathTraversal {
			assert.Equal(t, SeverityError, issue.Severity)
		}
	}
}

func TestValidate_LenientDowngradesStructuralErrors(t *testing.T) {
	manifest := `<?xml version="1.0"?><manifest identifier="" version="1.0"></manifest>`
	fa := scormFA(t, manifest, nil)
	m, err := scorm.Parse(context.Background(), fa, scorm.DefaultParseOptions())
	require.NoError(t, err)

	tree := resolve.Build(m)
	result := Validate(NewScormContext(m, tree), ModeLenient, nil)

	assert.Empty(t, result.Errors())
	assert.NotEmpty(t, result.Warnings())
}

func TestValidate_AICCMissingCourseID(t *testing.T) {
	m := &aicc.Manifest{
		Blocks: []aicc.Block{{SystemID: "B1"}},
		AUs:    []aicc.AU{{SystemID: "AU1", FileName: "lesson.html"}},
		Structure: []aicc.StructureNode{
			{SystemID: "B1", Children: []string{"AU1"}},
		},
	}
	result := Validate(NewAICCContext(m), ModeStrict, nil)
	assert.Contains(t, issueCodes(result.Errors()), CodeAICCCourseIDMissing)
}

func TestValidate_AICCUnknownStructureReference(t *testing.T) {
	m := &aicc.Manifest{
		Course: aicc.Course{ID: "C1"},
		Structure: []aicc.StructureNode{
			{SystemID: "C1", Children: []string{"GHOST"}},
		},
	}
	result := Validate(NewAICCContext(m), ModeStrict, nil)
	assert.Contains(t, issueCodes(result.Errors()), CodeAICCMissingAURef)
}

func TestValidate_CMI5InvalidActivityIRI(t *testing.T) {
	m := &cmi5.Manifest{
		Course: cmi5.Course{
			ID: "not-an-iri",
			AUs: []cmi5.AU{
				{ID: "https://example.com/au1", URL: "content/index.html"},
			},
		},
	}
	result := Validate(NewCMI5Context(m), ModeStrict, nil)
	assert.Contains(t, issueCodes(result.Errors()), CodeCMI5InvalidActivityIRI)
}

func TestValidate_CMI5SeverityOverride(t *testing.T) {
	m := &cmi5.Manifest{Course: cmi5.Course{ID: "https://example.com/course"}}
	profile := &Profile{SeverityOverrides: map[string]string{CodeCMI5MissingLaunchMethod: "WARNING"}}

	result := Validate(NewCMI5Context(m), ModeStrict, profile)
	for _, issue := range result.Issues {
		if issue.Code == CodeCMI5MissingLaunchMethod {
			assert.Equal(t, SeverityWarning, issue.Severity)
		}
	}
	assert.Empty(t, result.Errors())
}

func issueCodes(issues []Issue) []string {
	codes := make([]string, len(issues))
	for i, iss := range issues {
		codes[i] = iss.Code
	}
	return codes
}
