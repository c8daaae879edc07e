package aicc

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

const crsContent = "[Course]\r\n" +
	"Course_ID=COURSE1\r\n" +
	"Course_Title=Example Course\r\n" +
	"Version=1.0\r\n" +
	"\r\n" +
	"[Course_Description]\r\n" +
	"An example course description.\r\n"

const desContent = "System_ID,Title,Type\r\n" +
	"BLOCK1,Block One,Block\r\n"

const auContent = "System_ID,Title,File_Name,Command_Line,Mastery_Score,Max_Time_Allowed,Type\r\n" +
	"AU1,Lesson One,content/lesson1.html,,80,00:30:00,AU\r\n"

const cstContent = "Block,Member\r\n" +
	"COURSE1,BLOCK1\r\n" +
	"BLOCK1,AU1\r\n"

const preContent = "System_ID,Prerequisites\r\n" +
	"AU1,BLOCK1\r\n"

func writeAICCPackage(t *testing.T) fileaccess.FileAccess {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"course1.crs": crsContent,
		"course1.des": desContent,
		"course1.au":  auContent,
		"course1.cst": cstContent,
		"course1.pre": preContent,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	fa, err := fileaccess.NewLocal(dir)
	require.NoError(t, err)
	return fa
}

func TestParse_AICCHappyPath(t *testing.T) {
	fa := writeAICCPackage(t)

	m, err := Parse(context.Background(), fa)
	require.NoError(t, err)

	assert.Equal(t, model.AICC, m.ModuleType())
	assert.Equal(t, "COURSE1", m.Identifier())
	assert.Equal(t, "Example Course", m.Title())
	desc, ok := m.Description()
	require.True(t, ok)
	assert.Contains(t, desc, "example course description")

	require.Len(t, m.Blocks, 1)
	assert.Equal(t, "BLOCK1", m.Blocks[0].SystemID)

	require.Len(t, m.AUs, 1)
	assert.Equal(t, "content/lesson1.html", m.AUs[0].FileName)
	require.NotNil(t, m.AUs[0].MasteryScore)
	assert.InDelta(t, 0.8, float64(*m.AUs[0].MasteryScore), 0.0001)
	require.NotNil(t, m.AUs[0].MaxTimeAllowed)
	assert.Equal(t, "30m0s", m.AUs[0].MaxTimeAllowed.String())

	launchURL, ok := m.LaunchURL()
	require.True(t, ok)
	assert.Equal(t, "content/lesson1.html", launchURL)

	duration, ok := m.Duration()
	require.True(t, ok)
	assert.Equal(t, "30m0s", duration.String())

	assert.Equal(t, "BLOCK1", m.Prerequisites["AU1"])
}

func TestParse_MissingCourseDescriptor(t *testing.T) {
	dir := t.TempDir()
	fa, err := fileaccess.NewLocal(dir)
	require.NoError(t, err)

	_, err = Parse(context.Background(), fa)
	require.Error(t, err)
}
