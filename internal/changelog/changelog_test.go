package changelog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oarkflow/modrel/internal/conventional"
)

var testDate = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Version: "1.3.0",
		Date:    testDate,
		Sections: []conventional.Section{
			{Type: "feat", Title: "Features", Entries: []string{"add X", "add Y"}},
			{Type: "fix", Title: "Fixes", Entries: []string{"fix Z"}},
		},
	}
}

func TestMarkdown(t *testing.T) {
	expected := "## 1.3.0 (2024-03-05)\n\n" +
		"### Features\n- add X\n- add Y\n\n" +
		"### Fixes\n- fix Z\n\n"
	assert.Equal(t, expected, testEntry().Markdown())
}

func TestMarkdownNoSections(t *testing.T) {
	e := Entry{Version: "0.0.2", Date: testDate}
	assert.Equal(t, "## 0.0.2 (2024-03-05)\n\n", e.Markdown())
}

func TestPrependEmpty(t *testing.T) {
	out := Prepend("", "mod", testEntry())
	assert.True(t, strings.HasPrefix(out, "# Change Log - mod\n\n## 1.3.0 (2024-03-05)\n"))
	assert.Equal(t, 1, strings.Count(out, "# Change Log - mod"))
}

func TestPrependKeepsHistory(t *testing.T) {
	existing := "# Change Log - mod\n\n## 1.2.0 (2024-01-01)\n\n### Fixes\n- old fix\n\n## 1.1.0 (2023-12-01)\n\n"
	out := Prepend(existing, "mod", testEntry())

	assert.Equal(t, 1, strings.Count(out, "# Change Log - mod"))
	assert.True(t, strings.HasPrefix(out, "# Change Log - mod\n\n## 1.3.0"))

	newIdx := strings.Index(out, "## 1.3.0")
	oldIdx := strings.Index(out, "## 1.2.0")
	olderIdx := strings.Index(out, "## 1.1.0")
	assert.True(t, newIdx < oldIdx && oldIdx < olderIdx)
	assert.Contains(t, out, "### Fixes\n- old fix\n")
}

func TestPrependAddsMissingHeading(t *testing.T) {
	existing := "## 1.0.0 (2023-01-01)\n\n### Features\n- first\n"
	out := Prepend(existing, "mod", testEntry())
	assert.True(t, strings.HasPrefix(out, "# Change Log - mod\n\n## 1.3.0"))
	assert.True(t, strings.HasSuffix(out, "## 1.0.0 (2023-01-01)\n\n### Features\n- first\n"))
}

func TestPrependDeduplicatesHeading(t *testing.T) {
	existing := "# Change Log - mod\n\n# Change Log - mod\n## 1.0.0 (2023-01-01)\n"
	out := Prepend(existing, "mod", testEntry())
	assert.Equal(t, 1, strings.Count(out, "# Change Log - mod"))
	assert.True(t, strings.HasSuffix(out, "## 1.0.0 (2023-01-01)\n"))
}

func TestFormat(t *testing.T) {
	e := testEntry()

	out, err := e.Format("json")
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "1.3.0", doc["version"])
	assert.Equal(t, "2024-03-05", doc["date"])
	assert.Len(t, doc["sections"], 2)

	out, err = e.Format("yaml")
	require.NoError(t, err)
	var ydoc document
	require.NoError(t, yaml.Unmarshal([]byte(out), &ydoc))
	assert.Equal(t, "2024-03-05", ydoc.Date)
	assert.Equal(t, []string{"add X", "add Y"}, ydoc.Sections[0].Entries)

	out, err = e.Format("markdown")
	require.NoError(t, err)
	assert.Equal(t, e.Markdown(), out)

	_, err = e.Format("xml")
	assert.Error(t, err)
}

func TestUpdateAndTouch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")

	require.NoError(t, Touch(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	require.NoError(t, Update(path, "mod", testEntry()))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Prepend("", "mod", testEntry()), string(data))

	// Touch never truncates an existing changelog
	require.NoError(t, Touch(path))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, after)
}
