package htmldoc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureHTML = `<!DOCTYPE html>
<html>
<head><title>Films</title></head>
<body>
  <main id="content">
    <h1>Highest-grossing   films</h1>
    <table class="wikitable">
      <tr><th>Rank</th><th>Title</th></tr>
      <tr><td>1</td><td>Avatar
      </td></tr>
      <tr><td>2</td><td>  Titanic  </td></tr>
    </table>
  </main>
</body>
</html>`

func writeFixture(t *testing.T, html string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scraped_content.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))
	return path
}

func TestExtract_WithSelector(t *testing.T) {
	path := writeFixture(t, fixtureHTML)

	res, err := NewExtractor().Extract(path, "table.wikitable td")
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "Avatar", "2", "Titanic"}, res.Items)
	assert.Equal(t, 4, res.Count)
	assert.Equal(t, "table.wikitable td", res.Selector)
}

func TestExtract_SelectorMatchingNothing(t *testing.T) {
	path := writeFixture(t, fixtureHTML)

	res, err := NewExtractor().Extract(path, ".does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Items)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"count":0,"selector":".does-not-exist"}`, string(data))
}

func TestExtract_InvalidSelectorIsNotAnError(t *testing.T) {
	path := writeFixture(t, fixtureHTML)

	res, err := NewExtractor().Extract(path, "!!not a selector!!")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
}

func TestExtract_WholePageText(t *testing.T) {
	path := writeFixture(t, fixtureHTML)
	e := NewExtractor()

	res, err := e.Extract(path, "")
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Highest-grossing films")
	assert.Contains(t, res.Text, "1 Avatar 2 Titanic")
	assert.NotContains(t, res.Text, "\n")

	data, err := json.Marshal(res)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	_, hasCount := payload["count"]
	assert.False(t, hasCount, "whole-page result carries only data")
}

func TestExtract_Idempotent(t *testing.T) {
	path := writeFixture(t, fixtureHTML)
	e := NewExtractor()

	first, err := e.Extract(path, "")
	require.NoError(t, err)
	second, err := e.Extract(path, "")
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := NewExtractor().Extract(filepath.Join(t.TempDir(), "nope.html"), "td")
	assert.Error(t, err)
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a\n\tb   c  "))
	assert.Equal(t, "", collapseWhitespace("   \n  "))
}
