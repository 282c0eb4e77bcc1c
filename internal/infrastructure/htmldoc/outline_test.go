package htmldoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const outlineHTML = `<html><body>
<header class="site-header banner wide extra">Nav</header>
<main id="content">
  <article class="post first featured long">
    <h2>Section one</h2>
    <p>text</p>
  </article>
  <table class="wikitable"><tr><td>1</td></tr></table>
  <div></div><div></div><div></div><div></div><div></div>
  <div></div><div></div><div></div><div></div><div></div>
</main>
</body></html>`

func TestOutline_StartsAtMain(t *testing.T) {
	path := writeFixture(t, outlineHTML)

	lines, err := Outline(path, 2, 8)
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	assert.Equal(t, "main#content", lines[0])
}

func TestOutline_FallsBackToBody(t *testing.T) {
	path := writeFixture(t, `<html><body><div id="x">hi</div></body></html>`)

	lines, err := Outline(path, 2, 8)
	require.NoError(t, err)
	assert.Equal(t, "body", lines[0])
	assert.Contains(t, lines, "  - div#x")
}

func TestOutline_BoundsChildren(t *testing.T) {
	path := writeFixture(t, outlineHTML)

	lines, err := Outline(path, 1, 3)
	require.NoError(t, err)
	// root + at most 3 children at level 1
	assert.LessOrEqual(t, len(lines), 4)
}

func TestOutline_DepthBound(t *testing.T) {
	path := writeFixture(t, outlineHTML)

	lines, err := Outline(path, 1, 20)
	require.NoError(t, err)
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "  - "), "no nesting past depth 1: %q", line)
	}
}

func TestNodeLabel_LimitsClasses(t *testing.T) {
	path := writeFixture(t, outlineHTML)

	lines, err := Outline(path, 1, 8)
	require.NoError(t, err)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "article.post.first.featured")
	assert.NotContains(t, joined, "long", "at most three classes per label")
}

func TestSuggestSelectors(t *testing.T) {
	path := writeFixture(t, outlineHTML)

	suggestions, err := SuggestSelectors(path, 10)
	require.NoError(t, err)
	assert.Contains(t, suggestions, "main#content")
	assert.Contains(t, suggestions, "main")
	assert.Contains(t, suggestions, "article")
	assert.Contains(t, suggestions, "table.wikitable")
	assert.NotContains(t, suggestions, "#mw-content-text")
}

func TestSuggestSelectors_Capped(t *testing.T) {
	path := writeFixture(t, outlineHTML)

	suggestions, err := SuggestSelectors(path, 2)
	require.NoError(t, err)
	assert.Len(t, suggestions, 2)
}
