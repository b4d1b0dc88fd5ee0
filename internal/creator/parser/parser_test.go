package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// SVG import
// ============================================================

func TestParseSVGUpload(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="120" height="40">
  <path d="M0 0 H120 V40 H0 Z" fill="#ccc" />
</svg>`

	doc, err := ParseSVG(strings.NewReader(src))
	require.NoError(t, err)

	assert.EqualValues(t, 120, doc.Width)
	assert.EqualValues(t, 40, doc.Height)
	assert.Equal(t, "<path d=\"M0 0 H120 V40 H0 Z\" fill=\"#ccc\" /> \n", doc.Markup)
}

func TestParseSVGStripsNonDrawable(t *testing.T) {
	src := `<svg width="10px" height="20px">
  <title>Logo</title>
  <!-- exported -->
  <desc>some text</desc>
  <defs><linearGradient id="g"><stop offset="0"/></linearGradient></defs>
  <rect x="1" y="2" width="3" height="4"></rect>
  <circle cx="5" cy="5" r="2"/>
</svg>`

	doc, err := ParseSVG(strings.NewReader(src))
	require.NoError(t, err)

	assert.EqualValues(t, 10, doc.Width)
	assert.EqualValues(t, 20, doc.Height)
	assert.Equal(t, "<rect x=\"1\" y=\"2\" width=\"3\" height=\"4\" /> \n<circle cx=\"5\" cy=\"5\" r=\"2\" /> \n", doc.Markup)
}

func TestParseSVGLatin1(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"64\" height=\"32\">" +
		"<title>Caf\xe9</title><rect width=\"64\" height=\"32\" class=\"caf\xe9\" /></svg>"

	doc, err := ParseSVG(strings.NewReader(src))
	require.NoError(t, err)
	assert.EqualValues(t, 64, doc.Width)
	assert.EqualValues(t, 32, doc.Height)
	assert.Contains(t, doc.Markup, `<rect width="64" height="32" class="café" />`)
	assert.NotContains(t, doc.Markup, "title")
}

func TestParseSVGSizeFallbacks(t *testing.T) {
	doc, err := ParseSVG(strings.NewReader(`<svg viewBox="0 0 300 90"><rect width="5" height="5"/></svg>`))
	require.NoError(t, err)
	assert.EqualValues(t, 300, doc.Width)
	assert.EqualValues(t, 90, doc.Height)

	doc, err = ParseSVG(strings.NewReader(`<svg width="100%"><g><rect x="10" y="10" width="50" height="20"/><circle cx="100" cy="5" r="5"/></g></svg>`))
	require.NoError(t, err)
	assert.EqualValues(t, 105, doc.Width)
	assert.EqualValues(t, 30, doc.Height)
}

func TestParseSVGMalformed(t *testing.T) {
	_, err := ParseSVG(strings.NewReader(`<svg><path d="M0 0"</svg>`))
	assert.ErrorIs(t, err, ErrMalformedSVG)

	_, err = ParseSVG(strings.NewReader(`<html><body/></html>`))
	assert.ErrorIs(t, err, ErrMalformedSVG)

	_, err = ParseSVG(strings.NewReader(`<svg><title>empty</title></svg>`))
	assert.ErrorIs(t, err, ErrEmptySVG)
}

func TestParseSnippetFragment(t *testing.T) {
	doc, err := ParseSnippet(`<rect x="0" y="0" width="80" height="10"/><rect x="0" y="20" width="60" height="10"/>`)
	require.NoError(t, err)
	assert.EqualValues(t, 80, doc.Width)
	assert.EqualValues(t, 30, doc.Height)
	assert.Equal(t, 2, strings.Count(doc.Markup, " /> \n"))
}

// ============================================================
// Path parser
// ============================================================

func TestParsePathAbsoluteAndRelative(t *testing.T) {
	points, err := ParsePath("M10 10 h20 v5 L0,0 z")
	require.NoError(t, err)
	assert.Equal(t, []Point{
		{X: 10, Y: 10},
		{X: 30, Y: 10},
		{X: 30, Y: 15},
		{X: 0, Y: 0},
		{X: 10, Y: 10},
	}, points)
}

func TestParsePathCurvesAndCompactNumbers(t *testing.T) {
	b, err := PathBounds("M0 0C10-5 20 15 30 0q5 5 10 0a5 5 0 0 1 10 0")
	require.NoError(t, err)
	assert.EqualValues(t, 0, b.MinX)
	assert.EqualValues(t, -5, b.MinY)
	assert.EqualValues(t, 50, b.MaxX)
	assert.EqualValues(t, 15, b.MaxY)
}

func TestParsePathCompactArcFlags(t *testing.T) {
	points, err := ParsePath("M0 0a5 5 0 0120 20")
	require.NoError(t, err)
	assert.Equal(t, []Point{{X: 0, Y: 0}, {X: 20, Y: 20}}, points)

	b, err := PathBounds("M10 10A5,5,0,1,0,30,40a2 2 0 11-4 -4")
	require.NoError(t, err)
	assert.EqualValues(t, 10, b.MinX)
	assert.EqualValues(t, 10, b.MinY)
	assert.EqualValues(t, 30, b.MaxX)
	assert.EqualValues(t, 40, b.MaxY)

	_, err = ParsePath("M0 0a5 5 0 2 1 10 10")
	assert.Error(t, err)
}

func TestParsePathErrors(t *testing.T) {
	_, err := ParsePath("   ")
	assert.Error(t, err)

	_, err = ParsePath("M10")
	assert.Error(t, err)

	_, err = ParsePath("hello")
	assert.Error(t, err)
}

func TestCleanMarkupJoinsMultilineTags(t *testing.T) {
	got := CleanMarkup("<path\n\tfill-rule=\"evenodd\"\n  class=\"bar\"\r\n  d=\"M0 0h10v10H0z\"\n/>\n<rect width=\"4\"\n height=\"4\"></rect>")
	assert.Equal(t, `<path fill-rule="evenodd" class="bar" d="M0 0h10v10H0z" /><rect width="4" height="4" />`, got)

	doc, err := ParseSnippet("<path\n fill-rule=\"evenodd\"\n d=\"M0 0h10v10H0z\"/>")
	require.NoError(t, err)
	assert.Equal(t, `<path fill-rule="evenodd" d="M0 0h10v10H0z" /> `+"\n", doc.Markup)
}

func TestNormalizeMarkup(t *testing.T) {
	assert.Equal(t, `<path d="M0 0" /> `+"\n", NormalizeMarkup(`<path d="M0 0"/>`))
	assert.Equal(t, `<path d="M0 0" /> `+"\n", NormalizeMarkup(`<path d="M0 0"   />`))
}
