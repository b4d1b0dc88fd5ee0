package codegen

import (
	"strings"
	"testing"

	"skeleton-creator/internal/creator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDesign() models.Design {
	d := models.Defaults()
	d.Draw = models.FromShapes([]models.Shape{
		{Kind: models.ShapeRect, X: 48, Y: 8, RX: 3, RY: 3, Width: 88, Height: 6},
		{Kind: models.ShapeCircle, CX: 20, CY: 20, R: 20},
	})
	return d
}

func TestReactDOMSnippet(t *testing.T) {
	out, err := MustNew().Snippet(sampleDesign(), Options{ImportDeclaration: true})
	require.NoError(t, err)

	want := `import React from "react"
import ContentLoader from "react-content-loader"

const MyLoader = (props) => (
  <ContentLoader
    speed={2}
    width={400}
    height={160}
    viewBox="0 0 400 160"
    backgroundColor="#f3f3f3"
    foregroundColor="#ecebeb"
    {...props}
  >
    <rect x="48" y="8" rx="3" ry="3" width="88" height="6" />
    <circle cx="20" cy="20" r="20" />
  </ContentLoader>
)

export default MyLoader
`
	assert.Equal(t, want, out)
}

func TestLiveIsAlwaysReact(t *testing.T) {
	e := MustNew()
	d := sampleDesign()
	d.Mode = models.Angular
	d.RTL = true

	live, err := e.Live(d)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(live, "const MyLoader = (props) => (\n  <ContentLoader\n    rtl\n"))
	assert.True(t, strings.HasSuffix(live, "render(<MyLoader />)\n"))
	assert.NotContains(t, live, "import")
	assert.NotContains(t, live, "svg:")
}

func TestDeterministicAcrossFrameworks(t *testing.T) {
	e := MustNew()
	for _, f := range models.Frameworks() {
		d := sampleDesign()
		d.Mode = f
		first, err := e.Render(d, Options{ImportDeclaration: true})
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := e.Render(d, Options{ImportDeclaration: true})
			require.NoError(t, err)
			assert.Equal(t, first, again, "framework %s", f)
		}
		assert.Equal(t, f, first.Mode)
	}
}

func TestReactNativeSnippet(t *testing.T) {
	d := sampleDesign()
	d.Mode = models.ReactNative
	d.Draw = models.FromMarkup("<path fill-rule=\"evenodd\" d=\"M0 0h10v10z\" /> \n<rect x=\"1\" /> \n<path d=\"M1 1\" /> \n")

	out, err := MustNew().Snippet(d, Options{ImportDeclaration: true})
	require.NoError(t, err)

	assert.Contains(t, out, `import ContentLoader, { Path, Rect } from "react-content-loader/native"`)
	assert.Contains(t, out, `    <Path fillRule="evenodd" d="M0 0h10v10z" />`)
	assert.Contains(t, out, `    <Rect x="1" />`)
}

func TestAngularSnippet(t *testing.T) {
	d := sampleDesign()
	d.Mode = models.Angular
	d.RTL = true

	out, err := MustNew().Snippet(d, Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<content-loader\n"))
	assert.Contains(t, out, `  [rtl]="true"`)
	assert.Contains(t, out, `  <svg:rect x="48"`)
	assert.Contains(t, out, `  <svg:circle cx="20"`)
}

func TestVueSnippet(t *testing.T) {
	d := sampleDesign()
	d.Mode = models.Vue
	e := MustNew()

	with, err := e.Snippet(d, Options{ImportDeclaration: true})
	require.NoError(t, err)
	assert.Contains(t, with, `:speed="2"`)
	assert.Contains(t, with, `primaryColor="#f3f3f3"`)
	assert.Contains(t, with, `import { ContentLoader } from "vue-content-loader"`)
	assert.NotContains(t, with, ":rtl")

	without, err := e.Snippet(d, Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(without, "</template>\n"))
}

func TestQwikSnippet(t *testing.T) {
	d := sampleDesign()
	d.Mode = models.Qwik

	out, err := MustNew().Snippet(d, Options{ImportDeclaration: true, Name: "CardLoader"})
	require.NoError(t, err)
	assert.Contains(t, out, `import { component$ } from "@builder.io/qwik"`)
	assert.Contains(t, out, "export const CardLoader = component$(() => (")
	assert.True(t, strings.HasSuffix(out, "))\n"))
}

func TestSVGSnippet(t *testing.T) {
	d := sampleDesign()
	d.Mode = models.SVG
	d.Speed = 1.5
	d.RTL = true

	out, err := MustNew().Snippet(d, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, `dur="1.5s"`)
	assert.Contains(t, out, `style="transform: scaleX(-1)"`)
	assert.Contains(t, out, "      <rect x=\"48\" y=\"8\"")
	assert.Contains(t, out, `stop-color="#ecebeb"`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestFalsyFieldsFallBack(t *testing.T) {
	d := sampleDesign()
	d.Width, d.Height, d.Speed = 0, 0, 0
	d.BackgroundColor = ""

	out, err := MustNew().Snippet(d, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, `viewBox="0 0 400 160"`)
	assert.Contains(t, out, "speed={2}")
	assert.Contains(t, out, `backgroundColor="#f3f3f3"`)
}

func TestEmptyShapeSource(t *testing.T) {
	d := sampleDesign()
	d.Draw = models.ShapeSource{}

	out, err := MustNew().Snippet(d, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "  >\n\n  </ContentLoader>")
}

func TestUnknownFramework(t *testing.T) {
	d := sampleDesign()
	d.Mode = "svelte"
	_, err := MustNew().Snippet(d, Options{})
	assert.ErrorIs(t, err, models.ErrUnknownFramework)
}

func TestMultilineImportedTags(t *testing.T) {
	d := models.Defaults()
	d.Draw = models.FromMarkup("<path\n  fill-rule=\"evenodd\"\n  class=\"bar\"\n  d=\"M0 0h10v10H0z\" />\n<circle cx=\"4\"\n cy=\"4\" r=\"2\" />")
	e := MustNew()

	out, err := e.Snippet(d, Options{ImportDeclaration: true})
	require.NoError(t, err)
	assert.Contains(t, out, `<path fillRule="evenodd" className="bar" d="M0 0h10v10H0z" />`)
	assert.NotContains(t, out, "fill-rule")

	d.Mode = models.ReactNative
	out, err = e.Snippet(d, Options{ImportDeclaration: true})
	require.NoError(t, err)
	assert.Contains(t, out, `<Path fillRule="evenodd"`)
	assert.Contains(t, out, `<Circle cx="4" cy="4" r="2" />`)
}

func TestJSXAttributes(t *testing.T) {
	got := convert(`<path class="a" stroke-width="2" stroke-line-join="round" d="M0 0" />`, dialectJSX)
	assert.Equal(t, `<path className="a" strokeWidth="2" strokeLineJoin="round" d="M0 0" />`, got)
}
