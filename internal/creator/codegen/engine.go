package codegen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"skeleton-creator/internal/creator/models"
)

// ============================================================
// Codegen Engine
// ============================================================

const DefaultName = "MyLoader"

// Options управляет внешним видом сниппета.
type Options struct {
	// ImportDeclaration включает строки import (или <script> для Vue).
	ImportDeclaration bool
	// Name - имя компонента, по умолчанию MyLoader.
	Name string
}

// Output - экспортный сниппет и live-вариант для превью.
type Output struct {
	Mode    models.Framework `json:"mode"`
	Snippet string           `json:"snippet"`
	Live    string           `json:"live"`
}

type Engine struct {
	tmpl *template.Template
}

type view struct {
	Name       string
	RTL        bool
	Speed      string
	Width      string
	Height     string
	ViewBox    string
	Background string
	Foreground string
	Markup     string
	Imports    bool
	Components string
}

var indents = map[models.Framework]int{
	models.ReactDOM:    4,
	models.ReactNative: 4,
	models.Vue:         4,
	models.Angular:     2,
	models.Qwik:        4,
	models.SVG:         6,
}

func New() (*Engine, error) {
	tmpl, err := template.New("codegen").Delims("[[", "]]").Parse(templateSource)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Engine{tmpl: tmpl}, nil
}

// MustNew is New for package-level initialisation; the templates are constant.
func MustNew() *Engine {
	e, err := New()
	if err != nil {
		panic(err)
	}
	return e
}

// Snippet генерирует код для design.Mode.
func (e *Engine) Snippet(design models.Design, opts Options) (string, error) {
	d := design.WithDefaults()
	if _, ok := indents[d.Mode]; !ok {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownFramework, d.Mode)
	}
	return e.execute(string(d.Mode), e.view(d, d.Mode, opts))
}

// Live генерирует React-вариант, который понимает песочница превью, вне
// зависимости от выбранного фреймворка экспорта.
func (e *Engine) Live(design models.Design) (string, error) {
	d := design.WithDefaults()
	return e.execute("live", e.view(d, models.ReactDOM, Options{}))
}

func (e *Engine) Render(design models.Design, opts Options) (Output, error) {
	snippet, err := e.Snippet(design, opts)
	if err != nil {
		return Output{}, err
	}
	live, err := e.Live(design)
	if err != nil {
		return Output{}, err
	}
	return Output{Mode: design.WithDefaults().Mode, Snippet: snippet, Live: live}, nil
}

func (e *Engine) view(d models.Design, target models.Framework, opts Options) view {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}

	dl := dialectOf(target)
	v := view{
		Name:       name,
		RTL:        d.RTL,
		Speed:      formatFloat(d.Speed),
		Width:      formatFloat(d.Width),
		Height:     formatFloat(d.Height),
		ViewBox:    fmt.Sprintf("0 0 %s %s", formatFloat(d.Width), formatFloat(d.Height)),
		Background: d.BackgroundColor,
		Foreground: d.ForegroundColor,
		Markup:     renderMarkup(d.Draw, dl, indents[target]),
		Imports:    opts.ImportDeclaration,
	}
	if dl == dialectNative {
		v.Components = strings.Join(nativeComponents(shapeLines(d.Draw)), ", ")
	}
	return v
}

func (e *Engine) execute(name string, v view) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, v); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
