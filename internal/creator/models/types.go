package models

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
)

// ============================================================
// Defaults
// ============================================================

const (
	DefaultWidth           = 400
	DefaultHeight          = 160
	DefaultSpeed           = 2
	DefaultBackgroundColor = "#f3f3f3"
	DefaultForegroundColor = "#ecebeb"
)

var (
	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidValue     = errors.New("invalid value")
	ErrUnknownFramework = errors.New("unknown framework")
	ErrUnknownMode      = errors.New("unknown editing mode")
	ErrUnknownTool      = errors.New("unknown tool")
)

// ============================================================
// Enums
// ============================================================

// Framework - целевой формат экспорта сниппета.
type Framework string

const (
	ReactDOM    Framework = "reactDom"
	ReactNative Framework = "reactNative"
	Vue         Framework = "vue"
	Angular     Framework = "angular"
	Qwik        Framework = "qwik"
	SVG         Framework = "svg"
)

// Frameworks returns every export target in menu order.
func Frameworks() []Framework {
	return []Framework{ReactDOM, ReactNative, Vue, Angular, Qwik, SVG}
}

func ParseFramework(s string) (Framework, error) {
	f := Framework(s)
	if !lo.Contains(Frameworks(), f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFramework, s)
	}
	return f, nil
}

// EditingMode выбирает способ ввода: ручное рисование, вставка SVG, загрузка файла.
type EditingMode string

const (
	EditCode    EditingMode = "code"
	EditSnippet EditingMode = "snippet"
	EditUpload  EditingMode = "upload"
)

func ParseEditingMode(s string) (EditingMode, error) {
	switch m := EditingMode(s); m {
	case EditCode, EditSnippet, EditUpload:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Tool - активный инструмент поверхности рисования.
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolPencil    Tool = "pencil"
	ToolLine      Tool = "line"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
	ToolPan       Tool = "pan"
)

func ParseTool(s string) (Tool, error) {
	t := Tool(s)
	if !lo.Contains([]Tool{ToolSelect, ToolPencil, ToolLine, ToolRectangle, ToolCircle, ToolPan}, t) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
	}
	return t, nil
}

// PreviewState заменяет флаг renderCanvas: suspended означает, что превью
// размонтировано и будет смонтировано заново на следующем цикле.
type PreviewState string

const (
	PreviewMounted   PreviewState = "mounted"
	PreviewSuspended PreviewState = "suspended"
)

// View is the effective editor mode derived from the design fields.
type View string

const (
	ViewDrawing        View = "drawing"
	ViewPreviewing     View = "previewing"
	ViewEditingSnippet View = "editing-snippet"
	ViewUploading      View = "uploading"
)

// ============================================================
// Shapes
// ============================================================

type ShapeKind string

const (
	ShapeRect   ShapeKind = "rect"
	ShapeCircle ShapeKind = "circle"
)

// Shape - примитив рисования. Для rect используются X, Y, RX, RY, Width, Height,
// для circle - CX, CY, R.
type Shape struct {
	Kind   ShapeKind `json:"kind" yaml:"kind"`
	X      float64   `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64   `json:"y,omitempty" yaml:"y,omitempty"`
	RX     float64   `json:"rx,omitempty" yaml:"rx,omitempty"`
	RY     float64   `json:"ry,omitempty" yaml:"ry,omitempty"`
	Width  float64   `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64   `json:"height,omitempty" yaml:"height,omitempty"`
	CX     float64   `json:"cx,omitempty" yaml:"cx,omitempty"`
	CY     float64   `json:"cy,omitempty" yaml:"cy,omitempty"`
	R      float64   `json:"r,omitempty" yaml:"r,omitempty"`
}

func (s Shape) Validate() error {
	for _, v := range []float64{s.X, s.Y, s.RX, s.RY, s.Width, s.Height, s.CX, s.CY, s.R} {
		if !Finite(v) {
			return fmt.Errorf("%w: non-finite coordinate", ErrInvalidValue)
		}
	}
	switch s.Kind {
	case ShapeRect:
		if s.Width < 0 || s.Height < 0 || s.RX < 0 || s.RY < 0 {
			return fmt.Errorf("%w: negative rect size", ErrInvalidValue)
		}
	case ShapeCircle:
		if s.R < 0 {
			return fmt.Errorf("%w: negative radius", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: shape kind %q", ErrInvalidValue, s.Kind)
	}
	return nil
}

// ShapeSource holds either drawn shapes or imported markup, never both.
type ShapeSource struct {
	Shapes []Shape `json:"shapes,omitempty"`
	Markup string  `json:"markup,omitempty"`
}

func FromShapes(shapes []Shape) ShapeSource {
	return ShapeSource{Shapes: append([]Shape(nil), shapes...)}
}

func FromMarkup(markup string) ShapeSource {
	return ShapeSource{Markup: markup}
}

func (s ShapeSource) Imported() bool {
	return s.Markup != ""
}

func (s ShapeSource) Empty() bool {
	return len(s.Shapes) == 0 && strings.TrimSpace(s.Markup) == ""
}

// ============================================================
// Design State
// ============================================================

type Design struct {
	Draw              ShapeSource  `json:"draw"`
	Width             float64      `json:"width"`
	Height            float64      `json:"height"`
	BackgroundColor   string       `json:"backgroundColor"`
	ForegroundColor   string       `json:"foregroundColor"`
	Speed             float64      `json:"speed"`
	Mode              Framework    `json:"mode"`
	RTL               bool         `json:"rtl"`
	GridVisibility    bool         `json:"gridVisibility"`
	EditingMode       EditingMode  `json:"editingMode"`
	Tool              Tool         `json:"tool"`
	ImageAsBackground string       `json:"imageAsBackground,omitempty"`
	Preview           PreviewState `json:"preview"`
	PreviewError      string       `json:"previewError,omitempty"`
}

// DefaultDraw is the facebook layout used on first start and after a reset.
func DefaultDraw() ShapeSource {
	return FromShapes([]Shape{
		{Kind: ShapeRect, X: 48, Y: 8, RX: 3, RY: 3, Width: 88, Height: 6},
		{Kind: ShapeRect, X: 48, Y: 26, RX: 3, RY: 3, Width: 52, Height: 6},
		{Kind: ShapeRect, X: 0, Y: 56, RX: 3, RY: 3, Width: 410, Height: 6},
		{Kind: ShapeRect, X: 0, Y: 72, RX: 3, RY: 3, Width: 380, Height: 6},
		{Kind: ShapeRect, X: 0, Y: 88, RX: 3, RY: 3, Width: 178, Height: 6},
		{Kind: ShapeCircle, CX: 20, CY: 20, R: 20},
	})
}

func Defaults() Design {
	return Design{
		Draw:            DefaultDraw(),
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		BackgroundColor: DefaultBackgroundColor,
		ForegroundColor: DefaultForegroundColor,
		Speed:           DefaultSpeed,
		Mode:            ReactDOM,
		GridVisibility:  true,
		EditingMode:     EditCode,
		Tool:            ToolSelect,
		Preview:         PreviewMounted,
	}
}

// ResetToDefaults восстанавливает поля, которые сбрасывает fail-safe
// восстановление. Режим экспорта, сетка и режим редактирования сохраняются.
func (d *Design) ResetToDefaults() {
	def := Defaults()
	d.Draw = def.Draw
	d.Width = def.Width
	d.Height = def.Height
	d.BackgroundColor = def.BackgroundColor
	d.ForegroundColor = def.ForegroundColor
	d.Speed = def.Speed
	d.Tool = def.Tool
	d.RTL = false
}

// WithDefaults returns a copy where falsy optional fields carry their defaults.
func (d Design) WithDefaults() Design {
	if d.Width <= 0 || !Finite(d.Width) {
		d.Width = DefaultWidth
	}
	if d.Height <= 0 || !Finite(d.Height) {
		d.Height = DefaultHeight
	}
	if d.Speed <= 0 || !Finite(d.Speed) {
		d.Speed = DefaultSpeed
	}
	if d.BackgroundColor == "" {
		d.BackgroundColor = DefaultBackgroundColor
	}
	if d.ForegroundColor == "" {
		d.ForegroundColor = DefaultForegroundColor
	}
	if d.Mode == "" {
		d.Mode = ReactDOM
	}
	return d
}

// View не зависит от Preview: suspended длится один цикл ремаунта и
// не меняет то, что видит пользователь.
func (d Design) View() View {
	switch d.EditingMode {
	case EditSnippet:
		return ViewEditingSnippet
	case EditUpload:
		return ViewUploading
	}
	if d.Tool == "" || d.Tool == ToolSelect || d.Tool == ToolPan {
		return ViewPreviewing
	}
	return ViewDrawing
}

// ============================================================
// Validation helpers
// ============================================================

// Finite отсекает NaN и ±Inf: такие значения строго не сравниваются с нулём
// и проходят проверки вида v < 0.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NormalizeColor проверяет hex цвет и приводит его к нижнему регистру.
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := colorful.Hex(s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return strings.ToLower(s), nil
}
