package codegen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"skeleton-creator/internal/creator/models"

	"github.com/samber/lo"
)

// ============================================================
// Shape markup
// ============================================================

// dialect describes how shape markup is spelled in a target framework.
type dialect int

const (
	dialectSVG dialect = iota
	dialectJSX
	dialectNative
	dialectAngular
)

func dialectOf(f models.Framework) dialect {
	switch f {
	case models.ReactDOM:
		return dialectJSX
	case models.ReactNative:
		return dialectNative
	case models.Angular:
		return dialectAngular
	}
	return dialectSVG
}

// shapeLines рендерит источник фигур в строки SVG разметки, по одной на элемент.
func shapeLines(src models.ShapeSource) []string {
	if src.Imported() {
		markup := tagRe.ReplaceAllStringFunc(src.Markup, func(tag string) string {
			return spaceRe.ReplaceAllString(tag, " ")
		})
		lines := strings.Split(markup, "\n")
		lines = lo.Map(lines, func(l string, _ int) string { return strings.TrimSpace(l) })
		return lo.Compact(lines)
	}

	out := make([]string, 0, len(src.Shapes))
	for _, s := range src.Shapes {
		switch s.Kind {
		case models.ShapeRect:
			out = append(out, fmt.Sprintf(`<rect x="%s" y="%s" rx="%s" ry="%s" width="%s" height="%s" />`,
				formatFloat(s.X), formatFloat(s.Y), formatFloat(s.RX), formatFloat(s.RY), formatFloat(s.Width), formatFloat(s.Height)))
		case models.ShapeCircle:
			out = append(out, fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" />`,
				formatFloat(s.CX), formatFloat(s.CY), formatFloat(s.R)))
		}
	}
	return out
}

var (
	openTagRe  = regexp.MustCompile(`<(/?)([a-zA-Z][a-zA-Z0-9]*)`)
	kebabRe    = regexp.MustCompile(`\s([a-z]+(?:-[a-z]+)+)=`)
	classAttrR = regexp.MustCompile(`\sclass=`)
	// тег, записанный в несколько строк, сводится к одной
	tagRe   = regexp.MustCompile(`<[^<>]+>`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// convert переводит строку разметки в диалект фреймворка.
func convert(line string, d dialect) string {
	switch d {
	case dialectJSX:
		return jsxAttributes(line)
	case dialectNative:
		line = openTagRe.ReplaceAllStringFunc(line, func(m string) string {
			sub := openTagRe.FindStringSubmatch(m)
			return "<" + sub[1] + capitalize(sub[2])
		})
		return jsxAttributes(line)
	case dialectAngular:
		return openTagRe.ReplaceAllStringFunc(line, func(m string) string {
			sub := openTagRe.FindStringSubmatch(m)
			return "<" + sub[1] + "svg:" + sub[2]
		})
	}
	return line
}

func jsxAttributes(line string) string {
	line = classAttrR.ReplaceAllString(line, " className=")
	return kebabRe.ReplaceAllStringFunc(line, func(m string) string {
		name := strings.TrimSuffix(strings.TrimSpace(m), "=")
		parts := strings.Split(name, "-")
		for i := 1; i < len(parts); i++ {
			parts[i] = capitalize(parts[i])
		}
		return " " + strings.Join(parts, "") + "="
	})
}

// nativeComponents returns the react-native-svg components used by lines, in
// order of first use.
func nativeComponents(lines []string) []string {
	var names []string
	for _, l := range lines {
		for _, sub := range openTagRe.FindAllStringSubmatch(l, -1) {
			if sub[1] == "" {
				names = append(names, capitalize(sub[2]))
			}
		}
	}
	return lo.Uniq(names)
}

func renderMarkup(src models.ShapeSource, d dialect, indent int) string {
	pad := strings.Repeat(" ", indent)
	lines := lo.Map(shapeLines(src), func(l string, _ int) string {
		return pad + convert(l, d)
	})
	return strings.Join(lines, "\n")
}

// ============================================================
// Formatting helpers
// ============================================================

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
