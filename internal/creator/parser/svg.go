package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// ============================================================
// XML Structures
// ============================================================

var (
	ErrMalformedSVG = errors.New("malformed svg")
	ErrEmptySVG     = errors.New("svg has no drawable elements")
)

type svgRoot struct {
	XMLName xml.Name `xml:"svg"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Inner   string   `xml:",innerxml"`
	group
}

// group собирает фигуры для расчёта bounds, включая вложенные <g>.
type group struct {
	Paths   []pathElem   `xml:"path"`
	Rects   []rectElem   `xml:"rect"`
	Circles []circleElem `xml:"circle"`
	Groups  []group      `xml:"g"`
}

type pathElem struct {
	D string `xml:"d,attr"`
}

type rectElem struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
}

type circleElem struct {
	CX string `xml:"cx,attr"`
	CY string `xml:"cy,attr"`
	R  string `xml:"r,attr"`
}

// Document - результат импорта: размеры холста и разметка фигур.
type Document struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Markup string  `json:"markup"`
}

// ============================================================
// Parser
// ============================================================

// ParseSVG читает SVG документ (вставка или загруженный файл).
func ParseSVG(r io.Reader) (*Document, error) {
	var root svgRoot
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSVG, err)
	}

	markup := CleanMarkup(root.Inner)
	if !strings.Contains(markup, "<") {
		return nil, ErrEmptySVG
	}

	doc := &Document{
		Width:  parseLength(root.Width),
		Height: parseLength(root.Height),
		Markup: NormalizeMarkup(markup),
	}

	if doc.Width == 0 || doc.Height == 0 {
		w, h := viewBoxSize(root.ViewBox)
		if w == 0 || h == 0 {
			w, h = root.group.bounds().Size()
		}
		if doc.Width == 0 {
			doc.Width = w
		}
		if doc.Height == 0 {
			doc.Height = h
		}
	}

	return doc, nil
}

// ParseSnippet accepts either a complete <svg> document or a bare fragment of
// shape elements.
func ParseSnippet(s string) (*Document, error) {
	if !strings.Contains(strings.ToLower(s), "<svg") {
		s = `<svg xmlns="http://www.w3.org/2000/svg">` + s + `</svg>`
	}
	return ParseSVG(strings.NewReader(s))
}

// ============================================================
// Markup normalisation
// ============================================================

const drawable = `path|rect|circle|ellipse|line|polyline|polygon`

var (
	commentRe  = regexp.MustCompile(`(?s)<!--.*?-->`)
	stripRes   = stripPatterns("title", "desc", "metadata", "defs", "style", "script")
	emptyRe    = regexp.MustCompile(`(?s)<(` + drawable + `)(\s[^<>]*?)?\s*>\s*</(?:` + drawable + `)>`)
	betweenRe  = regexp.MustCompile(`>\s+<`)
	tagRe      = regexp.MustCompile(`<[^<>]+>`)
	spaceRe    = regexp.MustCompile(`\s+`)
	selfCloseR = regexp.MustCompile(`\s*/>`)
)

func stripPatterns(tags ...string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, tag := range tags {
		out = append(out,
			regexp.MustCompile(`(?is)<`+tag+`\b[^>]*/>`),
			regexp.MustCompile(`(?is)<`+tag+`\b[^>]*>.*?</`+tag+`\s*>`),
		)
	}
	return out
}

// CleanMarkup убирает комментарии и неотображаемые элементы, закрывает пустые
// пары тегов и схлопывает пробелы между тегами и внутри них. После этого
// каждый тег занимает одну строку.
func CleanMarkup(inner string) string {
	s := commentRe.ReplaceAllString(inner, "")
	for _, re := range stripRes {
		s = re.ReplaceAllString(s, "")
	}
	s = collapseTags(s)
	s = emptyRe.ReplaceAllString(s, "<$1$2 />")
	s = betweenRe.ReplaceAllString(s, "><")
	return strings.TrimSpace(s)
}

func collapseTags(s string) string {
	return tagRe.ReplaceAllStringFunc(s, func(tag string) string {
		return spaceRe.ReplaceAllString(tag, " ")
	})
}

// NormalizeMarkup ставит перевод строки после каждого самозакрывающегося тега.
func NormalizeMarkup(s string) string {
	return selfCloseR.ReplaceAllString(s, " /> \n")
}

// ============================================================
// Sizing helpers
// ============================================================

func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, "%") {
		return 0
	}
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func viewBoxSize(vb string) (float64, float64) {
	parts := strings.Fields(strings.ReplaceAll(vb, ",", " "))
	if len(parts) != 4 {
		return 0, 0
	}
	w, errW := strconv.ParseFloat(parts[2], 64)
	h, errH := strconv.ParseFloat(parts[3], 64)
	if errW != nil || errH != nil || w < 0 || h < 0 {
		return 0, 0
	}
	return w, h
}

func (g group) bounds() Box {
	var b Box
	for _, p := range g.Paths {
		if pb, err := PathBounds(p.D); err == nil {
			b.Union(pb)
		}
	}
	for _, r := range g.Rects {
		x, y := parseLength(r.X), parseLength(r.Y)
		b.Add(Point{X: x, Y: y})
		b.Add(Point{X: x + parseLength(r.Width), Y: y + parseLength(r.Height)})
	}
	for _, c := range g.Circles {
		cx, cy, r := parseLength(c.CX), parseLength(c.CY), parseLength(c.R)
		b.Add(Point{X: cx - r, Y: cy - r})
		b.Add(Point{X: cx + r, Y: cy + r})
	}
	for _, child := range g.Groups {
		b.Union(child.bounds())
	}
	return b
}
