package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Path Parser
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box - ограничивающий прямоугольник.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
	set                    bool
}

func (b *Box) Add(p Point) {
	if !b.set {
		b.MinX, b.MaxX = p.X, p.X
		b.MinY, b.MaxY = p.Y, p.Y
		b.set = true
		return
	}
	b.MinX = math.Min(b.MinX, p.X)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

func (b *Box) Union(o Box) {
	if !o.set {
		return
	}
	b.Add(Point{X: o.MinX, Y: o.MinY})
	b.Add(Point{X: o.MaxX, Y: o.MaxY})
}

func (b Box) Empty() bool { return !b.set }

// Size returns the far edge of the box measured from the origin, which is what
// a canvas needs to show the whole drawing.
func (b Box) Size() (float64, float64) {
	if !b.set {
		return 0, 0
	}
	return math.Max(b.MaxX, 0), math.Max(b.MaxY, 0)
}

var (
	commandRe = regexp.MustCompile(`([MmLlHhVvCcSsQqTtAaZz])([^MmLlHhVvCcSsQqTtAaZz]*)`)
	numberRe  = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
)

// arity - сколько чисел занимает один сегмент команды.
var arity = map[byte]int{
	'M': 2, 'L': 2, 'T': 2,
	'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4,
	'A': 7,
	'Z': 0,
}

// ParsePath парсит SVG path в список опорных точек. Для кривых учитываются
// контрольные точки, так что bounds получаются с запасом.
func ParsePath(d string) ([]Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var points []Point
	var cur, start Point

	matches := commandRe.FindAllStringSubmatch(d, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no path commands in %q", d)
	}

	for _, match := range matches {
		cmd := match[1][0]
		upper := cmd &^ 0x20
		relative := cmd != upper
		args := parseCoords(match[2])
		if upper == 'A' {
			args = parseArcArgs(match[2])
		}

		n := arity[upper]
		if n == 0 {
			cur = start
			points = append(points, cur)
			continue
		}
		if len(args) < n {
			return nil, fmt.Errorf("command %c: want %d args, got %d", cmd, n, len(args))
		}

		for i := 0; i+n <= len(args); i += n {
			seg := args[i : i+n]
			base := Point{}
			if relative {
				base = cur
			}

			switch upper {
			case 'H':
				cur.X = base.X + seg[0]
			case 'V':
				cur.Y = base.Y + seg[0]
			case 'A':
				cur = Point{X: base.X + seg[5], Y: base.Y + seg[6]}
			default:
				// контрольные точки C/S/Q + конечная точка
				for j := 0; j+1 < n-2; j += 2 {
					points = append(points, Point{X: base.X + seg[j], Y: base.Y + seg[j+1]})
				}
				cur = Point{X: base.X + seg[n-2], Y: base.Y + seg[n-1]}
			}
			points = append(points, cur)

			// M с несколькими парами: остальные пары - LineTo
			if upper == 'M' && i == 0 {
				start = cur
			}
		}
	}

	return points, nil
}

// PathBounds returns the bounding box of a path's anchor and control points.
func PathBounds(d string) (Box, error) {
	points, err := ParsePath(d)
	if err != nil {
		return Box{}, err
	}
	var b Box
	for _, p := range points {
		b.Add(p)
	}
	return b, nil
}

func parseCoords(s string) []float64 {
	var coords []float64
	for _, part := range numberRe.FindAllString(s, -1) {
		val, err := strconv.ParseFloat(part, 64)
		if err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}

// parseArcArgs читает аргументы A/a. Флаги large-arc и sweep - одиночные
// цифры 0/1 и могут идти без разделителя: "a5 5 0 0120 20".
func parseArcArgs(s string) []float64 {
	var args []float64
	for i := 0; ; {
		for i < len(s) && strings.IndexByte(" \t\r\n\f,", s[i]) >= 0 {
			i++
		}
		if i >= len(s) {
			return args
		}
		if k := len(args) % 7; k == 3 || k == 4 {
			if s[i] != '0' && s[i] != '1' {
				return args
			}
			args = append(args, float64(s[i]-'0'))
			i++
			continue
		}
		loc := numberRe.FindStringIndex(s[i:])
		if loc == nil || loc[0] != 0 {
			return args
		}
		val, err := strconv.ParseFloat(s[i:i+loc[1]], 64)
		if err != nil {
			return args
		}
		args = append(args, val)
		i += loc[1]
	}
}
