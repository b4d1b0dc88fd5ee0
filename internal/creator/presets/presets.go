package presets

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"skeleton-creator/internal/creator/models"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Preset Library
// ============================================================

var ErrUnknownPreset = errors.New("unknown preset")

//go:embed presets.yaml
var catalogYAML []byte

// Preset - именованный шаблон: фигуры и размеры холста.
type Preset struct {
	Name   string         `json:"name" yaml:"name"`
	Title  string         `json:"title" yaml:"title"`
	Width  float64        `json:"width" yaml:"width"`
	Height float64        `json:"height" yaml:"height"`
	Shapes []models.Shape `json:"shapes" yaml:"shapes"`
}

// Catalog is an ordered, read-only set of presets.
type Catalog struct {
	items []Preset
	index map[string]int
}

// Parse разбирает YAML каталог и проверяет фигуры.
func Parse(data []byte) (*Catalog, error) {
	var items []Preset
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}

	c := &Catalog{index: make(map[string]int, len(items))}
	for _, p := range items {
		if p.Name == "" {
			return nil, fmt.Errorf("preset without name")
		}
		if _, dup := c.index[p.Name]; dup {
			return nil, fmt.Errorf("duplicate preset %q", p.Name)
		}
		for i, s := range p.Shapes {
			if err := s.Validate(); err != nil {
				return nil, fmt.Errorf("preset %q shape %d: %w", p.Name, i, err)
			}
		}
		c.index[p.Name] = len(c.items)
		c.items = append(c.items, p)
	}
	return c, nil
}

func (c *Catalog) Lookup(name string) (Preset, error) {
	i, ok := c.index[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	p := c.items[i]
	p.Shapes = append([]models.Shape(nil), p.Shapes...)
	return p, nil
}

func (c *Catalog) All() []Preset {
	out := make([]Preset, 0, len(c.items))
	for _, p := range c.items {
		p.Shapes = append([]models.Shape(nil), p.Shapes...)
		out = append(out, p)
	}
	return out
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.items))
	for _, p := range c.items {
		names = append(names, p.Name)
	}
	return names
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. The embedded file is part of the
// binary, so a parse failure is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
