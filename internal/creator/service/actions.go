package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"skeleton-creator/internal/creator/models"
	"skeleton-creator/internal/creator/parser"

	"github.com/gofiber/fiber/v3/log"
	"github.com/h2non/filetype"
)

// ============================================================
// Mutations
// ============================================================

const (
	InputWidth  = "width"
	InputHeight = "height"
	InputSpeed  = "speed"

	ColorBackground = "backgroundColor"
	ColorForeground = "foregroundColor"

	FlagRTL  = "rtl"
	FlagGrid = "gridVisibility"
)

var ErrNotImage = errors.New("file is not an image")

// SetShapes принимает фигуры от поверхности рисования. Превью не
// перемонтируется: поверхность сама показывает штрих.
func (c *Controller) SetShapes(ctx context.Context, shapes []models.Shape) error {
	for i, s := range shapes {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return c.do(ctx, func(context.Context) error {
		c.design.Draw = models.FromShapes(shapes)
		c.changed("draw")
		return nil
	})
}

func (c *Controller) SetTool(ctx context.Context, name string) error {
	tool, err := models.ParseTool(name)
	if err != nil {
		return err
	}
	return c.do(ctx, func(ctx context.Context) error {
		c.design.Tool = tool
		c.suspend(ctx)
		c.changed("tool")
		track(c.opts.Tracker, Event{Category: "Draw", Action: "set tool", Label: string(tool)})
		return nil
	})
}

// ApplyPreset подставляет фигуры и размеры пресета и перемонтирует превью.
func (c *Controller) ApplyPreset(ctx context.Context, name string) error {
	p, err := c.opts.Presets.Lookup(name)
	if err != nil {
		return err
	}
	return c.do(ctx, func(ctx context.Context) error {
		c.design.Draw = models.FromShapes(p.Shapes)
		c.design.Width = p.Width
		c.design.Height = p.Height
		c.suspend(ctx)
		c.changed("preset")
		track(c.opts.Tracker, Event{Category: "Draw", Action: "set preset", Label: p.Name})
		return nil
	})
}

func (c *Controller) ResetColors(ctx context.Context) error {
	return c.do(ctx, func(ctx context.Context) error {
		c.design.BackgroundColor = models.DefaultBackgroundColor
		c.design.ForegroundColor = models.DefaultForegroundColor
		c.suspend(ctx)
		c.changed("colors")
		track(c.opts.Tracker, Event{Category: "Config", Action: "reset colors"})
		return nil
	})
}

// SetInput меняет числовое поле панели настроек. Пустое значение обнуляет
// поле, генератор кода подставит значение по умолчанию.
func (c *Controller) SetInput(ctx context.Context, name, value string) error {
	var v float64
	if s := strings.TrimSpace(value); s != "" {
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil || parsed < 0 || !models.Finite(parsed) {
			return fmt.Errorf("%w: %s=%q", models.ErrInvalidValue, name, value)
		}
		v = parsed
	}

	var field *float64
	switch name {
	case InputWidth:
		field = &c.design.Width
	case InputHeight:
		field = &c.design.Height
	case InputSpeed:
		field = &c.design.Speed
	default:
		return fmt.Errorf("%w: unknown input %q", models.ErrInvalidValue, name)
	}

	return c.do(ctx, func(ctx context.Context) error {
		*field = v
		c.suspend(ctx)
		c.changed(name)
		track(c.opts.Tracker, Event{Category: "Config", Action: "input", Label: name})
		return nil
	})
}

// SetColor проверяет цвет сразу, а применяет его после паузы в вводе.
func (c *Controller) SetColor(ctx context.Context, name, value string) error {
	if name != ColorBackground && name != ColorForeground {
		return fmt.Errorf("%w: unknown color %q", models.ErrInvalidValue, name)
	}
	color, err := models.NormalizeColor(value)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	c.colors.Push(name, color)
	return nil
}

func (c *Controller) applyColor(name, value string) {
	err := c.do(context.Background(), func(ctx context.Context) error {
		if name == ColorBackground {
			c.design.BackgroundColor = value
		} else {
			c.design.ForegroundColor = value
		}
		c.suspend(ctx)
		c.changed(name)
		track(c.opts.Tracker, Event{Category: "Config", Action: "input", Label: name})
		return nil
	})
	if err != nil {
		log.Debugf("[CREATOR] %s: drop color %s: %v", c.id, name, err)
	}
}

func (c *Controller) SetFlag(ctx context.Context, name string, checked bool) error {
	var field *bool
	switch name {
	case FlagRTL:
		field = &c.design.RTL
	case FlagGrid:
		field = &c.design.GridVisibility
	default:
		return fmt.Errorf("%w: unknown flag %q", models.ErrInvalidValue, name)
	}
	return c.do(ctx, func(ctx context.Context) error {
		*field = checked
		c.suspend(ctx)
		c.changed(name)
		track(c.opts.Tracker, Event{Category: "Config", Action: "input", Label: name})
		return nil
	})
}

// SetImageBackground кладёт картинку-подложку как data URI.
func (c *Controller) SetImageBackground(ctx context.Context, data []byte) error {
	if !filetype.IsImage(data) {
		return ErrNotImage
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return fmt.Errorf("detect image type: %w", err)
	}
	uri := "data:" + kind.MIME.Value + ";base64," + base64.StdEncoding.EncodeToString(data)

	return c.do(ctx, func(ctx context.Context) error {
		c.design.ImageAsBackground = uri
		c.suspend(ctx)
		c.changed("imageAsBackground")
		track(c.opts.Tracker, Event{Category: "Config", Action: "set image as background"})
		return nil
	})
}

func (c *Controller) ClearImageBackground(ctx context.Context) error {
	return c.do(ctx, func(ctx context.Context) error {
		c.design.ImageAsBackground = ""
		c.suspend(ctx)
		c.changed("imageAsBackground")
		track(c.opts.Tracker, Event{Category: "Config", Action: "set image as background"})
		return nil
	})
}

// SetFramework выбирает формат экспорта. Live-вариант от него не зависит,
// поэтому превью не трогаем.
func (c *Controller) SetFramework(ctx context.Context, name string) error {
	mode, err := models.ParseFramework(name)
	if err != nil {
		return err
	}
	return c.do(ctx, func(context.Context) error {
		c.design.Mode = mode
		c.changed("mode")
		track(c.opts.Tracker, Event{Category: "Config", Action: "mode", Label: string(mode)})
		return nil
	})
}

func (c *Controller) SetEditingMode(ctx context.Context, name string) error {
	mode, err := models.ParseEditingMode(name)
	if err != nil {
		return err
	}
	return c.do(ctx, func(context.Context) error {
		c.design.EditingMode = mode
		c.changed("editingMode")
		track(c.opts.Tracker, Event{Category: "Edit mode", Action: string(mode)})
		return nil
	})
}

// FinishSVG closes the snippet/upload panel without importing anything.
func (c *Controller) FinishSVG(ctx context.Context) error {
	return c.do(ctx, func(context.Context) error {
		c.design.EditingMode = models.EditCode
		c.changed("editingMode")
		return nil
	})
}

// ImportSVG читает загруженный SVG файл.
func (c *Controller) ImportSVG(ctx context.Context, r io.Reader) error {
	doc, err := parser.ParseSVG(r)
	return c.applyImport(ctx, doc, err)
}

// ImportSnippet reads pasted markup: a full <svg> or a bare fragment.
func (c *Controller) ImportSnippet(ctx context.Context, markup string) error {
	doc, err := parser.ParseSnippet(markup)
	return c.applyImport(ctx, doc, err)
}

// applyImport делает документ активным источником фигур. Ошибка разбора не
// меняет фигуры, а только оставляет подсказку в превью.
func (c *Controller) applyImport(ctx context.Context, doc *parser.Document, parseErr error) error {
	return c.do(ctx, func(ctx context.Context) error {
		if parseErr != nil {
			c.design.PreviewError = parseErr.Error()
			c.changed("previewError")
			log.Infof("[CREATOR] %s: svg import rejected: %v", c.id, parseErr)
			return fmt.Errorf("import svg: %w", parseErr)
		}

		if doc.Width > 0 {
			c.design.Width = doc.Width
		}
		if doc.Height > 0 {
			c.design.Height = doc.Height
		}
		c.design.Draw = models.FromMarkup(doc.Markup)
		c.design.EditingMode = models.EditCode
		c.design.PreviewError = ""
		c.suspend(ctx)
		c.changed("draw")
		track(c.opts.Tracker, Event{Category: "Draw", Action: "upload custom"})
		return nil
	})
}

// ResetRenderCanvas forces the preview to remount on the next cycle.
func (c *Controller) ResetRenderCanvas(ctx context.Context) error {
	return c.do(ctx, func(ctx context.Context) error {
		c.suspend(ctx)
		c.changed("renderCanvas")
		return nil
	})
}

// Reset вручную запускает fail-safe сброс.
func (c *Controller) Reset(ctx context.Context) error {
	return c.do(ctx, func(ctx context.Context) error {
		c.failSafe(ctx, "manual reset")
		c.design.PreviewError = ""
		return nil
	})
}
