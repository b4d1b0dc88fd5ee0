package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"skeleton-creator/internal/creator/codegen"
	"skeleton-creator/internal/creator/models"
	"skeleton-creator/internal/creator/presets"
	"skeleton-creator/internal/creator/repository"

	"github.com/gofiber/fiber/v3/log"
	"github.com/jinzhu/copier"
)

// ============================================================
// Application Controller
// ============================================================

var (
	ErrClosed       = errors.New("controller closed")
	ErrRenderFailed = errors.New("render failed")
)

// Renderer is the code generation step the controller re-runs on demand.
type Renderer interface {
	Render(d models.Design, opts codegen.Options) (codegen.Output, error)
}

type Options struct {
	Store    repository.Store
	Emitter  EventEmitter
	Tracker  Tracker
	Renderer Renderer
	Presets  *presets.Catalog
	Debounce time.Duration
}

func (o Options) withDefaults() Options {
	if o.Store == nil {
		o.Store = repository.NopStore{}
	}
	if o.Emitter == nil {
		o.Emitter = LogEmitter{}
	}
	if o.Tracker == nil {
		o.Tracker = LogTracker{}
	}
	if o.Renderer == nil {
		o.Renderer = codegen.MustNew()
	}
	if o.Presets == nil {
		o.Presets = presets.Default()
	}
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	return o
}

type action struct {
	ctx   context.Context
	fn    func(ctx context.Context) error
	reply chan error
}

// Controller владеет единственным Design State. Все изменения выполняются
// одной горутиной цикла, вызывающие ждут ответа.
type Controller struct {
	id   string
	opts Options

	design  models.Design
	change  string
	pending []func(ctx context.Context)
	colors  *Coalescer

	actions   chan action
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

func New(id string, design models.Design, opts Options) *Controller {
	c := &Controller{
		id:      id,
		opts:    opts.withDefaults(),
		design:  design,
		actions: make(chan action),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	c.colors = NewCoalescer(c.opts.Debounce, c.applyColor)
	go c.run()
	return c
}

func (c *Controller) ID() string { return c.id }

// Close останавливает цикл. Отложенные цвета отбрасываются.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.colors.Cancel()
		close(c.done)
	})
}

// wait блокируется, пока цикл не выйдет: после этого Save больше не вызывается.
func (c *Controller) wait(ctx context.Context) error {
	select {
	case <-c.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ============================================================
// Event loop
// ============================================================

func (c *Controller) run() {
	defer close(c.stopped)
	for {
		select {
		case <-c.done:
			return
		case a := <-c.actions:
			err := c.exec(a)
			c.commit(a.ctx)
			a.reply <- err
			c.drain(context.WithoutCancel(a.ctx))
		}
	}
}

func (c *Controller) exec(a action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[CREATOR] %s: action panic: %v", c.id, r)
			c.failSafe(a.ctx, fmt.Sprint(r))
			err = nil
		}
	}()
	return a.fn(a.ctx)
}

// commit - аналог componentDidUpdate: сохраняет состояние после изменения и
// планирует повторный монтаж превью на следующий цикл.
func (c *Controller) commit(ctx context.Context) {
	if c.change == "" {
		return
	}
	change := c.change
	c.change = ""

	c.emit(ctx, EventDesignChanged, change)
	if err := c.opts.Store.Save(ctx, c.id, repository.Encode(c.design)); err != nil {
		log.Warnf("[CREATOR] %s: persist failed: %v", c.id, err)
	}

	if c.design.Preview == models.PreviewSuspended {
		c.pending = append(c.pending, c.remount)
	}
}

func (c *Controller) drain(ctx context.Context) {
	for len(c.pending) > 0 {
		next := c.pending[0]
		c.pending = c.pending[1:]
		next(ctx)
	}
}

func (c *Controller) do(ctx context.Context, fn func(ctx context.Context) error) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	a := action{ctx: ctx, fn: fn, reply: make(chan error, 1)}
	select {
	case c.actions <- a:
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-a.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ============================================================
// Loop-side helpers (called only from the loop goroutine)
// ============================================================

func (c *Controller) changed(label string) {
	c.change = label
}

func (c *Controller) suspend(ctx context.Context) {
	if c.design.Preview == models.PreviewSuspended {
		return
	}
	c.design.Preview = models.PreviewSuspended
	c.emit(ctx, EventPreviewSuspended, nil)
}

func (c *Controller) remount(ctx context.Context) {
	if c.design.Preview == models.PreviewMounted {
		return
	}
	c.design.Preview = models.PreviewMounted
	c.emit(ctx, EventPreviewMounted, nil)
}

// failSafe сбрасывает дизайн к значениям по умолчанию вместо того, чтобы
// пробрасывать ошибку рендера дальше.
func (c *Controller) failSafe(ctx context.Context, reason string) {
	c.design.ResetToDefaults()
	c.design.PreviewError = "render failed, design reset: " + reason
	c.emit(ctx, EventDesignReset, reason)
	c.suspend(ctx)
	c.changed("reset")
}

func (c *Controller) emit(ctx context.Context, event string, data any) {
	c.opts.Emitter.Emit(ctx, event, data)
}

func (c *Controller) snapshot() (models.Design, error) {
	var out models.Design
	if err := copier.CopyWithOption(&out, &c.design, copier.Option{DeepCopy: true}); err != nil {
		return models.Design{}, fmt.Errorf("copy design: %w", err)
	}
	return out, nil
}

func (c *Controller) safeRender(d models.Design) (out codegen.Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRenderFailed, r)
		}
	}()
	out, err = c.opts.Renderer.Render(d, codegen.Options{ImportDeclaration: true})
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return out, err
}

// render генерирует код; при ошибке срабатывает fail-safe и рендерится
// дизайн по умолчанию.
func (c *Controller) render(ctx context.Context, mode models.Framework) (codegen.Output, error) {
	d, err := c.snapshot()
	if err != nil {
		return codegen.Output{}, err
	}
	if mode != "" {
		d.Mode = mode
	}

	out, err := c.safeRender(d)
	if err == nil {
		return out, nil
	}

	log.Warnf("[CREATOR] %s: %v", c.id, err)
	c.failSafe(ctx, err.Error())

	d, err = c.snapshot()
	if err != nil {
		return codegen.Output{}, err
	}
	if mode != "" {
		d.Mode = mode
	}
	out, err = c.safeRender(d)
	if err != nil {
		return codegen.Output{}, fmt.Errorf("render defaults: %w", err)
	}
	return out, nil
}

// ============================================================
// Queries
// ============================================================

// State returns a deep copy of the current Design State.
func (c *Controller) State(ctx context.Context) (models.Design, error) {
	var out models.Design
	err := c.do(ctx, func(context.Context) error {
		var err error
		out, err = c.snapshot()
		return err
	})
	return out, err
}

// Render возвращает сниппет для текущего фреймворка и live-вариант.
func (c *Controller) Render(ctx context.Context) (codegen.Output, error) {
	return c.RenderAs(ctx, "")
}

// RenderAs renders for mode without changing the selected framework. An empty
// mode means the selected one.
func (c *Controller) RenderAs(ctx context.Context, mode models.Framework) (codegen.Output, error) {
	var out codegen.Output
	err := c.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = c.render(ctx, mode)
		return err
	})
	return out, err
}

// CopySnippet returns the export snippet for the clipboard. An empty mode
// means the selected framework.
func (c *Controller) CopySnippet(ctx context.Context, mode models.Framework) (string, error) {
	out, err := c.RenderAs(ctx, mode)
	if err != nil {
		return "", err
	}
	track(c.opts.Tracker, Event{Category: "Creator", Action: "clipboard"})
	return out.Snippet, nil
}

// persist forces a save of the current state.
func (c *Controller) persist(ctx context.Context) error {
	return c.do(ctx, func(context.Context) error {
		c.changed("create")
		return nil
	})
}
