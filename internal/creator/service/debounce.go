package service

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// ============================================================
// Coalescer
// ============================================================

const DefaultDebounce = 250 * time.Millisecond

// Coalescer склеивает серию значений в одно применение по заднему фронту.
// У каждого ключа свой таймер: новый Push заменяет отложенный вызов.
type Coalescer struct {
	after time.Duration
	apply func(key, value string)

	mu         sync.Mutex
	debouncers map[string]func(func())
}

func NewCoalescer(after time.Duration, apply func(key, value string)) *Coalescer {
	if after <= 0 {
		after = DefaultDebounce
	}
	return &Coalescer{
		after:      after,
		apply:      apply,
		debouncers: make(map[string]func(func())),
	}
}

func (c *Coalescer) Push(key, value string) {
	c.mu.Lock()
	d, ok := c.debouncers[key]
	if !ok {
		d = debounce.New(c.after)
		c.debouncers[key] = d
	}
	c.mu.Unlock()

	d(func() { c.apply(key, value) })
}

// Cancel drops every pending value. A debouncer fires its replacement no-op.
func (c *Coalescer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.debouncers {
		d(func() {})
	}
}
