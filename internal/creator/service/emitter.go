package service

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v3/log"
)

// ============================================================
// EventEmitter
// ============================================================

const (
	EventDesignChanged    = "design:changed"
	EventPreviewSuspended = "preview:suspended"
	EventPreviewMounted   = "preview:mounted"
	EventDesignReset      = "design:reset"
)

// EventEmitter уведомляет внешние компоненты (превью, панель настроек) об
// изменениях. Контроллер получает интерфейс, а не транспорт.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// LogEmitter пишет события в debug лог.
type LogEmitter struct{}

func (LogEmitter) Emit(_ context.Context, event string, data any) {
	log.Debugf("[EVENT] %s %v", event, data)
}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	mu     sync.Mutex
	events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, EmittedEvent{Event: event, Data: data})
}

func (m *MockEmitter) Events() []EmittedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]EmittedEvent(nil), m.events...)
}

// Names returns the recorded event names in emission order.
func (m *MockEmitter) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.events))
	for _, e := range m.events {
		names = append(names, e.Event)
	}
	return names
}

func (m *MockEmitter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
