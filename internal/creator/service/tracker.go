package service

import "github.com/gofiber/fiber/v3/log"

// ============================================================
// Analytics
// ============================================================

// Event - событие аналитики: category / action / label.
type Event struct {
	Category string `json:"category"`
	Action   string `json:"action"`
	Label    string `json:"label,omitempty"`
}

// Tracker is fire-and-forget. Implementations must not block and must swallow
// their own failures.
type Tracker interface {
	Track(e Event)
}

type LogTracker struct{}

func (LogTracker) Track(e Event) {
	log.Infof("[ANALYTICS] %s / %s / %s", e.Category, e.Action, e.Label)
}

// track вызывает трекер и глушит панику: аналитика не должна ломать редактор.
func track(t Tracker, e Event) {
	if t == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("[ANALYTICS] tracker panic: %v", r)
		}
	}()
	t.Track(e)
}
