package engine

import "github.com/deepwarren/deepwarren/internal/domain"

// NotificationThrottle caps how many System-level nudges the engine will
// emit per rolling window of ticks: real value, not dark patterns — the
// dispatcher never nags the player about frontier expansions or corpse
// decay beyond this budget.
type NotificationThrottle struct {
	maxPerWindow int
	windowTicks  int64
	sent         int
	windowStart  int64
}

func NewNotificationThrottle(maxPerWindow int, windowTicks int64) *NotificationThrottle {
	return &NotificationThrottle{maxPerWindow: maxPerWindow, windowTicks: windowTicks}
}

// Allow reports whether a System nudge may be emitted at tick now, and
// records it if so. Callers that skip the call (e.g. SystemWarning/Error
// events) are never throttled — only ambient INFO nudges are.
func (t *NotificationThrottle) Allow(now int64) bool {
	if now-t.windowStart >= t.windowTicks {
		t.windowStart = now
		t.sent = 0
	}
	if t.sent >= t.maxPerWindow {
		return false
	}
	t.sent++
	return true
}

// Nudge returns a SystemEvent wrapped in a slice if the throttle allows it
// at tick now, or nil otherwise — callers append the result directly.
func (t *NotificationThrottle) Nudge(now int64, text string) []domain.GameEvent {
	if !t.Allow(now) {
		return nil
	}
	return []domain.GameEvent{domain.SystemEvent{Text: text, Level: domain.SystemInfo}}
}
