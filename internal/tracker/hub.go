package tracker

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventLogin         EventKind = "login"
	EventLogout        EventKind = "logout"
	EventTaskAdded     EventKind = "task_added"
	EventTaskStarted   EventKind = "task_started"
	EventTaskCompleted EventKind = "task_completed"
	EventTaskSkipped   EventKind = "task_skipped"
)

// Event is delivered to listeners after a successful mutation.
type Event struct {
	Kind   EventKind
	UserID string
	TaskID string
}

// Listener receives change events. It runs on the mutating goroutine
// after the tracker lock has been released.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// hub fans events out to listeners in registration order.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
	log    *zap.Logger
}

func newHub(log *zap.Logger) *hub {
	return &hub{log: log}
}

// subscribe registers fn and returns an idempotent removal func.
func (h *hub) subscribe(fn Listener) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscription{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return
		}
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// publish calls every listener registered at the time of the call.
// A panicking listener is logged and skipped.
func (h *hub) publish(ev Event) {
	h.mu.Lock()
	subs := make([]subscription, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		h.deliver(s, ev)
	}
}

func (h *hub) deliver(s subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("listener panicked",
				zap.Int("listener", s.id),
				zap.String("event", string(ev.Kind)),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	s.fn(ev)
}
