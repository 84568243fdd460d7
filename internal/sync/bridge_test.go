package sync

import (
	"testing"

	"github.com/nhle/studytrack/internal/tracker"
)

type fakeSource struct {
	listeners []tracker.Listener
	removed   int
}

func (f *fakeSource) Subscribe(fn tracker.Listener) func() {
	f.listeners = append(f.listeners, fn)
	return func() { f.removed++ }
}

func (f *fakeSource) emit(ev tracker.Event) {
	for _, fn := range f.listeners {
		fn(ev)
	}
}

func TestBridgeDeliversEvents(t *testing.T) {
	src := &fakeSource{}
	b := New(src)

	wait := b.Start()
	if wait == nil {
		t.Fatal("Start returned nil command")
	}
	if again := b.Start(); again != nil {
		t.Fatal("second Start subscribed again")
	}
	if len(src.listeners) != 1 {
		t.Fatalf("listeners=%d, want 1", len(src.listeners))
	}

	src.emit(tracker.Event{Kind: tracker.EventTaskStarted, TaskID: "t2"})
	msg, ok := wait().(ChangedMsg)
	if !ok {
		t.Fatalf("msg=%T, want ChangedMsg", msg)
	}
	if msg.Event.TaskID != "t2" {
		t.Fatalf("TaskID=%q, want t2", msg.Event.TaskID)
	}

	src.emit(tracker.Event{Kind: tracker.EventLogout})
	if next, _ := b.WaitForNext()().(ChangedMsg); next.Event.Kind != tracker.EventLogout {
		t.Fatalf("next event=%v, want logout", next.Event.Kind)
	}
}

func TestBridgeDropsOverflow(t *testing.T) {
	src := &fakeSource{}
	b := New(src)
	b.Start()

	// Must not block even though nobody drains the channel.
	for i := 0; i < eventBuffer*2; i++ {
		src.emit(tracker.Event{Kind: tracker.EventTaskAdded})
	}
	if got := len(b.eventCh); got != eventBuffer {
		t.Fatalf("buffered=%d, want %d", got, eventBuffer)
	}
}

func TestBridgeStop(t *testing.T) {
	src := &fakeSource{}
	b := New(src)
	wait := b.Start()

	b.Stop()
	b.Stop()
	if src.removed != 1 {
		t.Fatalf("unsubscribed %d times, want 1", src.removed)
	}
	if msg := wait(); msg != nil {
		t.Fatalf("wait after Stop returned %v, want nil", msg)
	}
}
