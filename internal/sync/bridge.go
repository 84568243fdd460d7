package sync

import (
	gosync "sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/studytrack/internal/tracker"
)

// ChangedMsg is a tea.Msg sent after the tracker committed a mutation.
type ChangedMsg struct {
	Event tracker.Event
}

// Subscriber is the part of the tracker the bridge listens to.
type Subscriber interface {
	Subscribe(fn tracker.Listener) (unsubscribe func())
}

// eventBuffer bounds how many undelivered events are kept. The UI reloads
// everything on each ChangedMsg, so dropping overflow loses nothing.
const eventBuffer = 16

// Bridge forwards tracker events into the Bubble Tea runtime. Listeners
// run on whatever goroutine mutated the tracker, so events are handed
// over on a buffered channel drained by a tea.Cmd.
type Bridge struct {
	src     Subscriber
	eventCh chan tracker.Event
	stopCh  chan struct{}
	mu      gosync.Mutex
	unsub   func()
	running bool
}

// New creates a bridge over src. Nothing is subscribed until Start.
func New(src Subscriber) *Bridge {
	return &Bridge{
		src:     src,
		eventCh: make(chan tracker.Event, eventBuffer),
		stopCh:  make(chan struct{}),
	}
}

// Start subscribes to the tracker and returns a command that waits for
// the first event.
func (b *Bridge) Start() tea.Cmd {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return nil
	}
	b.running = true
	b.unsub = b.src.Subscribe(b.send)

	return b.waitForEvent()
}

// Stop unsubscribes. A pending wait command returns nil.
func (b *Bridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return
	}
	b.unsub()
	close(b.stopCh)
	b.running = false
}

// send hands ev to the UI without blocking the mutating goroutine.
func (b *Bridge) send(ev tracker.Event) {
	select {
	case b.eventCh <- ev:
	default:
		// Drop if channel is full to avoid blocking the tracker
	}
}

func (b *Bridge) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-b.eventCh:
			return ChangedMsg{Event: ev}
		case <-b.stopCh:
			return nil
		}
	}
}

// WaitForNext returns a tea.Cmd that waits for the next tracker event.
// Call it after handling each ChangedMsg to keep listening.
func (b *Bridge) WaitForNext() tea.Cmd {
	return b.waitForEvent()
}
