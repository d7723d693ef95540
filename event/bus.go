package event

import (
	"github.com/google/uuid"
)

// Handler processes specific event types
// Implementations are invoked synchronously from Emit
type Handler interface {
	// HandleEvent processes a single event
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function to a single-type subscription
type HandlerFunc func(ev GameEvent)

type funcHandler struct {
	types []EventType
	fn    HandlerFunc
}

func (h funcHandler) HandleEvent(ev GameEvent) { h.fn(ev) }
func (h funcHandler) EventTypes() []EventType  { return h.types }

// Stamp supplies the timeline and turn indices at emit time
type Stamp func() (timeline, turn int)

// Bus dispatches events to registered handlers
//
// Architecture:
//   - Synchronous dispatch, Emit returns after every handler ran
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Events emitted from inside a handler are queued and dispatched
//     after the current event completes, preserving FIFO order
type Bus struct {
	session    uuid.UUID
	handlers   map[EventType][]Handler
	stamp      Stamp
	pending    []GameEvent
	dispatched uint64
	inDispatch bool
}

// NewBus creates a bus with a fresh session identity
func NewBus() *Bus {
	return &Bus{
		session:  uuid.New(),
		handlers: make(map[EventType][]Handler),
	}
}

// Session returns the identity stamped on every event of this bus
func (b *Bus) Session() uuid.UUID {
	return b.session
}

// SetStamp installs the timeline/turn source, nil leaves events unstamped
func (b *Bus) SetStamp(s Stamp) {
	b.stamp = s
}

// Register adds a handler for its declared event types
func (b *Bus) Register(h Handler) {
	for _, t := range h.EventTypes() {
		b.handlers[t] = append(b.handlers[t], h)
	}
}

// Subscribe registers fn for the given types
func (b *Bus) Subscribe(fn HandlerFunc, types ...EventType) {
	b.Register(funcHandler{types: types, fn: fn})
}

// Emit stamps and dispatches the event
func (b *Bus) Emit(ev GameEvent) {
	ev.Session = b.session
	if b.stamp != nil {
		ev.Timeline, ev.Turn = b.stamp()
	}
	b.pending = append(b.pending, ev)
	if b.inDispatch {
		return
	}

	b.inDispatch = true
	for len(b.pending) > 0 {
		next := b.pending[0]
		b.pending = b.pending[1:]
		for _, h := range b.handlers[next.Type] {
			h.HandleEvent(next)
		}
		b.dispatched++
	}
	b.pending = b.pending[:0]
	b.inDispatch = false
}

// HasHandlers returns true if any handlers are registered for the given type
func (b *Bus) HasHandlers(t EventType) bool {
	return len(b.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (b *Bus) HandlerCount(t EventType) int {
	return len(b.handlers[t])
}

// Dispatched returns the number of events delivered since creation
func (b *Bus) Dispatched() uint64 {
	return b.dispatched
}
