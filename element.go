package bind

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is a single occurrence of a named event on an element.
type Event struct {
	Type   string
	Target *Element
	Data   any
	Time   time.Time
}

// Handler is invoked on the loop for every occurrence of a bound event.
type Handler func(e Event)

// Element is an event target owned by a Loop. Handlers can be bound from any
// goroutine, but always run on the loop.
type Element struct {
	name string
	loop *Loop

	mux      sync.Mutex
	handlers map[string][]Handler
}

// Element creates a new element on the loop. The name is used for logging
// only and need not be unique.
func (l *Loop) Element(name string) *Element {
	return &Element{
		name:     name,
		loop:     l,
		handlers: map[string][]Handler{},
	}
}

// Name returns the name the element was created with.
func (el *Element) Name() string {
	return el.name
}

// Loop returns the loop the element belongs to.
func (el *Element) Loop() *Loop {
	return el.loop
}

// Bind registers h for each of the space-separated event types in events.
// Handlers for the same event run in the order they were bound.
func (el *Element) Bind(events string, h Handler) *Element {
	el.mux.Lock()
	defer el.mux.Unlock()

	for _, name := range strings.Fields(events) {
		el.handlers[name] = append(el.handlers[name], h)
	}

	return el
}

// Unbind removes all handlers for each of the space-separated event types in
// events. Occurrences already queued on the loop are still dispatched to the
// handlers that were bound when they were triggered, and timers armed by
// binders are left alone.
func (el *Element) Unbind(events string) *Element {
	el.mux.Lock()
	defer el.mux.Unlock()

	for _, name := range strings.Fields(events) {
		delete(el.handlers, name)
	}

	return el
}

// Trigger enqueues an occurrence of event carrying data. It does not wait for
// handlers to run.
func (el *Element) Trigger(event string, data any) {
	e := Event{
		Type:   event,
		Target: el,
		Data:   data,
		Time:   el.loop.clock.Now(),
	}

	el.mux.Lock()
	handlers := append([]Handler(nil), el.handlers[event]...)
	el.mux.Unlock()

	el.loop.Do(func() {
		for _, h := range handlers {
			h(e)
		}
	})
}

// Set is an ordered collection of elements which binders attach to one by
// one, each element getting its own independent state.
type Set []*Element

// Of returns a Set of the given elements.
func Of(elements ...*Element) Set {
	return Set(elements)
}

// Each calls fn for every element in the set, and returns the set.
func (s Set) Each(fn func(el *Element)) Set {
	for _, el := range s {
		fn(el)
	}

	return s
}

// Bind binds h to events on every element in the set.
func (s Set) Bind(events string, h Handler) Set {
	return s.Each(func(el *Element) {
		el.Bind(events, h)
	})
}

// Callback is invoked by a binder with the element it was bound to and the
// event that caused the call.
type Callback func(target *Element, e Event)

func (el *Element) log(event string, delay time.Duration) *zap.Logger {
	return el.loop.logger.With(
		zap.String("element", el.name),
		zap.String("event", event),
		zap.Duration("delay", delay),
	)
}
