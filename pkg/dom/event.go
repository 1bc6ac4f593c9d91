package dom

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// Listener handles a dispatched event. A returned error is reported by
// Dispatch.
type Listener func(ev *Event) error

// Event is dispatched to the listeners of one element. Listeners may start
// asynchronous work with Go; Wait blocks until that work is done.
type Event struct {
	Type          string
	Target        *Element
	CurrentTarget *Element
	Detail        any

	ctx       context.Context
	wg        sync.WaitGroup
	mu        sync.Mutex
	asyncErrs []error
}

// NewEvent creates an event of the given type bound to ctx.
func NewEvent(ctx context.Context, typ string) *Event {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Event{Type: typ, ctx: ctx}
}

// Context returns the context the event was created with.
func (ev *Event) Context() context.Context {
	if ev.ctx == nil {
		return context.Background()
	}
	return ev.ctx
}

// Go runs fn on a new goroutine. Errors it returns are collected and reported
// by Wait.
func (ev *Event) Go(fn func(ctx context.Context) error) {
	ev.wg.Add(1)
	go func() {
		defer ev.wg.Done()
		if err := fn(ev.Context()); err != nil {
			ev.mu.Lock()
			ev.asyncErrs = append(ev.asyncErrs, err)
			ev.mu.Unlock()
		}
	}()
}

// Wait blocks until every function started with Go has returned and reports
// their errors.
func (ev *Event) Wait() error {
	ev.wg.Wait()
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return errors.Join(ev.asyncErrs...)
}

// AddEventListener registers fn for events of type typ.
func (e *Element) AddEventListener(typ string, fn Listener) {
	if fn == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[typ] = append(e.listeners[typ], fn)
}

// ListenerCount returns the number of listeners registered for typ.
func (e *Element) ListenerCount(typ string) int {
	return len(e.listeners[typ])
}

// Dispatch calls the listeners registered for ev.Type in registration order.
// Every listener runs; their errors are joined.
func (e *Element) Dispatch(ev *Event) error {
	if ev == nil {
		return errors.New("dom: event is nil")
	}
	if ev.Target == nil {
		ev.Target = e
	}
	ev.CurrentTarget = e
	var errs []error
	for _, fn := range slices.Clone(e.listeners[ev.Type]) {
		if err := fn(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Click dispatches a click event and returns it so callers can Wait on any
// asynchronous handlers.
func (e *Element) Click() (*Event, error) {
	ev := NewEvent(context.Background(), "click")
	return ev, e.Dispatch(ev)
}
