package purfectview

import "sync"

// Emitter is a minimal synchronous event emitter. Handlers run in
// subscription order on the goroutine that calls Emit. On returns a
// removal func that is safe to call more than once.
type Emitter[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []emitterSub[T]
	closed bool
}

type emitterSub[T any] struct {
	id int
	fn func(T)
}

// NewEmitter creates an empty emitter.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// On registers a handler and returns a func that removes it.
func (e *Emitter[T]) On(fn func(T)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return func() {}
	}
	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, emitterSub[T]{id: id, fn: fn})
	removed := false
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if removed {
			return
		}
		removed = true
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers v to every registered handler in subscription order.
// The subscriber list is snapshotted first, so handlers may subscribe
// or unsubscribe without deadlocking.
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	snapshot := make([]emitterSub[T], len(e.subs))
	copy(snapshot, e.subs)
	e.mu.Unlock()

	for _, s := range snapshot {
		s.fn(v)
	}
}

// Close drops all handlers. Emit and On become no-ops afterward.
func (e *Emitter[T]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.subs = nil
}
