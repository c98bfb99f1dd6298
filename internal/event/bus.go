// Package event provides a small synchronous publish/subscribe bus.
//
// Subscribers run on the caller's goroutine in subscription order. The
// board is driven by a single UI event loop, so the bus does no locking;
// callers must not publish from multiple goroutines at once.
package event

// Key names an event stream, dotted by convention ("object.added").
type Key string

// Bus dispatches values of type T to pausable subscriptions.
type Bus[T any] struct {
	subs map[Key][]*Subscription[T]
}

// Subscription is one registered listener. Pausing skips delivery without
// losing the subscription's position in the dispatch order.
type Subscription[T any] struct {
	bus    *Bus[T]
	key    Key
	fn     func(T)
	paused bool
}

func NewBus[T any]() *Bus[T] {
	return &Bus[T]{subs: make(map[Key][]*Subscription[T])}
}

// Subscribe registers fn for key and returns its subscription handle.
func (b *Bus[T]) Subscribe(key Key, fn func(T)) *Subscription[T] {
	s := &Subscription[T]{bus: b, key: key, fn: fn}
	b.subs[key] = append(b.subs[key], s)
	return s
}

// Publish delivers v to every active subscription for key.
func (b *Bus[T]) Publish(key Key, v T) {
	for _, s := range b.subs[key] {
		if s.paused || s.fn == nil {
			continue
		}
		s.fn(v)
	}
}

func (s *Subscription[T]) Pause()  { s.paused = true }
func (s *Subscription[T]) Resume() { s.paused = false }

// Paused reports whether delivery is currently suppressed.
func (s *Subscription[T]) Paused() bool { return s.paused }

// Cancel removes the subscription from its bus.
func (s *Subscription[T]) Cancel() {
	subs := s.bus.subs[s.key]
	for i, other := range subs {
		if other == s {
			s.bus.subs[s.key] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}
