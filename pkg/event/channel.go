// Package event provides a typed, synchronous publish/subscribe channel.
//
// A Channel has one producer and any number of consumers. Publish blocks until
// every subscriber registered at the moment of the call has been invoked, in
// subscription order. Nothing is retained for subscribers that join later.
//
//	intents := event.New[domain.Intent]()
//	cancel := intents.Subscribe(func(in domain.Intent) { ... })
//	defer cancel()
//	intents.Publish(domain.OpenIntercom{ID: "42"})
package event

import "sync"

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Channel fans a value out to its subscribers synchronously.
// The zero value is ready to use.
type Channel[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber[T]
}

// New creates an empty channel.
func New[T any]() *Channel[T] {
	return &Channel[T]{}
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (c *Channel[T]) Subscribe(fn func(T)) (cancel func()) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { c.remove(id) })
	}
}

func (c *Channel[T]) remove(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.id == id {
			// Copy so snapshots taken by in-flight publishes stay intact.
			next := make([]subscriber[T], 0, len(c.subs)-1)
			next = append(next, c.subs[:i]...)
			c.subs = append(next, c.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers v to every current subscriber in subscription order.
// Subscribers may subscribe or cancel from inside their callback; such changes
// take effect for the next Publish.
func (c *Channel[T]) Publish(v T) {
	c.mu.Lock()
	subs := c.subs
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of registered subscribers.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
