package broadcast

import (
	"context"
	"sync"
)

// Message wraps a value of type T delivered to subscribers.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages published after it subscribed.
type Subscriber[T any] interface {
	// Receive returns the delivery channel. It is closed by Close.
	Receive() <-chan Message[T]

	// Close stops delivery. It is idempotent.
	Close() error
}

type subscriber[T any] struct {
	ch     chan Message[T]
	closed bool
	mu     sync.RWMutex
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{ch: make(chan Message[T], bufferSize)}
}

func (s *subscriber[T]) Receive() <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send delivers without blocking. It reports false when the buffer is full
// or the subscriber is closed.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}

// Broadcaster fans a message out to every live subscriber.
// A publisher never blocks on a slow subscriber: when a subscriber's buffer
// is full the message is dropped for it and it is disconnected.
// All methods are safe for concurrent use.
type Broadcaster[T any] struct {
	subscribers map[*subscriber[T]]struct{}
	bufferSize  int
	closed      bool
	done        chan struct{}
	mu          sync.RWMutex
	wg          sync.WaitGroup
}

// New creates a broadcaster whose subscribers buffer bufferSize messages.
// Buffers smaller than one are raised to one.
func New[T any](bufferSize int) *Broadcaster[T] {
	return &Broadcaster[T]{
		subscribers: make(map[*subscriber[T]]struct{}),
		bufferSize:  max(bufferSize, 1),
		done:        make(chan struct{}),
	}
}

// Subscribe registers a new subscriber. It is removed when ctx is done.
// Subscribing to a closed broadcaster returns an already closed subscriber.
func (b *Broadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscriber[T](b.bufferSize)
	if b.closed {
		_ = sub.Close()
		return sub
	}
	b.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			select {
			case <-ctx.Done():
				b.unsubscribe(sub)
			case <-b.done:
			}
		}()
	}
	return sub
}

// Publish delivers data to all subscribers and returns how many received it.
func (b *Broadcaster[T]) Publish(data T) int {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return 0
	}

	var (
		delivered int
		slow      []*subscriber[T]
	)
	msg := Message[T]{Data: data}
	for sub := range b.subscribers {
		if sub.send(msg) {
			delivered++
		} else {
			slow = append(slow, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range slow {
		b.unsubscribe(sub)
	}
	return delivered
}

// Len returns the number of live subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes every subscriber. It is idempotent.
func (b *Broadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	for sub := range b.subscribers {
		_ = sub.Close()
	}
	clear(b.subscribers)
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}

func (b *Broadcaster[T]) unsubscribe(sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subscribers, sub)
	_ = sub.Close()
}
