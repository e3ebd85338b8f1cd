package pubsub

import (
	"context"
	"sync"
	"time"
)

// DefaultBufferSize is the per-subscriber channel capacity of NewBroker.
const DefaultBufferSize = 64

// Broker delivers every published event to all current subscribers.
// Publish never blocks: a subscriber whose buffer is full misses the event
// and the miss is counted in Dropped.
type Broker[T any] struct {
	mu      sync.Mutex
	subs    map[uint64]chan Event[T]
	nextID  uint64
	buffer  int
	seq     uint64
	dropped uint64
	closed  bool
	now     func() time.Time
}

// NewBroker creates a broker with DefaultBufferSize.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](DefaultBufferSize)
}

// NewBrokerWithBuffer creates a broker whose subscribers buffer size
// events. Sizes below zero are treated as zero (unbuffered).
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[uint64]chan Event[T]),
		buffer: max(size, 0),
		now:    time.Now,
	}
}

// Subscribe returns a channel receiving events published from now on. The
// channel is closed when ctx is done or the broker is closed. Subscribing
// to a closed broker returns a closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event[T], b.buffer)
	if b.closed {
		close(ch)
		return ch
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	context.AfterFunc(ctx, func() { b.unsubscribe(id) })
	return ch
}

func (b *Broker[T]) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish sends an event to every subscriber and returns how many received
// it. Publishing on a closed broker does nothing.
func (b *Broker[T]) Publish(eventType EventType, payload T) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}

	b.seq++
	ev := Event[T]{Type: eventType, Payload: payload, Seq: b.seq, Time: b.now()}

	delivered := 0
	for _, ch := range b.subs {
		select {
		case ch <- ev:
			delivered++
		default:
			b.dropped++
		}
	}
	return delivered
}

// Close closes every subscriber channel. Later Subscribe calls get a
// closed channel and Publish calls are ignored. Close is idempotent.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}

// SubscriberCount returns the number of open subscriptions.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped because a subscriber's
// buffer was full.
func (b *Broker[T]) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
