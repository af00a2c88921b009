package serve

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrTooManySubscribers is returned by Subscribe when the feed is full.
var ErrTooManySubscribers = errors.New("too many event subscribers")

const (
	maxSubscribers   = 50
	subscriberBuffer = 64
)

// EventBroker fans out run lifecycle events to the /api/events feed. A slow
// subscriber never blocks dispatch: events it cannot buffer are dropped and
// counted.
type EventBroker struct {
	mu          sync.RWMutex
	subscribers map[chan BrokerEvent]struct{}
	closed      bool
	dropped     atomic.Uint64
}

func NewEventBroker() *EventBroker {
	return &EventBroker{
		subscribers: make(map[chan BrokerEvent]struct{}),
	}
}

// Subscribe registers a new feed subscriber. The caller must call
// Unsubscribe when done with the channel.
func (b *EventBroker) Subscribe() (chan BrokerEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errors.New("event broker closed")
	}
	if len(b.subscribers) >= maxSubscribers {
		return nil, ErrTooManySubscribers
	}

	ch := make(chan BrokerEvent, subscriberBuffer)
	b.subscribers[ch] = struct{}{}
	return ch, nil
}

func (b *EventBroker) Unsubscribe(ch chan BrokerEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
}

// Close closes all subscriber channels so their SSE handlers exit. Further
// Subscribe calls fail and further Publish calls are no-ops.
func (b *EventBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, ch)
	}
}

// Publish sends an event to every subscriber that has buffer space.
func (b *EventBroker) Publish(event BrokerEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped reports how many events were discarded for slow subscribers.
func (b *EventBroker) Dropped() uint64 {
	return b.dropped.Load()
}
