package services

import (
	"sync"

	"github.com/google/uuid"
)

// ChangeBus is the reactive subscription primitive behind every Watch
// method: stores publish a topic after each committed write, and
// subscribers re-run their query on each signal. Signals coalesce, so
// a slow subscriber sees at least one signal for any burst of writes.
type ChangeBus struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan struct{}
}

func NewChangeBus() *ChangeBus {
	return &ChangeBus{subs: make(map[string]map[string]chan struct{})}
}

// Publish signals every subscriber of topic, synchronously relative
// to the write that caused it. Never blocks on a slow subscriber.
func (b *ChangeBus) Publish(topic string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscription is a cancellable handle onto one topic. Cancel stops
// delivery; it does not affect writes already in flight.
type Subscription struct {
	C      <-chan struct{}
	cancel func()
}

func (s *Subscription) Cancel() { s.cancel() }

func (b *ChangeBus) Subscribe(topic string) *Subscription {
	id := uuid.NewString()
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[string]chan struct{})
	}
	b.subs[topic][id] = ch
	b.mu.Unlock()

	var once sync.Once
	return &Subscription{
		C: ch,
		cancel: func() {
			once.Do(func() {
				b.mu.Lock()
				if set := b.subs[topic]; set != nil {
					delete(set, id)
					if len(set) == 0 {
						delete(b.subs, topic)
					}
				}
				b.mu.Unlock()
			})
		},
	}
}

// watch turns a topic plus a query into a stream of result-set
// snapshots: the current set immediately, then a fresh one after
// every publish. Query errors are skipped; the next change retries.
func watch[T any](bus *ChangeBus, topic string, query func() ([]T, error)) (<-chan []T, func()) {
	sub := bus.Subscribe(topic)
	out := make(chan []T, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		emit := func() {
			snap, err := query()
			if err != nil {
				return
			}
			select {
			case out <- snap:
			case <-done:
			}
		}
		emit()
		for {
			select {
			case <-done:
				return
			case <-sub.C:
				emit()
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			sub.Cancel()
			close(done)
		})
	}
	return out, cancel
}
