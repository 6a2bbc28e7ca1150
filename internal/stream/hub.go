// Package stream implements the live snapshot delivery for transaction
// lists. Every write to a user's transactions publishes the full
// current list; subscribers always replace their local state with the
// snapshot instead of patching it.
package stream

import (
	"sync"

	"github.com/expensetracker/backend/internal/models"
	"github.com/google/uuid"
)

// Snapshot is the full current transaction list of a user at the time
// of a write. Consumers must treat it as immutable.
type Snapshot struct {
	Transactions []models.Transaction
}

type subscriber struct {
	userID uuid.UUID
	ch     chan Snapshot
}

// Hub fans snapshots out to the subscribers of a user. It is safe for
// concurrent use.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	closed      bool
}

// NewHub returns a Hub ready for use.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Subscribe registers for the snapshots of one user. It returns the
// delivery channel and a cancel function. The cancel function is
// idempotent and closes the channel.
func (h *Hub) Subscribe(userID uuid.UUID) (<-chan Snapshot, func()) {
	// Buffer one snapshot so that Publish never has to wait for the
	// consumer. When the consumer lags, older snapshots are dropped,
	// only the latest one matters.
	sub := &subscriber{
		userID: userID,
		ch:     make(chan Snapshot, 1),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}

	h.subscribers[sub] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.ch)
			}
		})
	}

	return sub.ch, cancel
}

// Publish delivers the snapshot to all subscribers of the user. Slow
// subscribers have their stale pending snapshot replaced, Publish
// never blocks on them.
func (h *Hub) Publish(userID uuid.UUID, snapshot Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for sub := range h.subscribers {
		if sub.userID != userID {
			continue
		}

		select {
		case sub.ch <- snapshot:
		default:
			// drop the pending snapshot, then deliver the new one
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- snapshot:
			default:
			}
		}
	}
}

// Close terminates all subscriptions. Further Subscribe calls return a
// closed channel, further Publish calls are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for sub := range h.subscribers {
		close(sub.ch)
		delete(h.subscribers, sub)
	}
}
