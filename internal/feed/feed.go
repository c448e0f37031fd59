// Package feed turns the order event stream into role-scoped subscriptions.
// Each incoming snapshot replaces the previous one for its order id; stale
// and out-of-order deliveries are dropped by version.
package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"grab-atreat/internal/domain"

	"github.com/segmentio/kafka-go"
)

// MessageReader is satisfied by *kafka.Reader.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type subscriber struct {
	role         domain.Role
	identity     string
	restaurantID int
	ch           chan domain.Order
}

func (s *subscriber) wants(o *domain.Order) bool {
	switch s.role {
	case domain.RoleCustomer:
		return o.CustomerID == s.identity
	case domain.RolePartner:
		return o.RestaurantID == s.restaurantID
	case domain.RoleRider:
		return o.RiderID == s.identity || (o.Status == domain.StatusReady && o.RiderID == "")
	}
	return false
}

// Feed consumes order events and fans the latest snapshot per order out to
// subscribers.
type Feed struct {
	reader MessageReader

	mu       sync.RWMutex
	versions map[string]int64
	latest   map[string]domain.Order
	subs     map[*subscriber]bool
}

func New(reader MessageReader) *Feed {
	return &Feed{
		reader:   reader,
		versions: make(map[string]int64),
		latest:   make(map[string]domain.Order),
		subs:     make(map[*subscriber]bool),
	}
}

// Run consumes until the context is cancelled.
func (f *Feed) Run(ctx context.Context) {
	log.Println("[feed] starting order feed consumer")
	for {
		message, err := f.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[feed] read message: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("[feed] unmarshal event: %v", err)
			continue
		}
		f.Apply(event)
	}
}

// Apply ingests one event: authoritative-replace per order id, guarded by
// the version stamp so a late snapshot never regresses state.
func (f *Feed) Apply(event domain.OrderEvent) {
	f.mu.Lock()
	if event.Version <= f.versions[event.OrderID] {
		f.mu.Unlock()
		return
	}
	f.versions[event.OrderID] = event.Version
	f.latest[event.OrderID] = event.Order

	// Fanout stays under the lock so a concurrent cancel cannot close a
	// channel mid-send. Sends never block.
	for sub := range f.subs {
		if !sub.wants(&event.Order) {
			continue
		}
		select {
		case sub.ch <- event.Order:
		default:
			// slow consumer: drop rather than block the feed; the next
			// snapshot carries the full state anyway
		}
	}
	f.mu.Unlock()
}

// Snapshot returns the last known state of one order.
func (f *Feed) Snapshot(orderID string) (domain.Order, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	o, ok := f.latest[orderID]
	return o, ok
}

// Subscribe registers a role-scoped stream. The returned cancel func must be
// called to release the channel.
func (f *Feed) Subscribe(role domain.Role, identity string, restaurantID int) (<-chan domain.Order, func()) {
	sub := &subscriber{
		role:         role,
		identity:     identity,
		restaurantID: restaurantID,
		ch:           make(chan domain.Order, 16),
	}

	f.mu.Lock()
	f.subs[sub] = true
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if f.subs[sub] {
			delete(f.subs, sub)
			close(sub.ch)
		}
		f.mu.Unlock()
	}
	return sub.ch, cancel
}
