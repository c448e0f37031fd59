package storage

import (
	"errors"
	"sort"
	"sync"

	"grab-atreat/internal/domain"
)

var ErrNotFound = errors.New("order not found in store")

// MemoryOrderStore is the authoritative local order state. Orders are never
// deleted; terminal states persist as history.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]*domain.Order)}
}

func (s *MemoryOrderStore) Save(order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order.Clone()
	return nil
}

func (s *MemoryOrderStore) Get(id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return order.Clone(), nil
}

func (s *MemoryOrderStore) ListByCustomer(customerID string) []domain.Order {
	return s.list(func(o *domain.Order) bool { return o.CustomerID == customerID })
}

func (s *MemoryOrderStore) ListByRestaurant(restaurantID int) []domain.Order {
	return s.list(func(o *domain.Order) bool { return o.RestaurantID == restaurantID })
}

// ListForRider returns the rider's assigned orders plus the READY pool.
func (s *MemoryOrderStore) ListForRider(riderID string) []domain.Order {
	return s.list(func(o *domain.Order) bool {
		return o.RiderID == riderID || (o.Status == domain.StatusReady && o.RiderID == "")
	})
}

func (s *MemoryOrderStore) list(match func(*domain.Order) bool) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Order{}
	for _, o := range s.orders {
		if match(o) {
			out = append(out, *o.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
