package service

import (
	"errors"
	"sort"
	"sync"

	"grab-atreat/internal/domain"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	// ErrRestaurantUnavailable is the admission policy failure: a BUSY or
	// OFFLINE kitchen never sees new orders. Checked by the ordering surface
	// before checkout, never inside the order state machine.
	ErrRestaurantUnavailable = errors.New("restaurant is not accepting orders")
)

type MenuItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Desc      string `json:"desc"`
	IsVeg     bool   `json:"is_veg"`
	Available bool   `json:"available"`
	Category  string `json:"category"`
}

type Restaurant struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Rating  string     `json:"rating"`
	ETA     string     `json:"eta"`
	Tags    []string   `json:"tags"`
	Offer   string     `json:"offer,omitempty"`
	PureVeg bool       `json:"pure_veg,omitempty"`
	Menu    []MenuItem `json:"menu"`
}

// CatalogService holds restaurants, their menus and their online status.
type CatalogService struct {
	mu          sync.RWMutex
	restaurants map[int]*Restaurant
	status      map[int]domain.UserStatus
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		restaurants: make(map[int]*Restaurant),
		status:      make(map[int]domain.UserStatus),
	}
}

// Seed installs the launch catalog.
func (s *CatalogService) Seed() {
	seed := []Restaurant{
		{ID: 1, Name: "Ovenly - Bakery", Rating: "4.8", ETA: "20 mins",
			Tags: []string{"Bakery", "Dessert", "Combos"}, Offer: "Buy 1 Get 1", PureVeg: true,
			Menu: []MenuItem{
				{ID: 101, Name: "Midnight Cocoa Croissant", Price: 120, Desc: "Rich chocolate filled buttery croissant", IsVeg: true, Available: true, Category: "Bakery"},
				{ID: 102, Name: "Honey-Lavender Pound Cake", Price: 150, Desc: "Floral slice with organic honey", IsVeg: true, Available: true, Category: "Bakery"},
				{ID: 107, Name: "Coffee + Cookie Combo", Price: 149, Desc: "Fresh coffee with a signature cookie", IsVeg: true, Available: true, Category: "Combos"},
			}},
		{ID: 2, Name: "Spicebell - Café", Rating: "4.5", ETA: "25 mins",
			Tags: []string{"Café", "Beverages", "Fast Food"}, Offer: "Flat ₹50 OFF", PureVeg: true,
			Menu: []MenuItem{
				{ID: 201, Name: "Masala Mocha Latte", Price: 180, Desc: "Spiced espresso fusion", IsVeg: true, Available: true, Category: "Beverages"},
				{ID: 202, Name: "Garlic Cheese Toast", Price: 160, Desc: "Zesty baked bread", IsVeg: true, Available: true, Category: "Fast Food"},
			}},
		{ID: 3, Name: "Amraban", Rating: "4.7", ETA: "40 mins",
			Tags: []string{"Konkani", "Mains", "Seafood"},
			Menu: []MenuItem{
				{ID: 301, Name: "Coconut Fish Curry", Price: 420, Desc: "Fresh catch in spiced gravy", Available: true, Category: "Mains"},
				{ID: 302, Name: "Palm Jaggery Payasam", Price: 220, Desc: "Traditional sweet pudding", IsVeg: true, Available: true, Category: "Desserts"},
			}},
		{ID: 7, Name: "Biryani Bliss", Rating: "4.6", ETA: "45 mins",
			Tags: []string{"Biryani", "Mains"},
			Menu: []MenuItem{
				{ID: 701, Name: "Signature Dum Biryani", Price: 280, Desc: "Aromatic basmati layers", Available: true, Category: "Biryani"},
			}},
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range seed {
		r := seed[i]
		s.restaurants[r.ID] = &r
		s.status[r.ID] = domain.StatusAvailable
	}
}

func (s *CatalogService) List() []Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		out = append(out, s.snapshot(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *CatalogService) Get(id int) (Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.restaurants[id]
	if !ok {
		return Restaurant{}, ErrRestaurantNotFound
	}
	return s.snapshot(r), nil
}

func (s *CatalogService) snapshot(r *Restaurant) Restaurant {
	cp := *r
	cp.Tags = append([]string(nil), r.Tags...)
	cp.Menu = append([]MenuItem(nil), r.Menu...)
	return cp
}

// Status reports a kitchen's online state; unknown restaurants are OFFLINE.
func (s *CatalogService) Status(id int) domain.UserStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.status[id]; ok {
		return st
	}
	return domain.StatusOffline
}

func (s *CatalogService) SetStatus(id int, status domain.UserStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[id]; !ok {
		return ErrRestaurantNotFound
	}
	s.status[id] = status
	return nil
}

// CheckAccepting enforces the admission policy for new orders.
func (s *CatalogService) CheckAccepting(id int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.restaurants[id]; !ok {
		return ErrRestaurantNotFound
	}
	if s.status[id] != domain.StatusAvailable {
		return ErrRestaurantUnavailable
	}
	return nil
}

// ToggleAvailability flips one menu item and reports its new state.
func (s *CatalogService) ToggleAvailability(restaurantID, itemID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[restaurantID]
	if !ok {
		return false, ErrRestaurantNotFound
	}
	for i := range r.Menu {
		if r.Menu[i].ID == itemID {
			r.Menu[i].Available = !r.Menu[i].Available
			return r.Menu[i].Available, nil
		}
	}
	return false, ErrMenuItemNotFound
}
