package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"grab-atreat/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid mobile or password")
	ErrMobileTaken        = errors.New("mobile number already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInsufficientPoints = errors.New("loyalty balance too low")
)

// Registration welcome bonus, in points.
const welcomeBonus = 100

// Session is what the ordering surface carries between requests.
type Session struct {
	Token        string      `json:"token"`
	Role         domain.Role `json:"role"`
	Identity     string      `json:"identity"`
	Name         string      `json:"name"`
	RestaurantID int         `json:"restaurant_id,omitempty"`
}

type User struct {
	Mobile       string            `json:"mobile"`
	Name         string            `json:"name"`
	Role         domain.Role       `json:"role"`
	RestaurantID int               `json:"restaurant_id,omitempty"`
	Email        string            `json:"email"`
	Address      string            `json:"address"`
	Status       domain.UserStatus `json:"status"`
	Points       int64             `json:"points"`
	Favorites    []int             `json:"favorites"`
	passwordHash []byte
}

type RegisterRequest struct {
	Mobile       string      `json:"mobile"`
	Password     string      `json:"password"`
	Name         string      `json:"name"`
	Role         domain.Role `json:"role"`
	RestaurantID int         `json:"restaurant_id,omitempty"`
	Email        string      `json:"email"`
	Address      string      `json:"address"`
}

// SessionService owns identities, credentials and the loyalty ledger. Tokens
// live in the session cache; the in-memory user map is authoritative for the
// balance and the cache only mirrors it for display surfaces.
type SessionService struct {
	mu    sync.RWMutex
	users map[string]*User
	cache SessionCache
}

func NewSessionService(cache SessionCache) *SessionService {
	return &SessionService{users: make(map[string]*User), cache: cache}
}

// Seed installs one demo identity per role, mirroring the launch fixtures.
func (s *SessionService) Seed() {
	demo := []RegisterRequest{
		{Mobile: "9999999999", Password: "demo123", Name: "Asha Kulkarni", Role: domain.RoleCustomer,
			Email: "asha@example.com", Address: "DBJ College, Chiplun"},
		{Mobile: "8888888888", Password: "demo123", Name: "Ovenly - Bakery", Role: domain.RolePartner,
			RestaurantID: 1, Email: "contact@ovenly.example.com", Address: "Chiplun Market"},
		{Mobile: "7777777777", Password: "demo123", Name: "Sanjay Pawar", Role: domain.RoleRider,
			Email: "sanjay@example.com", Address: "Chiplun Station"},
	}
	for _, req := range demo {
		if _, err := s.register(req); err != nil {
			log.Printf("[session] seed %s: %v", req.Mobile, err)
		}
	}
}

func (s *SessionService) register(req RegisterRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Mobile]; exists {
		return nil, ErrMobileTaken
	}

	user := &User{
		Mobile:       req.Mobile,
		Name:         req.Name,
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
		Email:        req.Email,
		Address:      req.Address,
		Status:       domain.StatusAvailable,
		Favorites:    []int{},
		passwordHash: hash,
	}
	if user.Role == domain.RoleCustomer {
		user.Points = welcomeBonus
	}
	s.users[req.Mobile] = user
	return user, nil
}

// Register creates the account and logs it straight in.
func (s *SessionService) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	if req.Mobile == "" || req.Password == "" || req.Name == "" {
		return Session{}, fmt.Errorf("%w: mobile, password and name are required", domain.ErrInvalidInput)
	}
	switch req.Role {
	case "":
		req.Role = domain.RoleCustomer
	case domain.RoleCustomer, domain.RolePartner, domain.RoleRider:
	default:
		return Session{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, req.Role)
	}

	user, err := s.register(req)
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *SessionService) Login(ctx context.Context, mobile, password string) (Session, error) {
	s.mu.RLock()
	user, ok := s.users[mobile]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.passwordHash, []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.issueSession(ctx, user)
}

func (s *SessionService) issueSession(ctx context.Context, user *User) (Session, error) {
	session := Session{
		Token:        uuid.NewString(),
		Role:         user.Role,
		Identity:     user.Mobile,
		Name:         user.Name,
		RestaurantID: user.RestaurantID,
	}
	if err := s.cache.StoreSession(ctx, session); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

// Lookup resolves a token to the session it was issued for.
func (s *SessionService) Lookup(ctx context.Context, token string) (Session, error) {
	session, err := s.cache.LookupSession(ctx, token)
	if err != nil {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) Logout(ctx context.Context, token string) error {
	return s.cache.DeleteSession(ctx, token)
}

// Profile returns a copy of the user record without credentials.
func (s *SessionService) Profile(mobile string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[mobile]
	if !ok {
		return User{}, ErrUserNotFound
	}
	cp := *user
	cp.passwordHash = nil
	cp.Favorites = append([]int(nil), user.Favorites...)
	return cp, nil
}

type ProfileUpdate struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

func (s *SessionService) UpdateProfile(mobile string, update ProfileUpdate) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[mobile]
	if !ok {
		return User{}, ErrUserNotFound
	}
	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Address != "" {
		user.Address = update.Address
	}
	cp := *user
	cp.passwordHash = nil
	return cp, nil
}

// ToggleFavorite flips a restaurant in the customer's favorites and reports
// whether it is now favorited.
func (s *SessionService) ToggleFavorite(mobile string, restaurantID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[mobile]
	if !ok {
		return false, ErrUserNotFound
	}
	for i, id := range user.Favorites {
		if id == restaurantID {
			user.Favorites = append(user.Favorites[:i], user.Favorites[i+1:]...)
			return false, nil
		}
	}
	user.Favorites = append(user.Favorites, restaurantID)
	return true, nil
}

func (s *SessionService) SetStatus(mobile string, status domain.UserStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[mobile]
	if !ok {
		return ErrUserNotFound
	}
	user.Status = status
	return nil
}

// Balance, Credit and Debit make SessionService the loyalty ledger the order
// service depends on. The cache mirror is best-effort.

func (s *SessionService) Balance(ctx context.Context, customerID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[customerID]
	if !ok {
		return 0, ErrUserNotFound
	}
	return user.Points, nil
}

func (s *SessionService) Credit(ctx context.Context, customerID string, points int64) error {
	return s.adjustPoints(ctx, customerID, points)
}

func (s *SessionService) Debit(ctx context.Context, customerID string, points int64) error {
	return s.adjustPoints(ctx, customerID, -points)
}

func (s *SessionService) adjustPoints(ctx context.Context, customerID string, delta int64) error {
	s.mu.Lock()
	user, ok := s.users[customerID]
	if !ok {
		s.mu.Unlock()
		return ErrUserNotFound
	}
	if user.Points+delta < 0 {
		s.mu.Unlock()
		return ErrInsufficientPoints
	}
	user.Points += delta
	balance := user.Points
	s.mu.Unlock()

	if err := s.cache.SetBalance(ctx, customerID, balance); err != nil {
		log.Printf("[session] WARNING: mirror balance for %s: %v", customerID, err)
	}
	return nil
}

var _ LoyaltyLedger = (*SessionService)(nil)
