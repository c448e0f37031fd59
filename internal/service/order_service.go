package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"grab-atreat/internal/domain"
	"grab-atreat/internal/pricing"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrEmptyOrder             = errors.New("order must contain at least one item")
	ErrInvalidTransition      = errors.New("transition not allowed from current status")
	ErrOtpMismatch            = errors.New("supplied code does not match")
	ErrUnauthorized           = errors.New("actor is not allowed to perform this operation")
	ErrAlreadyReviewed        = errors.New("order already has a review")
	ErrRefundAlreadyRequested = errors.New("refund already requested")
	ErrRefundAlreadyResolved  = errors.New("refund already resolved")
	ErrRefundNotPending       = errors.New("no pending refund to resolve")
	// ErrSyncFailed wraps archive/publish failures. The local transition has
	// already committed when it is returned; callers get the updated order
	// alongside it.
	ErrSyncFailed = errors.New("order sync failed")
)

// Actor is the explicit caller identity for every operation. Partners carry
// the restaurant they own.
type Actor struct {
	Role         domain.Role
	ID           string
	RestaurantID int
}

// CheckoutRequest is the confirmed cart plus delivery details.
type CheckoutRequest struct {
	CustomerName   string
	RestaurantID   int
	RestaurantName string
	Type           domain.OrderType
	Target         domain.DeliveryTarget
	Lines          []domain.CartLine
	Tip            int64
	CouponCode     string
	RedeemPoints   bool
}

type RiderEarnings struct {
	Deliveries int   `json:"deliveries"`
	BasePay    int64 `json:"base_pay"`
	Tips       int64 `json:"tips"`
	Total      int64 `json:"total"`
}

// Base pay per completed delivery.
const riderBasePay = 40

// OrderService owns the order state machine. All status, review and refund
// mutation goes through it; transitions hold a per-order lock so two
// concurrent callers can never both succeed.
type OrderService struct {
	store     OrderStore
	ledger    LoyaltyLedger
	archive   OrderArchive
	publisher EventPublisher
	otp       *OTPIssuer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewOrderService(store OrderStore, ledger LoyaltyLedger, archive OrderArchive, publisher EventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		ledger:    ledger,
		archive:   archive,
		publisher: publisher,
		otp:       NewOTPIssuer(),
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *OrderService) orderLock(orderID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[orderID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[orderID] = l
	}
	return l
}

// Checkout creates a new PENDING order from the confirmed cart. Points are
// settled from the same quote the customer saw: the consumed points are
// debited and the earned points credited in one pass.
func (s *OrderService) Checkout(ctx context.Context, actor Actor, req CheckoutRequest) (*domain.Order, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, fmt.Errorf("%w: only customers place orders", ErrUnauthorized)
	}
	if len(req.Lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range req.Lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
	}

	balance, err := s.ledger.Balance(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("read loyalty balance: %w", err)
	}

	in := pricing.Input{
		Lines:         req.Lines,
		Type:          req.Type,
		Tip:           req.Tip,
		RedeemPoints:  req.RedeemPoints,
		PointsBalance: balance,
	}
	if req.CouponCode != "" {
		if coupon, ok := pricing.FindCoupon(req.CouponCode); ok {
			in.Coupon = &coupon
		}
	}
	quote := pricing.Quote(in)

	pickupOTP, deliveryOTP := s.otp.Issue(req.RestaurantID)
	order := &domain.Order{
		ID:             "ORD-" + uuid.NewString(),
		CustomerID:     actor.ID,
		CustomerName:   req.CustomerName,
		RestaurantID:   req.RestaurantID,
		RestaurantName: req.RestaurantName,
		Type:           req.Type,
		Target:         req.Target,
		Items:          append([]domain.CartLine(nil), req.Lines...),
		Quote:          quote,
		Tip:            req.Tip,
		Status:         domain.StatusPending,
		Version:        1,
		CreatedAt:      time.Now().UTC(),
		PickupOTP:      pickupOTP,
		DeliveryOTP:    deliveryOTP,
	}

	if quote.PointsConsumed > 0 {
		if err := s.ledger.Debit(ctx, actor.ID, quote.PointsConsumed); err != nil {
			s.otp.Release(req.RestaurantID, pickupOTP, deliveryOTP)
			return nil, fmt.Errorf("debit redeemed points: %w", err)
		}
	}
	if err := s.store.Save(order); err != nil {
		s.otp.Release(req.RestaurantID, pickupOTP, deliveryOTP)
		if quote.PointsConsumed > 0 {
			if refundErr := s.ledger.Credit(ctx, actor.ID, quote.PointsConsumed); refundErr != nil {
				log.Printf("[order-core] WARNING: points refund failed for %s: %v", actor.ID, refundErr)
			}
		}
		return nil, fmt.Errorf("save order: %w", err)
	}

	// Earned points are credited only once the order is durable.
	if quote.PointsEarned > 0 {
		if err := s.ledger.Credit(ctx, actor.ID, quote.PointsEarned); err != nil {
			log.Printf("[order-core] WARNING: points credit failed for %s: %v", actor.ID, err)
		}
	}

	return order.Clone(), s.afterCommit(ctx, order, "order_created", s.archiveInsert)
}

// Accept moves PENDING to COOKING. Partner-only, owning restaurant only.
func (s *OrderService) Accept(ctx context.Context, actor Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, "order_accepted", func(o *domain.Order) error {
		if err := requirePartner(actor, o); err != nil {
			return err
		}
		if o.Status != domain.StatusPending {
			return fmt.Errorf("%w: %s -> COOKING", ErrInvalidTransition, o.Status)
		}
		o.Status = domain.StatusCooking
		return nil
	})
}

// MarkReady moves COOKING to READY. Partner-only.
func (s *OrderService) MarkReady(ctx context.Context, actor Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, "order_ready", func(o *domain.Order) error {
		if err := requirePartner(actor, o); err != nil {
			return err
		}
		if o.Status != domain.StatusCooking {
			return fmt.Errorf("%w: %s -> READY", ErrInvalidTransition, o.Status)
		}
		o.Status = domain.StatusReady
		return nil
	})
}

// PickUp moves READY to PICKED_UP when the rider supplies the kitchen's
// pickup code. A mismatch leaves the order untouched.
func (s *OrderService) PickUp(ctx context.Context, actor Actor, orderID, suppliedOTP string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, "order_picked_up", func(o *domain.Order) error {
		if actor.Role != domain.RoleRider {
			return fmt.Errorf("%w: pickup is rider-only", ErrUnauthorized)
		}
		if o.Status != domain.StatusReady {
			return fmt.Errorf("%w: %s -> PICKED_UP", ErrInvalidTransition, o.Status)
		}
		if suppliedOTP != o.PickupOTP {
			return fmt.Errorf("%w: pickup code", ErrOtpMismatch)
		}
		o.Status = domain.StatusPickedUp
		o.RiderID = actor.ID
		return nil
	})
}

// Deliver moves PICKED_UP to DELIVERED when the assigned rider supplies the
// customer's delivery code.
func (s *OrderService) Deliver(ctx context.Context, actor Actor, orderID, suppliedOTP string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, "order_delivered", func(o *domain.Order) error {
		if actor.Role != domain.RoleRider {
			return fmt.Errorf("%w: delivery is rider-only", ErrUnauthorized)
		}
		if o.Status != domain.StatusPickedUp {
			return fmt.Errorf("%w: %s -> DELIVERED", ErrInvalidTransition, o.Status)
		}
		if o.RiderID != actor.ID {
			return fmt.Errorf("%w: order is assigned to another rider", ErrUnauthorized)
		}
		if suppliedOTP != o.DeliveryOTP {
			return fmt.Errorf("%w: delivery code", ErrOtpMismatch)
		}
		o.Status = domain.StatusDelivered
		s.otp.Release(o.RestaurantID, o.PickupOTP, o.DeliveryOTP)
		return nil
	})
}

// SubmitReview attaches a one-time review to a delivered order.
func (s *OrderService) SubmitReview(ctx context.Context, actor Actor, orderID string, rating int, comment string) (*domain.Order, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating %d out of range", domain.ErrInvalidInput, rating)
	}
	var saved domain.Review
	order, err := s.transition(ctx, actor, orderID, "order_reviewed", func(o *domain.Order) error {
		if err := requireOwningCustomer(actor, o); err != nil {
			return err
		}
		if o.Status != domain.StatusDelivered {
			return fmt.Errorf("%w: review requires DELIVERED", ErrInvalidTransition)
		}
		if o.Review != nil {
			return ErrAlreadyReviewed
		}
		saved = domain.Review{Rating: rating, Comment: comment, CreatedAt: time.Now().UTC()}
		o.Review = &saved
		return nil
	})
	if order != nil && s.archive != nil {
		if archiveErr := s.archive.SaveReview(ctx, orderID, saved); archiveErr != nil {
			log.Printf("[order-core] WARNING: archive review for %s: %v", orderID, archiveErr)
		}
	}
	return order, err
}

// RequestRefund opens the refund sub-workflow on a delivered order.
func (s *OrderService) RequestRefund(ctx context.Context, actor Actor, orderID, reason string) (*domain.Order, error) {
	return s.refundChange(ctx, actor, orderID, "refund_requested", func(o *domain.Order) error {
		if err := requireOwningCustomer(actor, o); err != nil {
			return err
		}
		if o.Status != domain.StatusDelivered {
			return fmt.Errorf("%w: refund requires DELIVERED", ErrInvalidTransition)
		}
		if o.Refund != nil {
			if o.Refund.Status == domain.RefundPending {
				return ErrRefundAlreadyRequested
			}
			return ErrRefundAlreadyResolved
		}
		o.Refund = &domain.Refund{Status: domain.RefundPending, Reason: reason}
		return nil
	})
}

// ResolveRefund settles a pending refund. Terminal either way.
func (s *OrderService) ResolveRefund(ctx context.Context, actor Actor, orderID string, decision domain.RefundStatus) (*domain.Order, error) {
	if decision != domain.RefundApproved && decision != domain.RefundRejected {
		return nil, fmt.Errorf("%w: refund decision %q", domain.ErrInvalidInput, decision)
	}
	return s.refundChange(ctx, actor, orderID, "refund_resolved", func(o *domain.Order) error {
		if err := requirePartner(actor, o); err != nil {
			return err
		}
		if o.Refund == nil {
			return ErrRefundNotPending
		}
		if o.Refund.Status != domain.RefundPending {
			return ErrRefundAlreadyResolved
		}
		o.Refund.Status = decision
		return nil
	})
}

// Get returns a role-visible snapshot of one order.
func (s *OrderService) Get(actor Actor, orderID string) (*domain.Order, error) {
	order, err := s.store.Get(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if !visibleTo(actor, order) {
		return nil, fmt.Errorf("%w: order not visible to actor", ErrUnauthorized)
	}
	return order, nil
}

// ListFor lists orders scoped by role: customers see their own, partners
// their restaurant's, riders their assigned plus the READY pool.
func (s *OrderService) ListFor(actor Actor) []domain.Order {
	switch actor.Role {
	case domain.RoleCustomer:
		return s.store.ListByCustomer(actor.ID)
	case domain.RolePartner:
		return s.store.ListByRestaurant(actor.RestaurantID)
	case domain.RoleRider:
		return s.store.ListForRider(actor.ID)
	}
	return nil
}

// EarningsFor sums a rider's completed deliveries: flat base pay plus tips.
func (s *OrderService) EarningsFor(riderID string) RiderEarnings {
	var e RiderEarnings
	for _, o := range s.store.ListForRider(riderID) {
		if o.Status != domain.StatusDelivered || o.RiderID != riderID {
			continue
		}
		e.Deliveries++
		e.Tips += o.Tip
	}
	e.BasePay = int64(e.Deliveries) * riderBasePay
	e.Total = e.BasePay + e.Tips
	return e
}

// transition applies mutate under the per-order lock. Guard failures leave
// the stored order untouched; on success the bumped version is saved and the
// event published.
func (s *OrderService) transition(ctx context.Context, actor Actor, orderID, eventType string, mutate func(*domain.Order) error) (*domain.Order, error) {
	lock := s.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	stored, err := s.store.Get(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	updated := stored.Clone()
	if err := mutate(updated); err != nil {
		return nil, err
	}
	updated.Version++

	if err := s.store.Save(updated); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	return updated.Clone(), s.afterCommit(ctx, updated, eventType, s.archiveStatus)
}

func (s *OrderService) refundChange(ctx context.Context, actor Actor, orderID, eventType string, mutate func(*domain.Order) error) (*domain.Order, error) {
	var refund domain.Refund
	order, err := s.transition(ctx, actor, orderID, eventType, func(o *domain.Order) error {
		if err := mutate(o); err != nil {
			return err
		}
		refund = *o.Refund
		return nil
	})
	if order != nil && s.archive != nil {
		if archiveErr := s.archive.SaveRefund(ctx, orderID, refund); archiveErr != nil {
			log.Printf("[order-core] WARNING: archive refund for %s: %v", orderID, archiveErr)
		}
	}
	return order, err
}

type archiveFn func(ctx context.Context, order *domain.Order) error

func (s *OrderService) archiveInsert(ctx context.Context, order *domain.Order) error {
	if s.archive == nil {
		return nil
	}
	return s.archive.InsertOrder(ctx, order)
}

func (s *OrderService) archiveStatus(ctx context.Context, order *domain.Order) error {
	if s.archive == nil {
		return nil
	}
	return s.archive.UpdateStatus(ctx, order.ID, order.Status, order.Version)
}

// afterCommit runs the collaborators once local state is already committed.
// Their failures are surfaced as ErrSyncFailed but never undo the transition.
func (s *OrderService) afterCommit(ctx context.Context, order *domain.Order, eventType string, archive archiveFn) error {
	var syncErr error

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:      eventType,
			OrderID:   order.ID,
			Status:    order.Status,
			Version:   order.Version,
			Order:     *order.Clone(),
			Timestamp: time.Now().UTC(),
		}
		if err := s.publisher.PublishOrder(ctx, event); err != nil {
			log.Printf("[order-core] WARNING: publish %s for %s: %v", eventType, order.ID, err)
			syncErr = err
		}
	}

	if err := archive(ctx, order); err != nil {
		log.Printf("[order-core] WARNING: archive %s for %s: %v", eventType, order.ID, err)
		syncErr = err
	}

	if syncErr != nil {
		return fmt.Errorf("%w: %v", ErrSyncFailed, syncErr)
	}
	return nil
}

func requirePartner(actor Actor, o *domain.Order) error {
	if actor.Role != domain.RolePartner {
		return fmt.Errorf("%w: partner-only operation", ErrUnauthorized)
	}
	if actor.RestaurantID != o.RestaurantID {
		return fmt.Errorf("%w: order belongs to another restaurant", ErrUnauthorized)
	}
	return nil
}

func requireOwningCustomer(actor Actor, o *domain.Order) error {
	if actor.Role != domain.RoleCustomer || actor.ID != o.CustomerID {
		return fmt.Errorf("%w: customer-only operation on own order", ErrUnauthorized)
	}
	return nil
}

func visibleTo(actor Actor, o *domain.Order) bool {
	switch actor.Role {
	case domain.RoleCustomer:
		return o.CustomerID == actor.ID
	case domain.RolePartner:
		return o.RestaurantID == actor.RestaurantID
	case domain.RoleRider:
		return o.RiderID == actor.ID || o.Status == domain.StatusReady
	}
	return false
}
