package service

import (
	"context"

	"grab-atreat/internal/domain"
)

// OrderStore is the authoritative in-memory state. It must update
// synchronously with each transition so UI-visible state is never ambiguous.
type OrderStore interface {
	Save(order *domain.Order) error
	Get(id string) (*domain.Order, error)
	ListByCustomer(customerID string) []domain.Order
	ListByRestaurant(restaurantID int) []domain.Order
	ListForRider(riderID string) []domain.Order
}

// LoyaltyLedger credits and debits customer points. Debit never drives a
// balance negative; the order service only debits what the quote consumed.
type LoyaltyLedger interface {
	Balance(ctx context.Context, customerID string) (int64, error)
	Credit(ctx context.Context, customerID string, points int64) error
	Debit(ctx context.Context, customerID string, points int64) error
}

// OrderArchive is the remote persistence collaborator. Delivery is
// at-least-once: failures are surfaced but never roll back local state.
type OrderArchive interface {
	InsertOrder(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, version int64) error
	SaveReview(ctx context.Context, orderID string, review domain.Review) error
	SaveRefund(ctx context.Context, orderID string, refund domain.Refund) error
}

// EventPublisher feeds the order sync stream.
type EventPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

// SessionCache stores issued sessions and mirrors loyalty balances.
type SessionCache interface {
	StoreSession(ctx context.Context, session Session) error
	LookupSession(ctx context.Context, token string) (Session, error)
	DeleteSession(ctx context.Context, token string) error
	SetBalance(ctx context.Context, customerID string, points int64) error
}

type OrderServiceInterface interface {
	Checkout(ctx context.Context, actor Actor, req CheckoutRequest) (*domain.Order, error)
	Accept(ctx context.Context, actor Actor, orderID string) (*domain.Order, error)
	MarkReady(ctx context.Context, actor Actor, orderID string) (*domain.Order, error)
	PickUp(ctx context.Context, actor Actor, orderID, suppliedOTP string) (*domain.Order, error)
	Deliver(ctx context.Context, actor Actor, orderID, suppliedOTP string) (*domain.Order, error)
	SubmitReview(ctx context.Context, actor Actor, orderID string, rating int, comment string) (*domain.Order, error)
	RequestRefund(ctx context.Context, actor Actor, orderID, reason string) (*domain.Order, error)
	ResolveRefund(ctx context.Context, actor Actor, orderID string, decision domain.RefundStatus) (*domain.Order, error)
	Get(actor Actor, orderID string) (*domain.Order, error)
	ListFor(actor Actor) []domain.Order
	EarningsFor(riderID string) RiderEarnings
}

var _ OrderServiceInterface = (*OrderService)(nil)
