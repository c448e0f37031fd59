package tests

import (
	"context"
	"errors"
	"testing"

	"grab-atreat/internal/domain"
	"grab-atreat/internal/mocks"
	"grab-atreat/internal/service"
	"grab-atreat/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	customer     = service.Actor{Role: domain.RoleCustomer, ID: "9999999999"}
	partner      = service.Actor{Role: domain.RolePartner, ID: "8888888888", RestaurantID: 1}
	otherPartner = service.Actor{Role: domain.RolePartner, ID: "6666666666", RestaurantID: 2}
	rider        = service.Actor{Role: domain.RoleRider, ID: "7777777777"}
	otherRider   = service.Actor{Role: domain.RoleRider, ID: "5555555555"}
)

type fixture struct {
	store     *storage.MemoryOrderStore
	ledger    *mocks.LoyaltyLedger
	archive   *mocks.OrderArchive
	publisher *mocks.EventPublisher
	svc       *service.OrderService
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		store:     storage.NewMemoryOrderStore(),
		ledger:    mocks.NewLoyaltyLedger(t),
		archive:   mocks.NewOrderArchive(t),
		publisher: mocks.NewEventPublisher(t),
	}
	f.svc = service.NewOrderService(f.store, f.ledger, f.archive, f.publisher)
	return f
}

// allowSync lets archive, publisher and the earned-points credit succeed
// silently so tests can focus on the state machine.
func (f *fixture) allowSync() {
	f.ledger.On("Credit", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.archive.On("InsertOrder", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.archive.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.archive.On("SaveReview", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.archive.On("SaveRefund", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.publisher.On("PublishOrder", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func cartLines(t *testing.T) []domain.CartLine {
	first, err := domain.NewCartLine("Coconut Fish Curry", 600, false, 1)
	require.NoError(t, err)
	second, err := domain.NewCartLine("Palm Jaggery Payasam", 250, true, 1)
	require.NoError(t, err)
	return []domain.CartLine{first, second}
}

func checkoutReq(t *testing.T) service.CheckoutRequest {
	return service.CheckoutRequest{
		CustomerName:   "Asha Kulkarni",
		RestaurantID:   1,
		RestaurantName: "Ovenly - Bakery",
		Type:           domain.OrderTypeHome,
		Target:         domain.DeliveryTarget{Address: "DBJ College, Chiplun"},
		Lines:          cartLines(t),
	}
}

func (f *fixture) placeOrder(t *testing.T) *domain.Order {
	f.ledger.On("Balance", mock.Anything, customer.ID).Return(int64(0), nil).Once()
	order, err := f.svc.Checkout(context.Background(), customer, checkoutReq(t))
	require.NoError(t, err)
	return order
}

func TestOrderService_Checkout(t *testing.T) {
	f := newFixture(t)
	f.allowSync()
	f.ledger.On("Balance", mock.Anything, customer.ID).Return(int64(0), nil).Once()

	order, err := f.svc.Checkout(context.Background(), customer, checkoutReq(t))
	require.NoError(t, err)

	assert.Contains(t, order.ID, "ORD-")
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, int64(1), order.Version)
	assert.Equal(t, int64(850), order.Quote.ItemTotal)
	assert.Equal(t, int64(43), order.Quote.GST)
	assert.Equal(t, int64(5), order.Quote.PlatformFee)
	assert.Equal(t, int64(20), order.Quote.DeliveryFee)
	assert.Equal(t, int64(918), order.Quote.Payable)
	assert.Equal(t, int64(91), order.Quote.PointsEarned)

	assert.Len(t, order.PickupOTP, 4)
	assert.Len(t, order.DeliveryOTP, 4)
	assert.NotEqual(t, order.PickupOTP, order.DeliveryOTP)

	stored, err := f.store.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestOrderService_Checkout_Guards(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), partner, checkoutReq(t))
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.svc.Checkout(context.Background(), customer, service.CheckoutRequest{RestaurantID: 1})
	assert.ErrorIs(t, err, service.ErrEmptyOrder)

	req := checkoutReq(t)
	req.Lines[0].Quantity = 0
	_, err = f.svc.Checkout(context.Background(), customer, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderService_Checkout_RedeemsPoints(t *testing.T) {
	f := newFixture(t)
	// Exact ledger expectations go first so the allowSync catch-all cannot
	// swallow them.
	f.ledger.On("Balance", mock.Anything, customer.ID).Return(int64(1257), nil).Once()
	f.ledger.On("Debit", mock.Anything, customer.ID, int64(1250)).Return(nil).Once()
	f.ledger.On("Credit", mock.Anything, customer.ID, int64(79)).Return(nil).Once()
	f.allowSync()

	req := checkoutReq(t)
	req.RedeemPoints = true
	order, err := f.svc.Checkout(context.Background(), customer, req)
	require.NoError(t, err)

	assert.Equal(t, int64(125), order.Quote.PointsDiscount)
	assert.Equal(t, int64(1250), order.Quote.PointsConsumed)
	assert.Equal(t, int64(793), order.Quote.Payable)
	assert.Equal(t, int64(79), order.Quote.PointsEarned)
}

func TestOrderService_Checkout_DebitFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.ledger.On("Balance", mock.Anything, customer.ID).Return(int64(500), nil).Once()
	f.ledger.On("Debit", mock.Anything, customer.ID, int64(500)).Return(errors.New("ledger down")).Once()

	req := checkoutReq(t)
	req.RedeemPoints = true
	order, err := f.svc.Checkout(context.Background(), customer, req)
	assert.Error(t, err)
	assert.Nil(t, order)
}

// failingStore rejects every save so tests can exercise the checkout
// compensation path.
type failingStore struct {
	*storage.MemoryOrderStore
}

func (failingStore) Save(*domain.Order) error {
	return errors.New("store down")
}

func TestOrderService_Checkout_SaveFailureRefundsPoints(t *testing.T) {
	ledger := mocks.NewLoyaltyLedger(t)
	svc := service.NewOrderService(
		failingStore{storage.NewMemoryOrderStore()},
		ledger,
		mocks.NewOrderArchive(t),
		mocks.NewEventPublisher(t),
	)
	ledger.On("Balance", mock.Anything, customer.ID).Return(int64(500), nil).Once()
	ledger.On("Debit", mock.Anything, customer.ID, int64(500)).Return(nil).Once()
	// The debit is handed back; earned points are never credited.
	ledger.On("Credit", mock.Anything, customer.ID, int64(500)).Return(nil).Once()

	req := checkoutReq(t)
	req.RedeemPoints = true
	order, err := svc.Checkout(context.Background(), customer, req)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrSyncFailed)
	assert.Nil(t, order)
}

func TestOrderService_Checkout_SyncFailureKeepsOrder(t *testing.T) {
	f := newFixture(t)
	f.ledger.On("Balance", mock.Anything, customer.ID).Return(int64(0), nil).Once()
	f.ledger.On("Credit", mock.Anything, customer.ID, int64(91)).Return(nil).Once()
	f.publisher.On("PublishOrder", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	f.archive.On("InsertOrder", mock.Anything, mock.Anything).Return(nil).Once()

	order, err := f.svc.Checkout(context.Background(), customer, checkoutReq(t))
	assert.ErrorIs(t, err, service.ErrSyncFailed)
	require.NotNil(t, order)

	stored, storeErr := f.store.Get(order.ID)
	require.NoError(t, storeErr)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestOrderService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	f.allowSync()
	ctx := context.Background()
	order := f.placeOrder(t)

	accepted, err := f.svc.Accept(ctx, partner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCooking, accepted.Status)
	assert.Equal(t, int64(2), accepted.Version)

	ready, err := f.svc.MarkReady(ctx, partner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, ready.Status)
	assert.Equal(t, int64(3), ready.Version)

	// Wrong code leaves the order untouched. Issued codes never start with 0.
	_, err = f.svc.PickUp(ctx, rider, order.ID, "0000")
	assert.ErrorIs(t, err, service.ErrOtpMismatch)
	current, err := f.svc.Get(partner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, current.Status)
	assert.Equal(t, int64(3), current.Version)

	picked, err := f.svc.PickUp(ctx, rider, order.ID, order.PickupOTP)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPickedUp, picked.Status)
	assert.Equal(t, rider.ID, picked.RiderID)

	// Only the assigned rider may complete the delivery.
	_, err = f.svc.Deliver(ctx, otherRider, order.ID, order.DeliveryOTP)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.svc.Deliver(ctx, rider, order.ID, order.PickupOTP)
	assert.ErrorIs(t, err, service.ErrOtpMismatch)

	delivered, err := f.svc.Deliver(ctx, rider, order.ID, order.DeliveryOTP)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, delivered.Status)
	assert.Equal(t, int64(5), delivered.Version)
}

func TestOrderService_InvalidTransitions(t *testing.T) {
	f := newFixture(t)
	f.allowSync()
	ctx := context.Background()
	order := f.placeOrder(t)

	_, err := f.svc.MarkReady(ctx, partner, order.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = f.svc.PickUp(ctx, rider, order.ID, order.PickupOTP)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = f.svc.Deliver(ctx, rider, order.ID, order.DeliveryOTP)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = f.svc.SubmitReview(ctx, customer, order.ID, 5, "great")
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = f.svc.Accept(ctx, partner, order.ID)
	require.NoError(t, err)
	_, err = f.svc.Accept(ctx, partner, order.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestOrderService_TransitionAuthorization(t *testing.T) {
	f := newFixture(t)
	f.allowSync()
	ctx := context.Background()
	order := f.placeOrder(t)

	_, err := f.svc.Accept(ctx, otherPartner, order.ID)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.svc.Accept(ctx, customer, order.ID)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.svc.Accept(ctx, partner, "ORD-missing")
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}

func (f *fixture) deliverOrder(t *testing.T) *domain.Order {
	ctx := context.Background()
	order := f.placeOrder(t)
	_, err := f.svc.Accept(ctx, partner, order.ID)
	require.NoError(t, err)
	_, err = f.svc.MarkReady(ctx, partner, order.ID)
	require.NoError(t, err)
	_, err = f.svc.PickUp(ctx, rider, order.ID, order.PickupOTP)
	require.NoError(t, err)
	delivered, err := f.svc.Deliver(ctx, rider, order.ID, order.DeliveryOTP)
	require.NoError(t, err)
	return delivered
}

func TestOrderService_Review(t *testing.T) {
	f := newFixture(t)
	f.allowSync()
	ctx := context.Background()
	order := f.deliverOrder(t)

	_, err := f.svc.SubmitReview(ctx, customer, order.ID, 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.SubmitReview(ctx, customer, order.ID, 6, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.SubmitReview(ctx, rider, order.ID, 4, "not my call")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	reviewed, err := f.svc.SubmitReview(ctx, customer, order.ID, 5, "lovely croissant")
	require.NoError(t, err)
	require.NotNil(t, reviewed.Review)
	assert.Equal(t, 5, reviewed.Review.Rating)

	_, err = f.svc.SubmitReview(ctx, customer, order.ID, 3, "changed my mind")
	assert.ErrorIs(t, err, service.ErrAlreadyReviewed)
}

func TestOrderService_RefundFlow(t *testing.T) {
	f := newFixture(t)
	f.allowSync()
	ctx := context.Background()
	order := f.deliverOrder(t)

	requested, err := f.svc.RequestRefund(ctx, customer, order.ID, "cold food")
	require.NoError(t, err)
	require.NotNil(t, requested.Refund)
	assert.Equal(t, domain.RefundPending, requested.Refund.Status)

	_, err = f.svc.RequestRefund(ctx, customer, order.ID, "again")
	assert.ErrorIs(t, err, service.ErrRefundAlreadyRequested)

	_, err = f.svc.ResolveRefund(ctx, otherPartner, order.ID, domain.RefundApproved)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.svc.ResolveRefund(ctx, partner, order.ID, "MAYBE")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resolved, err := f.svc.ResolveRefund(ctx, partner, order.ID, domain.RefundApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.RefundApproved, resolved.Refund.Status)

	// Terminal either way.
	_, err = f.svc.ResolveRefund(ctx, partner, order.ID, domain.RefundRejected)
	assert.ErrorIs(t, err, service.ErrRefundAlreadyResolved)
	_, err = f.svc.RequestRefund(ctx, customer, order.ID, "one more try")
	assert.ErrorIs(t, err, service.ErrRefundAlreadyResolved)
}

func TestOrderService_RefundBeforeDelivery(t *testing.T) {
	f := newFixture(t)
	f.allowSync()
	order := f.placeOrder(t)

	_, err := f.svc.RequestRefund(context.Background(), customer, order.ID, "too slow")
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = f.svc.ResolveRefund(context.Background(), partner, order.ID, domain.RefundApproved)
	assert.ErrorIs(t, err, service.ErrRefundNotPending)
}

func TestOrderService_Visibility(t *testing.T) {
	f := newFixture(t)
	f.allowSync()
	ctx := context.Background()
	order := f.placeOrder(t)

	otherCustomer := service.Actor{Role: domain.RoleCustomer, ID: "4444444444"}
	_, err := f.svc.Get(otherCustomer, order.ID)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	// Riders only see the READY pool and their own assignments.
	_, err = f.svc.Get(rider, order.ID)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.svc.Accept(ctx, partner, order.ID)
	require.NoError(t, err)
	_, err = f.svc.MarkReady(ctx, partner, order.ID)
	require.NoError(t, err)

	visible, err := f.svc.Get(rider, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, visible.Status)

	assert.Len(t, f.svc.ListFor(customer), 1)
	assert.Len(t, f.svc.ListFor(partner), 1)
	assert.Len(t, f.svc.ListFor(rider), 1)
	assert.Empty(t, f.svc.ListFor(service.Actor{Role: domain.RoleCustomer, ID: "nobody"}))
}

func TestOrderService_EarningsFor(t *testing.T) {
	f := newFixture(t)
	f.allowSync()
	ctx := context.Background()

	f.ledger.On("Balance", mock.Anything, customer.ID).Return(int64(0), nil).Twice()
	for _, tip := range []int64{30, 0} {
		req := checkoutReq(t)
		req.Tip = tip
		order, err := f.svc.Checkout(ctx, customer, req)
		require.NoError(t, err)
		_, err = f.svc.Accept(ctx, partner, order.ID)
		require.NoError(t, err)
		_, err = f.svc.MarkReady(ctx, partner, order.ID)
		require.NoError(t, err)
		_, err = f.svc.PickUp(ctx, rider, order.ID, order.PickupOTP)
		require.NoError(t, err)
		_, err = f.svc.Deliver(ctx, rider, order.ID, order.DeliveryOTP)
		require.NoError(t, err)
	}

	earnings := f.svc.EarningsFor(rider.ID)
	assert.Equal(t, 2, earnings.Deliveries)
	assert.Equal(t, int64(80), earnings.BasePay)
	assert.Equal(t, int64(30), earnings.Tips)
	assert.Equal(t, int64(110), earnings.Total)

	assert.Zero(t, f.svc.EarningsFor(otherRider.ID).Deliveries)
}
