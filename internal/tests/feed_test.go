package tests

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"grab-atreat/internal/domain"
	"grab-atreat/internal/feed"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	messages chan kafka.Message
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case message := <-r.messages:
		return message, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func orderEvent(orderID string, version int64, status domain.OrderStatus) domain.OrderEvent {
	return domain.OrderEvent{
		Type:    "order_updated",
		OrderID: orderID,
		Status:  status,
		Version: version,
		Order: domain.Order{
			ID:           orderID,
			CustomerID:   "9999999999",
			RestaurantID: 1,
			Status:       status,
			Version:      version,
		},
	}
}

func TestFeed_ApplyReplacesByVersion(t *testing.T) {
	f := feed.New(&fakeReader{})

	f.Apply(orderEvent("ORD-1", 2, domain.StatusCooking))
	snapshot, ok := f.Snapshot("ORD-1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusCooking, snapshot.Status)

	// A late, lower-version snapshot never regresses state.
	f.Apply(orderEvent("ORD-1", 1, domain.StatusPending))
	snapshot, _ = f.Snapshot("ORD-1")
	assert.Equal(t, domain.StatusCooking, snapshot.Status)

	// Redelivery of the same version is dropped too.
	f.Apply(orderEvent("ORD-1", 2, domain.StatusPending))
	snapshot, _ = f.Snapshot("ORD-1")
	assert.Equal(t, domain.StatusCooking, snapshot.Status)

	f.Apply(orderEvent("ORD-1", 3, domain.StatusReady))
	snapshot, _ = f.Snapshot("ORD-1")
	assert.Equal(t, domain.StatusReady, snapshot.Status)
}

func TestFeed_SubscribeScopesByRole(t *testing.T) {
	f := feed.New(&fakeReader{})

	customerCh, cancelCustomer := f.Subscribe(domain.RoleCustomer, "9999999999", 0)
	defer cancelCustomer()
	otherCh, cancelOther := f.Subscribe(domain.RoleCustomer, "1111111111", 0)
	defer cancelOther()
	partnerCh, cancelPartner := f.Subscribe(domain.RolePartner, "8888888888", 1)
	defer cancelPartner()
	riderCh, cancelRider := f.Subscribe(domain.RoleRider, "7777777777", 0)
	defer cancelRider()

	f.Apply(orderEvent("ORD-1", 2, domain.StatusCooking))

	assert.Len(t, customerCh, 1)
	assert.Empty(t, otherCh)
	assert.Len(t, partnerCh, 1)
	// COOKING orders are not in the rider pool.
	assert.Empty(t, riderCh)

	f.Apply(orderEvent("ORD-1", 3, domain.StatusReady))
	assert.Len(t, riderCh, 1)

	got := <-customerCh
	assert.Equal(t, "ORD-1", got.ID)
}

func TestFeed_CancelStopsDelivery(t *testing.T) {
	f := feed.New(&fakeReader{})

	ch, cancel := f.Subscribe(domain.RoleCustomer, "9999999999", 0)
	cancel()
	// Cancelling twice is safe.
	cancel()

	f.Apply(orderEvent("ORD-1", 1, domain.StatusPending))
	_, open := <-ch
	assert.False(t, open)
}

func TestFeed_RunConsumesMessages(t *testing.T) {
	reader := &fakeReader{messages: make(chan kafka.Message, 2)}
	f := feed.New(reader)

	payload, err := json.Marshal(orderEvent("ORD-1", 1, domain.StatusPending))
	require.NoError(t, err)
	reader.messages <- kafka.Message{Key: []byte("ORD-1"), Value: payload}
	reader.messages <- kafka.Message{Key: []byte("junk"), Value: []byte("not json")}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, ok := f.Snapshot("ORD-1")
		return ok
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("feed did not stop on context cancel")
	}
}
