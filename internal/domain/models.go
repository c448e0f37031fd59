package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RolePartner  Role = "PARTNER"
	RoleRider    Role = "RIDER"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCooking   OrderStatus = "COOKING"
	StatusReady     OrderStatus = "READY"
	StatusPickedUp  OrderStatus = "PICKED_UP"
	StatusDelivered OrderStatus = "DELIVERED"
)

type OrderType string

const (
	OrderTypeHome  OrderType = "HOME"
	OrderTypeTrain OrderType = "TRAIN"
)

type UserStatus string

const (
	StatusAvailable UserStatus = "AVAILABLE"
	StatusBusy      UserStatus = "BUSY"
	StatusOffline   UserStatus = "OFFLINE"
)

type RefundStatus string

const (
	RefundPending  RefundStatus = "PENDING"
	RefundApproved RefundStatus = "APPROVED"
	RefundRejected RefundStatus = "REJECTED"
)

type CouponKind string

const (
	CouponFlat    CouponKind = "FLAT"
	CouponPercent CouponKind = "PERCENT"
)

// CartLine is one cart entry. Quantity is never persisted at zero; a line
// reduced to zero is removed by the cart owner.
type CartLine struct {
	ItemName  string `json:"item_name"`
	UnitPrice int64  `json:"unit_price"`
	IsVeg     bool   `json:"is_veg"`
	Quantity  int    `json:"quantity"`
}

// NewCartLine validates at construction so quote computation stays total.
func NewCartLine(name string, unitPrice int64, isVeg bool, quantity int) (CartLine, error) {
	if strings.TrimSpace(name) == "" {
		return CartLine{}, fmt.Errorf("%w: item name is empty", ErrInvalidInput)
	}
	if unitPrice < 0 {
		return CartLine{}, fmt.Errorf("%w: unit price %d is negative", ErrInvalidInput, unitPrice)
	}
	if quantity < 1 {
		return CartLine{}, fmt.Errorf("%w: quantity %d must be at least 1", ErrInvalidInput, quantity)
	}
	return CartLine{ItemName: name, UnitPrice: unitPrice, IsVeg: isVeg, Quantity: quantity}, nil
}

func (l CartLine) Validate() error {
	_, err := NewCartLine(l.ItemName, l.UnitPrice, l.IsVeg, l.Quantity)
	return err
}

// Coupon is immutable; codes are canonical upper case.
type Coupon struct {
	Code          string     `json:"code"`
	Kind          CouponKind `json:"kind"`
	DiscountValue int64      `json:"discount_value"`
	MaxDiscount   int64      `json:"max_discount,omitempty"` // 0 means uncapped, PERCENT only
	MinOrderValue int64      `json:"min_order_value"`
	Description   string     `json:"description,omitempty"`
}

// PriceQuote is derived, never stored on its own. Payable is clamped at zero.
type PriceQuote struct {
	ItemTotal        int64 `json:"item_total"`
	GST              int64 `json:"gst"`
	PlatformFee      int64 `json:"platform_fee"`
	DeliveryFee      int64 `json:"delivery_fee"`
	Tip              int64 `json:"tip"`
	CouponDiscount   int64 `json:"coupon_discount"`
	PointsDiscount   int64 `json:"points_discount"`
	Payable          int64 `json:"payable"`
	PointsConsumed   int64 `json:"points_consumed"`
	PointsEarned     int64 `json:"points_earned"`
	CouponIneligible bool  `json:"coupon_ineligible,omitempty"`
}

// DeliveryTarget is an address for HOME orders or a train berth for TRAIN.
type DeliveryTarget struct {
	Address string `json:"address,omitempty"`
	PNR     string `json:"pnr,omitempty"`
	Coach   string `json:"coach,omitempty"`
	Seat    string `json:"seat,omitempty"`
}

type Review struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type Refund struct {
	Status RefundStatus `json:"status"`
	Reason string       `json:"reason"`
}

// Order is the central entity. Items and Quote are write-once at creation;
// status, review and refund mutate only through the order service. Version
// increments with every transition so feed consumers can drop stale snapshots.
type Order struct {
	ID             string         `json:"id"`
	CustomerID     string         `json:"customer_id"`
	CustomerName   string         `json:"customer_name"`
	RestaurantID   int            `json:"restaurant_id"`
	RestaurantName string         `json:"restaurant_name"`
	RiderID        string         `json:"rider_id,omitempty"`
	Type           OrderType      `json:"type"`
	Target         DeliveryTarget `json:"target"`
	Items          []CartLine     `json:"items"`
	Quote          PriceQuote     `json:"quote"`
	Tip            int64          `json:"tip"`
	Status         OrderStatus    `json:"status"`
	Version        int64          `json:"version"`
	CreatedAt      time.Time      `json:"created_at"`
	PickupOTP      string         `json:"pickup_otp"`
	DeliveryOTP    string         `json:"delivery_otp"`
	Review         *Review        `json:"review,omitempty"`
	Refund         *Refund        `json:"refund,omitempty"`
}

// Clone returns a deep copy so callers never alias authoritative state.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = append([]CartLine(nil), o.Items...)
	if o.Review != nil {
		rv := *o.Review
		cp.Review = &rv
	}
	if o.Refund != nil {
		rf := *o.Refund
		cp.Refund = &rf
	}
	return &cp
}

// OrderEvent is published to the order feed after every committed transition.
type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   string      `json:"order_id"`
	Status    OrderStatus `json:"status"`
	Version   int64       `json:"version"`
	Order     Order       `json:"order"`
	Timestamp time.Time   `json:"timestamp"`
}
