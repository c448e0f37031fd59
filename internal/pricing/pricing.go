// Package pricing computes price quotes for a cart. Every function here is
// deterministic and side-effect free; checkout and breakdown views call the
// same code path. All currency is integer rupees.
package pricing

import (
	"grab-atreat/internal/domain"
)

const (
	// GST is 5% of the item total, rounded half-up to the nearest rupee.
	GSTPercent = 5

	PlatformFee = 5

	HomeDeliveryFee  = 20
	TrainDeliveryFee = 40

	// 10 loyalty points redeem for 1 rupee; 1 point earned per 10 rupees paid.
	PointsPerRupee = 10
	RupeesPerPoint = 10
)

// Input carries everything a quote depends on.
type Input struct {
	Lines         []domain.CartLine
	Type          domain.OrderType
	Tip           int64
	Coupon        *domain.Coupon
	RedeemPoints  bool
	PointsBalance int64
}

// Quote computes the full breakdown. It never fails over valid cart lines:
// an ineligible coupon yields a zero discount and sets CouponIneligible
// rather than erroring.
func Quote(in Input) domain.PriceQuote {
	var itemTotal int64
	for _, line := range in.Lines {
		itemTotal += line.UnitPrice * int64(line.Quantity)
	}

	q := domain.PriceQuote{
		ItemTotal:   itemTotal,
		GST:         (itemTotal*GSTPercent + 50) / 100,
		PlatformFee: PlatformFee,
		DeliveryFee: HomeDeliveryFee,
		Tip:         in.Tip,
	}
	if in.Type == domain.OrderTypeTrain {
		q.DeliveryFee = TrainDeliveryFee
	}

	if in.Coupon != nil {
		if itemTotal < in.Coupon.MinOrderValue {
			q.CouponIneligible = true
		} else {
			q.CouponDiscount = couponDiscount(itemTotal, *in.Coupon)
		}
	}

	if in.RedeemPoints {
		q.PointsDiscount = min64(in.PointsBalance/PointsPerRupee, itemTotal)
		q.PointsConsumed = q.PointsDiscount * PointsPerRupee
	}

	payable := itemTotal + q.GST + q.PlatformFee + q.DeliveryFee + q.Tip -
		q.CouponDiscount - q.PointsDiscount
	if payable < 0 {
		payable = 0
	}
	q.Payable = payable
	q.PointsEarned = payable / RupeesPerPoint

	return q
}

func couponDiscount(itemTotal int64, c domain.Coupon) int64 {
	switch c.Kind {
	case domain.CouponFlat:
		return c.DiscountValue
	case domain.CouponPercent:
		disc := itemTotal * c.DiscountValue / 100
		if c.MaxDiscount > 0 && disc > c.MaxDiscount {
			disc = c.MaxDiscount
		}
		return disc
	}
	return 0
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
