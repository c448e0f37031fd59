package pricing

import (
	"strings"

	"grab-atreat/internal/domain"
)

// The coupon catalog is fixed; codes are stored upper case and matched
// case-insensitively.
var catalog = []domain.Coupon{
	{Code: "WELCOME50", Kind: domain.CouponFlat, DiscountValue: 50, MinOrderValue: 100,
		Description: "Flat ₹50 OFF on orders above ₹100"},
	{Code: "CHIPLUN", Kind: domain.CouponPercent, DiscountValue: 20, MaxDiscount: 100, MinOrderValue: 200,
		Description: "20% OFF up to ₹100"},
	{Code: "TRAIN10", Kind: domain.CouponPercent, DiscountValue: 10, MinOrderValue: 300,
		Description: "10% OFF on orders above ₹300"},
}

// Coupons returns the catalog in a caller-owned slice.
func Coupons() []domain.Coupon {
	out := make([]domain.Coupon, len(catalog))
	copy(out, catalog)
	return out
}

// FindCoupon looks a code up in the catalog.
func FindCoupon(code string) (domain.Coupon, bool) {
	canonical := strings.ToUpper(strings.TrimSpace(code))
	for _, c := range catalog {
		if c.Code == canonical {
			return c, true
		}
	}
	return domain.Coupon{}, false
}
