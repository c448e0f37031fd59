package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
)

// OTPIssuer hands out 4-digit handoff codes. Codes stay reserved per
// restaurant while their order is open so a rider juggling two pickups from
// the same kitchen can never match the wrong order.
type OTPIssuer struct {
	mu    sync.Mutex
	inUse map[int]map[string]bool
}

func NewOTPIssuer() *OTPIssuer {
	return &OTPIssuer{inUse: make(map[int]map[string]bool)}
}

// Issue reserves a distinct pickup and delivery code for one order.
func (i *OTPIssuer) Issue(restaurantID int) (pickup, delivery string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	reserved := i.inUse[restaurantID]
	if reserved == nil {
		reserved = make(map[string]bool)
		i.inUse[restaurantID] = reserved
	}

	pickup = drawCode(reserved)
	reserved[pickup] = true
	delivery = drawCode(reserved)
	reserved[delivery] = true
	return pickup, delivery
}

// Release frees an order's codes once it reaches a terminal state.
func (i *OTPIssuer) Release(restaurantID int, codes ...string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	reserved := i.inUse[restaurantID]
	for _, code := range codes {
		delete(reserved, code)
	}
	if len(reserved) == 0 {
		delete(i.inUse, restaurantID)
	}
}

func drawCode(reserved map[string]bool) string {
	for {
		n, err := rand.Int(rand.Reader, big.NewInt(9000))
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			panic(fmt.Sprintf("otp: read random: %v", err))
		}
		code := fmt.Sprintf("%04d", n.Int64()+1000)
		if !reserved[code] {
			return code
		}
	}
}
