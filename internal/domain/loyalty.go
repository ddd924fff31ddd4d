package domain

import (
	"errors"
	"time"
)

type DiscountType string

const (
	DiscountNone     DiscountType = "none"
	DiscountMonetary DiscountType = "monetary"
	DiscountPercent  DiscountType = "percent"
)

// CouponSelection is what the customer asked to redeem. Amount is meaningful
// only for monetary selections.
type CouponSelection struct {
	Type   DiscountType
	Amount int
}

// Discount is the resolved result of a redemption attempt.
type Discount struct {
	Type   DiscountType
	Amount int
}

// LoyaltyRules holds the reward constants. Configurable, with the reference
// defaults below.
type LoyaltyRules struct {
	StampGoal           int
	StampRewardAmount   int
	WelcomeCouponAmount int
	DiscountRate        float64
	MinDiscountPurchase int
}

func DefaultLoyaltyRules() LoyaltyRules {
	return LoyaltyRules{
		StampGoal:           10,
		StampRewardAmount:   3000,
		WelcomeCouponAmount: 2000,
		DiscountRate:        0.10,
		MinDiscountPurchase: 20000,
	}
}

// LoyaltyAccount is one customer's reward state. All mutation happens inside
// the ledger's atomic update, never concurrently for the same account.
type LoyaltyAccount struct {
	CustomerID            string
	Name                  string
	Stamps                int
	MonetaryCouponBalance int
	PercentCouponCount    int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewLoyaltyAccount creates a fresh account with the welcome grant applied.
func NewLoyaltyAccount(customerID, name string, rules LoyaltyRules) *LoyaltyAccount {
	now := time.Now()
	return &LoyaltyAccount{
		CustomerID:            customerID,
		Name:                  name,
		MonetaryCouponBalance: rules.WelcomeCouponAmount,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

var (
	ErrAccountNotFound       = errors.New("loyalty account not found")
	ErrAccountExists         = errors.New("loyalty account already exists")
	ErrInvalidCouponAmount   = errors.New("coupon amount must not be negative")
	ErrCouponBalanceExceeded = errors.New("coupon amount exceeds available balance")
	ErrNoPercentCoupon       = errors.New("no percentage coupon available")
	ErrInvalidDiscountType   = errors.New("invalid discount type")
)

// WarnMinPurchaseNotMet signals that a percent coupon was requested below the
// minimum purchase: no discount is applied and the coupon is not consumed.
// This is a warning for the caller to display, not an error.
const WarnMinPurchaseNotMet = "minimum purchase for the percentage coupon not met; no discount applied"

// Redeem resolves a coupon selection against the account without mutating it.
// A zero-value selection means no coupon. A monetary amount is capped by both
// the balance and the subtotal; asking for more is a caller error. A percent
// coupon below the purchase floor resolves to no discount with a warning.
func (a *LoyaltyAccount) Redeem(sel CouponSelection, subtotal int, rules LoyaltyRules) (Discount, string, error) {
	switch sel.Type {
	case DiscountNone, "":
		return Discount{Type: DiscountNone}, "", nil

	case DiscountMonetary:
		if sel.Amount < 0 {
			return Discount{}, "", ErrInvalidCouponAmount
		}
		limit := a.MonetaryCouponBalance
		if subtotal < limit {
			limit = subtotal
		}
		if sel.Amount > limit {
			return Discount{}, "", ErrCouponBalanceExceeded
		}
		return Discount{Type: DiscountMonetary, Amount: sel.Amount}, "", nil

	case DiscountPercent:
		if a.PercentCouponCount < 1 {
			return Discount{}, "", ErrNoPercentCoupon
		}
		if subtotal < rules.MinDiscountPurchase {
			return Discount{Type: DiscountNone}, WarnMinPurchaseNotMet, nil
		}
		amount := int(float64(subtotal) * rules.DiscountRate)
		return Discount{Type: DiscountPercent, Amount: amount}, "", nil

	default:
		return Discount{}, "", ErrInvalidDiscountType
	}
}

// ApplyDiscount deducts the redeemed coupon from the account. Exactly one of
// the balances moves, matching the discount type.
func (a *LoyaltyAccount) ApplyDiscount(d Discount) error {
	switch d.Type {
	case DiscountNone:
		return nil
	case DiscountMonetary:
		if d.Amount > a.MonetaryCouponBalance {
			return ErrCouponBalanceExceeded
		}
		a.MonetaryCouponBalance -= d.Amount
		return nil
	case DiscountPercent:
		if a.PercentCouponCount < 1 {
			return ErrNoPercentCoupon
		}
		a.PercentCouponCount--
		return nil
	default:
		return ErrInvalidDiscountType
	}
}

// AddStamp records one completed order. Reaching the goal issues a single
// reward coupon and carries the remainder over: 12 stamps against a goal of
// 10 leaves 3 after the next order, with exactly one issuance.
func (a *LoyaltyAccount) AddStamp(rules LoyaltyRules) bool {
	a.Stamps++
	if rules.StampGoal > 0 && a.Stamps >= rules.StampGoal {
		a.MonetaryCouponBalance += rules.StampRewardAmount
		a.Stamps -= rules.StampGoal
		return true
	}
	return false
}

// OrderLine is one cart entry as recorded on the order.
type OrderLine struct {
	Name      string
	Quantity  int
	UnitPrice int
}

// OrderRecord is immutable once created.
type OrderRecord struct {
	OrderID        string
	CustomerID     string
	CreatedAt      time.Time
	Lines          []OrderLine
	Subtotal       int
	DiscountType   DiscountType
	DiscountAmount int
	FinalTotal     int
	StampsEarned   int
	Note           string
}
