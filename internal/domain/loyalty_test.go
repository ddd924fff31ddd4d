package domain

import "testing"

func testRules() LoyaltyRules {
	return LoyaltyRules{
		StampGoal:           10,
		StampRewardAmount:   3000,
		WelcomeCouponAmount: 2000,
		DiscountRate:        0.10,
		MinDiscountPurchase: 20000,
	}
}

func TestNewAccountWelcomeGrant(t *testing.T) {
	acc := NewLoyaltyAccount("c-1", "Lucy", testRules())

	if acc.MonetaryCouponBalance != 2000 {
		t.Errorf("welcome balance = %d, want 2000", acc.MonetaryCouponBalance)
	}
	if acc.Stamps != 0 || acc.PercentCouponCount != 0 {
		t.Errorf("fresh account has stamps=%d percent=%d, want 0/0", acc.Stamps, acc.PercentCouponCount)
	}
}

func TestRedeemZeroValueSelection(t *testing.T) {
	// callers that skip the coupon entirely pass a zero-value selection
	acc := &LoyaltyAccount{MonetaryCouponBalance: 2000}

	d, warn, err := acc.Redeem(CouponSelection{}, 10000, testRules())
	if err != nil || warn != "" {
		t.Fatalf("unexpected outcome: warn=%q err=%v", warn, err)
	}
	if d.Type != DiscountNone || d.Amount != 0 {
		t.Errorf("discount = %+v, want none/0", d)
	}
}

func TestRedeemMonetary(t *testing.T) {
	acc := &LoyaltyAccount{MonetaryCouponBalance: 2000}

	d, warn, err := acc.Redeem(CouponSelection{Type: DiscountMonetary, Amount: 1500}, 10000, testRules())
	if err != nil || warn != "" {
		t.Fatalf("unexpected outcome: warn=%q err=%v", warn, err)
	}
	if d.Type != DiscountMonetary || d.Amount != 1500 {
		t.Errorf("discount = %+v, want monetary 1500", d)
	}

	// cap is min(balance, subtotal): asking beyond the balance fails
	if _, _, err := acc.Redeem(CouponSelection{Type: DiscountMonetary, Amount: 2500}, 10000, testRules()); err != ErrCouponBalanceExceeded {
		t.Errorf("over-balance redeem err = %v, want ErrCouponBalanceExceeded", err)
	}

	// ...and so does asking beyond the subtotal
	if _, _, err := acc.Redeem(CouponSelection{Type: DiscountMonetary, Amount: 1800}, 1000, testRules()); err != ErrCouponBalanceExceeded {
		t.Errorf("over-subtotal redeem err = %v, want ErrCouponBalanceExceeded", err)
	}
}

func TestRedeemPercentBelowMinimum(t *testing.T) {
	acc := &LoyaltyAccount{PercentCouponCount: 1}

	d, warn, err := acc.Redeem(CouponSelection{Type: DiscountPercent}, 15000, testRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warn != WarnMinPurchaseNotMet {
		t.Errorf("warning = %q, want %q", warn, WarnMinPurchaseNotMet)
	}
	if d.Type != DiscountNone || d.Amount != 0 {
		t.Errorf("discount below minimum = %+v, want none/0", d)
	}
	if acc.PercentCouponCount != 1 {
		t.Errorf("coupon count = %d, want 1 (not consumed)", acc.PercentCouponCount)
	}
}

func TestRedeemPercentAboveMinimum(t *testing.T) {
	acc := &LoyaltyAccount{PercentCouponCount: 1}

	d, warn, err := acc.Redeem(CouponSelection{Type: DiscountPercent}, 25000, testRules())
	if err != nil || warn != "" {
		t.Fatalf("unexpected outcome: warn=%q err=%v", warn, err)
	}
	if d.Type != DiscountPercent || d.Amount != 2500 {
		t.Errorf("discount = %+v, want percent 2500", d)
	}
}

func TestRedeemPercentWithoutCoupon(t *testing.T) {
	acc := &LoyaltyAccount{}
	if _, _, err := acc.Redeem(CouponSelection{Type: DiscountPercent}, 25000, testRules()); err != ErrNoPercentCoupon {
		t.Errorf("err = %v, want ErrNoPercentCoupon", err)
	}
}

func TestApplyDiscountDeductsExactlyOne(t *testing.T) {
	acc := &LoyaltyAccount{MonetaryCouponBalance: 2000, PercentCouponCount: 2}

	if err := acc.ApplyDiscount(Discount{Type: DiscountMonetary, Amount: 1200}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.MonetaryCouponBalance != 800 || acc.PercentCouponCount != 2 {
		t.Errorf("after monetary: balance=%d percent=%d, want 800/2", acc.MonetaryCouponBalance, acc.PercentCouponCount)
	}

	if err := acc.ApplyDiscount(Discount{Type: DiscountPercent, Amount: 2500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.MonetaryCouponBalance != 800 || acc.PercentCouponCount != 1 {
		t.Errorf("after percent: balance=%d percent=%d, want 800/1", acc.MonetaryCouponBalance, acc.PercentCouponCount)
	}
}

func TestStampWraparound(t *testing.T) {
	acc := &LoyaltyAccount{Stamps: 9}
	if issued := acc.AddStamp(testRules()); !issued {
		t.Error("reaching the goal must issue a reward")
	}
	if acc.Stamps != 0 {
		t.Errorf("stamps = %d, want 0", acc.Stamps)
	}
	if acc.MonetaryCouponBalance != 3000 {
		t.Errorf("balance = %d, want 3000", acc.MonetaryCouponBalance)
	}
}

func TestStampCarryOverSingleIssuance(t *testing.T) {
	// a migrated account already over the goal gets exactly one issuance
	acc := &LoyaltyAccount{Stamps: 12}
	if issued := acc.AddStamp(testRules()); !issued {
		t.Error("crossing the goal must issue a reward")
	}
	if acc.Stamps != 3 {
		t.Errorf("stamps = %d, want 3 (carry-over, not reset)", acc.Stamps)
	}
	if acc.MonetaryCouponBalance != 3000 {
		t.Errorf("balance = %d, want exactly one reward of 3000", acc.MonetaryCouponBalance)
	}
}

func TestStampBelowGoal(t *testing.T) {
	acc := &LoyaltyAccount{Stamps: 3}
	if issued := acc.AddStamp(testRules()); issued {
		t.Error("no reward expected below the goal")
	}
	if acc.Stamps != 4 || acc.MonetaryCouponBalance != 0 {
		t.Errorf("stamps=%d balance=%d, want 4/0", acc.Stamps, acc.MonetaryCouponBalance)
	}
}
