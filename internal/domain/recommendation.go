package domain

import "errors"

// BudgetMode selects how the budget amount is interpreted.
type BudgetMode string

const (
	BudgetPerPerson BudgetMode = "per_person"
	BudgetTotal     BudgetMode = "total"
	BudgetUnlimited BudgetMode = "unlimited"
)

// FilterMode selects the bakery tag filter behavior. Strict requires at least
// one requested tag to match; Relaxed ignores the tag constraint entirely.
type FilterMode string

const (
	FilterStrict  FilterMode = "strict"
	FilterRelaxed FilterMode = "relaxed"
)

const MaxRequiredTags = 3

// RecommendationRequest is one recommendation query. Labels must already be
// normalized by the caller (handlers normalize on decode).
type RecommendationRequest struct {
	Headcount         int
	BakeryCount       int
	BudgetMode        BudgetMode
	BudgetAmount      int
	AllowedCategories []string
	RequiredTags      []string
}

var (
	ErrInvalidHeadcount   = errors.New("headcount must be at least 1")
	ErrInvalidBakeryCount = errors.New("bakery count must not be negative")
	ErrInvalidBudget      = errors.New("budget amount must be positive")
	ErrInvalidBudgetMode  = errors.New("invalid budget mode")
	ErrTooManyTags        = errors.New("at most 3 required tags are allowed")
)

// Validate applies the caller-error checks that must reject a request before
// any generation happens.
func (r RecommendationRequest) Validate() error {
	if r.Headcount < 1 {
		return ErrInvalidHeadcount
	}
	if r.BakeryCount < 0 {
		return ErrInvalidBakeryCount
	}
	switch r.BudgetMode {
	case BudgetPerPerson, BudgetTotal:
		// a zero budget can never admit a priced combination; treat it as a
		// caller error rather than silently returning nothing
		if r.BudgetAmount <= 0 {
			return ErrInvalidBudget
		}
	case BudgetUnlimited:
	default:
		return ErrInvalidBudgetMode
	}
	if len(r.RequiredTags) > MaxRequiredTags {
		return ErrTooManyTags
	}
	return nil
}

// EffectiveBudget resolves the budget to a single total ceiling comparable to
// Combination.TotalPrice. The second return is false for unlimited budgets.
func (r RecommendationRequest) EffectiveBudget() (int, bool) {
	switch r.BudgetMode {
	case BudgetPerPerson:
		return r.BudgetAmount * r.Headcount, true
	case BudgetTotal:
		return r.BudgetAmount, true
	default:
		return 0, false
	}
}

// Combination is one proposed set: a drink served Headcount times plus
// BakeryCount distinct bakery items.
type Combination struct {
	Drink      MenuItem
	Bakery     []MenuItem
	TotalPrice int
	Score      int
}
