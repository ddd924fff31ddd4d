package interfaces

import (
	"context"
	"time"

	"github.com/lucybakery/bakeshop/internal/domain"
)

// Commands consumed by the app services.

type RecommendCommand struct {
	Headcount         int
	BakeryCount       int
	BudgetMode        string
	BudgetAmount      int
	AllowedCategories []string
	RequiredTags      []string
}

type RegisterCommand struct {
	CustomerID string
	Name       string
}

type PlaceOrderCommand struct {
	CustomerID string
	Lines      []OrderLineCommand
	Coupon     domain.CouponSelection
	Note       string
}

type OrderLineCommand struct {
	Name      string
	Quantity  int
	UnitPrice int
}

// RecommendationResult is the ranked outcome of one query. Sets may be empty;
// WasFallback reports whether the relaxed phase produced it.
type RecommendationResult struct {
	Sets        []domain.Combination
	WasFallback bool
}

// OrderResult wraps the persisted record with the non-fatal outcomes the caller
// must surface: a redemption warning and whether the notification reached the
// broker.
type OrderResult struct {
	Record             *domain.OrderRecord
	Warning            string
	NotificationQueued bool
}

// AccountView is the loyalty read side, newest orders first.
type AccountView struct {
	CustomerID            string
	Name                  string
	Stamps                int
	MonetaryCouponBalance int
	PercentCouponCount    int
	CreatedAt             time.Time
	RecentOrders          []*domain.OrderRecord
}

type RecommendService interface {
	Recommend(ctx context.Context, cmd RecommendCommand) (*RecommendationResult, error)
}

type LedgerService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*domain.LoyaltyAccount, error)
	GetAccount(ctx context.Context, customerID string) (*AccountView, error)
	PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*OrderResult, error)
}
