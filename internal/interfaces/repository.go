package interfaces

import (
	"context"

	"github.com/lucybakery/bakeshop/internal/domain"
)

// CatalogRepository supplies the pre-validated menu. The catalog is read-only
// after load and safe to share across requests.
type CatalogRepository interface {
	ListDrinks(ctx context.Context) ([]domain.MenuItem, error)
	ListBakery(ctx context.Context) ([]domain.MenuItem, error)
}

// AccountUpdate mutates a loyalty account and produces the order to persist
// with it. Returning an error aborts the whole update with nothing applied.
type AccountUpdate func(acc *domain.LoyaltyAccount) (*domain.OrderRecord, error)

// LoyaltyRepository stores one account per customer. Apply runs the update
// function against the current account state as one atomic unit: coupon
// deduction, stamp increment, reward issuance and the order append either all
// land durably or none do.
type LoyaltyRepository interface {
	Create(ctx context.Context, acc *domain.LoyaltyAccount) error
	FindByCustomer(ctx context.Context, customerID string) (*domain.LoyaltyAccount, error)
	Apply(ctx context.Context, customerID string, update AccountUpdate) (*domain.OrderRecord, error)
	ListOrders(ctx context.Context, customerID string, limit int) ([]*domain.OrderRecord, error)
}
