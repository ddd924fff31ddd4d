// Package memory provides mutex-guarded in-memory repositories. They back the
// tests and local runs without PostgreSQL; the per-customer lock gives the
// same one-atomic-update-per-account guarantee as the transactional store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lucybakery/bakeshop/internal/domain"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

type CatalogRepository struct {
	drinks []domain.MenuItem
	bakery []domain.MenuItem
}

func NewCatalogRepository(drinks, bakery []domain.MenuItem) *CatalogRepository {
	return &CatalogRepository{drinks: drinks, bakery: bakery}
}

func (r *CatalogRepository) ListDrinks(ctx context.Context) ([]domain.MenuItem, error) {
	return r.drinks, nil
}

func (r *CatalogRepository) ListBakery(ctx context.Context) ([]domain.MenuItem, error) {
	return r.bakery, nil
}

type LoyaltyRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.LoyaltyAccount
	orders   map[string][]*domain.OrderRecord
}

func NewLoyaltyRepository() *LoyaltyRepository {
	return &LoyaltyRepository{
		accounts: make(map[string]*domain.LoyaltyAccount),
		orders:   make(map[string][]*domain.OrderRecord),
	}
}

func (r *LoyaltyRepository) Create(ctx context.Context, acc *domain.LoyaltyAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[acc.CustomerID]; ok {
		return domain.ErrAccountExists
	}
	copied := *acc
	r.accounts[acc.CustomerID] = &copied
	return nil
}

func (r *LoyaltyRepository) FindByCustomer(ctx context.Context, customerID string) (*domain.LoyaltyAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[customerID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *acc
	return &copied, nil
}

func (r *LoyaltyRepository) Apply(ctx context.Context, customerID string, update interfaces.AccountUpdate) (*domain.OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[customerID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	// mutate a scratch copy so a failed update leaves the account untouched
	scratch := *acc
	record, err := update(&scratch)
	if err != nil {
		return nil, err
	}

	r.accounts[customerID] = &scratch
	r.orders[customerID] = append(r.orders[customerID], record)
	return record, nil
}

func (r *LoyaltyRepository) ListOrders(ctx context.Context, customerID string, limit int) ([]*domain.OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]*domain.OrderRecord, len(r.orders[customerID]))
	copy(orders, r.orders[customerID])

	// newest first
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}
