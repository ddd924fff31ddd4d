package postgres

import (
	"context"
	"fmt"

	"github.com/lucybakery/bakeshop/internal/domain"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

type catalogRepository struct {
	db         DB
	popularTag string
}

func NewCatalogRepository(db DB, popularTag string) interfaces.CatalogRepository {
	return &catalogRepository{db: db, popularTag: popularTag}
}

func (r *catalogRepository) ListDrinks(ctx context.Context) ([]domain.MenuItem, error) {
	return r.list(ctx, domain.KindDrink)
}

func (r *catalogRepository) ListBakery(ctx context.Context) ([]domain.MenuItem, error) {
	return r.list(ctx, domain.KindBakery)
}

func (r *catalogRepository) list(ctx context.Context, kind domain.ItemKind) ([]domain.MenuItem, error) {
	query := `
		SELECT id, name, price, category, tags
		FROM menu_items
		WHERE kind = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var (
			id, name, category string
			price              int
			tags               []string
		)
		if err := rows.Scan(&id, &name, &price, &category, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, domain.NewMenuItem(id, name, price, kind, category, tags, r.popularTag))
	}

	return items, nil
}
