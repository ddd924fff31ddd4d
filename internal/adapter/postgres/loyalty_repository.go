package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lucybakery/bakeshop/internal/domain"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

type loyaltyRepository struct {
	db DB
}

func NewLoyaltyRepository(db DB) interfaces.LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) Create(ctx context.Context, acc *domain.LoyaltyAccount) error {
	query := `
		INSERT INTO loyalty_accounts (customer_id, name, stamps, monetary_coupon_balance,
		                              percent_coupon_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		acc.CustomerID, acc.Name, acc.Stamps, acc.MonetaryCouponBalance,
		acc.PercentCouponCount, acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("failed to insert loyalty account: %w", err)
	}
	return nil
}

func (r *loyaltyRepository) FindByCustomer(ctx context.Context, customerID string) (*domain.LoyaltyAccount, error) {
	return scanAccount(r.db.QueryRow(ctx, `
		SELECT customer_id, name, stamps, monetary_coupon_balance, percent_coupon_count,
		       created_at, updated_at
		FROM loyalty_accounts
		WHERE customer_id = $1
	`, customerID))
}

// Apply runs the account mutation and the order append inside one
// transaction. The account row is locked for the duration, so two concurrent
// orders by the same customer serialize and cannot double-spend a coupon or
// lose a stamp.
func (r *loyaltyRepository) Apply(ctx context.Context, customerID string, update interfaces.AccountUpdate) (*domain.OrderRecord, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	acc, err := scanAccount(tx.QueryRow(ctx, `
		SELECT customer_id, name, stamps, monetary_coupon_balance, percent_coupon_count,
		       created_at, updated_at
		FROM loyalty_accounts
		WHERE customer_id = $1
		FOR UPDATE
	`, customerID))
	if err != nil {
		return nil, err
	}

	record, err := update(acc)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE loyalty_accounts
		SET stamps = $1, monetary_coupon_balance = $2, percent_coupon_count = $3, updated_at = $4
		WHERE customer_id = $5
	`, acc.Stamps, acc.MonetaryCouponBalance, acc.PercentCouponCount, acc.UpdatedAt, acc.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to update loyalty account: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, customer_id, created_at, subtotal, discount_type,
		                    discount_amount, final_total, stamps_earned, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, record.OrderID, record.CustomerID, record.CreatedAt, record.Subtotal,
		string(record.DiscountType), record.DiscountAmount, record.FinalTotal,
		record.StampsEarned, record.Note)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range record.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, name, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`, record.OrderID, line.Name, line.Quantity, line.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return record, nil
}

func (r *loyaltyRepository) ListOrders(ctx context.Context, customerID string, limit int) ([]*domain.OrderRecord, error) {
	query := `
		SELECT id, customer_id, created_at, subtotal, discount_type,
		       discount_amount, final_total, stamps_earned, note
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.OrderRecord
	for rows.Next() {
		var (
			rec          domain.OrderRecord
			discountType string
		)
		if err := rows.Scan(&rec.OrderID, &rec.CustomerID, &rec.CreatedAt, &rec.Subtotal,
			&discountType, &rec.DiscountAmount, &rec.FinalTotal, &rec.StampsEarned, &rec.Note); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		rec.DiscountType = domain.DiscountType(discountType)
		orders = append(orders, &rec)
	}

	for _, rec := range orders {
		lines, err := r.listOrderItems(ctx, rec.OrderID)
		if err != nil {
			return nil, err
		}
		rec.Lines = lines
	}

	return orders, nil
}

func (r *loyaltyRepository) listOrderItems(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, quantity, unit_price FROM order_items WHERE order_id = $1 ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.Name, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func scanAccount(row Row) (*domain.LoyaltyAccount, error) {
	var acc domain.LoyaltyAccount
	err := row.Scan(&acc.CustomerID, &acc.Name, &acc.Stamps, &acc.MonetaryCouponBalance,
		&acc.PercentCouponCount, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to scan loyalty account: %w", err)
	}
	return &acc, nil
}
