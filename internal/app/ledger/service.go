package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lucybakery/bakeshop/internal/adapter/logger"
	"github.com/lucybakery/bakeshop/internal/domain"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

const recentOrdersLimit = 20

var (
	ErrEmptyCustomerID = errors.New("customer id is required")
	ErrEmptyCart       = errors.New("order must contain at least one line")
	ErrInvalidLine     = errors.New("order line has invalid name, quantity or price")
)

type Service struct {
	repo      interfaces.LoyaltyRepository
	publisher interfaces.MessagePublisher
	rules     domain.LoyaltyRules
	shopName  string
	logger    logger.Logger
}

func NewService(repo interfaces.LoyaltyRepository, publisher interfaces.MessagePublisher, rules domain.LoyaltyRules, shopName string, logger logger.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		rules:     rules,
		shopName:  shopName,
		logger:    logger,
	}
}

// Register creates the customer's loyalty account with the welcome grant.
func (s *Service) Register(ctx context.Context, cmd interfaces.RegisterCommand) (*domain.LoyaltyAccount, error) {
	customerID := strings.TrimSpace(cmd.CustomerID)
	if customerID == "" {
		return nil, ErrEmptyCustomerID
	}

	acc := domain.NewLoyaltyAccount(customerID, strings.TrimSpace(cmd.Name), s.rules)
	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, err
	}

	s.logger.Info("account_registered", "Loyalty account created", "", map[string]interface{}{
		"customer_id":    customerID,
		"welcome_amount": s.rules.WelcomeCouponAmount,
	})
	return acc, nil
}

// GetAccount returns the loyalty read side: balances plus recent orders,
// newest first.
func (s *Service) GetAccount(ctx context.Context, customerID string) (*interfaces.AccountView, error) {
	acc, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.ListOrders(ctx, customerID, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	return &interfaces.AccountView{
		CustomerID:            acc.CustomerID,
		Name:                  acc.Name,
		Stamps:                acc.Stamps,
		MonetaryCouponBalance: acc.MonetaryCouponBalance,
		PercentCouponCount:    acc.PercentCouponCount,
		CreatedAt:             acc.CreatedAt,
		RecentOrders:          orders,
	}, nil
}

// PlaceOrder redeems the selected coupon and completes the order as one
// atomic account update. The notification is published only after the update
// committed; a publish failure is reported on the result and never rolls the
// order back.
func (s *Service) PlaceOrder(ctx context.Context, cmd interfaces.PlaceOrderCommand) (*interfaces.OrderResult, error) {
	if strings.TrimSpace(cmd.CustomerID) == "" {
		return nil, ErrEmptyCustomerID
	}
	lines, subtotal, err := buildLines(cmd.Lines)
	if err != nil {
		return nil, err
	}

	var warning string

	record, err := s.repo.Apply(ctx, cmd.CustomerID, func(acc *domain.LoyaltyAccount) (*domain.OrderRecord, error) {
		discount, warn, err := acc.Redeem(cmd.Coupon, subtotal, s.rules)
		if err != nil {
			return nil, fmt.Errorf("redemption failed: %w", err)
		}
		warning = warn

		if err := acc.ApplyDiscount(discount); err != nil {
			return nil, err
		}
		acc.AddStamp(s.rules)
		acc.UpdatedAt = time.Now()

		finalTotal := subtotal - discount.Amount
		if finalTotal < 0 {
			finalTotal = 0
		}

		return &domain.OrderRecord{
			OrderID:        uuid.NewString(),
			CustomerID:     acc.CustomerID,
			CreatedAt:      time.Now(),
			Lines:          lines,
			Subtotal:       subtotal,
			DiscountType:   discount.Type,
			DiscountAmount: discount.Amount,
			FinalTotal:     finalTotal,
			StampsEarned:   1,
			Note:           strings.TrimSpace(cmd.Note),
		}, nil
	})
	if err != nil {
		s.logger.Error("order_failed", "Order completion failed", "", map[string]interface{}{
			"customer_id": cmd.CustomerID,
		}, err)
		return nil, err
	}

	s.logger.Info("order_completed", "Order persisted", "", map[string]interface{}{
		"order_id":    record.OrderID,
		"customer_id": record.CustomerID,
		"final_total": record.FinalTotal,
	})

	queued := true
	if err := s.publisher.PublishOrderNotification(ctx, notificationFor(record, s.shopName)); err != nil {
		// the order stands regardless of broker availability
		queued = false
		s.logger.Error("notification_publish_failed", "Order notification not queued", "", map[string]interface{}{
			"order_id": record.OrderID,
		}, err)
	}

	return &interfaces.OrderResult{
		Record:             record,
		Warning:            warning,
		NotificationQueued: queued,
	}, nil
}

func buildLines(cmds []interfaces.OrderLineCommand) ([]domain.OrderLine, int, error) {
	if len(cmds) == 0 {
		return nil, 0, ErrEmptyCart
	}

	lines := make([]domain.OrderLine, len(cmds))
	subtotal := 0
	for i, c := range cmds {
		name := strings.TrimSpace(c.Name)
		if name == "" || c.Quantity < 1 || c.UnitPrice < 0 {
			return nil, 0, ErrInvalidLine
		}
		lines[i] = domain.OrderLine{
			Name:      name,
			Quantity:  c.Quantity,
			UnitPrice: c.UnitPrice,
		}
		subtotal += c.Quantity * c.UnitPrice
	}
	return lines, subtotal, nil
}

func notificationFor(record *domain.OrderRecord, shopName string) interfaces.OrderNotificationMessage {
	lines := make([]interfaces.OrderLineMessage, len(record.Lines))
	for i, l := range record.Lines {
		lines[i] = interfaces.OrderLineMessage{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return interfaces.OrderNotificationMessage{
		OrderID:        record.OrderID,
		ShopName:       shopName,
		CustomerID:     record.CustomerID,
		Lines:          lines,
		Subtotal:       record.Subtotal,
		DiscountType:   record.DiscountType,
		DiscountAmount: record.DiscountAmount,
		FinalTotal:     record.FinalTotal,
		Note:           record.Note,
		OrderedAt:      record.CreatedAt.Format(time.RFC3339),
	}
}
