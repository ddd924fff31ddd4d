package interfaces

import (
	"context"

	"github.com/lucybakery/bakeshop/internal/domain"
)

// OrderNotificationMessage is published after an order commits and carries
// everything the owner email needs.
type OrderNotificationMessage struct {
	OrderID        string              `json:"order_id"`
	ShopName       string              `json:"shop_name"`
	CustomerID     string              `json:"customer_id"`
	Lines          []OrderLineMessage  `json:"lines"`
	Subtotal       int                 `json:"subtotal"`
	DiscountType   domain.DiscountType `json:"discount_type"`
	DiscountAmount int                 `json:"discount_amount"`
	FinalTotal     int                 `json:"final_total"`
	Note           string              `json:"note"`
	OrderedAt      string              `json:"ordered_at"`
}

type OrderLineMessage struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
}

// MessagePublisher pushes order notifications to the broker. Failures must
// not undo a committed order; callers surface them as warnings.
type MessagePublisher interface {
	PublishOrderNotification(ctx context.Context, msg OrderNotificationMessage) error
}

type NotificationMessageHandler func(ctx context.Context, body []byte) error

// MessageConsumer feeds the notification subscriber.
type MessageConsumer interface {
	ConsumeOrderNotifications(ctx context.Context, handler NotificationMessageHandler) error
}

// NotificationSender delivers the owner email. The (ok, reason) outcome is
// reported, never escalated into a failed order.
type NotificationSender interface {
	Send(ctx context.Context, msg OrderNotificationMessage) (bool, string)
}
