package amqp

import (
	"context"
	"encoding/json"

	"github.com/lucybakery/bakeshop/internal/adapter/logger"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

// NotificationHandler bridges broker deliveries to the mail sender.
type NotificationHandler struct {
	sender interfaces.NotificationSender
	logger logger.Logger
}

func NewNotificationHandler(sender interfaces.NotificationSender, logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		sender: sender,
		logger: logger,
	}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var msg interfaces.OrderNotificationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse order notification", "", nil, err)
		return err
	}

	ok, reason := h.sender.Send(ctx, msg)
	if !ok {
		// delivery failure is operator follow-up material, not an error
		h.logger.Warn("email_delivery_failed", "Owner email not delivered", msg.OrderID, map[string]interface{}{
			"order_id": msg.OrderID,
			"reason":   reason,
		})
		return nil
	}

	h.logger.Info("email_sent", "Owner email delivered", msg.OrderID, map[string]interface{}{
		"order_id":    msg.OrderID,
		"final_total": msg.FinalTotal,
	})
	return nil
}
