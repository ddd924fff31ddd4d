package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lucybakery/bakeshop/internal/adapter/logger"
	"github.com/lucybakery/bakeshop/internal/app/ledger"
	"github.com/lucybakery/bakeshop/internal/domain"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

type OrderHandler struct {
	service interfaces.LedgerService
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.LedgerService, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

type RegisterRequest struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
}

type RegisterResponse struct {
	CustomerID            string `json:"customer_id"`
	MonetaryCouponBalance int    `json:"monetary_coupon_balance"`
	PercentCouponCount    int    `json:"percent_coupon_count"`
	Stamps                int    `json:"stamps"`
}

type PlaceOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
	Coupon     *CouponRequest     `json:"coupon,omitempty"`
	Note       string             `json:"note"`
}

type OrderItemRequest struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
}

type CouponRequest struct {
	Type   string `json:"type"`
	Amount int    `json:"amount,omitempty"`
}

type PlaceOrderResponse struct {
	OrderID            string `json:"order_id"`
	Subtotal           int    `json:"subtotal"`
	DiscountType       string `json:"discount_type"`
	DiscountAmount     int    `json:"discount_amount"`
	FinalTotal         int    `json:"final_total"`
	StampsEarned       int    `json:"stamps_earned"`
	Warning            string `json:"warning,omitempty"`
	NotificationQueued bool   `json:"notification_queued"`
}

func (h *OrderHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if strings.TrimSpace(req.CustomerID) == "" {
		respondError(w, "Validation failed", http.StatusBadRequest, []ValidationError{
			{Field: "customer_id", Message: "customer id is required"},
		})
		return
	}

	acc, err := h.service.Register(r.Context(), interfaces.RegisterCommand{
		CustomerID: req.CustomerID,
		Name:       req.Name,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			respondError(w, "Customer is already registered", http.StatusConflict, nil)
			return
		}
		h.logger.Error("registration_failed", "Failed to register customer", "", nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	respondJSON(w, http.StatusCreated, RegisterResponse{
		CustomerID:            acc.CustomerID,
		MonetaryCouponBalance: acc.MonetaryCouponBalance,
		PercentCouponCount:    acc.PercentCouponCount,
		Stamps:                acc.Stamps,
	})
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if validationErrors := validatePlaceOrderRequest(req); len(validationErrors) > 0 {
		h.logger.Error("validation_failed", "Order validation failed", "", map[string]interface{}{
			"errors": validationErrors,
		}, fmt.Errorf("validation failed"))
		respondError(w, "Validation failed", http.StatusBadRequest, validationErrors)
		return
	}

	cmd := interfaces.PlaceOrderCommand{
		CustomerID: strings.TrimSpace(req.CustomerID),
		Note:       req.Note,
		Coupon:     domain.CouponSelection{Type: domain.DiscountNone},
	}
	if req.Coupon != nil {
		cmd.Coupon = domain.CouponSelection{
			Type:   domain.DiscountType(req.Coupon.Type),
			Amount: req.Coupon.Amount,
		}
	}
	for _, item := range req.Items {
		cmd.Lines = append(cmd.Lines, interfaces.OrderLineCommand{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	result, err := h.service.PlaceOrder(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			respondError(w, "Customer not found", http.StatusNotFound, nil)
		case errors.Is(err, ledger.ErrEmptyCart),
			errors.Is(err, ledger.ErrInvalidLine),
			errors.Is(err, domain.ErrInvalidCouponAmount),
			errors.Is(err, domain.ErrCouponBalanceExceeded),
			errors.Is(err, domain.ErrNoPercentCoupon),
			errors.Is(err, domain.ErrInvalidDiscountType):
			respondError(w, err.Error(), http.StatusBadRequest, nil)
		default:
			h.logger.Error("order_failed", "Failed to place order", "", nil, err)
			respondError(w, "Internal server error", http.StatusInternalServerError, nil)
		}
		return
	}

	respondJSON(w, http.StatusCreated, PlaceOrderResponse{
		OrderID:            result.Record.OrderID,
		Subtotal:           result.Record.Subtotal,
		DiscountType:       string(result.Record.DiscountType),
		DiscountAmount:     result.Record.DiscountAmount,
		FinalTotal:         result.Record.FinalTotal,
		StampsEarned:       result.Record.StampsEarned,
		Warning:            result.Warning,
		NotificationQueued: result.NotificationQueued,
	})
}

func validatePlaceOrderRequest(req PlaceOrderRequest) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(req.CustomerID) == "" {
		errs = append(errs, ValidationError{
			Field:   "customer_id",
			Message: "customer id is required",
		})
	}

	if len(req.Items) < 1 {
		errs = append(errs, ValidationError{
			Field:   "items",
			Message: "order must contain at least 1 item",
		})
	}

	for i, item := range req.Items {
		itemPrefix := fmt.Sprintf("items[%d]", i)

		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.name", itemPrefix),
				Message: "item name is required",
			})
		}
		if item.Quantity < 1 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.quantity", itemPrefix),
				Message: "item quantity must be at least 1",
			})
		}
		if item.UnitPrice < 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.unit_price", itemPrefix),
				Message: "item price must not be negative",
			})
		}
	}

	if req.Coupon != nil {
		switch domain.DiscountType(req.Coupon.Type) {
		case domain.DiscountNone, domain.DiscountPercent:
		case domain.DiscountMonetary:
			if req.Coupon.Amount < 0 {
				errs = append(errs, ValidationError{
					Field:   "coupon.amount",
					Message: "coupon amount must not be negative",
				})
			}
		default:
			errs = append(errs, ValidationError{
				Field:   "coupon.type",
				Message: "coupon type must be one of: none, monetary, percent",
			})
		}
	}

	return errs
}
