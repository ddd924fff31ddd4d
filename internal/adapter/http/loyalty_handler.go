package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lucybakery/bakeshop/internal/adapter/logger"
	"github.com/lucybakery/bakeshop/internal/domain"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

type LoyaltyHandler struct {
	service interfaces.LedgerService
	logger  logger.Logger
}

func NewLoyaltyHandler(service interfaces.LedgerService, logger logger.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{
		service: service,
		logger:  logger,
	}
}

type LoyaltyResponse struct {
	CustomerID            string         `json:"customer_id"`
	Name                  string         `json:"name"`
	Stamps                int            `json:"stamps"`
	MonetaryCouponBalance int            `json:"monetary_coupon_balance"`
	PercentCouponCount    int            `json:"percent_coupon_count"`
	RecentOrders          []OrderSummary `json:"recent_orders"`
}

type OrderSummary struct {
	OrderID        string `json:"order_id"`
	CreatedAt      string `json:"created_at"`
	Subtotal       int    `json:"subtotal"`
	DiscountType   string `json:"discount_type"`
	DiscountAmount int    `json:"discount_amount"`
	FinalTotal     int    `json:"final_total"`
}

// GetAccount serves GET /loyalty/{customerID}.
func (h *LoyaltyHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	customerID := strings.TrimPrefix(r.URL.Path, "/loyalty/")
	if customerID == "" || strings.Contains(customerID, "/") {
		respondError(w, "Invalid customer id", http.StatusBadRequest, nil)
		return
	}

	view, err := h.service.GetAccount(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			respondError(w, "Customer not found", http.StatusNotFound, nil)
			return
		}
		h.logger.Error("loyalty_lookup_failed", "Failed to load loyalty account", "", nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	resp := LoyaltyResponse{
		CustomerID:            view.CustomerID,
		Name:                  view.Name,
		Stamps:                view.Stamps,
		MonetaryCouponBalance: view.MonetaryCouponBalance,
		PercentCouponCount:    view.PercentCouponCount,
		RecentOrders:          make([]OrderSummary, 0, len(view.RecentOrders)),
	}
	for _, rec := range view.RecentOrders {
		resp.RecentOrders = append(resp.RecentOrders, OrderSummary{
			OrderID:        rec.OrderID,
			CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
			Subtotal:       rec.Subtotal,
			DiscountType:   string(rec.DiscountType),
			DiscountAmount: rec.DiscountAmount,
			FinalTotal:     rec.FinalTotal,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}
