package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lucybakery/bakeshop/internal/adapter/logger"
	"github.com/lucybakery/bakeshop/internal/domain"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

type stubRecommendService struct {
	result *interfaces.RecommendationResult
	err    error
	called bool
}

func (s *stubRecommendService) Recommend(ctx context.Context, cmd interfaces.RecommendCommand) (*interfaces.RecommendationResult, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubLedgerService struct {
	registerAcc *domain.LoyaltyAccount
	registerErr error
	orderResult *interfaces.OrderResult
	orderErr    error
	accountView *interfaces.AccountView
	accountErr  error
}

func (s *stubLedgerService) Register(ctx context.Context, cmd interfaces.RegisterCommand) (*domain.LoyaltyAccount, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registerAcc, nil
}

func (s *stubLedgerService) GetAccount(ctx context.Context, customerID string) (*interfaces.AccountView, error) {
	if s.accountErr != nil {
		return nil, s.accountErr
	}
	return s.accountView, nil
}

func (s *stubLedgerService) PlaceOrder(ctx context.Context, cmd interfaces.PlaceOrderCommand) (*interfaces.OrderResult, error) {
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	return s.orderResult, nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestRecommendHandlerSuccess(t *testing.T) {
	drink := domain.MenuItem{ID: "D0001", Name: "americano", Price: 3000, Kind: domain.KindDrink}
	pastry := domain.MenuItem{ID: "B0001", Name: "croissant", Price: 3500, Kind: domain.KindBakery}
	svc := &stubRecommendService{result: &interfaces.RecommendationResult{
		Sets: []domain.Combination{
			{Drink: drink, Bakery: []domain.MenuItem{pastry}, TotalPrice: 6500, Score: 3},
		},
	}}
	handler := NewRecommendHandler(svc, logger.New("test"))

	w := postJSON(t, handler.Recommend, "/recommendations", RecommendRequest{
		Headcount:   1,
		BakeryCount: 1,
		BudgetMode:  "unlimited",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp RecommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Sets) != 1 || resp.Sets[0].Drink.ID != "D0001" || resp.Sets[0].TotalPrice != 6500 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRecommendHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		req  RecommendRequest
	}{
		{"zero headcount", RecommendRequest{Headcount: 0, BudgetMode: "unlimited"}},
		{"negative bakery count", RecommendRequest{Headcount: 1, BakeryCount: -1, BudgetMode: "unlimited"}},
		{"unknown budget mode", RecommendRequest{Headcount: 1, BudgetMode: "weekly"}},
		{"zero budget amount", RecommendRequest{Headcount: 1, BudgetMode: "total", BudgetAmount: 0}},
		{"too many tags", RecommendRequest{Headcount: 1, BudgetMode: "unlimited", RequiredTags: []string{"a", "b", "c", "d"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubRecommendService{result: &interfaces.RecommendationResult{}}
			handler := NewRecommendHandler(svc, logger.New("test"))

			w := postJSON(t, handler.Recommend, "/recommendations", tt.req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if svc.called {
				t.Error("service must not be called on validation failure")
			}
		})
	}
}

func TestRecommendHandlerRejectsBadJSON(t *testing.T) {
	handler := NewRecommendHandler(&stubRecommendService{}, logger.New("test"))

	req := httptest.NewRequest(http.MethodPost, "/recommendations", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	handler.Recommend(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegisterHandler(t *testing.T) {
	svc := &stubLedgerService{registerAcc: &domain.LoyaltyAccount{
		CustomerID:            "c-1",
		MonetaryCouponBalance: 2000,
	}}
	handler := NewOrderHandler(svc, logger.New("test"))

	w := postJSON(t, handler.Register, "/customers", RegisterRequest{CustomerID: "c-1", Name: "Lucy"})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var resp RegisterResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.MonetaryCouponBalance != 2000 {
		t.Errorf("balance = %d, want 2000", resp.MonetaryCouponBalance)
	}
}

func TestRegisterHandlerConflict(t *testing.T) {
	svc := &stubLedgerService{registerErr: domain.ErrAccountExists}
	handler := NewOrderHandler(svc, logger.New("test"))

	w := postJSON(t, handler.Register, "/customers", RegisterRequest{CustomerID: "c-1"})

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestRegisterHandlerMissingID(t *testing.T) {
	handler := NewOrderHandler(&stubLedgerService{}, logger.New("test"))

	w := postJSON(t, handler.Register, "/customers", RegisterRequest{CustomerID: "   "})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPlaceOrderHandler(t *testing.T) {
	svc := &stubLedgerService{orderResult: &interfaces.OrderResult{
		Record: &domain.OrderRecord{
			OrderID:      "ord-1",
			Subtotal:     9500,
			DiscountType: domain.DiscountNone,
			FinalTotal:   9500,
			StampsEarned: 1,
		},
		NotificationQueued: true,
	}}
	handler := NewOrderHandler(svc, logger.New("test"))

	w := postJSON(t, handler.PlaceOrder, "/orders", PlaceOrderRequest{
		CustomerID: "c-1",
		Items: []OrderItemRequest{
			{Name: "americano", Quantity: 2, UnitPrice: 3000},
		},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var resp PlaceOrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.OrderID != "ord-1" || !resp.NotificationQueued {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestPlaceOrderHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"unknown customer", domain.ErrAccountNotFound, http.StatusNotFound},
		{"coupon over balance", domain.ErrCouponBalanceExceeded, http.StatusBadRequest},
		{"no percent coupon", domain.ErrNoPercentCoupon, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubLedgerService{orderErr: tt.serviceErr}
			handler := NewOrderHandler(svc, logger.New("test"))

			w := postJSON(t, handler.PlaceOrder, "/orders", PlaceOrderRequest{
				CustomerID: "c-1",
				Items: []OrderItemRequest{
					{Name: "americano", Quantity: 1, UnitPrice: 3000},
				},
			})

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestPlaceOrderHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		req  PlaceOrderRequest
	}{
		{"empty items", PlaceOrderRequest{CustomerID: "c-1"}},
		{"missing customer id", PlaceOrderRequest{
			Items: []OrderItemRequest{{Name: "scone", Quantity: 1, UnitPrice: 3000}},
		}},
		{"zero quantity", PlaceOrderRequest{
			CustomerID: "c-1",
			Items:      []OrderItemRequest{{Name: "scone", Quantity: 0, UnitPrice: 3000}},
		}},
		{"unknown coupon type", PlaceOrderRequest{
			CustomerID: "c-1",
			Items:      []OrderItemRequest{{Name: "scone", Quantity: 1, UnitPrice: 3000}},
			Coupon:     &CouponRequest{Type: "birthday"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewOrderHandler(&stubLedgerService{}, logger.New("test"))

			w := postJSON(t, handler.PlaceOrder, "/orders", tt.req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestLoyaltyHandler(t *testing.T) {
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc := &stubLedgerService{accountView: &interfaces.AccountView{
		CustomerID:            "c-1",
		Name:                  "Lucy",
		Stamps:                4,
		MonetaryCouponBalance: 2000,
		RecentOrders: []*domain.OrderRecord{
			{OrderID: "ord-1", CreatedAt: created, Subtotal: 9500, DiscountType: domain.DiscountNone, FinalTotal: 9500},
		},
	}}
	handler := NewLoyaltyHandler(svc, logger.New("test"))

	req := httptest.NewRequest(http.MethodGet, "/loyalty/c-1", nil)
	w := httptest.NewRecorder()
	handler.GetAccount(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp LoyaltyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Stamps != 4 || len(resp.RecentOrders) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.RecentOrders[0].CreatedAt != created.Format(time.RFC3339) {
		t.Errorf("created_at = %q", resp.RecentOrders[0].CreatedAt)
	}
}

func TestLoyaltyHandlerNotFound(t *testing.T) {
	svc := &stubLedgerService{accountErr: domain.ErrAccountNotFound}
	handler := NewLoyaltyHandler(svc, logger.New("test"))

	req := httptest.NewRequest(http.MethodGet, "/loyalty/ghost", nil)
	w := httptest.NewRecorder()
	handler.GetAccount(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestLoyaltyHandlerInvalidPath(t *testing.T) {
	handler := NewLoyaltyHandler(&stubLedgerService{}, logger.New("test"))

	req := httptest.NewRequest(http.MethodGet, "/loyalty/", nil)
	w := httptest.NewRecorder()
	handler.GetAccount(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
