package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lucybakery/bakeshop/internal/adapter/logger"
	"github.com/lucybakery/bakeshop/internal/domain"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

type RecommendHandler struct {
	service interfaces.RecommendService
	logger  logger.Logger
}

func NewRecommendHandler(service interfaces.RecommendService, logger logger.Logger) *RecommendHandler {
	return &RecommendHandler{
		service: service,
		logger:  logger,
	}
}

type RecommendRequest struct {
	Headcount         int      `json:"headcount"`
	BakeryCount       int      `json:"bakery_count"`
	BudgetMode        string   `json:"budget_mode"`
	BudgetAmount      int      `json:"budget_amount"`
	AllowedCategories []string `json:"allowed_categories"`
	RequiredTags      []string `json:"required_tags"`
}

type RecommendResponse struct {
	Sets        []RecommendedSet `json:"sets"`
	WasFallback bool             `json:"was_fallback"`
}

type RecommendedSet struct {
	Drink      SetItem   `json:"drink"`
	Bakery     []SetItem `json:"bakery"`
	TotalPrice int       `json:"total_price"`
	Score      int       `json:"score"`
}

type SetItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if validationErrors := validateRecommendRequest(req); len(validationErrors) > 0 {
		h.logger.Error("validation_failed", "Recommendation validation failed", "", map[string]interface{}{
			"errors": validationErrors,
		}, fmt.Errorf("validation failed"))
		respondError(w, "Validation failed", http.StatusBadRequest, validationErrors)
		return
	}

	result, err := h.service.Recommend(r.Context(), interfaces.RecommendCommand{
		Headcount:         req.Headcount,
		BakeryCount:       req.BakeryCount,
		BudgetMode:        req.BudgetMode,
		BudgetAmount:      req.BudgetAmount,
		AllowedCategories: req.AllowedCategories,
		RequiredTags:      req.RequiredTags,
	})
	if err != nil {
		h.logger.Error("recommendation_failed", "Failed to generate recommendations", "", nil, err)
		respondError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	resp := RecommendResponse{
		Sets:        make([]RecommendedSet, 0, len(result.Sets)),
		WasFallback: result.WasFallback,
	}
	for _, c := range result.Sets {
		resp.Sets = append(resp.Sets, toRecommendedSet(c))
	}

	respondJSON(w, http.StatusOK, resp)
}

func validateRecommendRequest(req RecommendRequest) []ValidationError {
	var errs []ValidationError

	if req.Headcount < 1 {
		errs = append(errs, ValidationError{
			Field:   "headcount",
			Message: "headcount must be at least 1",
		})
	}
	if req.BakeryCount < 0 {
		errs = append(errs, ValidationError{
			Field:   "bakery_count",
			Message: "bakery count must not be negative",
		})
	}

	switch domain.BudgetMode(req.BudgetMode) {
	case domain.BudgetPerPerson, domain.BudgetTotal:
		if req.BudgetAmount <= 0 {
			errs = append(errs, ValidationError{
				Field:   "budget_amount",
				Message: "budget amount must be positive",
			})
		}
	case domain.BudgetUnlimited:
	default:
		errs = append(errs, ValidationError{
			Field:   "budget_mode",
			Message: "budget mode must be one of: per_person, total, unlimited",
		})
	}

	if len(req.RequiredTags) > domain.MaxRequiredTags {
		errs = append(errs, ValidationError{
			Field:   "required_tags",
			Message: "at most 3 required tags are allowed",
		})
	}

	return errs
}

func toRecommendedSet(c domain.Combination) RecommendedSet {
	set := RecommendedSet{
		Drink: SetItem{
			ID:    c.Drink.ID,
			Name:  c.Drink.Name,
			Price: c.Drink.Price,
		},
		Bakery:     make([]SetItem, 0, len(c.Bakery)),
		TotalPrice: c.TotalPrice,
		Score:      c.Score,
	}
	for _, b := range c.Bakery {
		set.Bakery = append(set.Bakery, SetItem{
			ID:    b.ID,
			Name:  b.Name,
			Price: b.Price,
		})
	}
	return set
}
