package recommend

import (
	"context"
	"fmt"

	"github.com/lucybakery/bakeshop/internal/adapter/logger"
	"github.com/lucybakery/bakeshop/internal/domain"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

type Service struct {
	catalog interfaces.CatalogRepository
	params  EngineParams
	logger  logger.Logger
}

func NewService(catalog interfaces.CatalogRepository, params EngineParams, logger logger.Logger) *Service {
	return &Service{
		catalog: catalog,
		params:  params,
		logger:  logger,
	}
}

// Recommend runs the two-phase recommendation pipeline.
//
// Phase 1 filters strictly (tag overlap required, affinity bonus applied) and
// generates within the budget. Phase 2 runs only when phase 1 produced zero
// combinations and the request carried at least one required tag; it drops the
// tag constraint and the affinity bonus. Emptiness caused purely by budget or
// category never triggers relaxation. Both phases empty is a normal outcome,
// reported as an empty result with the fallback flag.
func (s *Service) Recommend(ctx context.Context, cmd interfaces.RecommendCommand) (*interfaces.RecommendationResult, error) {
	req := domain.RecommendationRequest{
		Headcount:         cmd.Headcount,
		BakeryCount:       cmd.BakeryCount,
		BudgetMode:        domain.BudgetMode(cmd.BudgetMode),
		BudgetAmount:      cmd.BudgetAmount,
		AllowedCategories: normalizeAll(cmd.AllowedCategories),
		RequiredTags:      normalizeAll(cmd.RequiredTags),
	}

	if err := req.Validate(); err != nil {
		s.logger.Error("validation_failed", "Recommendation request rejected", "", nil, err)
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	drinks, err := s.catalog.ListDrinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load drink catalog: %w", err)
	}
	bakery, err := s.catalog.ListBakery(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bakery catalog: %w", err)
	}

	combos := s.runPhase(drinks, bakery, req, domain.FilterStrict)
	wasFallback := false

	if len(combos) == 0 && len(req.RequiredTags) > 0 {
		combos = s.runPhase(drinks, bakery, req, domain.FilterRelaxed)
		wasFallback = true
	}

	s.logger.Debug("recommendation_generated", "Recommendation query completed", "", map[string]interface{}{
		"candidates":   len(combos),
		"was_fallback": wasFallback,
	})

	return &interfaces.RecommendationResult{
		Sets:        rank(combos, s.params.TopK),
		WasFallback: wasFallback,
	}, nil
}

func (s *Service) runPhase(drinks, bakery []domain.MenuItem, req domain.RecommendationRequest, mode domain.FilterMode) []domain.Combination {
	drinkCandidates := FilterDrinks(drinks, req.AllowedCategories)
	bakeryCandidates := FilterBakery(bakery, req.RequiredTags, mode)

	scoredDrinks := effectiveScores(drinkCandidates, nil, mode, s.params.TagMatchBonus)
	scoredBakery := effectiveScores(bakeryCandidates, req.RequiredTags, mode, s.params.TagMatchBonus)

	drinkPool := capPool(scoredDrinks, s.params.DrinkPoolCap)
	bakeryPool := capPool(scoredBakery, s.params.BakeryPoolCap)

	return generate(drinkPool, bakeryPool, req, s.params)
}

func normalizeAll(labels []string) []string {
	var out []string
	for _, l := range labels {
		if n := domain.NormalizeLabel(l); n != "" {
			out = append(out, n)
		}
	}
	return out
}
