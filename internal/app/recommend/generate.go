package recommend

import (
	"sort"

	"github.com/lucybakery/bakeshop/internal/domain"
)

// EngineParams bounds the combinatorial work. Zero values fall back to the
// reference defaults via DefaultEngineParams.
type EngineParams struct {
	DrinkPoolCap  int
	BakeryPoolCap int
	GenerationCap int
	TagMatchBonus int
	TopK          int
}

func DefaultEngineParams() EngineParams {
	return EngineParams{
		DrinkPoolCap:  10,
		BakeryPoolCap: 12,
		GenerationCap: 300,
		TagMatchBonus: 2,
		TopK:          3,
	}
}

// capPool orders items by effective score descending (stable, so catalog
// order breaks ties) and truncates to the cap.
func capPool(items []scoredItem, cap int) []scoredItem {
	out := make([]scoredItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].score > out[j].score
	})
	if cap > 0 && len(out) > cap {
		out = out[:cap]
	}
	return out
}

// generate enumerates (drink × bakery-combo) pairs within the budget.
// Bakery combinations are drawn without replacement from the capped pool, so
// each combination is a set of distinct items; asking for more items than the
// pool holds simply yields nothing. The generation cap bounds how many
// candidates are emitted, not how they are ordered: ranking over the emitted
// set stays exact.
func generate(drinks, bakery []scoredItem, req domain.RecommendationRequest, params EngineParams) []domain.Combination {
	budget, bounded := req.EffectiveBudget()

	var out []domain.Combination
	combo := make([]scoredItem, 0, req.BakeryCount)

	emit := func(drink scoredItem, price, score int) bool {
		if bounded && price > budget {
			return true
		}
		items := make([]domain.MenuItem, len(combo))
		for i, s := range combo {
			items[i] = s.item
		}
		out = append(out, domain.Combination{
			Drink:      drink.item,
			Bakery:     items,
			TotalPrice: price,
			Score:      score,
		})
		return params.GenerationCap <= 0 || len(out) < params.GenerationCap
	}

	// walk extends the current combination from bakery[start:]; it returns
	// false once the generation cap is hit.
	var walk func(drink scoredItem, start, price, score int) bool
	walk = func(drink scoredItem, start, price, score int) bool {
		if len(combo) == req.BakeryCount {
			return emit(drink, price, score)
		}
		for i := start; i < len(bakery); i++ {
			combo = append(combo, bakery[i])
			ok := walk(drink, i+1, price+bakery[i].item.Price, score+bakery[i].score)
			combo = combo[:len(combo)-1]
			if !ok {
				return false
			}
		}
		return true
	}

	for _, d := range drinks {
		if !walk(d, 0, d.item.Price*req.Headcount, d.score) {
			break
		}
	}
	return out
}
