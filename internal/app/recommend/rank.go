package recommend

import (
	"sort"

	"github.com/lucybakery/bakeshop/internal/domain"
)

// rank totally orders combinations by score descending, then total price
// ascending; remaining ties keep generation order (stable sort), which keeps
// the result deterministic for deterministic input. Truncates to the top k.
func rank(combos []domain.Combination, k int) []domain.Combination {
	out := make([]domain.Combination, len(combos))
	copy(out, combos)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].TotalPrice < out[j].TotalPrice
	})

	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
