package recommend

import "github.com/lucybakery/bakeshop/internal/domain"

// scoredItem pairs a catalog entry with its effective score for one request.
// The tag-affinity bonus is derived once here, before pool capping, so that
// capping already favors tag-affine items; it is never recomputed per
// combination.
type scoredItem struct {
	item  domain.MenuItem
	score int
}

// effectiveScores computes per-item scores for the request. The affinity
// bonus applies only in strict mode with at least one requested tag; relaxed
// mode reverts to the base popularity score.
func effectiveScores(items []domain.MenuItem, requiredTags []string, mode domain.FilterMode, tagMatchBonus int) []scoredItem {
	scored := make([]scoredItem, len(items))
	for i, item := range items {
		score := item.BaseScore
		if mode == domain.FilterStrict && len(requiredTags) > 0 {
			score += item.TagMatches(requiredTags) * tagMatchBonus
		}
		scored[i] = scoredItem{item: item, score: score}
	}
	return scored
}
