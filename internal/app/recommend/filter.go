package recommend

import "github.com/lucybakery/bakeshop/internal/domain"

// FilterDrinks keeps drinks whose category is one of the allowed labels
// (exact match over normalized strings). An empty allowed set returns no
// drinks: category selection gates drink recommendation on purpose.
func FilterDrinks(drinks []domain.MenuItem, allowedCategories []string) []domain.MenuItem {
	if len(allowedCategories) == 0 {
		return nil
	}

	allowed := make(map[string]bool, len(allowedCategories))
	for _, c := range allowedCategories {
		allowed[domain.NormalizeLabel(c)] = true
	}

	var out []domain.MenuItem
	for _, d := range drinks {
		if allowed[d.Category] {
			out = append(out, d)
		}
	}
	return out
}

// FilterBakery narrows the bakery catalog by the requested tags. Strict mode
// keeps an item when at least one requested tag matches; relaxed mode ignores
// the tag constraint. With no requested tags the two modes coincide.
func FilterBakery(bakery []domain.MenuItem, requiredTags []string, mode domain.FilterMode) []domain.MenuItem {
	if mode == domain.FilterRelaxed || len(requiredTags) == 0 {
		out := make([]domain.MenuItem, len(bakery))
		copy(out, bakery)
		return out
	}

	var out []domain.MenuItem
	for _, b := range bakery {
		if b.TagMatches(requiredTags) > 0 {
			out = append(out, b)
		}
	}
	return out
}
