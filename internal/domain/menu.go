package domain

import (
	"regexp"
	"strings"
)

// ItemKind separates the two catalog namespaces.
type ItemKind string

const (
	KindDrink  ItemKind = "drink"
	KindBakery ItemKind = "bakery"
)

// MenuItem is one catalog entry. It is immutable after the catalog is built:
// tags and category are normalized once and BaseScore is derived once.
type MenuItem struct {
	ID        string
	Name      string
	Price     int
	Kind      ItemKind
	Category  string
	Tags      []string
	BaseScore int
}

// Catalog is the read-only view shared by every request.
type Catalog struct {
	Drinks []MenuItem
	Bakery []MenuItem
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeLabel trims and collapses internal whitespace. Category and tag
// matching is exact over normalized strings.
func NormalizeLabel(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ParseTags splits a raw tag field into a normalized, de-duplicated list.
// Accepts "," or ";" separators and strips leading "#".
func ParseTags(raw string) []string {
	raw = strings.ReplaceAll(raw, "#", "")
	raw = strings.ReplaceAll(raw, ";", ",")

	var tags []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		tag := NormalizeLabel(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// NewMenuItem builds a normalized catalog entry. Each tag field goes through
// ParseTags, so a stored "#초코;달콤" still yields two clean tags. BaseScore is
// a deterministic function of the tags: items carrying popularTag start one
// point ahead.
func NewMenuItem(id, name string, price int, kind ItemKind, category string, tags []string, popularTag string) MenuItem {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		for _, nt := range ParseTags(t) {
			if seen[nt] {
				continue
			}
			seen[nt] = true
			normalized = append(normalized, nt)
		}
	}

	score := 0
	if popularTag != "" {
		for _, t := range normalized {
			if t == popularTag {
				score = 1
				break
			}
		}
	}

	return MenuItem{
		ID:        id,
		Name:      NormalizeLabel(name),
		Price:     price,
		Kind:      kind,
		Category:  NormalizeLabel(category),
		Tags:      normalized,
		BaseScore: score,
	}
}

// HasTag reports whether the item carries the given normalized tag.
func (m MenuItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TagMatches counts how many of the requested tags the item carries.
func (m MenuItem) TagMatches(requested []string) int {
	matches := 0
	for _, tag := range requested {
		if m.HasTag(tag) {
			matches++
		}
	}
	return matches
}
