package domain

import (
	"reflect"
	"testing"
)

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  latte ", "latte"},
		{"cold   brew", "cold brew"},
		{"\tearl\n grey\t", "earl grey"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeLabel(tc.in); got != tc.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags("#초코; 달콤 ,치즈,, 초코")
	want := []string{"초코", "달콤", "치즈"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTags = %v, want %v", got, want)
	}
}

func TestNewMenuItemBaseScore(t *testing.T) {
	popular := NewMenuItem("B0001", "choco muffin", 3500, KindBakery, "", []string{"초코", "인기"}, "인기")
	if popular.BaseScore != 1 {
		t.Errorf("popular item base score = %d, want 1", popular.BaseScore)
	}

	plain := NewMenuItem("B0002", "plain scone", 3000, KindBakery, "", []string{"담백"}, "인기")
	if plain.BaseScore != 0 {
		t.Errorf("plain item base score = %d, want 0", plain.BaseScore)
	}
}

func TestNewMenuItemParsesRawTagFields(t *testing.T) {
	item := NewMenuItem("B0004", "twist donut", 2800, KindBakery, "",
		[]string{"#초코; 달콤", "달콤", " 인기 "}, "인기")

	want := []string{"초코", "달콤", "인기"}
	if !reflect.DeepEqual(item.Tags, want) {
		t.Errorf("Tags = %v, want %v", item.Tags, want)
	}
	if item.BaseScore != 1 {
		t.Errorf("base score = %d, want 1", item.BaseScore)
	}
}

func TestTagMatches(t *testing.T) {
	item := NewMenuItem("B0003", "choco cheese tart", 4200, KindBakery, "", []string{"초코", "치즈"}, "")

	if got := item.TagMatches([]string{"초코", "치즈", "담백"}); got != 2 {
		t.Errorf("TagMatches = %d, want 2", got)
	}
	if got := item.TagMatches(nil); got != 0 {
		t.Errorf("TagMatches(nil) = %d, want 0", got)
	}
}

func TestRequestValidation(t *testing.T) {
	base := RecommendationRequest{
		Headcount:    2,
		BakeryCount:  1,
		BudgetMode:   BudgetTotal,
		BudgetAmount: 15000,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name string
		mod  func(r *RecommendationRequest)
		want error
	}{
		{"zero headcount", func(r *RecommendationRequest) { r.Headcount = 0 }, ErrInvalidHeadcount},
		{"negative bakery count", func(r *RecommendationRequest) { r.BakeryCount = -1 }, ErrInvalidBakeryCount},
		{"zero budget", func(r *RecommendationRequest) { r.BudgetAmount = 0 }, ErrInvalidBudget},
		{"bad mode", func(r *RecommendationRequest) { r.BudgetMode = "weekly" }, ErrInvalidBudgetMode},
		{"too many tags", func(r *RecommendationRequest) {
			r.RequiredTags = []string{"a", "b", "c", "d"}
		}, ErrTooManyTags},
	}

	for _, tc := range cases {
		req := base
		tc.mod(&req)
		if err := req.Validate(); err != tc.want {
			t.Errorf("%s: Validate() = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestEffectiveBudget(t *testing.T) {
	perPerson := RecommendationRequest{Headcount: 3, BudgetMode: BudgetPerPerson, BudgetAmount: 5000}
	if budget, bounded := perPerson.EffectiveBudget(); !bounded || budget != 15000 {
		t.Errorf("per-person budget = (%d, %v), want (15000, true)", budget, bounded)
	}

	total := RecommendationRequest{Headcount: 3, BudgetMode: BudgetTotal, BudgetAmount: 5000}
	if budget, bounded := total.EffectiveBudget(); !bounded || budget != 5000 {
		t.Errorf("total budget = (%d, %v), want (5000, true)", budget, bounded)
	}

	unlimited := RecommendationRequest{Headcount: 3, BudgetMode: BudgetUnlimited}
	if _, bounded := unlimited.EffectiveBudget(); bounded {
		t.Error("unlimited budget reported as bounded")
	}
}
