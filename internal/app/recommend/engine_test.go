package recommend_test

import (
	"testing"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/recommend"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

func TestExtractNumericPrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"Desde $75.000 COP/mes", 75000},
		{"Cotización disponible en línea", 0},
		{"From $120 USD/trip", 120},
		{"$1.299.000 COP/año", 1299000},
		{"", 0},
	}

	for _, c := range cases {
		if got := recommend.ExtractNumericPrice(c.in); got != c.want {
			t.Errorf("ExtractNumericPrice(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCategoryBonusDominates(t *testing.T) {
	auto := domain.Plan{ID: "a1", Name: "Auto Total", Provider: "Sura", Category: domain.CategoryAuto, BasePrice: 50000, Rating: "4.5"}
	travel := domain.Plan{ID: "t1", Name: "Viaje Plus", Provider: "Assist", Category: domain.CategoryTravel, BasePrice: 20000, Rating: "5.0"}

	got := recommend.RecommendPlans(
		[]domain.Plan{travel, auto},
		"seguro barato para mi carro",
		recommend.Options{MaxPlans: 4, UniqueProviders: true, SortBy: recommend.SortByRelevance, Category: domain.CategoryAuto},
	)

	if len(got) == 0 || got[0].ID != auto.ID {
		t.Fatalf("expected auto plan ranked first, got %+v", got)
	}
}

func TestUniqueByProvider(t *testing.T) {
	mk := func(id, provider string, rating string) domain.Plan {
		return domain.Plan{ID: domain.PlanID(id), Provider: provider, Category: domain.CategoryPet, Rating: rating}
	}
	// sorted by relevance already: ratings descending within provider
	sorted := []domain.Plan{
		mk("a1", "Sura", "5.0"),
		mk("b1", "Bolívar", "4.8"),
		mk("a2", "Sura", "4.7"),
		mk("c1", "Mapfre", "4.5"),
		mk("b2", "Bolívar", "4.2"),
		mk("c2", "Mapfre", "4.0"),
	}

	got := recommend.UniqueByProvider(sorted, 4)
	if len(got) != 3 {
		t.Fatalf("expected 3 plans (one per provider), got %d", len(got))
	}
	wantIDs := map[domain.PlanID]bool{"a1": true, "b1": true, "c1": true}
	for _, p := range got {
		if !wantIDs[p.ID] {
			t.Errorf("unexpected plan %s: should keep the highest-ranked per provider", p.ID)
		}
	}
}

func TestRecommendEmptyInput(t *testing.T) {
	if got := recommend.RecommendPlans(nil, "algo", recommend.DefaultOptions()); len(got) != 0 {
		t.Fatalf("expected empty output, got %d plans", len(got))
	}
}

func TestRecommendDeterministic(t *testing.T) {
	plans := []domain.Plan{
		{ID: "p1", Name: "Pet Básico", Provider: "Sura", Category: domain.CategoryPet, Price: "Desde $30.000 COP/mes", Rating: "4.0"},
		{ID: "p2", Name: "Pet Premium", Provider: "Bolívar", Category: domain.CategoryPet, Price: "Desde $80.000 COP/mes", Rating: "4.8"},
		{ID: "p3", Name: "Pet Plus", Provider: "Mapfre", Category: domain.CategoryPet, Price: "Desde $55.000 COP/mes", Rating: "4.4"},
	}
	opts := recommend.DefaultOptions()
	opts.Category = domain.CategoryPet

	first := recommend.RecommendPlans(plans, "seguro para mi perro", opts)
	second := recommend.RecommendPlans(plans, "seguro para mi perro", opts)
	if len(first) != len(second) {
		t.Fatalf("non-deterministic output length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("non-deterministic order at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSortByPriceAndFeatures(t *testing.T) {
	plans := []domain.Plan{
		{ID: "x", Price: "$90.000 COP/mes", Features: []string{"a"}},
		{ID: "y", Price: "$30.000 COP/mes", Features: []string{"a", "b", "c"}},
		{ID: "z", Price: "$60.000 COP/mes", Features: []string{"a", "b"}},
	}

	byPrice := recommend.SortPlans(plans, recommend.SortByPrice, "", "")
	if byPrice[0].ID != "y" || byPrice[2].ID != "x" {
		t.Errorf("price sort wrong: %v %v %v", byPrice[0].ID, byPrice[1].ID, byPrice[2].ID)
	}

	byFeatures := recommend.SortPlans(plans, recommend.SortByFeatures, "", "")
	if byFeatures[0].ID != "y" || byFeatures[2].ID != "x" {
		t.Errorf("feature sort wrong: %v %v %v", byFeatures[0].ID, byFeatures[1].ID, byFeatures[2].ID)
	}
}

func TestMalformedPlansDegrade(t *testing.T) {
	// No price, no rating, no features: must score without panicking and
	// never error out of the batch.
	broken := domain.Plan{ID: "b", Name: "???"}
	if got := recommend.Score(broken, "barato", domain.CategoryAuto); got < 0 {
		t.Fatalf("score should not go negative, got %v", got)
	}
}

func TestSummarize(t *testing.T) {
	plans := []domain.Plan{
		{ID: "a", Price: "Desde $40.000 COP/mes", Features: []string{"f1", "f2"}, Rating: "4.1"},
		{ID: "b", Price: "Desde $25.000 COP/mes", Features: []string{"f1", "f2", "f3", "f4"}, Rating: "4.9"},
		{ID: "c", Price: "Cotización disponible en línea", Features: []string{"f1"}, Rating: "3.9"},
	}

	sum := recommend.Summarize(plans)
	if sum.Cheapest == nil || sum.Cheapest.ID != "b" {
		t.Errorf("cheapest should be b")
	}
	if sum.MostFeatures == nil || sum.MostFeatures.ID != "b" {
		t.Errorf("most features should be b")
	}
	if sum.HighestRated == nil || sum.HighestRated.ID != "b" {
		t.Errorf("highest rated should be b")
	}
	// plan c has no parseable price and must not drag the range to zero
	if sum.PriceRange.Min != 25000 || sum.PriceRange.Max != 40000 {
		t.Errorf("price range = %+v, want {25000 40000}", sum.PriceRange)
	}
	// (2+4+1)/3 = 2.33 → 2
	if sum.AverageFeatures != 2 {
		t.Errorf("average features = %d, want 2", sum.AverageFeatures)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := recommend.Summarize(nil)
	if sum.Cheapest != nil || sum.MostFeatures != nil || sum.HighestRated != nil {
		t.Fatalf("expected nil extremes for empty input")
	}
	if sum.PriceRange.Min != 0 || sum.PriceRange.Max != 0 || sum.AverageFeatures != 0 {
		t.Fatalf("expected zero range and average for empty input")
	}
}
