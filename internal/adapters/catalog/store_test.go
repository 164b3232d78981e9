package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/adapters/catalog"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

func openStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	return store
}

func TestReplaceAllAndQuery(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	plans := []domain.Plan{
		{ID: "t1", Name: "Viaje Plus", Provider: "Assist", Category: domain.CategoryTravel, Benefits: []string{"Equipaje"}},
		{ID: "a1", Name: "Auto Total", Provider: "Sura", Category: domain.CategoryAuto, Price: "Desde $90.000 COP/mes"},
	}
	if err := store.ReplaceAll(ctx, plans); err != nil {
		t.Fatal(err)
	}

	travel, err := store.PlansByCategory(ctx, domain.CategoryTravel)
	if err != nil {
		t.Fatal(err)
	}
	if len(travel) != 1 || travel[0].ID != "t1" {
		t.Fatalf("travel plans = %+v", travel)
	}
	// benefits are coalesced into features on the way out
	if len(travel[0].Features) != 1 {
		t.Errorf("expected normalized features, got %+v", travel[0])
	}

	all, err := store.AllPlans(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("all plans = %d, want 2", len(all))
	}
}

func TestLoadSeedSkipsInvalid(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	seed := filepath.Join(t.TempDir(), "seed.json")
	data := `[
		{"id":"p1","name":"Pet Básico","provider":"Sura","category":"pet"},
		{"id":"","name":"sin id","provider":"X","category":"pet"},
		{"id":"bad","name":"categoría rara","provider":"X","category":"boats"}
	]`
	if err := os.WriteFile(seed, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := store.LoadSeed(ctx, seed); err != nil {
		t.Fatal(err)
	}
	all, _ := store.AllPlans(ctx)
	if len(all) != 1 || all[0].ID != "p1" {
		t.Fatalf("seed should keep only the valid plan, got %+v", all)
	}
}
