package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/recommend"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// MockLLM is the local-mode generator: keyword routing over the real catalog
// through the real ranking pipeline, so local conversations still exercise
// recommendation and dedup end to end.
type MockLLM struct {
	catalog domain.PlanCatalog
}

func NewMockLLM(catalog domain.PlanCatalog) *MockLLM {
	return &MockLLM{catalog: catalog}
}

var categoryCues = []struct {
	category domain.Category
	cues     []string
}{
	{domain.CategoryAuto, []string{"carro", "auto", "vehíc", "vehic", "soat", "moto"}},
	{domain.CategoryPet, []string{"mascota", "perro", "gato", "pet"}},
	{domain.CategoryHealth, []string{"salud", "médic", "medic", "eps"}},
	{domain.CategoryTravel, []string{"viaje", "viajar", "travel", "internacional"}},
}

func (m *MockLLM) GenerateReply(ctx context.Context, req domain.ReplyRequest) (*domain.ReplyResult, error) {
	query := strings.ToLower(req.Message)

	var category domain.Category
	for _, entry := range categoryCues {
		for _, cue := range entry.cues {
			if strings.Contains(query, cue) {
				category = entry.category
				break
			}
		}
		if category != "" {
			break
		}
	}

	if category == "" {
		return &domain.ReplyResult{
			Message: "Cuéntame qué quieres asegurar: ¿un viaje, tu carro, tu mascota o tu salud?",
		}, nil
	}

	var plans []domain.Plan
	if m.catalog != nil {
		if fetched, err := m.catalog.PlansByCategory(ctx, category); err == nil {
			opts := recommend.DefaultOptions()
			opts.Category = category
			plans = recommend.RecommendPlans(fetched, req.Message, opts)
		}
	}

	memory := req.Memory.Clone()
	memory["lastViewedCategory"] = string(category)

	msg := fmt.Sprintf("Encontré %d planes de %s que podrían servirte.", len(plans), category)
	if len(plans) == 0 {
		msg = fmt.Sprintf("Por ahora no tengo planes de %s para mostrarte.", category)
	}

	return &domain.ReplyResult{
		Message:        msg,
		SuggestedPlans: plans,
		Memory:         memory,
	}, nil
}
