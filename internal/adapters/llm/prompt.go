package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// BuildSystemPrompt describes the assistant and the strict JSON envelope the
// model must answer with.
func BuildSystemPrompt(resetContext bool) string {
	var b strings.Builder
	b.WriteString(`Eres el asistente de Briki, un marketplace de seguros en Colombia.
Ayudas al usuario a entender y escoger seguros de viaje, auto, mascotas y salud.
Responde siempre en español, breve y concreto.

Responde ÚNICAMENTE con un objeto JSON con esta forma:
{
  "message": "tu respuesta en texto",
  "suggestedPlans": [ { "id": "...", "name": "...", "provider": "...", "category": "travel|auto|pet|health", "price": "...", "features": ["..."], "rating": "..." } ],
  "memory": { ... datos del usuario extraídos de la conversación ... }
}

"suggestedPlans" y "memory" son opcionales. No incluyas texto fuera del JSON.`)

	if resetContext {
		b.WriteString("\n\nEl usuario reinició la conversación: descarta cualquier contexto previo que tengas de él.")
	}
	return b.String()
}

// replyEnvelope is the wire shape the model answers with.
type replyEnvelope struct {
	Message        string         `json:"message"`
	SuggestedPlans []domain.Plan  `json:"suggestedPlans"`
	Memory         map[string]any `json:"memory"`
}

var errEnvelopeNotObject = errors.New("reply payload is not a JSON object")

// parseReplyEnvelope validates the model's raw text at the boundary: either a
// typed result or a reason. Missing suggestedPlans/memory are fine (empty /
// unchanged); a non-object payload is a hard error.
func parseReplyEnvelope(raw string) (*domain.ReplyResult, error) {
	trimmed := strings.TrimSpace(raw)
	// Models wrap JSON in fences now and then; unwrap before decoding.
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if !strings.HasPrefix(trimmed, "{") {
		return nil, fmt.Errorf("%w: %q", errEnvelopeNotObject, truncate(trimmed, 80))
	}

	var env replyEnvelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, fmt.Errorf("decode reply envelope: %w", err)
	}
	if env.Message == "" {
		return nil, errors.New("reply envelope missing message")
	}

	res := &domain.ReplyResult{
		Message:        env.Message,
		SuggestedPlans: domain.NormalizePlans(env.SuggestedPlans),
	}
	if env.Memory != nil {
		res.Memory = domain.Memory(env.Memory)
	}
	return res, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
