package llm

import "testing"

func TestParseReplyEnvelope(t *testing.T) {
	raw := "```json\n" + `{"message":"Hola","suggestedPlans":[{"id":"p1","name":"Viaje Plus","provider":"Assist","category":"travel","benefits":["Equipaje"]}],"memory":{"travel":{"destination":"Madrid"}}}` + "\n```"

	res, err := parseReplyEnvelope(raw)
	if err != nil {
		t.Fatal(err)
	}
	if res.Message != "Hola" {
		t.Errorf("message = %q", res.Message)
	}
	if len(res.SuggestedPlans) != 1 || len(res.SuggestedPlans[0].Features) != 1 {
		t.Errorf("plans should be normalized (benefits coalesced into features): %+v", res.SuggestedPlans)
	}
	if res.Memory == nil || res.Memory["travel"] == nil {
		t.Errorf("memory = %v", res.Memory)
	}
}

func TestParseReplyEnvelopeRejectsNonObject(t *testing.T) {
	if _, err := parseReplyEnvelope("claro, aquí tienes unos planes"); err == nil {
		t.Fatal("prose payload must be a hard error")
	}
	if _, err := parseReplyEnvelope(`{"suggestedPlans":[]}`); err == nil {
		t.Fatal("envelope without message must be a hard error")
	}
}

func TestParseReplyEnvelopeOptionalFields(t *testing.T) {
	res, err := parseReplyEnvelope(`{"message":"solo texto"}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.SuggestedPlans) != 0 || res.Memory != nil {
		t.Errorf("missing optional fields should mean empty plans and unchanged memory")
	}
}
