package assistant_test

import (
	"strings"
	"testing"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/assistant"
)

func TestClassifyDocument(t *testing.T) {
	cases := []struct {
		summary string
		want    string
	}{
		{"Póliza de salud con cobertura hospitalaria", assistant.DocTypeHealth},
		{"SOAT para tu carro modelo 2022", assistant.DocTypeAuto},
		{"Seguro de viaje internacional con equipaje", assistant.DocTypeTravel},
		{"Cobertura veterinaria para tu perro", assistant.DocTypePet},
		{"Condiciones generales del contrato", assistant.DocTypeGeneral},
		// health outranks auto when both match
		{"Plan de salud que incluye accidentes de auto", assistant.DocTypeHealth},
	}

	for _, c := range cases {
		if got := assistant.ClassifyDocument(c.summary); got != c.want {
			t.Errorf("ClassifyDocument(%q) = %q, want %q", c.summary, got, c.want)
		}
	}
}

func TestExtractCoverageBullets(t *testing.T) {
	summary := "Tu póliza vehicular.\n" +
		"Coberturas principales:\n" +
		"- Responsabilidad civil\n" +
		"• Asistencia en carretera\n" +
		"Otras secciones no aplican."

	bullets := assistant.ExtractCoverageBullets(summary)
	if len(bullets) != 2 {
		t.Fatalf("bullets = %v, want 2", bullets)
	}
	if bullets[0] != "Responsabilidad civil" || bullets[1] != "Asistencia en carretera" {
		t.Errorf("bullets = %v", bullets)
	}
}

func TestExtractCoverageBulletsSynthetic(t *testing.T) {
	bullets := assistant.ExtractCoverageBullets("Resumen sin secciones")
	if len(bullets) != 1 {
		t.Fatalf("expected one synthetic bullet, got %v", bullets)
	}
}

func TestComposeDocumentReply(t *testing.T) {
	reply := assistant.ComposeDocumentReply("soat.pdf", assistant.DocTypeAuto, []string{"Responsabilidad civil"})
	if !strings.Contains(reply, "soat.pdf") {
		t.Errorf("reply should mention the file name")
	}
	if !strings.Contains(reply, "- Responsabilidad civil") {
		t.Errorf("reply should list the coverage bullets")
	}
}
