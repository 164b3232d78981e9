package assistant

import (
	"fmt"
	"strings"
)

// Document types recognized from a summary. Matching is keyword-based and
// Spanish-first; the priority order below is fixed — first match wins.
const (
	DocTypeHealth  = "health"
	DocTypeAuto    = "auto"
	DocTypeTravel  = "travel"
	DocTypePet     = "pet"
	DocTypeGeneral = "general"
)

var documentKeywords = []struct {
	docType  string
	keywords []string
}{
	{DocTypeHealth, []string{"salud", "médic", "medic", "eps", "hospital", "prepagada"}},
	{DocTypeAuto, []string{"vehíc", "vehic", "auto", "carro", "soat", "moto"}},
	{DocTypeTravel, []string{"viaje", "viajero", "travel", "internacional", "equipaje"}},
	{DocTypePet, []string{"mascota", "perro", "gato", "pet", "veterinari"}},
}

// ClassifyDocument labels a summary with one of the closed document types.
func ClassifyDocument(summary string) string {
	s := strings.ToLower(summary)
	for _, entry := range documentKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(s, kw) {
				return entry.docType
			}
		}
	}
	return DocTypeGeneral
}

const coverageHeading = "coberturas principales"

// ExtractCoverageBullets pulls the bullet block under the "Coberturas
// principales" heading. When the summary has no such block, a single
// synthetic bullet is returned so the templated reply always has content.
func ExtractCoverageBullets(summary string) []string {
	lines := strings.Split(summary, "\n")
	var bullets []string
	inBlock := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inBlock {
			if strings.Contains(strings.ToLower(trimmed), coverageHeading) {
				inBlock = true
			}
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "*") {
			bullet := strings.TrimSpace(strings.TrimLeft(trimmed, "-•*"))
			if bullet != "" {
				bullets = append(bullets, bullet)
			}
			continue
		}
		if trimmed == "" && len(bullets) > 0 {
			break
		}
		if trimmed != "" && len(bullets) > 0 {
			break
		}
	}

	if len(bullets) == 0 {
		bullets = []string{"Revisa el documento para conocer el detalle de tus coberturas"}
	}
	return bullets
}

var documentReplyIntros = map[string]string{
	DocTypeHealth:  "Ya revisé tu póliza de salud",
	DocTypeAuto:    "Ya revisé tu póliza vehicular",
	DocTypeTravel:  "Ya revisé tu seguro de viaje",
	DocTypePet:     "Ya revisé la póliza de tu mascota",
	DocTypeGeneral: "Ya revisé tu documento",
}

// ComposeDocumentReply builds the contextual assistant reply for a processed
// document.
func ComposeDocumentReply(fileName, docType string, bullets []string) string {
	intro, ok := documentReplyIntros[docType]
	if !ok {
		intro = documentReplyIntros[DocTypeGeneral]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s).\n\nCoberturas principales:\n", intro, fileName)
	for _, bullet := range bullets {
		fmt.Fprintf(&b, "- %s\n", bullet)
	}
	b.WriteString("\n¿Quieres que te ayude a comparar estas coberturas con otros planes?")
	return b.String()
}
