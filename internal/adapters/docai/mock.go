package docai

import (
	"context"
	"fmt"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// MockAnalyzer returns a canned summary for local mode.
type MockAnalyzer struct{}

func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

func (m *MockAnalyzer) AnalyzeDocument(_ context.Context, upload domain.DocumentUpload) (*domain.DocumentSummary, error) {
	summary := fmt.Sprintf(
		"Resumen del documento %s.\nCoberturas principales:\n- Cobertura básica incluida\n- Asistencia 24/7",
		upload.FileName,
	)
	return &domain.DocumentSummary{
		FileName: upload.FileName,
		FileSize: upload.Size,
		Summary:  summary,
	}, nil
}
