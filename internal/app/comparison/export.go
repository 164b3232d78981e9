package comparison

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/recommend"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

const exportSheet = "Comparación"

// ExportXLSX renders the owner's current selection as a spreadsheet: one row
// per plan, plus the comparison summary underneath. Returns the serialized
// workbook.
func (s *Service) ExportXLSX(ctx context.Context, owner domain.UserID) ([]byte, error) {
	view := s.ViewSelection(ctx, owner)

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Plan", "Proveedor", "Categoría", "Precio", "Calificación", "Coberturas"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}

	row := 2
	for _, p := range view.Plans {
		price := p.Price
		if price == "" && p.BasePrice > 0 {
			price = fmt.Sprintf("%.0f", p.BasePrice)
		}
		values := []any{p.Name, p.Provider, string(p.Category), price, p.Rating, strings.Join(p.Features, "; ")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(exportSheet, cell, v)
		}
		row++
	}

	row++ // blank separator
	writeSummaryRows(f, row, view.Summary)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummaryRows(f *excelize.File, row int, sum recommend.ComparisonSummary) {
	set := func(r int, label string, value any) {
		a, _ := excelize.CoordinatesToCellName(1, r)
		b, _ := excelize.CoordinatesToCellName(2, r)
		f.SetCellValue(exportSheet, a, label)
		f.SetCellValue(exportSheet, b, value)
	}

	name := func(p *domain.Plan) string {
		if p == nil {
			return "-"
		}
		return p.Name
	}

	set(row, "Más económico", name(sum.Cheapest))
	set(row+1, "Más coberturas", name(sum.MostFeatures))
	set(row+2, "Mejor calificado", name(sum.HighestRated))
	set(row+3, "Rango de precios", fmt.Sprintf("%.0f - %.0f", sum.PriceRange.Min, sum.PriceRange.Max))
	set(row+4, "Coberturas promedio", sum.AverageFeatures)
}
