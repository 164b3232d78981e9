package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// /comparison/{owner}
// /comparison/{owner}/plans          → POST: add plan
// /comparison/{owner}/plans/{planID} → DELETE: remove plan
// /comparison/{owner}/export         → GET: xlsx workbook
func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/comparison/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	owner := domain.UserID(parts[0])

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, s.comparison.ViewSelection(r.Context(), owner))
		case http.MethodDelete:
			s.handleClearSelection(w, r, owner)
		default:
			methodNotAllowed(w)
		}

	case len(parts) == 2 && parts[1] == "plans":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleAddPlan(w, r, owner)

	case len(parts) == 3 && parts[1] == "plans":
		if r.Method != http.MethodDelete {
			methodNotAllowed(w)
			return
		}
		s.comparison.RemovePlan(r.Context(), owner, domain.PlanID(parts[2]))
		writeJSON(w, http.StatusOK, s.comparison.ViewSelection(r.Context(), owner))

	case len(parts) == 2 && parts[1] == "export":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleExportSelection(w, r, owner)

	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleAddPlan(w http.ResponseWriter, r *http.Request, owner domain.UserID) {
	var plan domain.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if plan.ID == "" || !plan.Category.Valid() {
		badRequest(w, "plan id and a valid category are required")
		return
	}

	added := s.comparison.AddPlan(r.Context(), owner, plan)
	writeJSON(w, http.StatusOK, map[string]any{
		"added":     added,
		"selection": s.comparison.ViewSelection(r.Context(), owner),
	})
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request, owner domain.UserID) {
	if categoryParam := r.URL.Query().Get("category"); categoryParam != "" {
		category := domain.Category(strings.ToLower(categoryParam))
		if !category.Valid() {
			badRequest(w, "unknown category")
			return
		}
		s.comparison.ClearCategory(r.Context(), owner, category)
	} else {
		s.comparison.ClearPlans(r.Context(), owner)
	}
	writeJSON(w, http.StatusOK, s.comparison.ViewSelection(r.Context(), owner))
}

func (s *Server) handleExportSelection(w http.ResponseWriter, r *http.Request, owner domain.UserID) {
	data, err := s.comparison.ExportXLSX(r.Context(), owner)
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="comparacion.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
