package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/assistant"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/comparison"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/recommend"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type Server struct {
	assistant  *assistant.Service
	comparison *comparison.Service
	catalog    domain.PlanCatalog
}

func NewServer(
	assistantSvc *assistant.Service,
	comparisonSvc *comparison.Service,
	catalog domain.PlanCatalog,
) http.Handler {
	s := &Server{
		assistant:  assistantSvc,
		comparison: comparisonSvc,
		catalog:    catalog,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /sessions            → POST: create session
	// /sessions/{id}       → GET: timeline + memory
	// /sessions/{id}/...   → messages, documents, reset, retry
	mux.HandleFunc("/sessions", s.handleSessions)
	mux.HandleFunc("/sessions/", s.handleSessionWithID)

	// /plans?category=...      → GET: raw catalog
	// /recommendations         → POST: ranked plans for a query
	mux.HandleFunc("/plans", s.handlePlans)
	mux.HandleFunc("/recommendations", s.handleRecommendations)

	// /comparison/{owner}[...] → selection CRUD, summary, export
	mux.HandleFunc("/comparison/", s.handleComparison)

	// /users/{id}/summaries    → GET: persisted summary history
	// /summaries/{id}          → DELETE
	mux.HandleFunc("/users/", s.handleUserSummaries)
	mux.HandleFunc("/summaries/", s.handleSummaryByID)

	return chainMiddlewares(mux, withLogging, withCORS)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createSessionRequest struct {
	UserID string `json:"user_id"`
}

type sessionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type sendMessageRequest struct {
	Text            string         `json:"text"`
	DocumentContext map[string]any `json:"document_context,omitempty"`
}

type sendMessageResponse struct {
	UserMessage *domain.Message   `json:"user_message"`
	Replies     []*domain.Message `json:"replies"`
	Failed      bool              `json:"failed"`
}

type timelineResponse struct {
	Messages []domain.Message `json:"messages"`
	Memory   domain.Memory    `json:"memory"`
}

type recommendRequest struct {
	Query    string `json:"query"`
	Category string `json:"category,omitempty"`
	MaxPlans int    `json:"max_plans,omitempty"`
	SortBy   string `json:"sort_by,omitempty"`
}

type recommendResponse struct {
	Plans   []domain.Plan               `json:"plans"`
	Summary recommend.ComparisonSummary `json:"summary"`
}

// ─────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// Sessions
// ─────────────────────────────────────────────

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}

	out, err := s.assistant.StartSession(r.Context(), assistant.StartSessionInput{
		UserID: domain.UserID(req.UserID),
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:        string(out.Session.ID),
		UserID:    string(out.Session.UserID),
		CreatedAt: out.Session.CreatedAt,
	})
}

// /sessions/{id}[/...]
func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	id := domain.SessionID(parts[0])

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleGetSession(w, r, id)

	case len(parts) == 2 && parts[1] == "messages":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleSendMessage(w, r, id)

	case len(parts) == 2 && parts[1] == "documents":
		switch r.Method {
		case http.MethodPost:
			s.handleUploadDocument(w, r, id)
		case http.MethodGet:
			s.handleSessionDocuments(w, r, id)
		default:
			methodNotAllowed(w)
		}

	case len(parts) == 2 && parts[1] == "reset":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleResetChat(w, r, id)

	case len(parts) == 4 && parts[1] == "uploads" && parts[3] == "retry":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleRetryUpload(w, r, parts[2])

	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	msgs, err := s.assistant.Timeline(r.Context(), id)
	if err != nil {
		notFoundOrInternal(w, r, err)
		return
	}
	mem, err := s.assistant.MemoryView(r.Context(), id)
	if err != nil {
		notFoundOrInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timelineResponse{Messages: msgs, Memory: mem})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.assistant.SendMessage(r.Context(), assistant.SendMessageInput{
		SessionID:       id,
		Text:            req.Text,
		DocumentContext: req.DocumentContext,
	})
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		badRequest(w, "text is required")
		return
	case errors.Is(err, assistant.ErrReplyInFlight):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a reply is already in flight"})
		return
	case errors.Is(err, domain.ErrSessionNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sendMessageResponse{
		UserMessage: out.UserMessage,
		Replies:     out.Replies,
		Failed:      out.Failed,
	})
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequest(w, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		internalError(w, err)
		return
	}

	out, err := s.assistant.UploadDocument(r.Context(), assistant.UploadDocumentInput{
		SessionID: id,
		File: domain.DocumentUpload{
			FileName: header.Filename,
			Size:     header.Size,
			Content:  content,
		},
	})
	if err != nil {
		notFoundOrInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRetryUpload(w http.ResponseWriter, r *http.Request, uploadID string) {
	out, err := s.assistant.RetryUpload(r.Context(), uploadID)
	if err != nil {
		if errors.Is(err, assistant.ErrUnknownUpload) {
			http.NotFound(w, r)
			return
		}
		notFoundOrInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleResetChat(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	if err := s.assistant.ResetChat(r.Context(), id); err != nil {
		notFoundOrInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleSessionDocuments(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	docs, err := s.assistant.Documents(r.Context(), id)
	if err != nil {
		notFoundOrInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// ─────────────────────────────────────────────
// Plans & recommendations
// ─────────────────────────────────────────────

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	categoryParam := r.URL.Query().Get("category")
	var (
		plans []domain.Plan
		err   error
	)
	if categoryParam == "" {
		plans, err = s.catalog.AllPlans(r.Context())
	} else {
		category := domain.Category(strings.ToLower(categoryParam))
		if !category.Valid() {
			badRequest(w, "unknown category")
			return
		}
		plans, err = s.catalog.PlansByCategory(r.Context(), category)
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": plans})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		badRequest(w, "query is required")
		return
	}

	opts := recommend.DefaultOptions()
	if req.MaxPlans > 0 {
		opts.MaxPlans = req.MaxPlans
	}
	if req.SortBy != "" {
		opts.SortBy = recommend.SortBy(req.SortBy)
	}

	var candidates []domain.Plan
	var err error
	if req.Category != "" {
		category := domain.Category(strings.ToLower(req.Category))
		if !category.Valid() {
			badRequest(w, "unknown category")
			return
		}
		opts.Category = category
		candidates, err = s.catalog.PlansByCategory(r.Context(), category)
	} else {
		candidates, err = s.catalog.AllPlans(r.Context())
	}
	if err != nil {
		internalError(w, err)
		return
	}

	plans := recommend.RecommendPlans(candidates, req.Query, opts)
	writeJSON(w, http.StatusOK, recommendResponse{
		Plans:   plans,
		Summary: recommend.Summarize(plans),
	})
}

// ─────────────────────────────────────────────
// Summary history
// ─────────────────────────────────────────────

// /users/{id}/summaries
func (s *Server) handleUserSummaries(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/users/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "summaries" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	summaries := s.assistant.ListUserSummaries(r.Context(), domain.UserID(parts[0]), limit)
	if summaries == nil {
		summaries = []*domain.DocumentSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"summaries": summaries})
}

// /summaries/{id}
func (s *Server) handleSummaryByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/summaries/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}

	ok := s.assistant.DeleteUserSummary(r.Context(), domain.SummaryID(id))
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": ok})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}

func notFoundOrInternal(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.NotFound(w, r)
		return
	}
	internalError(w, err)
}
