package assistant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/adapters/storage/memory"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/assistant"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// scriptedGenerator pops one canned result (or error) per call and records
// every request it saw.
type scriptedGenerator struct {
	results  []*domain.ReplyResult
	errs     []error
	requests []domain.ReplyRequest
}

func (g *scriptedGenerator) GenerateReply(_ context.Context, req domain.ReplyRequest) (*domain.ReplyResult, error) {
	g.requests = append(g.requests, req)
	i := len(g.requests) - 1
	if i < len(g.errs) && g.errs[i] != nil {
		return nil, g.errs[i]
	}
	if i < len(g.results) {
		return g.results[i], nil
	}
	return &domain.ReplyResult{Message: "ok"}, nil
}

type scriptedAnalyzer struct {
	summary *domain.DocumentSummary
	err     error
	calls   int
}

func (a *scriptedAnalyzer) AnalyzeDocument(_ context.Context, _ domain.DocumentUpload) (*domain.DocumentSummary, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return a.summary, nil
}

func newTestService(gen domain.ReplyGenerator, an domain.DocumentAnalyzer) (*assistant.Service, domain.SessionID) {
	svc := assistant.NewService(gen, an, memory.NewSessionStore(), memory.NewSummaryStore())
	out, err := svc.StartSession(context.Background(), assistant.StartSessionInput{UserID: "test-user"})
	if err != nil {
		panic(err)
	}
	return svc, out.Session.ID
}

func planNamed(id string) domain.Plan {
	return domain.Plan{ID: domain.PlanID(id), Name: "Plan " + id, Provider: "P-" + id, Category: domain.CategoryTravel}
}

func TestPlanDedupAcrossTurns(t *testing.T) {
	ctx := context.Background()
	gen := &scriptedGenerator{results: []*domain.ReplyResult{
		{Message: "aquí tienes", SuggestedPlans: []domain.Plan{planNamed("a"), planNamed("b")}},
		{Message: "otra vez", SuggestedPlans: []domain.Plan{planNamed("a"), planNamed("c")}},
		{Message: "nada nuevo", SuggestedPlans: []domain.Plan{planNamed("b"), planNamed("c")}},
	}}
	svc, sid := newTestService(gen, nil)

	for _, text := range []string{"uno", "dos", "tres"} {
		if _, err := svc.SendMessage(ctx, assistant.SendMessageInput{SessionID: sid, Text: text}); err != nil {
			t.Fatalf("SendMessage(%q): %v", text, err)
		}
	}

	msgs, err := svc.Timeline(ctx, sid)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[domain.PlanID]int)
	plansMessages := 0
	for _, m := range msgs {
		if m.Type != domain.MessageTypePlans {
			continue
		}
		plansMessages++
		for _, p := range m.Plans {
			seen[p.ID]++
		}
	}

	for id, n := range seen {
		if n != 1 {
			t.Errorf("plan %s surfaced %d times; dedup must keep it to one", id, n)
		}
	}
	// Third turn had nothing new, so only two plans messages exist.
	if plansMessages != 2 {
		t.Errorf("expected 2 plans messages, got %d", plansMessages)
	}
	if len(seen) != 3 {
		t.Errorf("expected plans a, b, c shown once each, got %v", seen)
	}
}

func TestResetCompleteness(t *testing.T) {
	ctx := context.Background()
	gen := &scriptedGenerator{results: []*domain.ReplyResult{
		{Message: "hola", Memory: domain.Memory{"pet": map[string]any{"name": "Luna"}}},
		{Message: "después del reset"},
		{Message: "segundo envío"},
	}}
	svc, sid := newTestService(gen, nil)

	if _, err := svc.SendMessage(ctx, assistant.SendMessageInput{SessionID: sid, Text: "tengo una gata"}); err != nil {
		t.Fatal(err)
	}

	if err := svc.ResetChat(ctx, sid); err != nil {
		t.Fatal(err)
	}

	msgs, _ := svc.Timeline(ctx, sid)
	if len(msgs) != 0 {
		t.Fatalf("messages after reset = %d, want 0", len(msgs))
	}
	mem, _ := svc.MemoryView(ctx, sid)
	if len(mem) != 0 {
		t.Fatalf("memory after reset = %v, want empty", mem)
	}
	docs, _ := svc.Documents(ctx, sid)
	if len(docs) != 0 {
		t.Fatalf("document history after reset = %d, want 0", len(docs))
	}

	// The next send carries resetContext exactly once.
	if _, err := svc.SendMessage(ctx, assistant.SendMessageInput{SessionID: sid, Text: "hola de nuevo"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SendMessage(ctx, assistant.SendMessageInput{SessionID: sid, Text: "y otra"}); err != nil {
		t.Fatal(err)
	}

	if !gen.requests[1].ResetContext {
		t.Errorf("first send after reset must carry resetContext")
	}
	if gen.requests[2].ResetContext {
		t.Errorf("resetContext is one-shot; second send must not carry it")
	}
}

func TestGeneratorFailureBecomesErrorMessage(t *testing.T) {
	ctx := context.Background()
	gen := &scriptedGenerator{errs: []error{errors.New("upstream 503")}}
	svc, sid := newTestService(gen, nil)

	out, err := svc.SendMessage(ctx, assistant.SendMessageInput{SessionID: sid, Text: "hola"})
	if err != nil {
		t.Fatalf("a generator failure must not escape as an error: %v", err)
	}
	if !out.Failed || len(out.Replies) != 1 {
		t.Fatalf("expected a single error reply, got %+v", out)
	}
	reply := out.Replies[0]
	if reply.Role != domain.RoleAssistant || !reply.Metadata.IsError {
		t.Errorf("error reply should be an assistant message flagged as error")
	}
	if reply.Metadata.ErrorText != "upstream 503" {
		t.Errorf("error reply must carry the raw error, got %q", reply.Metadata.ErrorText)
	}

	// The session is back to Idle: the next send goes through.
	if _, err := svc.SendMessage(ctx, assistant.SendMessageInput{SessionID: sid, Text: "retry"}); err != nil {
		t.Fatalf("session should accept a new send after a failure: %v", err)
	}
}

func TestMemoryReplacedWholesale(t *testing.T) {
	ctx := context.Background()
	gen := &scriptedGenerator{results: []*domain.ReplyResult{
		{Message: "uno", Memory: domain.Memory{"pet": map[string]any{"name": "Luna"}, "lastViewedCategory": "pet"}},
		{Message: "dos", Memory: domain.Memory{"travel": map[string]any{"destination": "Madrid"}}},
		{Message: "tres"}, // nil memory = unchanged
	}}
	svc, sid := newTestService(gen, nil)

	for _, text := range []string{"a", "b", "c"} {
		if _, err := svc.SendMessage(ctx, assistant.SendMessageInput{SessionID: sid, Text: text}); err != nil {
			t.Fatal(err)
		}
	}

	mem, _ := svc.MemoryView(ctx, sid)
	if _, ok := mem["travel"]; !ok {
		t.Errorf("memory should hold the generator's latest version")
	}
	if _, ok := mem["pet"]; ok {
		t.Errorf("memory is replaced wholesale, not merged: pet should be gone")
	}
	// Turn three returned nil memory; turn two's version must survive.
	if len(gen.requests) != 3 || gen.requests[2].Memory["travel"] == nil {
		t.Errorf("unchanged memory must keep flowing to the generator")
	}
}

func TestDocumentContextIsOneShot(t *testing.T) {
	ctx := context.Background()
	gen := &scriptedGenerator{}
	svc, sid := newTestService(gen, nil)

	docCtx := map[string]any{"fileName": "poliza.pdf", "type": "auto"}
	if _, err := svc.SendMessage(ctx, assistant.SendMessageInput{SessionID: sid, Text: "qué cubre?", DocumentContext: docCtx}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SendMessage(ctx, assistant.SendMessageInput{SessionID: sid, Text: "gracias"}); err != nil {
		t.Fatal(err)
	}

	if gen.requests[0].Memory["recentDocument"] == nil {
		t.Errorf("first request must carry the document context under recentDocument")
	}
	if gen.requests[1].Memory["recentDocument"] != nil {
		t.Errorf("document context is one-shot; second request must not carry it")
	}
}

// reentrantGenerator fires a second SendMessage while the first is still in
// flight, from inside the generator call.
type reentrantGenerator struct {
	send func() error
	got  error
}

func (g *reentrantGenerator) GenerateReply(_ context.Context, _ domain.ReplyRequest) (*domain.ReplyResult, error) {
	if g.send != nil {
		g.got = g.send()
		g.send = nil
	}
	return &domain.ReplyResult{Message: "ok"}, nil
}

func TestSecondSendWhileInFlightRefused(t *testing.T) {
	ctx := context.Background()
	gen := &reentrantGenerator{}
	svc, sid := newTestService(gen, nil)

	gen.send = func() error {
		_, err := svc.SendMessage(ctx, assistant.SendMessageInput{SessionID: sid, Text: "colada"})
		return err
	}

	if _, err := svc.SendMessage(ctx, assistant.SendMessageInput{SessionID: sid, Text: "primera"}); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(gen.got, assistant.ErrReplyInFlight) {
		t.Fatalf("overlapping send should be refused with ErrReplyInFlight, got %v", gen.got)
	}
}

func TestEmptyMessageRejected(t *testing.T) {
	svc, sid := newTestService(&scriptedGenerator{}, nil)
	_, err := svc.SendMessage(context.Background(), assistant.SendMessageInput{SessionID: sid, Text: "   "})
	if !errors.Is(err, assistant.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestUploadSuccessUpdatesPlaceholderInPlace(t *testing.T) {
	ctx := context.Background()
	an := &scriptedAnalyzer{summary: &domain.DocumentSummary{
		FileName: "soat.pdf",
		FileSize: 2048,
		Summary:  "Póliza para tu vehículo.\nCoberturas principales:\n- Responsabilidad civil\n- Asistencia en carretera",
	}}
	svc, sid := newTestService(&scriptedGenerator{}, an)

	out, err := svc.UploadDocument(ctx, assistant.UploadDocumentInput{
		SessionID: sid,
		File:      domain.DocumentUpload{FileName: "soat.pdf", Size: 2048, Content: []byte("%PDF")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Failed {
		t.Fatalf("upload should succeed: %+v", out.Message)
	}
	if out.Message.Metadata.DocumentType != assistant.DocTypeAuto {
		t.Errorf("document type = %q, want auto", out.Message.Metadata.DocumentType)
	}

	msgs, _ := svc.Timeline(ctx, sid)
	docMsgs := 0
	for _, m := range msgs {
		if m.Type == domain.MessageTypeDocument {
			docMsgs++
			if m.ID != out.Message.ID {
				t.Errorf("terminal document message must reuse the placeholder id")
			}
			if m.Metadata.DocumentState != domain.DocumentStateReady {
				t.Errorf("document state = %q, want ready", m.Metadata.DocumentState)
			}
		}
	}
	if docMsgs != 1 {
		t.Fatalf("one upload must produce exactly one document message, got %d", docMsgs)
	}

	docs, _ := svc.Documents(ctx, sid)
	if len(docs) != 1 || docs[0].FileName != "soat.pdf" {
		t.Fatalf("document history = %+v", docs)
	}

	mem, _ := svc.MemoryView(ctx, sid)
	if mem["lastUploadedDocument"] == nil {
		t.Errorf("memory should record lastUploadedDocument")
	}
	if out.DocumentContext == nil {
		t.Errorf("successful upload should hand back a one-shot document context")
	}
}

func TestUploadFailureIsRetryable(t *testing.T) {
	ctx := context.Background()
	an := &scriptedAnalyzer{err: errors.New("endpoint unreachable")}
	svc, sid := newTestService(&scriptedGenerator{}, an)

	out, err := svc.UploadDocument(ctx, assistant.UploadDocumentInput{
		SessionID: sid,
		File:      domain.DocumentUpload{FileName: "poliza.pdf", Size: 10, Content: []byte("%PDF")},
	})
	if err != nil {
		t.Fatalf("analyzer failure must not escape as an error: %v", err)
	}
	if !out.Failed || out.Message.Metadata.DocumentState != domain.DocumentStateError {
		t.Fatalf("expected an error-state document message, got %+v", out.Message)
	}
	uploadID := out.Message.Metadata.UploadID
	if uploadID == "" {
		t.Fatalf("error message must keep the upload id for retry")
	}

	// Retry re-runs the same operation with the same file and placeholder.
	an.err = nil
	an.summary = &domain.DocumentSummary{FileName: "poliza.pdf", FileSize: 10, Summary: "Seguro de viaje internacional"}

	retry, err := svc.RetryUpload(ctx, uploadID)
	if err != nil {
		t.Fatal(err)
	}
	if retry.Failed {
		t.Fatalf("retry should succeed")
	}
	if retry.Message.ID != out.Message.ID {
		t.Errorf("retry must update the same placeholder message")
	}
	if an.calls != 2 {
		t.Errorf("analyzer calls = %d, want 2", an.calls)
	}
}
