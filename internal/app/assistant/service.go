// Package assistant drives one chat's lifecycle: user input in, reply
// generation through the external generator, results folded into the message
// timeline and memory.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/observability"
)

var (
	ErrEmptyMessage  = errors.New("message text is empty")
	ErrReplyInFlight = errors.New("a reply is already in flight for this session")
	ErrUnknownUpload = errors.New("unknown upload id")
)

const errorReplyPrefix = "Lo siento, ocurrió un error al procesar tu mensaje. "

// Service orchestrates conversation sessions. Live sessions are
// authoritative; the snapshot store is a durability side effect and its
// failures never block or revert an in-memory change.
type Service struct {
	replies   domain.ReplyGenerator
	analyzer  domain.DocumentAnalyzer
	snapshots domain.SessionStore
	summaries domain.SummaryStore

	now   func() time.Time
	newID func() string

	mu             sync.Mutex
	live           map[domain.SessionID]*Session
	pendingUploads map[string]pendingUpload
}

// pendingUpload keeps the original file and its placeholder message so a
// failed upload can be retried as the same operation.
type pendingUpload struct {
	sessionID domain.SessionID
	messageID domain.MessageID
	file      domain.DocumentUpload
}

func NewService(
	replies domain.ReplyGenerator,
	analyzer domain.DocumentAnalyzer,
	snapshots domain.SessionStore,
	summaries domain.SummaryStore,
) *Service {
	return &Service{
		replies:        replies,
		analyzer:       analyzer,
		snapshots:      snapshots,
		summaries:      summaries,
		now:            time.Now,
		newID:          uuid.NewString,
		live:           make(map[domain.SessionID]*Session),
		pendingUploads: make(map[string]pendingUpload),
	}
}

// ─────────────────────────────────────────────
// Session lifecycle
// ─────────────────────────────────────────────

type StartSessionInput struct {
	UserID domain.UserID
}

type StartSessionOutput struct {
	Session *Session
}

func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := newSession(domain.SessionID(s.newID()), in.UserID, now)

	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)
	log.Info("starting new session", "session_id", sess.ID)

	s.live[sess.ID] = sess
	s.persist(ctx, sess)

	return &StartSessionOutput{Session: sess}, nil
}

// session returns the live session, falling back to the persisted snapshot.
// Callers must hold s.mu.
func (s *Service) session(ctx context.Context, id domain.SessionID) (*Session, error) {
	if sess, ok := s.live[id]; ok {
		return sess, nil
	}
	if s.snapshots != nil {
		snap, err := s.snapshots.LoadSession(ctx, id)
		if err == nil && snap != nil {
			sess := sessionFromSnapshot(snap)
			s.live[id] = sess
			return sess, nil
		}
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			observability.LoggerFromContext(ctx).Warn("session snapshot load failed",
				"session_id", id, "error", err)
		}
	}
	return nil, domain.ErrSessionNotFound
}

// persist snapshots a session, fire-and-forget. Callers must hold s.mu.
func (s *Service) persist(ctx context.Context, sess *Session) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveSession(ctx, sess.snapshot()); err != nil {
		observability.LoggerFromContext(ctx).Error("session persist failed",
			"session_id", sess.ID, "error", err)
	}
}

// ─────────────────────────────────────────────
// Send message
// ─────────────────────────────────────────────

type SendMessageInput struct {
	SessionID domain.SessionID
	Text      string

	// DocumentContext is a one-shot fragment (from a same-turn upload) merged
	// into the outgoing request's memory under "recentDocument". It is not
	// folded into the session's own memory.
	DocumentContext map[string]any
}

type SendMessageOutput struct {
	UserMessage *domain.Message
	// Replies holds the assistant messages appended this turn: the text
	// reply, optionally followed by a plans message. On generator failure it
	// holds the single error message instead.
	Replies []*domain.Message
	Failed  bool
}

func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	if strings.TrimSpace(in.Text) == "" && in.DocumentContext == nil {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	sess, err := s.session(ctx, in.SessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if sess.sending {
		s.mu.Unlock()
		return nil, ErrReplyInFlight
	}
	sess.sending = true

	log := observability.LoggerFromContext(ctx).With(
		"session_id", sess.ID,
		"user_id", sess.UserID,
	)
	log.Info("sending message")

	// History is the timeline before this turn's user message.
	history := sess.history()

	now := s.now()
	userMsg := domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: sess.ID,
		Role:      domain.RoleUser,
		Content:   in.Text,
		Type:      domain.MessageTypeText,
		CreatedAt: now,
	}
	sess.Messages = append(sess.Messages, userMsg)

	reqMemory := sess.Memory.Clone()
	if in.DocumentContext != nil {
		reqMemory["recentDocument"] = in.DocumentContext
	}

	// Consume the one-shot reset token before the call, so it is spent even
	// if the generator fails.
	resetContext := sess.pendingReset
	sess.pendingReset = false

	req := domain.ReplyRequest{
		Message:      in.Text,
		History:      history,
		Memory:       reqMemory,
		ResetContext: resetContext,
	}

	s.persist(ctx, sess)
	s.mu.Unlock()

	// The generator call is one of the two asynchronous suspension points; it
	// runs outside the lock so other sessions keep moving.
	res, genErr := s.replies.GenerateReply(ctx, req)
	if genErr == nil && res == nil {
		genErr = errors.New("reply generator returned no payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { sess.sending = false }()

	out := &SendMessageOutput{UserMessage: sess.messageByID(userMsg.ID)}

	if genErr != nil {
		log.Error("reply generation failed", "error", genErr)
		errMsg := domain.Message{
			ID:        domain.MessageID(s.newID()),
			SessionID: sess.ID,
			Role:      domain.RoleAssistant,
			Content:   errorReplyPrefix + genErr.Error(),
			Type:      domain.MessageTypeText,
			Metadata:  domain.MessageMetadata{IsError: true, ErrorText: genErr.Error()},
			CreatedAt: s.now(),
		}
		sess.Messages = append(sess.Messages, errMsg)
		sess.UpdatedAt = s.now()
		s.persist(ctx, sess)

		out.Replies = []*domain.Message{sess.messageByID(errMsg.ID)}
		out.Failed = true
		return out, nil
	}

	if res.Memory != nil {
		sess.Memory = res.Memory.Clone()
	}

	textMsg := domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: sess.ID,
		Role:      domain.RoleAssistant,
		Content:   res.Message,
		Type:      domain.MessageTypeText,
		CreatedAt: s.now(),
	}
	sess.Messages = append(sess.Messages, textMsg)
	replies := []domain.MessageID{textMsg.ID}

	fresh := sess.markShown(domain.NormalizePlans(res.SuggestedPlans))
	if len(fresh) > 0 {
		plansMsg := domain.Message{
			ID:        domain.MessageID(s.newID()),
			SessionID: sess.ID,
			Role:      domain.RoleAssistant,
			Type:      domain.MessageTypePlans,
			Plans:     fresh,
			CreatedAt: s.now(),
		}
		sess.Messages = append(sess.Messages, plansMsg)
		replies = append(replies, plansMsg.ID)
	}

	sess.UpdatedAt = s.now()
	s.persist(ctx, sess)

	for _, id := range replies {
		out.Replies = append(out.Replies, sess.messageByID(id))
	}
	log.Info("send message completed", "reply_count", len(out.Replies), "new_plans", len(fresh))
	return out, nil
}

// ─────────────────────────────────────────────
// Reset
// ─────────────────────────────────────────────

// ResetChat clears the session and arms the one-shot resetContext token
// consumed by the next SendMessage. Idempotent.
func (s *Service) ResetChat(ctx context.Context, id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, id)
	if err != nil {
		return err
	}

	sess.reset(s.now())
	s.persist(ctx, sess)

	observability.LoggerFromContext(ctx).Info("chat reset", "session_id", id)
	return nil
}

// ─────────────────────────────────────────────
// Read accessors
// ─────────────────────────────────────────────

// Timeline returns the session's messages in order.
func (s *Service) Timeline(ctx context.Context, id domain.SessionID) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Message, len(sess.Messages))
	copy(out, sess.Messages)
	return out, nil
}

// MemoryView returns a copy of the session's memory.
func (s *Service) MemoryView(ctx context.Context, id domain.SessionID) (domain.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.Memory.Clone(), nil
}

// Documents returns the session's document history in upload order.
func (s *Service) Documents(ctx context.Context, id domain.SessionID) ([]domain.DocumentSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DocumentSummary, len(sess.DocumentHistory))
	copy(out, sess.DocumentHistory)
	return out, nil
}

// ListUserSummaries fetches the persisted summaries feeding the history
// panel. The panel is non-critical: failures degrade to an empty list.
func (s *Service) ListUserSummaries(ctx context.Context, userID domain.UserID, limit int) []*domain.DocumentSummary {
	if s.summaries == nil {
		return nil
	}
	out, err := s.summaries.ListSummariesByUser(ctx, userID, limit)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("summary list failed", "user_id", userID, "error", err)
		return nil
	}
	return out
}

// DeleteUserSummary removes a persisted summary; false on any failure.
func (s *Service) DeleteUserSummary(ctx context.Context, id domain.SummaryID) bool {
	if s.summaries == nil {
		return false
	}
	if err := s.summaries.DeleteSummary(ctx, id); err != nil {
		observability.LoggerFromContext(ctx).Warn("summary delete failed", "summary_id", id, "error", err)
		return false
	}
	return true
}
