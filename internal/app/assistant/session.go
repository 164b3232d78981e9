package assistant

import (
	"time"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// Session is one chat's live state: the message timeline, the accumulated
// memory, the shown-plan dedup set and the document history. It is owned by
// the Service and only ever mutated under its lock.
type Session struct {
	ID     domain.SessionID
	UserID domain.UserID

	Messages        []domain.Message
	Memory          domain.Memory
	DocumentHistory []domain.DocumentSummary

	// shownPlanIDs suppresses re-recommending a plan within one session.
	shownPlanIDs map[domain.PlanID]bool

	// pendingReset is the one-shot resetContext token: armed by ResetChat,
	// consumed by exactly one SendMessage.
	pendingReset bool

	// sending guards re-entrancy: at most one reply is in flight per session.
	sending bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSession(id domain.SessionID, userID domain.UserID, now time.Time) *Session {
	return &Session{
		ID:           id,
		UserID:       userID,
		Memory:       domain.Memory{},
		shownPlanIDs: make(map[domain.PlanID]bool),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// history maps the timeline to the {role, content} pairs the reply generator
// expects. Plan and placeholder messages carry no prose and are skipped.
func (s *Session) history() []domain.ChatTurn {
	out := make([]domain.ChatTurn, 0, len(s.Messages))
	for _, m := range s.Messages {
		if m.Content == "" {
			continue
		}
		out = append(out, domain.ChatTurn{Role: m.Role, Content: m.Content})
	}
	return out
}

// markShown records plan ids as surfaced and returns only the plans that were
// not already shown, preserving order.
func (s *Session) markShown(plans []domain.Plan) []domain.Plan {
	var fresh []domain.Plan
	for _, p := range plans {
		if s.shownPlanIDs[p.ID] {
			continue
		}
		s.shownPlanIDs[p.ID] = true
		fresh = append(fresh, p)
	}
	return fresh
}

// messageByID finds a message for in-place update; only the active upload
// placeholder is ever updated this way.
func (s *Session) messageByID(id domain.MessageID) *domain.Message {
	for i := range s.Messages {
		if s.Messages[i].ID == id {
			return &s.Messages[i]
		}
	}
	return nil
}

// reset clears everything and arms the one-shot reset token. Safe to call
// repeatedly.
func (s *Session) reset(now time.Time) {
	s.Messages = nil
	s.Memory = domain.Memory{}
	s.DocumentHistory = nil
	s.shownPlanIDs = make(map[domain.PlanID]bool)
	s.pendingReset = true
	s.UpdatedAt = now
}

// snapshot converts the session to its persisted form.
func (s *Session) snapshot() *domain.SessionSnapshot {
	shown := make([]domain.PlanID, 0, len(s.shownPlanIDs))
	for id := range s.shownPlanIDs {
		shown = append(shown, id)
	}
	return &domain.SessionSnapshot{
		ID:              s.ID,
		UserID:          s.UserID,
		Messages:        s.Messages,
		Memory:          s.Memory,
		ShownPlanIDs:    shown,
		DocumentHistory: s.DocumentHistory,
		PendingReset:    s.pendingReset,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func sessionFromSnapshot(snap *domain.SessionSnapshot) *Session {
	s := &Session{
		ID:              snap.ID,
		UserID:          snap.UserID,
		Messages:        snap.Messages,
		Memory:          snap.Memory,
		DocumentHistory: snap.DocumentHistory,
		shownPlanIDs:    make(map[domain.PlanID]bool, len(snap.ShownPlanIDs)),
		pendingReset:    snap.PendingReset,
		CreatedAt:       snap.CreatedAt,
		UpdatedAt:       snap.UpdatedAt,
	}
	if s.Memory == nil {
		s.Memory = domain.Memory{}
	}
	for _, id := range snap.ShownPlanIDs {
		s.shownPlanIDs[id] = true
	}
	return s
}
