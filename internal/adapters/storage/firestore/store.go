// Package firestore persists document summaries for the history panel.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store for the given project.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) summariesCol() *firestore.CollectionRef {
	return s.client.Collection("document_summaries")
}

func (s *Store) summaryDoc(id domain.SummaryID) *firestore.DocumentRef {
	return s.summariesCol().Doc(string(id))
}

type summaryDoc struct {
	UserID       string    `firestore:"user_id"`
	FileName     string    `firestore:"file_name"`
	FileSize     int64     `firestore:"file_size"`
	Summary      string    `firestore:"summary"`
	DocumentType string    `firestore:"document_type"`
	CreatedAt    time.Time `firestore:"created_at"`
}

// ─────────────────────────────────────────
// SummaryStore implementation
// ─────────────────────────────────────────

func (s *Store) SaveSummary(ctx context.Context, summary *domain.DocumentSummary) error {
	doc := summaryDoc{
		UserID:       string(summary.UserID),
		FileName:     summary.FileName,
		FileSize:     summary.FileSize,
		Summary:      summary.Summary,
		DocumentType: summary.DocumentType,
		CreatedAt:    summary.CreatedAt,
	}

	_, err := s.summaryDoc(summary.ID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore SaveSummary: %w", err)
	}
	return nil
}

func (s *Store) ListSummariesByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.DocumentSummary, error) {
	q := s.summariesCol().
		Where("user_id", "==", string(userID)).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.DocumentSummary
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListSummariesByUser: %w", err)
		}

		var doc summaryDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode summaryDoc: %w", err)
		}

		out = append(out, &domain.DocumentSummary{
			ID:           domain.SummaryID(snap.Ref.ID),
			UserID:       domain.UserID(doc.UserID),
			FileName:     doc.FileName,
			FileSize:     doc.FileSize,
			Summary:      doc.Summary,
			DocumentType: doc.DocumentType,
			CreatedAt:    doc.CreatedAt,
		})
	}
	return out, nil
}

func (s *Store) DeleteSummary(ctx context.Context, id domain.SummaryID) error {
	_, err := s.summaryDoc(id).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrSummaryNotFound
		}
		return fmt.Errorf("firestore DeleteSummary: %w", err)
	}
	return nil
}
