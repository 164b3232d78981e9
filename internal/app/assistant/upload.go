package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/observability"
)

type UploadDocumentInput struct {
	SessionID domain.SessionID
	File      domain.DocumentUpload
}

type UploadDocumentOutput struct {
	// Message is the document message in its terminal state (ready or
	// error). The same message id was first appended as the loading
	// placeholder and then updated in place.
	Message *domain.Message
	Summary *domain.DocumentSummary
	// DocumentContext is the one-shot fragment a same-turn SendMessage can
	// carry under its DocumentContext field. Nil on failure.
	DocumentContext map[string]any
	Failed          bool
}

// UploadDocument appends a loading placeholder, analyzes the file, and
// updates that same placeholder in place to its terminal form. A failed
// upload keeps the placeholder (error state) and the original file so
// RetryUpload can run the same operation again.
func (s *Service) UploadDocument(ctx context.Context, in UploadDocumentInput) (*UploadDocumentOutput, error) {
	if in.File.FileName == "" || len(in.File.Content) == 0 {
		return nil, errors.New("upload requires a file name and content")
	}

	s.mu.Lock()
	sess, err := s.session(ctx, in.SessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	uploadID := s.newID()
	placeholder := domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: sess.ID,
		Role:      domain.RoleAssistant,
		Content:   fmt.Sprintf("Analizando %s…", in.File.FileName),
		Type:      domain.MessageTypeDocument,
		Metadata: domain.MessageMetadata{
			FileName:      in.File.FileName,
			FileSize:      in.File.Size,
			DocumentState: domain.DocumentStateLoading,
			UploadID:      uploadID,
		},
		CreatedAt: s.now(),
	}
	sess.Messages = append(sess.Messages, placeholder)
	s.pendingUploads[uploadID] = pendingUpload{
		sessionID: sess.ID,
		messageID: placeholder.ID,
		file:      in.File,
	}
	s.persist(ctx, sess)
	s.mu.Unlock()

	return s.runUpload(ctx, uploadID)
}

// RetryUpload re-runs a failed upload with the same file, updating the same
// placeholder message.
func (s *Service) RetryUpload(ctx context.Context, uploadID string) (*UploadDocumentOutput, error) {
	s.mu.Lock()
	pending, ok := s.pendingUploads[uploadID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrUnknownUpload
	}
	sess, err := s.session(ctx, pending.sessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if msg := sess.messageByID(pending.messageID); msg != nil {
		msg.Content = fmt.Sprintf("Analizando %s…", pending.file.FileName)
		msg.Metadata.DocumentState = domain.DocumentStateLoading
		msg.Metadata.IsError = false
		msg.Metadata.ErrorText = ""
	}
	s.persist(ctx, sess)
	s.mu.Unlock()

	return s.runUpload(ctx, uploadID)
}

// runUpload performs the analyzer call (the upload suspension point) and
// folds the outcome into the placeholder message.
func (s *Service) runUpload(ctx context.Context, uploadID string) (*UploadDocumentOutput, error) {
	s.mu.Lock()
	pending := s.pendingUploads[uploadID]
	s.mu.Unlock()

	log := observability.LoggerFromContext(ctx).With(
		"session_id", pending.sessionID,
		"file_name", pending.file.FileName,
	)
	log.Info("analyzing document")

	summary, anErr := s.analyzer.AnalyzeDocument(ctx, pending.file)
	if anErr == nil && summary == nil {
		anErr = errors.New("analyzer returned no summary")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, pending.sessionID)
	if err != nil {
		return nil, err
	}
	msg := sess.messageByID(pending.messageID)
	if msg == nil {
		// The session was reset mid-upload; nothing to fold the result into.
		delete(s.pendingUploads, uploadID)
		return nil, domain.ErrSessionNotFound
	}

	if anErr != nil {
		log.Error("document analysis failed", "error", anErr)
		msg.Content = fmt.Sprintf("No pude analizar %s. Intenta de nuevo.", pending.file.FileName)
		msg.Metadata.DocumentState = domain.DocumentStateError
		msg.Metadata.IsError = true
		msg.Metadata.ErrorText = anErr.Error()
		sess.UpdatedAt = s.now()
		s.persist(ctx, sess)

		return &UploadDocumentOutput{Message: sess.messageByID(msg.ID), Failed: true}, nil
	}

	docType := ClassifyDocument(summary.Summary)
	bullets := ExtractCoverageBullets(summary.Summary)

	record := *summary
	record.UserID = sess.UserID
	record.DocumentType = docType
	record.CreatedAt = s.now()
	if record.ID == "" {
		record.ID = domain.SummaryID(uploadID)
	}

	msg.Content = ComposeDocumentReply(record.FileName, docType, bullets)
	msg.Metadata.DocumentState = domain.DocumentStateReady
	msg.Metadata.DocumentType = docType
	msg.Metadata.FileName = record.FileName
	msg.Metadata.FileSize = record.FileSize

	sess.DocumentHistory = append(sess.DocumentHistory, record)

	docEntry := map[string]any{
		"fileName": record.FileName,
		"type":     docType,
		"summary":  record.Summary,
	}
	sess.Memory = sess.Memory.Merge(domain.Memory{"lastUploadedDocument": docEntry})
	sess.UpdatedAt = s.now()

	delete(s.pendingUploads, uploadID)
	s.persist(ctx, sess)
	s.saveSummary(ctx, &record)

	log.Info("document analyzed", "document_type", docType, "bullets", len(bullets))

	return &UploadDocumentOutput{
		Message:         sess.messageByID(msg.ID),
		Summary:         &record,
		DocumentContext: docEntry,
	}, nil
}

// saveSummary persists the summary for the history panel, fire-and-forget.
func (s *Service) saveSummary(ctx context.Context, summary *domain.DocumentSummary) {
	if s.summaries == nil {
		return
	}
	if err := s.summaries.SaveSummary(ctx, summary); err != nil {
		observability.LoggerFromContext(ctx).Warn("summary persist failed",
			"file_name", summary.FileName, "error", err)
	}
}
