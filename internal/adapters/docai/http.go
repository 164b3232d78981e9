// Package docai adapts the external document-summarization endpoint to the
// domain.DocumentAnalyzer port.
package docai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

type HTTPAnalyzer struct {
	endpoint string
	client   *http.Client
}

func NewHTTPAnalyzer(endpoint string) (*HTTPAnalyzer, error) {
	if endpoint == "" {
		return nil, errors.New("docai endpoint is required")
	}
	return &HTTPAnalyzer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// summaryPayload is the endpoint's response shape. Summary and fileName are
// required even on HTTP 200; their absence is a hard error.
type summaryPayload struct {
	Summary   string `json:"summary"`
	FileName  string `json:"fileName"`
	FileSize  int64  `json:"fileSize"`
	SummaryID string `json:"summaryId"`
}

func (a *HTTPAnalyzer) AnalyzeDocument(ctx context.Context, upload domain.DocumentUpload) (*domain.DocumentSummary, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", upload.FileName)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(upload.Content); err != nil {
		return nil, fmt.Errorf("write file part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("document analyze call: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("document analyze status %d: %s", res.StatusCode, raw)
	}

	var payload summaryPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}
	if payload.Summary == "" || payload.FileName == "" {
		return nil, errors.New("analyze response missing summary or fileName")
	}

	size := payload.FileSize
	if size == 0 {
		size = upload.Size
	}

	return &domain.DocumentSummary{
		ID:       domain.SummaryID(payload.SummaryID),
		FileName: payload.FileName,
		FileSize: size,
		Summary:  payload.Summary,
	}, nil
}
