package domain

// DocumentUpload is the raw file handed to the analyzer.
type DocumentUpload struct {
	FileName string
	Size     int64
	Content  []byte
}

// DocumentSummary is the analyzer's result for one uploaded document.
// Summary and FileName are required; an analyzer response without them is a
// hard error at the adapter boundary.
type DocumentSummary struct {
	ID       SummaryID `json:"id,omitempty"`
	UserID   UserID    `json:"userId,omitempty"`
	FileName string    `json:"fileName"`
	FileSize int64     `json:"fileSize"`
	Summary  string    `json:"summary"`
	// DocumentType is filled by the session's classifier, not the analyzer.
	DocumentType string    `json:"documentType,omitempty"`
	CreatedAt    Timestamp `json:"createdAt"`
}
