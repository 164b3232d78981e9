package domain

type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypePlans    MessageType = "plans"
	MessageTypeDocument MessageType = "document"
)

// DocumentState is the display state of a document message.
type DocumentState string

const (
	DocumentStateLoading DocumentState = "loading"
	DocumentStateReady   DocumentState = "ready"
	DocumentStateError   DocumentState = "error"
)

// MessageMetadata carries the free-form extras a message may need for
// rendering: document card fields, error flags, follow-up suggestions.
type MessageMetadata struct {
	FileName           string        `json:"fileName,omitempty"`
	FileSize           int64         `json:"fileSize,omitempty"`
	DocumentType       string        `json:"documentType,omitempty"`
	DocumentState      DocumentState `json:"documentState,omitempty"`
	UploadID           string        `json:"uploadId,omitempty"`
	IsError            bool          `json:"isError,omitempty"`
	ErrorText          string        `json:"errorText,omitempty"`
	SuggestedFollowUps []string      `json:"suggestedFollowUps,omitempty"`
}

// Message is one conversational turn artifact. Messages are append-only; the
// single exception is the active upload placeholder, which is updated in place
// (same ID) to its terminal form.
type Message struct {
	ID        MessageID       `json:"id"`
	SessionID SessionID       `json:"sessionId"`
	Role      Role            `json:"role"`
	Content   string          `json:"content"`
	Type      MessageType     `json:"type"`
	Plans     []Plan          `json:"plans,omitempty"`
	Metadata  MessageMetadata `json:"metadata,omitempty"`
	CreatedAt Timestamp       `json:"createdAt"`
}

// ChatTurn is the minimal {role, content} pair sent to the reply generator.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
