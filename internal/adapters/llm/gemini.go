package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a ReplyGenerator backed by Vertex AI (Gemini).
func NewGeminiClient(ctx context.Context, projectID, location, modelName string) (*GeminiClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("projectID and location must be set")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// GenerateReply implements domain.ReplyGenerator using Vertex AI.
func (g *GeminiClient) GenerateReply(ctx context.Context, req domain.ReplyRequest) (*domain.ReplyResult, error) {
	system := BuildSystemPrompt(req.ResetContext)

	var contents []*genai.Content
	for _, turn := range req.History {
		var role genai.Role
		switch turn.Role {
		case domain.RoleAssistant:
			role = genai.RoleModel
		default:
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}

	// The memory travels as a final user-side context block so the model can
	// extend it in its answer.
	if len(req.Memory) > 0 {
		if memJSON, err := json.Marshal(req.Memory); err == nil {
			contents = append(contents, genai.NewContentFromText(
				"Memoria actual del usuario:\n"+string(memJSON), genai.RoleUser))
		}
	}

	contents = append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))

	temp := float32(0.7)
	topP := float32(0.9)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   outputTokens,
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("vertex returned empty text")
	}

	parsed, err := parseReplyEnvelope(text)
	if err != nil {
		return nil, fmt.Errorf("invalid reply payload: %w", err)
	}
	return parsed, nil
}
