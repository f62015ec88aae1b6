package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrAIUnavailable signals that no API key is configured. The caller
// treats this like any other completion failure and falls back.
var ErrAIUnavailable = errors.New("ai service not configured")

const completionTimeout = 2 * time.Minute

// AIService wraps a Groq chat-completion client behind the narrow
// Complete interface the generation pipeline consumes.
type AIService struct {
	client *openai.Client
	model  string
}

// NewAIService builds a client against the OpenAI-compatible Groq
// endpoint. An empty key yields a service whose calls always fail with
// ErrAIUnavailable rather than a nil service, so wiring stays uniform.
func NewAIService(apiKey, endpoint, model string) *AIService {
	if apiKey == "" {
		return &AIService{model: model}
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = endpoint
	return &AIService{client: openai.NewClientWithConfig(cfg), model: model}
}

// Complete sends a single-user-message chat completion and returns the
// raw model text. Sampling is pinned low for reproducible structure.
func (s *AIService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", ErrAIUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   12000,
		TopP:        0.9,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
