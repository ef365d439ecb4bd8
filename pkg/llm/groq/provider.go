package groq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-proposal-be/pkg/llm"

	openai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider talks to the Groq inference API, which speaks the OpenAI
// chat-completion protocol.
type GroqProvider struct {
	client *openai.Client
	model  string
}

var _ llm.LLMProvider = &GroqProvider{}

func NewGroqProvider(apiKey, model string) (*GroqProvider, error) {
	if apiKey == "" {
		return nil, errors.New("groq API key is required")
	}
	if model == "" {
		model = "llama-3.1-8b-instant"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = defaultBaseURL

	return &GroqProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (p *GroqProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	reqMsgs := make([]openai.ChatCompletionMessage, len(history))
	for i, m := range history {
		role := m.Role
		if role == "model" {
			role = openai.ChatMessageRoleAssistant
		}
		reqMsgs[i] = openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		}
	}

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    reqMsgs,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("groq completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("groq returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (p *GroqProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
