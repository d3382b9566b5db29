package ai

import (
	"context"
	"fmt"

	"github.com/go-deepseek/deepseek"
	"github.com/go-deepseek/deepseek/request"
)

const defaultDeepSeekModel = "deepseek-chat"

// DeepSeekProvider implements Provider against the DeepSeek chat API via
// the official SDK.
type DeepSeekProvider struct {
	client    deepseek.Client
	model     string
	maxTokens int
}

// NewDeepSeekProvider creates a DeepSeek-backed provider.
func NewDeepSeekProvider(apiKey, model string, maxTokens int) (*DeepSeekProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("deepseek: api key is required")
	}
	client, err := deepseek.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("creating DeepSeek client: %w", err)
	}
	if model == "" {
		model = defaultDeepSeekModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &DeepSeekProvider{client: client, model: model, maxTokens: maxTokens}, nil
}

// Name identifies the provider for logs.
func (p *DeepSeekProvider) Name() string { return "deepseek" }

// Complete sends a single chat completion request.
func (p *DeepSeekProvider) Complete(
	ctx context.Context,
	system string,
	messages []Message,
) (string, error) {
	msgs := make([]*request.Message, 0, len(messages)+1)
	if system != "" {
		msgs = append(msgs, &request.Message{
			Role:    "system",
			Content: system,
		})
	}
	for _, m := range messages {
		msgs = append(msgs, &request.Message{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := p.client.CallChatCompletionsChat(ctx, &request.ChatCompletionsRequest{
		Model:     p.model,
		Messages:  msgs,
		MaxTokens: p.maxTokens,
		Stream:    false,
	})
	if err != nil {
		return "", fmt.Errorf("calling DeepSeek API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("DeepSeek API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
