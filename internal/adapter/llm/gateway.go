package llm

import (
	"context"
	"fmt"

	"scenariod/internal/scenario"
)

// Gateway adapts an LLMClient to the scenario generator's view of the
// backend: one prompt in, text plus usage counters and finish reason out.
type Gateway struct {
	client      LLMClient
	model       string
	maxTokens   int
	temperature float64
}

// NewGateway wraps a chat client for scenario generation.
func NewGateway(client LLMClient, model string, maxTokens int, temperature float64) *Gateway {
	return &Gateway{client: client, model: model, maxTokens: maxTokens, temperature: temperature}
}

var _ scenario.Gateway = (*Gateway)(nil)

// Generate sends the compiled prompt as a single chat turn.
func (g *Gateway) Generate(ctx context.Context, systemPrompt, userPrompt string) (*scenario.GenerationOutput, error) {
	req := &ChatCompletionRequest{
		Model: g.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   &g.maxTokens,
		Temperature: &g.temperature,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return nil, fmt.Errorf("no completion returned")
	}

	choice := resp.Choices[0]
	out := &scenario.GenerationOutput{
		Text:         choice.Message.Content,
		FinishReason: choice.FinishReason,
	}
	if resp.Usage != nil {
		out.TokensIn = resp.Usage.PromptTokens
		out.TokensOut = resp.Usage.CompletionTokens
	}
	return out, nil
}
