package services

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAI generates text through the chat completion API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI returns an OpenAI backend, gpt-4o-mini when model is empty.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{client: openai.NewClient(apiKey), model: model}
}

// Generate implements LLM.
func (o *OpenAI) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	res, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   params.MaxTokens,
		Temperature: float32(params.Temperature),
		TopP:        float32(params.TopP),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return res.Choices[0].Message.Content, nil
}
