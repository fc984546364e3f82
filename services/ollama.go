package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Ollama generates text with a local ollama server through langchaingo.
type Ollama struct {
	llm llms.Model
}

// NewOllama returns an ollama backend. model defaults to llama3 and serverURL
// to the ollama default.
func NewOllama(model, serverURL string) (*Ollama, error) {
	if model == "" {
		model = "llama3"
	}
	opts := []ollama.Option{ollama.WithModel(model)}
	if serverURL != "" {
		opts = append(opts, ollama.WithServerURL(serverURL))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create ollama client: %w", err)
	}
	return &Ollama{llm: llm}, nil
}

// Generate implements LLM.
func (o *Ollama) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, o.llm, prompt,
		llms.WithMaxTokens(params.MaxTokens),
		llms.WithTemperature(params.Temperature),
		llms.WithTopK(params.TopK),
		llms.WithTopP(params.TopP),
	)
	if err != nil {
		return "", fmt.Errorf("ollama generation error: %w", err)
	}
	return text, nil
}
