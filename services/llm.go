package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when a model answers with nothing usable.
var ErrEmptyResponse = errors.New("no response from LLM")

// Params tunes a single generation.
type Params struct {
	MaxTokens   int
	Temperature float64
	TopK        int
	TopP        float64
}

// LLM generates text for a prompt.
type LLM interface {
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// NewLLM returns the backend named by provider: huggingface (default), openai
// or ollama.
func NewLLM(provider, apiKey, model, serverURL string) (LLM, error) {
	switch strings.ToLower(provider) {
	case "", "huggingface":
		return NewHuggingFace(apiKey, model), nil
	case "openai":
		return NewOpenAI(apiKey, model), nil
	case "ollama":
		return NewOllama(model, serverURL)
	}
	return nil, fmt.Errorf("unknown LLM provider %q", provider)
}

func intPtr(i int) *int {
	return &i
}

func float64Ptr(f float64) *float64 {
	return &f
}

func boolPtr(b bool) *bool {
	return &b
}
