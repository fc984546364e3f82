package services

import (
	"context"
	"fmt"

	"github.com/hupe1980/go-huggingface"
)

// HuggingFace generates text through the Hugging Face inference API.
type HuggingFace struct {
	client *huggingface.InferenceClient
	model  string
}

// NewHuggingFace returns a Hugging Face backend. An empty model uses the
// account's default text generation model.
func NewHuggingFace(apiKey, model string) *HuggingFace {
	return &HuggingFace{client: huggingface.NewInferenceClient(apiKey), model: model}
}

// Generate implements LLM.
func (h *HuggingFace) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	req := &huggingface.TextGenerationRequest{
		Inputs: prompt,
		Model:  h.model,
		Parameters: huggingface.TextGenerationParameters{
			MaxNewTokens:   intPtr(params.MaxTokens),
			Temperature:    float64Ptr(params.Temperature),
			TopK:           intPtr(params.TopK),
			TopP:           float64Ptr(params.TopP),
			ReturnFullText: boolPtr(false),
		},
	}

	res, err := h.client.TextGeneration(ctx, req)
	if err != nil {
		return "", fmt.Errorf("text generation error: %w", err)
	}
	if len(res) == 0 {
		return "", ErrEmptyResponse
	}
	return res[0].GeneratedText, nil
}
