package narrative

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider generates commentary through Google's Gemini models.
type GeminiProvider struct {
	APIKey string
	Model  string
}

// Ensure interface compliance
var _ Provider = (*GeminiProvider)(nil)

// Available reports whether an API key is configured.
func (p *GeminiProvider) Available() bool {
	return p.APIKey != ""
}

// Generate sends a generateContent request to the Gemini API.
func (p *GeminiProvider) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if p.APIKey == "" {
		return "", ErrDisabled
	}

	model := p.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.3)),
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: systemPrompt},
			},
		}
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	return result.Text(), nil
}
