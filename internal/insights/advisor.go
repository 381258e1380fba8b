// Package insights composes narrative spending advice, anomaly alerts and the
// savings rate into one result.
package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Advisor turns a prompt into free-form advice text.
type Advisor interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// GeminiAdvisor generates advice with the Gemini API.
type GeminiAdvisor struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// NewGeminiAdvisor creates a client for modelName authenticated by apiKey.
func NewGeminiAdvisor(ctx context.Context, apiKey, modelName string) (*GeminiAdvisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAdvisor{
		client: client,
		model:  client.GenerativeModel(modelName),
		name:   modelName,
	}, nil
}

// Model returns the configured model name.
func (a *GeminiAdvisor) Model() string {
	return a.name
}

// Generate sends prompt and concatenates the text parts of the first candidate.
func (a *GeminiAdvisor) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from Gemini API")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("empty response from Gemini API")
	}
	return b.String(), nil
}

// Close releases the underlying client.
func (a *GeminiAdvisor) Close() error {
	return a.client.Close()
}
