// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// fallbackInspirations is served when the Gemini API is unreachable or not
// configured.
var fallbackInspirations = []string{
	"Integrity is doing the right thing, even when no one is watching.",
	"The debt of a human is a burden that weighs on the soul until fulfilled.",
	"Amanah (Trust) is the foundation of all righteous dealings.",
}

// GeminiService implements the QuoteService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// EthicalInspirations asks Gemini for short quotes about debt, fulfilling
// trusts and financial honesty. Any failure falls back to the static set.
func (s *GeminiService) EthicalInspirations(ctx context.Context) ([]string, error) {
	quotes, err := s.fetchInspirations(ctx)
	if err != nil {
		slog.Warn("Failed to fetch ethical inspirations from Gemini, serving fallback", "error", err)
		return fallbackInspirations, nil
	}
	return quotes, nil
}

func (s *GeminiService) fetchInspirations(ctx context.Context) ([]string, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.7)
	model.ResponseMIMEType = "application/json"

	prompt := "Generate 3 short, profound ethical quotes or principles about debt, fulfilling trusts (Amanah), and financial honesty. Return them as a JSON array of strings."

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return s.parseResponse(resp)
}

// parseResponse extracts the quote array out of the Gemini response.
func (s *GeminiService) parseResponse(resp *genai.GenerateContentResponse) ([]string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var quotes []string
	if err := json.Unmarshal([]byte(textContent), &quotes); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("gemini returned no quotes")
	}
	return quotes, nil
}
