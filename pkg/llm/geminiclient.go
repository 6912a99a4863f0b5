package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is an alternate Client backed by Google's Gemini API,
// grounded on the teacher's pkg/service/ai/gemini.go GeminiService: same
// NewClient/GenerativeModel/SetTemperature/GenerateContent call sequence and
// the same genai.Text Part type-assertion when reading the response back
// out. Unlike the teacher's service, this client is stateless per call and
// carries no Datalog-backed context builder of its own — BuildPrompt already
// did that work.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient mirrors the teacher's NewGeminiService: temperature fixed
// low (0.2) since grounding wants a stable, literal-minded classification,
// not creative variation.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key not set")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)

	return &GeminiClient{client: client, model: model}, nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Complete sends prompt as a single-turn generation request and concatenates
// every genai.Text part of the first candidate, following the teacher's
// response-walking pattern in gemini.go.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: empty response")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", fmt.Errorf("gemini: response contained no text parts")
	}
	return out, nil
}
