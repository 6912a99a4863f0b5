package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OllamaClient speaks the literal wire contract of spec §6: HTTP POST to a
// configurable endpoint with JSON body {model, prompt, stream:false},
// expecting a JSON object with a "response" string field. Grounded on the
// teacher's plain net/http usage (test/debug_ids.go) since neither the
// teacher nor the rest of the pack imports an HTTP client library.
type OllamaClient struct {
	Endpoint string
	Model    string
	HTTP     *http.Client
}

// NewOllamaClient constructs a client with a private *http.Client so
// per-request context deadlines (not a package-level Timeout) govern
// cancellation, per spec §5's cancellation-propagation requirement.
func NewOllamaClient(endpoint, model string) *OllamaClient {
	return &OllamaClient{
		Endpoint: endpoint,
		Model:    model,
		HTTP:     &http.Client{},
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Complete issues one blocking generate request. Errors returned here are
// all transport-layer (dial failure, non-2xx status, malformed envelope) and
// are the only class the caller's retry policy applies to; a well-formed
// envelope whose `response` field itself fails to parse is not a transport
// error and is handled by the caller via ParseResponse.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaRequest{Model: c.Model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("ollama: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ollama: read body: %w", err)
	}

	var envelope ollamaResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("ollama: malformed envelope: %w", err)
	}
	return envelope.Response, nil
}
