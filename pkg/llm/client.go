package llm

import "context"

// Client issues a single grounding prompt and returns the model's raw
// `response` string, unparsed. Implementations wrap a specific transport
// (local Ollama-compatible HTTP, or a cloud API such as Gemini).
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
