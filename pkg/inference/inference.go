// Package inference provides the text-completion capability.
//
// The package abstracts chat completions behind a single Provider interface
// so callers can switch between OpenAI, Ollama, vLLM, or any other
// OpenAI-compatible endpoint without changing code. Responders treat the
// provider as an opaque capability and wrap it with their own fallbacks; no
// retry guarantee beyond the client's own is assumed.
//
// Example usage:
//
//	client, _ := inference.NewClient(
//	    inference.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    inference.WithModel("gpt-4o"),
//	)
//	defer client.Close()
//
//	resp, _ := client.Chat(ctx, &inference.ChatRequest{
//	    Messages: []inference.Message{
//	        {Role: inference.RoleUser, Content: "Hello!"},
//	    },
//	})
package inference

import "context"

// Provider is the completion capability interface.
type Provider interface {
	// Chat generates a response from a sequence of messages.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// ChatRequest for chat completions.
type ChatRequest struct {
	// Messages is the conversation history.
	Messages []Message

	// Model overrides the default model.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls randomness (0.0-2.0).
	Temperature float64

	// Stop sequences that halt generation.
	Stop []string
}

// ChatResponse from chat completion.
type ChatResponse struct {
	// Message is the assistant's response.
	Message Message

	// FinishReason indicates why generation stopped.
	FinishReason string

	// Usage tracks token consumption.
	Usage Usage

	// Model used for generation.
	Model string

	// LatencyMs is the response time in milliseconds.
	LatencyMs int64
}

// Usage tracks token consumption for billing and limits.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Complete is a convenience wrapper for single-prompt completions: it sends
// one user message and returns the trimmed assistant text.
func Complete(ctx context.Context, p Provider, prompt string) (string, error) {
	resp, err := p.Chat(ctx, &ChatRequest{
		Messages: []Message{NewUserMessage(prompt)},
	})
	if err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}
