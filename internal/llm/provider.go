package llm

import (
	"context"
)

// Provider is the core abstraction for talking to a generative text model.
// Callers send a prompt and get back whatever text the model produced;
// turning that text into structured data is the caller's job.
type Provider interface {
	// Generate sends the request to the model and returns its raw reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation history. Challenge generation is
	// single-turn, so this normally holds one user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero leaves the provider default in place.
	Temperature float64

	// JSON asks for a JSON-only reply. Providers with a native JSON output
	// mode switch it on; the others rely on the prompt alone.
	JSON bool
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model's output.
type Response struct {
	// Text is the unprocessed reply. It may be bare JSON, JSON wrapped in
	// a markdown fence, or prose.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	StopReason StopReason
}

// StopReason is the normalized reason a generation stopped.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
