package llm

import "context"

// Client defines the interface for chat completion calls.
type Client interface {
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// Ensure HTTPClient implements Client interface.
var _ Client = (*HTTPClient)(nil)
