package llm

import "errors"

// ErrMissingAPIKey is returned when a request requires an API key and none
// was configured. Callers map this to a configuration error rather than an
// upstream failure.
var ErrMissingAPIKey = errors.New("LLM API key is not configured")

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Model specifies the model to use. If empty, the client's default model is used.
	Model string

	// MaxTokens specifies the maximum number of tokens to generate.
	// If 0, no limit is applied.
	MaxTokens int

	// Temperature controls the randomness of the output. Grounded answer
	// composition runs at 0 so answers stay pinned to the retrieved text.
	Temperature float32
}
