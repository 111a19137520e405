package llm

import (
	"context"
	"errors"
)

// Client abstracts the chat-completion endpoint used for structuring text.
type Client interface {
	// Complete sends a single user prompt and returns the model's textual
	// reply, bounded by maxTokens.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ErrUpstream marks a failed call to the completion endpoint: network
// failure, non-2xx status, or a malformed response body. It is distinct from
// a 2xx reply whose content cannot be parsed, which callers degrade to an
// empty result instead.
var ErrUpstream = errors.New("completion endpoint unavailable")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient stands in when no provider credentials are configured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(context.Context, string, int) (string, error) {
	return "", ErrNotConfigured
}
