package llm

import (
	"context"
	"errors"
)

// Request carries one completion request to a text-generation provider.
type Request struct {
	System string
	Prompt string
}

// Client abstracts text-generation providers. A single synchronous round
// trip: prompt in, raw response text out, or an error. No retry policy is
// owned by callers; a failed call fails the whole analysis attempt.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("generation service not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}

var _ Client = PlaceholderClient{}
