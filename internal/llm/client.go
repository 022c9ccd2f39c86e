package llm

import (
	"context"
	"errors"
)

// ErrUnavailable marks connection-level failures to the backend so callers
// can distinguish "server not running" from a bad response.
var ErrUnavailable = errors.New("llm backend unavailable")

// ErrBadResponse marks a reachable backend that answered with an error
// status. Callers surface it differently from ErrUnavailable.
var ErrBadResponse = errors.New("llm backend returned an error")

type Request struct {
	Prompt string
	Model  string
	// Images holds base64-encoded PNG payloads for vision-capable models.
	Images []string
}

type Response struct {
	Content string
	Model   string
}

type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}
