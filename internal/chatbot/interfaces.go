package chatbot

import (
	"context"
	"errors"
	"io"
)

const maxMessageLength = 1000

// ChatRequest is one user turn. Context optionally names the topic the
// user is currently studying.
type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// Validate enforces the input bounds before anything reaches the model.
func (r ChatRequest) Validate() error {
	if r.Message == "" {
		return errors.New("message is required")
	}
	if len(r.Message) > maxMessageLength {
		return errors.New("message too long")
	}
	return nil
}

type ChatResponse struct {
	Response string `json:"response"`
}

type Service interface {
	// Respond returns one sanitized assistant reply.
	Respond(ctx context.Context, req ChatRequest) (string, error)
	// StreamRespond writes the reply to w as server-sent events.
	StreamRespond(ctx context.Context, req ChatRequest, w io.Writer) error
}

// SSE framing of one streamed chunk.
type StreamResponse struct {
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Delta        Delta  `json:"delta"`
	FinishReason string `json:"finish_reason,omitempty"`
}

type Delta struct {
	Content string `json:"content"`
}
