package llm

import (
	"context"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Messages    []Message
	Model       string
	Temperature float32
	MaxTokens   int
}

type StreamChunk struct {
	Content string
	Done    bool
}

type AIProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (Message, error)
	StreamComplete(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error)
}

// emit sends chunk unless the context ends first. Stream consumers may stop
// reading mid-stream; without the ctx arm the producer goroutine would block
// on the send forever and leak.
func emit(ctx context.Context, chunks chan<- StreamChunk, chunk StreamChunk) bool {
	select {
	case chunks <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}
