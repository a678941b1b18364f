package llm

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
)

type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiAIProvider(client *genai.Client) *GeminiProvider {
	return &GeminiProvider{client: client}
}

func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (Message, error) {
	model := p.model(req)
	res, err := model.GenerateContent(ctx, p.extractParts(req.Messages)...)
	if err != nil {
		return Message{}, err
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return Message{}, errors.New("no candidates found")
	}

	return Message{
		Content: fmt.Sprintf("%v", res.Candidates[0].Content.Parts[0]),
	}, nil
}

func (p *GeminiProvider) StreamComplete(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error) {
	model := p.model(req)
	resIterator := model.GenerateContentStream(ctx, p.extractParts(req.Messages)...)

	chunks := make(chan StreamChunk)

	go func() {
		defer close(chunks)

		for {
			resp, err := resIterator.Next()
			if errors.Is(err, iterator.Done) {
				emit(ctx, chunks, StreamChunk{Done: true})
				return
			}
			if err != nil {
				log.Printf("Error in StreamComplete: %v", err)
				return
			}
			if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
				continue
			}

			if !emit(ctx, chunks, StreamChunk{Content: fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])}) {
				return
			}
		}
	}()

	return chunks, nil
}

// -----------------Private Helper Functions-----------------

func (p *GeminiProvider) model(req CompletionRequest) *genai.GenerativeModel {
	model := p.client.GenerativeModel(req.Model)
	model.SetTemperature(req.Temperature)
	model.SetTopK(40)
	model.SetTopP(0.95)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	return model
}

func (p *GeminiProvider) extractParts(messages []Message) []genai.Part {
	var parts []genai.Part
	for _, msg := range messages {
		parts = append(parts, genai.Text(msg.Content))
	}
	return parts
}
