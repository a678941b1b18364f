package chatbot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"LearnScout/be/internal/llm"
)

const (
	chatTemperature = 0.7
	chatMaxTokens   = 500
)

const assistantPrompt = `You are an educational AI assistant. Help users understand topics they're learning about in a structured, interactive way.

IMPORTANT GUIDELINES:
- Provide clear, concise explanations in a structured format
- Break down complex topics into digestible parts
- Use numbered lists, bullet points, or step-by-step explanations
- Ask follow-up questions to keep the conversation interactive
- Focus only on what the user asked - don't overwhelm with too much information at once
- Encourage deeper learning by suggesting related questions they might want to explore
- Keep responses focused and relevant to their specific question
- NEVER include HTML tags, scripts, or any executable code in your responses
- Use only plain text with markdown-style formatting (**, *, etc.)`

// ServiceImpl proxies chat turns to the LLM provider with input validation
// and output sanitization on both sides.
type ServiceImpl struct {
	aiProvider llm.AIProvider
	model      string
}

func NewServiceImpl(aiProvider llm.AIProvider, model string) *ServiceImpl {
	return &ServiceImpl{aiProvider: aiProvider, model: model}
}

func (s *ServiceImpl) Respond(ctx context.Context, req ChatRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	msg, err := s.aiProvider.Complete(ctx, s.completionRequest(req))
	if err != nil {
		return "", err
	}
	return Sanitize(msg.Content), nil
}

func (s *ServiceImpl) StreamRespond(ctx context.Context, req ChatRequest, w io.Writer) error {
	if err := req.Validate(); err != nil {
		return err
	}

	chunks, err := s.aiProvider.StreamComplete(ctx, s.completionRequest(req))
	if err != nil {
		return err
	}

	for chunk := range chunks {
		if chunk.Done {
			fmt.Fprintf(w, "data: [DONE]\n\n")
			return nil
		}

		resp := StreamResponse{
			Choices: []Choice{{Delta: Delta{Content: Sanitize(chunk.Content)}}},
		}
		if err := writeSSEResponse(w, resp); err != nil {
			return err
		}
	}
	return nil
}

func (s *ServiceImpl) completionRequest(req ChatRequest) llm.CompletionRequest {
	system := assistantPrompt
	if req.Context != "" {
		system = fmt.Sprintf("%s\n\nThe user is currently learning about: %s", assistantPrompt, req.Context)
	}
	return llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: req.Message},
		},
		Model:       s.model,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	}
}

var (
	scriptTagRe    = regexp.MustCompile(`(?i)<script\b[^<]*(?:(?:<[^/])[^<]*)*</script>`)
	jsProtocolRe   = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)\bon\w+\s*=`)
)

// Sanitize strips executable fragments from model output before it reaches
// a browser. The prompt forbids them; this is the server-side backstop.
func Sanitize(text string) string {
	text = scriptTagRe.ReplaceAllString(text, "")
	text = jsProtocolRe.ReplaceAllString(text, "")
	text = eventHandlerRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func writeSSEResponse(w io.Writer, resp StreamResponse) error {
	jsonData, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal SSE response: %w", err)
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", jsonData); err != nil {
		return fmt.Errorf("failed to write SSE message: %w", err)
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
