package scorer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"LearnScout/be/internal/content"
	"LearnScout/be/internal/llm"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	response string
	err      error
	lastReq  llm.CompletionRequest
}

func (p *stubProvider) Complete(_ context.Context, req llm.CompletionRequest) (llm.Message, error) {
	p.lastReq = req
	if p.err != nil {
		return llm.Message{}, p.err
	}
	return llm.Message{Role: "assistant", Content: p.response}, nil
}

func (p *stubProvider) StreamComplete(context.Context, llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	return nil, errors.New("not implemented")
}

func TestScoreParsesWrappedJSON(t *testing.T) {
	provider := &stubProvider{response: "Sure, here is the analysis:\n```json\n" +
		`{"summary": "Covers goroutines end to end.", "isEducational": true, "relevanceScore": 82, "learningTopics": ["goroutines", "channels"]}` +
		"\n```\nLet me know if you need more."}
	svc := NewServiceImpl(provider, "test-model", 0)

	got := svc.Score(context.Background(), Input{
		Title:       "Concurrency in Go",
		Query:       "golang concurrency",
		ContentType: content.Video,
		Duration:    "12:30",
	})

	assert.Equal(t, 82, got.RelevanceScore)
	assert.True(t, got.IsEducational)
	assert.Equal(t, []string{"goroutines", "channels"}, got.LearningTopics)
	assert.Equal(t, "Covers goroutines end to end.", got.Summary)
}

func TestScoreFallbackOnUpstreamFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream timeout")}
	svc := NewServiceImpl(provider, "test-model", 0)

	got := svc.Score(context.Background(), Input{
		Title: "Intro to SQL",
		Query: "sql",
	})

	assert.True(t, got.IsEducational)
	assert.GreaterOrEqual(t, got.RelevanceScore, 50)
	assert.LessOrEqual(t, got.RelevanceScore, 75)
	assert.Equal(t, []string{"sql"}, got.LearningTopics)
	assert.Contains(t, got.Summary, "Intro to SQL")
}

func TestScoreFallbackOnMalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no JSON at all", "I cannot analyze this content."},
		{"unterminated object", `{"summary": "partial`},
		{"wrong types", `{"relevanceScore": "very high"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewServiceImpl(&stubProvider{response: tt.response}, "test-model", 0)
			got := svc.Score(context.Background(), Input{Title: "X", Query: "python"})

			assert.True(t, got.IsEducational)
			assert.GreaterOrEqual(t, got.RelevanceScore, 50)
			assert.LessOrEqual(t, got.RelevanceScore, 75)
			assert.Equal(t, []string{"python"}, got.LearningTopics)
		})
	}
}

func TestScoreClampsOutOfRangeScores(t *testing.T) {
	svc := NewServiceImpl(&stubProvider{
		response: `{"summary": "s", "isEducational": true, "relevanceScore": 150, "learningTopics": ["t"]}`,
	}, "test-model", 0)

	got := svc.Score(context.Background(), Input{Title: "X", Query: "q"})
	assert.Equal(t, 100, got.RelevanceScore)
}

func TestPromptShortVideoCaveat(t *testing.T) {
	provider := &stubProvider{response: `{"summary":"s","isEducational":true,"relevanceScore":40,"learningTopics":["t"]}`}
	svc := NewServiceImpl(provider, "test-model", 0)

	svc.Score(context.Background(), Input{
		Title:       "Quick tip",
		Query:       "css",
		ContentType: content.Video,
		Duration:    "1:30",
	})

	prompt := provider.lastReq.Messages[1].Content
	if !strings.Contains(prompt, "very short video") {
		t.Errorf("prompt for 90s video missing short-video caveat:\n%s", prompt)
	}

	svc.Score(context.Background(), Input{
		Title:       "Full course",
		Query:       "css",
		ContentType: content.Video,
		Duration:    "25:00",
	})
	prompt = provider.lastReq.Messages[1].Content
	if !strings.Contains(prompt, "Good duration for educational content") {
		t.Errorf("prompt for 25m video missing good-duration note:\n%s", prompt)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"prose around", `result: {"a":1} done`, `{"a":1}`, true},
		{"nested objects", `{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"brace inside string", `{"a":"}","b":1}`, `{"a":"}","b":1}`, true},
		{"no object", "plain text", "", false},
		{"unbalanced", `{"a":1`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSON(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractJSON(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}
