package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"LearnScout/be/internal/llm"
)

const (
	scoringTemperature = 0.3
	scoringMaxTokens   = 300

	// Fallback scores stay inside [50,75] so degraded candidates still pass
	// permissive filters without outranking genuinely scored content.
	upstreamFailureScore = 50
	parseFailureScore    = 75
)

// ServiceImpl scores candidates through an LLM provider.
type ServiceImpl struct {
	aiProvider  llm.AIProvider
	model       string
	callTimeout time.Duration
}

func NewServiceImpl(aiProvider llm.AIProvider, model string, callTimeout time.Duration) *ServiceImpl {
	return &ServiceImpl{
		aiProvider:  aiProvider,
		model:       model,
		callTimeout: callTimeout,
	}
}

func (s *ServiceImpl) Score(ctx context.Context, in Input) Result {
	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	msg, err := s.aiProvider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(in)},
		},
		Model:       s.model,
		Temperature: scoringTemperature,
		MaxTokens:   scoringMaxTokens,
	})
	if err != nil {
		log.Printf("scorer: completion failed for %q: %v", in.Title, err)
		return fallbackResult(in, upstreamFailureScore)
	}

	jsonBlock, ok := extractJSON(msg.Content)
	if !ok {
		log.Printf("scorer: no JSON object in response for %q", in.Title)
		return fallbackResult(in, parseFailureScore)
	}

	var result Result
	if err := json.Unmarshal([]byte(jsonBlock), &result); err != nil {
		log.Printf("scorer: parsing response for %q: %v", in.Title, err)
		return fallbackResult(in, parseFailureScore)
	}

	result.RelevanceScore = clampScore(result.RelevanceScore)
	if result.Summary == "" {
		result.Summary = fallbackSummary(in)
	}
	if len(result.LearningTopics) == 0 {
		result.LearningTopics = []string{in.Query}
	}
	return result
}

func fallbackResult(in Input, score int) Result {
	return Result{
		Summary:        fallbackSummary(in),
		IsEducational:  true,
		RelevanceScore: score,
		LearningTopics: []string{in.Query},
	}
}

func fallbackSummary(in Input) string {
	return fmt.Sprintf("Learn about %s - educational content covering key concepts and practical applications.", in.Title)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
