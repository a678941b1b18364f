package search

import (
	"context"
	"fmt"
	"strings"

	"LearnScout/be/internal/content"
)

// BlogFetcher synthesizes a deterministic blog candidate per topic and
// level. No live blog API is integrated; the candidate carries a declared
// score so the pipeline treats it like any other pre-scored source.
type BlogFetcher struct{}

func NewBlogFetcher() *BlogFetcher {
	return &BlogFetcher{}
}

func (f *BlogFetcher) Fetch(_ context.Context, _, topic string, level content.Level) []content.Scored {
	caser := strings.ToUpper(string(level[0])) + string(level[1:])

	return []content.Scored{{
		Candidate: content.Candidate{
			Title:  fmt.Sprintf("Understanding %s: A %s's Perspective", topic, caser),
			URL:    fmt.Sprintf("https://blog.example.com/%s-%s", slugify(topic), level),
			Author: "Tech Writer",
			Source: "Tech Blog",
			Type:   content.Blog,
			Metadata: map[string]interface{}{
				"readTime":      "20 min read",
				"learningLevel": string(level),
			},
		},
		Summary:        fmt.Sprintf("Dive deep into %s with this detailed %s-level analysis covering key concepts and practical applications.", topic, level),
		IsEducational:  true,
		RelevanceScore: blogScore(level),
		LearningTopics: []string{topic, string(level) + " level", "tutorial"},
	}}
}

func blogScore(level content.Level) int {
	switch level {
	case content.Intermediate:
		return 85
	case content.Advanced:
		return 90
	default:
		return 80
	}
}
