package search

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"LearnScout/be/internal/content"
)

const liveWebResults = 3

// WebsiteFetcher serves website candidates: live web search results when a
// provider is configured, always backed by a curated level-appropriate
// guide. Candidates carry declared relevance scores and skip the LLM scorer.
type WebsiteFetcher struct {
	searcher WebSearcher
}

func NewWebsiteFetcher(searcher WebSearcher) *WebsiteFetcher {
	return &WebsiteFetcher{searcher: searcher}
}

func (f *WebsiteFetcher) Fetch(ctx context.Context, enhancedQuery, topic string, level content.Level) []content.Scored {
	results := []content.Scored{curatedGuide(topic, level)}

	if f.searcher == nil {
		return results
	}
	live, err := f.searcher.TopResults(ctx, enhancedQuery, liveWebResults)
	if err != nil {
		log.Printf("web search failed, serving curated catalog only: %v", err)
		return results
	}

	for _, r := range live {
		results = append(results, content.Scored{
			Candidate: content.Candidate{
				Title:  r.Title,
				URL:    r.URL,
				Source: "Web Search",
				Type:   content.Website,
				Metadata: map[string]interface{}{
					"learningLevel": string(level),
				},
			},
			Summary:        r.Snippet,
			IsEducational:  true,
			RelevanceScore: websiteScore(level),
			LearningTopics: []string{topic, string(level) + " level"},
		})
	}
	return results
}

func curatedGuide(topic string, level content.Level) content.Scored {
	var title, summary, readTime string
	var topics []string
	switch level {
	case content.Intermediate:
		title = fmt.Sprintf("%s - Practical Implementation Guide", topic)
		summary = fmt.Sprintf("Build upon your %s knowledge with practical examples and real-world implementations.", topic)
		readTime = "25 min read"
		topics = []string{topic + " implementation", "practical examples", "hands-on"}
	case content.Advanced:
		title = fmt.Sprintf("%s - Advanced Concepts and Best Practices", topic)
		summary = fmt.Sprintf("Master advanced %s concepts with in-depth analysis and professional techniques.", topic)
		readTime = "35 min read"
		topics = []string{"advanced " + topic, "expert techniques", "best practices"}
	default:
		title = fmt.Sprintf("%s - Complete Beginner's Guide", topic)
		summary = fmt.Sprintf("Start your %s journey with this comprehensive beginner's guide covering all the fundamentals you need to know.", topic)
		readTime = "15 min read"
		topics = []string{topic + " basics", "fundamentals", "getting started"}
	}

	return content.Scored{
		Candidate: content.Candidate{
			Title:  title,
			URL:    fmt.Sprintf("https://example.com/%s-%s", slugify(topic), level),
			Author: "Educational Platform",
			Source: "Educational Site",
			Type:   content.Website,
			Metadata: map[string]interface{}{
				"readTime":      readTime,
				"learningLevel": string(level),
			},
		},
		Summary:        summary,
		IsEducational:  true,
		RelevanceScore: websiteScore(level),
		LearningTopics: topics,
	}
}

func websiteScore(level content.Level) int {
	switch level {
	case content.Intermediate:
		return 88
	case content.Advanced:
		return 92
	default:
		return 85
	}
}

var slugSpaces = regexp.MustCompile(`\s+`)

func slugify(topic string) string {
	return slugSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(topic)), "-")
}
