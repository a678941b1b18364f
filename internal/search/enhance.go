package search

import (
	"LearnScout/be/internal/content"
)

// levelKeywords bias the upstream searches toward level-appropriate results
// without the providers having to understand levels.
var levelKeywords = map[content.Level]string{
	content.Beginner:     "basics fundamentals introduction tutorial getting started",
	content.Intermediate: "practical examples implementation hands-on intermediate",
	content.Advanced:     "advanced expert professional in-depth comprehensive",
}

// Enhance expands the raw topic with the level's keyword suffix.
func Enhance(topic string, level content.Level) string {
	return topic + " " + levelKeywords[level]
}
