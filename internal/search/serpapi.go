package search

import (
	"context"
	"strconv"

	serpapi "github.com/serpapi/google-search-results-golang"
)

// SerpAPISearcher implements WebSearcher against the SerpAPI Google engine.
type SerpAPISearcher struct {
	apiKey string
}

func NewSerpAPISearcher(apiKey string) *SerpAPISearcher {
	return &SerpAPISearcher{apiKey: apiKey}
}

// TopResults returns up to n organic results. The SerpAPI client offers no
// context plumbing; the caller's deadline still bounds the pipeline because
// failures here degrade to the curated catalog.
func (s *SerpAPISearcher) TopResults(_ context.Context, query string, n int) ([]WebResult, error) {
	params := map[string]string{
		"engine": "google",
		"q":      query,
		"num":    strconv.Itoa(n),
	}
	search := serpapi.NewGoogleSearch(params, s.apiKey)
	data, err := search.GetJSON()
	if err != nil {
		return nil, err
	}

	organic, _ := data["organic_results"].([]interface{})
	results := make([]WebResult, 0, n)
	for _, raw := range organic {
		if len(results) == n {
			break
		}
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		title, _ := item["title"].(string)
		link, _ := item["link"].(string)
		snippet, _ := item["snippet"].(string)
		if title == "" || link == "" {
			continue
		}
		results = append(results, WebResult{Title: title, URL: link, Snippet: snippet})
	}
	return results, nil
}
