package search

import (
	"context"
	"log"
	"sort"

	"LearnScout/be/internal/config"
	"LearnScout/be/internal/content"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const searchPageSize = 15

// VideoFetcher queries the video provider, joins per-video details, filters
// by the level's duration window and caps the candidate list by popularity
// so only a bounded number of items reach the expensive scoring stage.
type VideoFetcher struct {
	api    VideoAPI
	policy config.DiscoveryConfig
}

func NewVideoFetcher(api VideoAPI, policy config.DiscoveryConfig) *VideoFetcher {
	return &VideoFetcher{api: api, policy: policy}
}

func (f *VideoFetcher) Fetch(ctx context.Context, enhancedQuery, topic string, level content.Level) []content.Candidate {
	if f.api == nil {
		return nil
	}

	hits, err := f.api.Search(ctx, enhancedQuery, searchPageSize)
	if err != nil {
		log.Printf("video search failed: %v", err)
		return nil
	}
	if len(hits) == 0 {
		return nil
	}

	// Keyed by video id in search encounter order, so ranking ties later
	// resolve to the provider's relevance order.
	byID := orderedmap.New[string, VideoHit]()
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		if _, present := byID.Get(hit.ID); present {
			continue
		}
		byID.Set(hit.ID, hit)
		ids = append(ids, hit.ID)
	}

	details, err := f.api.Details(ctx, ids)
	if err != nil {
		log.Printf("video details failed: %v", err)
		return nil
	}

	minDuration := f.policy.MinDurationSeconds[string(level)]
	type ranked struct {
		candidate  content.Candidate
		popularity uint64
	}
	var candidates []ranked

	for pair := byID.Oldest(); pair != nil; pair = pair.Next() {
		hit := pair.Value
		detail, ok := details[hit.ID]
		if !ok {
			continue
		}
		seconds := content.ParseISODuration(detail.Duration)
		if seconds < minDuration || seconds > f.policy.MaxDurationSeconds {
			continue
		}

		candidates = append(candidates, ranked{
			candidate: content.Candidate{
				Title:        hit.Title,
				URL:          "https://www.youtube.com/watch?v=" + hit.ID,
				Author:       hit.ChannelTitle,
				Source:       "YouTube",
				Type:         content.Video,
				Description:  hit.Description,
				Duration:     content.FormatDuration(seconds),
				PublishDate:  hit.PublishedAt,
				ThumbnailURL: hit.ThumbnailURL,
				Metadata: map[string]interface{}{
					"videoId":       hit.ID,
					"viewCount":     detail.ViewCount,
					"likeCount":     detail.LikeCount,
					"learningLevel": string(level),
				},
			},
			popularity: detail.ViewCount + detail.LikeCount,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].popularity > candidates[j].popularity
	})

	if len(candidates) > f.policy.MaxCandidates {
		candidates = candidates[:f.policy.MaxCandidates]
	}

	result := make([]content.Candidate, len(candidates))
	for i, c := range candidates {
		result[i] = c.candidate
	}
	return result
}
