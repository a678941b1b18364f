package search

import (
	"context"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeAPI implements VideoAPI against the YouTube Data API v3.
type YouTubeAPI struct {
	svc *youtube.Service
}

func NewYouTubeAPI(ctx context.Context, apiKey string) (*YouTubeAPI, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &YouTubeAPI{svc: svc}, nil
}

func (a *YouTubeAPI) Search(ctx context.Context, query string, maxResults int64) ([]VideoHit, error) {
	res, err := a.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Order("relevance").
		VideoDuration("medium").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	hits := make([]VideoHit, 0, len(res.Items))
	for _, item := range res.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		hit := VideoHit{
			ID:           item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
			hit.ThumbnailURL = item.Snippet.Thumbnails.Medium.Url
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func (a *YouTubeAPI) Details(ctx context.Context, ids []string) (map[string]VideoDetail, error) {
	res, err := a.svc.Videos.List([]string{"contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	details := make(map[string]VideoDetail, len(res.Items))
	for _, item := range res.Items {
		detail := VideoDetail{}
		if item.ContentDetails != nil {
			detail.Duration = item.ContentDetails.Duration
		}
		if item.Statistics != nil {
			detail.ViewCount = item.Statistics.ViewCount
			detail.LikeCount = item.Statistics.LikeCount
		}
		details[item.Id] = detail
	}
	return details, nil
}
