package discovery

import (
	"context"
	"log"
	"sort"
	"strings"

	"LearnScout/be/internal/cache"
	"LearnScout/be/internal/config"
	"LearnScout/be/internal/content"
	"LearnScout/be/internal/scorer"
	"LearnScout/be/internal/search"

	"golang.org/x/sync/errgroup"
)

// bucketScope tags cache entries produced by the full three-source search.
const bucketScope = "all"

const availabilityProbeSize = 5

// ServiceImpl runs the aggregation pipeline: cache check, query
// enhancement, parallel source fetch, parallel scoring, filter, sort,
// best-effort cache write. A failing source or scorer call degrades that
// slice of the results; it never aborts the request.
type ServiceImpl struct {
	videos   search.CandidateFetcher
	websites search.ScoredFetcher
	blogs    search.ScoredFetcher
	scorer   scorer.Service
	cache    cache.Store
	videoAPI search.VideoAPI
	policy   config.DiscoveryConfig
}

func NewServiceImpl(
	videos search.CandidateFetcher,
	websites search.ScoredFetcher,
	blogs search.ScoredFetcher,
	scorerSvc scorer.Service,
	cacheStore cache.Store,
	videoAPI search.VideoAPI,
	policy config.DiscoveryConfig,
) *ServiceImpl {
	return &ServiceImpl{
		videos:   videos,
		websites: websites,
		blogs:    blogs,
		scorer:   scorerSvc,
		cache:    cacheStore,
		videoAPI: videoAPI,
		policy:   policy,
	}
}

func (s *ServiceImpl) Search(ctx context.Context, query string, level content.Level) (*content.ResultSet, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	bucket := cache.BucketKey(bucketScope, level)
	if cached, ok := s.cache.Get(ctx, query, bucket); ok {
		return cached, nil
	}

	enhanced := search.Enhance(query, level)

	var (
		candidates []content.Candidate
		websites   []content.Scored
		blogs      []content.Scored
	)
	var fetchers errgroup.Group
	fetchers.Go(func() error {
		candidates = s.fetchBounded(ctx, func(fctx context.Context) []content.Candidate {
			return s.videos.Fetch(fctx, enhanced, query, level)
		})
		return nil
	})
	fetchers.Go(func() error {
		websites = s.fetchScoredBounded(ctx, s.websites, enhanced, query, level)
		return nil
	})
	fetchers.Go(func() error {
		blogs = s.fetchScoredBounded(ctx, s.blogs, enhanced, query, level)
		return nil
	})
	fetchers.Wait()

	videos := s.scoreCandidates(ctx, candidates, enhanced, level)

	result := &content.ResultSet{
		Videos:        videos,
		Websites:      websites,
		Blogs:         blogs,
		TotalResults:  len(videos) + len(websites) + len(blogs),
		LearningLevel: level,
	}

	if err := s.cache.Put(ctx, query, bucket, result); err != nil {
		// Computed results still go back to the caller.
		log.Printf("cache write failed for %q/%s: %v", query, bucket, err)
	}
	return result, nil
}

func (s *ServiceImpl) CheckAvailability(ctx context.Context, query string) (*Availability, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	levels := []content.Level{content.Beginner, content.Intermediate, content.Advanced}
	counts := make(map[content.Level]int, len(levels))

	for _, level := range levels {
		if s.videoAPI != nil {
			probeCtx, cancel := s.boundedContext(ctx)
			hits, err := s.videoAPI.Search(probeCtx, search.Enhance(query, level), availabilityProbeSize)
			cancel()
			if err != nil {
				log.Printf("availability probe for %s failed: %v", level, err)
			} else {
				counts[level] = len(hits)
			}
		}
		// The synthesized website and blog always exist per level.
		counts[level] += 2
	}

	total := 0
	minCount, maxCount := counts[levels[0]], counts[levels[0]]
	anyEmpty := false
	for _, level := range levels {
		c := counts[level]
		total += c
		if c < minCount {
			minCount = c
		}
		if c > maxCount {
			maxCount = c
		}
		if c == 0 {
			anyEmpty = true
		}
	}
	varied := (maxCount > 0 && anyEmpty) || maxCount-minCount > 2

	defaultLevel := content.Advanced
	for _, level := range levels {
		if counts[level] > 0 {
			defaultLevel = level
			break
		}
	}

	return &Availability{
		NeedsLevelSelection: total > 6 && varied,
		ContentAvailability: counts,
		DefaultLevel:        defaultLevel,
	}, nil
}

// scoreCandidates fans the bounded candidate list out to the scorer, then
// filters and sorts. The scorer's fallback guarantee means every candidate
// comes back scored even when individual calls fail.
func (s *ServiceImpl) scoreCandidates(ctx context.Context, candidates []content.Candidate, enhancedQuery string, level content.Level) []content.Scored {
	if len(candidates) == 0 {
		return nil
	}

	scored := make([]content.Scored, len(candidates))
	var g errgroup.Group
	g.SetLimit(s.policy.ScoreConcurrency)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			verdict := s.scorer.Score(ctx, scorer.Input{
				Title:       candidate.Title,
				Description: candidate.Description,
				Query:       enhancedQuery,
				ContentType: candidate.Type,
				Duration:    candidate.Duration,
			})
			scored[i] = content.Scored{
				Candidate:      candidate,
				Summary:        verdict.Summary,
				IsEducational:  verdict.IsEducational,
				RelevanceScore: verdict.RelevanceScore,
				LearningTopics: verdict.LearningTopics,
			}
			return nil
		})
	}
	g.Wait()

	kept := scored[:0]
	minScore := s.policy.MinScore[string(level)]
	minDuration := s.policy.MinDurationSeconds[string(level)]
	for _, item := range scored {
		if !item.IsEducational || item.RelevanceScore < minScore {
			continue
		}
		// Redundant safety net behind the fetcher's own window filter.
		if seconds := content.ParseClock(item.Duration); seconds < minDuration || seconds > s.policy.MaxDurationSeconds {
			continue
		}
		kept = append(kept, item)
	}

	// The sweet-spot bonus biases ordering toward mid-length videos; it is
	// applied after filtering so it can never rescue a below-threshold item.
	sort.SliceStable(kept, func(i, j int) bool {
		return s.adjustedScore(kept[i]) > s.adjustedScore(kept[j])
	})
	return kept
}

func (s *ServiceImpl) adjustedScore(item content.Scored) int {
	score := item.RelevanceScore
	seconds := content.ParseClock(item.Duration)
	if seconds >= s.policy.SweetSpotMinSeconds && seconds <= s.policy.MaxDurationSeconds {
		score += s.policy.SweetSpotBonus
	}
	return score
}

func (s *ServiceImpl) fetchBounded(ctx context.Context, fetch func(context.Context) []content.Candidate) []content.Candidate {
	fctx, cancel := s.boundedContext(ctx)
	defer cancel()
	return fetch(fctx)
}

func (s *ServiceImpl) fetchScoredBounded(ctx context.Context, fetcher search.ScoredFetcher, enhanced, topic string, level content.Level) []content.Scored {
	fctx, cancel := s.boundedContext(ctx)
	defer cancel()
	return fetcher.Fetch(fctx, enhanced, topic, level)
}

func (s *ServiceImpl) boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.policy.CallTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.policy.CallTimeout)
}
