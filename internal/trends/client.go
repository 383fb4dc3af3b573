package trends

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vartanbeno/go-reddit/v2/reddit"
	"reditrend/internal/model"
)

const postsPerSubreddit = 25

// Fetcher retrieves candidate posts for a trend query.
type Fetcher interface {
	FetchTrending(ctx context.Context, subreddits []string, dateRange model.DateRange, searchType string) ([]model.Post, error)
}

// RedditFetcher fetches posts through the public Reddit API.
type RedditFetcher struct {
	client *reddit.Client
	logger *slog.Logger
}

// NewRedditFetcher creates a read-only Reddit API fetcher.
func NewRedditFetcher(logger *slog.Logger) (*RedditFetcher, error) {
	client, err := reddit.NewReadonlyClient(reddit.WithUserAgent("Reditrend/1.0.0"))
	if err != nil {
		return nil, fmt.Errorf("create reddit client: %w", err)
	}
	return &RedditFetcher{client: client, logger: logger}, nil
}

// FetchTrending pulls posts from every requested subreddit. A single
// subreddit failing is tolerated and logged; the stage only fails when
// no subreddit yields any post.
func (f *RedditFetcher) FetchTrending(ctx context.Context, subreddits []string, dateRange model.DateRange, searchType string) ([]model.Post, error) {
	if len(subreddits) == 0 {
		subreddits = []string{"all"}
	}

	var posts []model.Post
	var lastErr error

	for _, sub := range subreddits {
		fetched, err := f.fetchSubreddit(ctx, sub, dateRange, searchType)
		if err != nil {
			f.logger.Warn("subreddit fetch failed", "subreddit", sub, "error", err)
			lastErr = err
			continue
		}
		posts = append(posts, fetched...)
	}

	// Zero posts overall is terminal whether or not a transport error
	// occurred: nothing downstream can run without a trend.
	if len(posts) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("failed to fetch posts from any subreddit: %w", lastErr)
		}
		return nil, fmt.Errorf("no posts returned from any subreddit")
	}

	return posts, nil
}

func (f *RedditFetcher) fetchSubreddit(ctx context.Context, subreddit string, dateRange model.DateRange, searchType string) ([]model.Post, error) {
	opts := &reddit.ListOptions{Limit: postsPerSubreddit}

	var fetched []*reddit.Post
	var err error

	switch searchType {
	case "top":
		topOpts := &reddit.ListPostOptions{ListOptions: *opts, Time: "day"}
		if dateRange.From != "" {
			// Reddit only supports coarse windows; a bounded range maps to the day window
			topOpts.Time = "day"
		}
		fetched, _, err = f.client.Subreddit.TopPosts(ctx, subreddit, topOpts)
	case "new":
		fetched, _, err = f.client.Subreddit.NewPosts(ctx, subreddit, opts)
	case "rising":
		fetched, _, err = f.client.Subreddit.RisingPosts(ctx, subreddit, opts)
	default:
		fetched, _, err = f.client.Subreddit.HotPosts(ctx, subreddit, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch r/%s %s: %w", subreddit, searchType, err)
	}

	posts := make([]model.Post, 0, len(fetched))
	for _, p := range fetched {
		post := model.Post{
			ID:          p.ID,
			Subreddit:   p.SubredditName,
			Title:       p.Title,
			Content:     p.Body,
			URL:         p.URL,
			Permalink:   "https://www.reddit.com" + p.Permalink,
			Author:      p.Author,
			Score:       p.Score,
			UpvoteRatio: p.UpvoteRatio,
			NumComments: p.NumberOfComments,
		}
		if p.Created != nil {
			post.Created = p.Created.Unix()
		}
		posts = append(posts, post)
	}
	return posts, nil
}
