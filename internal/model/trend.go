package model

// Post is one Reddit post as surfaced by the trends service.
type Post struct {
	ID          string  `json:"id"`
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	URL         string  `json:"url,omitempty"`
	Permalink   string  `json:"permalink"`
	Author      string  `json:"author,omitempty"`
	Created     int64   `json:"created,omitempty"`
	Score       int     `json:"score"`
	UpvoteRatio float32 `json:"upvoteRatio,omitempty"`
	NumComments int     `json:"numComments"`
	IsVideo     bool    `json:"isVideo,omitempty"`
	MediaURL    string  `json:"mediaUrl,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// TrendSource describes the query that produced a TrendResult.
type TrendSource struct {
	Subreddits []string  `json:"subreddits"`
	DateRange  DateRange `json:"dateRange"`
	SearchType string    `json:"searchType"`
}

// DateRange bounds a trend query. Zero values mean unbounded.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// TrendResult is the ranked output of the trend stage, consumed
// read-only by every later stage.
type TrendResult struct {
	Trends []Post      `json:"trends"`
	Source TrendSource `json:"source"`
}

// WeightedScore ranks a post by upvotes plus double its comment count.
// Comments weigh more than raw score because they signal discussion.
func (p Post) WeightedScore() int {
	return p.Score + 2*p.NumComments
}
