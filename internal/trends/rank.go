package trends

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"reditrend/internal/model"
)

// RankPosts orders posts by weighted score, highest first. The weighting
// favors discussion: upvotes + 2x comments.
func RankPosts(posts []model.Post) []model.Post {
	ranked := make([]model.Post, len(posts))
	copy(ranked, posts)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WeightedScore() > ranked[j].WeightedScore()
	})
	return ranked
}

// FilterByPrompt keeps posts whose title or content contains any keyword
// of the free-text prompt. Plain substring matching, no partial-match
// scoring. An empty prompt keeps everything.
func FilterByPrompt(posts []model.Post, prompt string) []model.Post {
	keywords := lo.Filter(strings.Fields(strings.ToLower(prompt)), func(kw string, _ int) bool {
		return kw != ""
	})
	if len(keywords) == 0 {
		return posts
	}

	return lo.Filter(posts, func(post model.Post, _ int) bool {
		haystack := strings.ToLower(post.Title + " " + post.Content)
		return lo.SomeBy(keywords, func(kw string) bool {
			return strings.Contains(haystack, kw)
		})
	})
}
