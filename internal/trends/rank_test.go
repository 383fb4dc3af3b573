package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reditrend/internal/model"
)

func TestRankPosts_WeightsCommentsDouble(t *testing.T) {
	// 8 upvotes with 10 comments (28) must outrank 10 upvotes with 5
	// comments (20).
	posts := []model.Post{
		{ID: "a", Title: "high score", Score: 10, NumComments: 5},
		{ID: "b", Title: "high discussion", Score: 8, NumComments: 10},
	}

	ranked := RankPosts(posts)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].ID)
	assert.Equal(t, "a", ranked[1].ID)

	// Input order untouched.
	assert.Equal(t, "a", posts[0].ID)
}

func TestRankPosts_StableForTies(t *testing.T) {
	posts := []model.Post{
		{ID: "first", Score: 10, NumComments: 0},
		{ID: "second", Score: 10, NumComments: 0},
		{ID: "third", Score: 4, NumComments: 3},
	}

	ranked := RankPosts(posts)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].ID)
	assert.Equal(t, "second", ranked[1].ID)
	assert.Equal(t, "third", ranked[2].ID)
}

func TestFilterByPrompt(t *testing.T) {
	posts := []model.Post{
		{ID: "1", Title: "SpaceX launches again", Content: "rocket details"},
		{ID: "2", Title: "Cooking tips", Content: "pasta and sauce"},
		{ID: "3", Title: "NASA confirms", Content: "the rocket program continues"},
	}

	tests := []struct {
		name    string
		prompt  string
		wantIDs []string
	}{
		{"single_keyword", "rocket", []string{"1", "3"}},
		{"any_keyword_matches", "pasta launch", []string{"1", "2"}},
		{"case_insensitive", "SPACEX", []string{"1"}},
		{"empty_prompt_keeps_all", "", []string{"1", "2", "3"}},
		{"no_match", "quantum", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByPrompt(posts, tt.prompt)
			var ids []string
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
