package script

import (
	"context"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reditrend/internal/model"
)

// fakeChatClient returns canned completions in call order.
type fakeChatClient struct {
	responses []string
	calls     int
	requests  []openai.ChatCompletionRequest
}

func (f *fakeChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, req)
	content := f.responses[f.calls%len(f.responses)]
	f.calls++
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}, nil
}

func TestParseMetadata_ExtractsAllFields(t *testing.T) {
	trend := model.Post{Title: "Original post", Subreddit: "news"}
	content := `Title: A Catchy Title
Description: Something worth watching.
Tags: reddit, news, viral`

	meta := parseMetadata(content, trend)
	assert.Equal(t, "A Catchy Title", meta.title)
	assert.Equal(t, "Something worth watching.", meta.description)
	assert.Equal(t, []string{"reddit", "news", "viral"}, meta.tags)
}

func TestParseMetadata_CaseInsensitiveLabels(t *testing.T) {
	trend := model.Post{Title: "Post", Subreddit: "tech"}
	content := "TITLE A shouted title\ndescription: quiet description"

	meta := parseMetadata(content, trend)
	assert.Equal(t, "A shouted title", meta.title)
	assert.Equal(t, "quiet description", meta.description)
}

func TestParseMetadata_FallbacksPerField(t *testing.T) {
	trend := model.Post{Title: "Interesting thing happened", Subreddit: "worldnews"}

	meta := parseMetadata("no structured lines here", trend)
	assert.Equal(t, "Trending on Reddit: Interesting thing happened", meta.title)
	assert.Contains(t, meta.description, "Interesting thing happened")
	assert.Equal(t, []string{"reddit", "trending", "worldnews"}, meta.tags)
}

func TestParseMetadata_FallbackTitleTruncated(t *testing.T) {
	long := strings.Repeat("a", 80)
	trend := model.Post{Title: long, Subreddit: "sub"}

	meta := parseMetadata("nothing useful", trend)
	assert.Equal(t, "Trending on Reddit: "+strings.Repeat("a", 50)+"...", meta.title)
}

func TestGenerator_Generate(t *testing.T) {
	client := &fakeChatClient{responses: []string{
		"Narrator: an amazing thing happened today.",
		"Title: Amazing Thing\nDescription: You will not believe it.\nTags: amazing, reddit",
	}}
	generator := NewGenerator(client)

	trend := model.Post{
		ID:        "abc",
		Subreddit: "interesting",
		Title:     "An amazing thing",
		Permalink: "https://www.reddit.com/r/interesting/abc",
		Score:     120,
	}

	result, err := generator.Generate(context.Background(), trend, "storytelling")
	require.NoError(t, err)

	assert.Equal(t, "Narrator: an amazing thing happened today.", result.Script)
	assert.Equal(t, "Amazing Thing", result.Title)
	assert.Equal(t, "You will not believe it.", result.Description)
	assert.Equal(t, []string{"amazing", "reddit"}, result.Tags)
	assert.Equal(t, "abc", result.SourceTrend.ID)
	assert.Equal(t, "https://www.reddit.com/r/interesting/abc", result.SourceTrend.URL)

	require.Len(t, client.requests, 2)
	assert.Contains(t, client.requests[0].Messages[1].Content, scriptTemplates["storytelling"])
}

func TestGenerator_UnknownStyleUsesPodcastTemplate(t *testing.T) {
	client := &fakeChatClient{responses: []string{"a script", "Title: t"}}
	generator := NewGenerator(client)

	_, err := generator.Generate(context.Background(), model.Post{Title: "x"}, "freestyle")
	require.NoError(t, err)
	assert.Contains(t, client.requests[0].Messages[1].Content, scriptTemplates["podcast"])
}
