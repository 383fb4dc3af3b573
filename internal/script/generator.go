package script

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"
	"reditrend/internal/model"
)

// Script style templates keyed by style id.
var scriptTemplates = map[string]string{
	"podcast":      "Create a conversational script between two podcast hosts discussing this trending topic. Make it engaging, informative, and include some humor.",
	"storytelling": "Create a storytelling narration that presents this trending topic in a captivating and dramatic way.",
	"educational":  "Create an educational script that explains this trending topic clearly with interesting facts and context.",
	"humorous":     "Create a humorous script that presents this trending topic in a funny and entertaining way.",
	"newscast":     "Create a newscast-style script that presents this trending topic in a professional journalistic manner.",
}

// Styles lists the available script styles.
func Styles() []string {
	return []string{"podcast", "storytelling", "educational", "humorous", "newscast"}
}

// ChatClient is the subset of the OpenAI client used by the generator.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator turns a trending post into a script with YouTube metadata.
type Generator struct {
	client ChatClient
}

// NewGenerator creates a script generator.
func NewGenerator(client ChatClient) *Generator {
	return &Generator{client: client}
}

// Generate produces a script plus title/description/tags for the top post.
func (g *Generator) Generate(ctx context.Context, topTrend model.Post, style string) (*model.ScriptResult, error) {
	scriptText, err := g.generateScript(ctx, topTrend, style)
	if err != nil {
		return nil, fmt.Errorf("generate script: %w", err)
	}

	meta, err := g.generateMetadata(ctx, topTrend, scriptText)
	if err != nil {
		return nil, fmt.Errorf("generate metadata: %w", err)
	}

	return &model.ScriptResult{
		Title:       meta.title,
		Description: meta.description,
		Tags:        meta.tags,
		Script:      scriptText,
		SourceTrend: model.SourceTrend{
			ID:        topTrend.ID,
			Subreddit: topTrend.Subreddit,
			Title:     topTrend.Title,
			URL:       topTrend.Permalink,
		},
	}, nil
}

func (g *Generator) generateScript(ctx context.Context, trend model.Post, style string) (string, error) {
	template, ok := scriptTemplates[style]
	if !ok {
		template = scriptTemplates["podcast"]
	}

	content := trend.Content
	if content == "" {
		content = "(No additional content)"
	}

	prompt := fmt.Sprintf(`%s

Trending Topic from Reddit:
Title: %s
Subreddit: r/%s
Content: %s
Comments: %d
Upvotes: %d

Create a script suitable for a 30-60 second YouTube Short video. The script should be engaging, concise, and formatted clearly with speaker parts if applicable.`,
		template, trend.Title, trend.Subreddit, content, trend.NumComments, trend.Score)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a creative script writer specializing in short-form video content."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 1000,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

type scriptMetadata struct {
	title       string
	description string
	tags        []string
}

var (
	titleRe       = regexp.MustCompile(`(?i)title:?(.*)`)
	descriptionRe = regexp.MustCompile(`(?i)description:?(.*)`)
	tagsRe        = regexp.MustCompile(`(?i)tags:?(.*)`)
)

func (g *Generator) generateMetadata(ctx context.Context, trend model.Post, scriptText string) (scriptMetadata, error) {
	excerpt := scriptText
	if len(excerpt) > 500 {
		excerpt = excerpt[:500]
	}

	prompt := fmt.Sprintf(`Based on this Reddit trend and script, generate:
1. A catchy title (max 60 characters)
2. A brief description (max 250 characters)
3. 5-7 relevant tags (comma separated)

Reddit Post: %s
Script: %s...`, trend.Title, excerpt)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a YouTube metadata optimization expert."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 500,
	})
	if err != nil {
		return scriptMetadata{}, err
	}
	if len(resp.Choices) == 0 {
		return scriptMetadata{}, fmt.Errorf("empty completion response")
	}

	return parseMetadata(resp.Choices[0].Message.Content, trend), nil
}

// parseMetadata extracts title, description and tags from a free-form
// model response, falling back to trend-derived defaults per line.
func parseMetadata(content string, trend model.Post) scriptMetadata {
	meta := scriptMetadata{
		title:       fallbackTitle(trend),
		description: fmt.Sprintf("A trending topic from Reddit: %s", trend.Title),
		tags:        []string{"reddit", "trending", trend.Subreddit},
	}

	if m := titleRe.FindStringSubmatch(content); m != nil && strings.TrimSpace(m[1]) != "" {
		meta.title = strings.TrimSpace(m[1])
	}
	if m := descriptionRe.FindStringSubmatch(content); m != nil && strings.TrimSpace(m[1]) != "" {
		meta.description = strings.TrimSpace(m[1])
	}
	if m := tagsRe.FindStringSubmatch(content); m != nil && strings.TrimSpace(m[1]) != "" {
		var tags []string
		for _, tag := range strings.Split(m[1], ",") {
			if t := strings.TrimSpace(tag); t != "" {
				tags = append(tags, t)
			}
		}
		if len(tags) > 0 {
			meta.tags = tags
		}
	}

	return meta
}

func fallbackTitle(trend model.Post) string {
	title := trend.Title
	if len(title) > 50 {
		title = title[:50] + "..."
	}
	return fmt.Sprintf("Trending on Reddit: %s", title)
}
