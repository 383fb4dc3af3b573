package trends

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reditrend/internal/model"
)

type stubFetcher struct {
	posts []model.Post
	err   error
	calls int
}

func (s *stubFetcher) FetchTrending(ctx context.Context, subreddits []string, dateRange model.DateRange, searchType string) ([]model.Post, error) {
	s.calls++
	return s.posts, s.err
}

type memoryCache struct {
	entries map[string][]model.Post
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]model.Post, bool) {
	posts, ok := m.entries[key]
	return posts, ok
}

func (m *memoryCache) Set(ctx context.Context, key string, posts []model.Post) {
	m.entries[key] = posts
}

func trendsRouter(fetcher Fetcher, cache Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(fetcher, cache).Register(router)
	return router
}

func postTrends(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/trends", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestGetTrends_RanksAndDefaults(t *testing.T) {
	fetcher := &stubFetcher{posts: []model.Post{
		{ID: "a", Title: "Lower", Score: 10, NumComments: 5},
		{ID: "b", Title: "Higher", Score: 8, NumComments: 10},
	}}
	router := trendsRouter(fetcher, NoopCache{})

	w := postTrends(t, router, `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result model.TrendResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	// b: 8 + 2*10 = 28 outranks a: 10 + 2*5 = 20.
	require.Len(t, result.Trends, 2)
	assert.Equal(t, "b", result.Trends[0].ID)

	// Empty request falls back to r/all hot.
	assert.Equal(t, []string{"all"}, result.Source.Subreddits)
	assert.Equal(t, "hot", result.Source.SearchType)
}

func TestGetTrends_FetchFailureIsUpstream(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("reddit unreachable")}
	router := trendsRouter(fetcher, NoopCache{})

	w := postTrends(t, router, `{"subreddits":["golang"]}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "upstream")
}

func TestGetTrends_PromptFilteringEverythingIsBadRequest(t *testing.T) {
	fetcher := &stubFetcher{posts: []model.Post{
		{ID: "a", Title: "Kernel news", Content: "scheduler patches"},
	}}
	router := trendsRouter(fetcher, NoopCache{})

	// The fetch succeeds, but the prompt matches nothing; the stage must
	// fail here rather than hand an empty trend set downstream.
	w := postTrends(t, router, `{"subreddits":["linux"],"customPrompt":"gardening"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")
	assert.Contains(t, w.Body.String(), "gardening")
}

func TestGetTrends_SecondRequestHitsCache(t *testing.T) {
	fetcher := &stubFetcher{posts: []model.Post{{ID: "a", Title: "Post", Score: 1}}}
	cache := &memoryCache{entries: make(map[string][]model.Post)}
	router := trendsRouter(fetcher, cache)

	require.Equal(t, http.StatusOK, postTrends(t, router, `{"subreddits":["golang"]}`).Code)
	require.Equal(t, http.StatusOK, postTrends(t, router, `{"subreddits":["golang"]}`).Code)
	assert.Equal(t, 1, fetcher.calls)

	// A different query is a different cache entry.
	require.Equal(t, http.StatusOK, postTrends(t, router, `{"subreddits":["rust"]}`).Code)
	assert.Equal(t, 2, fetcher.calls)
}

func TestCacheKey_OrderInsensitive(t *testing.T) {
	a := CacheKey([]string{"golang", "rust"}, model.DateRange{}, "hot")
	b := CacheKey([]string{"rust", "golang"}, model.DateRange{}, "hot")
	assert.Equal(t, a, b)

	c := CacheKey([]string{"golang", "rust"}, model.DateRange{}, "top")
	assert.NotEqual(t, a, c)
}
