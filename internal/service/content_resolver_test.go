package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prompt-server/internal/interfaces"
	"prompt-server/internal/interfaces/mocks"
	"prompt-server/internal/models"
)

func TestGetCachedContent_HitSkipsStore(t *testing.T) {
	svc, m := newTestPromptService(t)

	m.cache.On("Get", mock.Anything, "prompt_cache:greeting").Return("Hello from cache", nil)

	content, err := svc.GetCachedContent(context.Background(), "greeting")

	require.NoError(t, err)
	assert.Equal(t, "Hello from cache", content)
	m.repo.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCachedContent_MissPopulatesCache(t *testing.T) {
	svc, m := newTestPromptService(t)
	prompt := &models.Prompt{ID: uuid.New(), Slug: "greeting", Name: "Greeting", Content: strPtr("Hello from store")}

	m.cache.On("Get", mock.Anything, "prompt_cache:greeting").Return("", models.ErrCacheMiss)
	m.repo.On("GetBySlug", mock.Anything, mock.Anything, "greeting").Return(prompt, nil)
	m.cache.On("Set", mock.Anything, "prompt_cache:greeting", "Hello from store", defaultCacheTTL).Return(nil)

	content, err := svc.GetCachedContent(context.Background(), "greeting")

	require.NoError(t, err)
	assert.Equal(t, "Hello from store", content)
	m.assertExpectations(t)
}

func TestGetCachedContent_CustomPrefixAndTTL(t *testing.T) {
	svc, m := newTestPromptService(t, WithCachePrefix("p:"), WithCacheTTL(5*time.Minute))
	prompt := &models.Prompt{ID: uuid.New(), Slug: "greeting", Content: strPtr("Hello")}

	m.cache.On("Get", mock.Anything, "p:greeting").Return("", models.ErrCacheMiss)
	m.repo.On("GetBySlug", mock.Anything, mock.Anything, "greeting").Return(prompt, nil)
	m.cache.On("Set", mock.Anything, "p:greeting", "Hello", 5*time.Minute).Return(nil)

	content, err := svc.GetCachedContent(context.Background(), "greeting")

	require.NoError(t, err)
	assert.Equal(t, "Hello", content)
}

func TestGetCachedContent_NotFoundIsNeverCached(t *testing.T) {
	svc, m := newTestPromptService(t)

	m.cache.On("Get", mock.Anything, "prompt_cache:ghost").Return("", models.ErrCacheMiss)
	m.repo.On("GetBySlug", mock.Anything, mock.Anything, "ghost").
		Return(nil, models.ErrPromptNotFound)

	_, err := svc.GetCachedContent(context.Background(), "ghost")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPromptNotFound)
	m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCachedContent_EmptyContentTreatedAsNotFound(t *testing.T) {
	svc, m := newTestPromptService(t)
	prompt := &models.Prompt{ID: uuid.New(), Slug: "draft", Name: "Draft"}

	m.cache.On("Get", mock.Anything, "prompt_cache:draft").Return("", models.ErrCacheMiss)
	m.repo.On("GetBySlug", mock.Anything, mock.Anything, "draft").Return(prompt, nil)

	_, err := svc.GetCachedContent(context.Background(), "draft")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPromptNotFound)
	m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCachedContent_CachePopulationFailureStillServes(t *testing.T) {
	svc, m := newTestPromptService(t)
	prompt := &models.Prompt{ID: uuid.New(), Slug: "greeting", Content: strPtr("Hello")}

	m.cache.On("Get", mock.Anything, "prompt_cache:greeting").Return("", models.ErrCacheMiss)
	m.repo.On("GetBySlug", mock.Anything, mock.Anything, "greeting").Return(prompt, nil)
	m.cache.On("Set", mock.Anything, "prompt_cache:greeting", "Hello", defaultCacheTTL).
		Return(errors.New("redis down"))

	content, err := svc.GetCachedContent(context.Background(), "greeting")

	require.NoError(t, err)
	assert.Equal(t, "Hello", content)
}

func TestGetCachedContent_CacheTransportErrorPropagates(t *testing.T) {
	svc, m := newTestPromptService(t)
	transportErr := errors.New("i/o timeout")

	m.cache.On("Get", mock.Anything, "prompt_cache:greeting").Return("", transportErr)

	_, err := svc.GetCachedContent(context.Background(), "greeting")

	require.Error(t, err)
	assert.ErrorIs(t, err, transportErr)
	m.repo.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvalidateCache_DeletesPrefixedKey(t *testing.T) {
	svc, m := newTestPromptService(t)

	m.cache.On("Delete", mock.Anything, "prompt_cache:greeting").Return(nil)

	require.NoError(t, svc.InvalidateCache(context.Background(), "greeting"))
	m.cache.AssertExpectations(t)
}

// memoryCache is a map-backed ContentCache used for end-to-end coherence
// tests of the commit/read cycle without Redis.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return "", models.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

var _ interfaces.ContentCache = (*memoryCache)(nil)

// The commit path must leave the read path serving the new content: the
// stale entry is deleted after commit and the next read re-populates from
// the store.
func TestCommitThenRead_ServesFreshContent(t *testing.T) {
	txManager := mocks.NewMockTxManager(t)
	repo := mocks.NewMockPromptRepository(t)
	publisher := mocks.NewMockPromptEventPublisher(t)
	cache := newMemoryCache()
	svc := NewPromptService(nil, txManager, repo, cache, publisher, zap.NewNop())

	ctx := context.Background()
	promptID := uuid.New()
	stored := "v1 content"
	prompt := &models.Prompt{ID: promptID, Slug: "greeting", Name: "Greeting", Content: &stored}

	repo.On("GetBySlug", mock.Anything, mock.Anything, "greeting").
		Return(prompt, nil)

	// First read warms the cache.
	content, err := svc.GetCachedContent(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "v1 content", content)

	// Second read is a hit: this would return the cached copy even if the
	// store changed underneath.
	content, err = svc.GetCachedContent(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "v1 content", content)

	// Commit v2. The shared prompt pointer mirrors what the store would
	// hold after the transaction.
	txManager.ExpectPassthrough()
	repo.On("UpdatePrompt", mock.Anything, mock.Anything, promptID, "greeting", "Greeting", "v2 content").
		Run(func(mock.Arguments) { stored = "v2 content" }).Return(nil)
	repo.On("MaxVersionNumber", mock.Anything, mock.Anything, promptID).Return(1, nil)
	repo.On("DeactivateVersions", mock.Anything, mock.Anything, promptID).Return(nil)
	repo.On("InsertVersion", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishPromptEvent", mock.Anything, mock.Anything).Return(nil)

	_, err = svc.SaveCommit(ctx, models.CommitRequest{Slug: "greeting", Content: "v2 content"})
	require.NoError(t, err)

	// The stale entry is gone; the next read reaches the store and sees v2.
	content, err = svc.GetCachedContent(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "v2 content", content)
}
