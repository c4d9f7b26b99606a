package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"prompt-server/internal/models"
)

// GetCachedContent is the latency-sensitive read path: cache lookup, store
// fallback on miss, cache population. Not-found results are never cached,
// so lookups for a missing slug always reach the store.
func (s *promptServiceImpl) GetCachedContent(ctx context.Context, slug string) (string, error) {
	key := s.cacheKey(slug)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		promptCacheHitsTotal.Inc()
		return cached, nil
	}
	if !errors.Is(err, models.ErrCacheMiss) {
		return "", err
	}
	promptCacheMissesTotal.Inc()

	prompt, err := s.repo.GetBySlug(ctx, s.db, slug)
	if err != nil {
		// ErrPromptNotFound is an expected outcome here; anything else is a
		// storage failure and propagates unmodified.
		return "", err
	}

	if prompt.Content == nil || *prompt.Content == "" {
		s.logger.Debug("Prompt exists but has no content to serve", zap.String("slug", slug))
		return "", models.ErrPromptNotFound
	}

	if err := s.cache.Set(ctx, key, *prompt.Content, s.cacheTTL); err != nil {
		// Content is still served from the store; the next read retries the
		// population.
		s.logger.Warn("Failed to populate content cache", zap.Error(err), zap.String("slug", slug))
	}

	return *prompt.Content, nil
}

// InvalidateCache unconditionally deletes the cache key for a slug.
// Deleting a missing key is a no-op.
func (s *promptServiceImpl) InvalidateCache(ctx context.Context, slug string) error {
	return s.cache.Delete(ctx, s.cacheKey(slug))
}
