package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prompt-server/internal/interfaces"
	"prompt-server/internal/models"
)

const (
	defaultCachePrefix = "prompt_cache:"
	defaultCacheTTL    = 3600 * time.Second
)

// Compile-time check to ensure promptServiceImpl implements PromptService
var _ PromptService = (*promptServiceImpl)(nil)

type promptServiceImpl struct {
	db        interfaces.DBTX
	txManager interfaces.TxManager
	repo      interfaces.PromptRepository
	cache     interfaces.ContentCache
	publisher interfaces.PromptEventPublisher
	logger    *zap.Logger

	cachePrefix string
	cacheTTL    time.Duration
}

// PromptServiceOption customizes the service, mainly to isolate cache
// namespaces in tests.
type PromptServiceOption func(*promptServiceImpl)

// WithCachePrefix overrides the cache key prefix.
func WithCachePrefix(prefix string) PromptServiceOption {
	return func(s *promptServiceImpl) { s.cachePrefix = prefix }
}

// WithCacheTTL overrides the cache entry TTL.
func WithCacheTTL(ttl time.Duration) PromptServiceOption {
	return func(s *promptServiceImpl) { s.cacheTTL = ttl }
}

// NewPromptService creates a new PromptService. db is the pool used for
// plain reads; all writes go through txManager.
func NewPromptService(
	db interfaces.DBTX,
	txManager interfaces.TxManager,
	repo interfaces.PromptRepository,
	cache interfaces.ContentCache,
	publisher interfaces.PromptEventPublisher,
	logger *zap.Logger,
	opts ...PromptServiceOption,
) PromptService {
	s := &promptServiceImpl{
		db:          db,
		txManager:   txManager,
		repo:        repo,
		cache:       cache,
		publisher:   publisher,
		logger:      logger.Named("PromptService"),
		cachePrefix: defaultCachePrefix,
		cacheTTL:    defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *promptServiceImpl) cacheKey(slug string) string {
	return s.cachePrefix + slug
}

// SaveCommit implements the commit path. The prompt update, the
// deactivate-all step and the new version insert either all commit or all
// roll back; the cache delete runs strictly after the commit so a rolled
// back write never invalidates a valid entry.
func (s *promptServiceImpl) SaveCommit(ctx context.Context, req models.CommitRequest) (uuid.UUID, error) {
	commitMsg := req.CommitMessage
	if commitMsg == "" {
		commitMsg = DefaultCommitMessage
	}

	var (
		promptID      uuid.UUID
		versionNumber int
		newSlug       string
		oldSlug       string
		eventType     = interfaces.PromptEventTypeCommitted
	)

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		target, err := s.resolveTarget(ctx, tx, req)
		if err != nil {
			return err
		}

		if target == nil {
			// Brand-new prompt: first version, nothing to deactivate.
			if req.Slug == "" || req.Name == "" {
				s.logger.Warn("Commit for a new prompt without slug or name", zap.String("slug", req.Slug))
				return fmt.Errorf("slug and name are required to create a prompt: %w", models.ErrInvalidInput)
			}
			content := req.Content
			prompt := &models.Prompt{Slug: req.Slug, Name: req.Name, Content: &content}
			if err := s.repo.CreatePrompt(ctx, tx, prompt); err != nil {
				return err
			}
			promptID = prompt.ID
			newSlug = prompt.Slug
			versionNumber = 1
		} else {
			promptID = target.ID
			oldSlug = target.Slug
			newSlug = req.Slug
			if newSlug == "" {
				newSlug = target.Slug
			}
			name := req.Name
			if name == "" {
				name = target.Name
			}

			if err := s.repo.UpdatePrompt(ctx, tx, promptID, newSlug, name, req.Content); err != nil {
				return err
			}
			maxVersion, err := s.repo.MaxVersionNumber(ctx, tx, promptID)
			if err != nil {
				return err
			}
			versionNumber = maxVersion + 1
			if err := s.repo.DeactivateVersions(ctx, tx, promptID); err != nil {
				return err
			}
		}

		version := &models.PromptVersion{
			PromptID:      promptID,
			VersionNumber: versionNumber,
			Content:       req.Content,
			CommitMessage: commitMsg,
			IsActive:      true,
			CreatedByID:   req.AuthorID,
		}
		return s.repo.InsertVersion(ctx, tx, version)
	})
	if err != nil {
		if errors.Is(err, models.ErrPromptConflict) {
			promptCommitConflictsTotal.Inc()
		}
		return uuid.Nil, err
	}

	promptCommitsTotal.Inc()
	s.logger.Info("Prompt commit saved",
		zap.String("promptID", promptID.String()),
		zap.String("slug", newSlug),
		zap.Int("versionNumber", versionNumber),
	)

	s.invalidateAfterWrite(ctx, newSlug, oldSlug)
	s.publishEvent(ctx, eventType, newSlug, promptID, versionNumber)

	return promptID, nil
}

// resolveTarget finds the prompt a commit applies to: by explicit id when
// given (the prompt must exist), otherwise by slug. A nil result with nil
// error means the commit creates a new prompt.
func (s *promptServiceImpl) resolveTarget(ctx context.Context, tx interfaces.DBTX, req models.CommitRequest) (*models.Prompt, error) {
	if req.PromptID != nil {
		prompt, err := s.repo.GetByID(ctx, tx, *req.PromptID)
		if err != nil {
			return nil, err
		}
		return prompt, nil
	}

	prompt, err := s.repo.GetBySlug(ctx, tx, req.Slug)
	if err != nil {
		if errors.Is(err, models.ErrPromptNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return prompt, nil
}

// ActivateVersion implements rollback: it only toggles which version is
// flagged active and mirrors that version's content onto the prompt. It
// never renumbers or deletes anything.
func (s *promptServiceImpl) ActivateVersion(ctx context.Context, versionID, promptID uuid.UUID) (bool, error) {
	version, err := s.repo.GetVersionByID(ctx, s.db, versionID)
	if err != nil {
		if errors.Is(err, models.ErrVersionNotFound) {
			return false, nil
		}
		return false, err
	}

	prompt, err := s.repo.GetByID(ctx, s.db, promptID)
	if err != nil {
		if errors.Is(err, models.ErrPromptNotFound) {
			return false, nil
		}
		return false, err
	}

	// The version must belong to the prompt whose versions we are about to
	// deactivate; otherwise a caller could mirror foreign content across
	// prompts.
	if version.PromptID != promptID {
		s.logger.Warn("Activation refused: version belongs to another prompt",
			zap.String("versionID", versionID.String()),
			zap.String("promptID", promptID.String()),
			zap.String("versionPromptID", version.PromptID.String()),
		)
		return false, nil
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		if err := s.repo.DeactivateVersions(ctx, tx, promptID); err != nil {
			return err
		}
		if err := s.repo.SetVersionActive(ctx, tx, versionID); err != nil {
			return err
		}
		return s.repo.UpdateContent(ctx, tx, promptID, version.Content)
	})
	if err != nil {
		return false, err
	}

	promptActivationsTotal.Inc()
	s.logger.Info("Prompt version activated",
		zap.String("promptID", promptID.String()),
		zap.Int("versionNumber", version.VersionNumber),
	)

	s.invalidateAfterWrite(ctx, prompt.Slug, "")
	s.publishEvent(ctx, interfaces.PromptEventTypeActivated, prompt.Slug, promptID, version.VersionNumber)

	return true, nil
}

func (s *promptServiceImpl) GetAllForAdmin(ctx context.Context) ([]*models.Prompt, error) {
	return s.repo.ListAll(ctx, s.db)
}

func (s *promptServiceImpl) GetDetails(ctx context.Context, promptID uuid.UUID) (*models.Prompt, error) {
	prompt, err := s.repo.GetByID(ctx, s.db, promptID)
	if err != nil {
		return nil, err
	}
	versions, err := s.repo.GetVersionsByPromptID(ctx, s.db, promptID)
	if err != nil {
		return nil, err
	}
	prompt.Versions = versions
	return prompt, nil
}

// invalidateAfterWrite drops the cache entries a committed write made
// stale. Failures are logged, not returned: the write is already durable
// and the TTL bounds any remaining staleness.
func (s *promptServiceImpl) invalidateAfterWrite(ctx context.Context, slug, previousSlug string) {
	if err := s.InvalidateCache(ctx, slug); err != nil {
		s.logger.Warn("Cache invalidation failed after commit", zap.Error(err), zap.String("slug", slug))
	}
	if previousSlug != "" && previousSlug != slug {
		if err := s.InvalidateCache(ctx, previousSlug); err != nil {
			s.logger.Warn("Cache invalidation failed for previous slug", zap.Error(err), zap.String("slug", previousSlug))
		}
	}
}

func (s *promptServiceImpl) publishEvent(ctx context.Context, eventType interfaces.PromptEventType, slug string, promptID uuid.UUID, versionNumber int) {
	if s.publisher == nil {
		return
	}
	event := interfaces.PromptEvent{
		EventType:     eventType,
		Slug:          slug,
		PromptID:      promptID,
		VersionNumber: versionNumber,
	}
	if err := s.publisher.PublishPromptEvent(ctx, event); err != nil {
		// Consumers fall back to cache TTL expiry; the write itself stands.
		s.logger.Warn("Failed to publish prompt event", zap.Error(err), zap.String("slug", slug))
	}
}
