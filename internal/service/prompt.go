package service

import (
	"context"

	"github.com/google/uuid"

	"prompt-server/internal/models"
)

// DefaultCommitMessage is recorded when a commit arrives without a message.
const DefaultCommitMessage = "Updated prompt"

// PromptService orchestrates prompt commits, version activation and the
// read-through content cache.
type PromptService interface {
	// SaveCommit applies a commit: it resolves the target prompt (explicit
	// id, then slug, then create-new), appends the next version as the only
	// active one and mirrors the content onto the prompt, all inside a
	// single transaction. The cache entry for the slug is invalidated only
	// after the transaction commits. Returns the prompt id.
	SaveCommit(ctx context.Context, req models.CommitRequest) (uuid.UUID, error)

	// ActivateVersion re-marks a historical version as active and mirrors
	// its content onto the live prompt. A missing version or prompt, or a
	// version that does not belong to promptID, returns (false, nil).
	ActivateVersion(ctx context.Context, versionID, promptID uuid.UUID) (bool, error)

	// GetAllForAdmin lists every prompt ordered by slug.
	GetAllForAdmin(ctx context.Context) ([]*models.Prompt, error)

	// GetDetails fetches a prompt with its full version history, newest
	// version first.
	GetDetails(ctx context.Context, promptID uuid.UUID) (*models.Prompt, error)

	// GetCachedContent resolves current content for a slug through the
	// cache. Returns models.ErrPromptNotFound when the prompt does not
	// exist or has no content.
	GetCachedContent(ctx context.Context, slug string) (string, error)

	// InvalidateCache drops the cache entry for a slug. Idempotent.
	InvalidateCache(ctx context.Context, slug string) error
}
