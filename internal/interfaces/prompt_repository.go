package interfaces

import (
	"context"

	"github.com/google/uuid"

	"prompt-server/internal/models"
)

// PromptRepository defines the storage operations for prompts and their
// version history. Write methods take a DBTX so the service can group them
// into a single transaction; read methods used outside of commits take the
// querier as well for symmetry.
type PromptRepository interface {
	// GetBySlug retrieves a prompt by its slug. Returns models.ErrPromptNotFound if absent.
	GetBySlug(ctx context.Context, querier DBTX, slug string) (*models.Prompt, error)

	// GetByID retrieves a prompt by its id. Returns models.ErrPromptNotFound if absent.
	GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Prompt, error)

	// ListAll retrieves every prompt ordered by slug ascending.
	ListAll(ctx context.Context, querier DBTX) ([]*models.Prompt, error)

	// GetVersionsByPromptID retrieves the full version history of a prompt,
	// ordered by version_number descending.
	GetVersionsByPromptID(ctx context.Context, querier DBTX, promptID uuid.UUID) ([]*models.PromptVersion, error)

	// GetVersionByID retrieves a single version. Returns models.ErrVersionNotFound if absent.
	GetVersionByID(ctx context.Context, querier DBTX, versionID uuid.UUID) (*models.PromptVersion, error)

	// CreatePrompt inserts a new prompt and fills in its generated id and
	// created_at. A duplicate slug maps to models.ErrPromptConflict.
	CreatePrompt(ctx context.Context, querier DBTX, prompt *models.Prompt) error

	// UpdatePrompt overwrites slug, name and content of an existing prompt.
	// Returns models.ErrPromptNotFound when no row matches.
	UpdatePrompt(ctx context.Context, querier DBTX, id uuid.UUID, slug, name, content string) error

	// UpdateContent overwrites only the live content of a prompt.
	UpdateContent(ctx context.Context, querier DBTX, id uuid.UUID, content string) error

	// MaxVersionNumber returns the highest version number recorded for the
	// prompt, or 0 when it has no versions yet.
	MaxVersionNumber(ctx context.Context, querier DBTX, promptID uuid.UUID) (int, error)

	// DeactivateVersions clears is_active on every version of the prompt.
	DeactivateVersions(ctx context.Context, querier DBTX, promptID uuid.UUID) error

	// InsertVersion appends a new version row and fills in its generated id
	// and created_at. A (prompt_id, version_number) collision maps to
	// models.ErrPromptConflict.
	InsertVersion(ctx context.Context, querier DBTX, version *models.PromptVersion) error

	// SetVersionActive flags a single version as active.
	// Returns models.ErrVersionNotFound when no row matches.
	SetVersionActive(ctx context.Context, querier DBTX, versionID uuid.UUID) error
}
