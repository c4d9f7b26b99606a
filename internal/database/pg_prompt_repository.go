package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"prompt-server/internal/interfaces"
	"prompt-server/internal/models"
)

// Compile-time check to ensure pgPromptRepository implements PromptRepository
var _ interfaces.PromptRepository = (*pgPromptRepository)(nil)

const (
	promptFields        = `id, slug, name, content, created_at`
	promptVersionFields = `id, prompt_id, version_number, content, commit_message, is_active, created_at, created_by_id`

	getPromptBySlugQuery = `SELECT id, slug, name, content, created_at FROM prompts WHERE slug = $1`
	getPromptByIDQuery   = `SELECT id, slug, name, content, created_at FROM prompts WHERE id = $1`
	listPromptsQuery     = `SELECT id, slug, name, content, created_at FROM prompts ORDER BY slug`

	getVersionsByPromptIDQuery = `
        SELECT id, prompt_id, version_number, content, commit_message, is_active, created_at, created_by_id
        FROM prompt_versions
        WHERE prompt_id = $1
        ORDER BY version_number DESC`
	getVersionByIDQuery = `
        SELECT id, prompt_id, version_number, content, commit_message, is_active, created_at, created_by_id
        FROM prompt_versions
        WHERE id = $1`

	createPromptQuery = `INSERT INTO prompts (slug, name, content) VALUES ($1, $2, $3) RETURNING id, created_at`
	updatePromptQuery = `UPDATE prompts SET slug = $1, name = $2, content = $3 WHERE id = $4`
	updateContentQuery = `UPDATE prompts SET content = $1 WHERE id = $2`

	maxVersionNumberQuery   = `SELECT COALESCE(MAX(version_number), 0) FROM prompt_versions WHERE prompt_id = $1`
	deactivateVersionsQuery = `UPDATE prompt_versions SET is_active = FALSE WHERE prompt_id = $1`
	insertVersionQuery      = `
        INSERT INTO prompt_versions (prompt_id, version_number, content, commit_message, is_active, created_by_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	setVersionActiveQuery = `UPDATE prompt_versions SET is_active = TRUE WHERE id = $1`
)

type pgPromptRepository struct {
	logger *zap.Logger
}

// NewPgPromptRepository creates a new PostgreSQL-backed PromptRepository.
// Every method takes the querier explicitly so the service layer controls
// transaction boundaries.
func NewPgPromptRepository(logger *zap.Logger) interfaces.PromptRepository {
	return &pgPromptRepository{
		logger: logger.Named("PgPromptRepo"),
	}
}

func (r *pgPromptRepository) GetBySlug(ctx context.Context, querier interfaces.DBTX, slug string) (*models.Prompt, error) {
	prompt := &models.Prompt{}
	err := querier.QueryRow(ctx, getPromptBySlugQuery, slug).Scan(
		&prompt.ID, &prompt.Slug, &prompt.Name, &prompt.Content, &prompt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Prompt not found by slug", zap.String("slug", slug))
			return nil, models.ErrPromptNotFound
		}
		r.logger.Error("Failed to get prompt by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to get prompt by slug: %w", err)
	}
	return prompt, nil
}

func (r *pgPromptRepository) GetByID(ctx context.Context, querier interfaces.DBTX, id uuid.UUID) (*models.Prompt, error) {
	prompt := &models.Prompt{}
	err := querier.QueryRow(ctx, getPromptByIDQuery, id).Scan(
		&prompt.ID, &prompt.Slug, &prompt.Name, &prompt.Content, &prompt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Prompt not found by id", zap.String("id", id.String()))
			return nil, models.ErrPromptNotFound
		}
		r.logger.Error("Failed to get prompt by id", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get prompt by id: %w", err)
	}
	return prompt, nil
}

func (r *pgPromptRepository) ListAll(ctx context.Context, querier interfaces.DBTX) ([]*models.Prompt, error) {
	prompts := make([]*models.Prompt, 0)
	if err := pgxscan.Select(ctx, querier, &prompts, listPromptsQuery); err != nil {
		r.logger.Error("Failed to list prompts", zap.Error(err))
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	return prompts, nil
}

func (r *pgPromptRepository) GetVersionsByPromptID(ctx context.Context, querier interfaces.DBTX, promptID uuid.UUID) ([]*models.PromptVersion, error) {
	versions := make([]*models.PromptVersion, 0)
	if err := pgxscan.Select(ctx, querier, &versions, getVersionsByPromptIDQuery, promptID); err != nil {
		r.logger.Error("Failed to get prompt versions", zap.Error(err), zap.String("promptID", promptID.String()))
		return nil, fmt.Errorf("failed to get prompt versions: %w", err)
	}
	return versions, nil
}

func (r *pgPromptRepository) GetVersionByID(ctx context.Context, querier interfaces.DBTX, versionID uuid.UUID) (*models.PromptVersion, error) {
	version := &models.PromptVersion{}
	err := querier.QueryRow(ctx, getVersionByIDQuery, versionID).Scan(
		&version.ID, &version.PromptID, &version.VersionNumber, &version.Content,
		&version.CommitMessage, &version.IsActive, &version.CreatedAt, &version.CreatedByID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Prompt version not found", zap.String("versionID", versionID.String()))
			return nil, models.ErrVersionNotFound
		}
		r.logger.Error("Failed to get prompt version by id", zap.Error(err), zap.String("versionID", versionID.String()))
		return nil, fmt.Errorf("failed to get prompt version by id: %w", err)
	}
	return version, nil
}

func (r *pgPromptRepository) CreatePrompt(ctx context.Context, querier interfaces.DBTX, prompt *models.Prompt) error {
	err := querier.QueryRow(ctx, createPromptQuery, prompt.Slug, prompt.Name, prompt.Content).Scan(
		&prompt.ID, &prompt.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			r.logger.Warn("Attempted to create prompt with duplicate slug", zap.String("slug", prompt.Slug))
			return models.ErrPromptConflict
		}
		r.logger.Error("Failed to create prompt", zap.Error(err), zap.String("slug", prompt.Slug))
		return fmt.Errorf("failed to create prompt: %w", err)
	}
	r.logger.Info("Prompt created", zap.String("id", prompt.ID.String()), zap.String("slug", prompt.Slug))
	return nil
}

func (r *pgPromptRepository) UpdatePrompt(ctx context.Context, querier interfaces.DBTX, id uuid.UUID, slug, name, content string) error {
	commandTag, err := querier.Exec(ctx, updatePromptQuery, slug, name, content, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Prompt update collided on slug", zap.String("id", id.String()), zap.String("slug", slug))
			return models.ErrPromptConflict
		}
		r.logger.Error("Failed to update prompt", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrPromptNotFound
	}
	return nil
}

func (r *pgPromptRepository) UpdateContent(ctx context.Context, querier interfaces.DBTX, id uuid.UUID, content string) error {
	commandTag, err := querier.Exec(ctx, updateContentQuery, content, id)
	if err != nil {
		r.logger.Error("Failed to update prompt content", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to update prompt content: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrPromptNotFound
	}
	return nil
}

func (r *pgPromptRepository) MaxVersionNumber(ctx context.Context, querier interfaces.DBTX, promptID uuid.UUID) (int, error) {
	var maxVersion int
	err := querier.QueryRow(ctx, maxVersionNumberQuery, promptID).Scan(&maxVersion)
	if err != nil {
		r.logger.Error("Failed to get max version number", zap.Error(err), zap.String("promptID", promptID.String()))
		return 0, fmt.Errorf("failed to get max version number: %w", err)
	}
	return maxVersion, nil
}

func (r *pgPromptRepository) DeactivateVersions(ctx context.Context, querier interfaces.DBTX, promptID uuid.UUID) error {
	if _, err := querier.Exec(ctx, deactivateVersionsQuery, promptID); err != nil {
		r.logger.Error("Failed to deactivate prompt versions", zap.Error(err), zap.String("promptID", promptID.String()))
		return fmt.Errorf("failed to deactivate prompt versions: %w", err)
	}
	return nil
}

func (r *pgPromptRepository) InsertVersion(ctx context.Context, querier interfaces.DBTX, version *models.PromptVersion) error {
	err := querier.QueryRow(ctx, insertVersionQuery,
		version.PromptID, version.VersionNumber, version.Content,
		version.CommitMessage, version.IsActive, version.CreatedByID,
	).Scan(&version.ID, &version.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Concurrent commit raced us to this version number.
			r.logger.Warn("Version number collision on insert",
				zap.String("promptID", version.PromptID.String()),
				zap.Int("versionNumber", version.VersionNumber))
			return models.ErrPromptConflict
		}
		r.logger.Error("Failed to insert prompt version", zap.Error(err),
			zap.String("promptID", version.PromptID.String()),
			zap.Int("versionNumber", version.VersionNumber))
		return fmt.Errorf("failed to insert prompt version: %w", err)
	}
	r.logger.Info("Prompt version inserted",
		zap.String("promptID", version.PromptID.String()),
		zap.Int("versionNumber", version.VersionNumber))
	return nil
}

func (r *pgPromptRepository) SetVersionActive(ctx context.Context, querier interfaces.DBTX, versionID uuid.UUID) error {
	commandTag, err := querier.Exec(ctx, setVersionActiveQuery, versionID)
	if err != nil {
		r.logger.Error("Failed to activate prompt version", zap.Error(err), zap.String("versionID", versionID.String()))
		return fmt.Errorf("failed to activate prompt version: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrVersionNotFound
	}
	return nil
}
