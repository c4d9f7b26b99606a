package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prompt-server/internal/models"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPgPromptRepository_GetBySlug(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgPromptRepository(zap.NewNop())
	id := uuid.New()
	content := "Hello"
	now := time.Now()

	mock.ExpectQuery(getPromptBySlugQuery).
		WithArgs("greeting").
		WillReturnRows(pgxmock.NewRows([]string{"id", "slug", "name", "content", "created_at"}).
			AddRow(id, "greeting", "Greeting", &content, now))

	prompt, err := repo.GetBySlug(context.Background(), mock, "greeting")

	require.NoError(t, err)
	assert.Equal(t, id, prompt.ID)
	assert.Equal(t, "greeting", prompt.Slug)
	require.NotNil(t, prompt.Content)
	assert.Equal(t, "Hello", *prompt.Content)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgPromptRepository_GetBySlug_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgPromptRepository(zap.NewNop())

	mock.ExpectQuery(getPromptBySlugQuery).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetBySlug(context.Background(), mock, "ghost")

	assert.ErrorIs(t, err, models.ErrPromptNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgPromptRepository_CreatePrompt_DuplicateSlug(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgPromptRepository(zap.NewNop())
	content := "Hello"

	mock.ExpectQuery(createPromptQuery).
		WithArgs("greeting", "Greeting", &content).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "prompts_slug_key"})

	err := repo.CreatePrompt(context.Background(), mock, &models.Prompt{
		Slug: "greeting", Name: "Greeting", Content: &content,
	})

	assert.ErrorIs(t, err, models.ErrPromptConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgPromptRepository_InsertVersion_NumberCollision(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgPromptRepository(zap.NewNop())
	promptID := uuid.New()

	mock.ExpectQuery(insertVersionQuery).
		WithArgs(promptID, 3, "content", "msg", true, (*uuid.UUID)(nil)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_prompt_version_number"})

	err := repo.InsertVersion(context.Background(), mock, &models.PromptVersion{
		PromptID:      promptID,
		VersionNumber: 3,
		Content:       "content",
		CommitMessage: "msg",
		IsActive:      true,
	})

	assert.ErrorIs(t, err, models.ErrPromptConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgPromptRepository_InsertVersion_FillsGeneratedFields(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgPromptRepository(zap.NewNop())
	promptID := uuid.New()
	versionID := uuid.New()
	authorID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(insertVersionQuery).
		WithArgs(promptID, 1, "content", "Initial", true, &authorID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(versionID, now))

	version := &models.PromptVersion{
		PromptID:      promptID,
		VersionNumber: 1,
		Content:       "content",
		CommitMessage: "Initial",
		IsActive:      true,
		CreatedByID:   &authorID,
	}
	err := repo.InsertVersion(context.Background(), mock, version)

	require.NoError(t, err)
	assert.Equal(t, versionID, version.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgPromptRepository_UpdatePrompt_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgPromptRepository(zap.NewNop())
	id := uuid.New()

	mock.ExpectExec(updatePromptQuery).
		WithArgs("slug", "Name", "content", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdatePrompt(context.Background(), mock, id, "slug", "Name", "content")

	assert.ErrorIs(t, err, models.ErrPromptNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgPromptRepository_MaxVersionNumber_Empty(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgPromptRepository(zap.NewNop())
	promptID := uuid.New()

	mock.ExpectQuery(maxVersionNumberQuery).
		WithArgs(promptID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(0))

	maxVersion, err := repo.MaxVersionNumber(context.Background(), mock, promptID)

	require.NoError(t, err)
	assert.Equal(t, 0, maxVersion)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgPromptRepository_SetVersionActive_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgPromptRepository(zap.NewNop())
	versionID := uuid.New()

	mock.ExpectExec(setVersionActiveQuery).
		WithArgs(versionID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetVersionActive(context.Background(), mock, versionID)

	assert.ErrorIs(t, err, models.ErrVersionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgPromptRepository_GetVersionsByPromptID_Ordering(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgPromptRepository(zap.NewNop())
	promptID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "prompt_id", "version_number", "content", "commit_message", "is_active", "created_at", "created_by_id"}).
		AddRow(uuid.New(), promptID, 2, "v2", "second", true, now, (*uuid.UUID)(nil)).
		AddRow(uuid.New(), promptID, 1, "v1", "first", false, now, (*uuid.UUID)(nil))

	mock.ExpectQuery(getVersionsByPromptIDQuery).
		WithArgs(promptID).
		WillReturnRows(rows)

	versions, err := repo.GetVersionsByPromptID(context.Background(), mock, promptID)

	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 2, versions[0].VersionNumber)
	assert.True(t, versions[0].IsActive)
	assert.False(t, versions[1].IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}
