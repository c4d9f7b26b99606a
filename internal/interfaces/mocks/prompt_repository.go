package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"prompt-server/internal/interfaces"
	"prompt-server/internal/models"
)

// MockPromptRepository is a mock type for the PromptRepository type
type MockPromptRepository struct {
	mock.Mock
}

// GetBySlug provides a mock function with given fields: ctx, querier, slug
func (_m *MockPromptRepository) GetBySlug(ctx context.Context, querier interfaces.DBTX, slug string) (*models.Prompt, error) {
	ret := _m.Called(ctx, querier, slug)

	var r0 *models.Prompt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Prompt)
	}
	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, querier, id
func (_m *MockPromptRepository) GetByID(ctx context.Context, querier interfaces.DBTX, id uuid.UUID) (*models.Prompt, error) {
	ret := _m.Called(ctx, querier, id)

	var r0 *models.Prompt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Prompt)
	}
	return r0, ret.Error(1)
}

// ListAll provides a mock function with given fields: ctx, querier
func (_m *MockPromptRepository) ListAll(ctx context.Context, querier interfaces.DBTX) ([]*models.Prompt, error) {
	ret := _m.Called(ctx, querier)

	var r0 []*models.Prompt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Prompt)
	}
	return r0, ret.Error(1)
}

// GetVersionsByPromptID provides a mock function with given fields: ctx, querier, promptID
func (_m *MockPromptRepository) GetVersionsByPromptID(ctx context.Context, querier interfaces.DBTX, promptID uuid.UUID) ([]*models.PromptVersion, error) {
	ret := _m.Called(ctx, querier, promptID)

	var r0 []*models.PromptVersion
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.PromptVersion)
	}
	return r0, ret.Error(1)
}

// GetVersionByID provides a mock function with given fields: ctx, querier, versionID
func (_m *MockPromptRepository) GetVersionByID(ctx context.Context, querier interfaces.DBTX, versionID uuid.UUID) (*models.PromptVersion, error) {
	ret := _m.Called(ctx, querier, versionID)

	var r0 *models.PromptVersion
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PromptVersion)
	}
	return r0, ret.Error(1)
}

// CreatePrompt provides a mock function with given fields: ctx, querier, prompt
func (_m *MockPromptRepository) CreatePrompt(ctx context.Context, querier interfaces.DBTX, prompt *models.Prompt) error {
	ret := _m.Called(ctx, querier, prompt)
	return ret.Error(0)
}

// UpdatePrompt provides a mock function with given fields: ctx, querier, id, slug, name, content
func (_m *MockPromptRepository) UpdatePrompt(ctx context.Context, querier interfaces.DBTX, id uuid.UUID, slug, name, content string) error {
	ret := _m.Called(ctx, querier, id, slug, name, content)
	return ret.Error(0)
}

// UpdateContent provides a mock function with given fields: ctx, querier, id, content
func (_m *MockPromptRepository) UpdateContent(ctx context.Context, querier interfaces.DBTX, id uuid.UUID, content string) error {
	ret := _m.Called(ctx, querier, id, content)
	return ret.Error(0)
}

// MaxVersionNumber provides a mock function with given fields: ctx, querier, promptID
func (_m *MockPromptRepository) MaxVersionNumber(ctx context.Context, querier interfaces.DBTX, promptID uuid.UUID) (int, error) {
	ret := _m.Called(ctx, querier, promptID)
	return ret.Get(0).(int), ret.Error(1)
}

// DeactivateVersions provides a mock function with given fields: ctx, querier, promptID
func (_m *MockPromptRepository) DeactivateVersions(ctx context.Context, querier interfaces.DBTX, promptID uuid.UUID) error {
	ret := _m.Called(ctx, querier, promptID)
	return ret.Error(0)
}

// InsertVersion provides a mock function with given fields: ctx, querier, version
func (_m *MockPromptRepository) InsertVersion(ctx context.Context, querier interfaces.DBTX, version *models.PromptVersion) error {
	ret := _m.Called(ctx, querier, version)
	return ret.Error(0)
}

// SetVersionActive provides a mock function with given fields: ctx, querier, versionID
func (_m *MockPromptRepository) SetVersionActive(ctx context.Context, querier interfaces.DBTX, versionID uuid.UUID) error {
	ret := _m.Called(ctx, querier, versionID)
	return ret.Error(0)
}

// NewMockPromptRepository creates a new instance of MockPromptRepository. It also registers a testing interface on the mock.
func NewMockPromptRepository(t interface {
	mock.TestingT
	Helper()
}) *MockPromptRepository {
	m := &MockPromptRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.PromptRepository = (*MockPromptRepository)(nil)
