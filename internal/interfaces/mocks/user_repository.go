package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"prompt-server/internal/interfaces"
	"prompt-server/internal/models"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

// CreateUser provides a mock function with given fields: ctx, user
func (_m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

// GetUserByEmail provides a mock function with given fields: ctx, email
func (_m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := _m.Called(ctx, email)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}
	return r0, ret.Error(1)
}

// GetUserByID provides a mock function with given fields: ctx, id
func (_m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}
	return r0, ret.Error(1)
}

// UpdateUser provides a mock function with given fields: ctx, id, upd
func (_m *MockUserRepository) UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	ret := _m.Called(ctx, id, upd)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}
	return r0, ret.Error(1)
}

// SoftDeleteUser provides a mock function with given fields: ctx, id
func (_m *MockUserRepository) SoftDeleteUser(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// ListUsers provides a mock function with given fields: ctx, page, pageSize, includeDeleted
func (_m *MockUserRepository) ListUsers(ctx context.Context, page, pageSize int, includeDeleted bool) ([]*models.User, int, error) {
	ret := _m.Called(ctx, page, pageSize, includeDeleted)

	var r0 []*models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.User)
	}
	return r0, ret.Get(1).(int), ret.Error(2)
}

// NewMockUserRepository creates a new instance of MockUserRepository. It also registers a testing interface on the mock.
func NewMockUserRepository(t interface {
	mock.TestingT
	Helper()
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.UserRepository = (*MockUserRepository)(nil)
