package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"prompt-server/internal/interfaces"
	"prompt-server/internal/models"
)

// MockTokenRepository is a mock type for the TokenRepository type
type MockTokenRepository struct {
	mock.Mock
}

// SetToken provides a mock function with given fields: ctx, userID, td
func (_m *MockTokenRepository) SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error {
	ret := _m.Called(ctx, userID, td)
	return ret.Error(0)
}

// GetUserID provides a mock function with given fields: ctx, tokenUUID
func (_m *MockTokenRepository) GetUserID(ctx context.Context, tokenUUID string) (uuid.UUID, error) {
	ret := _m.Called(ctx, tokenUUID)

	var r0 uuid.UUID
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(uuid.UUID)
	}
	return r0, ret.Error(1)
}

// DeleteTokens provides a mock function with given fields: ctx, uuids
func (_m *MockTokenRepository) DeleteTokens(ctx context.Context, uuids ...string) (int64, error) {
	args := make([]interface{}, 0, len(uuids)+1)
	args = append(args, ctx)
	for _, u := range uuids {
		args = append(args, u)
	}
	ret := _m.Called(args...)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewMockTokenRepository creates a new instance of MockTokenRepository. It also registers a testing interface on the mock.
func NewMockTokenRepository(t interface {
	mock.TestingT
	Helper()
}) *MockTokenRepository {
	m := &MockTokenRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.TokenRepository = (*MockTokenRepository)(nil)
