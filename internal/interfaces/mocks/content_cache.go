package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"prompt-server/internal/interfaces"
)

// MockContentCache is a mock type for the ContentCache type
type MockContentCache struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, key
func (_m *MockContentCache) Get(ctx context.Context, key string) (string, error) {
	ret := _m.Called(ctx, key)
	return ret.String(0), ret.Error(1)
}

// Set provides a mock function with given fields: ctx, key, value, ttl
func (_m *MockContentCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	ret := _m.Called(ctx, key, value, ttl)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, key
func (_m *MockContentCache) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

// NewMockContentCache creates a new instance of MockContentCache. It also registers a testing interface on the mock.
func NewMockContentCache(t interface {
	mock.TestingT
	Helper()
}) *MockContentCache {
	m := &MockContentCache{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.ContentCache = (*MockContentCache)(nil)
