package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prompt-server/internal/interfaces"
)

// MockPromptEventPublisher is a mock type for the PromptEventPublisher type
type MockPromptEventPublisher struct {
	mock.Mock
}

// PublishPromptEvent provides a mock function with given fields: ctx, event
func (_m *MockPromptEventPublisher) PublishPromptEvent(ctx context.Context, event interfaces.PromptEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// NewMockPromptEventPublisher creates a new instance of MockPromptEventPublisher. It also registers a testing interface on the mock.
func NewMockPromptEventPublisher(t interface {
	mock.TestingT
	Helper()
}) *MockPromptEventPublisher {
	m := &MockPromptEventPublisher{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.PromptEventPublisher = (*MockPromptEventPublisher)(nil)
