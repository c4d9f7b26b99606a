package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prompt-server/internal/interfaces"
)

// MockTxManager is a mock type for the TxManager type. By default it invokes
// fn with a nil querier so repository mocks see the same transaction marker.
type MockTxManager struct {
	mock.Mock
}

// WithTransaction provides a mock function with given fields: ctx, fn
func (_m *MockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.DBTX) error) error {
	ret := _m.Called(ctx, fn)

	if rf, ok := ret.Get(0).(func(context.Context, func(context.Context, interfaces.DBTX) error) error); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}

// ExpectPassthrough registers a catch-all expectation that executes the
// transactional function with a nil querier, mimicking a committed
// transaction when fn succeeds and a rollback when it fails.
func (_m *MockTxManager) ExpectPassthrough() *mock.Call {
	return _m.On("WithTransaction", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(context.Context, interfaces.DBTX) error) error {
			return fn(ctx, nil)
		})
}

// NewMockTxManager creates a new instance of MockTxManager. It also registers a testing interface on the mock.
func NewMockTxManager(t interface {
	mock.TestingT
	Helper()
}) *MockTxManager {
	m := &MockTxManager{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.TxManager = (*MockTxManager)(nil)
