package mocks

import (
	context "context"
	time "time"

	mock "github.com/stretchr/testify/mock"
)

// ChallengeStore is a mock type for the ChallengeStore type
type ChallengeStore struct {
	mock.Mock
}

// Put provides a mock function with given fields: ctx, nonce, address, ttl
func (_m *ChallengeStore) Put(ctx context.Context, nonce string, address string, ttl time.Duration) error {
	ret := _m.Called(ctx, nonce, address, ttl)

	return ret.Error(0)
}

// Consume provides a mock function with given fields: ctx, nonce
func (_m *ChallengeStore) Consume(ctx context.Context, nonce string) (string, error) {
	ret := _m.Called(ctx, nonce)

	return ret.String(0), ret.Error(1)
}

// NewChallengeStore creates a new instance of ChallengeStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewChallengeStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ChallengeStore {
	mock := &ChallengeStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
