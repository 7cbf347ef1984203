package mocks

import (
	context "context"

	model "github.com/dtroode/blackjack-server/internal/model"
	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// IdentityStore is a mock type for the IdentityStore type
type IdentityStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, credential
func (_m *IdentityStore) Create(ctx context.Context, credential model.Credential) (model.Identity, error) {
	ret := _m.Called(ctx, credential)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	var r0 model.Identity
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.Credential) (model.Identity, error)); ok {
		return rf(ctx, credential)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.Credential) model.Identity); ok {
		r0 = rf(ctx, credential)
	} else {
		r0 = ret.Get(0).(model.Identity)
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.Credential) error); ok {
		r1 = rf(ctx, credential)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Delete provides a mock function with given fields: ctx, id
func (_m *IdentityStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SignIn provides a mock function with given fields: ctx, credential
func (_m *IdentityStore) SignIn(ctx context.Context, credential model.Credential) (model.Identity, model.SessionToken, error) {
	ret := _m.Called(ctx, credential)

	if len(ret) == 0 {
		panic("no return value specified for SignIn")
	}

	var r0 model.Identity
	var r1 model.SessionToken
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, model.Credential) (model.Identity, model.SessionToken, error)); ok {
		return rf(ctx, credential)
	}
	r0 = ret.Get(0).(model.Identity)
	r1 = ret.Get(1).(model.SessionToken)
	r2 = ret.Error(2)

	return r0, r1, r2
}

// NewIdentityStore creates a new instance of IdentityStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewIdentityStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *IdentityStore {
	mock := &IdentityStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
