package mocks

import (
	model "github.com/dtroode/blackjack-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// TokenManager is a mock type for the TokenManager type
type TokenManager struct {
	mock.Mock
}

// Generate provides a mock function with given fields: subject
func (_m *TokenManager) Generate(subject model.SessionSubject) (string, model.SessionClaims, error) {
	ret := _m.Called(subject)

	var r1 model.SessionClaims
	if v := ret.Get(1); v != nil {
		r1 = v.(model.SessionClaims)
	}

	return ret.String(0), r1, ret.Error(2)
}

// Parse provides a mock function with given fields: token
func (_m *TokenManager) Parse(token string) (model.SessionClaims, error) {
	ret := _m.Called(token)

	var r0 model.SessionClaims
	if v := ret.Get(0); v != nil {
		r0 = v.(model.SessionClaims)
	}

	return r0, ret.Error(1)
}

// NewTokenManager creates a new instance of TokenManager. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewTokenManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenManager {
	mock := &TokenManager{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
