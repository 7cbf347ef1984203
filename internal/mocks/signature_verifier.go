package mocks

import mock "github.com/stretchr/testify/mock"

// SignatureVerifier is a mock type for the SignatureVerifier type
type SignatureVerifier struct {
	mock.Mock
}

// Verify provides a mock function with given fields: address, message, signature
func (_m *SignatureVerifier) Verify(address string, message string, signature string) (bool, error) {
	ret := _m.Called(address, message, signature)

	if len(ret) == 0 {
		panic("no return value specified for Verify")
	}

	return ret.Bool(0), ret.Error(1)
}

// NewSignatureVerifier creates a new instance of SignatureVerifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewSignatureVerifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *SignatureVerifier {
	mock := &SignatureVerifier{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
