package mocks

import (
	context "context"

	model "github.com/dtroode/blackjack-server/internal/model"
	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// IdentityRecordStore is a mock type for the IdentityRecordStore type
type IdentityRecordStore struct {
	mock.Mock
}

func (_m *IdentityRecordStore) record(ret mock.Arguments) (model.IdentityRecord, error) {
	var r0 model.IdentityRecord
	if v := ret.Get(0); v != nil {
		r0 = v.(model.IdentityRecord)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, record
func (_m *IdentityRecordStore) Create(ctx context.Context, record model.IdentityRecord) (model.IdentityRecord, error) {
	ret := _m.Called(ctx, record)

	if rf, ok := ret.Get(0).(func(context.Context, model.IdentityRecord) (model.IdentityRecord, error)); ok {
		return rf(ctx, record)
	}

	return _m.record(ret)
}

// GetByEmail provides a mock function with given fields: ctx, email
func (_m *IdentityRecordStore) GetByEmail(ctx context.Context, email string) (model.IdentityRecord, error) {
	return _m.record(_m.Called(ctx, email))
}

// Delete provides a mock function with given fields: ctx, id
func (_m *IdentityRecordStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

// NewIdentityRecordStore creates a new instance of IdentityRecordStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewIdentityRecordStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *IdentityRecordStore {
	mock := &IdentityRecordStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
