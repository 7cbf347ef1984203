package mocks

import (
	context "context"

	model "github.com/dtroode/blackjack-server/internal/model"
	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// ProfileStore is a mock type for the ProfileStore type
type ProfileStore struct {
	mock.Mock
}

func (_m *ProfileStore) player(ret mock.Arguments) (model.Player, error) {
	var r0 model.Player
	if v := ret.Get(0); v != nil {
		r0 = v.(model.Player)
	}
	return r0, ret.Error(1)
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *ProfileStore) FindByID(ctx context.Context, id uuid.UUID) (model.Player, error) {
	return _m.player(_m.Called(ctx, id))
}

// FindByUserID provides a mock function with given fields: ctx, userID
func (_m *ProfileStore) FindByUserID(ctx context.Context, userID uuid.UUID) (model.Player, error) {
	return _m.player(_m.Called(ctx, userID))
}

// FindByUsername provides a mock function with given fields: ctx, username
func (_m *ProfileStore) FindByUsername(ctx context.Context, username string) (model.Player, error) {
	return _m.player(_m.Called(ctx, username))
}

// FindByWalletAddress provides a mock function with given fields: ctx, address
func (_m *ProfileStore) FindByWalletAddress(ctx context.Context, address string) (model.Player, error) {
	return _m.player(_m.Called(ctx, address))
}

// Insert provides a mock function with given fields: ctx, player
func (_m *ProfileStore) Insert(ctx context.Context, player model.Player) (model.Player, error) {
	ret := _m.Called(ctx, player)

	if rf, ok := ret.Get(0).(func(context.Context, model.Player) (model.Player, error)); ok {
		return rf(ctx, player)
	}

	return _m.player(ret)
}

// ListTopByBankroll provides a mock function with given fields: ctx, limit
func (_m *ProfileStore) ListTopByBankroll(ctx context.Context, limit int) ([]model.Player, error) {
	ret := _m.Called(ctx, limit)

	var r0 []model.Player
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.Player)
	}

	return r0, ret.Error(1)
}

// NewProfileStore creates a new instance of ProfileStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewProfileStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProfileStore {
	mock := &ProfileStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
