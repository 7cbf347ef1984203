package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/blackjack-server/internal/mocks"
	"github.com/dtroode/blackjack-server/internal/model"
)

func TestUniquenessChecker_CheckUsername(t *testing.T) {
	profiles := mocks.NewProfileStore(t)
	checker := NewUniquenessChecker(profiles)

	profiles.On("FindByUsername", mock.Anything, "free").Return(nil, model.ErrNotFound)
	profiles.On("FindByUsername", mock.Anything, "taken").Return(model.Player{ID: uuid.New()}, nil)
	profiles.On("FindByUsername", mock.Anything, "down").Return(nil, model.ErrStoreUnavailable)

	require.NoError(t, checker.CheckUsername(context.Background(), "free"))

	var conflict *model.ConflictError
	require.ErrorAs(t, checker.CheckUsername(context.Background(), "taken"), &conflict)
	assert.Equal(t, model.ConflictUsernameTaken, conflict.Kind)
	assert.Equal(t, "taken", conflict.Value)

	require.ErrorIs(t, checker.CheckUsername(context.Background(), "down"), model.ErrStoreUnavailable)
}

func TestUniquenessChecker_FindByWallet(t *testing.T) {
	profiles := mocks.NewProfileStore(t)
	checker := NewUniquenessChecker(profiles)
	player := model.NewPlayer(uuid.New(), "satoshi", testWalletLower)

	profiles.On("FindByWalletAddress", mock.Anything, testWalletLower).Return(player, nil)
	profiles.On("FindByWalletAddress", mock.Anything, "0xnone").Return(nil, model.ErrNotFound)

	got, found, err := checker.FindByWallet(context.Background(), testWalletLower)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, player.ID, got.ID)

	_, found, err = checker.FindByWallet(context.Background(), "0xnone")
	require.NoError(t, err)
	assert.False(t, found)
}
