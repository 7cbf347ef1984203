package verifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/blackjack-server/internal/mocks"
	"github.com/dtroode/blackjack-server/internal/model"
)

func TestPassword_Verify(t *testing.T) {
	cred := model.Credential{Email: "bob@example.com", Password: "hunter22"}
	identity := model.Identity{ID: uuid.New(), Email: cred.Email, Confirmed: true}
	session := model.SessionToken{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("accepted", func(t *testing.T) {
		store := mocks.NewIdentityStore(t)
		store.On("SignIn", mock.Anything, cred).Return(identity, session, nil)

		gotIdentity, gotSession, err := NewPassword(store).Verify(context.Background(), cred)
		require.NoError(t, err)
		assert.Equal(t, identity, gotIdentity)
		assert.Equal(t, session, gotSession)
	})

	t.Run("unknown email", func(t *testing.T) {
		store := mocks.NewIdentityStore(t)
		store.On("SignIn", mock.Anything, cred).Return(model.Identity{}, model.SessionToken{}, model.ErrNotFound)

		_, _, err := NewPassword(store).Verify(context.Background(), cred)
		var authErr *model.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, model.AuthInvalidCredentials, authErr.Kind)
	})

	t.Run("wrong password", func(t *testing.T) {
		store := mocks.NewIdentityStore(t)
		store.On("SignIn", mock.Anything, cred).
			Return(model.Identity{}, model.SessionToken{}, model.NewAuthError(model.AuthInvalidCredentials, nil))

		_, _, err := NewPassword(store).Verify(context.Background(), cred)
		var authErr *model.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, model.AuthInvalidCredentials, authErr.Kind)
	})

	t.Run("store unavailable", func(t *testing.T) {
		store := mocks.NewIdentityStore(t)
		store.On("SignIn", mock.Anything, cred).Return(model.Identity{}, model.SessionToken{}, model.ErrStoreUnavailable)

		_, _, err := NewPassword(store).Verify(context.Background(), cred)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrStoreUnavailable))
		var authErr *model.AuthError
		assert.False(t, errors.As(err, &authErr))
	})
}
