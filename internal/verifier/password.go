package verifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/blackjack-server/internal/model"
)

// Password verifies email and password credentials by delegating to the
// identity store's sign-in. Hashing stays with the store.
type Password struct {
	identities model.IdentityStore
}

// NewPassword creates a new Password verifier.
func NewPassword(identities model.IdentityStore) *Password {
	return &Password{identities: identities}
}

// Verify signs in with credential. Rejected credentials come back as an
// AuthError of kind AuthInvalidCredentials; store faults are returned wrapped.
func (v *Password) Verify(ctx context.Context, credential model.Credential) (model.Identity, model.SessionToken, error) {
	identity, session, err := v.identities.SignIn(ctx, credential)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Identity{}, model.SessionToken{}, model.NewAuthError(model.AuthInvalidCredentials, err)
		}
		var authErr *model.AuthError
		if errors.As(err, &authErr) {
			return model.Identity{}, model.SessionToken{}, err
		}
		return model.Identity{}, model.SessionToken{}, fmt.Errorf("failed to sign in: %w", err)
	}

	return identity, session, nil
}
