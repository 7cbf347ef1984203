package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/blackjack-server/internal/mocks"
	"github.com/dtroode/blackjack-server/internal/model"
	"github.com/dtroode/blackjack-server/internal/testutil"
)

type provisionerFixture struct {
	identities *mocks.IdentityStore
	profiles   *mocks.ProfileStore
	states     []SagaState
	p          *Provisioner
}

func newProvisionerFixture(t *testing.T) *provisionerFixture {
	f := &provisionerFixture{
		identities: mocks.NewIdentityStore(t),
		profiles:   mocks.NewProfileStore(t),
	}
	f.p = NewProvisioner(f.identities, f.profiles, testutil.MakeNoopLogger(),
		WithStateObserver(func(s SagaState) { f.states = append(f.states, s) }))
	return f
}

func (f *provisionerFixture) provision(ctx context.Context, req ProvisionRequest) (ProvisionResult, error) {
	ctx, saga := f.p.Start(ctx, req.Principal.Provenance)
	return f.p.Provision(ctx, saga, req)
}

func echoInsert(_ context.Context, p model.Player) (model.Player, error) {
	return p, nil
}

func passwordRequest() ProvisionRequest {
	return ProvisionRequest{
		Principal: model.Principal{Provenance: model.ProvenancePassword, Email: "alice@example.com", Password: "secret1"},
		Username:  "alice",
	}
}

func TestProvision_PasswordSuccess(t *testing.T) {
	f := newProvisionerFixture(t)
	identity := model.Identity{ID: uuid.New(), Email: "alice@example.com", Confirmed: true}
	cred := model.Credential{Email: "alice@example.com", Password: "secret1"}
	token := model.SessionToken{AccessToken: "tok"}

	f.profiles.On("FindByUsername", mock.Anything, "alice").Return(nil, model.ErrNotFound).Once()
	f.identities.On("Create", mock.Anything, cred).Return(identity, nil).Once()
	f.identities.On("SignIn", mock.Anything, cred).Return(identity, token, nil).Once()
	f.profiles.On("Insert", mock.Anything, mock.AnythingOfType("model.Player")).Return(echoInsert).Once()

	res, err := f.provision(context.Background(), passwordRequest())
	require.NoError(t, err)

	assert.Equal(t, identity, res.Identity)
	require.NotNil(t, res.Session)
	assert.Equal(t, "tok", res.Session.AccessToken)

	player := res.Player
	require.NotNil(t, player.UserID)
	assert.Equal(t, identity.ID, *player.UserID)
	assert.Equal(t, "alice", player.Username)
	assert.Nil(t, player.WalletAddress)
	assert.True(t, player.Bankroll.Equal(model.StartingBankroll))
	assert.Zero(t, player.TotalHandsPlayed)
	assert.Zero(t, player.HandsWon)
	assert.Zero(t, player.HandsLost)
	assert.True(t, player.BiggestWin.IsZero())

	assert.Equal(t, []SagaState{
		StateValidating,
		StateCheckingUniqueness,
		StateCreatingIdentity,
		StateCreatingProfile,
		StateSucceeded,
	}, f.states)
}

func TestProvision_SignInFailureIsNotFatal(t *testing.T) {
	f := newProvisionerFixture(t)
	identity := model.Identity{ID: uuid.New()}

	f.profiles.On("FindByUsername", mock.Anything, "alice").Return(nil, model.ErrNotFound)
	f.identities.On("Create", mock.Anything, mock.Anything).Return(identity, nil)
	f.identities.On("SignIn", mock.Anything, mock.Anything).Return(model.Identity{}, model.SessionToken{}, errors.New("auth service hiccup"))
	f.profiles.On("Insert", mock.Anything, mock.Anything).Return(echoInsert)

	res, err := f.provision(context.Background(), passwordRequest())
	require.NoError(t, err)
	assert.Nil(t, res.Session)
	assert.Equal(t, "alice", res.Player.Username)
}

func TestProvision_WalletUsesSyntheticCredential(t *testing.T) {
	f := newProvisionerFixture(t)
	const addr = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	identity := model.Identity{ID: uuid.New()}

	f.profiles.On("FindByUsername", mock.Anything, "satoshi").Return(nil, model.ErrNotFound)
	f.identities.On("Create", mock.Anything, mock.MatchedBy(func(c model.Credential) bool {
		_, err := uuid.Parse(c.Password)
		return c.Email == addr+"@wallet.blackjack" && err == nil
	})).Return(identity, nil).Once()
	f.profiles.On("Insert", mock.Anything, mock.MatchedBy(func(p model.Player) bool {
		return p.WalletAddress != nil && *p.WalletAddress == addr
	})).Return(echoInsert).Once()

	res, err := f.provision(context.Background(), ProvisionRequest{
		Principal: model.Principal{Provenance: model.ProvenanceWallet, WalletAddress: addr},
		Username:  "satoshi",
	})
	require.NoError(t, err)
	assert.Nil(t, res.Session)
	f.identities.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything)
}

func TestProvision_UsernameTakenBeforeAnyWrite(t *testing.T) {
	f := newProvisionerFixture(t)
	f.profiles.On("FindByUsername", mock.Anything, "alice").Return(model.Player{ID: uuid.New(), Username: "alice"}, nil)

	_, err := f.provision(context.Background(), passwordRequest())

	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, model.ConflictUsernameTaken, conflict.Kind)
	f.identities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, StateFailed, f.states[len(f.states)-1])
}

func TestProvision_IdentityCreationFailed(t *testing.T) {
	tests := []struct {
		name       string
		createErr  error
		wantKind   model.ConflictKind
		wantStore  bool
		provenance model.Provenance
	}{
		{name: "duplicate email", createErr: fmt.Errorf("%w: alice@example.com", model.ErrDuplicateCredential), wantKind: model.ConflictEmailTaken, provenance: model.ProvenancePassword},
		{name: "duplicate wallet identity", createErr: model.ErrDuplicateCredential, wantKind: model.ConflictWalletAlreadyLinked, provenance: model.ProvenanceWallet},
		{name: "store down", createErr: fmt.Errorf("insert: %w", model.ErrStoreUnavailable), wantStore: true, provenance: model.ProvenancePassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProvisionerFixture(t)
			f.profiles.On("FindByUsername", mock.Anything, "alice").Return(nil, model.ErrNotFound)
			f.identities.On("Create", mock.Anything, mock.Anything).Return(model.Identity{}, tt.createErr)

			req := passwordRequest()
			if tt.provenance == model.ProvenanceWallet {
				req.Principal = model.Principal{Provenance: model.ProvenanceWallet, WalletAddress: "0xabc"}
			}
			_, err := f.provision(context.Background(), req)

			var pErr *model.ProvisioningError
			require.ErrorAs(t, err, &pErr)
			assert.Equal(t, model.IdentityCreationFailed, pErr.Kind)

			if tt.wantStore {
				assert.ErrorIs(t, err, model.ErrStoreUnavailable)
			} else {
				var conflict *model.ConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Equal(t, tt.wantKind, conflict.Kind)
			}
			f.identities.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			f.profiles.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestProvision_ProfileFailureCompensatesOnce(t *testing.T) {
	f := newProvisionerFixture(t)
	identity := model.Identity{ID: uuid.New()}

	f.profiles.On("FindByUsername", mock.Anything, "alice").Return(nil, model.ErrNotFound)
	f.identities.On("Create", mock.Anything, mock.Anything).Return(identity, nil)
	f.identities.On("SignIn", mock.Anything, mock.Anything).Return(identity, model.SessionToken{}, nil)
	f.profiles.On("Insert", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("insert player: %w", model.ErrStoreUnavailable))
	f.identities.On("Delete", mock.Anything, identity.ID).Return(nil).Once()

	_, err := f.provision(context.Background(), passwordRequest())

	var pErr *model.ProvisioningError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, model.ProfileCreationFailed, pErr.Kind)
	assert.False(t, pErr.CompensationFailed)
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	f.identities.AssertNumberOfCalls(t, "Delete", 1)

	assert.Equal(t, []SagaState{
		StateValidating,
		StateCheckingUniqueness,
		StateCreatingIdentity,
		StateCreatingProfile,
		StateCompensatingThenFailed,
		StateFailed,
	}, f.states)
}

func TestProvision_CompensationFailureIsReported(t *testing.T) {
	f := newProvisionerFixture(t)
	identity := model.Identity{ID: uuid.New()}
	insertErr := errors.New("check constraint violated")

	f.profiles.On("FindByUsername", mock.Anything, "alice").Return(nil, model.ErrNotFound)
	f.identities.On("Create", mock.Anything, mock.Anything).Return(identity, nil)
	f.identities.On("SignIn", mock.Anything, mock.Anything).Return(identity, model.SessionToken{}, nil)
	f.profiles.On("Insert", mock.Anything, mock.Anything).Return(nil, insertErr)
	f.identities.On("Delete", mock.Anything, identity.ID).Return(errors.New("identity store down")).Once()

	_, err := f.provision(context.Background(), passwordRequest())

	var pErr *model.ProvisioningError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, model.ProfileCreationFailed, pErr.Kind)
	assert.True(t, pErr.CompensationFailed)
	assert.ErrorIs(t, err, insertErr)
	f.identities.AssertNumberOfCalls(t, "Delete", 1)
}

func TestProvision_InsertRaceBecomesConflict(t *testing.T) {
	tests := []struct {
		field string
		want  model.ConflictKind
	}{
		{field: "username", want: model.ConflictUsernameTaken},
		{field: "wallet_address", want: model.ConflictWalletAlreadyLinked},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := newProvisionerFixture(t)
			identity := model.Identity{ID: uuid.New()}

			f.profiles.On("FindByUsername", mock.Anything, "alice").Return(nil, model.ErrNotFound)
			f.identities.On("Create", mock.Anything, mock.Anything).Return(identity, nil)
			f.identities.On("SignIn", mock.Anything, mock.Anything).Return(identity, model.SessionToken{}, nil)
			f.profiles.On("Insert", mock.Anything, mock.Anything).Return(nil, &model.UniqueViolationError{Field: tt.field})
			f.identities.On("Delete", mock.Anything, identity.ID).Return(nil).Once()

			_, err := f.provision(context.Background(), passwordRequest())

			var conflict *model.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, tt.want, conflict.Kind)

			var pErr *model.ProvisioningError
			require.ErrorAs(t, err, &pErr)
			assert.Equal(t, model.ProfileCreationFailed, pErr.Kind)
		})
	}
}

func TestProvision_CompensationSurvivesCancelledRequest(t *testing.T) {
	f := newProvisionerFixture(t)
	identity := model.Identity{ID: uuid.New()}
	ctx, cancel := context.WithCancel(context.Background())

	f.profiles.On("FindByUsername", mock.Anything, "alice").Return(nil, model.ErrNotFound)
	f.identities.On("Create", mock.Anything, mock.Anything).Return(identity, nil)
	f.identities.On("SignIn", mock.Anything, mock.Anything).Return(identity, model.SessionToken{}, nil)
	f.profiles.On("Insert", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, context.Canceled)
	f.identities.On("Delete", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), identity.ID).Return(nil).Once()

	_, err := f.provision(ctx, passwordRequest())
	require.ErrorIs(t, err, context.Canceled)
}

func TestProvision_RequiresUsername(t *testing.T) {
	f := newProvisionerFixture(t)

	_, err := f.provision(context.Background(), ProvisionRequest{
		Principal: model.Principal{Provenance: model.ProvenancePassword, Email: "a@b.co", Password: "secret1"},
	})

	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)
}

func TestSaga_IgnoresStatesAfterTerminal(t *testing.T) {
	f := newProvisionerFixture(t)
	_, saga := f.p.Start(context.Background(), model.ProvenanceWallet)

	saga.Succeed()
	saga.Advance(StateCreatingIdentity)
	_ = saga.Fail(errors.New("late"))

	assert.Equal(t, StateSucceeded, saga.State())
	assert.Equal(t, []SagaState{StateValidating, StateSucceeded}, f.states)
}
