package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
	"github.com/dtroode/blackjack-server/internal/validation"
)

// PasswordVerifier signs in with email and password credentials.
type PasswordVerifier interface {
	Verify(ctx context.Context, credential model.Credential) (model.Identity, model.SessionToken, error)
}

// ChallengeConsumer burns the nonce embedded in a signed wallet message.
type ChallengeConsumer interface {
	Consume(ctx context.Context, message, address string) error
}

// AuthOption configures Auth.
type AuthOption func(*Auth)

// WithChallenges makes wallet authentication require a server-issued
// challenge. Without it any signed message is accepted.
func WithChallenges(challenges ChallengeConsumer) AuthOption {
	return func(a *Auth) {
		a.challenges = challenges
	}
}

// Auth runs the password registration, password sign-in and wallet
// authentication flows.
type Auth struct {
	provisioner *Provisioner
	profiles    model.ProfileStore
	passwords   PasswordVerifier
	signatures  model.SignatureVerifier
	challenges  ChallengeConsumer
	sessions    SessionIssuer
	logger      *logger.Logger
}

func NewAuth(
	provisioner *Provisioner,
	profiles model.ProfileStore,
	passwords PasswordVerifier,
	signatures model.SignatureVerifier,
	sessions SessionIssuer,
	logger *logger.Logger,
	opts ...AuthOption,
) *Auth {
	a := &Auth{
		provisioner: provisioner,
		profiles:    profiles,
		passwords:   passwords,
		signatures:  signatures,
		sessions:    sessions,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register provisions a password account. The returned session is nil when
// sign-in after identity creation failed; the account exists regardless.
func (a *Auth) Register(ctx context.Context, req model.RegisterRequest) (model.AccountResult, error) {
	a.logger.DebugContext(ctx, "Auth service: starting password registration",
		"email", req.Email,
		"username", req.Username)

	ctx, saga := a.provisioner.Start(ctx, model.ProvenancePassword)
	if err := validation.ValidateRegistration(req.Email, req.Username, req.Password); err != nil {
		return model.AccountResult{}, saga.Fail(err)
	}

	// Creating the identity is the proof for password accounts.
	saga.Advance(StateVerifying)

	result, err := a.provisioner.Provision(ctx, saga, ProvisionRequest{
		Principal: model.Principal{
			Provenance: model.ProvenancePassword,
			Email:      validation.NormalizeEmail(req.Email),
			Password:   req.Password,
		},
		Username: validation.NormalizeUsername(req.Username),
	})
	if err != nil {
		return model.AccountResult{}, err
	}

	account := model.AccountResult{Identity: result.Identity, Player: result.Player}
	if result.Session != nil {
		// Bind the sign-in session to the new player.
		account.Session = a.playerSession(ctx, result.Player, result.Session, model.ProvenancePassword)
	}
	return account, nil
}

// Login signs in with email and password and returns the linked player.
func (a *Auth) Login(ctx context.Context, req model.LoginRequest) (model.AccountResult, error) {
	if err := validation.ValidateLogin(req.Email, req.Password); err != nil {
		return model.AccountResult{}, err
	}

	identity, token, err := a.passwords.Verify(ctx, model.Credential{
		Email:    validation.NormalizeEmail(req.Email),
		Password: req.Password,
	})
	if err != nil {
		return model.AccountResult{}, err
	}

	player, err := a.profiles.FindByUserID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// An identity without a player is a leftover of failed compensation.
			a.logger.WarnContext(ctx, "Auth service: identity has no player",
				"user_id", identity.ID)
			return model.AccountResult{}, model.NewAuthError(model.AuthInvalidCredentials, err)
		}
		return model.AccountResult{}, fmt.Errorf("failed to get player by user id: %w", err)
	}

	a.logger.InfoContext(ctx, "Auth service: password sign-in succeeded",
		"user_id", identity.ID,
		"player_id", player.ID)

	return model.AccountResult{
		Identity: identity,
		Player:   player,
		Session:  a.playerSession(ctx, player, &token, model.ProvenancePassword),
	}, nil
}

// AuthenticateWallet verifies a wallet signature and returns the player
// linked to the wallet, provisioning one when none exists yet. Invalid
// signatures are rejected before any store is touched.
func (a *Auth) AuthenticateWallet(ctx context.Context, req model.WalletRequest) (model.WalletResult, error) {
	a.logger.DebugContext(ctx, "Auth service: starting wallet authentication",
		"wallet", req.WalletAddress)

	ctx, saga := a.provisioner.Start(ctx, model.ProvenanceWallet)
	if err := validation.ValidateWallet(req.WalletAddress, req.Signature, req.Message); err != nil {
		return model.WalletResult{}, saga.Fail(err)
	}

	saga.Advance(StateVerifying)
	ok, err := a.signatures.Verify(req.WalletAddress, req.Message, req.Signature)
	if err != nil || !ok {
		a.logger.InfoContext(ctx, "Auth service: wallet signature rejected",
			"wallet", req.WalletAddress)
		return model.WalletResult{}, saga.Fail(model.NewAuthError(model.AuthInvalidSignature, err))
	}

	address := validation.NormalizeWalletAddress(req.WalletAddress)

	if a.challenges != nil {
		if err := a.challenges.Consume(ctx, req.Message, address); err != nil {
			return model.WalletResult{}, saga.Fail(err)
		}
	}

	existing, found, err := a.provisioner.uniqueness.FindByWallet(ctx, address)
	if err != nil {
		return model.WalletResult{}, saga.Fail(err)
	}
	if found {
		saga.Succeed()
		a.logger.InfoContext(ctx, "Auth service: wallet signed in",
			"wallet", address,
			"player_id", existing.ID)
		return model.WalletResult{
			Player:        existing,
			WalletAddress: address,
			IsNewUser:     false,
			Session:       a.playerSession(ctx, existing, nil, model.ProvenanceWallet),
		}, nil
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return model.WalletResult{}, saga.Fail(err)
	}

	result, err := a.provisioner.Provision(ctx, saga, ProvisionRequest{
		Principal: model.Principal{
			Provenance:    model.ProvenanceWallet,
			WalletAddress: address,
		},
		Username: validation.NormalizeUsername(req.Username),
	})
	if err != nil {
		return model.WalletResult{}, err
	}

	return model.WalletResult{
		Player:        result.Player,
		WalletAddress: address,
		IsNewUser:     true,
		Session:       a.playerSession(ctx, result.Player, nil, model.ProvenanceWallet),
	}, nil
}

// CurrentPlayer returns the player a session speaks for.
func (a *Auth) CurrentPlayer(ctx context.Context, claims model.SessionClaims) (model.Player, error) {
	var (
		player model.Player
		err    error
	)
	switch {
	case claims.PlayerID != uuid.Nil:
		player, err = a.profiles.FindByID(ctx, claims.PlayerID)
	case claims.UserID != uuid.Nil:
		player, err = a.profiles.FindByUserID(ctx, claims.UserID)
	default:
		return model.Player{}, model.NewAuthError(model.AuthSessionInvalid, nil)
	}
	if err != nil {
		return model.Player{}, fmt.Errorf("failed to get current player: %w", err)
	}
	return player, nil
}

// playerSession issues a session bound to player. fallback is returned when
// issuing fails, which is logged and never fails the flow.
func (a *Auth) playerSession(ctx context.Context, player model.Player, fallback *model.SessionToken, provenance model.Provenance) *model.SessionToken {
	subject := model.SessionSubject{
		PlayerID:   player.ID,
		Provenance: provenance,
	}
	if player.UserID != nil {
		subject.UserID = *player.UserID
	}
	if player.WalletAddress != nil {
		subject.WalletAddress = *player.WalletAddress
	}

	token, err := a.sessions.Issue(ctx, subject)
	if err != nil {
		a.logger.WarnContext(ctx, "Auth service: failed to issue session",
			"player_id", player.ID,
			"error", err.Error())
		return fallback
	}
	return &token
}
