package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
)

const tracerName = "github.com/dtroode/blackjack-server/internal/service"

// SagaState is a step of one provisioning attempt.
type SagaState string

const (
	StateValidating             SagaState = "validating"
	StateVerifying              SagaState = "verifying"
	StateCheckingUniqueness     SagaState = "checking_uniqueness"
	StateCreatingIdentity       SagaState = "creating_identity"
	StateCreatingProfile        SagaState = "creating_profile"
	StateSucceeded              SagaState = "succeeded"
	StateCompensatingThenFailed SagaState = "compensating_then_failed"
	StateFailed                 SagaState = "failed"
)

// DefaultCompensationTimeout bounds the compensating identity delete.
const DefaultCompensationTimeout = 5 * time.Second

// ProvisionRequest asks the saga to create an identity and a player for a
// verified principal. Username must already be validated and normalized.
type ProvisionRequest struct {
	Principal model.Principal
	Username  string
}

// ProvisionResult is a fully provisioned account. Session is set only when
// the identity store signed in after creating a password identity.
type ProvisionResult struct {
	Identity model.Identity
	Player   model.Player
	Session  *model.SessionToken
}

// ProvisionerOption configures a Provisioner.
type ProvisionerOption func(*Provisioner)

// WithStateObserver registers fn to be called on every saga state change.
func WithStateObserver(fn func(SagaState)) ProvisionerOption {
	return func(p *Provisioner) {
		p.observe = fn
	}
}

// WithCompensationTimeout overrides DefaultCompensationTimeout.
func WithCompensationTimeout(d time.Duration) ProvisionerOption {
	return func(p *Provisioner) {
		if d > 0 {
			p.compensationTimeout = d
		}
	}
}

// Provisioner runs the provisioning saga: identity first, then profile,
// deleting the identity again if the profile cannot be stored.
type Provisioner struct {
	identities          model.IdentityStore
	profiles            model.ProfileStore
	uniqueness          *UniquenessChecker
	tracer              trace.Tracer
	observe             func(SagaState)
	compensationTimeout time.Duration
	logger              *logger.Logger
}

func NewProvisioner(identities model.IdentityStore, profiles model.ProfileStore, logger *logger.Logger, opts ...ProvisionerOption) *Provisioner {
	p := &Provisioner{
		identities:          identities,
		profiles:            profiles,
		uniqueness:          NewUniquenessChecker(profiles),
		tracer:              otel.Tracer(tracerName),
		compensationTimeout: DefaultCompensationTimeout,
		logger:              logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Saga tracks the state of one provisioning attempt. It is not safe for
// concurrent use; each request owns its own.
type Saga struct {
	provenance model.Provenance
	state      SagaState
	span       trace.Span
	observe    func(SagaState)
	done       bool
}

// Start opens a saga in StateValidating. The returned context carries the
// saga span and must be used for the rest of the attempt.
func (p *Provisioner) Start(ctx context.Context, provenance model.Provenance) (context.Context, *Saga) {
	ctx, span := p.tracer.Start(ctx, "provisioning.saga",
		trace.WithAttributes(attribute.String("provenance", string(provenance))))
	s := &Saga{provenance: provenance, span: span, observe: p.observe}
	s.Advance(StateValidating)
	return ctx, s
}

// State returns the current state.
func (s *Saga) State() SagaState {
	return s.state
}

// Advance moves the saga to state.
func (s *Saga) Advance(state SagaState) {
	if s.done {
		return
	}
	s.state = state
	s.span.AddEvent("state", trace.WithAttributes(attribute.String("state", string(state))))
	if s.observe != nil {
		s.observe(state)
	}
	if state == StateSucceeded || state == StateFailed {
		if state == StateSucceeded {
			s.span.SetStatus(codes.Ok, "")
		}
		s.span.End()
		s.done = true
	}
}

// Succeed ends the saga in StateSucceeded.
func (s *Saga) Succeed() {
	s.Advance(StateSucceeded)
}

// Fail ends the saga in StateFailed and returns err.
func (s *Saga) Fail(err error) error {
	if !s.done {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.Advance(StateFailed)
	return err
}

// Provision runs the uniqueness check, identity creation and profile
// creation steps of saga. On profile failure the identity is deleted exactly
// once before the error is returned.
func (p *Provisioner) Provision(ctx context.Context, saga *Saga, req ProvisionRequest) (ProvisionResult, error) {
	if req.Username == "" {
		return ProvisionResult{}, saga.Fail(model.NewValidationError("username", "Username is required"))
	}

	saga.Advance(StateCheckingUniqueness)
	if err := p.uniqueness.CheckUsername(ctx, req.Username); err != nil {
		p.logger.InfoContext(ctx, "Provisioning saga: username rejected",
			"username", req.Username,
			"error", err.Error())
		return ProvisionResult{}, saga.Fail(err)
	}

	saga.Advance(StateCreatingIdentity)
	credential := credentialFor(req.Principal)
	identity, err := p.createIdentity(ctx, credential)
	if err != nil {
		p.logger.ErrorContext(ctx, "Provisioning saga: identity creation failed",
			"username", req.Username,
			"provenance", req.Principal.Provenance,
			"error", err.Error())

		cause := err
		if errors.Is(err, model.ErrDuplicateCredential) {
			cause = duplicateCredentialConflict(req.Principal)
		}
		return ProvisionResult{}, saga.Fail(&model.ProvisioningError{Kind: model.IdentityCreationFailed, Err: cause})
	}

	var session *model.SessionToken
	if req.Principal.Provenance == model.ProvenancePassword {
		_, token, err := p.identities.SignIn(ctx, credential)
		if err != nil {
			p.logger.WarnContext(ctx, "Provisioning saga: sign-in after identity creation failed",
				"user_id", identity.ID,
				"error", err.Error())
		} else {
			session = &token
		}
	}

	saga.Advance(StateCreatingProfile)
	player, err := p.insertProfile(ctx, model.NewPlayer(identity.ID, req.Username, req.Principal.WalletAddress))
	if err != nil {
		p.logger.ErrorContext(ctx, "Provisioning saga: profile creation failed",
			"username", req.Username,
			"user_id", identity.ID,
			"error", err.Error())

		saga.Advance(StateCompensatingThenFailed)
		compensationErr := p.compensate(ctx, identity.ID)

		return ProvisionResult{}, saga.Fail(&model.ProvisioningError{
			Kind:               model.ProfileCreationFailed,
			Err:                profileConflict(err),
			CompensationFailed: compensationErr != nil,
		})
	}

	saga.Succeed()

	p.logger.InfoContext(ctx, "Provisioning saga: account provisioned",
		"username", player.Username,
		"player_id", player.ID,
		"user_id", identity.ID,
		"provenance", req.Principal.Provenance)

	return ProvisionResult{Identity: identity, Player: player, Session: session}, nil
}

func (p *Provisioner) createIdentity(ctx context.Context, credential model.Credential) (model.Identity, error) {
	ctx, span := p.tracer.Start(ctx, "identity.create")
	defer span.End()

	identity, err := p.identities.Create(ctx, credential)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return identity, err
}

func (p *Provisioner) insertProfile(ctx context.Context, player model.Player) (model.Player, error) {
	ctx, span := p.tracer.Start(ctx, "profile.insert")
	defer span.End()

	saved, err := p.profiles.Insert(ctx, player)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return saved, err
}

// compensate deletes the identity created earlier in the saga. It runs even
// if the request context was cancelled, bounded by compensationTimeout. A
// failure is logged for the orphan sweeper and not retried.
func (p *Provisioner) compensate(ctx context.Context, identityID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.compensationTimeout)
	defer cancel()

	ctx, span := p.tracer.Start(ctx, "identity.compensate",
		trace.WithAttributes(attribute.String("user_id", identityID.String())))
	defer span.End()

	err := p.identities.Delete(ctx, identityID)
	if err == nil || errors.Is(err, model.ErrNotFound) {
		p.logger.InfoContext(ctx, "Provisioning saga: identity compensated",
			"user_id", identityID)
		return nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	p.logger.ErrorContext(ctx, "Provisioning saga: compensation failed, identity orphaned",
		"user_id", identityID,
		"error", err.Error())

	return fmt.Errorf("compensate identity %s: %w", identityID, err)
}

func credentialFor(principal model.Principal) model.Credential {
	if principal.Provenance == model.ProvenanceWallet {
		return model.Credential{
			Email:    WalletEmail(principal.WalletAddress),
			Password: uuid.NewString(),
		}
	}
	return model.Credential{Email: principal.Email, Password: principal.Password}
}

// WalletEmail returns the synthetic identity email for a lower-cased wallet address.
func WalletEmail(address string) string {
	return address + "@" + model.WalletEmailDomain
}

func duplicateCredentialConflict(principal model.Principal) error {
	if principal.Provenance == model.ProvenanceWallet {
		return &model.ConflictError{Kind: model.ConflictWalletAlreadyLinked, Value: principal.WalletAddress}
	}
	return &model.ConflictError{Kind: model.ConflictEmailTaken, Value: principal.Email}
}

// profileConflict turns a unique violation from the profile insert into the
// matching ConflictError. The race loser of a concurrent registration ends
// up here.
func profileConflict(err error) error {
	var uErr *model.UniqueViolationError
	if !errors.As(err, &uErr) {
		return err
	}
	switch uErr.Field {
	case "username":
		return &model.ConflictError{Kind: model.ConflictUsernameTaken}
	case "wallet_address":
		return &model.ConflictError{Kind: model.ConflictWalletAlreadyLinked}
	default:
		return err
	}
}
