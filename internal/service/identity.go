package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
	"github.com/dtroode/blackjack-server/internal/security"
	"github.com/dtroode/blackjack-server/internal/validation"
)

// PasswordHasher hashes and compares identity passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// SessionIssuer signs session tokens for a subject.
type SessionIssuer interface {
	Issue(ctx context.Context, subject model.SessionSubject) (model.SessionToken, error)
}

// IdentityService is the identity store used by the provisioning saga. It
// hashes passwords before they reach storage and signs in with a session
// that carries only the identity id.
type IdentityService struct {
	records  model.IdentityRecordStore
	hasher   PasswordHasher
	sessions SessionIssuer
	logger   *logger.Logger
}

var _ model.IdentityStore = (*IdentityService)(nil)

func NewIdentityService(records model.IdentityRecordStore, hasher PasswordHasher, sessions SessionIssuer, logger *logger.Logger) *IdentityService {
	return &IdentityService{records: records, hasher: hasher, sessions: sessions, logger: logger}
}

// Create stores a confirmed identity for credential. An already registered
// email is reported as ErrDuplicateCredential.
func (s *IdentityService) Create(ctx context.Context, credential model.Credential) (model.Identity, error) {
	email := validation.NormalizeEmail(credential.Email)

	hash, err := s.hasher.Hash(credential.Password)
	if err != nil {
		return model.Identity{}, err
	}

	record, err := s.records.Create(ctx, model.IdentityRecord{
		Identity: model.Identity{
			ID:        uuid.New(),
			Email:     email,
			Confirmed: true,
			CreatedAt: time.Now().UTC(),
		},
		PasswordHash: hash,
	})
	if err != nil {
		var uErr *model.UniqueViolationError
		if errors.As(err, &uErr) {
			return model.Identity{}, fmt.Errorf("%w: %s", model.ErrDuplicateCredential, email)
		}
		return model.Identity{}, fmt.Errorf("failed to create identity: %w", err)
	}

	return record.Identity, nil
}

// Delete removes the identity with id.
func (s *IdentityService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}
	return nil
}

// SignIn checks credential and issues a session for the identity. Unknown
// emails, wallet identities and wrong passwords are all rejected with the
// same AuthError so callers cannot probe which emails exist.
func (s *IdentityService) SignIn(ctx context.Context, credential model.Credential) (model.Identity, model.SessionToken, error) {
	email := validation.NormalizeEmail(credential.Email)
	if strings.HasSuffix(email, "@"+model.WalletEmailDomain) {
		return model.Identity{}, model.SessionToken{}, model.NewAuthError(model.AuthInvalidCredentials, nil)
	}

	record, err := s.records.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Identity{}, model.SessionToken{}, model.NewAuthError(model.AuthInvalidCredentials, err)
		}
		return model.Identity{}, model.SessionToken{}, fmt.Errorf("failed to get identity by email: %w", err)
	}

	if err := s.hasher.Compare(record.PasswordHash, credential.Password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return model.Identity{}, model.SessionToken{}, model.NewAuthError(model.AuthInvalidCredentials, nil)
		}
		return model.Identity{}, model.SessionToken{}, fmt.Errorf("failed to compare password: %w", err)
	}

	session, err := s.sessions.Issue(ctx, model.SessionSubject{
		UserID:     record.ID,
		Provenance: model.ProvenancePassword,
	})
	if err != nil {
		return model.Identity{}, model.SessionToken{}, err
	}

	return record.Identity, session, nil
}
