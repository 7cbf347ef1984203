package service

import (
	"context"
	"fmt"

	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
)

// SessionService issues, authenticates and revokes session tokens. It
// composes the TokenManager and the RevocationStore.
type SessionService struct {
	manager     model.TokenManager
	revocations model.RevocationStore
	logger      *logger.Logger
}

func NewSessionService(manager model.TokenManager, revocations model.RevocationStore, logger *logger.Logger) *SessionService {
	return &SessionService{manager: manager, revocations: revocations, logger: logger}
}

// Issue signs a session token for subject.
func (s *SessionService) Issue(ctx context.Context, subject model.SessionSubject) (model.SessionToken, error) {
	token, claims, err := s.manager.Generate(subject)
	if err != nil {
		return model.SessionToken{}, fmt.Errorf("issue session: %w", err)
	}

	s.logger.DebugContext(ctx, "Session service: session issued",
		"player_id", subject.PlayerID,
		"provenance", subject.Provenance,
		"jti", claims.JTI)

	return model.SessionToken{AccessToken: token, ExpiresAt: claims.ExpiresAt}, nil
}

// Authenticate parses token and checks that it has not been revoked. Invalid
// and revoked tokens come back as an AuthError of kind AuthSessionInvalid.
func (s *SessionService) Authenticate(ctx context.Context, token string) (model.SessionClaims, error) {
	claims, err := s.manager.Parse(token)
	if err != nil {
		return model.SessionClaims{}, model.NewAuthError(model.AuthSessionInvalid, err)
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return model.SessionClaims{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return model.SessionClaims{}, model.NewAuthError(model.AuthSessionInvalid, nil)
	}

	return claims, nil
}

// Revoke invalidates token until it would have expired.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	claims, err := s.manager.Parse(token)
	if err != nil {
		return model.NewAuthError(model.AuthSessionInvalid, err)
	}

	if err := s.revocations.Revoke(ctx, claims.JTI, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.logger.InfoContext(ctx, "Session service: session revoked",
		"player_id", claims.PlayerID,
		"jti", claims.JTI)

	return nil
}
