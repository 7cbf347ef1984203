package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionToken is a signed bearer credential handed back to the client.
type SessionToken struct {
	AccessToken string
	ExpiresAt   time.Time
}

// SessionSubject is who a session token speaks for. PlayerID is unset for
// tokens issued by the identity store before a profile exists.
type SessionSubject struct {
	UserID        uuid.UUID
	PlayerID      uuid.UUID
	WalletAddress string
	Provenance    Provenance
}

// SessionClaims is a parsed, signature-checked session token.
type SessionClaims struct {
	SessionSubject
	JTI       string
	ExpiresAt time.Time
}

// TokenManager signs and parses session tokens.
type TokenManager interface {
	Generate(subject SessionSubject) (token string, claims SessionClaims, err error)
	Parse(token string) (SessionClaims, error)
}

// RevocationStore remembers revoked token IDs until they would have expired.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
