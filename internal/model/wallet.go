package model

import (
	"context"
	"time"
)

// SignatureVerifier checks that signature over message was produced by the
// private key controlling address.
type SignatureVerifier interface {
	Verify(address, message, signature string) (bool, error)
}

// ChallengeStore keeps server-issued wallet sign-in nonces until they are
// consumed or expire. Consume returns ErrNotFound for unknown, expired or
// already used nonces.
type ChallengeStore interface {
	Put(ctx context.Context, nonce string, address string, ttl time.Duration) error
	Consume(ctx context.Context, nonce string) (address string, err error)
}

// WalletChallenge is a message the client must sign to authenticate a wallet.
type WalletChallenge struct {
	Address   string
	Nonce     string
	Message   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
