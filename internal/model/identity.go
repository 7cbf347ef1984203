package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WalletEmailDomain is the domain of synthetic emails given to wallet identities.
const WalletEmailDomain = "wallet.blackjack"

// IdentityStore creates, deletes and signs in authentication identities.
type IdentityStore interface {
	Create(ctx context.Context, credential Credential) (Identity, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SignIn(ctx context.Context, credential Credential) (Identity, SessionToken, error)
}

// Identity is an authenticatable credential record, independent of game state.
type Identity struct {
	ID        uuid.UUID
	Email     string
	Confirmed bool
	CreatedAt time.Time
}

// Credential is an email and plaintext password pair presented to the identity store.
type Credential struct {
	Email    string
	Password string
}

// Provenance tells how a principal proved who they are.
type Provenance string

const (
	ProvenancePassword Provenance = "password"
	ProvenanceWallet   Provenance = "wallet"
)

// Principal is a verified claim that the saga provisions an account for.
// For password principals Email and Password are set; for wallet principals
// WalletAddress holds the lower-cased hex address.
type Principal struct {
	Provenance    Provenance
	Email         string
	Password      string
	WalletAddress string
}

// IdentityRecordStore persists identity rows including the password hash.
type IdentityRecordStore interface {
	Create(ctx context.Context, record IdentityRecord) (IdentityRecord, error)
	GetByEmail(ctx context.Context, email string) (IdentityRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IdentityRecord is an identity as stored, with its password hash.
type IdentityRecord struct {
	Identity
	PasswordHash string
}
