// Package verifier proves that a caller controls the identity they claim,
// either through the identity store's password check or through a wallet
// signature.
package verifier

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/dtroode/blackjack-server/internal/model"
)

var _ model.SignatureVerifier = (*Signature)(nil)

// ErrMalformedSignature is returned when the signature is not a 65-byte hex string.
var ErrMalformedSignature = errors.New("malformed signature")

// Signature verifies EIP-191 personal_sign signatures over secp256k1.
type Signature struct{}

// NewSignature creates a new Signature verifier.
func NewSignature() *Signature {
	return &Signature{}
}

// Verify reports whether signature over message recovers to address.
func (v *Signature) Verify(address, message, signature string) (bool, error) {
	if !common.IsHexAddress(address) {
		return false, fmt.Errorf("invalid address %q", address)
	}

	recovered, err := Recover(message, signature)
	if err != nil {
		return false, err
	}

	return recovered == common.HexToAddress(address), nil
}

// Recover returns the address whose key produced signature over the
// personal_sign digest of message.
func Recover(message, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSignature, crypto.SignatureLength, len(sig))
	}

	// Wallets emit v as 27/28; the recovery routine wants 0/1.
	sig = append([]byte(nil), sig...)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	if sig[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, fmt.Errorf("%w: invalid recovery id", ErrMalformedSignature)
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}
