package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable marks failures to reach a backing store, timeouts included.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrDuplicateCredential is returned by the identity store when the email is already registered.
	ErrDuplicateCredential = errors.New("credential already registered")
)

// ValidationError reports the first request field that failed a shape check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictKind enumerates uniqueness conflicts.
type ConflictKind string

const (
	ConflictUsernameTaken       ConflictKind = "username_taken"
	ConflictWalletAlreadyLinked ConflictKind = "wallet_already_linked"
	ConflictEmailTaken          ConflictKind = "email_taken"
)

// ConflictError reports that a unique attribute is already owned by another account.
type ConflictError struct {
	Kind  ConflictKind
	Value string
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case ConflictUsernameTaken:
		return "Username already taken"
	case ConflictWalletAlreadyLinked:
		return "Wallet address is already linked to a player"
	case ConflictEmailTaken:
		return "Email is already registered"
	default:
		return "conflict"
	}
}

// AuthErrorKind enumerates authentication failures.
type AuthErrorKind string

const (
	AuthInvalidSignature   AuthErrorKind = "invalid_signature"
	AuthInvalidCredentials AuthErrorKind = "invalid_credentials"
	AuthChallengeInvalid   AuthErrorKind = "challenge_invalid"
	AuthSessionInvalid     AuthErrorKind = "session_invalid"
)

// AuthError reports that the caller failed to prove who they are.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case AuthInvalidSignature:
		return "Invalid signature"
	case AuthInvalidCredentials:
		return "Invalid email or password"
	case AuthChallengeInvalid:
		return "Sign-in challenge is missing, expired or already used"
	case AuthSessionInvalid:
		return "Invalid or expired session"
	default:
		return "unauthorized"
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates an AuthError of the given kind wrapping cause.
func NewAuthError(kind AuthErrorKind, cause error) *AuthError {
	return &AuthError{Kind: kind, Err: cause}
}

// ProvisioningErrorKind enumerates saga steps that can fail terminally.
type ProvisioningErrorKind string

const (
	IdentityCreationFailed ProvisioningErrorKind = "identity_creation_failed"
	ProfileCreationFailed  ProvisioningErrorKind = "profile_creation_failed"
)

// ProvisioningError reports a failed provisioning step. When Kind is
// ProfileCreationFailed the identity created earlier was deleted, unless
// CompensationFailed is set, in which case it may be orphaned.
type ProvisioningError struct {
	Kind               ProvisioningErrorKind
	Err                error
	CompensationFailed bool
}

func (e *ProvisioningError) Error() string {
	switch e.Kind {
	case IdentityCreationFailed:
		return fmt.Sprintf("failed to create authentication: %v", e.Err)
	case ProfileCreationFailed:
		return fmt.Sprintf("failed to create player profile: %v", e.Err)
	default:
		return fmt.Sprintf("provisioning failed: %v", e.Err)
	}
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// UniqueViolationError is returned by the profile store when an insert hits a
// unique constraint. Field names the violated column.
type UniqueViolationError struct {
	Field string
	Err   error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique constraint violation on %s", e.Field)
}

func (e *UniqueViolationError) Unwrap() error {
	return e.Err
}
