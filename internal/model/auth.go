package model

// RegisterRequest is the password registration input.
type RegisterRequest struct {
	Email    string
	Username string
	Password string
}

// LoginRequest is the password sign-in input.
type LoginRequest struct {
	Email    string
	Password string
}

// AccountResult is returned by password registration and sign-in. Session
// is nil when the account exists but a token could not be issued.
type AccountResult struct {
	Identity Identity
	Player   Player
	Session  *SessionToken
}

// WalletRequest is the wallet authentication input. Username is required
// only when the wallet has no player yet.
type WalletRequest struct {
	WalletAddress string
	Signature     string
	Message       string
	Username      string
}

// WalletResult is returned by wallet authentication.
type WalletResult struct {
	Player        Player
	WalletAddress string
	IsNewUser     bool
	Session       *SessionToken
}
