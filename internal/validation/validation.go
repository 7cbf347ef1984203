// Package validation holds the shape checks run on credentials before any
// store is touched.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/text/unicode/norm"

	"github.com/dtroode/blackjack-server/internal/model"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
	PasswordMinLength = 6
	// bcrypt ignores everything past 72 bytes.
	PasswordMaxBytes = 72
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeUsername returns the NFC form of username, which is what gets
// length-checked and stored.
func NormalizeUsername(username string) string {
	return norm.NFC.String(username)
}

// NormalizeEmail trims and lower-cases email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeWalletAddress returns the 0x-prefixed lower-case form of a valid hex address.
func NormalizeWalletAddress(address string) string {
	return strings.ToLower(common.HexToAddress(address).Hex())
}

// ValidateEmail checks that email is non-empty, looks like local@domain.tld
// and is not in the domain reserved for wallet identities.
func ValidateEmail(email string) error {
	if email == "" {
		return model.NewValidationError("email", "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return model.NewValidationError("email", "Invalid email format")
	}
	if strings.HasSuffix(strings.ToLower(email), "@"+model.WalletEmailDomain) {
		return model.NewValidationError("email", "Email domain is reserved")
	}
	return nil
}

// ValidateUsername checks that the normalized username is 3 to 30 characters long.
func ValidateUsername(username string) error {
	if username == "" {
		return model.NewValidationError("username", "Username is required")
	}
	n := utf8.RuneCountInString(NormalizeUsername(username))
	if n < UsernameMinLength || n > UsernameMaxLength {
		return model.NewValidationError("username", "Username must be between 3 and 30 characters")
	}
	return nil
}

// ValidatePassword checks that password is at least 6 characters and fits bcrypt.
func ValidatePassword(password string) error {
	if password == "" {
		return model.NewValidationError("password", "Password is required")
	}
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return model.NewValidationError("password", "Password must be at least 6 characters")
	}
	if len(password) > PasswordMaxBytes {
		return model.NewValidationError("password", "Password must be at most 72 bytes")
	}
	return nil
}

// ValidateRegistration runs the password registration checks in order and
// returns the first violation.
func ValidateRegistration(email, username, password string) error {
	if email == "" || username == "" || password == "" {
		missing := firstMissing(field{"email", email}, field{"username", username}, field{"password", password})
		return model.NewValidationError(missing, "Email, username, and password are required")
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidateUsername(username); err != nil {
		return err
	}
	return ValidatePassword(password)
}

// ValidateLogin checks that both sign-in fields are present.
func ValidateLogin(email, password string) error {
	if email == "" || password == "" {
		missing := firstMissing(field{"email", email}, field{"password", password})
		return model.NewValidationError(missing, "Email and password are required")
	}
	return ValidateEmail(email)
}

// ValidateWallet checks that the wallet address, signature and message are
// present and that the address is a 20-byte hex string.
func ValidateWallet(address, signature, message string) error {
	if address == "" || signature == "" || message == "" {
		missing := firstMissing(field{"walletAddress", address}, field{"signature", signature}, field{"message", message})
		return model.NewValidationError(missing, "Wallet address, signature, and message are required")
	}
	return ValidateWalletAddress(address)
}

// ValidateWalletAddress checks that address is usable as a hex account address.
func ValidateWalletAddress(address string) error {
	if address == "" {
		return model.NewValidationError("walletAddress", "Wallet address is required")
	}
	if !common.IsHexAddress(address) {
		return model.NewValidationError("walletAddress", "Invalid wallet address")
	}
	return nil
}

type field struct {
	name  string
	value string
}

func firstMissing(fields ...field) string {
	for _, f := range fields {
		if f.value == "" {
			return f.name
		}
	}
	return ""
}
