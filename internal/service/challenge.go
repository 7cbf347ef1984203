package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
	"github.com/dtroode/blackjack-server/internal/validation"
)

// DefaultChallengeTTL is how long an issued challenge can be signed.
const DefaultChallengeTTL = 5 * time.Minute

const (
	challengeHeader       = "Sign in to Blackjack"
	challengeAddressLabel = "Address: "
	challengeNonceLabel   = "Nonce: "
	challengeIssuedLabel  = "Issued At: "
)

// ChallengeService issues single-use wallet sign-in challenges and consumes
// them on authentication.
type ChallengeService struct {
	store  model.ChallengeStore
	ttl    time.Duration
	now    func() time.Time
	logger *logger.Logger
}

func NewChallengeService(store model.ChallengeStore, ttl time.Duration, logger *logger.Logger) *ChallengeService {
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}
	return &ChallengeService{store: store, ttl: ttl, now: time.Now, logger: logger}
}

// Issue creates a challenge message for address and remembers its nonce.
func (c *ChallengeService) Issue(ctx context.Context, address string) (model.WalletChallenge, error) {
	if err := validation.ValidateWalletAddress(address); err != nil {
		return model.WalletChallenge{}, err
	}
	address = validation.NormalizeWalletAddress(address)

	issuedAt := c.now().UTC().Truncate(time.Second)
	challenge := model.WalletChallenge{
		Address:   address,
		Nonce:     uuid.NewString(),
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(c.ttl),
	}
	challenge.Message = FormatChallengeMessage(challenge.Address, challenge.Nonce, challenge.IssuedAt)

	if err := c.store.Put(ctx, challenge.Nonce, address, c.ttl); err != nil {
		return model.WalletChallenge{}, fmt.Errorf("failed to store challenge: %w", err)
	}

	c.logger.DebugContext(ctx, "Challenge service: challenge issued",
		"wallet", address,
		"nonce", challenge.Nonce)

	return challenge, nil
}

// Consume checks that message embeds a live nonce issued for address and
// burns it. address must be normalized. Any mismatch is an AuthError of kind
// AuthChallengeInvalid.
func (c *ChallengeService) Consume(ctx context.Context, message, address string) error {
	msgAddress, nonce, ok := ParseChallengeMessage(message)
	if !ok {
		return model.NewAuthError(model.AuthChallengeInvalid, errors.New("message is not a sign-in challenge"))
	}
	if !strings.EqualFold(msgAddress, address) {
		return model.NewAuthError(model.AuthChallengeInvalid, errors.New("challenge address mismatch"))
	}

	stored, err := c.store.Consume(ctx, nonce)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAuthError(model.AuthChallengeInvalid, err)
		}
		return fmt.Errorf("failed to consume challenge: %w", err)
	}
	if stored != address {
		return model.NewAuthError(model.AuthChallengeInvalid, errors.New("challenge issued for another address"))
	}

	return nil
}

// FormatChallengeMessage renders the text a wallet signs.
func FormatChallengeMessage(address, nonce string, issuedAt time.Time) string {
	return challengeHeader + "\n" +
		challengeAddressLabel + address + "\n" +
		challengeNonceLabel + nonce + "\n" +
		challengeIssuedLabel + issuedAt.UTC().Format(time.RFC3339)
}

// ParseChallengeMessage extracts the address and nonce lines from a signed
// challenge message.
func ParseChallengeMessage(message string) (address, nonce string, ok bool) {
	scanner := bufio.NewScanner(strings.NewReader(message))
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			if line != challengeHeader {
				return "", "", false
			}
			first = false
			continue
		}
		switch {
		case strings.HasPrefix(line, challengeAddressLabel):
			address = strings.TrimSpace(strings.TrimPrefix(line, challengeAddressLabel))
		case strings.HasPrefix(line, challengeNonceLabel):
			nonce = strings.TrimSpace(strings.TrimPrefix(line, challengeNonceLabel))
		}
	}
	return address, nonce, address != "" && nonce != ""
}
