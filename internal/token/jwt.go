package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/blackjack-server/internal/model"
)

// Claims represents session JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID        uuid.UUID        `json:"user_id"`
	PlayerID      uuid.UUID        `json:"player_id,omitempty"`
	WalletAddress string           `json:"wallet,omitempty"`
	Provenance    model.Provenance `json:"prv"`
	TokenType     string           `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
	now       func() time.Time
}

const (
	typeSession = "session"
	// DefaultTTL is used when a non-positive TTL is configured.
	DefaultTTL = 24 * time.Hour
)

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager with the provided secret key and token lifetime.
func NewJWT(secretKey string, ttl time.Duration, issuer string) *JWT {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWT{secretKey: []byte(secretKey), ttl: ttl, issuer: issuer, now: time.Now}
}

// Generate signs a session token for subject.
func (j *JWT) Generate(subject model.SessionSubject) (string, model.SessionClaims, error) {
	if subject.UserID == uuid.Nil && subject.PlayerID == uuid.Nil {
		return "", model.SessionClaims{}, errors.New("session subject has neither user nor player id")
	}

	now := j.now()
	expiresAt := now.Add(j.ttl)
	jti := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    j.issuer,
			Subject:   subjectOf(subject),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:        subject.UserID,
		PlayerID:      subject.PlayerID,
		WalletAddress: subject.WalletAddress,
		Provenance:    subject.Provenance,
		TokenType:     typeSession,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", model.SessionClaims{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, model.SessionClaims{
		SessionSubject: subject,
		JTI:            jti,
		ExpiresAt:      expiresAt.Truncate(time.Second),
	}, nil
}

// Parse validates tokenString and returns its claims.
func (j *JWT) Parse(tokenString string) (model.SessionClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithTimeFunc(j.now), jwt.WithIssuer(j.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return model.SessionClaims{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return model.SessionClaims{}, errors.New("session token is invalid")
	}
	if claims.TokenType != typeSession {
		return model.SessionClaims{}, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	if claims.ID == "" {
		return model.SessionClaims{}, errors.New("session token has no id")
	}

	return model.SessionClaims{
		SessionSubject: model.SessionSubject{
			UserID:        claims.UserID,
			PlayerID:      claims.PlayerID,
			WalletAddress: claims.WalletAddress,
			Provenance:    claims.Provenance,
		},
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func subjectOf(subject model.SessionSubject) string {
	if subject.PlayerID != uuid.Nil {
		return subject.PlayerID.String()
	}
	return subject.UserID.String()
}
