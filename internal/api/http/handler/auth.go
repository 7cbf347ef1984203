package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dtroode/blackjack-server/internal/api/http/apierr"
	"github.com/dtroode/blackjack-server/internal/api/http/middleware"
	"github.com/dtroode/blackjack-server/internal/api/http/response"
	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
)

// AuthService defines the account flows.
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.AccountResult, error)
	Login(ctx context.Context, req model.LoginRequest) (model.AccountResult, error)
	AuthenticateWallet(ctx context.Context, req model.WalletRequest) (model.WalletResult, error)
}

// ChallengeService issues wallet sign-in challenges.
type ChallengeService interface {
	Issue(ctx context.Context, address string) (model.WalletChallenge, error)
}

// SessionService revokes session tokens.
type SessionService interface {
	Revoke(ctx context.Context, token string) error
}

// Auth handles HTTP endpoints for account provisioning and sign-in.
type Auth struct {
	authService      AuthService
	challengeService ChallengeService
	sessionService   SessionService
	logger           *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, challengeService ChallengeService, sessionService SessionService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:      authService,
		challengeService: challengeService,
		sessionService:   sessionService,
		logger:           logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type challengeRequest struct {
	WalletAddress string `json:"walletAddress"`
}

type walletRequest struct {
	WalletAddress string `json:"walletAddress"`
	Signature     string `json:"signature"`
	Message       string `json:"message"`
	Username      string `json:"username"`
}

// Register handles POST /api/auth/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Auth handler: processing registration request",
		"email", req.Email,
		"username", req.Username)

	result, err := h.authService.Register(r.Context(), model.RegisterRequest{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.fail(r, "registration failed", err)
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AccountFromModel(result))
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), model.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(r, "login failed", err)
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AccountFromModel(result))
}

// WalletChallenge handles POST /api/auth/wallet/challenge.
func (h *Auth) WalletChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	challenge, err := h.challengeService.Issue(r.Context(), req.WalletAddress)
	if err != nil {
		h.fail(r, "challenge issue failed", err)
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Challenge{
		Message:   challenge.Message,
		Nonce:     challenge.Nonce,
		ExpiresAt: challenge.ExpiresAt,
	})
}

// Wallet handles POST /api/auth/wallet.
func (h *Auth) Wallet(w http.ResponseWriter, r *http.Request) {
	var req walletRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Auth handler: processing wallet request",
		"wallet", req.WalletAddress)

	result, err := h.authService.AuthenticateWallet(r.Context(), model.WalletRequest{
		WalletAddress: req.WalletAddress,
		Signature:     req.Signature,
		Message:       req.Message,
		Username:      req.Username,
	})
	if err != nil {
		h.fail(r, "wallet authentication failed", err)
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.WalletFromModel(result))
}

// Logout handles POST /api/auth/logout. The route sits behind the
// authenticate middleware so the token is known to be valid here.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.Revoke(r.Context(), middleware.BearerToken(r)); err != nil {
		h.fail(r, "logout failed", err)
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Auth) fail(r *http.Request, msg string, err error) {
	if apierr.Status(err) >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Auth handler: "+msg,
			"path", r.URL.Path,
			"error", err.Error())
		return
	}
	h.logger.InfoContext(r.Context(), "Auth handler: "+msg,
		"path", r.URL.Path,
		"error", err.Error())
}

const maxBodyBytes = 1 << 16

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apierr.NewInvalidRequestError("invalid request body")
	}
	return nil
}
