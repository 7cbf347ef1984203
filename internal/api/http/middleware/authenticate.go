package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dtroode/blackjack-server/internal/api/http/apierr"
	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
)

// SessionAuthenticator resolves session claims from bearer tokens.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (model.SessionClaims, error)
}

// Authenticate validates bearer tokens and injects session claims into the request context.
type Authenticate struct {
	sessions       SessionAuthenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionAuthenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid, unrevoked session with 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			apierr.WriteError(w, apierr.NewUnauthorizedError())
			return
		}

		claims, err := m.sessions.Authenticate(r.Context(), token)
		if err != nil {
			m.logger.DebugContext(r.Context(), "Authenticate middleware: session rejected",
				"path", r.URL.Path,
				"error", err.Error())
			apierr.WriteError(w, err)
			return
		}

		ctx := m.contextManager.SetSubjectToContext(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}
