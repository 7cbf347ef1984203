package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/dtroode/blackjack-server/internal/api/http/apierr"
	"github.com/dtroode/blackjack-server/internal/logger"
)

// Recovery turns handler panics into 500 responses.
type Recovery struct {
	logger *logger.Logger
}

// NewRecovery creates a new Recovery middleware.
func NewRecovery(logger *logger.Logger) *Recovery {
	return &Recovery{logger: logger}
}

func (m *Recovery) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				m.logger.ErrorContext(r.Context(), "panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path)

				apierr.WriteError(w, apierr.NewInternalError())
			}
		}()

		next.ServeHTTP(w, r)
	})
}
