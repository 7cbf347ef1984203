package context

import (
	"context"

	"github.com/dtroode/blackjack-server/internal/model"
)

type subjectKey struct{}

// Manager stores the authenticated session claims in a request context.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetSubjectToContext returns a copy of ctx carrying claims.
func (m *Manager) SetSubjectToContext(ctx context.Context, claims model.SessionClaims) context.Context {
	return context.WithValue(ctx, subjectKey{}, claims)
}

// GetSubjectFromContext returns the claims stored by SetSubjectToContext.
func (m *Manager) GetSubjectFromContext(ctx context.Context) (model.SessionClaims, bool) {
	claims, ok := ctx.Value(subjectKey{}).(model.SessionClaims)
	return claims, ok
}
