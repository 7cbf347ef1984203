package model

import "context"

// ContextManager carries the authenticated session subject through a request context.
type ContextManager interface {
	SetSubjectToContext(ctx context.Context, claims SessionClaims) context.Context
	GetSubjectFromContext(ctx context.Context) (SessionClaims, bool)
}
