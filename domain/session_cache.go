package domain

import "context"

// SessionCache holds the minimal authenticated-user snapshot used for route
// guarding. Pages must still re-validate against the user store on load.
type SessionCache interface {
	PostSession(ctx context.Context, sessionID string, session *Session) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	DelSession(ctx context.Context, sessionID string) error
}
