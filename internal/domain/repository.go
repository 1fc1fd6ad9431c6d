package domain

import "context"

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}
