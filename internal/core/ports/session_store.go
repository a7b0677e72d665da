package ports

import (
	"context"

	"github.com/myhr/portal-gateway/internal/core/domain"
)

// SessionStore defines the interface for session-record persistence.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, id string) error
}
