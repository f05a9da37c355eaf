package ports

import (
	"context"
	"time"

	"github.com/musitech/crm-api/internal/core/domain"
)

// UserRepository defines persistence for user identity records. The store
// enforces email uniqueness atomically; the service-level pre-check is only
// an optimization.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	List(ctx context.Context) ([]*domain.User, error)
}
