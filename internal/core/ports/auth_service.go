package ports

import (
	"context"

	"github.com/musitech/crm-api/internal/core/domain"
)

// RegisterInput carries a registration request into the auth service.
// Role defaults to client when empty.
type RegisterInput struct {
	Email     string
	Password  string
	Role      string
	FirstName *string
	LastName  *string
	Company   *string
	Phone     *string
}

// LoginResult is a successful login: the signed token plus the public view
// of the authenticated user.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
	User        *domain.PublicUser
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.PublicUser, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.PublicUser, error)
	EnsureAdmin(ctx context.Context) (*domain.PublicUser, error)
}
