package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/musitech/crm-api/internal/core/domain"
	"github.com/musitech/crm-api/internal/core/password"
	"github.com/musitech/crm-api/internal/core/ports"
	"github.com/musitech/crm-api/internal/core/token"
)

// Default administrator ensured at startup. Idempotent by email: an existing
// record with this address is returned unchanged, whatever its current role.
const (
	adminEmail    = "admin@musitech.com"
	adminPassword = "admin"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// AuthService orchestrates registration, login, profile lookup, and the
// admin bootstrap.
type AuthService struct {
	users    ports.UserRepository
	tokens   *token.Codec
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *token.Codec, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{users: users, tokens: tokens, tokenTTL: tokenTTL, log: log}
}

// Register creates a new user. The email existence pre-check is the fast
// path; the store's unique index is what actually settles concurrent
// registrations for the same address.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.PublicUser, error) {
	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Company:      in.Company,
		Phone:        in.Phone,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// Login verifies credentials and issues a signed bearer token. An unknown
// email and a wrong password both map to ErrInvalidCredentials; a disabled
// account is only revealed once the password has been proven correct.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (*ports.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := password.Verify(plaintext, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	// Best effort: a failed last-login write must not fail the login.
	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}
	user.LastLogin = &now

	signed, err := s.tokens.Issue(token.Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		User:        user.Public(),
	}, nil
}

// GetByID returns the full record; callers strip sensitive fields.
func (s *AuthService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// ListUsers returns the public view of every user.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*domain.PublicUser, 0, len(users))
	for _, u := range users {
		views = append(views, u.Public())
	}
	return views, nil
}

// EnsureAdmin guarantees the default administrator exists. Losing a
// concurrent bootstrap race is fine: the unique index rejects the second
// insert and the surviving record is returned.
func (s *AuthService) EnsureAdmin(ctx context.Context) (*domain.PublicUser, error) {
	existing, err := s.users.FindByEmail(ctx, adminEmail)
	if err == nil {
		return existing.Public(), nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	firstName, lastName, company := "Admin", "User", "Musitech"
	view, err := s.Register(ctx, ports.RegisterInput{
		Email:     adminEmail,
		Password:  adminPassword,
		Role:      domain.RoleAdmin,
		FirstName: &firstName,
		LastName:  &lastName,
		Company:   &company,
	})
	if errors.Is(err, domain.ErrEmailTaken) {
		winner, ferr := s.users.FindByEmail(ctx, adminEmail)
		if ferr != nil {
			return nil, ferr
		}
		return winner.Public(), nil
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}
