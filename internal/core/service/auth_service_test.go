package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/musitech/crm-api/internal/core/domain"
	"github.com/musitech/crm-api/internal/core/ports"
	"github.com/musitech/crm-api/internal/core/token"
)

type stubUserRepo struct {
	users          map[string]*domain.User // keyed by id
	failLastLogin  bool
	lastLoginCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, id string, ts time.Time) error {
	r.lastLoginCalls++
	if r.failLastLogin {
		return errors.New("write failed")
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLogin = &ts
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func newTestService(t *testing.T, repo ports.UserRepository, ttl time.Duration) *AuthService {
	t.Helper()
	codec, err := token.NewCodec("secret")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return NewAuthService(repo, codec, ttl, zerolog.Nop())
}

func TestAuthService_Register_DefaultsAndHash(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, time.Hour)

	view, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if view.ID == "" {
		t.Fatalf("expected generated id")
	}
	if view.Role != domain.RoleClient {
		t.Fatalf("expected default role client, got %s", view.Role)
	}
	if !view.IsActive {
		t.Fatalf("expected new user to be active")
	}
	if view.LastLogin != nil {
		t.Fatalf("expected last_login to be unset")
	}

	stored := repo.users[view.ID]
	if stored.PasswordHash == "secret123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, time.Hour)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "one"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "two"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("store changed on duplicate registration: %d records", len(repo.users))
	}
}

func TestAuthService_Register_ExplicitRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, time.Hour)

	view, err := svc.Register(context.Background(), ports.RegisterInput{Email: "s@x.com", Password: "pw", Role: domain.RoleSubuser})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if view.Role != domain.RoleSubuser {
		t.Fatalf("expected subuser, got %s", view.Role)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, time.Hour)

	view, err := svc.Register(context.Background(), ports.RegisterInput{Email: "carol@x.com", Password: "s3cret", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected access token")
	}
	if result.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %s", result.TokenType)
	}
	if result.ExpiresIn != 3600 {
		t.Fatalf("expected expires_in 3600, got %d", result.ExpiresIn)
	}
	if result.User.LastLogin == nil {
		t.Fatalf("expected last_login to be set on the returned view")
	}
	if stored := repo.users[view.ID]; stored.LastLogin == nil {
		t.Fatalf("expected last_login to be persisted")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != view.ID || claims["email"] != "carol@x.com" || claims["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_DefaultTTL(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, 0)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	result, err := svc.Login(context.Background(), "a@x.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.ExpiresIn != 604800 {
		t.Fatalf("expected default expires_in 604800, got %d", result.ExpiresIn)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, time.Hour)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "dave@x.com", Password: "goodpass"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	if _, err := svc.Login(context.Background(), "dave@x.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@x.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, time.Hour)

	view, err := svc.Register(context.Background(), ports.RegisterInput{Email: "off@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.users[view.ID].IsActive = false

	if _, err := svc.Login(context.Background(), "off@x.com", "pw"); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
	// A wrong password on a disabled account still reads as invalid credentials.
	if _, err := svc.Login(context.Background(), "off@x.com", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_LastLoginBestEffort(t *testing.T) {
	repo := newStubUserRepo()
	repo.failLastLogin = true
	svc := newTestService(t, repo, time.Hour)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), "a@x.com", "pw")
	if err != nil {
		t.Fatalf("login must not fail when the last-login write fails: %v", err)
	}
	if repo.lastLoginCalls != 1 {
		t.Fatalf("expected one last-login write attempt, got %d", repo.lastLoginCalls)
	}
	if result.User.LastLogin == nil {
		t.Fatalf("returned view should still reflect the attempted timestamp")
	}
}

func TestAuthService_EnsureAdmin_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, time.Hour)

	first, err := svc.EnsureAdmin(context.Background())
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if first.Email != adminEmail || first.Role != domain.RoleAdmin {
		t.Fatalf("unexpected admin view: %+v", first)
	}

	second, err := svc.EnsureAdmin(context.Background())
	if err != nil {
		t.Fatalf("ensure admin again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same admin id, got %s and %s", first.ID, second.ID)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(repo.users))
	}

	// Idempotency is by email only: a changed role does not trigger a rewrite.
	repo.users[first.ID].Role = domain.RoleClient
	third, err := svc.EnsureAdmin(context.Background())
	if err != nil {
		t.Fatalf("ensure admin after role change: %v", err)
	}
	if third.ID != first.ID || third.Role != domain.RoleClient {
		t.Fatalf("expected existing record unchanged, got %+v", third)
	}
}

func TestAuthService_EnsureAdmin_DefaultPasswordWorks(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, time.Hour)

	if _, err := svc.EnsureAdmin(context.Background()); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	result, err := svc.Login(context.Background(), adminEmail, adminPassword)
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if result.User.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", result.User.Role)
	}
}

func TestAuthService_GetByID(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, time.Hour)

	view, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.GetByID(context.Background(), view.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
