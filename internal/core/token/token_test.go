package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/musitech/crm-api/internal/core/domain"
)

func newTestCodec(t *testing.T, secret string) *Codec {
	t.Helper()
	c, err := NewCodec(secret)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return c
}

func TestNewCodec_MissingSecret(t *testing.T) {
	if _, err := NewCodec(""); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, "secret")

	signed, err := codec.Issue(Claims{UserID: "u-1", Email: "a@x.com", Role: domain.RoleClient}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if strings.Count(signed, ".") != 2 {
		t.Fatalf("expected three-segment token, got %q", signed)
	}

	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "a@x.com" || claims.Role != domain.RoleClient {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec := newTestCodec(t, "secret")

	signed, err := codec.Issue(Claims{UserID: "u-1"}, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := codec.Decode(signed); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	codec := newTestCodec(t, "secret")
	other := newTestCodec(t, "different")

	signed, err := codec.Issue(Claims{UserID: "u-1"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := other.Decode(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Garbage(t *testing.T) {
	codec := newTestCodec(t, "secret")

	if _, err := codec.Decode("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
