// Package token encodes identity claims into signed, time-limited JWT
// strings and decodes them back. Tokens are HS256-signed with a
// process-wide secret and carry the claim set {sub, email, role, exp}.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/musitech/crm-api/internal/core/domain"
)

// ErrMissingSecret is returned by NewCodec when no signing secret is
// configured. Fatal at startup, never per-request.
var ErrMissingSecret = errors.New("token: signing secret is not set")

// Claims are the identity facts embedded in a token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Codec issues and validates signed tokens.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Issue signs claims into a compact token expiring at now + ttl.
func (c *Codec) Issue(claims Claims, ttl time.Duration) (string, error) {
	mc := jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature, then the expiry, and returns the claims.
// A bad or absent signature maps to ErrInvalidToken, a past exp to
// ErrExpiredToken.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	return &Claims{UserID: sub, Email: email, Role: role}, nil
}
